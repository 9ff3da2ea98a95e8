// Package metrics exposes prometheus counters/gauges for the DCE/FSR,
// the ambient observability layer the distilled spec.md is silent on but
// a production FTP daemon the size of the original proftpd would ship
// regardless (mirroring how the teacher repo's accounting.go tracks
// per-transfer stats, generalized here to a scrape-able surface).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every counter/gauge the DCE and FSR touch. Register it
// once against a prometheus.Registerer at startup.
type Metrics struct {
	TransfersOpened   prometheus.Counter
	TransfersClosed   prometheus.Counter
	TransfersAborted  *prometheus.CounterVec // labeled by abort reply code
	BytesTransferred  *prometheus.CounterVec // labeled by direction
	ActiveTransfers   prometheus.Gauge
	ResolveDuration   prometheus.Histogram
	StatCacheHits     prometheus.Counter
	StatCacheMisses   prometheus.Counter
	DriverTableSize   prometheus.Gauge
	OpendirHandles    prometheus.Gauge
	SendfileFallbacks prometheus.Counter
}

// New constructs and registers the full metric set against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TransfersOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proftpd_datad",
			Name:      "transfers_opened_total",
			Help:      "Data connections successfully opened.",
		}),
		TransfersClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proftpd_datad",
			Name:      "transfers_closed_total",
			Help:      "Data transfers closed cleanly (226).",
		}),
		TransfersAborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proftpd_datad",
			Name:      "transfers_aborted_total",
			Help:      "Data transfers aborted, labeled by the emitted reply code.",
		}, []string{"code"}),
		BytesTransferred: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proftpd_datad",
			Name:      "bytes_transferred_total",
			Help:      "Bytes moved through the DCE, labeled by direction.",
		}, []string{"direction"}),
		ActiveTransfers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "proftpd_datad",
			Name:      "active_transfers",
			Help:      "Data connections currently in XFER state.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "proftpd_fsr",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent in ResolvePartial/ResolveFull.",
			Buckets:   prometheus.DefBuckets,
		}),
		StatCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proftpd_fsr",
			Name:      "stat_cache_hits_total",
			Help:      "Stat cache single-slot hits.",
		}),
		StatCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proftpd_fsr",
			Name:      "stat_cache_misses_total",
			Help:      "Stat cache single-slot misses.",
		}),
		DriverTableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "proftpd_fsr",
			Name:      "driver_table_size",
			Help:      "Number of mounted drivers in the FS table.",
		}),
		OpendirHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "proftpd_fsr",
			Name:      "opendir_handles",
			Help:      "Live opendir registry entries.",
		}),
		SendfileFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proftpd_datad",
			Name:      "sendfile_fallbacks_total",
			Help:      "Times Sendfile fell back to a read/write copy loop.",
		}),
	}

	reg.MustRegister(
		m.TransfersOpened, m.TransfersClosed, m.TransfersAborted,
		m.BytesTransferred, m.ActiveTransfers, m.ResolveDuration,
		m.StatCacheHits, m.StatCacheMisses, m.DriverTableSize,
		m.OpendirHandles, m.SendfileFallbacks,
	)
	return m
}
