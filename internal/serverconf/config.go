// Package serverconf loads the DCE/FSR's runtime tunables the way the
// teacher repo's command layer loads rclone's config: pflag-declared
// flags bound into a viper instance that also reads a config file and the
// environment, so cmd/proftpd-datad gets its listen address, buffer size,
// TimeoutStalled/TimeoutNoXfer/TimeoutIdle, reverse-DNS, log-format,
// metrics-address and default-root knobs without the server needing its
// own flag-parsing or env-lookup code.
package serverconf

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved set of tunables read at startup, named after
// the proftpd.conf directives they replace.
type Config struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	BufferSize      int           `mapstructure:"buffer_size"`
	TimeoutStalled  time.Duration `mapstructure:"timeout_stalled"`
	TimeoutNoXfer   time.Duration `mapstructure:"timeout_no_xfer"`
	TimeoutIdle     time.Duration `mapstructure:"timeout_idle"`
	ReverseDNS      bool          `mapstructure:"reverse_dns"`
	JSONLogs        bool          `mapstructure:"json_logs"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	DefaultRootPath string        `mapstructure:"default_root_path"`
}

// BindFlags registers the config's pflag surface onto fs, mirroring the
// "register every option as both a flag and a viper key" convention the
// teacher's cobra-based commands use.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("listen-addr", ":2121", "Control-channel listen address.")
	fs.Int("buffer-size", 16*1024, "Data-connection I/O buffer size (TUNABLE_BUFFER_SIZE).")
	fs.Duration("timeout-stalled", 15*time.Minute, "Abort a transfer after this much inactivity.")
	fs.Duration("timeout-no-xfer", 10*time.Minute, "Close an idle control connection with no transfer.")
	fs.Duration("timeout-idle", 30*time.Minute, "Disconnect an idle control connection.")
	fs.Bool("reverse-dns", false, "Perform reverse DNS lookups on client connections.")
	fs.Bool("json-logs", false, "Emit structured logs as JSON instead of text.")
	fs.String("metrics-addr", ":9120", "Prometheus /metrics listen address; empty disables it.")
	fs.String("default-root-path", "/srv/ftp", "Filesystem path mounted as the default \"/\" driver.")

	_ = v.BindPFlags(fs)
}

// Load resolves v (already populated by BindFlags plus any config
// file/env overrides the caller configured) into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
