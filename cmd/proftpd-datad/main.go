// Command proftpd-datad wires the FSR (package vfs) and the DCE (package
// data) together behind a minimal process harness: config, logging,
// metrics, and the default on-disk driver. It deliberately does not parse
// the FTP control protocol (PORT/PASV/USER/PASS/...) — per spec.md, that
// negotiation is the command handler's job, and the DCE/FSR are invoked
// by one once a data connection and a resolved path already exist. This
// binary exists to prove the pieces link together the way a real
// proftpd-alike's startup path would, grounded in how the teacher repo's
// cmd/ commands assemble a root cobra.Command around a long-lived
// service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaojiangqi/proftpd/collab"
	"github.com/gaojiangqi/proftpd/data"
	"github.com/gaojiangqi/proftpd/internal/ftplog"
	"github.com/gaojiangqi/proftpd/internal/metrics"
	"github.com/gaojiangqi/proftpd/internal/serverconf"
	"github.com/gaojiangqi/proftpd/vfs"
	"github.com/gaojiangqi/proftpd/vfs/localfs"

	"github.com/spf13/afero"
)

// staticAuth is a minimal collab.Auth/vfs.AuthLookup that resolves every
// username to the same home directory, enough to exercise Interpolate's
// tilde expansion without a real user database wired in.
type staticAuth struct {
	home string
}

func (a staticAuth) GetPwNam(user string) (string, bool) {
	if user == "" {
		return "", false
	}
	return a.home, true
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "proftpd-datad",
		Short: "Data Connection Engine / VFS Router demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serverconf.Load(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	serverconf.BindFlags(root.PersistentFlags(), v)
	v.SetEnvPrefix("PROFTPD_DATAD")
	v.AutomaticEnv()

	return root
}

func run(ctx context.Context, cfg *serverconf.Config) error {
	logger := ftplog.New(cfg.JSONLogs, slog.LevelInfo)
	logger.Info("starting proftpd-datad", "listen_addr", cfg.ListenAddr, "root", cfg.DefaultRootPath)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				ftplog.Logf(ctx, logger, ftplog.LevelAlert, "metrics server exited: %v", err)
			}
		}()
	}

	root := localfs.New("local", afero.NewOsFs())
	auth := staticAuth{home: cfg.DefaultRootPath}
	router := vfs.NewRouter(root, auth, "ftp")
	router.Metrics = m
	router.Setcwd(cfg.DefaultRootPath, "/")

	inet := collab.NewInet(cfg.ReverseDNS)
	responder := &logResponder{logger: logger}
	timer := collab.NewTimerSet()

	session := data.NewSession(responder, inet, timer)
	session.Metrics = m

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGURG)
	go func() {
		for range sigCh {
			session.RequestAbort()
		}
	}()

	logger.Info("ready", "driver_count", 1)
	<-ctx.Done()
	return nil
}

// logResponder is the demo collab.Response: it logs replies instead of
// writing them to a real control connection, since this binary has no
// control-protocol parser.
type logResponder struct {
	logger *slog.Logger
}

func (r *logResponder) Send(code int, format string, args ...any) error {
	r.logger.Info("reply", "code", code, "text", fmt.Sprintf(format, args...))
	return nil
}

func (r *logResponder) Add(code int, format string, args ...any) error {
	return r.Send(code, format, args...)
}

func (r *logResponder) AddErr(code int, format string, args ...any) error {
	return r.Send(code, format, args...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
