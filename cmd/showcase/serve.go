package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/config"
	"ProductShowcase/internal/notify"
	"ProductShowcase/internal/session"
	"ProductShowcase/internal/showcase"
	"ProductShowcase/pkg/kit"
)

const serviceName = "showcase"

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the showcase page and JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config and PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	log, err := kit.NewLogger(serviceName, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	be, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.Close(); err != nil {
			log.Warn("close backends failed", zap.Error(err))
		}
	}()

	sinks := append([]notify.Sink{notify.LogSink{Log: log}}, be.sinks...)
	disp := notify.NewDispatcher(log, notify.DispatcherOptions{Metrics: notify.NewMetrics(reg)}, sinks...)
	defer disp.Close()

	store := catalog.NewStore()
	mgr := session.NewManager(store, log, session.ManagerConfig{
		TTL: cfg.SessionTTL,
		Session: session.Options{
			AnimationDelay: cfg.AnimationDelay,
			Publisher:      disp,
			Metrics:        session.NewMetrics(reg),
		},
	})
	defer mgr.CloseAll()

	secret := cfg.SessionSecret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			return err
		}
		log.Warn("SESSION_SECRET not set, cookies will not survive a restart")
	}

	srv := &showcase.Server{
		Sessions:  mgr,
		Catalog:   store,
		Tokens:    showcase.NewTokenMaker(secret),
		Page:      showcase.PageInfo{Title: cfg.Page.Title, Description: cfg.Page.Description},
		CookieTTL: cfg.SessionTTL,
		Ready:     be.ready,
		Log:       log,
	}
	h := showcase.NewHandler(srv, showcase.HTTPDeps{
		Log:            log,
		Service:        serviceName,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		TrustProxy:     cfg.TrustProxy,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return kit.Serve(gctx, cfg.Addr, h, log) })
	g.Go(func() error { return mgr.Run(gctx, cfg.ReapInterval) })
	return g.Wait()
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
