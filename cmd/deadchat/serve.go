package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sweetpotato0/deadchat/config"
	"github.com/sweetpotato0/deadchat/contrib/provider/gemini"
	"github.com/sweetpotato0/deadchat/credential"
	"github.com/sweetpotato0/deadchat/metrics"
	"github.com/sweetpotato0/deadchat/middleware/limiter"
	"github.com/sweetpotato0/deadchat/pkg/logging"
	"github.com/sweetpotato0/deadchat/pkg/telemetry"
	"github.com/sweetpotato0/deadchat/relay"
	"github.com/sweetpotato0/deadchat/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	cfg, loadErr := config.LoadRelayConfig(os.Getenv)
	if cfg == nil {
		cfg = &config.RelayConfig{}
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Gemini relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if loadErr != nil {
				return loadErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, cfg *config.RelayConfig) error {
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	logging.SetLogger(logger)

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceVersion: version,
		Disable:        !cfg.Tracing,
		Logger:         logging.WithComponent("telemetry"),
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(reg)
	metrics.SetBuildInfo(version, cfg.Model)

	pool, err := credential.NewPool(cfg.APIKeys)
	if err != nil {
		return err
	}
	gen := gemini.New(gemini.DefaultConfig().WithModel(cfg.Model).WithEndpoint(cfg.Endpoint))

	opts := []relay.Option{
		relay.WithLogger(logging.WithComponent("relay")),
		relay.WithTimeout(cfg.ProviderTimeout),
		relay.WithModel(cfg.Model),
	}
	if cfg.RateLimit > 0 {
		lim, closeLimiter := newLimiter(ctx, cfg)
		defer closeLimiter()
		opts = append(opts, relay.WithLimiter(lim))
	}
	svc, err := relay.New(pool, gen, opts...)
	if err != nil {
		return err
	}

	router := server.NewRouter(svc, server.Options{
		Logger:   logging.WithComponent("http"),
		Gatherer: reg,
	})
	srv := server.New(cfg.Addr(), router, cfg.ProviderTimeout, logger)
	logger.Info("relay configured",
		"model", cfg.Model,
		"credentials", pool.Len(),
		"rate_limit", cfg.RateLimit,
		"tracing", cfg.Tracing,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}

func newLimiter(ctx context.Context, cfg *config.RelayConfig) (limiter.Limiter, func()) {
	if cfg.RedisAddr == "" {
		return limiter.NewMemoryLimiter(cfg.RateLimit, cfg.RateWindow), func() {}
	}
	rl := limiter.NewRedisLimiter(&limiter.RedisConfig{Addr: cfg.RedisAddr}, cfg.RateLimit, cfg.RateWindow)
	if err := rl.Ping(ctx); err != nil {
		logging.Logger().Warn("redis limiter unreachable, requests pass until it recovers", "addr", cfg.RedisAddr, "error", err)
	}
	return rl, func() { _ = rl.Close() }
}
