// Package main is the entry point for the itemplane API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"itemplane/internal/config"
	"itemplane/internal/controller"
	"itemplane/internal/controller/middleware"
	"itemplane/internal/logger"
	"itemplane/internal/observability"
	"itemplane/internal/store/postgres"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
)

const serviceName = "itemplane-controller"

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	configPath := flag.String("config", "", "Path to config file (default: itemplane.yaml in current directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log, *migrateFlag); err != nil {
		log.Error("controller exited", "error", err)
		os.Exit(1)
	}
	log.Info("server exited properly")
}

func run(cfg *config.Config, log *slog.Logger, migrateFirst bool) error {
	ctx := context.Background()

	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer store.Close()

	if migrateFirst {
		log.Info("running database migrations")
		version, err := postgres.Migrate(store.DB())
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations completed", "version", version)
	}

	// Tracing
	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.OTELEndpoint)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Warn("failed to shutdown tracer", "error", err)
			}
		}()
	} else {
		observability.SetPropagator()
	}

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			log.Warn("failed to shutdown metrics", "error", err)
		}
	}()

	meter := otel.Meter(serviceName)
	if err := observability.RegisterItemGauge(meter, store, func(err error) {
		log.Warn("failed to count items", "error", err)
	}); err != nil {
		log.Warn("item gauge disabled", "error", err)
	}

	httpMetrics, err := middleware.NewHTTPMetrics(meter)
	if err != nil {
		return fmt.Errorf("failed to init http metrics: %w", err)
	}

	opts := controller.Options{
		Logger:         log,
		MetricsHandler: metricsHandler,
		HTTPMetrics:    httpMetrics,
	}
	if cfg.RateLimit > 0 {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitBurst)
		log.Info("rate limiting enabled", "per_second", cfg.RateLimit, "burst", cfg.RateLimitBurst)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := controller.New(addr, store, opts)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("itemplane controller starting", "addr", addr)
		serverErr <- srv.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info("shutting down controller", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
