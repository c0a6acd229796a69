// Package main is the entry point for the weatherdesk web server.
//
// It loads the configuration, builds the OpenWeatherMap client and the weather
// service, mounts the page and JSON handlers on the core chassis, and serves
// HTTP until SIGINT or SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"weatherdesk/internal/config"
	"weatherdesk/internal/core"
	"weatherdesk/internal/external"
	"weatherdesk/internal/telemetry"
	"weatherdesk/internal/units"
	"weatherdesk/internal/weather"
	"weatherdesk/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("weatherdesk starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
		"units", units.ParseSystem(cfg.OpenWeather.Units).String(),
		"forecast_enabled", cfg.OpenWeather.ForecastURL != "",
	)

	metrics, err := newMetricsCollector(context.Background(), cfg.Observability, logger)
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	srv, err := buildServer(cfg, logger, metrics)
	if err != nil {
		return err
	}

	return runHTTPServer(srv, cfg, logger)
}

// buildServer wires the provider client, the weather service and the
// handlers onto a core.Server with all routes mounted.
func buildServer(cfg *config.Config, logger *slog.Logger, metrics telemetry.Collector) (*core.Server, error) {
	client := external.NewOpenWeatherClient(cfg.OpenWeather, logger)

	formats := units.ResolveFormats(client.System(), cfg.Formats)
	if missing := formats.Missing(); len(missing) > 0 {
		logger.Warn("display formats not configured; values will render without unit labels",
			"units", client.System().String(),
			"categories", missing,
		)
	}

	svc := weather.NewService(client, formats, metrics, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("loading page templates: %w", err)
	}

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	srv.Metrics = metrics
	srv.HealthProbes = append(srv.HealthProbes, core.BreakerProbe{
		Dependency: "openweathermap",
		State:      client.BreakerState,
	})

	handler := web.NewHandler(svc, srv.Validator, renderer, cfg.OpenWeather.Language, logger)
	srv.RouteRegistrars = append(srv.RouteRegistrars, handler.RegisterRoutes)

	srv.MountRoutes()
	return srv, nil
}

// newMetricsCollector returns a CloudWatch collector when metrics are
// enabled and a no-op collector otherwise.
func newMetricsCollector(ctx context.Context, cfg config.ObservabilityConfig, logger *slog.Logger) (telemetry.Collector, error) {
	if !cfg.MetricsEnabled {
		return telemetry.Noop{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	cwClient := cloudwatch.NewFromConfig(awsCfg, func(o *cloudwatch.Options) {
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		}
	})

	logger.Info("publishing metrics to CloudWatch",
		"namespace", cfg.MetricNamespace,
		"region", cfg.AWSRegion,
	)
	return telemetry.NewCloudWatchCollector(cwClient, cfg.MetricNamespace, logger), nil
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
