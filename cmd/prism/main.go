// Prism server: streams the scripted research, refine and restyle stages
// over Server-Sent Events.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/prism-ai/prism/pkg/api"
	"github.com/prism-ai/prism/pkg/config"
	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/provider/demo"
	"github.com/prism-ai/prism/pkg/stream"
	"github.com/prism-ai/prism/pkg/telemetry"
	"github.com/prism-ai/prism/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newLogger(w io.Writer, cfg *config.ServerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	ctx := context.Background()

	// 1. Configuration
	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)
	cfg.Server.LogFormat = getEnv("LOG_FORMAT", cfg.Server.LogFormat)
	slog.SetDefault(newLogger(os.Stderr, cfg.Server))

	httpPort := getEnv("HTTP_PORT", cfg.Server.HTTPPort)
	slog.Info("Starting Prism",
		"version", version.Full(),
		"http_port", httpPort,
		"config_dir", *configDir)

	// 2. Provider stack
	emitter := stream.FromConfig(cfg.Streaming)
	registry := provider.NewRegistry(demo.New(emitter), cfg.Providers)
	for _, info := range registry.List() {
		slog.Info("Provider status", "provider", info.ID, "configured", info.Configured)
	}

	// 3. Metrics
	meterProvider, err := telemetry.NewMeterProvider(cfg.Telemetry, slog.Default(), os.Stdout)
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	var mp metric.MeterProvider
	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider)
		mp = meterProvider
		slog.Info("Metrics export enabled",
			"exporter", cfg.Telemetry.Exporter,
			"interval", cfg.Telemetry.Interval)
	}

	// 4. HTTP server
	gin.SetMode(gin.ReleaseMode)
	httpServer := api.NewServer(cfg, registry, telemetry.NewMetrics(mp))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + httpPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// 5. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 6. Graceful shutdown; in-flight streams get the configured budget.
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	if meterProvider != nil {
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			slog.Error("Metrics shutdown error", "error", err)
		}
	}

	slog.Info("Shutdown complete")
}
