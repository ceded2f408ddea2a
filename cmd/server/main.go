// Package main implements the entry point for the vocabulary practice
// server: spaced-repetition scheduling, review queues, and quiz sessions
// over a SQLite-backed mastery store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hakseup/topik-api/internal/api"
	"github.com/hakseup/topik-api/internal/config"
	"github.com/hakseup/topik-api/internal/content"
	"github.com/hakseup/topik-api/internal/domain/srs"
	"github.com/hakseup/topik-api/internal/platform/logger"
	"github.com/hakseup/topik-api/internal/platform/sqlite"
	"github.com/hakseup/topik-api/internal/service/practice"
	"github.com/hakseup/topik-api/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires the application together and blocks until shutdown. It is
// separate from main so deferred cleanup runs before the process exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_path", cfg.Database.Path),
		slog.String("content_dir", cfg.Content.Dir),
		slog.Bool("telemetry_enabled", cfg.Telemetry.Enabled))

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	masteryStore := sqlite.NewMasteryStore(db, appLogger)

	loader := content.NewCachedLoader(
		content.NewFileLoader(cfg.Content.Dir, cfg.Content.Levels, appLogger),
	)

	tracker := newTracker(cfg.Telemetry, appLogger)
	defer func() {
		if err := tracker.Close(); err != nil {
			appLogger.Warn("failed to flush telemetry on shutdown",
				slog.String("error", err.Error()))
		}
	}()

	practiceService := practice.NewService(
		loader,
		masteryStore,
		srs.NewDefaultService(),
		tracker,
		appLogger,
	)

	handler := api.NewPracticeHandler(practiceService, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}

// newTracker builds the telemetry tracker from configuration. Telemetry
// is optional; when disabled every event is discarded.
func newTracker(cfg config.TelemetryConfig, log *slog.Logger) telemetry.Tracker {
	if !cfg.Enabled {
		return telemetry.NoopTracker{}
	}

	return telemetry.NewBatchTracker(telemetry.BatchTrackerConfig{
		URL:           cfg.URL,
		FallbackURL:   cfg.FallbackURL,
		BatchSize:     cfg.BatchSize,
		FlushInterval: time.Duration(cfg.FlushIntervalSeconds) * time.Second,
	}, log)
}
