// Command papyrus serves the article read API and the generative summary proxy.
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

	"github.com/joho/godotenv"

	"github.com/papyrus-dev/papyrus/internal/config"
	"github.com/papyrus-dev/papyrus/internal/server"
	"github.com/papyrus-dev/papyrus/internal/service/summary"
	"github.com/papyrus-dev/papyrus/internal/storage"
	"github.com/papyrus-dev/papyrus/internal/telemetry"
	"github.com/papyrus-dev/papyrus/migrations"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	level := slog.LevelInfo
	if os.Getenv("PAPYRUS_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("papyrus starting", "version", version, "port", cfg.Port)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	db, err := storage.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer db.Close()

	// Dev-mode migrations; applied files are tracked and skipped.
	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		slog.Warn("migrations failed", "error", err)
	}

	// A missing API key leaves the provider nil: the search endpoint then
	// answers 500 on every call until the process restarts with a key.
	var provider summary.Provider
	if cfg.GeminiAPIKey != "" {
		provider = summary.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.UpstreamTimeout)
		logger.Info("summary provider: gemini", "model", cfg.GeminiModel)
	} else {
		logger.Warn("summary provider: disabled (no GEMINI_API_KEY)")
	}

	srv := server.New(server.Config{
		Store:               db,
		Provider:            provider,
		Logger:              logger,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	slog.Info("papyrus shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}

	slog.Info("papyrus stopped")
	return nil
}
