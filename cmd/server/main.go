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

	"github.com/nyashahama/email-generator/internal/ai"
	"github.com/nyashahama/email-generator/internal/api"
	"github.com/nyashahama/email-generator/internal/compose"
	"github.com/nyashahama/email-generator/internal/config"
	"github.com/nyashahama/email-generator/internal/logger"
	"github.com/nyashahama/email-generator/internal/web"
)

func main() {
	// ── Config ────────────────────────────────────────────────────────────────
	// Loaded before the logger so ENV and SENTRY_DSN can shape it.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, text in development; errors mirrored to Sentry
	// when SENTRY_DSN is set.
	log, flush := logger.New(logger.Options{
		Env:       cfg.Env,
		Level:     cfg.LogLevel,
		SentryDSN: cfg.SentryDSN,
	}, logger.RequestID(), logger.Attrs())
	slog.SetDefault(log)

	err = run(cfg, log)
	flush()
	if err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port, "provider", cfg.Provider)

	// ── AI ────────────────────────────────────────────────────────────────────
	// A missing credential is reported on every generation request rather
	// than refusing to start, so the form still loads.
	var gen ai.Generator
	if cfg.HasCredential() {
		g, providers, err := ai.NewFromConfig(cfg, logger)
		if err != nil {
			return fmt.Errorf("ai: %w", err)
		}
		gen = g
		logger.Info("ai: generator ready", "providers", providers, "fallback", cfg.Fallback)
	} else {
		logger.Warn("ai: no API key for the configured provider; generation requests will fail with 400",
			"provider", cfg.Provider)
	}

	composer := compose.NewComposer(gen, cfg.MaxOutputTokens)

	// ── HTTP server ───────────────────────────────────────────────────────────
	pages, err := web.NewRenderer()
	if err != nil {
		return err
	}

	handler := api.NewServer(composer, pages, api.Config{
		Production:     cfg.IsProduction(),
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second, // room for the error response after a timeout
		IdleTimeout:       120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// In-flight generations may take a while; give them the request timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
