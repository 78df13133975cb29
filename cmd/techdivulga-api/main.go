// Package main provides the TechDivulga API server entrypoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/files"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting TechDivulga API")

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, app.Options{Migrate: true})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer a.Close()

	reindexer, err := files.NewReindexer(a.Files, a.Index, cfg.Files.ReindexSchedule, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create document reindexer")
	}
	if err := reindexer.Start(ctx); err != nil {
		// the API still serves files; search starts empty
		logger.Warn().Err(err).Msg("Initial document index failed")
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewRouter(logger, a),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server error")
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	reindexer.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
