// ABOUTME: Entry point for the route economics backend service
// ABOUTME: Computes route artifacts at startup and serves them over an HTTP API

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/route-economics/backend/cache"
	"github.com/markalston/route-economics/backend/config"
	"github.com/markalston/route-economics/backend/handlers"
	"github.com/markalston/route-economics/backend/logger"
)

func main() {
	// Initialize structured logging
	logCloser := logger.Init()
	defer logCloser.Close()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Route Economics Backend")
	slog.Info("Pipeline configured",
		"hubs", cfg.Hubs,
		"distance_method", cfg.DistanceMethod,
		"refuel_policy", cfg.RefuelPolicy)
	if cfg.AirportDBConfigured() {
		slog.Info("airportdb.io configured", "url", cfg.AirportDBURL)
	} else {
		slog.Info("airportdb.io not configured, using embedded airports")
	}

	// Artifacts live on disk when DATA_DIR is set, otherwise in memory
	var store cache.Store
	if cfg.DataDir != "" {
		fs, err := cache.NewFileStore(cfg.DataDir)
		if err != nil {
			slog.Error("Failed to open data directory", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		store = fs
		slog.Info("Artifact store initialized", "dir", fs.Dir())
	} else {
		cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
		c := cache.New(cacheTTL)
		defer c.Close()
		store = c
		slog.Info("Cache initialized", "ttl", cacheTTL)
	}

	h, err := handlers.NewHandler(cfg, store)
	if err != nil {
		slog.Error("Failed to initialize handlers", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := h.Compute(ctx, cfg.Overwrite); err != nil {
		slog.Error("Initial computation failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.NewRouter(cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
