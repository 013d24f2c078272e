// Command api is the OnlyScores Data API server.
//
// Usage:
//
//	onlyscores-api
//	API_PORT=8080 onlyscores-api

// @title OnlyScores Data API
// @version 1.0.0
// @description Sports scores aggregation API serving league catalogs, team rosters, and per-league score cards proxied from TheSportsDB.
// @host localhost:4000
// @BasePath /
// @schemes http https
// @contact.name OnlyScores
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/onlyscores/onlyscores-data/internal/api"
	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/config"
	"github.com/onlyscores/onlyscores-data/internal/db"
	"github.com/onlyscores/onlyscores-data/internal/provider/sportsdb"
	"github.com/onlyscores/onlyscores-data/internal/subscription"

	_ "github.com/onlyscores/onlyscores-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database when configured. Subscriptions and analytics are
	// the only consumers; the scores API works without it.
	var pool *db.Pool
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("Database disabled (no DATABASE_URL); subscriptions and analytics are no-ops")
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream provider service
	client := sportsdb.NewClient(cfg.SportsDBBaseURL, cfg.SportsDBAPIKey, cfg.SportsDBPerMinute, logger)
	service := sportsdb.NewService(client, appCache, logger)

	subs := subscription.NewStore(pool, logger)

	// Create router
	router := api.NewRouter(service, pool, appCache, subs, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting OnlyScores Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
