// Command api serves decoded Front Office Football save files as JSON.
//
// Usage:
//
//	fof-api
//	FOF_SAVED_GAMES_DIR=./saves API_PORT=8080 fof-api

// @title FOF Save Data API
// @version 1.0.0
// @description Decodes Front Office Football save files (league.dat, players.dat and year_YYYY_week_W.dat) and serves them as JSON.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name fofdata
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/albapepper/fofdata/internal/api"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/config"
	"github.com/albapepper/fofdata/internal/db"
	"github.com/albapepper/fofdata/internal/savegame"

	_ "github.com/albapepper/fofdata/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// The saved-games directory is the data source; fail early if it is unreadable.
	leagues, err := savegame.Find(cfg.SavedGamesDir, logger)
	if err != nil {
		logger.Error("Saved games directory is not readable", "dir", cfg.SavedGamesDir, "error", err)
		os.Exit(1)
	}
	logger.Info("Saved games found",
		"dir", cfg.SavedGamesDir,
		"leagues", len(leagues),
		"revision", cfg.Revision.Name,
		"players_schema", cfg.PlayersSchema)

	// Database is optional; it only backs /health/db.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		p, err := db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		pool = p.Pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "max_ttl", cfg.CacheTTL)

	// Create router
	router := api.NewRouter(pool, appCache, cfg, logger)

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
		logger.Info("Starting FOF Save Data API",
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
