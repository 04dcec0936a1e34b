// Package handler provides HTTP handlers for all API endpoints.
// Handlers decode save files straight from the saved-games directory and
// cache the marshaled JSON keyed by file version. Postgres is optional and
// only consulted by the database health check.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/fofdata/internal/api/respond"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/config"
	"github.com/albapepper/fofdata/internal/savegame"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool   *pgxpool.Pool // nil when no database is configured
	cache  *cache.Cache
	cfg    *config.Config
	loader *savegame.Loader
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		pool:  pool,
		cache: c,
		cfg:   cfg,
		loader: &savegame.Loader{
			Revision: cfg.Revision,
			Schema:   cfg.PlayersSchema,
			Options:  cfg.DecodeOptions(nil),
			Logger:   logger,
		},
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and the active format selection.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "FOF Save Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"format": map[string]interface{}{
			"revision":       h.cfg.Revision.Name,
			"players_schema": h.cfg.PlayersSchema,
			"codepage":       h.cfg.CodePageName,
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and whether the saved-games directory is readable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	leagues, err := savegame.Find(h.cfg.SavedGamesDir, h.logger)
	body := map[string]interface{}{
		"saved_games_dir": h.cfg.SavedGamesDir,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
		body["error"] = "Saved games directory is not readable"
	} else {
		body["leagues"] = len(leagues)
	}
	body["status"] = status
	respond.WriteJSONObject(w, code, body)
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity when DATABASE_URL is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unavailable",
			"database":  "not configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
