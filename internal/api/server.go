package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/fofdata/internal/api/handler"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. pool may be nil; only /health/db uses it.
func NewRouter(pool *pgxpool.Pool, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI, served from the OpenAPI doc registered by the docs package.
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", h.ListLeagues)

		r.Route("/leagues/{league}", func(r chi.Router) {
			r.Get("/", h.GetLeague)

			// Teams (league.dat)
			r.Get("/teams", h.GetTeams)
			r.Get("/teams/{team}", h.GetTeam)

			// Roster (players.dat)
			r.Get("/players", h.GetPlayers)
			r.Get("/players/{id}", h.GetPlayer)
			r.Get("/staff", h.GetStaff)

			// Play-by-play (year_YYYY_week_W.dat)
			r.Get("/weeks", h.GetWeekIndex)
			r.Route("/years/{year}/weeks/{week}", func(r chi.Router) {
				r.Get("/", h.GetWeek)
				r.Get("/games", h.GetWeekGames)
				r.Get("/games/{game}", h.GetGame)
			})
		})
	})

	return r
}
