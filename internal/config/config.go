// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"

	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
)

// --------------------------------------------------------------------------
// Save-game layout: where the game keeps its leagues on Windows
// --------------------------------------------------------------------------

// SavedGamesSubdir is the saved-games directory below %LOCALAPPDATA%.
var SavedGamesSubdir = filepath.Join("Solecismic Software", "Front Office Football Nine", "saved_games")

// DefaultSavedGamesDir is used when FOF_SAVED_GAMES_DIR is unset.
func DefaultSavedGamesDir() string {
	if base := os.Getenv("LOCALAPPDATA"); base != "" {
		return filepath.Join(base, SavedGamesSubdir)
	}
	return "saved_games"
}

// --------------------------------------------------------------------------
// Table names, matching db.Schema
// --------------------------------------------------------------------------

const (
	LeaguesTable = "fof_leagues"
	TeamsTable   = "fof_teams"
	PlayersTable = "fof_players"
	StaffTable   = "fof_staff"
	GamesTable   = "fof_games"
	PlaysTable   = "fof_plays"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Save games
	SavedGamesDir string
	Revision      league.Revision
	PlayersSchema players.Schema
	CodePageName  string
	CodePage      encoding.Encoding
	DecodeWorkers int

	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Format settings are resolved here so a bad value fails at startup rather
// than on the first decode.
func Load() (*Config, error) {
	rev, err := league.RevisionByName(envOr("FOF_FORMAT_REVISION", league.FOF9.Name))
	if err != nil {
		return nil, fmt.Errorf("FOF_FORMAT_REVISION: %w", err)
	}
	schema, err := players.ParseSchema(envOr("FOF_PLAYERS_SCHEMA", string(players.Counted)))
	if err != nil {
		return nil, fmt.Errorf("FOF_PLAYERS_SCHEMA: %w", err)
	}
	cpName := envOr("FOF_TEXT_CODEPAGE", "iso-8859-1")
	cp, err := codec.CodePage(cpName)
	if err != nil {
		return nil, fmt.Errorf("FOF_TEXT_CODEPAGE: %w", err)
	}

	return &Config{
		SavedGamesDir: envOr("FOF_SAVED_GAMES_DIR", DefaultSavedGamesDir()),
		Revision:      rev,
		PlayersSchema: schema,
		CodePageName:  cpName,
		CodePage:      cp,
		DecodeWorkers: envInt("FOF_DECODE_WORKERS", 4),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_SECONDS", 300)) * time.Second,
	}, nil
}

// RequireDatabase fails when no database is configured. Only the seed
// commands need one.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DecodeOptions are the codec options every decoder should be given.
func (c *Config) DecodeOptions(logger *slog.Logger) []codec.Option {
	opts := []codec.Option{codec.WithCodePage(c.CodePage)}
	if logger != nil {
		opts = append(opts, codec.WithLogger(logger))
	}
	return opts
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
