// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/fofdata/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Schema creates the fof_* tables. Every statement is idempotent.
//
//go:embed schema.sql
var Schema string

// EnsureSchema applies Schema.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	if _, err := p.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Statements are prepared on every new connection. Upserts stay inline in
// the seed package; these are the lookups shared by the CLI and seeding.
var Statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Leagues
	"league_id_by_name": "SELECT id FROM " + config.LeaguesTable + " WHERE name = $1",
	"league_summaries": `SELECT l.name, l.league_name, l.year, l.revision,
			(SELECT count(*) FROM ` + config.PlayersTable + ` p WHERE p.league_id = l.id),
			(SELECT count(*) FROM ` + config.GamesTable + ` g WHERE g.league_id = l.id)
		FROM ` + config.LeaguesTable + ` l ORDER BY l.name`,

	// Games
	"delete_game_plays": "DELETE FROM " + config.PlaysTable + " WHERE game_id = $1",
}

// LeagueSummary is one seeded league with row counts.
type LeagueSummary struct {
	Name       string
	LeagueName string
	Year       int64
	Revision   string
	Players    int64
	Games      int64
}

// Summaries lists the seeded leagues.
func (p *Pool) Summaries(ctx context.Context) ([]LeagueSummary, error) {
	rows, err := p.Query(ctx, "league_summaries")
	if err != nil {
		return nil, fmt.Errorf("query league summaries: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[LeagueSummary])
}

// registerPreparedStatements registers all statements the ingestion layer
// uses.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
