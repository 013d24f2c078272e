// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onlyscores/onlyscores-data/internal/config"
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

// registerPreparedStatements registers the statements the subscription and
// analytics layers use. Prepared statements eliminate parse overhead on
// every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Device subscriptions: one row per push token, replaced on re-subscribe.
		"upsert_subscription": `
			INSERT INTO device_subscriptions (id, push_token, league_ids, team_ids, preferences, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (push_token) DO UPDATE SET
				league_ids = EXCLUDED.league_ids,
				team_ids = EXCLUDED.team_ids,
				preferences = EXCLUDED.preferences,
				updated_at = now()`,
		"delete_subscription": "DELETE FROM device_subscriptions WHERE push_token = $1",
		"list_subscriptions":  "SELECT id, push_token, league_ids, team_ids, preferences FROM device_subscriptions ORDER BY updated_at DESC",

		// Analytics events
		"insert_analytics_event": `
			INSERT INTO analytics_events (id, event, occurred_at, metadata)
			VALUES ($1, $2, $3, $4)`,
		"count_analytics_events": "SELECT event, count(*) FROM analytics_events WHERE occurred_at >= $1 GROUP BY event",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
