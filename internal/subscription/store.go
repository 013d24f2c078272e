// Package subscription persists device push subscriptions and analytics
// events. Persistence is optional: when no database is configured the store
// is disabled and every write becomes a no-op, so the scores API keeps
// working without Postgres.
package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/onlyscores/onlyscores-data/internal/db"
	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// Record is a stored device subscription.
type Record struct {
	ID          uuid.UUID              `json:"id"`
	PushToken   string                 `json:"pushToken"`
	LeagueIDs   []string               `json:"leagueIds"`
	TeamIDs     []string               `json:"teamIds"`
	Preferences scoreboard.PrefsByCard `json:"preferences"`
}

// Store reads and writes subscriptions and analytics events.
type Store struct {
	pool   *db.Pool
	logger *slog.Logger
}

// NewStore creates a store. A nil pool yields a disabled store.
func NewStore(pool *db.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// Enabled reports whether a database is backing the store.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Upsert stores or replaces the subscription for a push token.
func (s *Store) Upsert(ctx context.Context, pushToken string, leagueIDs, teamIDs []string, prefs scoreboard.PrefsByCard) error {
	if !s.Enabled() {
		s.logger.Debug("subscription store disabled, dropping upsert", "push_token", pushToken)
		return nil
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.pool.Exec(ctx, "upsert_subscription",
		uuid.New(), pushToken, leagueIDs, teamIDs, prefsJSON)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// Delete removes the subscription for a push token.
func (s *Store) Delete(ctx context.Context, pushToken string) error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.pool.Exec(ctx, "delete_subscription", pushToken); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// List returns all stored subscriptions, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	if !s.Enabled() {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, "list_subscriptions")
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var prefsJSON []byte
		if err := rows.Scan(&rec.ID, &rec.PushToken, &rec.LeagueIDs, &rec.TeamIDs, &prefsJSON); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if len(prefsJSON) > 0 {
			if err := json.Unmarshal(prefsJSON, &rec.Preferences); err != nil {
				return nil, fmt.Errorf("decode preferences: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordEvent appends one analytics event. occurredAt falls back to now
// when the client sent no timestamp.
func (s *Store) RecordEvent(ctx context.Context, event string, occurredAt time.Time, metadata map[string]string) error {
	if !s.Enabled() {
		s.logger.Debug("subscription store disabled, dropping event", "event", event)
		return nil
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if _, err := s.pool.Exec(ctx, "insert_analytics_event", uuid.New(), event, occurredAt, metaJSON); err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

// EventCounts returns per-event totals since a cutoff.
func (s *Store) EventCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	if !s.Enabled() {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, "count_analytics_events", since)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var event string
		var n int64
		if err := rows.Scan(&event, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[event] = n
	}
	return counts, rows.Err()
}
