// Package handler provides HTTP handlers for all API endpoints.
// Score data comes from the upstream provider service; handlers only parse
// queries, shape responses, and manage conditional-request headers.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/onlyscores/onlyscores-data/internal/api/respond"
	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/config"
	"github.com/onlyscores/onlyscores-data/internal/db"
	"github.com/onlyscores/onlyscores-data/internal/provider"
	"github.com/onlyscores/onlyscores-data/internal/subscription"
)

// ScoresProvider is the upstream surface the handlers depend on.
type ScoresProvider interface {
	Leagues(ctx context.Context) ([]provider.League, error)
	Teams(ctx context.Context, leagueID string) ([]provider.Team, error)
	Scores(ctx context.Context, q provider.ScoresQuery) (*provider.ScoresResponse, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	provider ScoresProvider
	pool     *db.Pool
	cache    *cache.Cache
	subs     *subscription.Store
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies. pool may be nil when no
// database is configured.
func New(p ScoresProvider, pool *db.Pool, c *cache.Cache, subs *subscription.Store, cfg *config.Config) *Handler {
	return &Handler{
		provider: p,
		pool:     pool,
		cache:    c,
		subs:     subs,
		cfg:      cfg,
		logger:   slog.Default(),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "OnlyScores Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"optimizations": []string{
			"prepared_statements",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
			"upstream_rate_limiting",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports disabled when no database is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
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
// @Description Returns in-memory cache statistics (active keys, expired keys).
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
