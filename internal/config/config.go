// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/watch.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Refresh interval bounds — shared by the watcher and the settings surface
// --------------------------------------------------------------------------

const (
	DefaultRefreshSeconds = 60
	MinRefreshSeconds     = 60
	MaxRefreshSeconds     = 120
	RefreshStepSeconds    = 10
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
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

	// TheSportsDB upstream
	SportsDBBaseURL   string
	SportsDBAPIKey    string
	SportsDBPerMinute int

	// Database (optional — subscriptions/analytics are discarded without it)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Cache
	CacheEnabled bool

	// Watcher
	BackendBaseURL string
	RefreshSeconds int
	DataDir        string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 4000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		SportsDBBaseURL:   envOr("THE_SPORTS_DB_BASE_URL", "https://www.thesportsdb.com/api/v1/json"),
		SportsDBAPIKey:    envOr("THE_SPORTS_DB_API_KEY", "123"),
		SportsDBPerMinute: envInt("THE_SPORTS_DB_REQUESTS_PER_MINUTE", 60),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		BackendBaseURL: strings.TrimRight(envOr("ONLYSCORES_API_BASE_URL", ""), "/"),
		RefreshSeconds: envInt("REFRESH_INTERVAL_SECONDS", DefaultRefreshSeconds),
		DataDir:        envOr("ONLYSCORES_DATA_DIR", ".onlyscores"),
	}, nil
}

// ValidateWatcher checks the configuration the watcher cannot run without.
// A missing base URL is a blocking error, distinct from transient fetch
// failures: no request can succeed until it is set.
func (c *Config) ValidateWatcher() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("ONLYSCORES_API_BASE_URL must be set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ClampRefreshSeconds rounds a requested refresh interval to the nearest
// step and clamps it to the supported range.
func ClampRefreshSeconds(seconds int) int {
	rounded := ((seconds + RefreshStepSeconds/2) / RefreshStepSeconds) * RefreshStepSeconds
	if rounded < MinRefreshSeconds {
		return MinRefreshSeconds
	}
	if rounded > MaxRefreshSeconds {
		return MaxRefreshSeconds
	}
	return rounded
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
