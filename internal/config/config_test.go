package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.APIHost)
	assert.Equal(t, 4000, cfg.APIPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, "https://www.thesportsdb.com/api/v1/json", cfg.SportsDBBaseURL)
	assert.Equal(t, "123", cfg.SportsDBAPIKey)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, DefaultRefreshSeconds, cfg.RefreshSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "8080")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("ONLYSCORES_API_BASE_URL", "http://localhost:4000/")
	t.Setenv("RATE_LIMIT_WINDOW", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)

	// Trailing slash on the watcher base URL is stripped.
	assert.Equal(t, "http://localhost:4000", cfg.BackendBaseURL)
	assert.NoError(t, cfg.ValidateWatcher())
}

func TestValidateWatcher_RequiresBaseURL(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateWatcher())
}

func TestClampRefreshSeconds(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 60},
		{-5, 60},
		{59, 60},
		{60, 60},
		{64, 60},
		{65, 70}, // half rounds up
		{74, 70},
		{90, 90},
		{117, 120},
		{120, 120},
		{121, 120},
		{999, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampRefreshSeconds(tt.in), "in=%d", tt.in)
	}
}
