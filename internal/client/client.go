// Package client is the headless counterpart of the mobile app: a backend
// API client, a local JSON store for preferences and snapshots, and the
// polling watcher that drives the normalize → order → diff pipeline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/onlyscores/onlyscores-data/internal/provider"
	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// Client talks to the OnlyScores backend. Responses use the canonical wire
// schema only — the object-wrapper shapes defined in internal/provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a backend client. An empty base URL is a configuration
// error: nothing can succeed without it.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}, nil
}

// Leagues fetches the curated league list.
func (c *Client) Leagues(ctx context.Context) ([]provider.League, error) {
	var payload provider.LeaguesResponse
	if err := c.getJSON(ctx, "/v1/leagues", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Leagues, nil
}

// Teams fetches the team list for one league.
func (c *Client) Teams(ctx context.Context, leagueID string) ([]provider.Team, error) {
	params := url.Values{"leagueId": {leagueID}}
	var payload provider.TeamsResponse
	if err := c.getJSON(ctx, "/v1/teams", params, &payload); err != nil {
		return nil, err
	}
	return payload.Teams, nil
}

// Scores fetches assembled score cards for a selection.
func (c *Client) Scores(ctx context.Context, q provider.ScoresQuery) (*provider.ScoresResponse, error) {
	params := url.Values{}
	if len(q.LeagueIDs) > 0 {
		params.Set("leagueIds", strings.Join(q.LeagueIDs, ","))
	}
	if len(q.TeamIDs) > 0 {
		params.Set("teamIds", strings.Join(q.TeamIDs, ","))
	}
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.Window != "" {
		params.Set("window", string(q.Window))
	}
	var payload provider.ScoresResponse
	if err := c.getJSON(ctx, "/v1/scores", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Subscription is the device-subscription payload: push token plus the
// selection and preferences the device wants server-side alerts for.
type Subscription struct {
	PushToken   string                 `json:"pushToken"`
	LeagueIDs   []string               `json:"leagueIds"`
	TeamIDs     []string               `json:"teamIds"`
	Preferences scoreboard.PrefsByCard `json:"preferences"`
}

// SubscribeDevice registers the device subscription with the backend.
func (c *Client) SubscribeDevice(ctx context.Context, sub Subscription) error {
	return c.postJSON(ctx, "/v1/device/subscribe", sub)
}

// AnalyticsEvent is a fire-and-forget usage event.
type AnalyticsEvent struct {
	Event      string            `json:"event"`
	OccurredAt string            `json:"occurredAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// TrackEvent submits an analytics event. Failures are logged and swallowed:
// analytics must never affect the pipeline.
func (c *Client) TrackEvent(ctx context.Context, name string, metadata map[string]string) {
	event := AnalyticsEvent{
		Event:      name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Metadata:   metadata,
	}
	if err := c.postJSON(ctx, "/v1/analytics/events", event); err != nil {
		c.logger.Debug("analytics event dropped", "event", name, "error", err)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("backend %s returned %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("backend %s returned %d", path, resp.StatusCode)
	}
	return nil
}
