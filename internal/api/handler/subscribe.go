package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// subscribeRequest is the device subscription payload.
type subscribeRequest struct {
	PushToken   string                 `json:"pushToken"`
	LeagueIDs   []string               `json:"leagueIds"`
	TeamIDs     []string               `json:"teamIds"`
	Preferences scoreboard.PrefsByCard `json:"preferences"`
}

// analyticsRequest is a single client analytics event.
type analyticsRequest struct {
	Event      string            `json:"event"`
	OccurredAt string            `json:"occurredAt"`
	Metadata   map[string]string `json:"metadata"`
}

// SubscribeDevice stores or replaces a device push subscription. The
// endpoint is fire-and-forget: malformed or incomplete payloads are dropped
// and persistence failures are logged, never surfaced to the client.
// @Summary Register device for push notifications
// @Description Stores the device push token with its selection and per-card notification preferences. Always returns 204.
// @Tags notifications
// @Accept json
// @Success 204
// @Router /v1/device/subscribe [post]
func (h *Handler) SubscribeDevice(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusNoContent)

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("dropping malformed subscribe payload", "error", err)
		return
	}
	if strings.TrimSpace(req.PushToken) == "" {
		h.logger.Debug("dropping subscribe payload without push token")
		return
	}
	if err := h.subs.Upsert(r.Context(), req.PushToken, req.LeagueIDs, req.TeamIDs, req.Preferences); err != nil {
		h.logger.Warn("failed to store subscription", "error", err)
	}
}

// TrackEvent records one analytics event. Fire-and-forget like
// SubscribeDevice: the client never sees a failure.
// @Summary Record analytics event
// @Description Appends a client analytics event. Missing or unparseable timestamps default to the server clock. Always returns 204.
// @Tags analytics
// @Accept json
// @Success 204
// @Router /v1/analytics/events [post]
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusNoContent)

	var req analyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("dropping malformed analytics payload", "error", err)
		return
	}
	if strings.TrimSpace(req.Event) == "" {
		h.logger.Debug("dropping analytics payload without event name")
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			h.logger.Debug("ignoring unparseable event timestamp", "occurred_at", req.OccurredAt)
		} else {
			occurredAt = parsed
		}
	}

	if err := h.subs.RecordEvent(r.Context(), req.Event, occurredAt, req.Metadata); err != nil {
		h.logger.Warn("failed to record analytics event", "event", req.Event, "error", err)
	}
}
