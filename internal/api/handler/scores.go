package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/onlyscores/onlyscores-data/internal/api/respond"
	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// GetLeagues returns the supported league catalog.
// @Summary List supported leagues
// @Description Returns the curated league catalog in fixed order.
// @Tags scores
// @Produce json
// @Success 200 {object} provider.LeaguesResponse
// @Router /v1/leagues [get]
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.provider.Leagues(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "Failed to load leagues")
		return
	}
	h.writeCached(w, r, provider.LeaguesResponse{Leagues: leagues}, cache.TTLLeagues)
}

// GetTeams returns the teams of one league.
// @Summary List teams for a league
// @Description Returns the team roster of a supported league. Unknown leagues return an empty list.
// @Tags scores
// @Produce json
// @Param leagueId query string true "League ID"
// @Success 200 {object} provider.TeamsResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /v1/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(r.URL.Query().Get("leagueId"))
	if leagueID == "" {
		respond.WriteError(w, http.StatusBadRequest, "leagueId is required")
		return
	}
	teams, err := h.provider.Teams(r.Context(), leagueID)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "Failed to load teams")
		return
	}
	if teams == nil {
		teams = []provider.Team{}
	}
	h.writeCached(w, r, provider.TeamsResponse{Teams: teams}, cache.TTLTeams)
}

// GetScores returns score cards for the requested selection.
// @Summary Score cards for a selection
// @Description Returns one card per league with games, filtered by the requested leagues and teams.
// @Tags scores
// @Produce json
// @Param leagueIds query string false "Comma-separated league IDs"
// @Param teamIds query string false "Comma-separated team IDs"
// @Param date query string false "Date key (YYYY-MM-DD)"
// @Param window query string false "day or week" default(day)
// @Success 200 {object} provider.ScoresResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /v1/scores [get]
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	q := provider.ScoresQuery{
		LeagueIDs: splitCSV(r.URL.Query().Get("leagueIds")),
		TeamIDs:   splitCSV(r.URL.Query().Get("teamIds")),
		Date:      strings.TrimSpace(r.URL.Query().Get("date")),
	}
	if len(q.LeagueIDs) == 0 && len(q.TeamIDs) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "leagueIds or teamIds is required")
		return
	}

	switch strings.TrimSpace(r.URL.Query().Get("window")) {
	case "", string(provider.WindowDay):
		q.Window = provider.WindowDay
	case string(provider.WindowWeek):
		q.Window = provider.WindowWeek
	default:
		respond.WriteError(w, http.StatusBadRequest, "window must be day or week")
		return
	}

	scores, err := h.provider.Scores(r.Context(), q)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "Failed to load scores")
		return
	}
	h.writeCached(w, r, scores, cache.TTLScores)
}

// writeCached marshals a response, answers If-None-Match with 304 when the
// ETag matches, and otherwise writes the body with cache headers.
func (h *Handler) writeCached(w http.ResponseWriter, r *http.Request, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
