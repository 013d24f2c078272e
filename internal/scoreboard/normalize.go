// Package scoreboard is the client-side core: pure transformations that
// turn provider score cards into display cards, reconcile user card order,
// and diff snapshots into notification events. Nothing here performs I/O.
package scoreboard

import (
	"time"

	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// Game is the display variant of a provider game: resolved team names,
// formatted time label, optional logos.
type Game struct {
	ID          string              `json:"id"`
	StartTime   string              `json:"startTime,omitempty"`
	Time        string              `json:"time"` // "LIVE", "FINAL", "7:30 PM", "TBD"
	AwayTeam    string              `json:"awayTeam"`
	HomeTeam    string              `json:"homeTeam"`
	AwayLogoURL string              `json:"awayLogoUrl,omitempty"`
	HomeLogoURL string              `json:"homeLogoUrl,omitempty"`
	AwayScore   *int                `json:"awayScore,omitempty"`
	HomeScore   *int                `json:"homeScore,omitempty"`
	Status      provider.GameStatus `json:"status"`
}

// Card is a display score card. LastUpdated is the max of the contained
// games' timestamps, empty when none parse.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Games       []Game `json:"games"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// TeamDisplay is the per-team display lookup entry.
type TeamDisplay struct {
	Name    string
	LogoURL string
}

// BuildTeamLookup indexes teams by ID for display resolution, preferring
// the short name.
func BuildTeamLookup(teams []provider.Team) map[string]TeamDisplay {
	lookup := make(map[string]TeamDisplay, len(teams))
	for _, team := range teams {
		name := team.ShortName
		if name == "" {
			name = team.Name
		}
		lookup[team.ID] = TeamDisplay{Name: name, LogoURL: team.LogoURL}
	}
	return lookup
}

// NormalizeCards converts provider cards into display cards. Team IDs with
// no lookup entry render as the raw ID. Scheduled time labels are rendered
// in loc; nil means the system local zone. Pure: the inputs are not
// modified.
func NormalizeCards(cards []provider.ScoreCard, lookup map[string]TeamDisplay, loc *time.Location) []Card {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Card, 0, len(cards))
	for _, card := range cards {
		games := make([]Game, 0, len(card.Games))
		for _, g := range card.Games {
			away, awayOK := lookup[g.AwayTeamID]
			home, homeOK := lookup[g.HomeTeamID]
			display := Game{
				ID:        g.ID,
				StartTime: g.StartTime,
				Time:      FormatGameTime(g, loc),
				AwayTeam:  g.AwayTeamID,
				HomeTeam:  g.HomeTeamID,
				AwayScore: g.AwayScore,
				HomeScore: g.HomeScore,
				Status:    g.Status,
			}
			if awayOK {
				display.AwayTeam = away.Name
				display.AwayLogoURL = away.LogoURL
			}
			if homeOK {
				display.HomeTeam = home.Name
				display.HomeLogoURL = home.LogoURL
			}
			games = append(games, display)
		}
		out = append(out, Card{
			ID:          card.ID,
			Title:       card.Title,
			Games:       games,
			LastUpdated: CardLastUpdated(card.Games),
		})
	}
	return out
}

// FormatGameTime renders the per-game time label: LIVE and FINAL for those
// states, a 12-hour clock label for scheduled games, TBD when the start
// time does not parse.
func FormatGameTime(g provider.Game, loc *time.Location) string {
	switch g.Status {
	case provider.StatusLive:
		return "LIVE"
	case provider.StatusFinal:
		return "FINAL"
	}
	return FormatScheduledTime(g.StartTime, loc)
}

// FormatScheduledTime renders an ISO start time as "H:MM AM/PM" in loc,
// or "TBD" when it fails to parse.
func FormatScheduledTime(startTime string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return "TBD"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("3:04 PM")
}

// FormatUpdatedLabel renders a card- or board-level freshness label.
func FormatUpdatedLabel(timestamp string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "Updated --"
	}
	if loc == nil {
		loc = time.Local
	}
	return "Updated " + t.In(loc).Format("3:04 PM")
}

// CardLastUpdated aggregates the max parseable lastUpdated among games,
// empty when no game carries a parseable timestamp.
func CardLastUpdated(games []provider.Game) string {
	var latest time.Time
	found := false
	for _, g := range games {
		t, err := time.Parse(time.RFC3339, g.LastUpdated)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	if !found {
		return ""
	}
	return latest.UTC().Format(time.RFC3339)
}

// LatestUpdated returns the most recent lastUpdated across cards, empty
// when none is set.
func LatestUpdated(cards []Card) string {
	var latest time.Time
	found := false
	for _, card := range cards {
		if card.LastUpdated == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, card.LastUpdated)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	if !found {
		return ""
	}
	return latest.UTC().Format(time.RFC3339)
}

// SelectLatestOnly reduces a card's games to the single most relevant one
// for the "latest only" display mode: the most recent live game, else the
// most recent final, else the earliest upcoming game.
func SelectLatestOnly(games []Game) []Game {
	if len(games) <= 1 {
		return games
	}
	if live := filterByStatus(games, provider.StatusLive); len(live) > 0 {
		return []Game{pickGame(live, true)}
	}
	if final := filterByStatus(games, provider.StatusFinal); len(final) > 0 {
		return []Game{pickGame(final, true)}
	}
	return []Game{pickGame(games, false)}
}

func filterByStatus(games []Game, status provider.GameStatus) []Game {
	var out []Game
	for _, g := range games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out
}

// pickGame chooses the latest (or earliest) game by start time; games with
// unparseable start times never displace a parseable candidate.
func pickGame(games []Game, latest bool) Game {
	best := games[0]
	bestTime, bestOK := gameStart(best)
	for _, g := range games[1:] {
		t, ok := gameStart(g)
		if !ok {
			continue
		}
		if !bestOK || (latest && t.After(bestTime)) || (!latest && t.Before(bestTime)) {
			best, bestTime, bestOK = g, t, true
		}
	}
	return best
}

func gameStart(g Game) (time.Time, bool) {
	if g.StartTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, g.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
