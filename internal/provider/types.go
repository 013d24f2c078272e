// Package provider defines the canonical wire model the backend serves and
// the identity-resolution rules that map upstream records onto it.
package provider

// GameStatus is the closed status enumeration every raw provider status
// string is normalized into.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusFinal     GameStatus = "final"
)

// League is a curated or passthrough league.
type League struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

// Team is a league-scoped team. ShortName falls back to Name upstream.
type Team struct {
	ID        string `json:"id"`
	LeagueID  string `json:"leagueId"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

// Game is the canonical provider-side game record.
// Scores are pointers: absent is distinct from zero.
type Game struct {
	ID          string     `json:"id"`
	LeagueID    string     `json:"leagueId"`
	StartTime   string     `json:"startTime"` // ISO-8601
	Status      GameStatus `json:"status"`
	HomeTeamID  string     `json:"homeTeamId"`
	AwayTeamID  string     `json:"awayTeamId"`
	HomeScore   *int       `json:"homeScore,omitempty"`
	AwayScore   *int       `json:"awayScore,omitempty"`
	LastUpdated string     `json:"lastUpdated"` // ISO-8601
}

// ScoreCard groups a league's games into one displayable unit.
type ScoreCard struct {
	ID       string `json:"id"`
	LeagueID string `json:"leagueId"`
	Title    string `json:"title"`
	Games    []Game `json:"games"`
}

// LeaguesResponse is the payload of GET /v1/leagues.
type LeaguesResponse struct {
	Leagues []League `json:"leagues"`
}

// TeamsResponse is the payload of GET /v1/teams.
type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

// ScoresResponse is the payload of GET /v1/scores.
type ScoresResponse struct {
	Cards     []ScoreCard `json:"cards"`
	FetchedAt string      `json:"fetchedAt"`
}

// Window selects the date-filtering behavior of a scores request.
type Window string

const (
	WindowDay  Window = "day"
	WindowWeek Window = "week"
)

// ScoresQuery describes a scores request. League and team filters each
// reduce the candidate event set independently; the team filter matches on
// home or away team ID.
type ScoresQuery struct {
	LeagueIDs []string
	TeamIDs   []string
	Date      string // YYYY-MM-DD; ignored when Window is "week"
	Window    Window
}
