package sportsdb

// Raw TheSportsDB payloads. All scalar fields arrive as strings, and the
// list wrappers are null (not empty) when nothing matched.

type rawTeam struct {
	IDTeam       string `json:"idTeam"`
	IDLeague     string `json:"idLeague"`
	StrTeam      string `json:"strTeam"`
	StrTeamShort string `json:"strTeamShort"`
	StrTeamBadge string `json:"strTeamBadge"`
	StrTeamLogo  string `json:"strTeamLogo"`
}

type rawEvent struct {
	IDEvent      string `json:"idEvent"`
	IDLeague     string `json:"idLeague"`
	StrLeague    string `json:"strLeague"`
	StrSport     string `json:"strSport"`
	IDHomeTeam   string `json:"idHomeTeam"`
	IDAwayTeam   string `json:"idAwayTeam"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	IntHomeScore string `json:"intHomeScore"`
	IntAwayScore string `json:"intAwayScore"`
	StrStatus    string `json:"strStatus"`
	DateEvent    string `json:"dateEvent"`
	StrTime      string `json:"strTime"`
	StrTimestamp string `json:"strTimestamp"`
}

type teamsResponse struct {
	Teams []rawTeam `json:"teams"`
}

type eventsResponse struct {
	Events []rawEvent `json:"events"`
}
