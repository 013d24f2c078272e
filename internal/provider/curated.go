package provider

import "strings"

// CuratedLeague maps a canonical league to TheSportsDB's own naming.
type CuratedLeague struct {
	ID           string
	Name         string
	Sport        string
	ProviderName string
}

// CuratedLeagues is the fixed, hand-maintained league table the backend
// serves. IDs are TheSportsDB league IDs so passthrough records line up.
var CuratedLeagues = []CuratedLeague{
	{ID: "4391", Name: "NFL", Sport: "American Football", ProviderName: "NFL"},
	{ID: "4387", Name: "NBA", Sport: "Basketball", ProviderName: "NBA"},
	{ID: "4424", Name: "MLB", Sport: "Baseball", ProviderName: "MLB"},
	{ID: "4380", Name: "NHL", Sport: "Ice Hockey", ProviderName: "NHL"},
	{ID: "4328", Name: "Premier League", Sport: "Soccer", ProviderName: "English Premier League"},
	{ID: "4335", Name: "La Liga", Sport: "Soccer", ProviderName: "Spanish La Liga"},
	{ID: "4332", Name: "Serie A", Sport: "Soccer", ProviderName: "Italian Serie A"},
	{ID: "4331", Name: "Bundesliga", Sport: "Soccer", ProviderName: "German Bundesliga"},
	{ID: "4334", Name: "Ligue 1", Sport: "Soccer", ProviderName: "French Ligue 1"},
	{ID: "4346", Name: "MLS", Sport: "Soccer", ProviderName: "American Major League Soccer"},
}

var (
	curatedByID   = make(map[string]CuratedLeague, len(CuratedLeagues))
	curatedByName = make(map[string]CuratedLeague, 2*len(CuratedLeagues))
)

func init() {
	for _, league := range CuratedLeagues {
		curatedByID[league.ID] = league
		curatedByName[NormalizeKey(league.Name)] = league
		curatedByName[NormalizeKey(league.ProviderName)] = league
	}
}

// NormalizeKey reduces a free-text name to a fuzzy lookup key: lower-case
// with everything but letters and digits stripped.
func NormalizeKey(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CuratedLeagueByID looks up a curated league by canonical ID.
func CuratedLeagueByID(id string) (CuratedLeague, bool) {
	league, ok := curatedByID[id]
	return league, ok
}

// ResolveLeagueID maps a raw event's league identity to a canonical ID:
// direct curated-ID match, then normalized-name match against curated and
// provider-specific names, then the raw ID as passthrough, then "unknown".
// Resolution never fails — unmatched records degrade to passthrough.
func ResolveLeagueID(rawID, rawName string) string {
	if rawID != "" {
		if _, ok := curatedByID[rawID]; ok {
			return rawID
		}
	}
	if rawName != "" {
		if league, ok := curatedByName[NormalizeKey(rawName)]; ok {
			return league.ID
		}
	}
	if rawID != "" {
		return rawID
	}
	return "unknown"
}

// Leagues returns the curated table as wire-model leagues.
func Leagues() []League {
	leagues := make([]League, 0, len(CuratedLeagues))
	for _, league := range CuratedLeagues {
		leagues = append(leagues, League{ID: league.ID, Name: league.Name, Sport: league.Sport})
	}
	return leagues
}

// LeagueTitle returns the display title for a card: curated name first,
// then the raw provider league name, then the ID itself.
func LeagueTitle(leagueID, rawName string) string {
	if league, ok := curatedByID[leagueID]; ok {
		return league.Name
	}
	if rawName != "" {
		return rawName
	}
	return leagueID
}
