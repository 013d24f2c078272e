package sportsdb

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// TheSportsDB blanks the status field on completed historical events, so an
// empty status with a score present reads as final on this path.
const emptyStatusWithScore = provider.StatusFinal

// timestampLayouts covers the formats TheSportsDB has been observed to emit.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseScore parses a numeric score string. Empty or non-numeric values are
// absent, never zero.
func parseScore(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// eventStart derives the start time: combined timestamp first, then date
// plus time-of-day, then the bare date, then the clock as last resort. The
// result is always a valid RFC 3339 UTC string — parse failures never
// propagate.
func eventStart(e rawEvent, now func() time.Time) string {
	if t, ok := parseTimestamp(e.StrTimestamp); ok {
		return t.UTC().Format(time.RFC3339)
	}
	if e.DateEvent != "" {
		if tod := strings.TrimSpace(e.StrTime); tod != "" {
			if t, ok := parseTimestamp(e.DateEvent + "T" + tod); ok {
				return t.UTC().Format(time.RFC3339)
			}
		}
		if t, ok := parseTimestamp(e.DateEvent); ok {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return now().UTC().Format(time.RFC3339)
}

// eventLastUpdated prefers the explicit timestamp, falling back to the
// already-derived start time so re-mapping an unchanged event stays stable.
func eventLastUpdated(e rawEvent, startTime string) string {
	if t, ok := parseTimestamp(e.StrTimestamp); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return startTime
}

// eventDateKey yields the UTC calendar date used by the day-window filter.
func eventDateKey(e rawEvent, startTime string) string {
	if e.DateEvent != "" {
		return e.DateEvent
	}
	if t, ok := parseTimestamp(e.StrTimestamp); ok {
		return t.UTC().Format("2006-01-02")
	}
	if len(startTime) >= 10 {
		return startTime[:10]
	}
	return startTime
}

// gameID returns the event's native ID when present. Otherwise a stable ID
// is synthesized from the team pair and date so the same underlying game
// keeps its identity across polls; the league+index form remains only for
// events with no team identity at all.
func gameID(e rawEvent, leagueID string, index int) string {
	if e.IDEvent != "" {
		return e.IDEvent
	}
	home := firstNonEmpty(e.IDHomeTeam, e.StrHomeTeam)
	away := firstNonEmpty(e.IDAwayTeam, e.StrAwayTeam)
	if home != "" || away != "" {
		h := fnv.New64a()
		fmt.Fprintf(h, "%s|%s|%s|%s", leagueID, provider.NormalizeKey(home), provider.NormalizeKey(away), e.DateEvent)
		return fmt.Sprintf("g-%016x", h.Sum64())
	}
	return fmt.Sprintf("%s-%d", leagueID, index)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// mapGame converts a raw event into a canonical game. The caller supplies
// the resolved league and team identities; mapping itself never fails.
func mapGame(e rawEvent, leagueID, homeTeamID, awayTeamID string, index int, now func() time.Time) provider.Game {
	homeScore := parseScore(e.IntHomeScore)
	awayScore := parseScore(e.IntAwayScore)
	hasScore := homeScore != nil || awayScore != nil
	startTime := eventStart(e, now)

	return provider.Game{
		ID:          gameID(e, leagueID, index),
		LeagueID:    leagueID,
		StartTime:   startTime,
		Status:      provider.ClassifyStatus(e.StrStatus, hasScore, emptyStatusWithScore),
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		LastUpdated: eventLastUpdated(e, startTime),
	}
}

// mapTeam converts a raw team into the wire model; short name defaults to
// the full name and the badge image wins over the logo.
func mapTeam(t rawTeam, leagueID string) provider.Team {
	shortName := strings.TrimSpace(t.StrTeamShort)
	if shortName == "" {
		shortName = t.StrTeam
	}
	logo := t.StrTeamBadge
	if logo == "" {
		logo = t.StrTeamLogo
	}
	return provider.Team{
		ID:        t.IDTeam,
		LeagueID:  leagueID,
		Name:      t.StrTeam,
		ShortName: shortName,
		LogoURL:   logo,
	}
}
