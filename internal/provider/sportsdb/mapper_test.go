package sportsdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyscores/onlyscores-data/internal/provider"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
}

func TestParseScore(t *testing.T) {
	require.NotNil(t, parseScore("17"))
	assert.Equal(t, 17, *parseScore("17"))
	assert.Equal(t, 0, *parseScore("0")) // zero is a real score

	assert.Nil(t, parseScore(""))
	assert.Nil(t, parseScore("  "))
	assert.Nil(t, parseScore("n/a"))
}

func TestEventStart_FallbackChain(t *testing.T) {
	// Combined timestamp wins.
	e := rawEvent{StrTimestamp: "2026-01-10T19:30:00", DateEvent: "2026-01-09", StrTime: "12:00:00"}
	assert.Equal(t, "2026-01-10T19:30:00Z", eventStart(e, fixedNow))

	// Date plus time-of-day.
	e = rawEvent{DateEvent: "2026-01-10", StrTime: "19:30:00"}
	assert.Equal(t, "2026-01-10T19:30:00Z", eventStart(e, fixedNow))

	// Bare date.
	e = rawEvent{DateEvent: "2026-01-10"}
	assert.Equal(t, "2026-01-10T00:00:00Z", eventStart(e, fixedNow))

	// Nothing parseable: the clock, still valid RFC 3339.
	e = rawEvent{StrTimestamp: "junk", DateEvent: "also junk"}
	assert.Equal(t, "2026-01-10T18:00:00Z", eventStart(e, fixedNow))
}

func TestEventLastUpdated(t *testing.T) {
	e := rawEvent{StrTimestamp: "2026-01-10 21:45:00"}
	assert.Equal(t, "2026-01-10T21:45:00Z", eventLastUpdated(e, "2026-01-10T19:30:00Z"))

	// No explicit timestamp: reuses the derived start so re-mapping an
	// unchanged event stays stable.
	assert.Equal(t, "2026-01-10T19:30:00Z", eventLastUpdated(rawEvent{}, "2026-01-10T19:30:00Z"))
}

func TestGameID_NativeThenSynthesized(t *testing.T) {
	native := rawEvent{IDEvent: "e-123", StrHomeTeam: "Saints", StrAwayTeam: "Bucs"}
	assert.Equal(t, "e-123", gameID(native, "4391", 0))

	synth := rawEvent{StrHomeTeam: "Saints", StrAwayTeam: "Bucs", DateEvent: "2026-01-10"}

	// Stable across polls and independent of slice position.
	first := gameID(synth, "4391", 0)
	second := gameID(synth, "4391", 7)
	assert.Equal(t, first, second)
	assert.Regexp(t, `^g-[0-9a-f]{16}$`, first)

	// Different matchup, different identity.
	other := synth
	other.StrAwayTeam = "Falcons"
	assert.NotEqual(t, first, gameID(other, "4391", 0))

	// No identity at all: positional last resort.
	assert.Equal(t, "4391-3", gameID(rawEvent{}, "4391", 3))
}

func TestMapGame(t *testing.T) {
	e := rawEvent{
		IDEvent:      "e-9",
		StrStatus:    "Q3",
		IntHomeScore: "75",
		IntAwayScore: "80",
		DateEvent:    "2026-01-10",
		StrTime:      "19:30:00",
	}
	game := mapGame(e, "4387", "home-1", "away-2", 0, fixedNow)

	assert.Equal(t, "e-9", game.ID)
	assert.Equal(t, "4387", game.LeagueID)
	assert.Equal(t, provider.StatusLive, game.Status)
	assert.Equal(t, "home-1", game.HomeTeamID)
	assert.Equal(t, "away-2", game.AwayTeamID)
	require.NotNil(t, game.HomeScore)
	require.NotNil(t, game.AwayScore)
	assert.Equal(t, 75, *game.HomeScore)
	assert.Equal(t, 80, *game.AwayScore)
	assert.Equal(t, "2026-01-10T19:30:00Z", game.StartTime)
}

func TestMapGame_EmptyStatusWithScoreIsFinal(t *testing.T) {
	e := rawEvent{IDEvent: "e-1", IntHomeScore: "3", IntAwayScore: "1", DateEvent: "2025-11-02"}
	game := mapGame(e, "4328", "h", "a", 0, fixedNow)
	assert.Equal(t, provider.StatusFinal, game.Status)

	// Without scores the same blank status reads as scheduled.
	upcoming := rawEvent{IDEvent: "e-2", DateEvent: "2026-02-01"}
	assert.Equal(t, provider.StatusScheduled, mapGame(upcoming, "4328", "h", "a", 0, fixedNow).Status)
}

func TestMapTeam(t *testing.T) {
	team := mapTeam(rawTeam{
		IDTeam:       "134880",
		StrTeam:      "Tampa Bay Buccaneers",
		StrTeamShort: "Bucs",
		StrTeamBadge: "http://img/badge.png",
		StrTeamLogo:  "http://img/logo.png",
	}, "4391")
	assert.Equal(t, "134880", team.ID)
	assert.Equal(t, "4391", team.LeagueID)
	assert.Equal(t, "Bucs", team.ShortName)
	assert.Equal(t, "http://img/badge.png", team.LogoURL) // badge wins

	bare := mapTeam(rawTeam{IDTeam: "1", StrTeam: "Saints", StrTeamLogo: "http://img/l.png"}, "4391")
	assert.Equal(t, "Saints", bare.ShortName)
	assert.Equal(t, "http://img/l.png", bare.LogoURL)
}
