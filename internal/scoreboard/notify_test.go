package scoreboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyscores/onlyscores-data/internal/provider"
)

func intp(v int) *int { return &v }

func snapshot(status provider.GameStatus, away, home *int) []Card {
	return []Card{{
		ID:    "nfl",
		Title: "NFL",
		Games: []Game{{
			ID:        "g1",
			AwayTeam:  "Bucs",
			HomeTeam:  "Saints",
			AwayScore: away,
			HomeScore: home,
			Status:    status,
		}},
	}}
}

func TestBuildNotificationEvents_FirstSeenGamesAreBaselineOnly(t *testing.T) {
	current := snapshot(provider.StatusLive, intp(7), intp(0))
	events := BuildNotificationEvents(nil, current, nil)
	assert.Empty(t, events)
}

func TestBuildNotificationEvents_StartTransition(t *testing.T) {
	previous := snapshot(provider.StatusScheduled, nil, nil)
	current := snapshot(provider.StatusLive, nil, nil)

	events := BuildNotificationEvents(previous, current, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "NFL • Game Started", events[0].Title)
	assert.Equal(t, "Bucs at Saints", events[0].Body)
	assert.Equal(t, PrefStart, events[0].Data["type"])
	assert.Equal(t, "nfl", events[0].Data["cardId"])
	assert.Equal(t, "g1", events[0].Data["gameId"])
}

func TestBuildNotificationEvents_ScoreChangeWhileLive(t *testing.T) {
	previous := snapshot(provider.StatusLive, intp(10), nil)
	current := snapshot(provider.StatusLive, intp(17), nil)

	events := BuildNotificationEvents(previous, current, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "NFL • Score Update", events[0].Title)
	assert.Equal(t, "Bucs 17 - Saints -", events[0].Body)
	assert.Equal(t, PrefScore, events[0].Data["type"])
}

func TestBuildNotificationEvents_UnchangedScoreIsSilent(t *testing.T) {
	previous := snapshot(provider.StatusLive, intp(10), intp(3))
	current := snapshot(provider.StatusLive, intp(10), intp(3))
	assert.Empty(t, BuildNotificationEvents(previous, current, nil))
}

func TestBuildNotificationEvents_FinalTakesPrecedence(t *testing.T) {
	// Scheduled straight to final with scores: only the final fires, never
	// a start or score event for the same poll.
	previous := snapshot(provider.StatusScheduled, nil, nil)
	current := snapshot(provider.StatusFinal, intp(24), intp(21))

	events := BuildNotificationEvents(previous, current, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "NFL • Final", events[0].Title)
	assert.Equal(t, "Bucs 24 - Saints 21", events[0].Body)
	assert.Equal(t, PrefFinal, events[0].Data["type"])
}

func TestBuildNotificationEvents_FinalNeverRepeats(t *testing.T) {
	previous := snapshot(provider.StatusFinal, intp(24), intp(21))
	current := snapshot(provider.StatusFinal, intp(24), intp(21))
	assert.Empty(t, BuildNotificationEvents(previous, current, nil))
}

func TestBuildNotificationEvents_PrefsGateTransitions(t *testing.T) {
	previous := snapshot(provider.StatusLive, intp(10), nil)
	current := snapshot(provider.StatusLive, intp(17), nil)

	prefs := PrefsByCard{"nfl": {NotifyStart: true, NotifyScore: false, NotifyFinal: true}}
	assert.Empty(t, BuildNotificationEvents(previous, current, prefs))

	// Cards without an entry fall back to all-on defaults.
	otherPrefs := PrefsByCard{"nba": {}}
	assert.Len(t, BuildNotificationEvents(previous, current, otherPrefs), 1)
}

func TestBuildNotificationEvents_GatedStartFallsThroughToScore(t *testing.T) {
	// A game that goes live and scores in the same poll: with start muted
	// but score on, the score change still notifies.
	previous := snapshot(provider.StatusScheduled, nil, nil)
	current := snapshot(provider.StatusLive, intp(7), intp(0))

	prefs := PrefsByCard{"nfl": {NotifyStart: false, NotifyScore: true, NotifyFinal: true}}
	events := BuildNotificationEvents(previous, current, prefs)
	require.Len(t, events, 1)
	assert.Equal(t, PrefScore, events[0].Data["type"])
	assert.Equal(t, "Bucs 7 - Saints 0", events[0].Body)

	// With both muted the transition stays silent.
	muted := PrefsByCard{"nfl": {NotifyStart: false, NotifyScore: false, NotifyFinal: true}}
	assert.Empty(t, BuildNotificationEvents(previous, current, muted))
}

func TestBuildNotificationEvents_GatedFinalStaysSilent(t *testing.T) {
	// A muted final does not degrade into a start or score event: neither
	// fires for a non-live new snapshot.
	previous := snapshot(provider.StatusLive, intp(17), intp(14))
	current := snapshot(provider.StatusFinal, intp(24), intp(21))

	prefs := PrefsByCard{"nfl": {NotifyStart: true, NotifyScore: true, NotifyFinal: false}}
	assert.Empty(t, BuildNotificationEvents(previous, current, prefs))
}

func TestEnsurePrefs_CopiesOnWrite(t *testing.T) {
	original := PrefsByCard{"nba": {NotifyStart: false}}
	cards := cardsWithIDs("nba", "nfl")

	next, changed := EnsurePrefs(original, cards)
	require.True(t, changed)
	assert.Equal(t, DefaultPrefs, next["nfl"])
	assert.Equal(t, CardPrefs{NotifyStart: false}, next["nba"])

	// The input map was not touched.
	_, ok := original["nfl"]
	assert.False(t, ok)

	same, changed := EnsurePrefs(next, cards)
	assert.False(t, changed)
	assert.Equal(t, next, same)
}

func TestTogglePref(t *testing.T) {
	prefs := PrefsByCard{}

	toggled := TogglePref(prefs, "nfl", PrefScore)
	assert.False(t, toggled["nfl"].NotifyScore)
	assert.True(t, toggled["nfl"].NotifyStart)

	back := TogglePref(toggled, "nfl", PrefScore)
	assert.True(t, back["nfl"].NotifyScore)

	// Original untouched.
	assert.Empty(t, prefs)
}

func TestFormatScoreLine_MissingScoresRenderDash(t *testing.T) {
	game := Game{AwayTeam: "Bucs", HomeTeam: "Saints", AwayScore: intp(17)}
	assert.Equal(t, "Bucs 17 - Saints -", FormatScoreLine(game))

	blank := Game{AwayTeam: "Bucs", HomeTeam: "Saints"}
	assert.Equal(t, "Bucs - - Saints -", FormatScoreLine(blank))
}
