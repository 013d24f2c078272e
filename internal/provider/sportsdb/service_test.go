package sportsdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// newTestService wires a service against a stub TheSportsDB server. The
// high per-minute budget keeps the limiter out of the way.
func newTestService(t *testing.T, handler http.HandlerFunc, cacheEnabled bool) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "testkey", 60000, nil)
	service := NewService(client, cache.New(cacheEnabled), nil)
	service.now = fixedNow
	return service
}

const nbaTeamsJSON = `{"teams": [
	{"idTeam": "t-lakers", "strTeam": "Los Angeles Lakers", "strTeamShort": "Lakers", "strTeamBadge": "http://img/lal.png"},
	{"idTeam": "t-celtics", "strTeam": "Boston Celtics", "strTeamShort": "Celtics"}
]}`

func nbaScoresHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/testkey/search_all_teams.php":
			require.Equal(t, "NBA", r.URL.Query().Get("l"))
			fmt.Fprint(w, nbaTeamsJSON)
		case "/testkey/eventspastleague.php":
			require.Equal(t, "4387", r.URL.Query().Get("id"))
			fmt.Fprint(w, `{"events": [
				{"idEvent": "e-live", "idLeague": "4387", "strLeague": "NBA",
				 "strHomeTeam": "Boston Celtics", "strAwayTeam": "Los Angeles Lakers",
				 "intHomeScore": "75", "intAwayScore": "80", "strStatus": "Q3",
				 "dateEvent": "2026-01-10", "strTime": "19:30:00"}
			]}`)
		case "/testkey/eventsnextleague.php":
			// The live event shows up in both listings around tip-off.
			fmt.Fprint(w, `{"events": [
				{"idEvent": "e-live", "idLeague": "4387", "strLeague": "NBA",
				 "strHomeTeam": "Boston Celtics", "strAwayTeam": "Los Angeles Lakers",
				 "intHomeScore": "75", "intAwayScore": "80", "strStatus": "Q3",
				 "dateEvent": "2026-01-10", "strTime": "19:30:00"},
				{"idEvent": "e-next", "idLeague": "4387", "strLeague": "NBA",
				 "strHomeTeam": "Los Angeles Lakers", "strAwayTeam": "Boston Celtics",
				 "dateEvent": "2026-01-12", "strTime": "20:00:00"}
			]}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestNewService_NilCacheFallsBackToDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, nbaTeamsJSON)
	}))
	t.Cleanup(server.Close)

	service := NewService(NewClient(server.URL, "testkey", 60000, nil), nil, nil)
	teams, err := service.Teams(context.Background(), "4387")
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

func TestServiceLeagues_CuratedTableNeverHitsUpstream(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected upstream call %s", r.URL.Path)
	}, false)

	leagues, err := service.Leagues(context.Background())
	require.NoError(t, err)
	require.Len(t, leagues, 10)
	assert.Equal(t, "NFL", leagues[0].Name)
}

func TestServiceTeams(t *testing.T) {
	calls := 0
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/testkey/search_all_teams.php", r.URL.Path)
		fmt.Fprint(w, `{"teams": [
			{"idTeam": "t-1", "strTeam": "Boston Celtics", "strTeamShort": "Celtics"},
			{"idTeam": "", "strTeam": "Ghost Team"},
			{"idTeam": "t-3", "strTeam": ""}
		]}`)
	}, true)

	teams, err := service.Teams(context.Background(), "4387")
	require.NoError(t, err)
	require.Len(t, teams, 1) // records missing ID or name are dropped
	assert.Equal(t, "t-1", teams[0].ID)
	assert.Equal(t, "4387", teams[0].LeagueID)

	// Second call is served from cache.
	_, err = service.Teams(context.Background(), "4387")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Unknown league: empty list, no upstream call, no error.
	teams, err = service.Teams(context.Background(), "not-a-league")
	require.NoError(t, err)
	assert.Empty(t, teams)
	assert.Equal(t, 1, calls)
}

func TestServiceScores_LiveGameEndToEnd(t *testing.T) {
	service := newTestService(t, nbaScoresHandler(t), false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{LeagueIDs: []string{"4387"}})
	require.NoError(t, err)
	require.Len(t, resp.Cards, 1)

	card := resp.Cards[0]
	assert.Equal(t, "4387", card.ID)
	assert.Equal(t, "NBA", card.Title)
	require.Len(t, card.Games, 2) // duplicate live event deduplicated

	live := card.Games[0]
	assert.Equal(t, "e-live", live.ID)
	assert.Equal(t, provider.StatusLive, live.Status)
	require.NotNil(t, live.HomeScore)
	require.NotNil(t, live.AwayScore)
	assert.Equal(t, 75, *live.HomeScore)
	assert.Equal(t, 80, *live.AwayScore)

	// Names resolved to canonical team IDs through the roster index.
	assert.Equal(t, "t-celtics", live.HomeTeamID)
	assert.Equal(t, "t-lakers", live.AwayTeamID)

	next := card.Games[1]
	assert.Equal(t, provider.StatusScheduled, next.Status)
	assert.Nil(t, next.HomeScore)

	assert.Equal(t, "2026-01-10T18:00:00Z", resp.FetchedAt)
}

func TestServiceScores_UnmatchedTeamFallsBackToRawID(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/testkey/search_all_teams.php":
			fmt.Fprint(w, nbaTeamsJSON)
		case "/testkey/eventspastleague.php":
			fmt.Fprint(w, `{"events": [
				{"idEvent": "e-odd", "idLeague": "4387", "strLeague": "NBA",
				 "idHomeTeam": "t-celtics", "strHomeTeam": "Boston Celtics",
				 "idAwayTeam": "t-mystery", "strAwayTeam": "Expansion Squad",
				 "intHomeScore": "80", "intAwayScore": "75", "strStatus": "Q3",
				 "dateEvent": "2026-01-10", "strTime": "19:30:00"}
			]}`)
		case "/testkey/eventsnextleague.php":
			fmt.Fprint(w, `{"events": null}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}, false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{LeagueIDs: []string{"4387"}})
	require.NoError(t, err)
	require.Len(t, resp.Cards, 1)
	require.Len(t, resp.Cards[0].Games, 1)

	game := resp.Cards[0].Games[0]
	assert.Equal(t, provider.StatusLive, game.Status)
	require.NotNil(t, game.HomeScore)
	assert.Equal(t, 80, *game.HomeScore)
	assert.Equal(t, "t-celtics", game.HomeTeamID)
	// No roster match by ID or name: the raw provider ID passes through.
	assert.Equal(t, "t-mystery", game.AwayTeamID)
}

func TestServiceScores_DayWindowFiltersByDate(t *testing.T) {
	service := newTestService(t, nbaScoresHandler(t), false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"},
		Date:      "2026-01-12",
	})
	require.NoError(t, err)
	require.Len(t, resp.Cards, 1)
	require.Len(t, resp.Cards[0].Games, 1)
	assert.Equal(t, "e-next", resp.Cards[0].Games[0].ID)

	// A date with no games yields no cards at all, never an empty card.
	resp, err = service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"},
		Date:      "2026-03-01",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Cards)
}

func TestServiceScores_WeekWindowIgnoresDate(t *testing.T) {
	service := newTestService(t, nbaScoresHandler(t), false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"},
		Date:      "2026-01-12",
		Window:    provider.WindowWeek,
	})
	require.NoError(t, err)
	require.Len(t, resp.Cards, 1)
	assert.Len(t, resp.Cards[0].Games, 2)
}

func TestServiceScores_TeamFilter(t *testing.T) {
	service := newTestService(t, nbaScoresHandler(t), false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"},
		TeamIDs:   []string{"t-lakers"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Cards, 1)
	assert.Len(t, resp.Cards[0].Games, 2) // lakers play in both

	resp, err = service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"},
		TeamIDs:   []string{"t-nobody"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Cards)
}

func TestServiceScores_UpstreamFailureFailsWhole(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}, false)

	_, err := service.Scores(context.Background(), provider.ScoresQuery{LeagueIDs: []string{"4387"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch events")
}

func TestServiceScores_EmptyQueryShortCircuits(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected upstream call %s", r.URL.Path)
	}, false)

	resp, err := service.Scores(context.Background(), provider.ScoresQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Cards)
}

func TestServiceScores_CachedEventsNotCorruptedByDateFilter(t *testing.T) {
	service := newTestService(t, nbaScoresHandler(t), true)

	// First call filters down to one game, second call to the other date.
	// With a shared cached slice a compacting filter would clobber it.
	first, err := service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"}, Date: "2026-01-10",
	})
	require.NoError(t, err)
	require.Len(t, first.Cards, 1)
	require.Len(t, first.Cards[0].Games, 1)

	second, err := service.Scores(context.Background(), provider.ScoresQuery{
		LeagueIDs: []string{"4387"}, Date: "2026-01-12",
	})
	require.NoError(t, err)
	require.Len(t, second.Cards, 1)
	require.Len(t, second.Cards[0].Games, 1)
	assert.Equal(t, "e-next", second.Cards[0].Games[0].ID)
}

func TestDedupeEvents(t *testing.T) {
	events := []rawEvent{
		{IDEvent: "a"},
		{IDEvent: "b"},
		{IDEvent: "a", StrStatus: "changed"},
		{IDLeague: "4387"}, // no native ID, kept positionally
	}
	deduped := dedupeEvents(events)
	require.Len(t, deduped, 3)
	assert.Equal(t, "a", deduped[0].IDEvent)
	assert.Equal(t, "", deduped[0].StrStatus) // first occurrence wins
	assert.Equal(t, "b", deduped[1].IDEvent)
}

func TestClientGet_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/k/bad.php":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			fmt.Fprint(w, "{not json")
		}
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "k", 60000, nil)

	var out eventsResponse
	err := client.get(context.Background(), "bad.php", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 500")

	err = client.get(context.Background(), "garbled.php", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err = client.get(cancelled, "any.php", nil, &out)
	require.Error(t, err)
}
