package sportsdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// Service resolves raw TheSportsDB events into the canonical wire model.
// The cache is injected so tests can disable or swap it.
type Service struct {
	client *Client
	cache  *cache.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service around a configured client. A nil cache
// falls back to a disabled one.
func NewService(client *Client, c *cache.Cache, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.New(false)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// Leagues returns the curated league table. The list is fixed, so this
// never reaches upstream and never fails.
func (s *Service) Leagues(ctx context.Context) ([]provider.League, error) {
	return provider.Leagues(), nil
}

// Teams returns the resolved team list for a curated league. Unknown league
// IDs yield an empty list rather than an error.
func (s *Service) Teams(ctx context.Context, leagueID string) ([]provider.Team, error) {
	league, ok := provider.CuratedLeagueByID(leagueID)
	if !ok {
		return []provider.Team{}, nil
	}

	cacheKey := "teams:" + leagueID
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]provider.Team), nil
	}

	var payload teamsResponse
	params := url.Values{"l": {league.ProviderName}}
	if err := s.client.get(ctx, "search_all_teams.php", params, &payload); err != nil {
		return nil, fmt.Errorf("fetch teams for league %s: %w", leagueID, err)
	}

	teams := make([]provider.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		if t.IDTeam == "" || t.StrTeam == "" {
			continue
		}
		teams = append(teams, mapTeam(t, leagueID))
	}

	s.cache.Set(cacheKey, teams, cache.TTLTeams)
	return teams, nil
}

// resolvedEvent pairs a raw event with its resolved identities.
type resolvedEvent struct {
	event      rawEvent
	leagueID   string
	homeTeamID string
	awayTeamID string
}

// Scores fetches, filters, resolves, and groups events into score cards.
// A failure in any fan-out request fails the whole call; partial results
// across leagues are never merged.
func (s *Service) Scores(ctx context.Context, q provider.ScoresQuery) (*provider.ScoresResponse, error) {
	events, err := s.fetchEvents(ctx, q)
	if err != nil {
		return nil, err
	}

	// Week window skips date filtering entirely; a bare date filters to
	// that exact UTC calendar date.
	if q.Date != "" && q.Window != provider.WindowWeek {
		targetDate := q.Date
		if len(targetDate) > 10 {
			targetDate = targetDate[:10]
		}
		// Copy, not compact: the unfiltered slice may be cache-owned.
		kept := make([]rawEvent, 0, len(events))
		for _, e := range events {
			if eventDateKey(e, eventStart(e, s.now)) == targetDate {
				kept = append(kept, e)
			}
		}
		events = kept
	}

	resolved := make([]resolvedEvent, 0, len(events))
	for _, e := range events {
		resolved = append(resolved, resolvedEvent{
			event:    e,
			leagueID: provider.ResolveLeagueID(e.IDLeague, e.StrLeague),
		})
	}

	indexes, err := s.teamIndexes(ctx, resolved)
	if err != nil {
		return nil, err
	}

	for i := range resolved {
		idx := indexes[resolved[i].leagueID]
		resolved[i].homeTeamID = idx.Resolve(resolved[i].event.IDHomeTeam, resolved[i].event.StrHomeTeam)
		resolved[i].awayTeamID = idx.Resolve(resolved[i].event.IDAwayTeam, resolved[i].event.StrAwayTeam)
	}

	if len(q.TeamIDs) > 0 {
		wanted := make(map[string]struct{}, len(q.TeamIDs))
		for _, id := range q.TeamIDs {
			wanted[id] = struct{}{}
		}
		kept := resolved[:0]
		for _, r := range resolved {
			if _, home := wanted[r.homeTeamID]; home {
				kept = append(kept, r)
				continue
			}
			if _, away := wanted[r.awayTeamID]; away {
				kept = append(kept, r)
			}
		}
		resolved = kept
	}

	return &provider.ScoresResponse{
		Cards:     s.assembleCards(resolved),
		FetchedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

// fetchEvents gathers the raw candidate events: league filter first, team
// filter otherwise, past and next listings combined and deduplicated by
// event identity. Results are cached briefly keyed by request signature.
func (s *Service) fetchEvents(ctx context.Context, q provider.ScoresQuery) ([]rawEvent, error) {
	cacheKey := fmt.Sprintf("scores:%s|%s", strings.Join(q.LeagueIDs, ","), strings.Join(q.TeamIDs, ","))
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]rawEvent), nil
	}

	var ids []string
	var past, next string
	switch {
	case len(q.LeagueIDs) > 0:
		ids, past, next = q.LeagueIDs, "eventspastleague.php", "eventsnextleague.php"
	case len(q.TeamIDs) > 0:
		ids, past, next = q.TeamIDs, "eventslast.php", "eventsnext.php"
	default:
		return []rawEvent{}, nil
	}

	results := make([][]rawEvent, len(ids))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, id := range ids {
		p.Go(func(ctx context.Context) error {
			events, err := s.fetchPastAndNext(ctx, past, next, id)
			if err != nil {
				return err
			}
			results[i] = events
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	var merged []rawEvent
	for _, events := range results {
		merged = append(merged, events...)
	}
	merged = dedupeEvents(merged)

	s.cache.Set(cacheKey, merged, cache.TTLScores)
	return merged, nil
}

func (s *Service) fetchPastAndNext(ctx context.Context, pastPath, nextPath, id string) ([]rawEvent, error) {
	var pastPayload, nextPayload eventsResponse
	params := url.Values{"id": {id}}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		return s.client.get(ctx, pastPath, params, &pastPayload)
	})
	p.Go(func(ctx context.Context) error {
		return s.client.get(ctx, nextPath, params, &nextPayload)
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return append(pastPayload.Events, nextPayload.Events...), nil
}

// dedupeEvents drops repeated events; past and next listings overlap around
// in-progress games. First occurrence wins.
func dedupeEvents(events []rawEvent) []rawEvent {
	seen := make(map[string]struct{}, len(events))
	deduped := events[:0]
	for i, e := range events {
		key := e.IDEvent
		if key == "" {
			key = fmt.Sprintf("%s-%d", e.IDLeague, i)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, e)
	}
	return deduped
}

// teamIndexes fetches team lists for every resolved league concurrently and
// builds the per-league resolution indexes. Unresolvable ("unknown")
// leagues get no index and fall through to passthrough resolution.
func (s *Service) teamIndexes(ctx context.Context, resolved []resolvedEvent) (map[string]*provider.TeamIndex, error) {
	leagueIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range resolved {
		if r.leagueID == "unknown" {
			continue
		}
		if _, dup := seen[r.leagueID]; dup {
			continue
		}
		seen[r.leagueID] = struct{}{}
		leagueIDs = append(leagueIDs, r.leagueID)
	}

	indexes := make(map[string]*provider.TeamIndex, len(leagueIDs))
	var mu sync.Mutex
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for _, leagueID := range leagueIDs {
		p.Go(func(ctx context.Context) error {
			teams, err := s.Teams(ctx, leagueID)
			if err != nil {
				return err
			}
			mu.Lock()
			indexes[leagueID] = provider.BuildTeamIndex(teams)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("build team indexes: %w", err)
	}
	return indexes, nil
}

// assembleCards groups resolved events into one card per league, in first-
// seen league order. Cards with zero games are never produced.
func (s *Service) assembleCards(resolved []resolvedEvent) []provider.ScoreCard {
	order := make([]string, 0)
	cardsByLeague := make(map[string]*provider.ScoreCard)

	for i, r := range resolved {
		card, ok := cardsByLeague[r.leagueID]
		if !ok {
			card = &provider.ScoreCard{
				ID:       r.leagueID,
				LeagueID: r.leagueID,
				Title:    provider.LeagueTitle(r.leagueID, r.event.StrLeague),
			}
			cardsByLeague[r.leagueID] = card
			order = append(order, r.leagueID)
		}
		card.Games = append(card.Games, mapGame(r.event, r.leagueID, r.homeTeamID, r.awayTeamID, i, s.now))
	}

	cards := make([]provider.ScoreCard, 0, len(order))
	for _, leagueID := range order {
		cards = append(cards, *cardsByLeague[leagueID])
	}
	return cards
}
