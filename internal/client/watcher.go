package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/onlyscores/onlyscores-data/internal/config"
	"github.com/onlyscores/onlyscores-data/internal/provider"
	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// Watcher polls the backend on an interval while foregrounded and runs the
// full client pipeline per cycle: fetch → team-filter → normalize → apply
// card order → notification diff → persist snapshot. At most one fetch is
// in flight at a time; overlapping triggers are dropped, not queued.
type Watcher struct {
	client   *Client
	store    Store
	notifier Notifier
	logger   *slog.Logger

	interval   time.Duration
	latestOnly bool
	pushToken  string
	loc        *time.Location
	now        func() time.Time

	fetching atomic.Bool
	paused   atomic.Bool

	mu          sync.Mutex
	selection   scoreboard.Selection
	prefs       scoreboard.PrefsByCard
	cardOrder   []string
	baseline    []scoreboard.Card
	hasBaseline bool
	cards       []scoreboard.Card
	fetchedAt   string
	leagues     []provider.League
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the poll interval, clamped to the supported range.
func WithInterval(seconds int) Option {
	return func(w *Watcher) {
		w.interval = time.Duration(config.ClampRefreshSeconds(seconds)) * time.Second
	}
}

// WithLatestOnly reduces each card to its single most relevant game.
func WithLatestOnly(enabled bool) Option {
	return func(w *Watcher) { w.latestOnly = enabled }
}

// WithLocation sets the zone used for time labels and the local date key.
func WithLocation(loc *time.Location) Option {
	return func(w *Watcher) { w.loc = loc }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// WithPushToken enables device-subscription sync after successful fetches.
func WithPushToken(token string) Option {
	return func(w *Watcher) { w.pushToken = token }
}

// NewWatcher assembles a watcher. Preferences and snapshots are hydrated
// from the store when Run (or Hydrate) is called.
func NewWatcher(c *Client, store Store, notifier Notifier, logger *slog.Logger, opts ...Option) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		client:   c,
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: config.DefaultRefreshSeconds * time.Second,
		loc:      time.Local,
		now:      time.Now,
		prefs:    scoreboard.PrefsByCard{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Hydrate loads persisted selection, card order, notification preferences,
// and settings. Store read failures are swallowed: in-memory state stays
// authoritative for the session.
func (w *Watcher) Hydrate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	var selection scoreboard.Selection
	if ok, err := w.store.Read(KeySelection, &selection); err == nil && ok {
		w.selection = selection
	}
	var order []string
	if ok, err := w.store.Read(KeyCardOrder, &order); err == nil && ok && len(order) > 0 {
		w.cardOrder = order
	}
	var prefs scoreboard.PrefsByCard
	if ok, err := w.store.Read(KeyPrefs, &prefs); err == nil && ok && prefs != nil {
		w.prefs = prefs
	}
	var seconds int
	if ok, err := w.store.Read(KeyRefreshSecond, &seconds); err == nil && ok {
		w.interval = time.Duration(config.ClampRefreshSeconds(seconds)) * time.Second
	}
	var latestOnly bool
	if ok, err := w.store.Read(KeyLatestOnly, &latestOnly); err == nil && ok {
		w.latestOnly = latestOnly
	}
	if w.pushToken == "" {
		var token string
		if ok, err := w.store.Read(KeyPushToken, &token); err == nil && ok {
			w.pushToken = token
		}
	}
}

// SetSelection replaces the active selection and persists it. The
// notification baseline resets: the next fetch re-establishes it without
// emitting events.
func (w *Watcher) SetSelection(selection scoreboard.Selection) {
	w.mu.Lock()
	w.selection = selection
	w.baseline = nil
	w.hasBaseline = false
	w.fetchedAt = ""
	w.mu.Unlock()
	if err := w.store.Write(KeySelection, selection); err != nil {
		w.logger.Warn("persist selection failed", "error", err)
	}
}

// Selection returns the active selection.
func (w *Watcher) Selection() scoreboard.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection
}

// Cards returns the current display cards, reduced when latest-only is on.
func (w *Watcher) Cards() []scoreboard.Card {
	w.mu.Lock()
	cards := make([]scoreboard.Card, len(w.cards))
	copy(cards, w.cards)
	w.mu.Unlock()

	if !w.latestOnly {
		return cards
	}
	for i := range cards {
		cards[i].Games = scoreboard.SelectLatestOnly(cards[i].Games)
	}
	return cards
}

// FetchedAt returns the timestamp of the data currently held.
func (w *Watcher) FetchedAt() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fetchedAt
}

// MoveCard moves a card to a new position and persists the ordering.
// This is the "move" intent the UI layer emits.
func (w *Watcher) MoveCard(cardID string, toIndex int) {
	w.mu.Lock()
	fromIndex := -1
	for i, card := range w.cards {
		if card.ID == cardID {
			fromIndex = i
			break
		}
	}
	if fromIndex < 0 {
		w.mu.Unlock()
		return
	}
	moved := w.cards[fromIndex]
	rest := append(w.cards[:fromIndex:fromIndex], w.cards[fromIndex+1:]...)
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(rest) {
		toIndex = len(rest)
	}
	next := make([]scoreboard.Card, 0, len(rest)+1)
	next = append(next, rest[:toIndex]...)
	next = append(next, moved)
	next = append(next, rest[toIndex:]...)
	w.cards = next
	w.cardOrder = scoreboard.CardOrder(next)
	order := w.cardOrder
	w.mu.Unlock()

	if err := w.store.Write(KeyCardOrder, order); err != nil {
		w.logger.Warn("persist card order failed", "error", err)
	}
}

// ToggleNotification flips one notification flag for a card and persists
// the preference map. This is the "toggle" intent the UI layer emits.
func (w *Watcher) ToggleNotification(cardID, key string) {
	w.mu.Lock()
	w.prefs = scoreboard.TogglePref(w.prefs, cardID, key)
	prefs := w.prefs
	w.mu.Unlock()

	if err := w.store.Write(KeyPrefs, prefs); err != nil {
		w.logger.Warn("persist notification prefs failed", "error", err)
	}
}

// Pause suspends polling, mirroring the app moving to the background.
func (w *Watcher) Pause() { w.paused.Store(true) }

// Resume re-enables polling after a Pause.
func (w *Watcher) Resume() { w.paused.Store(false) }

// Run hydrates state, performs an initial fetch, then polls until ctx is
// cancelled. A failed cycle logs, falls back to cached data, and waits for
// the next tick — it never stops the loop.
func (w *Watcher) Run(ctx context.Context) error {
	w.Hydrate()

	w.mu.Lock()
	selection := w.selection
	interval := w.interval
	w.mu.Unlock()
	if len(selection.LeagueIDs) == 0 && len(selection.TeamIDs) == 0 {
		return fmt.Errorf("no leagues or teams selected")
	}

	go w.client.TrackEvent(ctx, "app_open", map[string]string{"source": "cold_start"})

	if err := w.FetchOnce(ctx, "initial"); err != nil {
		w.logger.Warn("initial fetch failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	w.logger.Info("watcher started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
			if w.paused.Load() {
				continue
			}
			if err := w.FetchOnce(ctx, "auto"); err != nil {
				w.logger.Warn("fetch failed", "error", err)
			}
		}
	}
}

// FetchOnce runs a single fetch cycle. Reentrant calls while a cycle is in
// flight return immediately. On failure the last cached snapshot for the
// selection is restored and the error returned; the notification baseline
// is only ever advanced on success.
func (w *Watcher) FetchOnce(ctx context.Context, source string) error {
	if !w.fetching.CompareAndSwap(false, true) {
		return nil
	}
	defer w.fetching.Store(false)

	go w.client.TrackEvent(ctx, "refresh", map[string]string{"source": source})

	w.mu.Lock()
	selection := w.selection
	w.mu.Unlock()
	selectionID := scoreboard.SelectionID(selection.LeagueIDs, selection.TeamIDs)

	cards, fetchedAt, err := w.fetchCards(ctx, selection)
	if err != nil {
		w.restoreCachedSnapshot(selectionID)
		return fmt.Errorf("fetch scores: %w", err)
	}

	w.mu.Lock()
	ordered := scoreboard.ApplyCardOrder(cards, w.cardOrder)

	var events []scoreboard.Event
	if w.hasBaseline {
		events = scoreboard.BuildNotificationEvents(w.baseline, ordered, w.prefs)
	}
	w.baseline = ordered
	w.hasBaseline = true
	w.cards = ordered
	w.fetchedAt = fetchedAt

	prefs, prefsChanged := scoreboard.EnsurePrefs(w.prefs, ordered)
	w.prefs = prefs
	w.mu.Unlock()

	for _, event := range events {
		if err := w.notifier.Notify(ctx, event); err != nil {
			w.logger.Warn("notification delivery failed", "title", event.Title, "error", err)
		}
	}
	if prefsChanged {
		if err := w.store.Write(KeyPrefs, prefs); err != nil {
			w.logger.Warn("persist notification prefs failed", "error", err)
		}
	}
	w.persistSnapshot(selectionID, ordered, fetchedAt)
	w.syncSubscription(ctx, selection, prefs)

	return nil
}

// fetchCards performs the network half of a cycle: score requests (NFL
// leagues get the week window), client-side team filtering, team lookups
// for every league present, and display normalization. Any fan-out failure
// fails the whole cycle; partial merges are never attempted.
func (w *Watcher) fetchCards(ctx context.Context, selection scoreboard.Selection) ([]scoreboard.Card, string, error) {
	leagues, err := w.loadLeagues(ctx)
	if err != nil {
		return nil, "", err
	}

	requests := buildScoreRequests(selection, leagues, w.now().In(w.loc).Format("2006-01-02"))

	results := make([]*provider.ScoresResponse, len(requests))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, request := range requests {
		p.Go(func(ctx context.Context) error {
			resp, err := w.client.Scores(ctx, request)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, "", err
	}

	// Newest response timestamp wins, so fan-out completion order cannot
	// change the result. Falls back to the local clock when nothing parses.
	var providerCards []provider.ScoreCard
	var fetchedAt string
	var newest time.Time
	for _, resp := range results {
		providerCards = append(providerCards, resp.Cards...)
		ts, err := time.Parse(time.RFC3339, resp.FetchedAt)
		if err != nil {
			continue
		}
		if fetchedAt == "" || ts.After(newest) {
			fetchedAt, newest = resp.FetchedAt, ts
		}
	}
	if fetchedAt == "" {
		fetchedAt = w.now().UTC().Format(time.RFC3339)
	}
	providerCards = scoreboard.FilterCardsByTeamIDs(providerCards, selection.TeamIDs)

	lookup, err := w.teamLookup(ctx, providerCards)
	if err != nil {
		return nil, "", err
	}

	return scoreboard.NormalizeCards(providerCards, lookup, w.loc), fetchedAt, nil
}

// buildScoreRequests splits the selection into one week-window request for
// NFL leagues and one default request for everything else. NFL plays
// weekly, so a single-day window would blank the card six days out of
// seven.
func buildScoreRequests(selection scoreboard.Selection, leagues []provider.League, today string) []provider.ScoresQuery {
	nflIDs := make(map[string]struct{})
	for _, league := range leagues {
		if isNFLLeague(league) {
			nflIDs[league.ID] = struct{}{}
		}
	}

	var nfl, other []string
	for _, id := range selection.LeagueIDs {
		if _, ok := nflIDs[id]; ok {
			nfl = append(nfl, id)
		} else {
			other = append(other, id)
		}
	}

	var requests []provider.ScoresQuery
	if len(nfl) > 0 {
		requests = append(requests, provider.ScoresQuery{
			LeagueIDs: nfl,
			TeamIDs:   selection.TeamIDs,
			Date:      today,
			Window:    provider.WindowWeek,
		})
	}
	if len(other) > 0 {
		requests = append(requests, provider.ScoresQuery{
			LeagueIDs: other,
			TeamIDs:   selection.TeamIDs,
		})
	}
	if len(requests) == 0 {
		requests = append(requests, provider.ScoresQuery{
			LeagueIDs: selection.LeagueIDs,
			TeamIDs:   selection.TeamIDs,
		})
	}
	return requests
}

func isNFLLeague(league provider.League) bool {
	id := strings.ToLower(strings.TrimSpace(league.ID))
	name := strings.ToLower(strings.TrimSpace(league.Name))
	return id == "nfl" || strings.HasPrefix(id, "nfl-") || strings.Contains(name, "nfl")
}

// loadLeagues fetches the league list once and keeps it for the session.
func (w *Watcher) loadLeagues(ctx context.Context) ([]provider.League, error) {
	w.mu.Lock()
	cached := w.leagues
	w.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	leagues, err := w.client.Leagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leagues: %w", err)
	}
	w.mu.Lock()
	w.leagues = leagues
	w.mu.Unlock()
	return leagues, nil
}

// teamLookup fetches the team list for every league present in the cards
// and merges them into one display lookup.
func (w *Watcher) teamLookup(ctx context.Context, cards []provider.ScoreCard) (map[string]scoreboard.TeamDisplay, error) {
	leagueIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, card := range cards {
		if _, dup := seen[card.LeagueID]; dup {
			continue
		}
		seen[card.LeagueID] = struct{}{}
		leagueIDs = append(leagueIDs, card.LeagueID)
	}

	results := make([][]provider.Team, len(leagueIDs))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, leagueID := range leagueIDs {
		p.Go(func(ctx context.Context) error {
			teams, err := w.client.Teams(ctx, leagueID)
			if err != nil {
				return err
			}
			results[i] = teams
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	var teams []provider.Team
	for _, batch := range results {
		teams = append(teams, batch...)
	}
	return scoreboard.BuildTeamLookup(teams), nil
}

// restoreCachedSnapshot falls back to the last persisted snapshot for the
// selection after a failed fetch. Cached data never establishes a
// notification baseline.
func (w *Watcher) restoreCachedSnapshot(selectionID string) {
	if selectionID == "" {
		return
	}
	var order []string
	if ok, err := w.store.Read(KeyCardOrder, &order); err == nil && ok && len(order) > 0 {
		w.mu.Lock()
		w.cardOrder = order
		w.mu.Unlock()
	}
	var snapshots SnapshotsBySelection
	if ok, err := w.store.Read(KeySnapshots, &snapshots); err != nil || !ok {
		return
	}
	snapshot, ok := snapshots[selectionID]
	if !ok {
		return
	}
	w.mu.Lock()
	w.cards = scoreboard.ApplyCardOrder(snapshot.Cards, w.cardOrder)
	w.fetchedAt = snapshot.FetchedAt
	prefs, changed := scoreboard.EnsurePrefs(w.prefs, snapshot.Cards)
	w.prefs = prefs
	w.mu.Unlock()

	if changed {
		if err := w.store.Write(KeyPrefs, prefs); err != nil {
			w.logger.Warn("persist notification prefs failed", "error", err)
		}
	}
	w.logger.Info("using cached snapshot", "fetched_at", snapshot.FetchedAt)
}

// persistSnapshot stores the cycle result under the selection fingerprint.
// Persistence failures are swallowed; in-memory state stays authoritative.
func (w *Watcher) persistSnapshot(selectionID string, cards []scoreboard.Card, fetchedAt string) {
	if selectionID == "" {
		return
	}
	var snapshots SnapshotsBySelection
	if ok, err := w.store.Read(KeySnapshots, &snapshots); err != nil || !ok || snapshots == nil {
		snapshots = SnapshotsBySelection{}
	}
	snapshots[selectionID] = Snapshot{
		SelectionID: selectionID,
		FetchedAt:   fetchedAt,
		Cards:       cards,
	}
	if err := w.store.Write(KeySnapshots, snapshots); err != nil {
		w.logger.Warn("persist snapshot failed", "error", err)
	}
}

// syncSubscription pushes the device subscription to the backend when a
// push token is configured and at least one card still wants alerts.
// Fire-and-forget: failures never block the pipeline.
func (w *Watcher) syncSubscription(ctx context.Context, selection scoreboard.Selection, prefs scoreboard.PrefsByCard) {
	if w.pushToken == "" {
		return
	}
	enabled := false
	for _, p := range prefs {
		if p.NotifyStart || p.NotifyScore || p.NotifyFinal {
			enabled = true
			break
		}
	}
	if !enabled {
		return
	}
	go func() {
		sub := Subscription{
			PushToken:   w.pushToken,
			LeagueIDs:   selection.LeagueIDs,
			TeamIDs:     selection.TeamIDs,
			Preferences: prefs,
		}
		if err := w.client.SubscribeDevice(ctx, sub); err != nil {
			w.logger.Debug("subscription sync failed", "error", err)
		}
	}()
}
