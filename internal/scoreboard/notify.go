package scoreboard

import (
	"fmt"

	"github.com/onlyscores/onlyscores-data/internal/provider"
)

// Notification preference keys, one per watched transition.
const (
	PrefStart = "notifyStart"
	PrefScore = "notifyScore"
	PrefFinal = "notifyFinal"
)

// CardPrefs gates which transitions notify for one card.
type CardPrefs struct {
	NotifyStart bool `json:"notifyStart"`
	NotifyScore bool `json:"notifyScore"`
	NotifyFinal bool `json:"notifyFinal"`
}

// DefaultPrefs is applied to any card with no stored entry.
var DefaultPrefs = CardPrefs{NotifyStart: true, NotifyScore: true, NotifyFinal: true}

// PrefsByCard maps card ID to its notification preferences.
type PrefsByCard map[string]CardPrefs

// Event is a notification ready for an external delivery collaborator.
// The diff engine itself never sends anything.
type Event struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// EnsurePrefs lazily creates default preference entries for newly seen
// cards. Returns the (possibly new) map and whether anything was added, so
// callers know when to persist. The input map is not modified.
func EnsurePrefs(prefs PrefsByCard, cards []Card) (PrefsByCard, bool) {
	changed := false
	next := prefs
	for _, card := range cards {
		if _, ok := next[card.ID]; ok {
			continue
		}
		if !changed {
			copied := make(PrefsByCard, len(prefs)+1)
			for id, p := range prefs {
				copied[id] = p
			}
			next = copied
			changed = true
		}
		next[card.ID] = DefaultPrefs
	}
	return next, changed
}

// TogglePref flips one preference flag for a card, creating the entry from
// defaults if absent. Returns a new map.
func TogglePref(prefs PrefsByCard, cardID, key string) PrefsByCard {
	current, ok := prefs[cardID]
	if !ok {
		current = DefaultPrefs
	}
	switch key {
	case PrefStart:
		current.NotifyStart = !current.NotifyStart
	case PrefScore:
		current.NotifyScore = !current.NotifyScore
	case PrefFinal:
		current.NotifyFinal = !current.NotifyFinal
	}
	next := make(PrefsByCard, len(prefs)+1)
	for id, p := range prefs {
		next[id] = p
	}
	next[cardID] = current
	return next
}

// BuildNotificationEvents diffs two snapshots per game and emits one event
// for each watched transition, gated by the owning card's preferences.
// Games absent from previous never notify — first-seen games are baseline
// only. Callers must suppress diffing entirely until a baseline snapshot
// exists and must advance the baseline to current after a successful diff.
func BuildNotificationEvents(previous, current []Card, prefs PrefsByCard) []Event {
	previousByGameID := make(map[string]Game)
	for _, card := range previous {
		for _, game := range card.Games {
			previousByGameID[game.ID] = game
		}
	}

	var events []Event
	for _, card := range current {
		cardPrefs, ok := prefs[card.ID]
		if !ok {
			cardPrefs = DefaultPrefs
		}
		for _, game := range card.Games {
			previousGame, seen := previousByGameID[game.ID]
			if !seen {
				continue
			}
			key := resolveTransition(previousGame, game, cardPrefs)
			if key == "" {
				continue
			}
			events = append(events, Event{
				Title: card.Title + " • " + transitionLabel(key),
				Body:  transitionBody(key, game),
				Data: map[string]string{
					"cardId": card.ID,
					"gameId": game.ID,
					"type":   key,
				},
			})
		}
	}
	return events
}

// resolveTransition classifies the state change between two observations of
// one game. Final takes precedence: a game that jumps scheduled→final
// between polls reports only the final. Each branch is gated by its own
// preference, and a disabled branch falls through to the next one, so a
// gated start still surfaces a simultaneous score change when score
// notifications are on.
func resolveTransition(previous, current Game, prefs CardPrefs) string {
	if prefs.NotifyFinal && previous.Status != provider.StatusFinal && current.Status == provider.StatusFinal {
		return PrefFinal
	}
	if prefs.NotifyStart && previous.Status == provider.StatusScheduled && current.Status == provider.StatusLive {
		return PrefStart
	}
	if prefs.NotifyScore && current.Status == provider.StatusLive && scoreChanged(previous, current) {
		return PrefScore
	}
	return ""
}

func scoreChanged(previous, current Game) bool {
	return !scoreEqual(previous.HomeScore, current.HomeScore) ||
		!scoreEqual(previous.AwayScore, current.AwayScore)
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func transitionLabel(key string) string {
	switch key {
	case PrefFinal:
		return "Final"
	case PrefStart:
		return "Game Started"
	default:
		return "Score Update"
	}
}

// transitionBody renders the matchup for a start event and the score line
// for everything else.
func transitionBody(key string, game Game) string {
	if key == PrefStart {
		return fmt.Sprintf("%s at %s", game.AwayTeam, game.HomeTeam)
	}
	return FormatScoreLine(game)
}

// FormatScoreLine renders "{away} {awayScore} - {home} {homeScore}" with
// missing scores shown as "-".
func FormatScoreLine(game Game) string {
	return fmt.Sprintf("%s %s - %s %s",
		game.AwayTeam, formatScoreValue(game.AwayScore),
		game.HomeTeam, formatScoreValue(game.HomeScore))
}

func formatScoreValue(score *int) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *score)
}
