package scoreboard

import (
	"sort"
	"strings"
)

// Selection is the user's chosen leagues and teams. Conceptually sets;
// stored as arrays in raw order. Normalization happens only for
// fingerprinting.
type Selection struct {
	LeagueIDs []string `json:"leagueIds"`
	TeamIDs   []string `json:"teamIds"`
}

// NormalizeIDs trims, drops empties, and sorts a copy of ids. Used for
// fingerprint derivation; stored selections keep their raw order.
func NormalizeIDs(ids []string) []string {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	sort.Strings(normalized)
	return normalized
}

// SelectionID derives the fingerprint that namespaces cached snapshots for
// one selection. Empty when nothing is selected.
func SelectionID(leagueIDs, teamIDs []string) string {
	if len(leagueIDs) == 0 && len(teamIDs) == 0 {
		return ""
	}
	return "leagues:" + strings.Join(NormalizeIDs(leagueIDs), ",") +
		"|teams:" + strings.Join(NormalizeIDs(teamIDs), ",")
}

// ToggleID adds id to the set if absent, removes it if present. Returns a
// new slice; order of remaining entries is preserved.
func ToggleID(current []string, id string) []string {
	for i, existing := range current {
		if existing == id {
			next := make([]string, 0, len(current)-1)
			next = append(next, current[:i]...)
			return append(next, current[i+1:]...)
		}
	}
	next := make([]string, 0, len(current)+1)
	next = append(next, current...)
	return append(next, id)
}
