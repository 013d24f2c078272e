package provider

import "strings"

// Status markers, checked final first, then live, then explicitly
// scheduled. Long phrases match as substrings of the lower-cased raw
// status; short codes match only as whole tokens, since "Not Started"
// contains "ot" and "Suspended" contains "pen".
var (
	finalSubstrings = []string{"final", "finished", "full time", "match ended"}
	finalTokens     = []string{"ft", "ended", "aet", "pen"}

	liveSubstrings = []string{"live", "in play", "in progress", "halftime", "quarter", "overtime"}
	liveTokens     = []string{"ht", "half", "q1", "q2", "q3", "q4", "1h", "2h", "ot", "et"}

	scheduledSubstrings = []string{"not started", "scheduled", "postpon", "cancel", "delay", "suspend"}
	scheduledTokens     = []string{"ns", "tbd", "ppd"}
)

// ClassifyStatus maps a free-text provider status onto the closed enum.
//
// When the raw status is empty the result depends on the provider:
// TheSportsDB leaves status blank on completed historical events, so the
// backend path passes StatusFinal as emptyWithScore; a feed that blanks the
// field mid-game would pass StatusLive instead. Without any score signal an
// empty status is always scheduled.
func ClassifyStatus(raw string, hasScore bool, emptyWithScore GameStatus) GameStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		if hasScore {
			return emptyWithScore
		}
		return StatusScheduled
	}
	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	if matchesAny(normalized, tokens, finalSubstrings, finalTokens) {
		return StatusFinal
	}
	if matchesAny(normalized, tokens, liveSubstrings, liveTokens) {
		return StatusLive
	}
	if matchesAny(normalized, tokens, scheduledSubstrings, scheduledTokens) {
		return StatusScheduled
	}
	// Unrecognized status text: a present score is the only hint the game
	// has begun.
	if hasScore {
		return StatusLive
	}
	return StatusScheduled
}

func matchesAny(s string, tokens, substrings, tokenMarkers []string) bool {
	for _, marker := range substrings {
		if strings.Contains(s, marker) {
			return true
		}
	}
	for _, marker := range tokenMarkers {
		for _, token := range tokens {
			if token == marker {
				return true
			}
		}
	}
	return false
}
