package scoreboard

import "github.com/onlyscores/onlyscores-data/internal/provider"

// FilterCardsByTeamIDs keeps only games involving one of the given teams,
// dropping cards left with no games. With no team filter the input passes
// through untouched.
func FilterCardsByTeamIDs(cards []provider.ScoreCard, teamIDs []string) []provider.ScoreCard {
	if len(teamIDs) == 0 {
		return cards
	}
	wanted := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	filtered := make([]provider.ScoreCard, 0, len(cards))
	for _, card := range cards {
		games := make([]provider.Game, 0, len(card.Games))
		for _, g := range card.Games {
			if _, home := wanted[g.HomeTeamID]; home {
				games = append(games, g)
				continue
			}
			if _, away := wanted[g.AwayTeamID]; away {
				games = append(games, g)
			}
		}
		if len(games) == 0 {
			continue
		}
		card.Games = games
		filtered = append(filtered, card)
	}
	return filtered
}
