package scoreboard

// ApplyCardOrder merges a fresh card list with a persisted explicit order.
// Cards named by order come first, in order's sequence (IDs with no
// matching card are skipped); cards order does not mention follow in their
// original relative position. This is a stable partition merge, not a sort:
// feeding the output's IDs back as order is a fixed point.
func ApplyCardOrder(cards []Card, order []string) []Card {
	if len(order) == 0 {
		return cards
	}

	byID := make(map[string]Card, len(cards))
	for _, card := range cards {
		byID[card.ID] = card
	}
	ordered := make([]Card, 0, len(cards))
	inOrder := make(map[string]struct{}, len(order))
	for _, id := range order {
		inOrder[id] = struct{}{}
		if card, ok := byID[id]; ok {
			ordered = append(ordered, card)
		}
	}
	for _, card := range cards {
		if _, ok := inOrder[card.ID]; !ok {
			ordered = append(ordered, card)
		}
	}
	return ordered
}

// CardOrder extracts the explicit ordering of a card list for persistence.
func CardOrder(cards []Card) []string {
	order := make([]string, 0, len(cards))
	for _, card := range cards {
		order = append(order, card.ID)
	}
	return order
}
