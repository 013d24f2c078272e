package provider

// TeamIndex resolves raw event team references against a league's resolved
// team list: direct ID membership first, then fuzzy name-key match.
type TeamIndex struct {
	ids      map[string]struct{}
	nameToID map[string]string
}

// BuildTeamIndex indexes a league's teams by ID and by normalized name.
// Short names are indexed too since upstream events use either form.
func BuildTeamIndex(teams []Team) *TeamIndex {
	idx := &TeamIndex{
		ids:      make(map[string]struct{}, len(teams)),
		nameToID: make(map[string]string, 2*len(teams)),
	}
	for _, team := range teams {
		idx.ids[team.ID] = struct{}{}
		idx.nameToID[NormalizeKey(team.Name)] = team.ID
		if team.ShortName != "" {
			idx.nameToID[NormalizeKey(team.ShortName)] = team.ID
		}
	}
	return idx
}

// Resolve maps a raw team ID and/or name to a canonical team ID. Unmatched
// raw values pass through untouched so downstream layers can still render
// something; "unknown" is returned only when the event carries nothing at
// all. Never fails. A nil index degrades straight to passthrough.
func (idx *TeamIndex) Resolve(rawID, rawName string) string {
	if idx != nil {
		if rawID != "" {
			if _, ok := idx.ids[rawID]; ok {
				return rawID
			}
		}
		if rawName != "" {
			if id, ok := idx.nameToID[NormalizeKey(rawName)]; ok {
				return id
			}
		}
	}
	if rawID != "" {
		return rawID
	}
	if rawName != "" {
		return rawName
	}
	return "unknown"
}
