package scheduling

import "github.com/Dosada05/padel-tournament/models"

type ConflictKind string

const (
	ConflictCourt ConflictKind = "court"
	ConflictPair  ConflictKind = "pair"
)

// Conflict describes another match that collides with a placement.
type Conflict struct {
	Kind    ConflictKind `json:"kind"`
	MatchID string       `json:"match_id"`
	PairID  string       `json:"pair_id,omitempty"`
}

// FindConflicts lists the scheduled matches that would share the court or a pair
// with candidate at its (day, start time). The candidate itself is ignored.
func FindConflicts(matches []models.Match, candidate models.Match) []Conflict {
	if !candidate.IsScheduled() {
		return nil
	}
	var conflicts []Conflict
	for i := range matches {
		other := &matches[i]
		if other.ID == candidate.ID || !other.IsScheduled() {
			continue
		}
		if other.Day != candidate.Day || other.StartTime != candidate.StartTime {
			continue
		}
		if other.CourtID == candidate.CourtID {
			conflicts = append(conflicts, Conflict{Kind: ConflictCourt, MatchID: other.ID})
		}
		for _, pairID := range candidate.PairIDs() {
			if other.HasPair(pairID) {
				conflicts = append(conflicts, Conflict{Kind: ConflictPair, MatchID: other.ID, PairID: pairID})
			}
		}
	}
	return conflicts
}
