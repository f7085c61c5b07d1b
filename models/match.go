package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusPlaying   MatchStatus = "playing"
	MatchStatusCompleted MatchStatus = "completed"
	// MatchStatusFinished is the legacy spelling of completed still found in older rows.
	MatchStatusFinished MatchStatus = "finished"
)

// IsDone reports whether the status marks a played match.
func (s MatchStatus) IsDone() bool {
	return s == MatchStatusCompleted || s == MatchStatusFinished
}

type Stage string

const (
	StageGroups       Stage = "groups"
	StageRoundOf16    Stage = "round_of_16"
	StageQuarterfinal Stage = "quarterfinal"
	StageSemifinal    Stage = "semifinal"
	StageFinal        Stage = "final"
	StageThirdPlace   Stage = "third_place"
)

var validStages = map[Stage]bool{
	StageGroups:       true,
	StageRoundOf16:    true,
	StageQuarterfinal: true,
	StageSemifinal:    true,
	StageFinal:        true,
	StageThirdPlace:   true,
}

func (s Stage) Valid() bool {
	return validStages[s]
}

// IsKnockout reports whether the stage belongs to the elimination bracket.
func (s Stage) IsKnockout() bool {
	return s.Valid() && s != StageGroups
}

// KnockoutStages lists every elimination stage, earliest first.
func KnockoutStages() []Stage {
	return []Stage{StageRoundOf16, StageQuarterfinal, StageSemifinal, StageFinal, StageThirdPlace}
}

// Slot identifies one side of a match.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

type Match struct {
	ID           string      `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	CategoryID   string      `json:"category_id" db:"category_id"`
	Stage        Stage       `json:"stage" db:"stage"`
	GroupID      string      `json:"group_id,omitempty" db:"group_id"`
	PairAID      string      `json:"pair_a_id" db:"pair_a_id"`
	PairBID      string      `json:"pair_b_id" db:"pair_b_id"`
	Status       MatchStatus `json:"status" db:"status"`
	Score        *Score      `json:"score,omitempty" db:"score"`
	WinnerPairID string      `json:"winner_pair_id,omitempty" db:"winner_pair_id"`

	// Scheduling; empty means unscheduled.
	Day       string `json:"day,omitempty" db:"day"`
	StartTime string `json:"start_time,omitempty" db:"start_time"`
	CourtID   string `json:"court_id,omitempty" db:"court_id"`

	// Bracket linkage written at generation time.
	Round            int    `json:"round,omitempty" db:"round"`
	OrderInRound     int    `json:"order_in_round,omitempty" db:"order_in_round"`
	NextMatchID      string `json:"next_match_id,omitempty" db:"next_match_id"`
	NextSlot         Slot   `json:"next_slot,omitempty" db:"next_slot"`
	LoserNextMatchID string `json:"loser_next_match_id,omitempty" db:"loser_next_match_id"`
	LoserNextSlot    Slot   `json:"loser_next_slot,omitempty" db:"loser_next_slot"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsScheduled reports whether day, start time and court are all assigned.
func (m *Match) IsScheduled() bool {
	return m.Day != "" && m.StartTime != "" && m.CourtID != ""
}

// HasPair reports whether pairID plays in this match.
func (m *Match) HasPair(pairID string) bool {
	return pairID != "" && (m.PairAID == pairID || m.PairBID == pairID)
}

// PairIDs returns the non-empty pair ids of the match.
func (m *Match) PairIDs() []string {
	ids := make([]string, 0, 2)
	if m.PairAID != "" {
		ids = append(ids, m.PairAID)
	}
	if m.PairBID != "" {
		ids = append(ids, m.PairBID)
	}
	return ids
}

// LoserPairID returns the opponent of the winner, or "" when no winner is set.
func (m *Match) LoserPairID() string {
	switch m.WinnerPairID {
	case "":
		return ""
	case m.PairAID:
		return m.PairBID
	case m.PairBID:
		return m.PairAID
	}
	return ""
}

// PairIn returns the pair occupying slot.
func (m *Match) PairIn(slot Slot) string {
	if slot == SlotB {
		return m.PairBID
	}
	return m.PairAID
}

// SetPair fills slot with pairID.
func (m *Match) SetPair(slot Slot, pairID string) {
	if slot == SlotB {
		m.PairBID = pairID
		return
	}
	m.PairAID = pairID
}
