package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrScoreNoSets         = errors.New("score must contain at least two sets")
	ErrScoreTooManySets    = errors.New("score cannot contain more than three sets")
	ErrScoreNegative       = errors.New("score values cannot be negative")
	ErrScoreTiedSet        = errors.New("a set cannot end tied")
	ErrScoreUndecided      = errors.New("score does not decide a winner")
	ErrScoreSuperTiebreak  = errors.New("super tiebreak replaces the third set, both cannot be present")
	ErrScoreAlreadyDecided = errors.New("match was decided in two sets, no third set or super tiebreak allowed")
)

// SetScore holds games won by side A and side B in one set (or points, for a super tiebreak).
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

type Score struct {
	Sets          []SetScore `json:"sets"`
	SuperTiebreak *SetScore  `json:"super_tiebreak,omitempty"`
}

// Validate checks the score is a finished best-of-three.
func (s *Score) Validate() error {
	if s == nil || len(s.Sets) < 2 {
		return ErrScoreNoSets
	}
	if len(s.Sets) > 3 {
		return ErrScoreTooManySets
	}
	if s.SuperTiebreak != nil && len(s.Sets) == 3 {
		return ErrScoreSuperTiebreak
	}
	for _, set := range s.allSets() {
		if set.A < 0 || set.B < 0 {
			return ErrScoreNegative
		}
		if set.A == set.B {
			return ErrScoreTiedSet
		}
	}
	first, second := s.Sets[0], s.Sets[1]
	if (first.A > first.B) == (second.A > second.B) && (len(s.Sets) == 3 || s.SuperTiebreak != nil) {
		return ErrScoreAlreadyDecided
	}
	a, b := s.SetsWon()
	if a == b || (a < 2 && b < 2) {
		return ErrScoreUndecided
	}
	return nil
}

func (s *Score) allSets() []SetScore {
	sets := make([]SetScore, 0, len(s.Sets)+1)
	sets = append(sets, s.Sets...)
	if s.SuperTiebreak != nil {
		sets = append(sets, *s.SuperTiebreak)
	}
	return sets
}

// SetsWon counts sets won by each side, the super tiebreak counting as a set.
func (s *Score) SetsWon() (a, b int) {
	if s == nil {
		return 0, 0
	}
	for _, set := range s.allSets() {
		switch {
		case set.A > set.B:
			a++
		case set.B > set.A:
			b++
		}
	}
	return a, b
}

// Games sums games over regular sets; super tiebreak points are not games.
func (s *Score) Games() (a, b int) {
	if s == nil {
		return 0, 0
	}
	for _, set := range s.Sets {
		a += set.A
		b += set.B
	}
	return a, b
}

// Winner returns SlotA or SlotB for a valid score.
func (s *Score) Winner() (Slot, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	a, b := s.SetsWon()
	if a > b {
		return SlotA, nil
	}
	return SlotB, nil
}

// Value stores the score as JSONB.
func (s Score) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Score) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported score column type %T", src)
	}
	return json.Unmarshal(raw, s)
}
