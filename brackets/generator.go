package brackets

import (
	"errors"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/google/uuid"
)

var (
	ErrInvalidBracketSize     = errors.New("bracket size must be a power of two")
	ErrUnsupportedBracketSize = errors.New("bracket size not supported (expected 4, 8 or 16)")
	ErrTooManyQualifiers      = errors.New("more qualified pairs than bracket positions")
	ErrInvalidSeeding         = errors.New("unknown seeding mode")
	ErrInvalidQualifier       = errors.New("qualified pair has no pair id")
	ErrDuplicateQualifier     = errors.New("pair qualified more than once")
)

type SeedingMode string

const (
	SeedingGroupPosition      SeedingMode = "group_position"
	SeedingOverallPerformance SeedingMode = "overall_performance"
	SeedingManual             SeedingMode = "manual"
)

func (m SeedingMode) Valid() bool {
	switch m {
	case SeedingGroupPosition, SeedingOverallPerformance, SeedingManual:
		return true
	}
	return false
}

type BracketConfig struct {
	TournamentID string      `json:"tournament_id"`
	CategoryID   string      `json:"category_id"`
	BracketSize  int         `json:"bracket_size"`
	ThirdPlace   bool        `json:"third_place"`
	Seeding      SeedingMode `json:"seeding"`
}

// BracketPosition is one entry of the seeded draw. PairID is empty for TBD positions.
type BracketPosition struct {
	Position int
	Seed     int
	PairID   string
	Source   string
}

// stageSequences lists round labels from first round to final.
var stageSequences = map[int][]models.Stage{
	4:  {models.StageSemifinal, models.StageFinal},
	8:  {models.StageQuarterfinal, models.StageSemifinal, models.StageFinal},
	16: {models.StageRoundOf16, models.StageQuarterfinal, models.StageSemifinal, models.StageFinal},
}

// StageSequence returns the round labels of a bracket of the given size.
func StageSequence(bracketSize int) ([]models.Stage, error) {
	if !isPowerOfTwo(bracketSize) {
		return nil, ErrInvalidBracketSize
	}
	stages, ok := stageSequences[bracketSize]
	if !ok {
		return nil, ErrUnsupportedBracketSize
	}
	return stages, nil
}

// newMatchID is swapped in tests that need stable ids.
var newMatchID = uuid.NewString

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
