package brackets

import (
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateBracket compares the number of matches per stage with what a full
// bracket of bracketSize expects. It never mutates matches.
func ValidateBracket(matches []models.Match, bracketSize int) ValidationResult {
	res := ValidationResult{Errors: []string{}}
	stages, err := StageSequence(bracketSize)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("bracket size %d: %v", bracketSize, err))
		return res
	}

	counts := make(map[models.Stage]int)
	for _, m := range matches {
		counts[m.Stage]++
		if m.PairAID != "" && m.PairAID == m.PairBID {
			res.Errors = append(res.Errors, fmt.Sprintf("match %s has the same pair on both sides", m.ID))
		}
	}

	totalRounds := len(stages)
	for r, stage := range stages {
		remaining := totalRounds - r
		expected := 1 << (remaining - 1)
		if got := counts[stage]; got != expected {
			res.Errors = append(res.Errors, fmt.Sprintf("stage %s: expected %d matches, found %d", stage, expected, got))
		}
	}
	if counts[models.StageThirdPlace] > 1 {
		res.Errors = append(res.Errors, fmt.Sprintf("stage %s: expected at most 1 match, found %d", models.StageThirdPlace, counts[models.StageThirdPlace]))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

var firstRoundSize = map[models.Stage]int{
	models.StageSemifinal:    4,
	models.StageQuarterfinal: 8,
	models.StageRoundOf16:    16,
}

// InferBracketSize derives the bracket size from the earliest knockout stage present,
// or 0 when matches hold no knockout round.
func InferBracketSize(matches []models.Match) int {
	size := 0
	for _, m := range matches {
		if s := firstRoundSize[m.Stage]; s > size {
			size = s
		}
	}
	return size
}
