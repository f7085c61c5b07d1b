package brackets

import (
	"testing"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBracket(t *testing.T) {
	full, err := GenerateBracket(standings("p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"), BracketConfig{BracketSize: 8, ThirdPlace: true, Seeding: SeedingManual})
	require.NoError(t, err)

	res := ValidateBracket(full, 8)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)

	missingSemi := make([]models.Match, 0, len(full))
	dropped := false
	for _, m := range full {
		if m.Stage == models.StageSemifinal && !dropped {
			dropped = true
			continue
		}
		missingSemi = append(missingSemi, m)
	}
	res = ValidateBracket(missingSemi, 8)
	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "semifinal")

	res = ValidateBracket(full, 12)
	assert.False(t, res.IsValid)
}

func TestValidateBracketFlagsSelfMatch(t *testing.T) {
	matches := []models.Match{
		{ID: "s1", Stage: models.StageSemifinal, PairAID: "a", PairBID: "a"},
		{ID: "s2", Stage: models.StageSemifinal, PairAID: "b", PairBID: "c"},
		{ID: "f", Stage: models.StageFinal},
	}
	res := ValidateBracket(matches, 4)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 1)
}

func TestInferBracketSize(t *testing.T) {
	assert.Equal(t, 0, InferBracketSize(nil))
	assert.Equal(t, 4, InferBracketSize([]models.Match{{Stage: models.StageFinal}, {Stage: models.StageSemifinal}}))
	assert.Equal(t, 8, InferBracketSize([]models.Match{{Stage: models.StageSemifinal}, {Stage: models.StageQuarterfinal}}))
	assert.Equal(t, 16, InferBracketSize([]models.Match{{Stage: models.StageRoundOf16}, {Stage: models.StageGroups}}))
}
