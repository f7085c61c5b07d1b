package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	prev := newMatchID
	newMatchID = func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
	t.Cleanup(func() { newMatchID = prev })
}

func standings(ids ...string) []models.Standing {
	out := make([]models.Standing, len(ids))
	for i, id := range ids {
		out[i] = models.Standing{PairID: id}
	}
	return out
}

func byStage(matches []models.Match, stage models.Stage) []models.Match {
	var out []models.Match
	for _, m := range matches {
		if m.Stage == stage {
			out = append(out, m)
		}
	}
	return out
}

func TestGenerateSeedOrder(t *testing.T) {
	for _, size := range []int{2, 4, 8, 16, 32, 64} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			order, err := GenerateSeedOrder(size)
			require.NoError(t, err)
			require.Len(t, order, size)

			seen := make(map[int]bool)
			for _, seed := range order {
				assert.True(t, seed >= 1 && seed <= size)
				assert.False(t, seen[seed], "seed %d repeated", seed)
				seen[seed] = true
			}
			for i := 0; i < size; i += 2 {
				assert.Equal(t, size+1, order[i]+order[i+1])
			}
		})
	}

	order, err := GenerateSeedOrder(8)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8, 2, 7, 3, 6, 4, 5}, order)

	_, err = GenerateSeedOrder(6)
	assert.ErrorIs(t, err, ErrInvalidBracketSize)
}

func TestCalculateOptimalBracketSize(t *testing.T) {
	cases := map[int]int{0: 2, 1: 2, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		assert.Equal(t, want, CalculateOptimalBracketSize(n), "n=%d", n)
	}
}

func TestGenerateBracketRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		pairs   int
		size    int
		seeding SeedingMode
		wantErr error
	}{
		{"not a power of two", 3, 6, SeedingManual, ErrInvalidBracketSize},
		{"size two unsupported", 2, 2, SeedingManual, ErrUnsupportedBracketSize},
		{"size 32 unsupported", 20, 32, SeedingManual, ErrUnsupportedBracketSize},
		{"too many pairs", 5, 4, SeedingManual, ErrTooManyQualifiers},
		{"unknown seeding", 4, 4, SeedingMode("random"), ErrInvalidSeeding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.pairs)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i+1)
			}
			matches, err := GenerateBracket(standings(ids...), BracketConfig{BracketSize: tt.size, Seeding: tt.seeding})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, matches)
		})
	}

	_, err := GenerateBracket(standings("p1", "p1"), BracketConfig{BracketSize: 4, Seeding: SeedingManual})
	assert.ErrorIs(t, err, ErrDuplicateQualifier)
}

func TestGenerateBracketFourPairsOverallPerformance(t *testing.T) {
	sequentialIDs(t)
	qualified := []models.Standing{
		{PairID: "p3", Points: 6},
		{PairID: "p1", Points: 9},
		{PairID: "p4", Points: 3, SetsDiff: 1},
		{PairID: "p2", Points: 6, SetsDiff: 2},
	}
	matches, err := GenerateBracket(qualified, BracketConfig{
		TournamentID: "t1",
		CategoryID:   "c1",
		BracketSize:  4,
		ThirdPlace:   true,
		Seeding:      SeedingOverallPerformance,
	})
	require.NoError(t, err)
	require.Len(t, matches, 4)

	semis := byStage(matches, models.StageSemifinal)
	require.Len(t, semis, 2)
	assert.Equal(t, "p1", semis[0].PairAID)
	assert.Equal(t, "p4", semis[0].PairBID)
	assert.Equal(t, "p2", semis[1].PairAID)
	assert.Equal(t, "p3", semis[1].PairBID)

	finals := byStage(matches, models.StageFinal)
	require.Len(t, finals, 1)
	assert.Empty(t, finals[0].PairAID)
	assert.Empty(t, finals[0].PairBID)

	third := byStage(matches, models.StageThirdPlace)
	require.Len(t, third, 1)
	assert.Empty(t, third[0].PairAID)
	assert.Empty(t, third[0].PairBID)

	assert.Equal(t, finals[0].ID, semis[0].NextMatchID)
	assert.Equal(t, models.SlotA, semis[0].NextSlot)
	assert.Equal(t, models.SlotB, semis[1].NextSlot)
	assert.Equal(t, third[0].ID, semis[0].LoserNextMatchID)
	assert.Equal(t, third[0].ID, semis[1].LoserNextMatchID)

	for _, m := range matches {
		assert.Equal(t, "t1", m.TournamentID)
		assert.Equal(t, "c1", m.CategoryID)
		assert.Equal(t, models.MatchStatusPending, m.Status)
	}
}

func TestGenerateBracketGroupPositionKeepsOrder(t *testing.T) {
	matches, err := GenerateBracket(standings("a1", "b1", "a2", "b2"), BracketConfig{BracketSize: 4, Seeding: SeedingGroupPosition})
	require.NoError(t, err)
	semis := byStage(matches, models.StageSemifinal)
	require.Len(t, semis, 2)
	assert.Equal(t, [2]string{"a1", "b2"}, [2]string{semis[0].PairAID, semis[0].PairBID})
	assert.Equal(t, [2]string{"b1", "a2"}, [2]string{semis[1].PairAID, semis[1].PairBID})
	assert.Empty(t, byStage(matches, models.StageThirdPlace))
}

func TestGenerateBracketOmitsByeMatches(t *testing.T) {
	matches, err := GenerateBracket(standings("p1", "p2", "p3", "p4", "p5", "p6"), BracketConfig{BracketSize: 8, ThirdPlace: true, Seeding: SeedingManual})
	require.NoError(t, err)

	quarters := byStage(matches, models.StageQuarterfinal)
	require.Len(t, quarters, 2)
	assert.Equal(t, [2]string{"p3", "p6"}, [2]string{quarters[0].PairAID, quarters[0].PairBID})
	assert.Equal(t, [2]string{"p4", "p5"}, [2]string{quarters[1].PairAID, quarters[1].PairBID})
	assert.Len(t, byStage(matches, models.StageSemifinal), 2)
	assert.Len(t, byStage(matches, models.StageFinal), 1)
	assert.Len(t, byStage(matches, models.StageThirdPlace), 1)

	for _, m := range matches {
		if m.PairAID != "" {
			assert.NotEqual(t, m.PairAID, m.PairBID)
		}
	}
}

func TestGenerateBracketThirdPlaceNeedsTwoSemifinals(t *testing.T) {
	matches, err := GenerateBracket(standings("p1", "p2", "p3"), BracketConfig{BracketSize: 4, ThirdPlace: true, Seeding: SeedingManual})
	require.NoError(t, err)
	assert.Len(t, byStage(matches, models.StageSemifinal), 1)
	assert.Empty(t, byStage(matches, models.StageThirdPlace))
}

func TestGenerateBracketSixteenLabels(t *testing.T) {
	ids := make([]string, 16)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i+1)
	}
	matches, err := GenerateBracket(standings(ids...), BracketConfig{BracketSize: 16, Seeding: SeedingManual})
	require.NoError(t, err)
	assert.Len(t, byStage(matches, models.StageRoundOf16), 8)
	assert.Len(t, byStage(matches, models.StageQuarterfinal), 4)
	assert.Len(t, byStage(matches, models.StageSemifinal), 2)
	assert.Len(t, byStage(matches, models.StageFinal), 1)
	assert.True(t, ValidateBracket(matches, 16).IsValid)
}
