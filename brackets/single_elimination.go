package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

// CalculateOptimalBracketSize returns the smallest power of two >= numTeams, never below 2.
func CalculateOptimalBracketSize(numTeams int) int {
	size := 2
	for size < numTeams {
		size <<= 1
	}
	return size
}

// GenerateSeedOrder lists seeds by draw position: 1, N, 2, N-1, ... so that
// positions 2i and 2i+1 always hold seeds adding up to N+1.
func GenerateSeedOrder(bracketSize int) ([]int, error) {
	if !isPowerOfTwo(bracketSize) {
		return nil, ErrInvalidBracketSize
	}
	order := make([]int, 0, bracketSize)
	for seed := 1; seed <= bracketSize/2; seed++ {
		order = append(order, seed, bracketSize+1-seed)
	}
	return order, nil
}

// RankQualifiers orders qualified pairs for seeding. Only overall_performance
// reorders; the other modes trust the caller's order.
func RankQualifiers(qualified []models.Standing, mode SeedingMode) ([]models.Standing, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeeding, mode)
	}
	ranked := make([]models.Standing, len(qualified))
	copy(ranked, qualified)
	if mode == SeedingOverallPerformance {
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.Points != b.Points {
				return a.Points > b.Points
			}
			if a.SetsDiff != b.SetsDiff {
				return a.SetsDiff > b.SetsDiff
			}
			return a.GamesDiff > b.GamesDiff
		})
	}
	return ranked, nil
}

// BuildPositions places ranked pairs into draw positions; unfilled positions stay TBD.
func BuildPositions(ranked []models.Standing, bracketSize int) ([]BracketPosition, error) {
	order, err := GenerateSeedOrder(bracketSize)
	if err != nil {
		return nil, err
	}
	positions := make([]BracketPosition, bracketSize)
	for pos, seed := range order {
		bp := BracketPosition{Position: pos, Seed: seed, Source: "TBD"}
		if seed <= len(ranked) {
			st := ranked[seed-1]
			bp.PairID = st.PairID
			bp.Source = describeSource(seed, st)
		}
		positions[pos] = bp
	}
	return positions, nil
}

func describeSource(seed int, st models.Standing) string {
	if st.GroupID != "" && st.Position > 0 {
		return fmt.Sprintf("seed %d (group %s, position %d)", seed, st.GroupID, st.Position)
	}
	return fmt.Sprintf("seed %d", seed)
}

// GenerateBracket builds every knockout match for the qualified pairs. First-round
// matches with an empty side are omitted and nothing is auto-advanced; later rounds
// are created with empty pairs and filled by UpdateBracketProgression.
func GenerateBracket(qualified []models.Standing, cfg BracketConfig) ([]models.Match, error) {
	stages, err := StageSequence(cfg.BracketSize)
	if err != nil {
		return nil, err
	}
	if len(qualified) > cfg.BracketSize {
		return nil, fmt.Errorf("%w: %d pairs for %d positions", ErrTooManyQualifiers, len(qualified), cfg.BracketSize)
	}
	seen := make(map[string]bool, len(qualified))
	for _, q := range qualified {
		if q.PairID == "" {
			return nil, ErrInvalidQualifier
		}
		if seen[q.PairID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQualifier, q.PairID)
		}
		seen[q.PairID] = true
	}

	ranked, err := RankQualifiers(qualified, cfg.Seeding)
	if err != nil {
		return nil, err
	}
	positions, err := BuildPositions(ranked, cfg.BracketSize)
	if err != nil {
		return nil, err
	}

	// Allocate the full tree first so every match knows where its winner goes.
	rounds := make([][]*models.Match, len(stages))
	for r, stage := range stages {
		count := cfg.BracketSize >> (r + 1)
		rounds[r] = make([]*models.Match, count)
		for i := range rounds[r] {
			rounds[r][i] = &models.Match{
				ID:           newMatchID(),
				TournamentID: cfg.TournamentID,
				CategoryID:   cfg.CategoryID,
				Stage:        stage,
				Status:       models.MatchStatusPending,
				Round:        r + 1,
				OrderInRound: i + 1,
			}
		}
	}
	for r := 0; r < len(rounds)-1; r++ {
		for i, m := range rounds[r] {
			m.NextMatchID = rounds[r+1][i/2].ID
			m.NextSlot = models.SlotA
			if i%2 == 1 {
				m.NextSlot = models.SlotB
			}
		}
	}
	for i, m := range rounds[0] {
		m.PairAID = positions[2*i].PairID
		m.PairBID = positions[2*i+1].PairID
	}

	matches := make([]models.Match, 0, cfg.BracketSize)
	var semifinals []*models.Match
	for r, round := range rounds {
		for _, m := range round {
			if r == 0 && (m.PairAID == "" || m.PairBID == "") {
				continue
			}
			if m.Stage == models.StageSemifinal {
				semifinals = append(semifinals, m)
			}
			matches = append(matches, *m)
		}
	}

	if cfg.ThirdPlace && len(semifinals) == 2 {
		third := models.Match{
			ID:           newMatchID(),
			TournamentID: cfg.TournamentID,
			CategoryID:   cfg.CategoryID,
			Stage:        models.StageThirdPlace,
			Status:       models.MatchStatusPending,
			Round:        len(stages),
			OrderInRound: 2,
		}
		for i := range matches {
			switch matches[i].ID {
			case semifinals[0].ID:
				matches[i].LoserNextMatchID, matches[i].LoserNextSlot = third.ID, models.SlotA
			case semifinals[1].ID:
				matches[i].LoserNextMatchID, matches[i].LoserNextSlot = third.ID, models.SlotB
			}
		}
		matches = append(matches, third)
	}

	return matches, nil
}
