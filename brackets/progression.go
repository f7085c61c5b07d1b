package brackets

import "github.com/Dosada05/padel-tournament/models"

// nextStage is used only for matches stored without explicit linkage. Group
// matches have no successor; their pairs enter the bracket through qualification.
var nextStage = map[models.Stage]models.Stage{
	models.StageRoundOf16:    models.StageQuarterfinal,
	models.StageQuarterfinal: models.StageSemifinal,
	models.StageSemifinal:    models.StageFinal,
}

// UpdateBracketProgression returns a copy of allMatches with the winner of completed
// moved forward and, for a semifinal, the loser moved into the third-place match.
// A filled slot is never overwritten, so repeated calls are no-ops.
func UpdateBracketProgression(allMatches []models.Match, completed models.Match) []models.Match {
	updated := make([]models.Match, len(allMatches))
	copy(updated, allMatches)

	winner := completed.WinnerPairID
	if winner == "" {
		return updated
	}
	loser := completed.LoserPairID()

	if completed.NextMatchID != "" {
		fillLinked(updated, completed.NextMatchID, completed.NextSlot, winner)
	} else if stage, ok := nextStage[completed.Stage]; ok {
		fillFirstEmpty(updated, completed.CategoryID, stage, winner)
	}

	if completed.Stage == models.StageSemifinal && loser != "" {
		if completed.LoserNextMatchID != "" {
			fillLinked(updated, completed.LoserNextMatchID, completed.LoserNextSlot, loser)
		} else {
			fillFirstEmpty(updated, completed.CategoryID, models.StageThirdPlace, loser)
		}
	}
	return updated
}

func fillLinked(matches []models.Match, matchID string, slot models.Slot, pairID string) {
	for i := range matches {
		m := &matches[i]
		if m.ID != matchID {
			continue
		}
		if m.HasPair(pairID) || m.PairIn(slot) != "" {
			return
		}
		m.SetPair(slot, pairID)
		return
	}
}

func fillFirstEmpty(matches []models.Match, categoryID string, stage models.Stage, pairID string) {
	for i := range matches {
		m := &matches[i]
		if m.CategoryID == categoryID && m.Stage == stage && m.HasPair(pairID) {
			return
		}
	}
	for i := range matches {
		m := &matches[i]
		if m.CategoryID != categoryID || m.Stage != stage {
			continue
		}
		switch {
		case m.PairAID == "":
			m.PairAID = pairID
			return
		case m.PairBID == "":
			m.PairBID = pairID
			return
		}
	}
}

// ChangedPairs returns the matches in after whose pair slots differ from before.
func ChangedPairs(before, after []models.Match) []models.Match {
	prev := make(map[string]models.Match, len(before))
	for _, m := range before {
		prev[m.ID] = m
	}
	var changed []models.Match
	for _, m := range after {
		old, ok := prev[m.ID]
		if !ok || old.PairAID != m.PairAID || old.PairBID != m.PairBID {
			changed = append(changed, m)
		}
	}
	return changed
}
