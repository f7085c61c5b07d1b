package brackets

import (
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

const (
	PointsPerWin  = 3
	PointsPerLoss = 1
)

// ComputeStandings aggregates the completed group matches of one group. pairIDs
// seeds the table so pairs without results still appear; pass nil to derive them.
func ComputeStandings(groupID string, pairIDs []string, matches []models.Match) []models.Standing {
	table := make(map[string]*models.Standing)
	order := make([]string, 0, len(pairIDs))
	add := func(id string) *models.Standing {
		if st, ok := table[id]; ok {
			return st
		}
		st := &models.Standing{PairID: id, GroupID: groupID}
		table[id] = st
		order = append(order, id)
		return st
	}
	for _, id := range pairIDs {
		add(id)
	}

	for _, m := range matches {
		if m.Stage != models.StageGroups || m.GroupID != groupID {
			continue
		}
		if m.PairAID == "" || m.PairBID == "" {
			continue
		}
		a, b := add(m.PairAID), add(m.PairBID)
		if m.WinnerPairID == "" || !m.Status.IsDone() {
			continue
		}
		setsA, setsB := m.Score.SetsWon()
		gamesA, gamesB := m.Score.Games()
		applyResult(a, setsA, setsB, gamesA, gamesB, m.WinnerPairID == m.PairAID)
		applyResult(b, setsB, setsA, gamesB, gamesA, m.WinnerPairID == m.PairBID)
	}

	standings := make([]models.Standing, 0, len(order))
	for _, id := range order {
		standings = append(standings, *table[id])
	}
	SortStandings(standings)
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}

func applyResult(st *models.Standing, setsFor, setsAgainst, gamesFor, gamesAgainst int, won bool) {
	st.MatchesPlayed++
	if won {
		st.MatchesWon++
		st.Points += PointsPerWin
	} else {
		st.MatchesLost++
		st.Points += PointsPerLoss
	}
	st.SetsFor += setsFor
	st.SetsAgainst += setsAgainst
	st.SetsDiff = st.SetsFor - st.SetsAgainst
	st.GamesFor += gamesFor
	st.GamesAgainst += gamesAgainst
	st.GamesDiff = st.GamesFor - st.GamesAgainst
}

// SortStandings orders by points, set difference, game difference, games won, then pair id.
func SortStandings(standings []models.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		switch {
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.SetsDiff != b.SetsDiff:
			return a.SetsDiff > b.SetsDiff
		case a.GamesDiff != b.GamesDiff:
			return a.GamesDiff > b.GamesDiff
		case a.GamesFor != b.GamesFor:
			return a.GamesFor > b.GamesFor
		}
		return a.PairID < b.PairID
	})
}

// GroupStandings computes the table of every group, keyed by group id.
func GroupStandings(groups []models.Group, matches []models.Match) map[string][]models.Standing {
	result := make(map[string][]models.Standing, len(groups))
	for _, g := range groups {
		result[g.ID] = ComputeStandings(g.ID, g.PairIDs, matches)
	}
	return result
}

// QualifyFromGroups takes the first perGroup pairs of every group, interleaved by
// position: all group winners (groups by name), then all runners-up, and so on.
func QualifyFromGroups(groups []models.Group, standings map[string][]models.Standing, perGroup int) []models.Standing {
	sorted := make([]models.Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var qualified []models.Standing
	for pos := 0; pos < perGroup; pos++ {
		for _, g := range sorted {
			table := standings[g.ID]
			if pos < len(table) {
				qualified = append(qualified, table[pos])
			}
		}
	}
	return qualified
}
