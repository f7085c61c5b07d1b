package scheduling

import "github.com/Dosada05/padel-tournament/models"

// CleanFilter selects matches whose schedule is cleared. An empty CategoryID
// means every category; an empty Day means every day.
type CleanFilter struct {
	Day        string
	CategoryID string
}

func (f CleanFilter) Matches(m models.Match) bool {
	if m.Day == "" && m.StartTime == "" && m.CourtID == "" {
		return false
	}
	if f.Day != "" && m.Day != f.Day {
		return false
	}
	if f.CategoryID != "" && m.CategoryID != f.CategoryID {
		return false
	}
	return true
}

// Select returns the ids of the matches the filter clears.
func (f CleanFilter) Select(matches []models.Match) []string {
	ids := make([]string, 0)
	for _, m := range matches {
		if f.Matches(m) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
