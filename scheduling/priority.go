package scheduling

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/Dosada05/padel-tournament/models"
)

var divisionNumber = regexp.MustCompile(`\d+`)

// CategoryRank returns the explicit division rank, else the first number in the
// name ("6ta" -> 6), else 0.
func CategoryRank(c models.Category) int {
	if c.DivisionRank != nil {
		return *c.DivisionRank
	}
	if m := divisionNumber.FindString(c.Name); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

// OrderCategories sorts category ids by descending rank; ties keep their input order.
// Ids missing from categories rank as 0.
func OrderCategories(ids []string, categories map[string]models.Category) []string {
	ordered := make([]string, len(ids))
	copy(ordered, ids)
	sort.SliceStable(ordered, func(i, j int) bool {
		return CategoryRank(categories[ordered[i]]) > CategoryRank(categories[ordered[j]])
	})
	return ordered
}
