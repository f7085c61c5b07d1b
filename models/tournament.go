package models

// DaySchedule is one playing day; Date is ISO "YYYY-MM-DD" and hours are 0-24.
type DaySchedule struct {
	Date      string `json:"date" db:"date"`
	StartHour int    `json:"start_hour" db:"start_hour"`
	EndHour   int    `json:"end_hour" db:"end_hour"`
	IsActive  bool   `json:"is_active" db:"is_active"`
}

type TournamentConfig struct {
	TournamentID        string        `json:"tournament_id" db:"tournament_id"`
	SlotDurationMinutes int           `json:"slot_duration_minutes" db:"slot_duration_minutes"`
	Days                []DaySchedule `json:"days" db:"-"`
}

// ActiveDays filters out inactive days.
func (c *TournamentConfig) ActiveDays() []DaySchedule {
	active := make([]DaySchedule, 0, len(c.Days))
	for _, d := range c.Days {
		if d.IsActive {
			active = append(active, d)
		}
	}
	return active
}
