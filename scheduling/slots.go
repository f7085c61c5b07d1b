package scheduling

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClock = errors.New("time must be formatted as HH:MM")
	ErrInvalidDay   = errors.New("day must be formatted as YYYY-MM-DD")
)

const dayLayout = "2006-01-02"

// GenerateTimeSlots lists "HH:MM" start times from startHour, stepping by
// slotMinutes, for every start strictly before endHour. A slot may run past endHour.
func GenerateTimeSlots(startHour, endHour, slotMinutes int) []string {
	if slotMinutes <= 0 || endHour <= startHour {
		return nil
	}
	var slots []string
	for t := startHour * 60; t < endHour*60; t += slotMinutes {
		slots = append(slots, FormatClock(t))
	}
	return slots
}

// FormatClock renders minutes after midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock converts HH:MM into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateDay checks an ISO calendar date.
func ValidateDay(day string) error {
	if _, err := time.Parse(dayLayout, day); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return nil
}
