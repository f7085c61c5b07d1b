package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	matchID, day, startTime, courtID string
}

type fakeWriter struct {
	writes []write
	failOn string
}

func (w *fakeWriter) UpdateMatchSchedule(_ context.Context, matchID, day, startTime, courtID string) error {
	if matchID == w.failOn {
		return errors.New("connection reset")
	}
	w.writes = append(w.writes, write{matchID, day, startTime, courtID})
	return nil
}

type fakeNotifier struct {
	calls      int
	err        error
	placements []Placement
}

func (n *fakeNotifier) NotifyMatchScheduled(_ context.Context, p Placement) error {
	n.calls++
	n.placements = append(n.placements, p)
	return n.err
}

func day(date string, start, end int) models.DaySchedule {
	return models.DaySchedule{Date: date, StartHour: start, EndHour: end, IsActive: true}
}

func courts(ids ...string) []models.Court {
	out := make([]models.Court, len(ids))
	for i, id := range ids {
		out[i] = models.Court{ID: id, Name: "Court " + id}
	}
	return out
}

func pending(id, category, pairA, pairB string) models.Match {
	return models.Match{ID: id, CategoryID: category, Stage: models.StageGroups, PairAID: pairA, PairBID: pairB, Status: models.MatchStatusPending}
}

func TestAutoScheduler_SharedPairMovesToNextSlot(t *testing.T) {
	w := &fakeWriter{}
	s := NewAutoScheduler(w, nil, nil)

	report, err := s.Run(context.Background(), Snapshot{
		Matches: []models.Match{
			pending("m1", "cat", "p1", "p2"),
			pending("m2", "cat", "p1", "p3"),
		},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 10)},
		Courts:      courts("court1"),
		SlotMinutes: 90,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, 2, report.Scheduled)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, []write{
		{"m1", "2025-05-10", "08:00", "court1"},
		{"m2", "2025-05-10", "09:30", "court1"},
	}, w.writes)
	assert.Equal(t, "2 of 2 matches scheduled", report.Summary())
}

func TestAutoScheduler_SharedPairNeverDoubleBooked(t *testing.T) {
	w := &fakeWriter{}
	s := NewAutoScheduler(w, nil, nil)

	report, err := s.Run(context.Background(), Snapshot{
		Matches: []models.Match{
			pending("m1", "cat", "p1", "p2"),
			pending("m2", "cat", "p1", "p3"),
		},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 9)},
		Courts:      courts("court1", "court2"),
		SlotMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scheduled)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "m2", report.Skipped[0].MatchID)
}

func TestAutoScheduler_CategoryPriority(t *testing.T) {
	w := &fakeWriter{}
	s := NewAutoScheduler(w, nil, nil)

	matches := []models.Match{
		pending("a1", "c4", "a", "b"),
		pending("a2", "c4", "c", "d"),
		pending("a3", "c4", "e", "f"),
		pending("b1", "c6", "g", "h"),
		pending("b2", "c6", "i", "j"),
		pending("b3", "c6", "k", "l"),
	}
	report, err := s.Run(context.Background(), Snapshot{
		Matches:     matches,
		Days:        []models.DaySchedule{day("2025-05-10", 8, 14)},
		Courts:      courts("court1"),
		SlotMinutes: 90,
		Categories: map[string]models.Category{
			"c4": {ID: "c4", Name: "4ta"},
			"c6": {ID: "c6", Name: "6ta"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Pending)
	assert.Equal(t, 4, report.Scheduled)
	require.Len(t, w.writes, 4)
	assert.Equal(t, "b1", w.writes[0].matchID)
	assert.Equal(t, "b2", w.writes[1].matchID)
	assert.Equal(t, "b3", w.writes[2].matchID)
	assert.Equal(t, "a1", w.writes[3].matchID)

	skipped := []string{report.Skipped[0].MatchID, report.Skipped[1].MatchID}
	assert.Equal(t, []string{"a2", "a3"}, skipped)
}

func TestAutoScheduler_RespectsExistingSchedule(t *testing.T) {
	w := &fakeWriter{}
	s := NewAutoScheduler(w, nil, nil)

	placed := pending("m0", "cat", "p1", "p2")
	placed.Day, placed.StartTime, placed.CourtID = "2025-05-10", "08:00", "court1"

	report, err := s.Run(context.Background(), Snapshot{
		Matches: []models.Match{
			placed,
			pending("m1", "cat", "p3", "p4"),
			pending("m2", "cat", "p1", "p5"),
		},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 10)},
		Courts:      courts("court1", "court2"),
		SlotMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, []write{
		{"m1", "2025-05-10", "08:00", "court2"},
		{"m2", "2025-05-10", "09:00", "court1"},
	}, w.writes)
}

func TestAutoScheduler_NoDoubleBookingAcrossManyMatches(t *testing.T) {
	w := &fakeWriter{}
	s := NewAutoScheduler(w, nil, nil)

	var matches []models.Match
	pairs := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	n := 0
	for i := 0; i < len(pairs); i++ {
		for j := i + 1; j < len(pairs); j++ {
			n++
			matches = append(matches, pending(fmt.Sprintf("m%d", n), "cat", pairs[i], pairs[j]))
		}
	}

	report, err := s.Run(context.Background(), Snapshot{
		Matches: matches,
		Days: []models.DaySchedule{
			day("2025-05-12", 9, 13),
			day("2025-05-11", 9, 13),
			day("2025-05-10", 9, 13),
		},
		Courts:      courts("court1", "court2", "court3"),
		SlotMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, len(matches), report.Scheduled)

	courtsUsed := make(map[string]bool)
	pairsBusy := make(map[string]bool)
	byID := make(map[string]models.Match)
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, wr := range w.writes {
		key := wr.day + wr.startTime + wr.courtID
		assert.False(t, courtsUsed[key], "court double booked at %s", key)
		courtsUsed[key] = true

		m := byID[wr.matchID]
		for _, p := range m.PairIDs() {
			pk := wr.day + wr.startTime + p
			assert.False(t, pairsBusy[pk], "pair %s double booked", p)
			pairsBusy[pk] = true
		}
	}
	assert.Equal(t, "2025-05-10", w.writes[0].day)
}

func TestAutoScheduler_MissingConfiguration(t *testing.T) {
	s := NewAutoScheduler(&fakeWriter{}, nil, nil)
	matches := []models.Match{pending("m1", "cat", "p1", "p2")}

	_, err := s.Run(context.Background(), Snapshot{Matches: matches, Courts: courts("court1"), SlotMinutes: 60})
	assert.ErrorIs(t, err, ErrMissingScheduleConfiguration)

	inactive := day("2025-05-10", 8, 12)
	inactive.IsActive = false
	_, err = s.Run(context.Background(), Snapshot{Matches: matches, Days: []models.DaySchedule{inactive}, Courts: courts("court1"), SlotMinutes: 60})
	assert.ErrorIs(t, err, ErrMissingScheduleConfiguration)

	_, err = s.Run(context.Background(), Snapshot{Matches: matches, Days: []models.DaySchedule{day("2025-05-10", 8, 12)}, SlotMinutes: 60})
	assert.ErrorIs(t, err, ErrMissingScheduleConfiguration)

	_, err = s.Run(context.Background(), Snapshot{Matches: matches, Days: []models.DaySchedule{day("2025-05-10", 8, 12)}, Courts: courts("court1")})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)
}

func TestAutoScheduler_StoreFailureAborts(t *testing.T) {
	w := &fakeWriter{failOn: "m2"}
	s := NewAutoScheduler(w, nil, nil)

	report, err := s.Run(context.Background(), Snapshot{
		Matches: []models.Match{
			pending("m1", "cat", "p1", "p2"),
			pending("m2", "cat", "p3", "p4"),
			pending("m3", "cat", "p5", "p6"),
		},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 12)},
		Courts:      courts("court1"),
		SlotMinutes: 60,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "m2")
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Scheduled)
	assert.Len(t, w.writes, 1)
}

func TestAutoScheduler_NotifierErrorsDoNotStopScheduling(t *testing.T) {
	w := &fakeWriter{}
	n := &fakeNotifier{err: errors.New("smtp down")}
	s := NewAutoScheduler(w, n, nil)

	report, err := s.Run(context.Background(), Snapshot{
		Matches: []models.Match{
			pending("m1", "cat", "p1", "p2"),
			pending("m2", "cat", "p3", "p4"),
		},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 12)},
		Courts:      courts("court1"),
		SlotMinutes: 60,
		Pairs:       map[string]models.Pair{"p1": {ID: "p1", Player1: "Ana", Player2: "Bea"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scheduled)
	assert.Equal(t, 2, n.calls)
}

func TestAutoScheduler_NotifiesWithCourtName(t *testing.T) {
	n := &fakeNotifier{}
	_, err := NewAutoScheduler(&fakeWriter{}, n, nil).Run(context.Background(), Snapshot{
		Matches:     []models.Match{pending("m1", "cat", "p1", "p2")},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 12)},
		Courts:      courts("court1"),
		SlotMinutes: 60,
		Pairs:       map[string]models.Pair{"p1": {ID: "p1", Player1: "Ana", Player2: "Bea"}},
	})
	require.NoError(t, err)
	require.Len(t, n.placements, 1)
	p := n.placements[0]
	assert.Equal(t, "Court court1", p.Court)
	assert.Equal(t, "court1", p.Match.CourtID)
	require.NotNil(t, p.PairA)
	assert.Equal(t, "Ana", p.PairA.Player1)
	assert.Nil(t, p.PairB)
}

func TestNewPlacement_FallsBackToCourtID(t *testing.T) {
	m := pending("m1", "cat", "p1", "p2")
	m.CourtID = "court9"
	p := NewPlacement(m, courts("court1"), nil)
	assert.Equal(t, "court9", p.Court)
}

func TestAutoScheduler_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &fakeWriter{}
	report, err := NewAutoScheduler(w, nil, nil).Run(ctx, Snapshot{
		Matches:     []models.Match{pending("m1", "cat", "p1", "p2")},
		Days:        []models.DaySchedule{day("2025-05-10", 8, 12)},
		Courts:      courts("court1"),
		SlotMinutes: 60,
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Scheduled)
	assert.Empty(t, w.writes)
}
