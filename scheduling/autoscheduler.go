package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

var (
	ErrMissingScheduleConfiguration = errors.New("at least one active day and one court are required")
	ErrInvalidSlotDuration          = errors.New("slot duration must be positive")
)

// MatchScheduleWriter persists one placement. Empty strings clear the assignment.
type MatchScheduleWriter interface {
	UpdateMatchSchedule(ctx context.Context, matchID, day, startTime, courtID string) error
}

// Placement is a freshly scheduled match with what a person needs to read it.
// Court is the court's display name, or its id when the court is unknown.
type Placement struct {
	Match models.Match
	Court string
	PairA *models.Pair
	PairB *models.Pair
}

// NewPlacement resolves the court name and both pairs of m.
func NewPlacement(m models.Match, courts []models.Court, pairs map[string]models.Pair) Placement {
	p := Placement{Match: m, Court: m.CourtID}
	for _, c := range courts {
		if c.ID == m.CourtID && c.Name != "" {
			p.Court = c.Name
			break
		}
	}
	if pair, ok := pairs[m.PairAID]; ok {
		p.PairA = &pair
	}
	if pair, ok := pairs[m.PairBID]; ok {
		p.PairB = &pair
	}
	return p
}

// Notifier is told about each placement; its errors never stop scheduling.
type Notifier interface {
	NotifyMatchScheduled(ctx context.Context, p Placement) error
}

// Snapshot is everything the scheduler reads, loaded before the run.
type Snapshot struct {
	Matches     []models.Match
	Days        []models.DaySchedule
	Courts      []models.Court
	SlotMinutes int
	Categories  map[string]models.Category
	Pairs       map[string]models.Pair
}

type Assignment struct {
	MatchID    string `json:"match_id"`
	CategoryID string `json:"category_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	CourtID    string `json:"court_id"`
}

type Skipped struct {
	MatchID    string `json:"match_id"`
	CategoryID string `json:"category_id"`
	Reason     string `json:"reason"`
}

type Report struct {
	Pending     int          `json:"pending"`
	Scheduled   int          `json:"scheduled"`
	Assignments []Assignment `json:"assignments"`
	Skipped     []Skipped    `json:"skipped"`
}

// Summary is the operator-facing "N of M" line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d of %d matches scheduled", r.Scheduled, r.Pending)
}

type AutoScheduler struct {
	writer   MatchScheduleWriter
	notifier Notifier
	logger   *slog.Logger
}

func NewAutoScheduler(writer MatchScheduleWriter, notifier Notifier, logger *slog.Logger) *AutoScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoScheduler{writer: writer, notifier: notifier, logger: logger}
}

type slotKey struct {
	day, time, court string
}

type timeKey struct {
	day, time string
}

// grid tracks court occupancy and which pairs are busy at each (day, time).
type grid struct {
	days     []string
	slots    map[string][]string
	courts   []string
	occupied map[slotKey]bool
	busy     map[timeKey]map[string]bool
}

func newGrid(days []models.DaySchedule, courts []models.Court, slotMinutes int) *grid {
	g := &grid{
		slots:    make(map[string][]string, len(days)),
		occupied: make(map[slotKey]bool),
		busy:     make(map[timeKey]map[string]bool),
	}
	for _, d := range days {
		if _, dup := g.slots[d.Date]; !dup {
			g.days = append(g.days, d.Date)
		}
		slots := GenerateTimeSlots(d.StartHour, d.EndHour, slotMinutes)
		sort.Strings(slots)
		g.slots[d.Date] = slots
	}
	sort.Strings(g.days)
	for _, c := range courts {
		g.courts = append(g.courts, c.ID)
	}
	return g
}

func (g *grid) commit(day, time, court string, pairIDs []string) {
	g.occupied[slotKey{day, time, court}] = true
	tk := timeKey{day, time}
	if g.busy[tk] == nil {
		g.busy[tk] = make(map[string]bool)
	}
	for _, id := range pairIDs {
		g.busy[tk][id] = true
	}
}

func (g *grid) pairsFree(day, time string, pairIDs []string) bool {
	busy := g.busy[timeKey{day, time}]
	for _, id := range pairIDs {
		if busy[id] {
			return false
		}
	}
	return true
}

// find returns the first free (day, time, court) for the pairs, scanning days and
// times in ascending order and courts in input order.
func (g *grid) find(pairIDs []string) (day, time, court string, ok bool) {
	for _, d := range g.days {
		for _, t := range g.slots[d] {
			if !g.pairsFree(d, t, pairIDs) {
				continue
			}
			for _, c := range g.courts {
				if !g.occupied[slotKey{d, t, c}] {
					return d, t, c, true
				}
			}
		}
	}
	return "", "", "", false
}

// Run places every unscheduled match, persisting each placement before the next.
// A store error aborts the run; placements made so far stay committed and are
// reported alongside the error.
func (s *AutoScheduler) Run(ctx context.Context, snap Snapshot) (*Report, error) {
	activeDays := make([]models.DaySchedule, 0, len(snap.Days))
	for _, d := range snap.Days {
		if d.IsActive {
			activeDays = append(activeDays, d)
		}
	}
	if len(activeDays) == 0 || len(snap.Courts) == 0 {
		return nil, ErrMissingScheduleConfiguration
	}
	if snap.SlotMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlotDuration, snap.SlotMinutes)
	}

	g := newGrid(activeDays, snap.Courts, snap.SlotMinutes)

	var categoryOrder []string
	pendingByCategory := make(map[string][]models.Match)
	for _, m := range snap.Matches {
		if m.IsScheduled() {
			g.commit(m.Day, m.StartTime, m.CourtID, m.PairIDs())
			continue
		}
		if _, seen := pendingByCategory[m.CategoryID]; !seen {
			categoryOrder = append(categoryOrder, m.CategoryID)
		}
		pendingByCategory[m.CategoryID] = append(pendingByCategory[m.CategoryID], m)
	}

	report := &Report{Assignments: []Assignment{}, Skipped: []Skipped{}}
	for _, ms := range pendingByCategory {
		report.Pending += len(ms)
	}

	for _, categoryID := range OrderCategories(categoryOrder, snap.Categories) {
		for _, m := range pendingByCategory[categoryID] {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			pairIDs := m.PairIDs()
			day, time, court, ok := g.find(pairIDs)
			if !ok {
				s.logger.WarnContext(ctx, "no free slot for match",
					slog.String("match_id", m.ID), slog.String("category_id", categoryID))
				report.Skipped = append(report.Skipped, Skipped{MatchID: m.ID, CategoryID: categoryID, Reason: "no free court or pairs busy in every slot"})
				continue
			}

			g.commit(day, time, court, pairIDs)
			if err := s.writer.UpdateMatchSchedule(ctx, m.ID, day, time, court); err != nil {
				return report, fmt.Errorf("failed to persist schedule for match %s: %w", m.ID, err)
			}
			report.Scheduled++
			report.Assignments = append(report.Assignments, Assignment{
				MatchID: m.ID, CategoryID: categoryID, Day: day, StartTime: time, CourtID: court,
			})

			m.Day, m.StartTime, m.CourtID = day, time, court
			s.notify(ctx, NewPlacement(m, snap.Courts, snap.Pairs))
		}
	}

	s.logger.InfoContext(ctx, "auto-schedule finished",
		slog.Int("pending", report.Pending),
		slog.Int("scheduled", report.Scheduled),
		slog.Int("skipped", len(report.Skipped)))
	return report, nil
}

func (s *AutoScheduler) notify(ctx context.Context, p Placement) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyMatchScheduled(ctx, p); err != nil {
		s.logger.WarnContext(ctx, "match scheduled notification failed",
			slog.String("match_id", p.Match.ID), slog.Any("error", err))
	}
}
