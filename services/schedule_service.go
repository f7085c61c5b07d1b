package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/cache"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
	"github.com/Dosada05/padel-tournament/scheduling"
	"golang.org/x/sync/errgroup"
)

type ManualScheduleResult struct {
	Match     models.Match          `json:"match"`
	Conflicts []scheduling.Conflict `json:"conflicts"`
}

type ScheduleEntry struct {
	MatchID    string             `json:"match_id"`
	CategoryID string             `json:"category_id"`
	Category   string             `json:"category"`
	Stage      models.Stage       `json:"stage"`
	Status     models.MatchStatus `json:"status"`
	Day        string             `json:"day"`
	StartTime  string             `json:"start_time"`
	CourtID    string             `json:"court_id"`
	Court      string             `json:"court"`
	PairA      string             `json:"pair_a"`
	PairB      string             `json:"pair_b"`
}

type PublicSchedule struct {
	TournamentID string          `json:"tournament_id"`
	Day          string          `json:"day,omitempty"`
	Entries      []ScheduleEntry `json:"entries"`
}

type ScheduleService interface {
	AutoSchedule(ctx context.Context, tournamentID string) (*scheduling.Report, error)
	ClearSchedule(ctx context.Context, tournamentID, day, categoryID string) ([]string, error)
	ScheduleMatch(ctx context.Context, matchID, day, startTime, courtID string) (*ManualScheduleResult, error)
	ApplyChanges(ctx context.Context, tournamentID string, changes []scheduling.Change) ([]models.Match, error)
	PublicSchedule(ctx context.Context, tournamentID, day string) (*PublicSchedule, error)
}

type scheduleService struct {
	matchRepo          repositories.MatchRepository
	tournamentRepo     repositories.TournamentRepository
	categoryRepo       repositories.CategoryRepository
	pairRepo           repositories.PairRepository
	notifier           scheduling.Notifier
	events             EventPublisher
	cache              ViewCache
	metrics            *metrics.Metrics
	logger             *slog.Logger
	defaultSlotMinutes int
}

func NewScheduleService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	pairRepo repositories.PairRepository,
	notifier scheduling.Notifier,
	events EventPublisher,
	viewCache ViewCache,
	m *metrics.Metrics,
	logger *slog.Logger,
	defaultSlotMinutes int,
) ScheduleService {
	return &scheduleService{
		matchRepo:          matchRepo,
		tournamentRepo:     tournamentRepo,
		categoryRepo:       categoryRepo,
		pairRepo:           pairRepo,
		notifier:           notifier,
		events:             events,
		cache:              viewCache,
		metrics:            m,
		logger:             logger,
		defaultSlotMinutes: defaultSlotMinutes,
	}
}

type tournamentData struct {
	matches    []models.Match
	config     *models.TournamentConfig
	courts     []models.Court
	categories []models.Category
	pairs      []models.Pair
}

// load reads everything the scheduler and the public views need, concurrently.
func (s *scheduleService) load(ctx context.Context, tournamentID string, filter repositories.MatchFilter, withConfig bool) (*tournamentData, error) {
	data := &tournamentData{}
	filter.TournamentID = tournamentID

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.matches, err = s.matchRepo.List(gCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to load matches of tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	if withConfig {
		g.Go(func() error {
			var err error
			data.config, err = s.tournamentRepo.GetConfig(gCtx, tournamentID)
			return mapRepoError(err)
		})
	}
	g.Go(func() error {
		var err error
		data.courts, err = s.tournamentRepo.ListCourts(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load courts of tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.categories, err = s.categoryRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load categories of tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.pairs, err = s.pairRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load pairs of tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *scheduleService) AutoSchedule(ctx context.Context, tournamentID string) (*scheduling.Report, error) {
	start := time.Now()
	data, err := s.load(ctx, tournamentID, repositories.MatchFilter{}, true)
	if err != nil {
		return nil, err
	}

	slotMinutes := data.config.SlotDurationMinutes
	if slotMinutes <= 0 {
		slotMinutes = s.defaultSlotMinutes
	}
	snap := scheduling.Snapshot{
		Matches:     data.matches,
		Days:        data.config.Days,
		Courts:      data.courts,
		SlotMinutes: slotMinutes,
		Categories:  make(map[string]models.Category, len(data.categories)),
		Pairs:       make(map[string]models.Pair, len(data.pairs)),
	}
	for _, c := range data.categories {
		snap.Categories[c.ID] = c
	}
	for _, p := range data.pairs {
		snap.Pairs[p.ID] = p
	}

	report, err := scheduling.NewAutoScheduler(s.matchRepo, s.notifier, s.logger).Run(ctx, snap)
	s.observeRun(report, err, time.Since(start))
	if report != nil && report.Scheduled > 0 {
		invalidate(ctx, s.cache, s.logger, tournamentID, "")
	}
	if err != nil {
		return report, err
	}

	s.logger.InfoContext(ctx, "auto-schedule completed",
		slog.String("tournament_id", tournamentID),
		slog.String("summary", report.Summary()))
	return report, nil
}

func (s *scheduleService) observeRun(report *scheduling.Report, err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ScheduleRuns.WithLabelValues(outcome).Inc()
	s.metrics.ScheduleDuration.Observe(elapsed.Seconds())
	if report != nil {
		s.metrics.MatchesScheduled.Add(float64(report.Scheduled))
		s.metrics.MatchesSkipped.Add(float64(len(report.Skipped)))
	}
}

// ClearSchedule unsets day, start time and court of every placed match on the
// day and in the category, when given. It returns the ids it cleared.
func (s *scheduleService) ClearSchedule(ctx context.Context, tournamentID, day, categoryID string) ([]string, error) {
	if day != "" {
		if err := scheduling.ValidateDay(day); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
	}
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: tournamentID, Day: day, CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches of tournament %s: %w", tournamentID, err)
	}
	ids := scheduling.CleanFilter{Day: day, CategoryID: categoryID}.Select(matches)
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := s.matchRepo.ClearSchedule(ctx, tournamentID, ids); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "schedule cleared",
		slog.String("tournament_id", tournamentID),
		slog.String("day", day),
		slog.String("category_id", categoryID),
		slog.Int("matches", len(ids)))
	invalidate(ctx, s.cache, s.logger, tournamentID, categoryID)
	if s.events != nil {
		s.events.Publish(tournamentID, brackets.MessageMatchUpdated, map[string]interface{}{
			"cleared":     ids,
			"day":         day,
			"category_id": categoryID,
		})
	}
	return ids, nil
}

func validatePlacement(day, startTime, courtID string) error {
	if err := scheduling.ValidateDay(day); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if _, err := scheduling.ParseClock(startTime); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if courtID == "" {
		return fmt.Errorf("%w: court is required", ErrValidationFailed)
	}
	return nil
}

func hasCourt(courts []models.Court, courtID string) bool {
	for _, c := range courts {
		if c.ID == courtID {
			return true
		}
	}
	return false
}

// ScheduleMatch places one match where the caller asks. Double bookings are not
// refused; they come back as conflicts.
func (s *scheduleService) ScheduleMatch(ctx context.Context, matchID, day, startTime, courtID string) (*ManualScheduleResult, error) {
	if err := validatePlacement(day, startTime, courtID); err != nil {
		return nil, err
	}
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	data, err := s.load(ctx, match.TournamentID, repositories.MatchFilter{Day: day}, false)
	if err != nil {
		return nil, err
	}
	if !hasCourt(data.courts, courtID) {
		return nil, fmt.Errorf("%w: court %s is not part of the tournament", ErrValidationFailed, courtID)
	}

	if err := s.matchRepo.UpdateMatchSchedule(ctx, matchID, day, startTime, courtID); err != nil {
		return nil, mapRepoError(err)
	}
	placed := *match
	placed.Day, placed.StartTime, placed.CourtID = day, startTime, courtID
	if placed.Status == models.MatchStatusPending {
		placed.Status = models.MatchStatusScheduled
	}

	conflicts := scheduling.FindConflicts(data.matches, placed)
	if len(conflicts) > 0 {
		s.logger.WarnContext(ctx, "manual placement conflicts with other matches",
			slog.String("match_id", matchID), slog.Int("conflicts", len(conflicts)))
	} else {
		conflicts = []scheduling.Conflict{}
	}

	invalidate(ctx, s.cache, s.logger, placed.TournamentID, placed.CategoryID)
	s.notify(ctx, placed, data)
	return &ManualScheduleResult{Match: placed, Conflicts: conflicts}, nil
}

func (s *scheduleService) notify(ctx context.Context, m models.Match, data *tournamentData) {
	if s.notifier == nil {
		return
	}
	pairs := make(map[string]models.Pair, 2)
	for _, p := range data.pairs {
		if p.ID == m.PairAID || p.ID == m.PairBID {
			pairs[p.ID] = p
		}
	}
	if err := s.notifier.NotifyMatchScheduled(ctx, scheduling.NewPlacement(m, data.courts, pairs)); err != nil {
		s.logger.WarnContext(ctx, "match scheduled notification failed",
			slog.String("match_id", m.ID), slog.Any("error", err))
	}
}

// ApplyChanges flushes a batch of edits as one write per match. On failure the
// writes made so far stay applied and are returned with the error.
func (s *scheduleService) ApplyChanges(ctx context.Context, tournamentID string, changes []scheduling.Change) ([]models.Match, error) {
	buf := scheduling.NewChangeBuffer()
	for _, c := range changes {
		if c.MatchID == "" {
			return nil, fmt.Errorf("%w: change without match id", ErrValidationFailed)
		}
		if c.Day != nil && *c.Day != "" {
			if err := scheduling.ValidateDay(*c.Day); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
			}
		}
		if c.StartTime != nil && *c.StartTime != "" {
			if _, err := scheduling.ParseClock(*c.StartTime); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
			}
		}
		buf.Stage(c)
	}
	if buf.Len() == 0 {
		return []models.Match{}, nil
	}

	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: tournamentID})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches of tournament %s: %w", tournamentID, err)
	}
	byID := make(map[string]models.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	written, err := buf.Flush(ctx, s.matchRepo, func(id string) (models.Match, bool) {
		m, ok := byID[id]
		return m, ok
	})
	if len(written) > 0 {
		invalidate(ctx, s.cache, s.logger, tournamentID, "")
		if s.events != nil {
			s.events.Publish(tournamentID, brackets.MessageMatchUpdated, written)
		}
	}
	if err != nil {
		if errors.Is(err, scheduling.ErrUnknownMatch) {
			return written, fmt.Errorf("%w: %w", ErrMatchNotFound, err)
		}
		return written, mapRepoError(err)
	}
	return written, nil
}

func (s *scheduleService) PublicSchedule(ctx context.Context, tournamentID, day string) (*PublicSchedule, error) {
	if day != "" {
		if err := scheduling.ValidateDay(day); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
	}
	key := cache.TournamentPrefix(tournamentID) + "schedule:" + day
	return cached(ctx, s.cache, s.logger, key, func() (*PublicSchedule, error) {
		data, err := s.load(ctx, tournamentID, repositories.MatchFilter{Day: day}, false)
		if err != nil {
			return nil, err
		}
		return buildPublicSchedule(tournamentID, day, data), nil
	})
}

func buildPublicSchedule(tournamentID, day string, data *tournamentData) *PublicSchedule {
	categories := make(map[string]string, len(data.categories))
	for _, c := range data.categories {
		categories[c.ID] = c.Name
	}
	pairs := make(map[string]*models.Pair, len(data.pairs))
	for i := range data.pairs {
		pairs[data.pairs[i].ID] = &data.pairs[i]
	}
	courts := make(map[string]string, len(data.courts))
	courtOrder := make(map[string]int, len(data.courts))
	for i, c := range data.courts {
		courts[c.ID] = c.Name
		courtOrder[c.ID] = i
	}

	entries := make([]ScheduleEntry, 0, len(data.matches))
	for _, m := range data.matches {
		if !m.IsScheduled() {
			continue
		}
		entries = append(entries, ScheduleEntry{
			MatchID:    m.ID,
			CategoryID: m.CategoryID,
			Category:   categories[m.CategoryID],
			Stage:      m.Stage,
			Status:     m.Status,
			Day:        m.Day,
			StartTime:  m.StartTime,
			CourtID:    m.CourtID,
			Court:      courts[m.CourtID],
			PairA:      pairs[m.PairAID].DisplayName(),
			PairB:      pairs[m.PairBID].DisplayName(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return courtOrder[a.CourtID] < courtOrder[b.CourtID]
	})
	return &PublicSchedule{TournamentID: tournamentID, Day: day, Entries: entries}
}
