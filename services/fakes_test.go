package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeMatchRepo struct {
	mu            sync.Mutex
	order         []string
	matches       map[string]models.Match
	failSchedule  map[string]bool
	scheduleCalls int
}

func newFakeMatchRepo(matches ...models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[string]models.Match), failSchedule: make(map[string]bool)}
	for _, m := range matches {
		r.order = append(r.order, m.ID)
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) get(id string) models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches[id]
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (r *fakeMatchRepo) List(_ context.Context, f repositories.MatchFilter) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stages := make(map[models.Stage]bool)
	for _, s := range f.Stages {
		stages[s] = true
	}
	out := make([]models.Match, 0)
	for _, id := range r.order {
		m, ok := r.matches[id]
		if !ok {
			continue
		}
		if (f.TournamentID != "" && m.TournamentID != f.TournamentID) ||
			(f.CategoryID != "" && m.CategoryID != f.CategoryID) ||
			(f.Day != "" && m.Day != f.Day) ||
			(len(stages) > 0 && !stages[m.Stage]) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) CreateMatches(_ context.Context, _ repositories.SQLExecutor, matches []models.Match, skipDelete bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !skipDelete {
		for id, m := range r.matches {
			for _, n := range matches {
				if m.CategoryID == n.CategoryID && m.Stage.IsKnockout() == n.Stage.IsKnockout() {
					delete(r.matches, id)
					break
				}
			}
		}
	}
	for _, m := range matches {
		r.order = append(r.order, m.ID)
		r.matches[m.ID] = m
	}
	return nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, id string, score *models.Score, status models.MatchStatus, winner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Score, m.Status, m.WinnerPairID = score, status, winner
	r.matches[id] = m
	return nil
}

func (r *fakeMatchRepo) UpdatePairs(_ context.Context, _ repositories.SQLExecutor, id, a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.PairAID, m.PairBID = a, b
	r.matches[id] = m
	return nil
}

func (r *fakeMatchRepo) UpdateMatchSchedule(_ context.Context, id, day, startTime, courtID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduleCalls++
	if r.failSchedule[id] {
		return errors.New("connection reset by peer")
	}
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Day, m.StartTime, m.CourtID = day, startTime, courtID
	if m.Status == models.MatchStatusPending && m.IsScheduled() {
		m.Status = models.MatchStatusScheduled
	}
	r.matches[id] = m
	return nil
}

func (r *fakeMatchRepo) ClearSchedule(_ context.Context, tournamentID string, matchIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range matchIDs {
		m, ok := r.matches[id]
		if !ok || m.TournamentID != tournamentID {
			continue
		}
		m.Day, m.StartTime, m.CourtID = "", "", ""
		if m.Status == models.MatchStatusScheduled {
			m.Status = models.MatchStatusPending
		}
		r.matches[id] = m
		n++
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[string]models.Category
	groups     map[string][]models.Group
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.Category, error) {
	out := make([]models.Category, 0)
	for _, c := range r.categories {
		if c.TournamentID == tournamentID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) ListGroups(_ context.Context, categoryID string) ([]models.Group, error) {
	return r.groups[categoryID], nil
}

type fakeTournamentRepo struct {
	config *models.TournamentConfig
	courts []models.Court
}

func (r *fakeTournamentRepo) GetConfig(context.Context, string) (*models.TournamentConfig, error) {
	if r.config == nil {
		return nil, repositories.ErrTournamentConfigNotFound
	}
	return r.config, nil
}

func (r *fakeTournamentRepo) ListCourts(context.Context, string) ([]models.Court, error) {
	return r.courts, nil
}

type fakePairRepo struct {
	pairs []models.Pair
}

func (r *fakePairRepo) ListByCategory(_ context.Context, categoryID string) ([]models.Pair, error) {
	var out []models.Pair
	for _, p := range r.pairs {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePairRepo) ListByTournament(context.Context, string) ([]models.Pair, error) {
	return r.pairs, nil
}

type event struct {
	tournamentID string
	msgType      string
	payload      interface{}
}

type fakeEvents struct {
	mu     sync.Mutex
	events []event
}

func (e *fakeEvents) Publish(tournamentID, msgType string, payload interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event{tournamentID, msgType, payload})
}

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, ev := range e.events {
		out = append(out, ev.msgType)
	}
	return out
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *memCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func repoFilterKnockout(categoryID string) repositories.MatchFilter {
	return repositories.MatchFilter{CategoryID: categoryID, Stages: models.KnockoutStages()}
}
