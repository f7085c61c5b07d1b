package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/cache"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

const defaultQualifiersPerGroup = 2

type GenerateBracketRequest struct {
	ThirdPlace         bool                 `json:"third_place"`
	Seeding            brackets.SeedingMode `json:"seeding"`
	QualifiersPerGroup int                  `json:"qualifiers_per_group"`
	// BracketSize overrides the smallest size that fits the qualifiers.
	BracketSize int `json:"bracket_size,omitempty"`
	// PairIDs is the seed order for manual seeding; group standings are used otherwise.
	PairIDs []string `json:"pair_ids,omitempty"`
}

type ResultOutcome struct {
	Match    models.Match   `json:"match"`
	Advanced []models.Match `json:"advanced"`
}

type BracketService interface {
	GenerateKnockout(ctx context.Context, tournamentID, categoryID string, req GenerateBracketRequest) ([]models.Match, error)
	RecordResult(ctx context.Context, matchID string, score models.Score) (*ResultOutcome, error)
	ValidateKnockout(ctx context.Context, tournamentID, categoryID string) (*brackets.ValidationResult, error)
	Standings(ctx context.Context, categoryID string) (map[string][]models.Standing, error)
	CategoryMatches(ctx context.Context, categoryID string) ([]models.Match, error)
}

type bracketService struct {
	inTx         txFunc
	matchRepo    repositories.MatchRepository
	categoryRepo repositories.CategoryRepository
	events       EventPublisher
	cache        ViewCache
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	categoryRepo repositories.CategoryRepository,
	events EventPublisher,
	viewCache ViewCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		inTx:         transactor(db, logger),
		matchRepo:    matchRepo,
		categoryRepo: categoryRepo,
		events:       events,
		cache:        viewCache,
		metrics:      m,
		logger:       logger,
	}
}

func (s *bracketService) categoryInTournament(ctx context.Context, tournamentID, categoryID string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if category.TournamentID != tournamentID {
		return nil, ErrTournamentMismatch
	}
	return category, nil
}

// loadGroupStage fetches the category's groups and group matches concurrently.
func (s *bracketService) loadGroupStage(ctx context.Context, categoryID string) ([]models.Group, []models.Match, error) {
	var groups []models.Group
	var matches []models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = s.categoryRepo.ListGroups(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load groups of category %s: %w", categoryID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, repositories.MatchFilter{
			CategoryID: categoryID,
			Stages:     []models.Stage{models.StageGroups},
		})
		if err != nil {
			return fmt.Errorf("failed to load group matches of category %s: %w", categoryID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return groups, matches, nil
}

func (s *bracketService) qualifiers(ctx context.Context, categoryID string, req GenerateBracketRequest) ([]models.Standing, error) {
	if req.Seeding == brackets.SeedingManual && len(req.PairIDs) > 0 {
		qualified := make([]models.Standing, len(req.PairIDs))
		for i, id := range req.PairIDs {
			qualified[i] = models.Standing{PairID: id, Position: i + 1}
		}
		return qualified, nil
	}

	groups, matches, err := s.loadGroupStage(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	perGroup := req.QualifiersPerGroup
	if perGroup <= 0 {
		perGroup = defaultQualifiersPerGroup
	}
	return brackets.QualifyFromGroups(groups, brackets.GroupStandings(groups, matches), perGroup), nil
}

// GenerateKnockout builds the bracket from the group stage and replaces any knockout
// matches the category already had, in one transaction.
func (s *bracketService) GenerateKnockout(ctx context.Context, tournamentID, categoryID string, req GenerateBracketRequest) ([]models.Match, error) {
	if req.Seeding == "" {
		req.Seeding = brackets.SeedingGroupPosition
	}
	if !req.Seeding.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, brackets.ErrInvalidSeeding)
	}
	if _, err := s.categoryInTournament(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}

	qualified, err := s.qualifiers(ctx, categoryID, req)
	if err != nil {
		return nil, err
	}
	if len(qualified) == 0 {
		return nil, ErrNoQualifiedPairs
	}

	size := req.BracketSize
	if size == 0 {
		size = brackets.CalculateOptimalBracketSize(len(qualified))
	}

	matches, err := brackets.GenerateBracket(qualified, brackets.BracketConfig{
		TournamentID: tournamentID,
		CategoryID:   categoryID,
		BracketSize:  size,
		ThirdPlace:   req.ThirdPlace,
		Seeding:      req.Seeding,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	err = s.inTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.matchRepo.CreateMatches(ctx, exec, matches, false)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save bracket for category %s: %w", categoryID, mapRepoError(err))
	}

	s.logger.InfoContext(ctx, "knockout bracket generated",
		slog.String("tournament_id", tournamentID),
		slog.String("category_id", categoryID),
		slog.Int("bracket_size", size),
		slog.Int("qualified", len(qualified)),
		slog.Int("matches", len(matches)))
	if s.metrics != nil {
		s.metrics.BracketsCreated.Inc()
	}
	invalidate(ctx, s.cache, s.logger, tournamentID, categoryID)
	s.publish(tournamentID, brackets.MessageBracketUpdated, matches)
	return matches, nil
}

// RecordResult stores the score and winner, then moves pairs forward in the
// bracket. Both writes share one transaction.
func (s *bracketService) RecordResult(ctx context.Context, matchID string, score models.Score) (*ResultOutcome, error) {
	if err := score.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if match.PairAID == "" || match.PairBID == "" {
		return nil, ErrMatchMissingPairs
	}

	slot, err := score.Winner()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	winner := match.PairIn(slot)
	if match.Status.IsDone() && match.WinnerPairID != "" && match.WinnerPairID != winner {
		return nil, ErrMatchAlreadyCompleted
	}

	completed := *match
	completed.Score = &score
	completed.Status = models.MatchStatusCompleted
	completed.WinnerPairID = winner

	var advanced []models.Match
	if completed.Stage.IsKnockout() {
		all, err := s.matchRepo.List(ctx, repositories.MatchFilter{
			CategoryID: completed.CategoryID,
			Stages:     models.KnockoutStages(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load bracket of category %s: %w", completed.CategoryID, err)
		}
		advanced = brackets.ChangedPairs(all, brackets.UpdateBracketProgression(all, completed))
	}

	err = s.inTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.UpdateResult(ctx, exec, completed.ID, completed.Score, completed.Status, completed.WinnerPairID); err != nil {
			return err
		}
		for _, m := range advanced {
			if err := s.matchRepo.UpdatePairs(ctx, exec, m.ID, m.PairAID, m.PairBID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save result of match %s: %w", matchID, mapRepoError(err))
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.String("match_id", matchID),
		slog.String("winner_pair_id", winner),
		slog.Int("advanced", len(advanced)))
	if s.metrics != nil {
		s.metrics.ResultsRecorded.Inc()
	}
	invalidate(ctx, s.cache, s.logger, completed.TournamentID, completed.CategoryID)
	s.publish(completed.TournamentID, brackets.MessageMatchUpdated, completed)
	if len(advanced) > 0 {
		s.publish(completed.TournamentID, brackets.MessageBracketUpdated, advanced)
	}

	if advanced == nil {
		advanced = []models.Match{}
	}
	return &ResultOutcome{Match: completed, Advanced: advanced}, nil
}

func (s *bracketService) ValidateKnockout(ctx context.Context, tournamentID, categoryID string) (*brackets.ValidationResult, error) {
	if _, err := s.categoryInTournament(ctx, tournamentID, categoryID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{
		CategoryID: categoryID,
		Stages:     models.KnockoutStages(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load bracket of category %s: %w", categoryID, err)
	}

	size := brackets.InferBracketSize(matches)
	if size == 0 {
		return &brackets.ValidationResult{IsValid: false, Errors: []string{"category has no knockout matches"}}, nil
	}
	result := brackets.ValidateBracket(matches, size)
	return &result, nil
}

func (s *bracketService) Standings(ctx context.Context, categoryID string) (map[string][]models.Standing, error) {
	key := cache.CategoryPrefix(categoryID) + "standings"
	return cached(ctx, s.cache, s.logger, key, func() (map[string][]models.Standing, error) {
		groups, matches, err := s.loadGroupStage(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		return brackets.GroupStandings(groups, matches), nil
	})
}

func (s *bracketService) CategoryMatches(ctx context.Context, categoryID string) ([]models.Match, error) {
	key := cache.CategoryPrefix(categoryID) + "matches"
	return cached(ctx, s.cache, s.logger, key, func() ([]models.Match, error) {
		if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
			return nil, mapRepoError(err)
		}
		return s.matchRepo.List(ctx, repositories.MatchFilter{CategoryID: categoryID})
	})
}

func (s *bracketService) publish(tournamentID, msgType string, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(tournamentID, msgType, payload)
}
