package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchCategoryInvalid = errors.New("match category conflict or invalid")
	ErrMatchPairInvalid     = errors.New("match pair conflict or invalid")
	ErrMatchCourtInvalid    = errors.New("match court conflict or invalid")
	ErrMatchGroupInvalid    = errors.New("match group conflict or invalid")
)

var matchColumns = []string{
	"id", "tournament_id", "category_id", "stage", "group_id", "pair_a_id", "pair_b_id",
	"status", "score", "winner_pair_id", "day", "start_time", "court_id",
	"round", "order_in_round", "next_match_id", "next_slot", "loser_next_match_id", "loser_next_slot",
	"created_at",
}

// MatchFilter narrows List. Zero fields are ignored.
type MatchFilter struct {
	TournamentID string
	CategoryID   string
	Day          string
	Stages       []models.Stage
}

type MatchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	CreateMatches(ctx context.Context, exec SQLExecutor, matches []models.Match, skipDelete bool) error
	UpdateResult(ctx context.Context, exec SQLExecutor, id string, score *models.Score, status models.MatchStatus, winnerPairID string) error
	UpdatePairs(ctx context.Context, exec SQLExecutor, id, pairAID, pairBID string) error
	UpdateMatchSchedule(ctx context.Context, id, day, startTime, courtID string) error
	ClearSchedule(ctx context.Context, tournamentID string, matchIDs []string) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func scanMatch(row rowScanner) (models.Match, error) {
	var m models.Match
	var groupID, pairA, pairB, winner, day, start, court sql.NullString
	var next, nextSlot, loserNext, loserSlot sql.NullString
	err := row.Scan(
		&m.ID,
		&m.TournamentID,
		&m.CategoryID,
		&m.Stage,
		&groupID,
		&pairA,
		&pairB,
		&m.Status,
		&m.Score,
		&winner,
		&day,
		&start,
		&court,
		&m.Round,
		&m.OrderInRound,
		&next,
		&nextSlot,
		&loserNext,
		&loserSlot,
		&m.CreatedAt,
	)
	if err != nil {
		return m, err
	}
	m.GroupID = groupID.String
	m.PairAID = pairA.String
	m.PairBID = pairB.String
	m.WinnerPairID = winner.String
	m.Day = day.String
	m.StartTime = start.String
	m.CourtID = court.String
	m.NextMatchID = next.String
	m.NextSlot = models.Slot(nextSlot.String)
	m.LoserNextMatchID = loserNext.String
	m.LoserNextSlot = models.Slot(loserSlot.String)
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query, args, err := psql.Select(matchColumns...).From("matches").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build match query: %w", err)
	}

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %s: %w", id, err)
	}
	return &m, nil
}

func buildListQuery(filter MatchFilter) (string, []interface{}, error) {
	q := psql.Select(matchColumns...).From("matches")
	if filter.TournamentID != "" {
		q = q.Where(sq.Eq{"tournament_id": filter.TournamentID})
	}
	if filter.CategoryID != "" {
		q = q.Where(sq.Eq{"category_id": filter.CategoryID})
	}
	if filter.Day != "" {
		q = q.Where(sq.Eq{"day": filter.Day})
	}
	if len(filter.Stages) > 0 {
		stages := make([]string, len(filter.Stages))
		for i, s := range filter.Stages {
			stages[i] = string(s)
		}
		q = q.Where(sq.Eq{"stage": stages})
	}
	return q.OrderBy("seq ASC").ToSql()
}

// List returns matches in creation order, which is the order the bracket
// generator emitted them in.
func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build match list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

// buildPurgeQuery deletes the scope a batch replaces: the group stage of its
// categories for group matches, every knockout stage for bracket matches.
func buildPurgeQuery(matches []models.Match) (string, []interface{}, error) {
	seen := make(map[string]bool)
	var categoryIDs []string
	hasGroups, hasKnockout := false, false
	for _, m := range matches {
		if !seen[m.CategoryID] {
			seen[m.CategoryID] = true
			categoryIDs = append(categoryIDs, m.CategoryID)
		}
		if m.Stage == models.StageGroups {
			hasGroups = true
		} else {
			hasKnockout = true
		}
	}

	var stages []string
	if hasGroups {
		stages = append(stages, string(models.StageGroups))
	}
	if hasKnockout {
		for _, s := range models.KnockoutStages() {
			stages = append(stages, string(s))
		}
	}
	return psql.Delete("matches").
		Where(sq.Eq{"category_id": categoryIDs}).
		Where(sq.Eq{"stage": stages}).
		ToSql()
}

func buildInsertQuery(matches []models.Match) (string, []interface{}, error) {
	q := psql.Insert("matches").Columns(
		"id", "tournament_id", "category_id", "stage", "group_id", "pair_a_id", "pair_b_id",
		"status", "day", "start_time", "court_id",
		"round", "order_in_round", "next_match_id", "next_slot", "loser_next_match_id", "loser_next_slot",
	)
	for _, m := range matches {
		q = q.Values(
			m.ID, m.TournamentID, m.CategoryID, m.Stage, nullable(m.GroupID), nullable(m.PairAID), nullable(m.PairBID),
			m.Status, nullable(m.Day), nullable(m.StartTime), nullable(m.CourtID),
			m.Round, m.OrderInRound, nullable(m.NextMatchID), nullable(string(m.NextSlot)),
			nullable(m.LoserNextMatchID), nullable(string(m.LoserNextSlot)),
		)
	}
	return q.ToSql()
}

// CreateMatches inserts the batch in order. Unless skipDelete is set, the scope the
// batch belongs to is purged first so regeneration replaces it.
func (r *postgresMatchRepository) CreateMatches(ctx context.Context, exec SQLExecutor, matches []models.Match, skipDelete bool) error {
	if len(matches) == 0 {
		return nil
	}

	if !skipDelete {
		query, args, err := buildPurgeQuery(matches)
		if err != nil {
			return fmt.Errorf("failed to build purge query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to purge previous matches: %w", err)
		}
	}

	query, args, err := buildInsertQuery(matches)
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return r.handleMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id string, score *models.Score, status models.MatchStatus, winnerPairID string) error {
	query := `UPDATE matches SET score = $1, status = $2, winner_pair_id = $3 WHERE id = $4`
	result, err := exec.ExecContext(ctx, query, score, status, nullable(winnerPairID), id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdatePairs(ctx context.Context, exec SQLExecutor, id, pairAID, pairBID string) error {
	query := `UPDATE matches SET pair_a_id = $1, pair_b_id = $2 WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, nullable(pairAID), nullable(pairBID), id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateMatchSchedule overwrites the placement of one match. Writing the same
// values twice leaves the row unchanged.
func (r *postgresMatchRepository) UpdateMatchSchedule(ctx context.Context, id, day, startTime, courtID string) error {
	query := `
		UPDATE matches
		SET day = $1, start_time = $2, court_id = $3,
		    status = CASE
		        WHEN status IN ('pending', 'scheduled') AND $1 IS NOT NULL AND $2 IS NOT NULL AND $3 IS NOT NULL THEN 'scheduled'
		        WHEN status = 'scheduled' THEN 'pending'
		        ELSE status
		    END
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, nullable(day), nullable(startTime), nullable(courtID), id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func buildClearScheduleQuery(tournamentID string, matchIDs []string) (string, []interface{}, error) {
	return psql.Update("matches").
		Set("day", nil).
		Set("start_time", nil).
		Set("court_id", nil).
		Set("status", sq.Expr("CASE WHEN status = 'scheduled' THEN 'pending' ELSE status END")).
		Where(sq.Eq{"tournament_id": tournamentID, "id": matchIDs}).
		ToSql()
}

// ClearSchedule unsets day, start time and court of the given matches of the
// tournament. Ids of other tournaments are left alone.
func (r *postgresMatchRepository) ClearSchedule(ctx context.Context, tournamentID string, matchIDs []string) (int64, error) {
	if len(matchIDs) == 0 {
		return 0, nil
	}
	query, args, err := buildClearScheduleQuery(tournamentID, matchIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build clear schedule query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear schedule for tournament %s: %w", tournamentID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_category_id_fkey", "matches_tournament_id_fkey":
			return ErrMatchCategoryInvalid
		case "matches_pair_a_id_fkey", "matches_pair_b_id_fkey", "matches_winner_pair_id_fkey":
			return ErrMatchPairInvalid
		case "matches_court_id_fkey":
			return ErrMatchCourtInvalid
		case "matches_group_id_fkey":
			return ErrMatchGroupInvalid
		}
	}
	return err
}
