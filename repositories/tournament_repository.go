package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

var ErrTournamentConfigNotFound = errors.New("tournament schedule configuration not found")

type TournamentRepository interface {
	GetConfig(ctx context.Context, tournamentID string) (*models.TournamentConfig, error)
	ListCourts(ctx context.Context, tournamentID string) ([]models.Court, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

// GetConfig loads the slot duration and every configured day, ordered by date.
func (r *postgresTournamentRepository) GetConfig(ctx context.Context, tournamentID string) (*models.TournamentConfig, error) {
	cfg := &models.TournamentConfig{TournamentID: tournamentID}
	err := r.db.QueryRowContext(ctx,
		`SELECT slot_duration_minutes FROM tournament_configs WHERE tournament_id = $1`,
		tournamentID,
	).Scan(&cfg.SlotDurationMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentConfigNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament config %s: %w", tournamentID, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, start_hour, end_hour, is_active
		FROM tournament_days
		WHERE tournament_id = $1
		ORDER BY date ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament days for %s: %w", tournamentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DaySchedule
		if scanErr := rows.Scan(&d.Date, &d.StartHour, &d.EndHour, &d.IsActive); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament day row: %w", scanErr)
		}
		cfg.Days = append(cfg.Days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament day rows iteration: %w", err)
	}
	return cfg, nil
}

// ListCourts returns courts in the order they were registered.
func (r *postgresTournamentRepository) ListCourts(ctx context.Context, tournamentID string) ([]models.Court, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, name
		FROM courts
		WHERE tournament_id = $1
		ORDER BY position ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courts for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var c models.Court
		if scanErr := rows.Scan(&c.ID, &c.TournamentID, &c.Name); scanErr != nil {
			return nil, fmt.Errorf("failed to scan court row: %w", scanErr)
		}
		courts = append(courts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during court rows iteration: %w", err)
	}
	return courts, nil
}
