package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

type PairRepository interface {
	ListByCategory(ctx context.Context, categoryID string) ([]models.Pair, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Pair, error)
}

type postgresPairRepository struct {
	db *sql.DB
}

func NewPostgresPairRepository(db *sql.DB) PairRepository {
	return &postgresPairRepository{db: db}
}

func (r *postgresPairRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.Pair, error) {
	return r.list(ctx, `
		SELECT id, category_id, player1, player2, seed, email, phone, created_at
		FROM pairs
		WHERE category_id = $1
		ORDER BY created_at ASC, id ASC`, categoryID)
}

func (r *postgresPairRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Pair, error) {
	return r.list(ctx, `
		SELECT p.id, p.category_id, p.player1, p.player2, p.seed, p.email, p.phone, p.created_at
		FROM pairs p
		JOIN categories c ON c.id = p.category_id
		WHERE c.tournament_id = $1
		ORDER BY p.created_at ASC, p.id ASC`, tournamentID)
}

func (r *postgresPairRepository) list(ctx context.Context, query string, arg string) ([]models.Pair, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs for %s: %w", arg, err)
	}
	defer rows.Close()

	pairs := make([]models.Pair, 0)
	for rows.Next() {
		var p models.Pair
		var seed sql.NullInt64
		var email, phone sql.NullString
		if scanErr := rows.Scan(&p.ID, &p.CategoryID, &p.Player1, &p.Player2, &seed, &email, &phone, &p.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan pair row: %w", scanErr)
		}
		if seed.Valid {
			v := int(seed.Int64)
			p.Seed = &v
		}
		if email.Valid {
			p.Email = &email.String
		}
		if phone.Valid {
			p.Phone = &phone.String
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pair rows iteration: %w", err)
	}
	return pairs, nil
}
