package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/lib/pq"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Category, error)
	ListGroups(ctx context.Context, categoryID string) ([]models.Group, error)
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

const categoryColumns = `id, tournament_id, name, slug, min_pairs, max_pairs, division_rank`

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var slug sql.NullString
	var rank sql.NullInt64
	if err := row.Scan(&c.ID, &c.TournamentID, &c.Name, &slug, &c.MinPairs, &c.MaxPairs, &rank); err != nil {
		return c, err
	}
	if slug.Valid {
		c.Slug = &slug.String
	}
	if rank.Valid {
		v := int(rank.Int64)
		c.DivisionRank = &v
	}
	return c, nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to scan category by id %s: %w", id, err)
	}
	return &c, nil
}

func (r *postgresCategoryRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE tournament_id = $1 ORDER BY name ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		c, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during category rows iteration: %w", err)
	}
	return categories, nil
}

// ListGroups returns the category's groups ordered by name.
func (r *postgresCategoryRepository) ListGroups(ctx context.Context, categoryID string) ([]models.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, name, pair_ids
		FROM groups
		WHERE category_id = $1
		ORDER BY name ASC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if scanErr := rows.Scan(&g.ID, &g.CategoryID, &g.Name, pq.Array(&g.PairIDs)); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group rows iteration: %w", err)
	}
	return groups, nil
}
