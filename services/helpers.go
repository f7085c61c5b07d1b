package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/padel-tournament/cache"
	"github.com/Dosada05/padel-tournament/repositories"
	"github.com/Dosada05/padel-tournament/scheduling"
)

// txFunc runs fn inside one transaction.
type txFunc func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error

// transactor commits when fn succeeds and rolls back otherwise.
func transactor(db *sql.DB, logger *slog.Logger) txFunc {
	return func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			}
			if txErr != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.ErrorContext(ctx, "rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
					txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
				}
				return
			}
			if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}()
		return fn(tx)
	}
}

// EventPublisher pushes real-time updates to followers of a tournament.
type EventPublisher interface {
	Publish(tournamentID, msgType string, payload interface{})
}

// ViewCache stores rendered public views.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

const viewTTL = 5 * time.Minute

// cached returns the JSON-decoded value under key, or calls load and stores its result.
// Cache failures are logged and never fail the read.
func cached[T any](ctx context.Context, c ViewCache, logger *slog.Logger, key string, load func() (T, error)) (T, error) {
	if c != nil {
		raw, ok, err := c.Get(ctx, key)
		if err != nil {
			logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		} else if ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if c != nil {
		if raw, err := json.Marshal(v); err == nil {
			if err := c.Set(ctx, key, raw, viewTTL); err != nil {
				logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		}
	}
	return v, nil
}

func invalidate(ctx context.Context, c ViewCache, logger *slog.Logger, tournamentID, categoryID string) {
	if c == nil {
		return
	}
	prefixes := []string{cache.TournamentPrefix(tournamentID)}
	if categoryID != "" {
		prefixes = append(prefixes, cache.CategoryPrefix(categoryID))
	}
	for _, p := range prefixes {
		if err := c.DeleteByPrefix(ctx, p); err != nil {
			logger.WarnContext(ctx, "cache invalidation failed", slog.String("prefix", p), slog.Any("error", err))
		}
	}
}

// mapRepoError translates repository not-found errors into service errors.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repositories.ErrTournamentConfigNotFound):
		return scheduling.ErrMissingScheduleConfiguration
	case errors.Is(err, repositories.ErrMatchPairInvalid),
		errors.Is(err, repositories.ErrMatchCourtInvalid),
		errors.Is(err, repositories.ErrMatchCategoryInvalid),
		errors.Is(err, repositories.ErrMatchGroupInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return err
}
