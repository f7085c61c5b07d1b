package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store caches rendered public views. A nil *Store is valid and caches nothing.
type Store struct {
	client *redis.Client
}

// New connects to redisURL. An empty URL returns a nil Store.
func New(ctx context.Context, redisURL string) (*Store, error) {
	if redisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the cached value and whether it was present.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}

// DeleteByPrefix removes every key starting with prefix.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) error {
	if s == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

// TournamentPrefix scopes every cached view of a tournament.
func TournamentPrefix(tournamentID string) string {
	return "padel:tournament:" + tournamentID + ":"
}

// CategoryPrefix scopes every cached view of a category.
func CategoryPrefix(categoryID string) string {
	return "padel:category:" + categoryID + ":"
}
