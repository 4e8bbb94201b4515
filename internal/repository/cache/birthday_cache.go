package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corp-social-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	birthdayListPrefix = "birthdays:list:"
	birthdayGenKey     = "birthdays:gen"
)

type birthdayCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBirthdayCache returns a Redis-backed cache. A nil client or a
// non-positive ttl yields a cache that never hits and never stores.
func NewBirthdayCache(client *redis.Client, ttl time.Duration) domain.BirthdayCache {
	if client == nil || ttl <= 0 {
		return noopBirthdayCache{}
	}
	return &birthdayCache{client: client, ttl: ttl}
}

// BirthdayKey identifies one computed list within a cache generation.
func BirthdayKey(w domain.BirthdayWindow, gen int64) string {
	return fmt.Sprintf("%s%d:%s:%d:%d", birthdayListPrefix, gen, w.ReferenceDate.Format(time.DateOnly), w.LookaheadDays, w.Limit)
}

func (c *birthdayCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, birthdayGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("birthday cache generation: %w", err)
	}
	return gen, nil
}

func (c *birthdayCache) Get(ctx context.Context, w domain.BirthdayWindow) ([]domain.User, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, BirthdayKey(w, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("birthday cache get: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, gen, false, fmt.Errorf("birthday cache decode: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, gen, true, nil
}

// Set stores users under gen. Lists written for an outdated generation are
// unreachable and expire with the ttl.
func (c *birthdayCache) Set(ctx context.Context, w domain.BirthdayWindow, gen int64, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("birthday cache encode: %w", err)
	}
	if err := c.client.Set(ctx, BirthdayKey(w, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("birthday cache set: %w", err)
	}
	return nil
}

// Invalidate starts a new generation and drops the stored lists; called
// after profile edits.
func (c *birthdayCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, birthdayGenKey).Err(); err != nil {
		return fmt.Errorf("birthday cache invalidate: %w", err)
	}

	iter := c.client.Scan(ctx, 0, birthdayListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("birthday cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("birthday cache delete: %w", err)
	}
	return nil
}

type noopBirthdayCache struct{}

func (noopBirthdayCache) Get(context.Context, domain.BirthdayWindow) ([]domain.User, int64, bool, error) {
	return nil, 0, false, nil
}

func (noopBirthdayCache) Set(context.Context, domain.BirthdayWindow, int64, []domain.User) error {
	return nil
}

func (noopBirthdayCache) Invalidate(context.Context) error {
	return nil
}
