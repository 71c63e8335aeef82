package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "questions:all"

// CachedRepository wraps a Repository with a Redis cache of the full
// question list. Every mutation invalidates the cache; cache failures fall
// through to the inner repository and never fail the request.
type CachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedRepository connects to Redis and wraps the given repository.
func NewCachedRepository(ctx context.Context, inner Repository, address, password string, ttl time.Duration) (*CachedRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Minute
	}

	return &CachedRepository{Repository: inner, rdb: rdb, ttl: ttl}, nil
}

// ListQuestions serves the list from Redis when cached, falling back to the
// inner repository and repopulating the cache on a miss.
func (c *CachedRepository) ListQuestions(ctx context.Context) ([]*Question, error) {
	cached, err := c.rdb.Get(ctx, listCacheKey).Bytes()
	if err == nil {
		var questions []*Question
		if err := json.Unmarshal(cached, &questions); err == nil {
			return questions, nil
		}
		slog.Warn("discarding undecodable list cache entry")
		c.invalidate(ctx)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("list cache read failed", "error", err)
	}

	questions, err := c.Repository.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(questions); err == nil {
		if err := c.rdb.Set(ctx, listCacheKey, data, c.ttl).Err(); err != nil {
			slog.Warn("list cache write failed", "error", err)
		}
	}
	return questions, nil
}

// CreateQuestion writes through and invalidates the list cache.
func (c *CachedRepository) CreateQuestion(ctx context.Context, q *Question) error {
	if err := c.Repository.CreateQuestion(ctx, q); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateQuestion writes through and invalidates the list cache.
func (c *CachedRepository) UpdateQuestion(ctx context.Context, id string, p Patch) (*Question, error) {
	q, err := c.Repository.UpdateQuestion(ctx, id, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return q, nil
}

// DeleteQuestion writes through and invalidates the list cache.
func (c *CachedRepository) DeleteQuestion(ctx context.Context, id string) error {
	if err := c.Repository.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Close closes the Redis connection and the inner repository.
func (c *CachedRepository) Close() error {
	if err := c.rdb.Close(); err != nil {
		slog.Warn("failed to close redis client", "error", err)
	}
	return c.Repository.Close()
}

func (c *CachedRepository) invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		slog.Warn("list cache invalidation failed", "error", err)
	}
}
