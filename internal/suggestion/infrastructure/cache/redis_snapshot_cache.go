// Package cache provides a Redis read-through cache for weight
// snapshots, so suggest requests don't hit the database on every call.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/infrastructure/persistence"
)

const snapshotKey = "prepara:weights:latest"

// RedisSnapshotCache serves the latest weight snapshot from Redis,
// falling back to the snapshot repository on miss or Redis failure. A
// circuit breaker keeps a flapping Redis from slowing every request
// down to a timeout.
type RedisSnapshotCache struct {
	client   *redis.Client
	fallback domain.SnapshotRepository
	breaker  *gobreaker.CircuitBreaker[*domain.WeightSnapshot]
	ttl      time.Duration
	logger   *slog.Logger
}

// NewRedisSnapshotCache creates a new RedisSnapshotCache.
func NewRedisSnapshotCache(client *redis.Client, fallback domain.SnapshotRepository, ttl time.Duration, logger *slog.Logger) *RedisSnapshotCache {
	breaker := gobreaker.NewCircuitBreaker[*domain.WeightSnapshot](gobreaker.Settings{
		Name:    "redis-snapshot-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		// A cache miss is a normal outcome, not a Redis failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	})
	return &RedisSnapshotCache{
		client:   client,
		fallback: fallback,
		breaker:  breaker,
		ttl:      ttl,
		logger:   logger,
	}
}

// Latest returns the cached snapshot if present, otherwise loads it from
// the repository and backfills the cache.
func (c *RedisSnapshotCache) Latest(ctx context.Context) (*domain.WeightSnapshot, error) {
	snap, err := c.breaker.Execute(func() (*domain.WeightSnapshot, error) {
		data, err := c.client.Get(ctx, snapshotKey).Bytes()
		if err != nil {
			return nil, err
		}
		return persistence.DecodeSnapshot(data)
	})
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Warn("snapshot cache read failed, falling back to repository", "error", err)
	}

	snap, err = c.fallback.Latest(ctx)
	if err != nil {
		return nil, err
	}
	c.backfill(ctx, snap)
	return snap, nil
}

// Put writes a freshly trained snapshot into the cache.
func (c *RedisSnapshotCache) Put(ctx context.Context, snap *domain.WeightSnapshot) error {
	data, err := persistence.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = c.breaker.Execute(func() (*domain.WeightSnapshot, error) {
		if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) backfill(ctx context.Context, snap *domain.WeightSnapshot) {
	if err := c.Put(ctx, snap); err != nil {
		c.logger.Debug("snapshot cache backfill failed", "error", err)
	}
}
