package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bizplan/internal/config"
	"bizplan/internal/core"
)

const (
	redisKeyPrefix = "bizplan:plan:"
	redisLatestKey = "bizplan:latest"
)

// RedisStore keeps plans in Redis with an optional expiry
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStoreWithClient(rdb, config.Duration(cfg.TTL, 0)), nil
}

// NewRedisStoreWithClient wraps an existing client. A zero ttl keeps plans
// forever.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func planKey(id string) string { return redisKeyPrefix + id }

func (r *RedisStore) Save(ctx context.Context, plan core.PlanResult) error {
	payload, err := encodePlan(plan)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, planKey(plan.ID), payload, r.ttl)
	pipe.Set(ctx, redisLatestKey, plan.ID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (core.PlanResult, error) {
	payload, err := r.client.Get(ctx, planKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.PlanResult{}, ErrNotFound
	}
	if err != nil {
		return core.PlanResult{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodePlan(payload)
}

func (r *RedisStore) Latest(ctx context.Context) (core.PlanResult, error) {
	id, err := r.client.Get(ctx, redisLatestKey).Result()
	if errors.Is(err, redis.Nil) {
		return core.PlanResult{}, ErrNotFound
	}
	if err != nil {
		return core.PlanResult{}, fmt.Errorf("failed to load latest plan id: %w", err)
	}
	return r.Load(ctx, id)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
