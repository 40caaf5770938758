package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan/internal/config"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, ttl)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SaveLoadLatest(t *testing.T) {
	s, mr := newTestRedisStore(t, 0)
	ctx := context.Background()

	_, err := s.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	first, second := samplePlan("First"), samplePlan("Second")
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	assert.True(t, mr.Exists(redisKeyPrefix+first.ID))
	latestID, err := mr.Get(redisLatestKey)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latestID)

	loaded, err := s.Load(ctx, first.ID)
	require.NoError(t, err)
	assertSamePlan(t, first, loaded)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestRedisStore_NotFound(t *testing.T) {
	s, _ := newTestRedisStore(t, 0)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	plan := samplePlan("Ephemeral")
	require.NoError(t, s.Save(ctx, plan))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+plan.ID))

	mr.FastForward(2 * time.Hour)

	_, err := s.Load(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	s, mr := newTestRedisStore(t, 0)
	mr.Close()

	_, err := s.Load(context.Background(), "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), config.RedisConfig{Address: mr.Addr(), TTL: "1h"})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, time.Hour, s.ttl)

	_, err = NewRedisStore(context.Background(), config.RedisConfig{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}
