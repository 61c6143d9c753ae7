package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)
	require.NoError(t, s.Ping(ctx))

	id, reserved, err := s.Reserve(ctx, "caja-1", "fp")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Zero(t, id)

	val, err := mr.Get(saleKey("caja-1"))
	require.NoError(t, err)
	assert.Equal(t, "pending|fp", val)
	assert.Equal(t, time.Hour, mr.TTL(saleKey("caja-1")))

	id, reserved, err = s.Reserve(ctx, "caja-1", "fp")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Zero(t, id)

	require.NoError(t, s.Complete(ctx, "caja-1", "fp", 31))
	id, reserved, err = s.Reserve(ctx, "caja-1", "fp")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, int64(31), id)

	_, _, err = s.Reserve(ctx, "caja-1", "otro")
	assert.ErrorIs(t, err, usecase.ErrIdempotencyKeyReused)
}

func TestRedisStoreReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	_, reserved, err := s.Reserve(ctx, "k", "fp")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, s.Release(ctx, "k"))
	assert.False(t, mr.Exists(saleKey("k")))

	_, reserved, err = s.Reserve(ctx, "k", "fp")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, s.Complete(ctx, "k", "fp", 5))

	mr.FastForward(2 * time.Minute)
	_, reserved, err = s.Reserve(ctx, "k", "outro")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestRedisStoreCorruptedValue(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set(saleKey("k"), "lixo"))

	_, _, err := s.Reserve(ctx, "k", "fp")
	assert.Error(t, err)
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)
	mr.Close()

	_, _, err := s.Reserve(ctx, "k", "fp")
	assert.Error(t, err)
	assert.Error(t, s.Complete(ctx, "k", "fp", 1))
	assert.Error(t, s.Release(ctx, "k"))
}
