package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonathan/career-advisor/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, time.Hour)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, store := setupRedis(t)

	s := newSession("abc", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.LastRecommendations = &types.RecommendationBundle{CareerAdvice: "keep going"}
	require.NoError(t, store.Put(ctx, s))

	assert.True(t, mr.Exists(DefaultRedisPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultRedisPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, s.Messages, got.Messages)
	require.NotNil(t, got.LastRecommendations)
	assert.Equal(t, "keep going", got.LastRecommendations.CareerAdvice)
}

func TestRedisStore_Missing(t *testing.T) {
	_, store := setupRedis(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	mr, store := setupRedis(t)

	require.NoError(t, store.Put(ctx, newSession("abc", time.Now())))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	mr, store := setupRedis(t)

	require.NoError(t, store.Put(ctx, newSession("a", time.Now())))
	require.NoError(t, store.Put(ctx, newSession("b", time.Now())))
	require.NoError(t, mr.Set("unrelated", "x"))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
