package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetlab/quartet/internal/ports"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "quartet"), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	_, found, err := store.Get(ctx, "resp:p1:t1:mirror")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "resp:p1:t1:mirror", `{"text":"cached"}`, time.Hour))

	val, found, err := store.Get(ctx, "resp:p1:t1:mirror")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"text":"cached"}`, val)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "key", "value", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "key", "value", 0))
	assert.True(t, mr.Exists("quartet:key"))
}

func TestRedisStore_DeleteAbsentKey(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	assert.NoError(t, store.Delete(ctx, "never-set"))
}

func TestRedisStore_ClearOnlyTouchesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "a", "1", 0))
	require.NoError(t, store.Set(ctx, "b", "2", 0))
	require.NoError(t, mr.Set("other:key", "untouched"))

	require.NoError(t, store.Clear(ctx))

	_, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, mr.Exists("other:key"))
}

func TestRedisStore_BackendFailureIsCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	mr.Close()

	_, _, err := store.Get(ctx, "key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCacheUnavailable)

	err = store.Set(ctx, "key", "value", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCacheUnavailable)
}
