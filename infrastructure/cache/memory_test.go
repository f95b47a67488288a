package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "resp:p1:t1:baseline")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "resp:p1:t1:baseline", `{"text":"hi"}`, time.Hour))

	val, found, err := store.Get(ctx, "resp:p1:t1:baseline")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"text":"hi"}`, val)
}

func TestMemoryStore_ExpiredEntryReadsAsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.clock = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "key", "value", time.Minute))

	// Within TTL: hit.
	_, found, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)

	// Past TTL: miss, and the entry is purged lazily.
	now = now.Add(2 * time.Minute)
	_, found, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, store.Len())
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.clock = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "key", "value", 0))

	now = now.Add(1000 * time.Hour)
	val, found, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", val)
}

func TestMemoryStore_OverwriteReplacesValueAndTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.clock = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "key", "old", time.Minute))
	require.NoError(t, store.Set(ctx, "key", "new", time.Hour))

	now = now.Add(30 * time.Minute)
	val, found, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", val)
}

func TestMemoryStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", "1", 0))
	require.NoError(t, store.Set(ctx, "b", "2", 0))

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "absent"))
	_, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, store.Len())
}

func TestMemoryStore_ConcurrentDistinctKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("resp:p%d:t1:creative", i)
			for j := 0; j < 100; j++ {
				_ = store.Set(ctx, key, fmt.Sprintf("v%d", j), time.Hour)
				_, _, _ = store.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, store.Len())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Set(ctx, "key", "v", 0), context.Canceled)
}
