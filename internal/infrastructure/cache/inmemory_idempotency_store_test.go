package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimFirstWins(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	claimed, err := store.Claim(ctx, "form-abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = store.Claim(ctx, "form-abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim of the same key must lose")

	claimed, err = store.Claim(ctx, "form-other", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestIsClaimed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	ok, err := store.IsClaimed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Claim(ctx, "known", time.Minute)
	require.NoError(t, err)

	ok, err = store.IsClaimed(ctx, "known")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseFreesClaimedKey(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	claimed, err := store.Claim(ctx, "form-abc", time.Minute)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, store.Release(ctx, "form-abc"))

	claimed, err = store.Claim(ctx, "form-abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed, "released key must be claimable again")

	// Releasing an unknown key is a no-op
	assert.NoError(t, store.Release(ctx, "never-claimed"))
}

func TestExpiredClaimCanBeReclaimed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	claimed, err := store.Claim(ctx, "short", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, claimed)

	time.Sleep(20 * time.Millisecond)

	ok, err := store.IsClaimed(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok, "expired claim must not count")

	claimed, err = store.Claim(ctx, "short", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	const workers = 20
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := store.Claim(ctx, "contested", time.Minute)
			require.NoError(t, err)
			if claimed {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestCleanupRemovesExpiredEntries(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Claim(ctx, "stale", time.Millisecond)
	require.NoError(t, err)
	_, err = store.Claim(ctx, "fresh", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestCloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
