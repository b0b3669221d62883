package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/medregistry/api/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func TestStore_SetGet(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "alpha", time.Minute)

	v, ok := store.Get("customer:1")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)
}

func TestStore_GetMissIndistinguishable(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	// Never set
	_, ok := store.Get("customer:absent")
	assert.False(t, ok)

	// Set but already past TTL
	store.Set("customer:expired", "beta", -time.Second)
	_, ok = store.Get("customer:expired")
	assert.False(t, ok)
}

func TestStore_SetOverwrites(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "old", time.Minute)
	store.Set("customer:1", "new", time.Minute)

	v, ok := store.Get("customer:1")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestStore_LazyExpiryPurgesEntry(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "alpha", -time.Second)
	store.Set("customer:2", "beta", time.Minute)
	require.Equal(t, 2, store.Stats().Total)

	_, ok := store.Get("customer:1")
	assert.False(t, ok)

	// The expired entry was deleted as a side effect of the read.
	assert.Equal(t, 1, store.Stats().Total)
}

func TestStore_DeleteIdempotent(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "alpha", time.Minute)

	assert.True(t, store.Delete("customer:1"))
	assert.False(t, store.Delete("customer:1"))
	assert.False(t, store.Delete("never:set"))
	assert.Equal(t, 0, store.Stats().Total)
}

func TestStore_DeletePattern(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "a", time.Minute)
	store.Set("customer:2", "b", time.Minute)
	store.Set("customers:list", "c", time.Minute)

	removed := store.DeletePattern("customer:*")
	assert.Equal(t, 2, removed)

	_, ok := store.Get("customer:1")
	assert.False(t, ok)
	_, ok = store.Get("customer:2")
	assert.False(t, ok)

	// The glob is anchored to the full key, not a prefix search.
	_, ok = store.Get("customers:list")
	assert.True(t, ok)
}

func TestStore_DeletePatternEscapesRegexMeta(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("documents:c1:lab_report", "a", time.Minute)
	store.Set("documents:c1x lab_report", "b", time.Minute)

	removed := store.DeletePattern("documents:c1:*")
	assert.Equal(t, 1, removed)
	_, ok := store.Get("documents:c1x lab_report")
	assert.True(t, ok)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "a", time.Minute)
	store.Set("document:1", "b", time.Minute)

	store.Clear()
	assert.Equal(t, 0, store.Stats().Total)
}

func TestStore_CleanupCountsRemovals(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "a", -time.Second)
	store.Set("customer:2", "b", -time.Second)
	store.Set("customer:3", "c", time.Minute)

	assert.Equal(t, 2, store.Cleanup())
	assert.Equal(t, 1, store.Stats().Total)
	assert.Equal(t, 0, store.Cleanup())
}

func TestStore_StatsSplitsActiveExpired(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	store.Set("customer:1", "a", time.Minute)
	store.Set("customer:2", "b", -time.Second)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Expired)
}

func TestStore_BackgroundSweep(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	defer store.Stop()

	store.Set("customer:1", "a", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return store.Stats().Total == 0
	}, time.Second, 10*time.Millisecond, "sweep should reclaim the entry without a read")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("customer:%d", j%20)
				store.Set(key, n, time.Minute)
				store.Get(key)
				if j%50 == 0 {
					store.DeletePattern("customer:1*")
					store.Cleanup()
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestGetAs_TypedAccess(t *testing.T) {
	store := NewStore(0)
	defer store.Stop()

	type profile struct{ Name string }
	SetAs(store, "customer:1", profile{Name: "Clinic A"}, time.Minute)

	got, ok := GetAs[profile](store, "customer:1")
	require.True(t, ok)
	assert.Equal(t, "Clinic A", got.Name)

	// A mismatched type is a miss, not a panic.
	_, ok = GetAs[int](store, "customer:1")
	assert.False(t, ok)
}
