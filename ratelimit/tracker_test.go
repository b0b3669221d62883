package ratelimit

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

func TestQuotaFor(t *testing.T) {
	assert.Equal(t, 100, QuotaFor(RoleCustomer).MaxRequests)
	assert.Equal(t, 300, QuotaFor(RoleReseller).MaxRequests)
	assert.Equal(t, 500, QuotaFor(RoleAgent).MaxRequests)
	assert.Equal(t, 1000, QuotaFor(RoleAdmin).MaxRequests)
	assert.Equal(t, 2000, QuotaFor(RoleSuperAdmin).MaxRequests)
}

func TestQuotaFor_UnknownRoleFailsClosed(t *testing.T) {
	for _, role := range []string{"", "root", "ADMIN"} {
		assert.Equal(t, QuotaFor(RoleCustomer), QuotaFor(role), "role %q", role)
	}
}

func TestRecordRequest_ExactlyMaxAllowed(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 3, Window: time.Hour, MaxConcurrent: 2}
	now := time.Now()

	for i := 1; i <= 3; i++ {
		d := tracker.recordRequest("user:u1", q, now)
		assert.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 3-i, d.Remaining)
		assert.Equal(t, 3, d.Limit)
	}

	d := tracker.recordRequest("user:u1", q, now)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, now.Add(time.Hour), d.ResetAt)
}

func TestRecordRequest_WindowResetRestoresQuota(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 2, Window: time.Hour, MaxConcurrent: 1}
	start := time.Now()

	tracker.recordRequest("user:u1", q, start)
	tracker.recordRequest("user:u1", q, start)
	require.False(t, tracker.recordRequest("user:u1", q, start).Allowed)

	// A request exactly at the boundary is still inside the old window.
	atBoundary := tracker.recordRequest("user:u1", q, start.Add(time.Hour))
	assert.False(t, atBoundary.Allowed)

	afterBoundary := tracker.recordRequest("user:u1", q, start.Add(time.Hour+time.Second))
	assert.True(t, afterBoundary.Allowed)
	assert.Equal(t, 1, afterBoundary.Remaining)
	assert.Equal(t, start.Add(2*time.Hour+time.Second), afterBoundary.ResetAt)
}

func TestRecordRequest_IdentitiesAreIndependent(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 1, Window: time.Hour, MaxConcurrent: 1}
	now := time.Now()

	require.True(t, tracker.recordRequest("user:u1", q, now).Allowed)
	require.False(t, tracker.recordRequest("user:u1", q, now).Allowed)
	assert.True(t, tracker.recordRequest("ip:192.0.2.1", q, now).Allowed)
}

func TestAcquire_CeilingAndRelease(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 100, Window: time.Hour, MaxConcurrent: 2}
	now := time.Now()

	rel1, ok := tracker.acquire("user:u1", q, now)
	require.True(t, ok)
	rel2, ok := tracker.acquire("user:u1", q, now)
	require.True(t, ok)

	_, ok = tracker.acquire("user:u1", q, now)
	assert.False(t, ok, "third slot must be rejected")

	rel1()
	_, ok = tracker.acquire("user:u1", q, now)
	assert.True(t, ok, "released slot must be reusable")
	rel2()
}

func TestAcquire_ReleaseIsIdempotent(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 100, Window: time.Hour, MaxConcurrent: 1}
	now := time.Now()

	release, ok := tracker.acquire("user:u1", q, now)
	require.True(t, ok)

	release()
	release()
	release()

	// A double release must not free a phantom second slot.
	rel2, ok := tracker.acquire("user:u1", q, now)
	require.True(t, ok)
	_, ok = tracker.acquire("user:u1", q, now)
	assert.False(t, ok)
	rel2()
}

func TestAcquire_DoesNotConsumeRequestQuota(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 2, Window: time.Hour, MaxConcurrent: 5}
	now := time.Now()

	release, ok := tracker.acquire("user:u1", q, now)
	require.True(t, ok)
	release()

	d := tracker.recordRequest("user:u1", q, now)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}

func TestCleanup_SkipsRecordsWithInFlightWork(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 10, Window: time.Hour, MaxConcurrent: 5}
	start := time.Now()

	tracker.recordRequest("user:idle", q, start)
	release, ok := tracker.acquire("user:busy", q, start)
	require.True(t, ok)

	later := start.Add(2 * time.Hour)
	assert.Equal(t, 1, tracker.cleanupAt(later), "only the idle record is reclaimable")
	assert.Equal(t, 1, tracker.Stats().TotalTracked)

	release()
	assert.Equal(t, 1, tracker.cleanupAt(later))
	assert.Equal(t, 0, tracker.Stats().TotalTracked)
}

func TestCleanup_KeepsActiveWindows(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	q := Quota{MaxRequests: 10, Window: time.Hour, MaxConcurrent: 5}
	now := time.Now()

	tracker.recordRequest("user:u1", q, now)
	assert.Equal(t, 0, tracker.cleanupAt(now.Add(30*time.Minute)))
	assert.Equal(t, 1, tracker.Stats().TotalTracked)
}

func TestReset_SurvivesPendingRelease(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	release, ok := tracker.Acquire("user:u1", RoleAdmin)
	require.True(t, ok)

	tracker.Reset()
	assert.Equal(t, 0, tracker.Stats().TotalTracked)

	// The stale release decrements its own orphaned record and must not
	// touch state created after the reset.
	release()
	rel2, ok := tracker.Acquire("user:u1", RoleAdmin)
	require.True(t, ok)
	rel2()
}

func TestStats_TierTableAndActiveCounts(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	tracker.RecordRequest("user:u1", RoleAdmin)
	tracker.RecordRequest("ip:192.0.2.7", "")

	stats := tracker.Stats()
	assert.Equal(t, 2, stats.TotalTracked)
	assert.Equal(t, 2, stats.ActiveEntries)
	assert.Len(t, stats.Tiers, 5)
	assert.Equal(t, 1000, stats.Tiers[RoleAdmin].MaxRequests)
}

func TestTracker_ConcurrentCallers(t *testing.T) {
	tracker := NewTracker(0)
	defer tracker.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			identity := fmt.Sprintf("user:u%d", n%4)
			for j := 0; j < 100; j++ {
				tracker.RecordRequest(identity, RoleAgent)
				if release, ok := tracker.Acquire(identity, RoleAgent); ok {
					release()
				}
			}
			tracker.Cleanup()
		}(i)
	}
	wg.Wait()

	// Every acquire was paired with a release, so all slots are free again.
	for i := 0; i < 4; i++ {
		identity := fmt.Sprintf("user:u%d", i)
		release, ok := tracker.Acquire(identity, RoleAgent)
		require.True(t, ok, "identity %s should have free slots", identity)
		release()
	}
}
