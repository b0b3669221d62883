// api/ratelimit/tracker.go
package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
)

// record is the per-identity state shared by both counters. A record with
// in-flight concurrent operations is never reclaimed, so a release can
// always find the record it must decrement.
type record struct {
	requestCount    int
	windowResetAt   time.Time
	concurrentCount int
}

// Decision is the outcome of recording one request against a quota.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Stats is the admin readout for the tracker.
type Stats struct {
	TotalTracked  int              `json:"totalTracked"`
	ActiveEntries int              `json:"activeEntries"`
	Tiers         map[string]Quota `json:"tiers"`
}

// Tracker keeps fixed-window request counters and concurrent-mutation
// counters per caller identity. All read-modify-write sequences on a record
// happen under the tracker lock, so two requests racing for the last slot
// can never both win.
//
// The Tracker owns a cleanup goroutine. Call Stop to shut it down.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*record

	cleanupEvery time.Duration
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewTracker constructs a tracker and starts the periodic cleanup. A
// cleanupInterval <= 0 disables the background sweep.
func NewTracker(cleanupInterval time.Duration) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		records:      make(map[string]*record),
		cleanupEvery: cleanupInterval,
		cancel:       cancel,
	}
	if cleanupInterval > 0 {
		t.wg.Add(1)
		go t.cleanupLoop(ctx)
	}
	return t
}

// Stop halts the cleanup goroutine. Safe to call more than once.
func (t *Tracker) Stop() {
	t.cancel()
	t.wg.Wait()
}

// RecordRequest counts one request for identity under the quota of role and
// reports the post-increment state. Exactly MaxRequests calls per window are
// allowed; the call that crosses from MaxRequests-1 to MaxRequests still
// passes, only subsequent calls are rejected.
func (t *Tracker) RecordRequest(identity, role string) Decision {
	return t.recordRequest(identity, QuotaFor(role), time.Now())
}

func (t *Tracker) recordRequest(identity string, q Quota, now time.Time) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[identity]
	if !ok {
		r = &record{windowResetAt: now.Add(q.Window)}
		t.records[identity] = r
	} else if now.After(r.windowResetAt) {
		r.requestCount = 0
		r.windowResetAt = now.Add(q.Window)
	}

	r.requestCount++

	remaining := q.MaxRequests - r.requestCount
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   r.requestCount <= q.MaxRequests,
		Limit:     q.MaxRequests,
		Remaining: remaining,
		ResetAt:   r.windowResetAt,
	}
}

// Acquire takes a concurrency slot for identity under the quota of role. On
// success it returns ok=true and a release closure that must run when the
// operation's response is finalized, on every exit path. The closure is
// idempotent and never drives the counter below zero, so a duplicate release
// elsewhere cannot corrupt shared state.
func (t *Tracker) Acquire(identity, role string) (release func(), ok bool) {
	return t.acquire(identity, QuotaFor(role), time.Now())
}

func (t *Tracker) acquire(identity string, q Quota, now time.Time) (release func(), ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, okRec := t.records[identity]
	if !okRec {
		r = &record{windowResetAt: now.Add(q.Window)}
		t.records[identity] = r
	}

	if r.concurrentCount >= q.MaxConcurrent {
		return nil, false
	}
	r.concurrentCount++

	var once sync.Once
	release = func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if r.concurrentCount > 0 {
				r.concurrentCount--
			} else {
				logger.Warn("Concurrency counter release with no outstanding acquisition",
					zap.String("identity", identity))
			}
		})
	}
	return release, true
}

// Cleanup removes records whose window has lapsed and whose concurrency
// counter is zero, and returns how many were removed. Records with in-flight
// operations are kept regardless of window staleness; reclaiming one would
// strand a pending decrement.
func (t *Tracker) Cleanup() int {
	return t.cleanupAt(time.Now())
}

func (t *Tracker) cleanupAt(now time.Time) int {
	removed := 0

	t.mu.Lock()
	for identity, r := range t.records {
		if now.After(r.windowResetAt) && r.concurrentCount == 0 {
			delete(t.records, identity)
			removed++
		}
	}
	t.mu.Unlock()
	return removed
}

// Stats returns the admin readout: total tracked identities, identities
// still inside an active window or holding concurrency slots, and the tier
// table.
func (t *Tracker) Stats() Stats {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Stats{TotalTracked: len(t.records), Tiers: Quotas()}
	for _, r := range t.records {
		if !now.After(r.windowResetAt) || r.concurrentCount > 0 {
			stats.ActiveEntries++
		}
	}
	return stats
}

// Reset drops every record. Operator escape hatch; in-flight releases stay
// safe because they hold their record pointer and clamp at zero.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.records = make(map[string]*record)
	t.mu.Unlock()
}

func (t *Tracker) cleanupLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := t.Cleanup(); removed > 0 {
				logger.Debug("Rate tracker cleanup removed stale records", zap.Int("removed", removed))
			}
		}
	}
}
