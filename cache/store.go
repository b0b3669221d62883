// api/cache/store.go
package cache

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
)

// entry is a single cached value with its absolute expiry.
type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Stats is a point-in-time snapshot of store occupancy. Expired counts
// entries past their TTL that no sweep or read has purged yet.
type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}

// Store is a concurrency-safe in-memory key-value cache with per-entry TTL.
//
// Expiry is enforced two ways: lazily on Get, which keeps reads O(1), and by
// a periodic sweep that reclaims entries written once and never read again.
// Neither alone is sufficient; lazy expiry leaks unread keys and the sweep
// leaves stale reads between ticks.
//
// The Store owns its sweep goroutine. Call Stop to shut it down.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry

	sweepEvery time.Duration
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewStore constructs a store and starts the background sweep. A
// sweepInterval <= 0 disables the sweep; lazy expiry still applies.
func NewStore(sweepInterval time.Duration) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		items:      make(map[string]entry),
		sweepEvery: sweepInterval,
		cancel:     cancel,
	}
	if sweepInterval > 0 {
		s.wg.Add(1)
		go s.sweepLoop(ctx)
	}
	return s
}

// Stop halts the background sweep. Safe to call more than once.
func (s *Store) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Set stores a value under key with the given TTL, overwriting any existing
// entry unconditionally.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

// Get returns the value for key. An expired entry is deleted as a side
// effect and reported as a miss; callers cannot distinguish "expired" from
// "never set".
func (s *Store) Get(key string) (any, bool) {
	now := time.Now()

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expired(now) {
		return e.value, true
	}

	// Expired: upgrade to a write lock and re-check, since another goroutine
	// may have overwritten the entry between locks.
	s.mu.Lock()
	if e2, ok := s.items[key]; ok && e2.expired(now) {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil, false
}

// Delete removes key if present and reports whether it existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	_, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return ok
}

// DeletePattern removes every key matching the glob pattern, where '*'
// matches zero or more characters and the pattern must cover the whole key.
// It returns the number of keys removed. A malformed pattern is logged and
// removes nothing; governance faults must never propagate to request paths.
func (s *Store) DeletePattern(pattern string) int {
	re, err := compileGlob(pattern)
	if err != nil {
		logger.Error("Invalid cache invalidation pattern",
			zap.String("pattern", pattern),
			zap.Error(err))
		return 0
	}

	// Match against a snapshot so concurrent writers never invalidate the
	// iteration.
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	removed := 0
	s.mu.Lock()
	for _, k := range keys {
		if re.MatchString(k) {
			if _, ok := s.items[k]; ok {
				delete(s.items, k)
				removed++
			}
		}
	}
	s.mu.Unlock()
	return removed
}

// Clear drops every entry. Operator escape hatch, not part of the normal
// invalidation flow.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = make(map[string]entry)
	s.mu.Unlock()
}

// Cleanup removes all expired entries and returns how many were removed.
func (s *Store) Cleanup() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	for k, e := range s.items {
		if e.expired(now) {
			delete(s.items, k)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// Stats returns occupancy counters for observability.
func (s *Store) Stats() Stats {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.items)}
	for _, e := range s.items {
		if e.expired(now) {
			stats.Expired++
		} else {
			stats.Active++
		}
	}
	return stats
}

func (s *Store) sweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				logger.Debug("Cache sweep removed expired entries", zap.Int("removed", removed))
			}
		}
	}
}

// compileGlob turns a glob pattern into an anchored regular expression.
// Everything except '*' is matched literally.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}

// SetAs stores a typed value under key. It exists so writes and reads of the
// same key can share a type parameter at the call site.
func SetAs[T any](s *Store, key string, value T, ttl time.Duration) {
	s.Set(key, value, ttl)
}

// GetAs returns the value for key as T. A value of a different type is a
// miss, so call sites keep static type information about what they cache.
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
