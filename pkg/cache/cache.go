// Package cache provides a framework-agnostic in-memory TTL cache.
//
// Entries expire after a fixed duration; there is no write-side
// invalidation. Stale reads within the TTL window are acceptable because
// every entry is idempotently recomputable from the store.
package cache

import (
	"sync"
	"time"
)

// Clock provides time operations, injectable for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// entry is one cached value with its expiry deadline.
type entry struct {
	value     any
	expiresAt time.Time
}

// TTLStore is a thread-safe in-memory key-value cache with per-store TTL.
//
// It is optimized for read-heavy workloads using sync.RWMutex. A janitor
// goroutine periodically removes expired entries so memory does not grow
// with dead keys between reads.
type TTLStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock

	stopJanitor chan struct{}
	stopOnce    sync.Once
}

// Config holds configuration for a TTLStore.
type Config struct {
	// TTL is the lifetime of every entry. Default: 5 minutes.
	TTL time.Duration

	// CleanupInterval is how often the janitor sweeps expired entries.
	// Zero disables the janitor (expired entries are still never served).
	CleanupInterval time.Duration

	// Clock provides time operations for testing. Default: SystemClock.
	Clock Clock
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             5 * time.Minute,
		CleanupInterval: time.Minute,
		Clock:           SystemClock{},
	}
}

// NewTTLStore creates a cache with the given configuration and starts its
// janitor when a cleanup interval is set.
func NewTTLStore(cfg Config) *TTLStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}

	store := &TTLStore{
		entries:     make(map[string]entry),
		ttl:         cfg.TTL,
		clock:       cfg.Clock,
		stopJanitor: make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go store.janitor(cfg.CleanupInterval)
	}

	return store
}

// Get returns the cached value for key, or ok=false when absent or expired.
func (s *TTLStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return nil, false
	}
	if s.clock.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores the value for key with the store's TTL, replacing any
// previous entry.
func (s *TTLStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been swept.
func (s *TTLStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor goroutine. Safe to call more than once.
func (s *TTLStore) Close() {
	s.stopOnce.Do(func() { close(s.stopJanitor) })
}

func (s *TTLStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopJanitor:
			return
		}
	}
}

func (s *TTLStore) sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
