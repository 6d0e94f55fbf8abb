package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"news-dashboard/pkg/cache"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeStore(ttl time.Duration) (*cache.TTLStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	store := cache.NewTTLStore(cache.Config{
		TTL:   ttl,
		Clock: clock,
		// janitor disabled; expiry is checked on read
	})
	return store, clock
}

func TestTTLStore_SetGet(t *testing.T) {
	store, _ := newFakeStore(5 * time.Minute)
	defer store.Close()

	store.Set("articles:page=1", []string{"a", "b"})

	got, ok := store.Get("articles:page=1")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = store.Get("articles:page=2")
	assert.False(t, ok)
}

func TestTTLStore_ExpiresAfterTTL(t *testing.T) {
	store, clock := newFakeStore(5 * time.Minute)
	defer store.Close()

	store.Set("k", "v")

	clock.advance(5 * time.Minute)
	_, ok := store.Get("k")
	assert.True(t, ok, "entry at exactly TTL is still valid")

	clock.advance(time.Second)
	_, ok = store.Get("k")
	assert.False(t, ok, "entry past TTL must not be served")
}

func TestTTLStore_SetRefreshesExpiry(t *testing.T) {
	store, clock := newFakeStore(5 * time.Minute)
	defer store.Close()

	store.Set("k", "v1")
	clock.advance(4 * time.Minute)
	store.Set("k", "v2")
	clock.advance(4 * time.Minute)

	got, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", got)
}

func TestTTLStore_DefaultsApplied(t *testing.T) {
	store := cache.NewTTLStore(cache.Config{})
	defer store.Close()

	store.Set("k", 1)
	got, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, store.Len())
}
