package cache

import (
	"sync"
	"time"

	"resource-catalog-api/internal/apierr"
)

// entry stores a cached value and its absolute expiration timestamp.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// sweepDivisor sets the janitor period relative to the default TTL: a cache
// with a 10s default TTL is swept every 2s. Expired entries are also dropped
// lazily on Get, so the sweeper only bounds memory growth, not staleness.
const sweepDivisor = 5

// TTLCache is a map-backed cache with a default TTL and a background sweeper.
// All operations are safe for concurrent use; each call observes a consistent
// pre- or post-sweep state.
type TTLCache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]entry[V]
	defaultTTL time.Duration
	closed     bool
	stop       chan struct{}
	stopOnce   sync.Once
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// New constructs a TTLCache and starts its sweeper goroutine. Call Close to
// stop the sweeper.
func New[K comparable, V any](defaultTTL time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		items:      make(map[K]entry[V]),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	interval := defaultTTL / sweepDivisor
	if interval <= 0 {
		interval = time.Second
	}
	go c.sweep(interval)
	return c
}

func (c *TTLCache[K, V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.PurgeExpired()
		}
	}
}

// Get implements Cache.Get. An expired entry is treated as absent and is
// removed without waiting for the sweeper.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry with a fresh expiry.
		if cur, ok := c.items[key]; ok && now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set implements Cache.Set.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return apierr.CacheClosed()
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.items[key] = entry[V]{
		value:     value,
		expiresAt: now().Add(ttl),
	}
	return nil
}

// Delete implements Cache.Delete.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Has implements Cache.Has.
func (c *TTLCache[K, V]) Has(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	return ok && now().Before(e.expiresAt)
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, e := range c.items {
		if now().Before(e.expiresAt) {
			count++
		}
	}
	return count
}

// Clear implements Cache.Clear. A Get racing a Clear sees either the old
// value or a miss, never a torn state.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]entry[V])
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *TTLCache[K, V]) PurgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return
	}
	nowTs := now()
	for k, e := range c.items {
		if nowTs.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}

// Close implements Cache.Close. Idempotent; Get keeps working on whatever
// remains, Set fails with a CacheClosed error.
func (c *TTLCache[K, V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Ensure TTLCache implements Cache at compile time.
var _ Cache[string, any] = (*TTLCache[string, any])(nil)
