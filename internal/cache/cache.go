package cache

import "time"

// Cache defines a key-value cache API with per-entry TTL.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	// A present-but-expired entry counts as a miss.
	Get(key K) (V, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the store's
	// default TTL applies. Fails only after Close.
	Set(key K, value V, ttl time.Duration) error

	// Delete removes a key if present. Idempotent.
	Delete(key K)

	// Has reports whether a key is present and not expired.
	Has(key K) bool

	// Len returns the number of non-expired items currently stored.
	Len() int

	// Clear removes all entries.
	Clear()

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()

	// Close stops the background sweeper and rejects further writes.
	Close()
}
