package cache

import (
	"time"
)

// CacheService represents a generic cache service. The ledger uses it as an
// optional fast path in front of durable storage; cache misses and cache
// errors both fall through to the database.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
