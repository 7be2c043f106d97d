package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so the implementation
// (Redis, in-memory) can be swapped.
type Cache interface {
	// Get loads the value stored at key and unmarshals it into dest.
	// Returns (found, error):
	// - found = true: cache hit, dest has been populated
	// - found = false: cache miss, dest is untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}
