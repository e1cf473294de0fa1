// Package cache stores computed layouts and rendered artifacts.
//
// Layouts are deterministic functions of a family snapshot and the layout
// options, so a content hash of the snapshot plus the options is a stable
// key. Rendered artifacts are keyed by the layout hash plus the format.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP API
//   - [NullCache]: never stores anything
//
// # Keys
//
// A [Keyer] builds cache keys. [NewDefaultKeyer] hashes the key options;
// [NewScopedKeyer] prefixes every key, which isolates tenants that share a
// backend.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(snapshot), cache.LayoutKeyOpts{Root: "p1"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // decode data
//	}
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLFamily   = 10 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
