// Package cache stores rendered artifacts (SVG, PNG, PDF bytes) keyed by
// a hash of the input document and render options.
//
// Rendering a region graph is deterministic, so cached artifacts never go
// stale for a given key; TTLs exist only to bound disk or memory usage.
// Three backends are provided:
//   - FileCache: on-disk cache for CLI usage (XDG cache directory)
//   - RedisCache: shared cache for a serve deployment used by a team
//   - NullCache: no-op cache for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is the interface all artifact cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
