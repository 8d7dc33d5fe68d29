// Package cache stores computed layouts and rendered artifacts so repeated
// CLI runs over an unchanged chart skip the work.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a directory (default)
//   - [RedisCache]: a shared Redis instance, entries expire server-side
//   - [NullCache]: stores nothing, for --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes: a layout key hashes the chart
// together with the layout options, an artifact key hashes the layout
// together with the render options. Any change to inputs produces a new key,
// so entries are never invalidated, only expired.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry type.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero or negative ttl stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
