// Package cache provides the storage layer for computed tilings and rendered
// artifacts.
//
// A run is a pure function of (height, width, palette), so its result can be
// cached by those inputs forever; rendered artifacts are cached by the
// tiling's content hash plus the render options. Backends share the [Cache]
// interface:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis with native TTLs (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: disables caching
//
// Cache keys come from a [Keyer]; [ScopedKeyer] prefixes them for isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLTiling   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLRecord   = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiration.
// A ttl of zero stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
