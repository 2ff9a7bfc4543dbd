// Package cache stores rendered artifacts so unchanged diagrams are not
// re-rendered.
//
// Keys are derived from the content that determines the output: the DOT
// source, the target format, and the bytes of every icon file the diagram
// references. Editing a label, an icon, or the renderer options therefore
// produces a new key, and stale entries are simply never read again.
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [Discard]: misses every lookup (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the inputs, besides the DOT source, that change a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format    string
	IconsHash string
}

// ArtifactKey returns the cache key for an artifact rendered from dot.
func ArtifactKey(dot string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts.Format, Hash([]byte(dot)), opts.IconsHash)
}
