package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration, implemented
// by FileCache (CLI use) and NullCache (disabled caching).
type Cache interface {
	// Get retrieves a value. hit is false on a miss or expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts is the subset of layout configuration that changes a
// computed layout's cache key: two runs over the same network with the
// same options produce the same key and can share a cached result.
type LayoutKeyOpts struct {
	NodeOrdering   string
	IncludeShadows bool
	LinkGroups     string // joined LinkGroups, order-sensitive
	LinkGroupMode  string // edge.LayoutMode.String(): "per_node" or "per_network"
}

// Keyer derives cache keys for computed layouts from a network's
// content hash and the options used to lay it out.
type Keyer interface {
	LayoutKey(networkHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the unscoped Keyer used by CLI and single-tenant use.
type DefaultKeyer struct{}

// NewDefaultKeyer creates an unscoped keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (DefaultKeyer) LayoutKey(networkHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", networkHash, opts)
}
