package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation —
// useful when a single cache directory or backend is shared by several
// users or projects and their layout caches must not collide.
//
// Example usage:
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(networkHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(networkHash, opts)
}
