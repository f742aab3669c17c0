package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or tenants
// can share one backend without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "roomtile:v1:")
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

// TilingKey generates a prefixed key for tiling results.
func (k *ScopedKeyer) TilingKey(height, width int, palette []int) string {
	return k.prefix + k.inner.TilingKey(height, width, palette)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tilingHash, opts)
}

// RecordKey generates a prefixed key for stored records.
func (k *ScopedKeyer) RecordKey(id string) string {
	return k.prefix + k.inner.RecordKey(id)
}
