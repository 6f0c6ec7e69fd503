package cache

// ScopedKeyer wraps a Keyer with a prefix so that several graphs or
// deployments can share one cache backend without colliding.
//
// Example usage:
//
//	// Keys for one dataset on a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "porto:")
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

// RouteKey generates a prefixed key for route report caching.
func (k *ScopedKeyer) RouteKey(graphHash string, request any) string {
	return k.prefix + k.inner.RouteKey(graphHash, request)
}

// RenderKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
