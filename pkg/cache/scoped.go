package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis or MongoDB instance without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
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

// FeedKey generates a prefixed key for a feed listing.
func (k *ScopedKeyer) FeedKey(source, id string) string {
	return k.prefix + k.inner.FeedKey(source, id)
}

// UniverseKey generates a prefixed key for a gathered universe.
func (k *ScopedKeyer) UniverseKey(roots []string, opts UniverseKeyOpts) string {
	return k.prefix + k.inner.UniverseKey(roots, opts)
}
