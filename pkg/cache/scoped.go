package cache

// ScopedKeyer prefixes every key of an inner Keyer. The pipeline scopes keys
// by layout schema version; callers sharing a Redis instance can add their
// own scope on top:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(forestHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
