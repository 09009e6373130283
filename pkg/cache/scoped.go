package cache

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one
// backend stay isolated. The server scopes per project:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:demo:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneKey generates a prefixed key for a built scene.
func (k *ScopedKeyer) SceneKey(optionsHash string) string {
	return k.prefix + k.inner.SceneKey(optionsHash)
}

// ArtifactKey generates a prefixed key for an exported artifact.
func (k *ScopedKeyer) ArtifactKey(optionsHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(optionsHash, format)
}
