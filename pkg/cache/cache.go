// Package cache provides content-addressed caching for scene artifacts.
//
// Rendering a snapshot or encoding an export is deterministic in the
// build options, so artifacts are cached under keys derived from a
// hash of those options. Backends cover the CLI (file), the server
// (redis with a memory fallback), and tests (memory, null).
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Scenes are cheap to rebuild; rendered
// artifacts are the expensive part and live longer.
const (
	TTLScene    = 1 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from scene inputs.
type Keyer interface {
	// SceneKey identifies a built scene by the hash of its options.
	SceneKey(optionsHash string) string

	// ArtifactKey identifies one exported artifact of a scene.
	ArtifactKey(optionsHash, format string) string
}

// DefaultKeyer derives keys with no namespace prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for a built scene.
func (DefaultKeyer) SceneKey(optionsHash string) string {
	return hashKey("scene", optionsHash)
}

// ArtifactKey generates a key for an exported artifact.
func (DefaultKeyer) ArtifactKey(optionsHash, format string) string {
	return hashKey("artifact", optionsHash, format)
}
