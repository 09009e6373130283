package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read. The CLI wires
// it in for --no-cache runs and the server falls back to it when no
// backend is configured, so the pipeline never has to branch on
// caching being off.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
