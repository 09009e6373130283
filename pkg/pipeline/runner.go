package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkarlsen/pvscene/pkg/cache"
	"github.com/mkarlsen/pvscene/pkg/errors"
	"github.com/mkarlsen/pvscene/pkg/export"
	"github.com/mkarlsen/pvscene/pkg/observability"
	"github.com/mkarlsen/pvscene/pkg/scene"
	"github.com/mkarlsen/pvscene/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	// The scene config, not the request envelope, is the cache
	// identity: requests that differ only in formats share artifacts.
	result := &Result{
		OptionsHash: cache.HashOptions(opts.ToConfig()),
		Artifacts:   make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Quantity)
	sc, summary := scene.Build(opts.ToConfig(), opts.Logger)
	result.Scene = sc
	result.Summary = summary
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Panels = sc.PanelCount()
	for _, m := range sc.Meshes {
		result.Stats.Triangles += len(m.Tris)
	}
	observability.Pipeline().OnBuildComplete(ctx, summary.Placed(), result.Stats.BuildTime, nil)

	r.Logger.Info("assembled scene",
		"panels", result.Stats.Panels,
		"triangles", result.Stats.Triangles,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, opts, result.OptionsHash)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build assembles the scene without rendering any artifacts.
func (r *Runner) Build(ctx context.Context, opts Options) (*scene.Scene, scene.Summary, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, scene.Summary{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)
	sc, summary := scene.Build(opts.ToConfig(), opts.Logger)
	return sc, summary, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info. The hit flag is true only when every requested format was
// served from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options, optionsHash string) (map[string][]byte, bool, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte)
	allCached := true

	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(optionsHash, format)
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	for _, format := range opts.Formats {
		data := r.renderArtifact(sc, format)
		if data == nil {
			// Degraded artifact: absent rather than fatal.
			r.Logger.Warn("artifact unavailable", "format", format)
			continue
		}
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(optionsHash, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, false, nil
}

// renderArtifact produces one artifact. Mesh exports fall back to
// placeholder bytes internally; only the raster snapshot can be absent.
func (r *Runner) renderArtifact(sc *scene.Scene, format string) []byte {
	switch format {
	case FormatPNG:
		return snapshot.PNG(sc)
	case FormatSTL:
		return export.STL(sc, export.Everything)
	case FormatGLB:
		return export.GLB(sc, export.Everything)
	default:
		return nil
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
