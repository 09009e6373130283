// Package pkg provides the core libraries for pvscene 3D scene building.
//
// # Overview
//
// pvscene assembles a parametric 3D scene of a building, its roof, and a
// requested number of PV modules, then renders snapshots and mesh exports.
// The pkg directory is organized into four main areas:
//
//  1. Geometry and domain logic ([geom], [roof], [panel], [scene])
//  2. Outputs ([snapshot], [export])
//  3. Infrastructure ([cache], [store], [observability], [errors])
//  4. Orchestration ([pipeline])
//
// # Architecture
//
// The typical data flow through pvscene:
//
//	scene.Config (dimensions, roof, orientation, quantity)
//	         ↓
//	    [roof] + [panel] packages (roof solid, module grid packing)
//	         ↓
//	    [scene] package (assembly, overflow allocation, rotation)
//	         ↓
//	    [snapshot] / [export] packages (PNG, STL, GLB)
//
// # Quick Start
//
// Build a scene and export it:
//
//	import (
//	    "github.com/mkarlsen/pvscene/pkg/export"
//	    "github.com/mkarlsen/pvscene/pkg/scene"
//	)
//
//	cfg := scene.DefaultConfig()
//	cfg.Quantity = 24
//	sc, summary := scene.Build(cfg, nil)
//	stl := export.STL(sc, export.Everything)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Quantity: 24,
//	    Formats:  []string{"png", "stl"},
//	})
//
// # Main Packages
//
// [geom] - Triangle meshes and solid primitives (boxes, prisms, pyramids)
// built on gonum's r3 vectors, with rigid transforms.
//
// [roof] - Roof shape factory. Flat, shed, gable, and hip shapes with
// pitch clamping and covering colors.
//
// [panel] - PV module grid packing on rectangular roof faces, with
// automatic and manual placement modes.
//
// [scene] - Scene assembly: ground plane, building, roof, module array,
// overflow allocation to an outbuilding or facade, compass marker, and
// the orientation rotation.
//
// [snapshot] - Raster preview rendering (orthographic projection with
// flat shading, PNG output).
//
// [export] - Mesh exports: binary STL and glTF binary (GLB).
//
// [pipeline] - Orchestration used by the CLI and the HTTP API: option
// validation, scene build, artifact rendering, and artifact caching.
//
// [cache] - Cache backends for rendered artifacts (memory, file, Redis).
//
// [store] - Saved-project persistence (memory, file, MongoDB).
//
// [observability] - Hook interfaces the server bridges to Prometheus.
//
// [errors] - Coded errors shared across surfaces, plus input validation.
//
// [geom]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/geom
// [roof]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/roof
// [panel]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/panel
// [scene]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/scene
// [snapshot]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/snapshot
// [export]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/cache
// [store]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/store
// [observability]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mkarlsen/pvscene/pkg/errors
package pkg
