// Package pipeline provides the core build → render pipeline for pvscene.
//
// This package implements the complete scene assembly and artifact
// rendering flow shared by the CLI and the API server. By centralizing
// this logic, both entry points behave identically and caching lives in
// one place.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: assemble the 3D scene (building, roof, modules, compass)
//  2. Render: produce artifacts in the requested formats (PNG, STL, GLB)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Quantity: 30,
//	    RoofType: "gable",
//	    Formats:  []string{"png", "glb"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkarlsen/pvscene/pkg/errors"
	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultQuantity is the module count used when a request names none.
	DefaultQuantity = 30

	// DefaultOrientation is the facing direction used when unset.
	DefaultOrientation = "south"

	// DefaultPitchDeg is the roof pitch used when unset.
	DefaultPitchDeg = 30.0
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatSTL = "stl"
	FormatGLB = "glb"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the scene pipeline.
// This struct supports JSON serialization for API requests. The
// artifact cache is keyed by the hash of the scene config derived via
// ToConfig, so every field that affects output must flow into it.
type Options struct {
	// Building options
	Length     float64 `json:"length,omitempty"`
	Width      float64 `json:"width,omitempty"`
	WallHeight float64 `json:"wall_height,omitempty"`

	// Roof options
	RoofType string  `json:"roof_type,omitempty"`
	PitchDeg float64 `json:"pitch_deg,omitempty"`
	Covering string  `json:"covering,omitempty"`

	// Placement options
	Orientation string `json:"orientation,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
	Mount       string `json:"mount,omitempty"`
	LayoutMode  string `json:"layout_mode,omitempty"`
	Removed     []int  `json:"removed,omitempty"`

	// Overflow options
	UseOutbuilding bool `json:"use_outbuilding,omitempty"`
	UseFacade      bool `json:"use_facade,omitempty"`

	// Module dimensions; zero fields fall back to the standard module.
	PanelWidth  float64 `json:"panel_width,omitempty"`
	PanelHeight float64 `json:"panel_height,omitempty"`
	PanelMargin float64 `json:"panel_margin,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized; Refresh is a per-request
	// directive, not part of the scene identity)
	Refresh bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the assembled 3D scene.
	Scene *scene.Scene

	// Summary reports how the requested modules were allocated.
	Summary scene.Summary

	// OptionsHash is the content hash of the options, used as the
	// cache identity of this run.
	OptionsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Triangles  int
	Panels     int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Quantity < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "quantity cannot be negative: %d", o.Quantity)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	base := scene.DefaultConfig()
	if o.Length == 0 {
		o.Length = base.Building.Length
	}
	if o.Width == 0 {
		o.Width = base.Building.Width
	}
	if o.WallHeight == 0 {
		o.WallHeight = base.Building.WallHeight
	}
	if o.RoofType == "" {
		o.RoofType = string(roof.Flat)
	}
	if o.PitchDeg == 0 {
		o.PitchDeg = DefaultPitchDeg
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Quantity == 0 {
		o.Quantity = DefaultQuantity
	}
	if o.Mount == "" {
		o.Mount = string(panel.MountSouth)
	}
	if o.LayoutMode == "" {
		o.LayoutMode = string(panel.ModeAuto)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ToConfig converts options into the scene build configuration.
// Unknown roof types, orientations, and mount modes pass through;
// the builder resolves them with its clamp-and-warn rules.
func (o *Options) ToConfig() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Building = scene.BuildingDims{
		Length:     o.Length,
		Width:      o.Width,
		WallHeight: o.WallHeight,
	}
	rt, _ := roof.ParseType(o.RoofType)
	cfg.Roof = roof.Spec{Type: rt, PitchDeg: o.PitchDeg, Covering: o.Covering}
	cfg.Orientation = o.Orientation
	cfg.Quantity = o.Quantity
	cfg.Mount = panel.MountMode(o.Mount)
	cfg.Layout.Mode = panel.Mode(o.LayoutMode)
	cfg.Layout.RemovedIndices = o.Removed
	cfg.Layout.UseOutbuilding = o.UseOutbuilding
	cfg.Layout.UseFacade = o.UseFacade
	if o.PanelWidth > 0 {
		cfg.Panels.Width = o.PanelWidth
	}
	if o.PanelHeight > 0 {
		cfg.Panels.Height = o.PanelHeight
	}
	if o.PanelMargin > 0 {
		cfg.Panels.Margin = o.PanelMargin
	}
	return cfg
}
