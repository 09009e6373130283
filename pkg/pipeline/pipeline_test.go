package pipeline

import (
	"context"
	"testing"

	"github.com/mkarlsen/pvscene/pkg/cache"
	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "stl", "glb"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"png", "svg"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.Quantity != DefaultQuantity {
		t.Errorf("Quantity should be %d, got %d", DefaultQuantity, opts.Quantity)
	}
	if opts.Orientation != DefaultOrientation {
		t.Errorf("Orientation should be %s, got %s", DefaultOrientation, opts.Orientation)
	}
	if opts.RoofType != string(roof.Flat) {
		t.Errorf("RoofType should be flat, got %s", opts.RoofType)
	}
	if opts.PitchDeg != DefaultPitchDeg {
		t.Errorf("PitchDeg should be %f, got %f", DefaultPitchDeg, opts.PitchDeg)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats should be [png], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	// Negative quantity
	opts := Options{Quantity: -5}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Negative quantity should fail")
	}

	// Bad format
	opts = Options{Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unknown format should fail")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Quantity: 12}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalOrientation := opts.Orientation
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Orientation != originalOrientation {
		t.Error("Orientation changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsToConfig(t *testing.T) {
	opts := Options{
		Length:         12,
		Width:          8,
		WallHeight:     4,
		RoofType:       "gable",
		PitchDeg:       35,
		Covering:       "red tile",
		Orientation:    "east",
		Quantity:       20,
		Mount:          "east-west",
		LayoutMode:     "manual",
		Removed:        []int{0, 3},
		UseOutbuilding: true,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg := opts.ToConfig()
	if cfg.Building.Length != 12 || cfg.Building.Width != 8 || cfg.Building.WallHeight != 4 {
		t.Errorf("building dims = %+v", cfg.Building)
	}
	if cfg.Roof.Type != roof.Gable || cfg.Roof.PitchDeg != 35 {
		t.Errorf("roof = %+v", cfg.Roof)
	}
	if cfg.Orientation != "east" || cfg.Quantity != 20 {
		t.Errorf("orientation/quantity = %s/%d", cfg.Orientation, cfg.Quantity)
	}
	if cfg.Mount != panel.MountEastWest {
		t.Errorf("mount = %s", cfg.Mount)
	}
	if cfg.Layout.Mode != panel.ModeManual || len(cfg.Layout.RemovedIndices) != 2 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if !cfg.Layout.UseOutbuilding || cfg.Layout.UseFacade {
		t.Errorf("overflow flags = %+v", cfg.Layout)
	}
}

func TestOptionsHashStability(t *testing.T) {
	a := Options{Quantity: 10, RoofType: "hip"}
	b := Options{Quantity: 10, RoofType: "hip"}
	if err := a.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := b.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if cache.HashOptions(a.ToConfig()) != cache.HashOptions(b.ToConfig()) {
		t.Error("equal options should produce equal hashes")
	}

	b.Quantity = 11
	if cache.HashOptions(a.ToConfig()) == cache.HashOptions(b.ToConfig()) {
		t.Error("different options should produce different hashes")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	opts := Options{
		Quantity: 8,
		Formats:  []string{FormatSTL, FormatGLB},
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Scene == nil {
		t.Fatal("Execute should return a scene")
	}
	if result.Summary.Requested != 8 {
		t.Errorf("requested = %d, want 8", result.Summary.Requested)
	}
	if result.Stats.Triangles == 0 {
		t.Error("triangle count should be recorded")
	}
	if len(result.Artifacts[FormatSTL]) == 0 {
		t.Error("stl artifact missing")
	}
	if len(result.Artifacts[FormatGLB]) == 0 {
		t.Error("glb artifact missing")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}
	if result.OptionsHash == "" {
		t.Error("options hash should be set")
	}
}

func TestRunnerExecuteCachesArtifacts(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	opts := Options{Quantity: 4, Formats: []string{FormatSTL}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := runner.Execute(ctx, Options{Quantity: 4, Formats: []string{FormatSTL}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSTL]) != string(second.Artifacts[FormatSTL]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(ctx, Options{Quantity: 4, Formats: []string{FormatSTL}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestRunnerNilDependencies(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil {
		t.Error("NewRunner should fill nil dependencies")
	}

	sc, summary, err := runner.Build(context.Background(), Options{Quantity: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sc == nil || summary.Requested != 2 {
		t.Errorf("Build returned sc=%v requested=%d", sc != nil, summary.Requested)
	}
}
