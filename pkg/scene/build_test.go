package scene

import (
	"math"
	"testing"

	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
)

// testPanels gives the 10x6 reference footprint a main-roof capacity of
// exactly 14 modules (7 columns, 2 rows).
var testPanels = panel.Spec{Width: 1.3, Height: 2.3, Margin: 0.08, Thickness: 0.04}

// overflowPanels gives the same footprint a capacity of 10 (5x2) so the
// overflow paths are reachable with small quantities.
var overflowPanels = panel.Spec{Width: 1.7, Height: 2.4, Margin: 0.1, Thickness: 0.04}

func referenceConfig(quantity int) Config {
	cfg := DefaultConfig()
	cfg.Building = BuildingDims{Length: 10, Width: 6, WallHeight: 3}
	cfg.Roof = roof.Spec{Type: roof.Flat, PitchDeg: 30}
	cfg.Orientation = "south"
	cfg.Panels = testPanels
	cfg.Quantity = quantity
	return cfg
}

func TestBuildFillsMainRoof(t *testing.T) {
	// Scenario: quantity equals main capacity, everything fits.
	sc, sum := Build(referenceConfig(14), nil)

	if sum.Main != 14 || sum.Unplaced != 0 {
		t.Errorf("summary = main %d unplaced %d, want 14/0", sum.Main, sum.Unplaced)
	}
	if sum.MainCapacity != 14 {
		t.Errorf("main capacity = %d, want 14", sum.MainCapacity)
	}
	if got := len(sc.Panels[GroupMain]); got != 14 {
		t.Errorf("placed panel records = %d, want 14", got)
	}
	if sc.PanelCount() != 14 {
		t.Errorf("PanelCount = %d, want 14", sc.PanelCount())
	}
}

func TestBuildReportsUnplacedWithFallbacksDisabled(t *testing.T) {
	cfg := referenceConfig(20)
	sc, sum := Build(cfg, nil)

	if sum.Main != 14 {
		t.Errorf("main = %d, want capacity 14", sum.Main)
	}
	if sum.Unplaced != 6 {
		t.Errorf("unplaced = %d, want 6", sum.Unplaced)
	}
	if len(sc.Panels[GroupOutbuilding]) != 0 || len(sc.Panels[GroupFacade]) != 0 {
		t.Error("fallback surfaces used although disabled")
	}
}

func TestBuildOverflowsToOutbuilding(t *testing.T) {
	// Main capacity 10, outbuilding capacity 4, quantity 14.
	cfg := referenceConfig(14)
	cfg.Panels = overflowPanels
	cfg.Layout.UseOutbuilding = true
	cfg.Layout.Outbuilding = panel.Outbuilding{Length: 4, Width: 5, Height: 2.5}

	sc, sum := Build(cfg, nil)
	if sum.Main != 10 || sum.Outbuilding != 4 || sum.Unplaced != 0 {
		t.Errorf("summary = %+v, want main 10, outbuilding 4, unplaced 0", sum)
	}
	if len(sc.MeshesByTag(TagOutbuilding)) != 1 {
		t.Error("outbuilding mesh missing from the scene")
	}
}

func TestBuildOverflowsToFacadeAfterOutbuilding(t *testing.T) {
	// Main 10, outbuilding 4, facade absorbs the remaining 6.
	cfg := referenceConfig(20)
	cfg.Panels = overflowPanels
	cfg.Building.WallHeight = 5.2
	cfg.Layout.UseOutbuilding = true
	cfg.Layout.UseFacade = true
	cfg.Layout.Outbuilding = panel.Outbuilding{Length: 4, Width: 5, Height: 2.5}

	sc, sum := Build(cfg, nil)
	if sum.Main != 10 || sum.Outbuilding != 4 || sum.Facade != 6 || sum.Unplaced != 0 {
		t.Errorf("summary = %+v, want 10/4/6/0", sum)
	}
	for _, p := range sc.Panels[GroupFacade] {
		if p.TiltDeg != 90 {
			t.Errorf("facade module tilt = %v, want 90", p.TiltDeg)
		}
	}
}

func TestBuildManualModeThinsPlacement(t *testing.T) {
	// 20 auto positions, three removed, requested above capacity.
	cfg := referenceConfig(20)
	// A 10x10 footprint with the overflow spec packs 5 columns by
	// 4 rows = 20 auto positions.
	cfg.Building.Width = 10
	cfg.Panels = overflowPanels
	cfg.Layout.Mode = panel.ModeManual
	cfg.Layout.RemovedIndices = []int{0, 1, 5, 99}

	_, sum := Build(cfg, nil)
	if sum.MainCapacity != 20 {
		t.Fatalf("main capacity = %d, want 20", sum.MainCapacity)
	}
	if sum.Main != 17 {
		t.Errorf("main = %d, want 17 (three removed, out-of-range ignored)", sum.Main)
	}
}

func TestBuildNeverExceedsRequested(t *testing.T) {
	for _, qty := range []int{0, 1, 7, 14, 50} {
		cfg := referenceConfig(qty)
		cfg.Layout.UseOutbuilding = true
		cfg.Layout.UseFacade = true
		sc, sum := Build(cfg, nil)
		if sum.Placed() > qty {
			t.Errorf("qty %d: placed %d exceeds requested", qty, sum.Placed())
		}
		if sc.PanelCount() != sum.Placed() {
			t.Errorf("qty %d: mesh count %d != summary %d", qty, sc.PanelCount(), sum.Placed())
		}
		if qty >= 0 && sum.Placed()+sum.Unplaced != qty {
			t.Errorf("qty %d: placed+unplaced = %d, want the requested count", qty, sum.Placed()+sum.Unplaced)
		}
	}
}

func TestBuildClampsInvalidDimensions(t *testing.T) {
	cfg := referenceConfig(0)
	cfg.Building = BuildingDims{Length: -4, Width: 0, WallHeight: math.NaN()}
	sc, _ := Build(cfg, nil)

	walls := sc.MeshesByTag(TagWalls)
	if len(walls) != 1 {
		t.Fatal("walls mesh missing")
	}
	min, max := walls[0].Bounds()
	if max.Z-min.Z <= 0 {
		t.Error("clamped walls have no height")
	}
}

func TestBuildOrientationEast(t *testing.T) {
	cfg := referenceConfig(4)
	cfg.Orientation = "east"
	sc, _ := Build(cfg, nil)

	// The 10m axis now runs along Y: footprint rotated -90 degrees
	// about its center (5,3).
	walls := sc.MeshesByTag(TagWalls)[0]
	min, max := walls.Bounds()
	if math.Abs((max.Y-min.Y)-10) > 1e-6 || math.Abs((max.X-min.X)-6) > 1e-6 {
		t.Errorf("rotated walls span %.1fx%.1f, want 6x10", max.X-min.X, max.Y-min.Y)
	}
	// Panel yaw carries the scene rotation.
	for _, p := range sc.Panels[GroupMain] {
		if p.YawDeg != -90 {
			t.Errorf("panel yaw = %v, want -90", p.YawDeg)
		}
	}
}

func TestCompassNeverRotates(t *testing.T) {
	var reference []*Scene
	for _, orient := range []string{"south", "east", "west", "north", "sideways"} {
		cfg := referenceConfig(2)
		cfg.Orientation = orient
		sc, _ := Build(cfg, nil)
		reference = append(reference, sc)
	}
	base := reference[0].MeshesByTag(TagCompass)[0]
	for i, sc := range reference[1:] {
		compass := sc.MeshesByTag(TagCompass)[0]
		if len(compass.Tris) != len(base.Tris) {
			t.Fatalf("scene %d: compass triangle count differs", i+1)
		}
		for j, tr := range compass.Tris {
			if tr != base.Tris[j] {
				t.Fatalf("scene %d: compass moved: %v != %v", i+1, tr, base.Tris[j])
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := referenceConfig(14)
	cfg.Layout.UseOutbuilding = true
	_, a := Build(cfg, nil)
	_, b := Build(cfg, nil)
	if a != b {
		t.Errorf("summaries differ between identical builds: %+v vs %+v", a, b)
	}
}

func TestBuildEastWestMountAlternatesYaw(t *testing.T) {
	cfg := referenceConfig(4)
	cfg.Mount = panel.MountEastWest
	sc, _ := Build(cfg, nil)
	panels := sc.Panels[GroupMain]
	if len(panels) != 4 {
		t.Fatalf("placed %d panels, want 4", len(panels))
	}
	for _, p := range panels {
		want := -90.0
		if p.Index%2 == 1 {
			want = 90
		}
		if p.YawDeg != want {
			t.Errorf("panel %d yaw = %v, want %v", p.Index, p.YawDeg, want)
		}
		if p.TiltDeg != panel.EastWestTilt {
			t.Errorf("panel %d tilt = %v, want %v", p.Index, p.TiltDeg, panel.EastWestTilt)
		}
	}
}

func TestBuildPitchedRoofPanelsCoplanar(t *testing.T) {
	cfg := referenceConfig(6)
	cfg.Roof = roof.Spec{Type: roof.Gable, PitchDeg: 35}
	cfg.Mount = panel.MountEastWest // must be ignored on pitched roofs
	sc, _ := Build(cfg, nil)
	for _, p := range sc.Panels[GroupMain] {
		if p.TiltDeg != 35 {
			t.Errorf("panel tilt = %v, want roof pitch 35", p.TiltDeg)
		}
		if p.YawDeg != 0 {
			t.Errorf("panel yaw = %v, want 0", p.YawDeg)
		}
	}
}
