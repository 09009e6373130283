package panel

import (
	"math"
	"testing"
)

// testSpec gives a 10x6 surface a capacity of exactly 14 (7 columns,
// 2 rows), matching the worked examples in the documentation.
var testSpec = Spec{Width: 1.3, Height: 2.3, Margin: 0.08, Thickness: 0.04}

func TestGridSize(t *testing.T) {
	tests := []struct {
		name     string
		l, w     float64
		wantCols int
		wantRows int
	}{
		{"Reference", 10, 6, 7, 2},
		{"TinySurfaceStillHoldsOne", 1, 1, 1, 1},
		{"ZeroSurface", 0, 6, 0, 0},
		{"NegativeSurface", -2, 6, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := GridSize(tt.l, tt.w, testSpec)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("GridSize(%v, %v) = %d, %d, want %d, %d",
					tt.l, tt.w, cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestGridDeterministicRowMajor(t *testing.T) {
	a := Grid(10, 6, testSpec)
	b := Grid(10, 6, testSpec)
	if len(a) != 14 {
		t.Fatalf("len(Grid) = %d, want 14", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("grid not deterministic at %d: %v != %v", i, a[i], b[i])
		}
		if a[i].Index != i {
			t.Errorf("position %d has generation index %d", i, a[i].Index)
		}
	}
	// Top row first, then columns left to right.
	if a[0].Y <= a[len(a)-1].Y {
		t.Error("first position is not on the top row")
	}
	for i := 1; i < 7; i++ {
		if a[i].X <= a[i-1].X {
			t.Error("columns are not ordered left to right")
		}
		if a[i].Y != a[0].Y {
			t.Error("first row spans multiple y values")
		}
	}
}

func TestGridRespectsMargins(t *testing.T) {
	for _, p := range Grid(10, 6, testSpec) {
		if p.X-testSpec.Width/2 < testSpec.Margin-1e-9 || p.X+testSpec.Width/2 > 10-testSpec.Margin+1e-9 {
			t.Errorf("position %v violates x margin", p)
		}
		if p.Y-testSpec.Height/2 < testSpec.Margin-1e-9 || p.Y+testSpec.Height/2 > 6-testSpec.Margin+1e-9 {
			t.Errorf("position %v violates y margin", p)
		}
	}
}

func TestSelectAuto(t *testing.T) {
	grid := Grid(10, 6, testSpec)
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"UnderCapacity", 5, 5},
		{"ExactCapacity", 14, 14},
		{"OverCapacity", 99, 14},
		{"Zero", 0, 0},
		{"Negative", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(grid, tt.requested, DefaultLayout())
			if len(got) != tt.want {
				t.Errorf("Select(%d) = %d positions, want %d", tt.requested, len(got), tt.want)
			}
		})
	}
}

func TestSelectManualThinsWithoutRecompacting(t *testing.T) {
	grid := Grid(10, 6, testSpec) // 14 positions
	cfg := DefaultLayout()
	cfg.Mode = ModeManual
	cfg.RemovedIndices = []int{0, 1, 5, 200, -4} // out-of-range entries are no-ops

	got := Select(grid, 99, cfg)
	if len(got) != 11 {
		t.Fatalf("manual selection = %d positions, want 11", len(got))
	}
	for _, p := range got {
		if p.Index == 0 || p.Index == 1 || p.Index == 5 {
			t.Errorf("removed index %d still placed", p.Index)
		}
	}
	// Generation indices survive thinning so saved removal lists stay
	// meaningful.
	if got[0].Index != 2 {
		t.Errorf("first surviving index = %d, want 2", got[0].Index)
	}
}

func TestSelectManualStillCapsAtRequested(t *testing.T) {
	grid := Grid(10, 6, testSpec)
	cfg := DefaultLayout()
	cfg.Mode = ModeManual
	cfg.RemovedIndices = []int{3}
	if got := Select(grid, 4, cfg); len(got) != 4 {
		t.Errorf("manual selection = %d positions, want 4", len(got))
	}
}

func TestEstimateCapacityIsHeuristic(t *testing.T) {
	got := EstimateCapacity(10, 6, testSpec)
	want := int(math.Floor(10 * 6 * 0.7 / (testSpec.Width * testSpec.Height)))
	if got != want {
		t.Errorf("EstimateCapacity = %d, want %d", got, want)
	}
	if EstimateCapacity(0, 6, testSpec) != 0 {
		t.Error("zero surface should estimate 0")
	}
}

func TestMountModeOrientation(t *testing.T) {
	yaw, tilt := MountSouth.Orientation(7)
	if yaw != 0 || tilt != SouthTilt {
		t.Errorf("south mount = %v/%v, want 0/%v", yaw, tilt, SouthTilt)
	}
	eastYaw, _ := MountEastWest.Orientation(0)
	westYaw, _ := MountEastWest.Orientation(1)
	if eastYaw != -90 || westYaw != 90 {
		t.Errorf("east-west yaws = %v/%v, want -90/90", eastYaw, westYaw)
	}
}
