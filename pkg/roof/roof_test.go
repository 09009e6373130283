package roof

import (
	"bytes"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mkarlsen/pvscene/pkg/geom"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		tag    string
		want   Type
		wantOK bool
	}{
		{"flat", Flat, true},
		{"Gable", Gable, true},
		{" hip ", Hip, true},
		{"pent", Pent, true},
		{"pyramid", Pyramid, true},
		{"mansard", Flat, false},
		{"", Flat, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.tag)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseType(%q) = %v, %v, want %v, %v", tt.tag, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuildHeights(t *testing.T) {
	const (
		l = 10.0
		w = 6.0
		z = 3.0
	)
	tests := []struct {
		name  string
		typ   Type
		pitch float64
		wantZ float64
	}{
		{"FlatIsThinSlab", Flat, 30, z + FlatThickness},
		{"GableRidgeFromHalfWidth", Gable, 45, z + w/2},
		{"HipUsesLowerHeight", Hip, 45, z + w/2},
		{"PyramidUsesMinDimension", Pyramid, 45, z + w/2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Build(Spec{Type: tt.typ, PitchDeg: tt.pitch}, l, w, z, nil)
			_, max := m.Bounds()
			if math.Abs(max.Z-tt.wantZ) > 1e-9 {
				t.Errorf("max height = %v, want %v", max.Z, tt.wantZ)
			}
		})
	}
}

func TestBuildPentRaisesNorthEdge(t *testing.T) {
	m := Build(Spec{Type: Pent, PitchDeg: 30}, 10, 6, 3, nil)
	min, max := m.Bounds()
	// The slab is hinged at the south eave, so the top corner sits at
	// w*sin(p) plus the rotated slab thickness.
	wantRise := 6*math.Sin(geom.Radians(30)) + FlatThickness*math.Cos(geom.Radians(30))
	if math.Abs((max.Z-min.Z)-wantRise) > 1e-6 {
		t.Errorf("pent rise = %v, want %v", max.Z-min.Z, wantRise)
	}
	if math.Abs(min.Z-3) > 1e-9 {
		t.Errorf("low edge at %v, want 3", min.Z)
	}
}

func TestBuildUnknownTypeFallsBackToFlat(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	m := Build(Spec{Type: "dome", PitchDeg: 30}, 10, 6, 3, logger)
	_, max := m.Bounds()
	if math.Abs(max.Z-(3+FlatThickness)) > 1e-9 {
		t.Errorf("fallback roof height = %v, want flat slab", max.Z)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unknown roof type")) {
		t.Error("expected a warning for the unknown roof type")
	}
}

func TestCoveringColor(t *testing.T) {
	tests := []struct {
		tag      string
		fallback bool
	}{
		{"Clay Tile", false},
		{"SLATE", false},
		{"standing-seam metal", false},
		{"thatch", true},
		{"", true},
	}
	for _, tt := range tests {
		got := CoveringColor(tt.tag)
		if (got == coveringFallback) != tt.fallback {
			t.Errorf("CoveringColor(%q) fallback = %v, want %v", tt.tag, got == coveringFallback, tt.fallback)
		}
	}
}
