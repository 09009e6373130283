package export

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := scene.DefaultConfig()
	cfg.Panels = panel.Spec{Width: 1.3, Height: 2.3, Margin: 0.08, Thickness: 0.04}
	cfg.Quantity = 6
	sc, sum := scene.Build(cfg, nil)
	if sum.Main != 6 {
		t.Fatalf("test scene placed %d modules, want 6", sum.Main)
	}
	return sc
}

func TestCollectSelection(t *testing.T) {
	sc := testScene(t)

	panelsOnly := Collect(sc, Selection{})
	for _, m := range panelsOnly {
		if m.Tag == scene.TagWalls || m.Tag == scene.TagCompass {
			t.Errorf("panels-only selection contains %q", m.Tag)
		}
	}
	if len(panelsOnly) != 6 {
		t.Errorf("panels-only selection = %d meshes, want 6", len(panelsOnly))
	}

	full := Collect(sc, Everything)
	if len(full) != len(sc.Meshes) {
		t.Errorf("full selection = %d meshes, want all %d", len(full), len(sc.Meshes))
	}
}

func TestSTLRoundTrip(t *testing.T) {
	sc := testScene(t)
	data := STL(sc, Everything)

	m, err := ReadSTL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSTL: %v", err)
	}
	want := geom.TriangleCount(Collect(sc, Everything))
	if len(m.Tris) != want {
		t.Errorf("decoded %d triangles, want %d", len(m.Tris), want)
	}
	if m.Header != stlHeader {
		t.Errorf("header = %q, want %q", m.Header, stlHeader)
	}
}

func TestSTLRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	mesh := &geom.Mesh{Tris: geom.Slab(1, 1, 0, 0.1)}
	if err := WriteSTL(&buf, []*geom.Mesh{mesh}); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	data := buf.Bytes()
	if len(data) != 80+4+50*len(mesh.Tris) {
		t.Fatalf("STL length = %d, want %d", len(data), 80+4+50*len(mesh.Tris))
	}
	count := binary.LittleEndian.Uint32(data[80:])
	if int(count) != len(mesh.Tris) {
		t.Errorf("triangle count field = %d, want %d", count, len(mesh.Tris))
	}
}

func TestPlaceholderSTLIsValid(t *testing.T) {
	m, err := ReadSTL(bytes.NewReader(PlaceholderSTL()))
	if err != nil {
		t.Fatalf("placeholder does not parse: %v", err)
	}
	if len(m.Tris) != 0 {
		t.Errorf("placeholder has %d triangles, want 0", len(m.Tris))
	}
}

func TestGLBHasMagic(t *testing.T) {
	sc := testScene(t)
	data := GLB(sc, Selection{Structure: true})
	if len(data) < 12 || string(data[:4]) != "glTF" {
		t.Fatalf("GLB output does not start with the glTF magic")
	}
	// GLB header declares the total container length.
	if got := binary.LittleEndian.Uint32(data[8:]); int(got) != len(data) {
		t.Errorf("GLB declared length = %d, actual %d", got, len(data))
	}
}

func TestPlaceholderGLBIsValid(t *testing.T) {
	data := PlaceholderGLB()
	if len(data) < 12 || string(data[:4]) != "glTF" {
		t.Fatal("placeholder GLB is not a GLB container")
	}
}
