package geom

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a single face with counter-clockwise winding when viewed
// from outside the solid.
type Triangle [3]r3.Vec

// Normal returns the unit normal of the triangle, following the
// right-hand rule over the winding order. Degenerate triangles return
// the zero vector.
func (t Triangle) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Centroid returns the mean of the three corners.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(t[0], r3.Add(t[1], t[2])))
}

// Mesh is a tagged collection of triangles sharing one display color.
// Tags identify the scene role ("walls", "roof", "panel", ...) so that
// exporters and renderers can filter without type switches.
type Mesh struct {
	Tag   string
	Color color.RGBA
	Tris  []Triangle
}

// Clone returns a deep copy. Transform methods mutate in place, so
// callers that reuse a prototype mesh clone it first.
func (m *Mesh) Clone() *Mesh {
	tris := make([]Triangle, len(m.Tris))
	copy(tris, m.Tris)
	return &Mesh{Tag: m.Tag, Color: m.Color, Tris: tris}
}

// Bounds returns the axis-aligned bounding box of the mesh. An empty
// mesh reports a zero box at the origin.
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.Tris) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	min = m.Tris[0][0]
	max = min
	for _, t := range m.Tris {
		for _, v := range t {
			min.X = math.Min(min.X, v.X)
			min.Y = math.Min(min.Y, v.Y)
			min.Z = math.Min(min.Z, v.Z)
			max.X = math.Max(max.X, v.X)
			max.Y = math.Max(max.Y, v.Y)
			max.Z = math.Max(max.Z, v.Z)
		}
	}
	return min, max
}

// BoundsOf returns the combined bounding box of several meshes.
func BoundsOf(meshes []*Mesh) (min, max r3.Vec) {
	first := true
	for _, m := range meshes {
		if len(m.Tris) == 0 {
			continue
		}
		lo, hi := m.Bounds()
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		min.X = math.Min(min.X, lo.X)
		min.Y = math.Min(min.Y, lo.Y)
		min.Z = math.Min(min.Z, lo.Z)
		max.X = math.Max(max.X, hi.X)
		max.Y = math.Max(max.Y, hi.Y)
		max.Z = math.Max(max.Z, hi.Z)
	}
	return min, max
}

// TriangleCount sums the faces across meshes.
func TriangleCount(meshes []*Mesh) int {
	n := 0
	for _, m := range meshes {
		n += len(m.Tris)
	}
	return n
}
