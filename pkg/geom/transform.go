package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// RotateAbout rotates v by deg degrees around the axis through the
// point about. Positive angles follow the right-hand rule around the
// axis direction.
func RotateAbout(v r3.Vec, deg float64, axis, about r3.Vec) r3.Vec {
	rot := r3.NewRotation(Radians(deg), axis)
	return r3.Add(rot.Rotate(r3.Sub(v, about)), about)
}

// Transform applies f to every vertex in place.
func (m *Mesh) Transform(f func(r3.Vec) r3.Vec) *Mesh {
	for i := range m.Tris {
		for j := range m.Tris[i] {
			m.Tris[i][j] = f(m.Tris[i][j])
		}
	}
	return m
}

// Translate shifts the whole mesh by d.
func (m *Mesh) Translate(d r3.Vec) *Mesh {
	return m.Transform(func(v r3.Vec) r3.Vec { return r3.Add(v, d) })
}

// RotateZ yaws the mesh by deg degrees around the vertical axis
// through about. This is the scene orientation rotation: every mesh in
// a scene gets the same call, except the compass marker.
func (m *Mesh) RotateZ(deg float64, about r3.Vec) *Mesh {
	if deg == 0 {
		return m
	}
	return m.Transform(func(v r3.Vec) r3.Vec {
		return RotateAbout(v, deg, r3.Vec{Z: 1}, about)
	})
}

// RotateX tilts the mesh by deg degrees around the X-parallel axis
// through about. Used for pent roofs and panel tilting, where a flat
// prototype is rotated about its low edge rather than rebuilt.
func (m *Mesh) RotateX(deg float64, about r3.Vec) *Mesh {
	if deg == 0 {
		return m
	}
	return m.Transform(func(v r3.Vec) r3.Vec {
		return RotateAbout(v, deg, r3.Vec{X: 1}, about)
	})
}
