package geom

import "gonum.org/v1/gonum/spatial/r3"

// quad appends the two triangles covering the quad a-b-c-d. Corners
// must be given counter-clockwise when viewed from the outside.
func quad(tris []Triangle, a, b, c, d r3.Vec) []Triangle {
	return append(tris, Triangle{a, b, c}, Triangle{a, c, d})
}

// Box returns the twelve triangles of an axis-aligned box with one
// corner at min and extents dx, dy, dz.
func Box(min r3.Vec, dx, dy, dz float64) []Triangle {
	var (
		a = min
		b = r3.Add(min, r3.Vec{X: dx})
		c = r3.Add(min, r3.Vec{X: dx, Y: dy})
		d = r3.Add(min, r3.Vec{Y: dy})
		e = r3.Add(a, r3.Vec{Z: dz})
		f = r3.Add(b, r3.Vec{Z: dz})
		g = r3.Add(c, r3.Vec{Z: dz})
		h = r3.Add(d, r3.Vec{Z: dz})
	)
	var tris []Triangle
	tris = quad(tris, d, c, b, a) // bottom
	tris = quad(tris, e, f, g, h) // top
	tris = quad(tris, a, b, f, e) // south (y=0)
	tris = quad(tris, c, d, h, g) // north
	tris = quad(tris, b, c, g, f) // east
	tris = quad(tris, d, a, e, h) // west
	return tris
}

// Slab returns a thin horizontal box spanning [0,l]x[0,w] whose bottom
// face sits at height z.
func Slab(l, w, z, thickness float64) []Triangle {
	return Box(r3.Vec{Z: z}, l, w, thickness)
}

// GablePrism returns a closed gable-roof solid over the footprint
// [0,l]x[0,w] with eaves at z and a ridge dh above them. The ridge runs
// parallel to the length at y = w/2.
func GablePrism(l, w, z, dh float64) []Triangle {
	var (
		a  = r3.Vec{X: 0, Y: 0, Z: z}
		b  = r3.Vec{X: l, Y: 0, Z: z}
		c  = r3.Vec{X: l, Y: w, Z: z}
		d  = r3.Vec{X: 0, Y: w, Z: z}
		rA = r3.Vec{X: 0, Y: w / 2, Z: z + dh}
		rB = r3.Vec{X: l, Y: w / 2, Z: z + dh}
	)
	var tris []Triangle
	tris = quad(tris, d, c, b, a)  // underside
	tris = quad(tris, a, b, rB, rA) // south slope
	tris = quad(tris, c, d, rA, rB) // north slope
	tris = append(tris,
		Triangle{b, c, rB}, // east gable end
		Triangle{d, a, rA}, // west gable end
	)
	return tris
}

// HipPrism returns a closed hip-roof solid over [0,l]x[0,w] with eaves
// at z. The ridge is centered, runs along the longer footprint axis,
// and sits dh above the eaves; when the footprint is square the ridge
// collapses and the result matches [PyramidSolid].
func HipPrism(l, w, z, dh float64) []Triangle {
	var (
		a = r3.Vec{X: 0, Y: 0, Z: z}
		b = r3.Vec{X: l, Y: 0, Z: z}
		c = r3.Vec{X: l, Y: w, Z: z}
		d = r3.Vec{X: 0, Y: w, Z: z}
	)
	var rA, rB r3.Vec
	if l >= w {
		half := (l - w) / 2
		rA = r3.Vec{X: l/2 - half, Y: w / 2, Z: z + dh}
		rB = r3.Vec{X: l/2 + half, Y: w / 2, Z: z + dh}
	} else {
		half := (w - l) / 2
		rA = r3.Vec{X: l / 2, Y: w/2 - half, Z: z + dh}
		rB = r3.Vec{X: l / 2, Y: w/2 + half, Z: z + dh}
	}
	var tris []Triangle
	tris = quad(tris, d, c, b, a) // underside
	if l >= w {
		tris = quad(tris, a, b, rB, rA) // south slope
		tris = quad(tris, c, d, rA, rB) // north slope
		tris = append(tris,
			Triangle{b, c, rB}, // east hip
			Triangle{d, a, rA}, // west hip
		)
	} else {
		tris = quad(tris, b, c, rB, rA) // east slope
		tris = quad(tris, d, a, rA, rB) // west slope
		tris = append(tris,
			Triangle{a, b, rA}, // south hip
			Triangle{c, d, rB}, // north hip
		)
	}
	return tris
}

// PyramidSolid returns a closed tent-roof solid over [0,l]x[0,w] with
// eaves at z and a single apex dh above the footprint center.
func PyramidSolid(l, w, z, dh float64) []Triangle {
	var (
		a    = r3.Vec{X: 0, Y: 0, Z: z}
		b    = r3.Vec{X: l, Y: 0, Z: z}
		c    = r3.Vec{X: l, Y: w, Z: z}
		d    = r3.Vec{X: 0, Y: w, Z: z}
		apex = r3.Vec{X: l / 2, Y: w / 2, Z: z + dh}
	)
	tris := quad(nil, d, c, b, a) // underside
	return append(tris,
		Triangle{a, b, apex},
		Triangle{b, c, apex},
		Triangle{c, d, apex},
		Triangle{d, a, apex},
	)
}
