// Package geom provides the triangle-mesh primitives the scene builder is
// assembled from.
//
// A [Mesh] is a tagged triangle soup with a display color. Builders exist
// for the handful of solids the generator needs (boxes, slabs, roof prisms,
// pyramids); everything else is composed from those plus rigid transforms.
//
// The coordinate system follows the usual site convention:
//
//	Z/up
//	|  Y/north
//	| /
//	|/____ X/east
//
// All dimensions are meters. Angles on the public API are degrees; radians
// never leak out of this package.
package geom
