package roof

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
)

// Type identifies a roof shape.
type Type string

// Supported roof shapes.
const (
	Flat    Type = "flat"
	Gable   Type = "gable"
	Hip     Type = "hip"
	Pent    Type = "pent"
	Pyramid Type = "pyramid"
)

// FlatThickness is the slab thickness used for flat and pent roofs.
const FlatThickness = 0.15

// Spec describes the roof derived from caller input.
type Spec struct {
	Type     Type    `json:"type" toml:"type"`
	PitchDeg float64 `json:"pitch_deg" toml:"pitch_deg"`
	Covering string  `json:"covering,omitempty" toml:"covering,omitempty"`
}

// ParseType normalizes a roof-type tag. Unknown tags report ok=false
// and map to Flat; the caller decides whether to warn.
func ParseType(tag string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(tag)))
	if _, known := builders[t]; known {
		return t, true
	}
	return Flat, false
}

// builder constructs the roof triangles for a footprint [0,l]x[0,w]
// with eaves at height z.
type builder func(l, w, z, pitchDeg float64) []geom.Triangle

var builders = map[Type]builder{
	Flat:    buildFlat,
	Gable:   buildGable,
	Hip:     buildHip,
	Pent:    buildPent,
	Pyramid: buildPyramid,
}

// Build returns a closed roof mesh sitting on the wall footprint at
// height z. An unsupported type tag is built as a flat roof and logged,
// never rejected.
func Build(spec Spec, l, w, z float64, logger *log.Logger) *geom.Mesh {
	if logger == nil {
		logger = log.Default()
	}
	typ, ok := ParseType(string(spec.Type))
	if !ok {
		logger.Warn("unknown roof type, falling back to flat", "type", spec.Type)
	}
	return &geom.Mesh{
		Tag:   "roof",
		Color: CoveringColor(spec.Covering),
		Tris:  builders[typ](l, w, z, spec.PitchDeg),
	}
}

// rise converts a pitch and horizontal run into a ridge height.
func rise(pitchDeg, run float64) float64 {
	return math.Tan(geom.Radians(pitchDeg)) * run
}

func buildFlat(l, w, z, _ float64) []geom.Triangle {
	return geom.Slab(l, w, z, FlatThickness)
}

func buildGable(l, w, z, pitchDeg float64) []geom.Triangle {
	return geom.GablePrism(l, w, z, rise(pitchDeg, w/2))
}

// buildHip uses the lower of the two pitch-derived ridge heights, so
// the ridge always runs along the longer footprint axis.
func buildHip(l, w, z, pitchDeg float64) []geom.Triangle {
	return geom.HipPrism(l, w, z, rise(pitchDeg, math.Min(l, w)/2))
}

func buildPyramid(l, w, z, pitchDeg float64) []geom.Triangle {
	return geom.PyramidSolid(l, w, z, rise(pitchDeg, math.Min(l, w)/2))
}

// buildPent tilts a flat slab about its south eave instead of
// rebuilding the solid vertex by vertex, which keeps the slab primitive
// reusable. The raised edge ends up on the north side, so the plane
// faces south.
func buildPent(l, w, z, pitchDeg float64) []geom.Triangle {
	m := &geom.Mesh{Tris: geom.Slab(l, w, z, FlatThickness)}
	m.RotateX(pitchDeg, r3.Vec{Y: 0, Z: z})
	return m.Tris
}
