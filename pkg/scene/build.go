package scene

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
)

const (
	groundFactor    = 3.0  // ground plate size as a multiple of the footprint
	groundThickness = 0.05
	compassLength   = 2.0
	fallbackDim     = 1.0 // clamp target for non-positive dimensions
	panelLift       = 0.02
)

// orientationYaw maps the orientation tag to one of the four fixed
// scene rotations, in degrees.
var orientationYaw = map[string]float64{
	"south": 0,
	"east":  -90,
	"west":  90,
	"north": 180,
}

// OrientationYaw resolves an orientation tag. Unknown tags report
// ok=false and resolve to 0.
func OrientationYaw(tag string) (deg float64, ok bool) {
	deg, ok = orientationYaw[strings.ToLower(strings.TrimSpace(tag))]
	return deg, ok
}

// Build assembles a scene from the configuration. It never fails:
// invalid dimensions are clamped with a warning and impossible module
// counts surface as Summary.Unplaced. Two builds with identical input
// produce identical placements.
func Build(cfg Config, logger *log.Logger) (*Scene, Summary) {
	if logger == nil {
		logger = log.Default()
	}
	dims := clampDims(cfg.Building, logger)
	l, w, h := dims.Length, dims.Width, dims.WallHeight

	yawDeg, ok := OrientationYaw(cfg.Orientation)
	if !ok {
		logger.Warn("unknown orientation, using 0 degree rotation", "orientation", cfg.Orientation)
	}
	center := r3.Vec{X: l / 2, Y: w / 2}

	sc := &Scene{Panels: make(map[Group][]Panel)}
	sc.Meshes = append(sc.Meshes, buildGround(l, w), buildWalls(dims))
	sc.Meshes = append(sc.Meshes, roof.Build(cfg.Roof, l, w, h, logger))

	// Main roof placement.
	surfL, surfW, toWorld := mainSurface(cfg.Roof, dims)
	grid := panel.Grid(surfL, surfW, cfg.Panels)
	selected := panel.Select(grid, cfg.Quantity, cfg.Layout)
	for _, p := range selected {
		at, yaw, tilt := toWorld(p, cfg.Mount)
		sc.addPanel(GroupMain, p.Index, at, yaw, tilt, cfg.Panels)
	}

	summary := Summary{
		Requested:         cfg.Quantity,
		Main:              len(selected),
		MainCapacity:      panel.Capacity(surfL, surfW, cfg.Panels),
		EstimatedCapacity: panel.EstimateCapacity(surfL, surfW, cfg.Panels),
	}

	// Overflow onto the auxiliary surfaces, outbuilding first. The
	// order is policy, not a computed optimum.
	missing := cfg.Quantity - summary.Main
	if missing > 0 {
		summary.Outbuilding, summary.Facade = allocateOverflow(sc, cfg, dims, missing)
		missing -= summary.Outbuilding + summary.Facade
	}
	summary.Unplaced = missing
	if summary.Unplaced > 0 {
		logger.Warn("not all modules could be placed",
			"requested", cfg.Quantity, "unplaced", summary.Unplaced)
	}

	// One uniform rotation for everything built so far, about the
	// footprint center.
	for _, m := range sc.Meshes {
		m.RotateZ(yawDeg, center)
	}
	for g, panels := range sc.Panels {
		for i := range panels {
			panels[i].Pos = geom.RotateAbout(panels[i].Pos, yawDeg, r3.Vec{Z: 1}, center)
			panels[i].YawDeg += yawDeg
		}
		sc.Panels[g] = panels
	}

	// The compass marker joins after the rotation: it points true north
	// no matter how the scene is oriented.
	sc.Meshes = append(sc.Meshes, buildCompass(dims))

	logger.Debug("scene assembled",
		"meshes", len(sc.Meshes),
		"placed", summary.Placed(),
		"unplaced", summary.Unplaced)
	return sc, summary
}

// clampDims replaces non-positive or NaN dimensions with a small
// positive default so a malformed request still renders something.
func clampDims(d BuildingDims, logger *log.Logger) BuildingDims {
	clamp := func(name string, v float64) float64 {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
		logger.Warn("clamping invalid building dimension", "dim", name, "value", v, "fallback", fallbackDim)
		return fallbackDim
	}
	return BuildingDims{
		Length:     clamp("length", d.Length),
		Width:      clamp("width", d.Width),
		WallHeight: clamp("wall_height", d.WallHeight),
	}
}

func buildGround(l, w float64) *geom.Mesh {
	gl, gw := l*groundFactor, w*groundFactor
	m := &geom.Mesh{Tag: TagGround, Color: colorGround,
		Tris: geom.Slab(gl, gw, -groundThickness, groundThickness)}
	return m.Translate(r3.Vec{X: -(gl - l) / 2, Y: -(gw - w) / 2})
}

func buildWalls(d BuildingDims) *geom.Mesh {
	return &geom.Mesh{Tag: TagWalls, Color: colorWalls,
		Tris: geom.Box(r3.Vec{}, d.Length, d.Width, d.WallHeight)}
}

// buildCompass returns a fixed-length arrow on the ground north of the
// footprint, pointing along +Y.
func buildCompass(d BuildingDims) *geom.Mesh {
	const (
		shaftWidth = 0.12
		headWidth  = 0.5
		headLength = 0.5
		z          = 0.06
	)
	baseY := d.Width + 1
	cx := d.Length / 2
	tris := geom.Box(r3.Vec{X: cx - shaftWidth/2, Y: baseY, Z: 0},
		shaftWidth, compassLength-headLength, z)
	tipY := baseY + compassLength
	tris = append(tris, geom.Triangle{
		r3.Vec{X: cx - headWidth / 2, Y: tipY - headLength, Z: z},
		r3.Vec{X: cx + headWidth / 2, Y: tipY - headLength, Z: z},
		r3.Vec{X: cx, Y: tipY, Z: z},
	})
	return &geom.Mesh{Tag: TagCompass, Color: colorCompass, Tris: tris}
}

// mainSurface resolves the rectangle the grid placer runs against and a
// mapping from surface-local anchors to world coordinates. For flat
// roofs the mount mode decides module orientation; for pitched roofs
// modules are coplanar with the south-facing slope, so tilt equals the
// roof pitch and no mount-mode branching applies.
func mainSurface(spec roof.Spec, d BuildingDims) (surfL, surfW float64, toWorld func(p panel.Position, mount panel.MountMode) (r3.Vec, float64, float64)) {
	l, w, h := d.Length, d.Width, d.WallHeight
	typ, _ := roof.ParseType(string(spec.Type))
	pitch := geom.Radians(spec.PitchDeg)

	switch typ {
	case roof.Flat:
		return l, w, func(p panel.Position, mount panel.MountMode) (r3.Vec, float64, float64) {
			yaw, tilt := mount.Orientation(p.Index)
			return r3.Vec{X: p.X, Y: p.Y, Z: h + roof.FlatThickness + panelLift}, yaw, tilt
		}
	case roof.Pent:
		// The tilted slab keeps its full w extent along the slope.
		return l, w, func(p panel.Position, _ panel.MountMode) (r3.Vec, float64, float64) {
			return r3.Vec{
				X: p.X,
				Y: p.Y * math.Cos(pitch),
				Z: h + roof.FlatThickness + panelLift + p.Y*math.Sin(pitch),
			}, 0, spec.PitchDeg
		}
	default:
		// Gable, hip, pyramid: the south slope from the eave at y=0 up
		// toward the ridge line at w/2.
		slope := (w / 2) / math.Cos(pitch)
		return l, slope, func(p panel.Position, _ panel.MountMode) (r3.Vec, float64, float64) {
			return r3.Vec{
				X: p.X,
				Y: p.Y * math.Cos(pitch),
				Z: h + panelLift + p.Y*math.Sin(pitch),
			}, 0, spec.PitchDeg
		}
	}
}

// addPanel builds the module mesh at a world anchor and records the
// instance in its group.
func (s *Scene) addPanel(group Group, index int, at r3.Vec, yawDeg, tiltDeg float64, spec panel.Spec) {
	m := &geom.Mesh{
		Tag:   TagPanel + "/" + string(group),
		Color: colorPanel,
		Tris: geom.Box(r3.Vec{X: -spec.Width / 2, Y: -spec.Height / 2},
			spec.Width, spec.Height, spec.Thickness),
	}
	// Tilt about the module's lower edge like a real mount, then yaw,
	// then move into place.
	m.RotateX(tiltDeg, r3.Vec{Y: -spec.Height / 2})
	m.RotateZ(yawDeg, r3.Vec{})
	m.Translate(at)

	s.Meshes = append(s.Meshes, m)
	s.Panels[group] = append(s.Panels[group], Panel{
		Pos: at, YawDeg: yawDeg, TiltDeg: tiltDeg, Group: group, Index: index,
	})
}
