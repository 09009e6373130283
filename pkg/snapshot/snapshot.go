package snapshot

import (
	"bytes"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/errors"
	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// Fixed output size, 16:10.
const (
	Width  = 1280
	Height = 800
)

// Camera is the orbit position the scene is viewed from.
type Camera struct {
	AzimuthDeg   float64 // degrees clockwise from north
	ElevationDeg float64 // degrees above the horizon
	Zoom         float64 // 1.0 frames the whole scene
}

// DefaultCamera looks at the scene from the south-west, slightly
// elevated, the way the interactive viewer starts out.
func DefaultCamera() Camera {
	return Camera{AzimuthDeg: 210, ElevationDeg: 30, Zoom: 1}
}

var background = color.RGBA{R: 222, G: 231, B: 240, A: 255}

// lightDir is the fixed scene light, roughly from the south-east, high.
var lightDir = r3.Unit(r3.Vec{X: 0.35, Y: -0.5, Z: 0.8})

// Render draws the scene and returns encoded PNG bytes. Errors are
// reported so instrumentation can count failures; callers that only
// need the degrade-to-absent contract use [PNG].
func Render(sc *scene.Scene, cam Camera) (out []byte, err error) {
	ctx, err := acquire(Width, Height)
	if err != nil {
		return nil, err
	}
	defer ctx.release()

	// The drawing backend is treated as untrusted: a panic inside it
	// becomes an unavailable snapshot, never a crash.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, errors.New(errors.ErrCodeRenderUnavailable, "renderer panic: %v", r)
		}
	}()

	if err := ctx.paint(sc, cam); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ctx.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderUnavailable, err, "encoding snapshot")
	}
	return buf.Bytes(), nil
}

// PNG returns the snapshot bytes or nil when rendering is unavailable.
func PNG(sc *scene.Scene) []byte {
	out, err := Render(sc, DefaultCamera())
	if err != nil {
		return nil
	}
	return out
}

// renderContext wraps the off-screen drawing surface. It is acquired,
// used, and released within a single call; release is safe on every
// exit path including panics.
type renderContext struct {
	dc *gg.Context
}

func acquire(w, h int) (*renderContext, error) {
	dc := gg.NewContext(w, h)
	if dc == nil {
		return nil, errors.New(errors.ErrCodeRenderUnavailable, "no drawing backend")
	}
	return &renderContext{dc: dc}, nil
}

func (c *renderContext) release() {
	c.dc = nil
}

// projected is one screen-space triangle ready for painting.
type projected struct {
	x, y  [3]float64
	depth float64
	col   color.RGBA
}

// paint projects, sorts, and draws every triangle in the scene.
func (c *renderContext) paint(sc *scene.Scene, cam Camera) error {
	if len(sc.Meshes) == 0 {
		return errors.New(errors.ErrCodeRenderUnavailable, "empty scene")
	}
	c.dc.SetColor(background)
	c.dc.Clear()

	view := newView(sc, cam)
	var tris []projected
	for _, m := range sc.Meshes {
		for _, tri := range m.Tris {
			p := projected{col: shade(m.Color, tri.Normal())}
			for i, v := range tri {
				u, w, d := view.project(v)
				p.x[i], p.y[i] = u, w
				p.depth += d / 3
			}
			tris = append(tris, p)
		}
	}

	// Painter's algorithm: far triangles first.
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

	for _, t := range tris {
		c.dc.MoveTo(t.x[0], t.y[0])
		c.dc.LineTo(t.x[1], t.y[1])
		c.dc.LineTo(t.x[2], t.y[2])
		c.dc.ClosePath()
		c.dc.SetColor(t.col)
		c.dc.Fill()
	}
	return nil
}

// shade applies flat Lambert shading to the mesh color.
func shade(base color.RGBA, normal r3.Vec) color.RGBA {
	lit := r3.Dot(normal, lightDir)
	f := 0.45 + 0.55*math.Max(0, lit)
	return color.RGBA{
		R: uint8(float64(base.R) * f),
		G: uint8(float64(base.G) * f),
		B: uint8(float64(base.B) * f),
		A: 255,
	}
}

// view is an orthographic orbit camera fitted to the scene bounds.
type view struct {
	right, up, fwd r3.Vec
	center         r3.Vec
	scale          float64
}

func newView(sc *scene.Scene, cam Camera) *view {
	az := geom.Radians(cam.AzimuthDeg)
	el := geom.Radians(cam.ElevationDeg)
	fwd := r3.Vec{ // from the camera toward the scene
		X: -math.Sin(az) * math.Cos(el),
		Y: -math.Cos(az) * math.Cos(el),
		Z: -math.Sin(el),
	}
	right := r3.Unit(r3.Cross(fwd, r3.Vec{Z: 1}))
	up := r3.Cross(right, fwd)

	lo, hi := geom.BoundsOf(sc.Meshes)
	center := r3.Scale(0.5, r3.Add(lo, hi))
	radius := r3.Norm(r3.Sub(hi, lo)) / 2
	if radius == 0 {
		radius = 1
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	scale := zoom * math.Min(Width, Height) / (2.2 * radius)
	return &view{right: right, up: up, fwd: fwd, center: center, scale: scale}
}

// project maps a world point to screen coordinates plus view depth.
func (v *view) project(p r3.Vec) (x, y, depth float64) {
	rel := r3.Sub(p, v.center)
	x = Width/2 + r3.Dot(rel, v.right)*v.scale
	y = Height/2 - r3.Dot(rel, v.up)*v.scale
	depth = r3.Dot(rel, v.fwd)
	return x, y, depth
}
