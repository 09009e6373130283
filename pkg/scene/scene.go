package scene

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
)

// Group identifies which surface a module was placed on.
type Group string

// Placement groups, in allocation priority order.
const (
	GroupMain        Group = "main"
	GroupOutbuilding Group = "outbuilding"
	GroupFacade      Group = "facade"
)

// Groups lists all placement groups in priority order.
var Groups = []Group{GroupMain, GroupOutbuilding, GroupFacade}

// Mesh tags used in the assembled scene.
const (
	TagGround      = "ground"
	TagWalls       = "walls"
	TagRoof        = "roof"
	TagCompass     = "compass"
	TagOutbuilding = "outbuilding"
	TagPanel       = "panel"
)

// BuildingDims is the footprint and eave height of the main structure,
// in meters.
type BuildingDims struct {
	Length     float64 `json:"length" toml:"length"`
	Width      float64 `json:"width" toml:"width"`
	WallHeight float64 `json:"wall_height" toml:"wall_height"`
}

// Config is everything a build needs. It is a plain value: callers
// construct one per request and the build never mutates it.
type Config struct {
	Building    BuildingDims       `json:"building" toml:"building"`
	Roof        roof.Spec          `json:"roof" toml:"roof"`
	Orientation string             `json:"orientation" toml:"orientation"`
	Quantity    int                `json:"quantity" toml:"quantity"`
	Panels      panel.Spec         `json:"panels" toml:"panels"`
	Mount       panel.MountMode    `json:"mount" toml:"mount"`
	Layout      panel.LayoutConfig `json:"layout" toml:"layout"`
}

// DefaultConfig returns the defaults the surrounding application falls
// back to when a project supplies nothing: a south-facing building with
// a flat roof at the default 30 degree pitch setting.
func DefaultConfig() Config {
	return Config{
		Building:    BuildingDims{Length: 10, Width: 6, WallHeight: 3},
		Roof:        roof.Spec{Type: roof.Flat, PitchDeg: 30},
		Orientation: "south",
		Panels:      panel.DefaultSpec(),
		Mount:       panel.MountSouth,
		Layout:      panel.DefaultLayout(),
	}
}

// Panel is one placed PV module. Instances are created during placement
// and owned exclusively by the scene; the position is the module center
// after the scene rotation has been applied.
type Panel struct {
	Pos     r3.Vec  `json:"pos"`
	YawDeg  float64 `json:"yaw_deg"`
	TiltDeg float64 `json:"tilt_deg"`
	Group   Group   `json:"group"`
	Index   int     `json:"index"` // generation index on its surface
}

// Scene is the assembled 3D result: a tagged mesh list plus the placed
// modules grouped by surface. It is built fresh per invocation and
// shares no state with other scenes.
type Scene struct {
	Meshes []*geom.Mesh
	Panels map[Group][]Panel
}

// PanelCount returns the total number of placed modules.
func (s *Scene) PanelCount() int {
	n := 0
	for _, g := range s.Panels {
		n += len(g)
	}
	return n
}

// MeshesByTag returns the meshes carrying the given tag.
func (s *Scene) MeshesByTag(tag string) []*geom.Mesh {
	var out []*geom.Mesh
	for _, m := range s.Meshes {
		if m.Tag == tag {
			out = append(out, m)
		}
	}
	return out
}

// Summary reports placement counts for the caller: how many modules
// landed on each surface and how many could not be placed at all.
// EstimatedCapacity is the coverage heuristic for the main surface,
// intended for UI capacity warnings; it is an approximation, not a
// bound on the exact grid count.
type Summary struct {
	Requested         int `json:"requested"`
	Main              int `json:"main"`
	Outbuilding       int `json:"outbuilding"`
	Facade            int `json:"facade"`
	Unplaced          int `json:"unplaced"`
	MainCapacity      int `json:"main_capacity"`
	EstimatedCapacity int `json:"estimated_capacity"`
}

// Placed returns the total number of modules in the scene.
func (s Summary) Placed() int {
	return s.Main + s.Outbuilding + s.Facade
}

// Scene colors. Roof color comes from the covering lookup instead.
var (
	colorGround      = color.RGBA{R: 151, G: 168, B: 122, A: 255}
	colorWalls       = color.RGBA{R: 235, G: 231, B: 221, A: 255}
	colorOutbuilding = color.RGBA{R: 214, G: 210, B: 200, A: 255}
	colorCompass     = color.RGBA{R: 200, G: 44, B: 38, A: 255}
	colorPanel       = color.RGBA{R: 28, G: 38, B: 64, A: 255}
)
