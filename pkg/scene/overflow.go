package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/panel"
)

// outbuildingClearance is the fixed gap between the main building and
// the auxiliary structure.
const outbuildingClearance = 2.0

// allocateOverflow places modules that did not fit the main roof.
// Priority is fixed: the outbuilding roof first, then the south facade.
// The returned counts say how many modules each surface absorbed; any
// remainder is the caller's to report.
//
// Manual removal indices apply to the main roof only; the fallback
// surfaces always pack automatically.
func allocateOverflow(sc *Scene, cfg Config, dims BuildingDims, missing int) (outbuilding, facade int) {
	if missing > 0 && cfg.Layout.UseOutbuilding {
		outbuilding = placeOutbuilding(sc, cfg, dims, missing)
		missing -= outbuilding
	}
	if missing > 0 && cfg.Layout.UseFacade {
		facade = placeFacade(sc, cfg, dims, missing)
	}
	return outbuilding, facade
}

// placeOutbuilding adds the flat-roofed auxiliary box east of the main
// building and packs up to missing modules onto its roof.
func placeOutbuilding(sc *Scene, cfg Config, dims BuildingDims, missing int) int {
	ob := cfg.Layout.Outbuilding
	if ob.Length <= 0 || ob.Width <= 0 || ob.Height <= 0 {
		ob = panel.DefaultOutbuilding()
	}
	origin := r3.Vec{
		X: dims.Length + outbuildingClearance + ob.OffsetX,
		Y: ob.OffsetY,
	}

	body := &geom.Mesh{Tag: TagOutbuilding, Color: colorOutbuilding,
		Tris: geom.Box(origin, ob.Length, ob.Width, ob.Height)}
	sc.Meshes = append(sc.Meshes, body)

	grid := panel.Grid(ob.Length, ob.Width, cfg.Panels)
	selected := panel.Select(grid, missing, panel.LayoutConfig{Mode: panel.ModeAuto})
	for _, p := range selected {
		yaw, tilt := cfg.Mount.Orientation(p.Index)
		at := r3.Vec{
			X: origin.X + p.X,
			Y: origin.Y + p.Y,
			Z: ob.Height + panelLift,
		}
		sc.addPanel(GroupOutbuilding, p.Index, at, yaw, tilt, cfg.Panels)
	}
	return len(selected)
}

// placeFacade packs modules onto the building's front wall (the
// pre-rotation y=0 face), treated as a length-by-wall-height rectangle
// with modules at 90 degree tilt. The wall faces south in building
// coordinates; the scene rotation then carries it, modules and all, to
// whatever world direction the configured orientation yields.
func placeFacade(sc *Scene, cfg Config, dims BuildingDims, missing int) int {
	grid := panel.Grid(dims.Length, dims.WallHeight, cfg.Panels)
	selected := panel.Select(grid, missing, panel.LayoutConfig{Mode: panel.ModeAuto})
	for _, p := range selected {
		// The vertical module hangs just in front of the wall plane;
		// the anchor Y compensates for the tilt about the lower edge.
		at := r3.Vec{
			X: p.X,
			Y: cfg.Panels.Height/2 - cfg.Panels.Thickness - panelLift,
			Z: p.Y - cfg.Panels.Height/2,
		}
		sc.addPanel(GroupFacade, p.Index, at, 0, 90, cfg.Panels)
	}
	return len(selected)
}
