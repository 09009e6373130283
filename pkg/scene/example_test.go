package scene_test

import (
	"fmt"

	"github.com/mkarlsen/pvscene/pkg/panel"
	"github.com/mkarlsen/pvscene/pkg/roof"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// Example builds a small south-facing gable house and prints where the
// requested modules ended up.
func Example() {
	cfg := scene.DefaultConfig()
	cfg.Building = scene.BuildingDims{Length: 10, Width: 6, WallHeight: 3}
	cfg.Roof = roof.Spec{Type: roof.Gable, PitchDeg: 35, Covering: "clay tile"}
	cfg.Panels = panel.Spec{Width: 1.3, Height: 2.3, Margin: 0.08, Thickness: 0.04}
	cfg.Quantity = 5

	_, summary := scene.Build(cfg, nil)
	fmt.Printf("main=%d unplaced=%d\n", summary.Main, summary.Unplaced)
	// Output:
	// main=5 unplaced=0
}
