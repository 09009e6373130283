package export

import (
	"strings"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// Selection controls which scene meshes an export includes. Panels are
// always included; the rest is optional so a caller can ship either the
// bare module array or the whole model.
type Selection struct {
	Structure bool // walls, roof, ground, outbuilding
	Compass   bool
}

// Everything selects the full scene.
var Everything = Selection{Structure: true, Compass: true}

// Collect flattens the scene into the mesh list an exporter works on,
// in stable scene order.
func Collect(sc *scene.Scene, sel Selection) []*geom.Mesh {
	var out []*geom.Mesh
	for _, m := range sc.Meshes {
		switch {
		case strings.HasPrefix(m.Tag, scene.TagPanel):
			out = append(out, m)
		case m.Tag == scene.TagCompass:
			if sel.Compass {
				out = append(out, m)
			}
		default:
			if sel.Structure {
				out = append(out, m)
			}
		}
	}
	return out
}
