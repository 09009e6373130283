package export

import (
	"bytes"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// WriteGLB writes the meshes as a GLB container: one node per tagged
// mesh so viewers see the scene structure, with flat per-vertex colors
// carrying the display palette.
func WriteGLB(w io.Writer, meshes []*geom.Mesh) error {
	doc := buildDocument(meshes)
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

func buildDocument(meshes []*geom.Mesh) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "pvscene"

	for _, m := range meshes {
		if len(m.Tris) == 0 {
			continue
		}
		positions := make([][3]float32, 0, len(m.Tris)*3)
		colors := make([][4]uint8, 0, len(m.Tris)*3)
		indices := make([]uint32, 0, len(m.Tris)*3)
		rgba := [4]uint8{m.Color.R, m.Color.G, m.Color.B, 255}
		for _, tri := range m.Tris {
			for _, v := range tri {
				indices = append(indices, uint32(len(positions)))
				positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
				colors = append(colors, rgba)
			}
		}

		posAcc := modeler.WritePosition(doc, positions)
		colAcc := modeler.WriteColor(doc, colors)
		idxAcc := modeler.WriteIndices(doc, indices)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Tag,
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(idxAcc),
				Attributes: map[string]int{
					gltf.POSITION: posAcc,
					gltf.COLOR_0:  colAcc,
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Tag,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

// PlaceholderGLB returns a minimal valid GLB document with an empty
// scene, used when export fails.
func PlaceholderGLB() []byte {
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	_ = enc.Encode(gltf.NewDocument())
	return buf.Bytes()
}

// GLB renders the selected scene meshes to GLB bytes. Like [STL] it
// never fails; a broken document degrades to the placeholder.
func GLB(sc *scene.Scene, sel Selection) (out []byte) {
	defer func() {
		if recover() != nil {
			out = PlaceholderGLB()
		}
	}()
	var buf bytes.Buffer
	if err := WriteGLB(&buf, Collect(sc, sel)); err != nil {
		return PlaceholderGLB()
	}
	return buf.Bytes()
}
