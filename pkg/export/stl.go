package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mkarlsen/pvscene/pkg/geom"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// stlHeader is written into the 80-byte comment field of every export.
const stlHeader = "pvscene binary STL export"

// WriteSTL writes the meshes as one binary STL solid: an 80-byte
// header, a uint32 triangle count, then one 50-byte record per
// triangle (normal, three vertices, attribute word).
func WriteSTL(w io.Writer, meshes []*geom.Mesh) error {
	var header [80]byte
	copy(header[:], stlHeader)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(geom.TriangleCount(meshes))); err != nil {
		return err
	}

	var rec [50]byte
	for _, m := range meshes {
		for _, tri := range m.Tris {
			n := tri.Normal()
			putVec(rec[0:], n)
			for v := 0; v < 3; v++ {
				putVec(rec[12+12*v:], tri[v])
			}
			rec[48], rec[49] = 0, 0
			if _, err := w.Write(rec[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

func putVec(b []byte, v r3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

// PlaceholderSTL returns a minimal valid STL document with zero
// triangles. It is what a download receives when export fails.
func PlaceholderSTL() []byte {
	var buf bytes.Buffer
	_ = WriteSTL(&buf, nil)
	return buf.Bytes()
}

// STL renders the selected scene meshes to binary STL bytes. It never
// fails: any problem during assembly yields the placeholder document.
func STL(sc *scene.Scene, sel Selection) (out []byte) {
	defer func() {
		if recover() != nil {
			out = PlaceholderSTL()
		}
	}()
	var buf bytes.Buffer
	if err := WriteSTL(&buf, Collect(sc, sel)); err != nil {
		return PlaceholderSTL()
	}
	return buf.Bytes()
}

// STLMesh is a decoded STL solid with deduplicated vertices, used to
// verify exports and to load reference models in tests.
type STLMesh struct {
	Header string
	Verts  []r3.Vec
	Tris   [][3]int
}

// ReadSTL parses a binary STL stream.
func ReadSTL(r io.Reader) (*STLMesh, error) {
	var header struct {
		H    [80]byte
		NTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	m := &STLMesh{Header: strings.TrimRight(string(header.H[:]), " \x00")}

	vertMap := make(map[[3]float32]int)
	rec := make([]byte, 50)
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		var tri [3]int
		for v := 0; v < 3; v++ {
			var key [3]float32
			for c := 0; c < 3; c++ {
				const skipNormal = 12
				key[c] = math.Float32frombits(binary.LittleEndian.Uint32(rec[skipNormal+12*v+4*c:]))
			}
			idx, ok := vertMap[key]
			if !ok {
				idx = len(m.Verts)
				m.Verts = append(m.Verts, r3.Vec{X: float64(key[0]), Y: float64(key[1]), Z: float64(key[2])})
				vertMap[key] = idx
			}
			tri[v] = idx
		}
		m.Tris = append(m.Tris, tri)
	}
	return m, nil
}
