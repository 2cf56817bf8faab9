package testutil

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

// Part is one named box-shaped node of a generated model.
type Part struct {
	Name   string
	Center [3]float32
	Half   [3]float32
	// BaseColor, when set, becomes the part's material baseColorFactor.
	BaseColor *[4]float64
}

var boxIndices = []uint16{
	0, 1, 2, 0, 2, 3, // -z
	4, 6, 5, 4, 7, 6, // +z
	0, 4, 5, 0, 5, 1, // -y
	3, 2, 6, 3, 6, 7, // +y
	0, 3, 7, 0, 7, 4, // -x
	1, 5, 6, 1, 6, 2, // +x
}

func boxCorners(c, h [3]float32) [][3]float32 {
	return [][3]float32{
		{c[0] - h[0], c[1] - h[1], c[2] - h[2]},
		{c[0] + h[0], c[1] - h[1], c[2] - h[2]},
		{c[0] + h[0], c[1] + h[1], c[2] - h[2]},
		{c[0] - h[0], c[1] + h[1], c[2] - h[2]},
		{c[0] - h[0], c[1] - h[1], c[2] + h[2]},
		{c[0] + h[0], c[1] - h[1], c[2] + h[2]},
		{c[0] + h[0], c[1] + h[1], c[2] + h[2]},
		{c[0] - h[0], c[1] + h[1], c[2] + h[2]},
	}
}

// BoxGLB encodes a binary glTF whose scene holds one box node per part.
func BoxGLB(t testing.TB, parts ...Part) []byte {
	t.Helper()
	doc := gltf.NewDocument()
	for _, p := range parts {
		pos := modeler.WritePosition(doc, boxCorners(p.Center, p.Half))
		idx := modeler.WriteIndices(doc, boxIndices)
		prim := &gltf.Primitive{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}
		if p.BaseColor != nil {
			doc.Materials = append(doc.Materials, &gltf.Material{
				Name:                 p.Name + "_material",
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: p.BaseColor},
			})
			prim.Material = gltf.Index(len(doc.Materials) - 1)
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       p.Name + "_mesh",
			Primitives: []*gltf.Primitive{prim},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: p.Name,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return buf.Bytes()
}

// CarPaintGLB is a two-part model with a recolorable body.
func CarPaintGLB(t testing.TB) []byte {
	return BoxGLB(t,
		Part{Name: "car_paint_red_body", Center: [3]float32{0, 0.5, 0}, Half: [3]float32{1, 0.5, 2}, BaseColor: &[4]float64{1, 0, 0, 1}},
		Part{Name: "wheel", Center: [3]float32{1, 0, 1.5}, Half: [3]float32{0.25, 0.25, 0.25}},
	)
}
