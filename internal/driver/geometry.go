package driver

import (
	"errors"
	"fmt"

	"cart3d/internal/engine"

	"github.com/chewxy/math32"
)

// vertexData is a de-indexed triangle list laid out the way rl.Mesh wants it.
type vertexData struct {
	positions []float32 // xyz per vertex
	normals   []float32 // xyz per vertex
	texcoords []float32 // uv per vertex, nil when absent
}

func (v *vertexData) vertexCount() int {
	return len(v.positions) / 3
}

var errNoTriangles = errors.New("primitive has no triangles")

// expand turns p into a flat triangle list. raylib indices are 16 bit, so
// expanding sidesteps the limit for large models. Missing normals are
// replaced by face normals.
func expand(p *engine.PrimitiveData) (*vertexData, error) {
	if p == nil {
		return nil, errors.New("nil primitive data")
	}
	order := p.Indices
	if order == nil {
		order = make([]uint32, len(p.Positions))
		for i := range order {
			order[i] = uint32(i)
		}
	}
	order = order[:len(order)-len(order)%3]
	if len(order) == 0 {
		return nil, errNoTriangles
	}

	hasNormals := len(p.Normals) == len(p.Positions)
	hasUV := len(p.TexCoords) == len(p.Positions)

	v := &vertexData{
		positions: make([]float32, 0, len(order)*3),
		normals:   make([]float32, 0, len(order)*3),
	}
	if hasUV {
		v.texcoords = make([]float32, 0, len(order)*2)
	}
	for t := 0; t < len(order); t += 3 {
		tri := order[t : t+3]
		for _, i := range tri {
			if int(i) >= len(p.Positions) {
				return nil, fmt.Errorf("index %d out of range of %d vertices", i, len(p.Positions))
			}
		}
		var face [3]float32
		if !hasNormals {
			face = faceNormal(p.Positions[tri[0]], p.Positions[tri[1]], p.Positions[tri[2]])
		}
		for _, i := range tri {
			pos := p.Positions[i]
			v.positions = append(v.positions, pos[0], pos[1], pos[2])
			n := face
			if hasNormals {
				n = p.Normals[i]
			}
			v.normals = append(v.normals, n[0], n[1], n[2])
			if hasUV {
				uv := p.TexCoords[i]
				v.texcoords = append(v.texcoords, uv[0], uv[1])
			}
		}
	}
	return v, nil
}

// faceNormal returns the unit normal of a counter-clockwise triangle, or
// zero for a degenerate one.
func faceNormal(a, b, c [3]float32) [3]float32 {
	u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	w := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		u[1]*w[2] - u[2]*w[1],
		u[2]*w[0] - u[0]*w[2],
		u[0]*w[1] - u[1]*w[0],
	}
	l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return [3]float32{}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}
