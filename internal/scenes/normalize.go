package scenes

import (
	"errors"
	"fmt"

	"cart3d/internal/engine"
	"cart3d/internal/gltfio"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrDegenerateGeometry = errors.New("degenerate geometry")

// UnitCubeTransform returns the column-major transform that centers box on
// the origin and scales its largest side to 2, so the result fits [-1,1]^3.
// Every half extent must be positive and finite.
func UnitCubeTransform(box engine.Box) (mgl32.Mat4, error) {
	h := box.HalfExtent
	for _, v := range [...]float32{h.X, h.Y, h.Z, box.Center.X, box.Center.Y, box.Center.Z} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return mgl32.Mat4{}, fmt.Errorf("%w: non-finite bounding box %+v", ErrDegenerateGeometry, box)
		}
	}
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		return mgl32.Mat4{}, fmt.Errorf("%w: half extent %v", ErrDegenerateGeometry, h)
	}

	maxExtent := 2 * max(h.X, h.Y, h.Z)
	scale := 2 / maxExtent
	c := box.Center

	// Translate first, then scale.
	return mgl32.Scale3D(scale, scale, scale).Mul4(mgl32.Translate3D(-c.X, -c.Y, -c.Z)), nil
}

// FitToUnitCube writes the unit cube transform of a onto its root entity.
func FitToUnitCube(a *gltfio.Asset) error {
	m, err := UnitCubeTransform(a.BoundingBox)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", a.Name, err)
	}
	a.Root.SetTransform(engine.MatrixFromColumnMajor(m))
	return nil
}
