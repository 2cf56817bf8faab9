package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Center     rl.Vector3
	HalfExtent rl.Vector3
}

func BoxFromMinMax(min, max rl.Vector3) Box {
	return Box{
		Center:     rl.Vector3Scale(rl.Vector3Add(min, max), 0.5),
		HalfExtent: rl.Vector3Scale(rl.Vector3Subtract(max, min), 0.5),
	}
}

func (b Box) Min() rl.Vector3 {
	return rl.Vector3Subtract(b.Center, b.HalfExtent)
}

func (b Box) Max() rl.Vector3 {
	return rl.Vector3Add(b.Center, b.HalfExtent)
}

// MatrixFromColumnMajor converts a column-major array (glTF and mathgl
// order) into the engine's matrix. rl.Matrix stores its elements row by row,
// so the array is transposed on the way in.
func MatrixFromColumnMajor(m [16]float32) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

// ColumnMajor is the inverse of MatrixFromColumnMajor.
func ColumnMajor(m rl.Matrix) [16]float32 {
	return [16]float32{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}
