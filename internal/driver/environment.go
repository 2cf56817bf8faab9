package driver

import (
	"image/color"

	"cart3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// neutralAmbient is used when an environment map cannot be decoded, e.g. a
// KTX file with a raylib built without KTX support.
var neutralAmbient = rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}

// averageLinear returns the mean color of pixels in linear space.
func averageLinear(pixels []color.RGBA) rl.Vector3 {
	if len(pixels) == 0 {
		return neutralAmbient
	}
	var sum rl.Vector3
	for _, p := range pixels {
		sum.X += engine.SRGBToLinear(float32(p.R) / 255)
		sum.Y += engine.SRGBToLinear(float32(p.G) / 255)
		sum.Z += engine.SRGBToLinear(float32(p.B) / 255)
	}
	return rl.Vector3Scale(sum, 1/float32(len(pixels)))
}

// backdrop converts a linear color to the sRGB clear color of a viewport.
func backdrop(c rl.Vector3) rl.Color {
	return rl.NewColor(
		uint8(engine.LinearToSRGB(clamp01(c.X))*255+0.5),
		uint8(engine.LinearToSRGB(clamp01(c.Y))*255+0.5),
		uint8(engine.LinearToSRGB(clamp01(c.Z))*255+0.5),
		255,
	)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
