package driver

import (
	"image/color"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageLinear(t *testing.T) {
	assert.Equal(t, neutralAmbient, averageLinear(nil))

	got := averageLinear([]color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
	})
	assert.InDelta(t, 0.5, got.X, 1e-5)
	assert.InDelta(t, 0, got.Y, 1e-5)
	assert.InDelta(t, 0, got.Z, 1e-5)
}

func TestBackdropRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 128, G: 64, B: 200, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	} {
		avg := averageLinear([]color.RGBA{c})
		got := backdrop(avg)
		require.Equal(t, uint8(255), got.A)
		assert.InDelta(t, c.R, got.R, 1)
		assert.InDelta(t, c.G, got.G, 1)
		assert.InDelta(t, c.B, got.B, 1)
	}
}

func TestBackdropClamps(t *testing.T) {
	assert.Equal(t, rl.NewColor(255, 0, 255, 255), backdrop(rl.Vector3{X: 4, Y: -1, Z: 1}))
}
