package scenes

import (
	"testing"

	"cart3d/internal/engine"
	"cart3d/internal/gltfio"
	"cart3d/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paintColor(t *testing.T, a *gltfio.Asset) [4]float32 {
	t.Helper()
	r := engine.GetComponent[*engine.Renderable](a.Entities[0])
	require.NotNil(t, r)
	c, ok := r.MaterialInstanceAt(0).Parameter(engine.BaseColorFactor)
	require.True(t, ok)
	return [4]float32{c.X, c.Y, c.Z, c.W}
}

func TestColorize(t *testing.T) {
	al := gltfio.NewAssetLoader(engine.New(testutil.NewFakeDriver()))
	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	require.True(t, Colorize(a, "Deep Blue"))
	c := paintColor(t, a)
	assert.Equal(t, float32(0), c[0])
	assert.InDelta(t, engine.SRGBToLinear(0.48), c[1], 1e-6)
	assert.InDelta(t, engine.SRGBToLinear(0.596), c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])

	// the wheel keeps its own material
	wheel := engine.GetComponent[*engine.Renderable](a.Entities[1])
	_, ok := wheel.MaterialInstanceAt(0).Parameter(engine.BaseColorFactor)
	assert.False(t, ok)
}

func TestColorizeIsIdempotent(t *testing.T) {
	al := gltfio.NewAssetLoader(engine.New(testutil.NewFakeDriver()))
	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	require.True(t, Colorize(a, "Swirly Orange"))
	first := paintColor(t, a)
	require.True(t, Colorize(a, "Swirly Orange"))
	assert.Equal(t, first, paintColor(t, a))
}

func TestColorizeUnknownLabelIsWhite(t *testing.T) {
	al := gltfio.NewAssetLoader(engine.New(testutil.NewFakeDriver()))
	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	require.True(t, Colorize(a, "N/A"))
	assert.Equal(t, [4]float32{1, 1, 1, 1}, paintColor(t, a))
}

func TestColorizeWithoutPaintNode(t *testing.T) {
	al := gltfio.NewAssetLoader(engine.New(testutil.NewFakeDriver()))
	a, err := al.CreateAsset("Wood", testutil.BoxGLB(t, testutil.Part{Name: "plank", Half: [3]float32{1, 1, 1}}))
	require.NoError(t, err)

	assert.False(t, Colorize(a, "Fiery Red"))
	r := engine.GetComponent[*engine.Renderable](a.Entities[0])
	_, ok := r.MaterialInstanceAt(0).Parameter(engine.BaseColorFactor)
	assert.False(t, ok)
}
