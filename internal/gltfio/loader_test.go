package gltfio

import (
	"testing"

	"cart3d/internal/engine"
	"cart3d/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoaders(t *testing.T) (*testutil.FakeDriver, *engine.Engine, *AssetLoader, *ResourceLoader) {
	t.Helper()
	d := testutil.NewFakeDriver()
	e := engine.New(d)
	return d, e, NewAssetLoader(e), NewResourceLoader(e)
}

func TestCreateAssetHierarchy(t *testing.T) {
	_, _, al, _ := newLoaders(t)

	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	require.Len(t, a.Entities, 2)
	assert.Equal(t, "car_paint_red_body", a.Entities[0].Name)
	assert.Equal(t, "wheel", a.Entities[1].Name)
	for _, e := range a.Entities {
		assert.Same(t, a.Root, e.Parent)
	}
	assert.Len(t, a.Renderables(), 2)
	assert.Len(t, a.Primitives(), 2)
	assert.Equal(t, 1, al.Len())
}

func TestCreateAssetBoundingBox(t *testing.T) {
	_, _, al, _ := newLoaders(t)

	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	box := a.BoundingBox
	assert.InDelta(t, 0.125, box.Center.X, 1e-6)
	assert.InDelta(t, 0.375, box.Center.Y, 1e-6)
	assert.InDelta(t, 0, box.Center.Z, 1e-6)
	assert.InDelta(t, 1.125, box.HalfExtent.X, 1e-6)
	assert.InDelta(t, 0.625, box.HalfExtent.Y, 1e-6)
	assert.InDelta(t, 2, box.HalfExtent.Z, 1e-6)
}

func TestCreateAssetMaterials(t *testing.T) {
	_, _, al, _ := newLoaders(t)

	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	body := engine.GetComponent[*engine.Renderable](a.Entities[0])
	require.NotNil(t, body)
	c := body.MaterialInstanceAt(0).BaseColor()
	assert.Equal(t, float32(1), c.X)
	assert.Equal(t, float32(0), c.Y)
	assert.Equal(t, "car_paint_red_body_material", body.MaterialInstanceAt(0).Name)

	wheel := engine.GetComponent[*engine.Renderable](a.Entities[1])
	require.NotNil(t, wheel)
	assert.Equal(t, "default", wheel.MaterialInstanceAt(0).Name)
	assert.NotSame(t, body.MaterialInstanceAt(0), wheel.MaterialInstanceAt(0))
}

func TestCreateAssetInvalid(t *testing.T) {
	_, e, al, _ := newLoaders(t)

	_, err := al.CreateAsset("junk", []byte("not a model"))
	assert.ErrorIs(t, err, ErrInvalidAsset)

	_, err = al.CreateAsset("empty", testutil.BoxGLB(t))
	assert.ErrorIs(t, err, ErrInvalidAsset)

	assert.Equal(t, 0, al.Len())
	assert.ElementsMatch(t, []string{"asset-loader", "resource-loader"}, e.Live())
}

func TestLoadResourcesAndRelease(t *testing.T) {
	d, _, al, rl := newLoaders(t)

	a, err := al.CreateAsset("Wood", testutil.BoxGLB(t, testutil.Part{Name: "plank", Half: [3]float32{1, 1, 1}}))
	require.NoError(t, err)

	require.NoError(t, rl.LoadResources(a))
	assert.Len(t, d.Meshes, 1)
	require.NotNil(t, a.Primitives()[0].Source)
	assert.Len(t, a.Primitives()[0].Source.Positions, 8)
	assert.Len(t, a.Primitives()[0].Source.Indices, 36)

	a.ReleaseSourceData()
	assert.True(t, a.SourceReleased())
	assert.Nil(t, a.Primitives()[0].Source)

	// a second load after release must not try to upload nil data
	assert.NoError(t, rl.LoadResources(a))

	al.DestroyAsset(a)
	assert.Empty(t, d.Meshes)
}

func TestLoadResourcesFailureRollsBack(t *testing.T) {
	d, _, al, rl := newLoaders(t)
	d.FailUploadAfter = 2

	a, err := al.CreateAsset("Car paint", testutil.CarPaintGLB(t))
	require.NoError(t, err)

	err = rl.LoadResources(a)
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.Empty(t, d.Meshes)
}

func TestAssetLoaderDestroyOrder(t *testing.T) {
	_, e, al, rl := newLoaders(t)

	a, err := al.CreateAsset("Wood", testutil.BoxGLB(t, testutil.Part{Name: "plank", Half: [3]float32{1, 1, 1}}))
	require.NoError(t, err)

	assert.PanicsWithError(t, "engine: destroy asset loader with live dependents: asset:Wood", al.Destroy)

	al.DestroyAsset(a)
	al.Destroy()
	rl.Destroy()
	e.Destroy()
}
