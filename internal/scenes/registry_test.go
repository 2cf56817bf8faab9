package scenes

import (
	"testing"

	"cart3d/internal/engine"
	"cart3d/internal/gltfio"
	"cart3d/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productScene(t *testing.T, e *engine.Engine, al *gltfio.AssetLoader, name string) ProductScene {
	t.Helper()
	a, err := al.CreateAsset(name, testutil.BoxGLB(t, testutil.Part{Name: "body", Half: [3]float32{1, 1, 1}}))
	require.NoError(t, err)
	return ProductScene{Engine: e, Scene: e.CreateScene(name), Asset: a}
}

func TestRegistryLookup(t *testing.T) {
	e := engine.New(testutil.NewFakeDriver())
	al := gltfio.NewAssetLoader(e)
	r := NewRegistry()

	paint := productScene(t, e, al, "Car paint")
	wood := productScene(t, e, al, "Wood")
	r.Register("Car paint", paint)
	r.Register("Wood", wood)

	got, err := r.Lookup("Car paint")
	require.NoError(t, err)
	assert.Same(t, paint.Scene, got.Scene)
	assert.Same(t, paint.Asset, got.Asset)
	assert.Same(t, e, got.Engine)

	got, err = r.Lookup("Wood")
	require.NoError(t, err)
	assert.Same(t, wood.Scene, got.Scene)

	_, err = r.Lookup("Metal")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"Car paint", "Wood"}, r.Keys())
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register("Wood", ProductScene{Scene: engine.NewScene("Wood")})

	assert.PanicsWithValue(t, `scene "Wood" already registered`, func() {
		r.Register("Wood", ProductScene{Scene: engine.NewScene("Wood")})
	})
}

func TestRegistryForEachAndRemove(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"Car paint", "Wood", "Carbon fiber"} {
		r.Register(k, ProductScene{Scene: engine.NewScene(k)})
	}

	seen := map[string]string{}
	r.ForEach(func(key string, ps ProductScene) {
		seen[key] = ps.Scene.Name
	})
	assert.Equal(t, map[string]string{"Car paint": "Car paint", "Wood": "Wood", "Carbon fiber": "Carbon fiber"}, seen)

	r.Remove("Wood")
	assert.Equal(t, 2, r.Len())
	_, err := r.Lookup("Wood")
	assert.ErrorIs(t, err, ErrNotFound)

	// removing an unknown key is harmless
	r.Remove("Metal")
	assert.Equal(t, 2, r.Len())
}
