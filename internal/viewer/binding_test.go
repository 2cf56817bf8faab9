package viewer

import (
	"testing"

	"cart3d/internal/engine"
	"cart3d/internal/frame"
	"cart3d/internal/gltfio"
	"cart3d/internal/scenes"
	"cart3d/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	driver   *testutil.FakeDriver
	engine   *engine.Engine
	clock    *frame.Clock
	registry *scenes.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		driver:   testutil.NewFakeDriver(),
		clock:    frame.NewClock(),
		registry: scenes.NewRegistry(),
	}
	f.engine = engine.New(f.driver)
	al := gltfio.NewAssetLoader(f.engine)

	models := map[string][]byte{
		"Car paint": testutil.CarPaintGLB(t),
		"Wood":      testutil.BoxGLB(t, testutil.Part{Name: "plank", Half: [3]float32{2, 0.1, 0.5}}),
	}
	for category, glb := range models {
		a, err := al.CreateAsset(category, glb)
		require.NoError(t, err)
		s := f.engine.CreateScene(category)
		s.AddEntities(a.Root.Descendants())
		f.registry.Register(category, scenes.ProductScene{Engine: f.engine, Scene: s, Asset: a})
	}
	return f
}

func (f *fixture) scene(t *testing.T, category string) *engine.Scene {
	t.Helper()
	ps, err := f.registry.Lookup(category)
	require.NoError(t, err)
	return ps.Scene
}

func TestBindStartUnbindTwice(t *testing.T) {
	f := newFixture(t)
	b := NewBinding(f.clock, f.registry)
	ns := int64(0)

	for range 2 {
		v := New(f.engine, 64, 64, engine.ViewOptions{})

		require.NoError(t, b.Bind(v, "Car paint"))
		assert.Equal(t, Bound, b.State())
		assert.Same(t, f.scene(t, "Car paint"), v.Scene())

		require.NoError(t, b.Start())
		assert.Equal(t, Rendering, b.State())
		assert.True(t, b.Active())

		for range 3 {
			ns += 16_000_000
			f.clock.Tick(ns)
		}
		assert.Equal(t, 3, v.Frames())
		assert.Equal(t, 3, f.driver.Renders[v.Target()])
		assert.Equal(t, ns, f.driver.LastView[v.Target()].FrameTimeNanos)

		b.Unbind()
		v.Release()
		assert.Equal(t, Unbound, b.State())
		assert.False(t, b.Active())
		assert.Equal(t, 0, f.clock.Pending())

		f.clock.Tick(ns + 1)
	}
	assert.Equal(t, 0, f.driver.StaleRenders)
	assert.Empty(t, f.driver.Targets)
}

func TestUnbindDuringTick(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Wood"))
	require.NoError(t, b.Start())

	// a callback earlier in the same frame hides the item
	hide := frame.Func(func(int64) {
		b.Unbind()
		v.Release()
	})
	f.clock.RemoveFrameCallback(b.task)
	f.clock.PostFrameCallback(&hide)
	f.clock.PostFrameCallback(b.task)
	f.clock.Tick(1)

	assert.Equal(t, 0, f.driver.StaleRenders)
	assert.Equal(t, 0, v.Frames())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestRebindKeepsRenderTask(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Car paint"))
	require.NoError(t, b.Start())
	task := b.task

	f.clock.Tick(1)
	require.NoError(t, b.Rebind("Wood"))
	f.clock.Tick(2)

	assert.Same(t, task, b.task)
	assert.Equal(t, 1, f.clock.Pending())
	assert.Equal(t, "Wood", b.Category())
	assert.Same(t, f.scene(t, "Wood"), f.driver.LastView[v.Target()].Scene)
	assert.Equal(t, 2, v.Frames())
}

func TestRebindUnknownCategoryKeepsScene(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Wood"))

	err := b.Rebind("Metal")
	assert.ErrorIs(t, err, scenes.ErrNotFound)
	assert.Equal(t, "Wood", b.Category())
	assert.Same(t, f.scene(t, "Wood"), v.Scene())
}

func TestBindUnknownCategory(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)

	err := b.Bind(v, "Metal")
	assert.ErrorIs(t, err, scenes.ErrNotFound)
	assert.Equal(t, Unbound, b.State())
	assert.Nil(t, v.Scene())
}

func TestBindingStateErrors(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)

	assert.ErrorIs(t, b.Start(), ErrState)
	assert.ErrorIs(t, b.Rebind("Wood"), ErrState)
	assert.ErrorIs(t, b.Apply("Wood", "N/A"), ErrState)

	require.NoError(t, b.Bind(v, "Wood"))
	assert.ErrorIs(t, b.Bind(v, "Wood"), ErrState)
	require.NoError(t, b.Start())
	assert.ErrorIs(t, b.Start(), ErrState)

	// unbinding twice is fine
	b.Unbind()
	b.Unbind()
	assert.Equal(t, Unbound, b.State())
}

func TestApplyRecolorsAndRebinds(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Car paint"))
	require.NoError(t, b.Start())

	require.NoError(t, b.Apply("Car paint", "Deep Blue"))
	ps, err := f.registry.Lookup("Car paint")
	require.NoError(t, err)
	body := engine.GetComponent[*engine.Renderable](ps.Asset.Entities[0])
	assert.InDelta(t, engine.SRGBToLinear(0.48), body.MaterialInstanceAt(0).BaseColor().Y, 1e-6)

	require.NoError(t, b.Apply("Wood", "N/A"))
	assert.Equal(t, "Wood", b.Category())
	assert.Same(t, f.scene(t, "Wood"), v.Scene())
	assert.True(t, b.Active())
}

func TestNoRenderAfterTeardownBegins(t *testing.T) {
	f := newFixture(t)
	v := New(f.engine, 64, 64, engine.ViewOptions{})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Car paint"))
	require.NoError(t, b.Start())
	f.clock.Tick(1)

	f.engine.BeginTeardown()
	f.clock.Tick(2)
	f.clock.Tick(3)

	assert.Equal(t, 1, v.Frames())
	assert.Equal(t, 0, f.clock.Pending())
	assert.False(t, b.Active())
	assert.NoError(t, b.Apply("Car paint", "Fiery Red"))
}

func TestViewCarriesSceneLights(t *testing.T) {
	f := newFixture(t)
	sun := f.engine.CreateEntity("sun")
	engine.NewLightBuilder(engine.LightSun).Intensity(70_000).Build(f.engine, sun)
	f.scene(t, "Wood").AddEntity(sun)

	v := New(f.engine, 64, 64, engine.ViewOptions{MSAA: 4})
	b := NewBinding(f.clock, f.registry)
	require.NoError(t, b.Bind(v, "Wood"))
	require.NoError(t, b.Start())
	f.clock.Tick(1)

	view := f.driver.LastView[v.Target()]
	require.Len(t, view.Lights, 1)
	assert.Equal(t, float32(70_000), view.Lights[0].Intensity)
	assert.Equal(t, int32(4), view.Options.MSAA)
}
