// Package viewer draws product scenes into per-item render targets and keeps
// each on-screen viewport bound to the scene of its product category.
package viewer

import (
	"cart3d/internal/camera"
	"cart3d/internal/engine"
)

// Viewer is one viewport: a render target, a camera and the scene currently
// attached to it. The UI owns it and releases it once no binding uses it.
type Viewer struct {
	Camera *camera.OrbitCamera

	engine        *engine.Engine
	target        engine.TargetHandle
	width, height int32
	options       engine.ViewOptions
	scene         *engine.Scene
	frames        int
	released      bool
}

func New(e *engine.Engine, width, height int32, opts engine.ViewOptions) *Viewer {
	return &Viewer{
		Camera:  camera.New(),
		engine:  e,
		target:  e.Driver().CreateTarget(width, height),
		width:   width,
		height:  height,
		options: opts,
	}
}

func (v *Viewer) Engine() *engine.Engine {
	return v.engine
}

func (v *Viewer) Target() engine.TargetHandle {
	return v.target
}

func (v *Viewer) Size() (width, height int32) {
	return v.width, v.height
}

// SetScene attaches s. A nil scene leaves the viewport blank.
func (v *Viewer) SetScene(s *engine.Scene) {
	v.scene = s
}

func (v *Viewer) Scene() *engine.Scene {
	return v.scene
}

// Frames returns how many frames were drawn.
func (v *Viewer) Frames() int {
	return v.frames
}

// Render draws the attached scene. Nothing is drawn once the engine is
// tearing down or when no scene is attached.
func (v *Viewer) Render(frameTimeNanos int64) {
	if !v.engine.Running() || v.scene == nil {
		return
	}
	v.engine.Driver().Render(v.target, engine.View{
		Scene:          v.scene,
		Camera:         v.Camera.GetRaylibCamera(),
		Lights:         v.engine.LightManager().SceneLights(v.scene),
		Options:        v.options,
		FrameTimeNanos: frameTimeNanos,
	})
	v.frames++
}

// Release frees the render target. Any binding must be unbound first.
func (v *Viewer) Release() {
	if v.released {
		return
	}
	v.released = true
	v.scene = nil
	if !v.engine.Destroyed() {
		v.engine.Driver().ReleaseTarget(v.target)
	}
}
