package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type (
	MeshHandle    uint32
	TextureHandle uint32
	TargetHandle  uint32
)

// PrimitiveData is the CPU-side geometry of one primitive.
type PrimitiveData struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint32
}

// EnvironmentMap is a decoded environment texture.
type EnvironmentMap struct {
	Texture TextureHandle
	// Average is the mean linear color of the map.
	Average rl.Vector3
}

// ViewOptions mirror the post-processing switches of a view. Drivers apply
// what they support and ignore the rest.
type ViewOptions struct {
	MSAA              int32
	FXAA              bool
	Bloom             bool
	DynamicResolution bool
	Clear             rl.Color
}

// View is everything a driver needs to draw one frame of a scene.
type View struct {
	Scene          *Scene
	Camera         rl.Camera3D
	Lights         []*Light
	Options        ViewOptions
	FrameTimeNanos int64
}

// Driver is the GPU side of the engine. All methods must be called from the
// render goroutine.
type Driver interface {
	UploadPrimitive(p *PrimitiveData) (MeshHandle, error)
	ReleasePrimitive(h MeshHandle)
	LoadEnvironment(ext string, data []byte) (EnvironmentMap, error)
	ReleaseEnvironment(h TextureHandle)
	CreateTarget(width, height int32) TargetHandle
	ReleaseTarget(h TargetHandle)
	Render(target TargetHandle, v View)
	Close()
}
