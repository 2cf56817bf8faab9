package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// IndirectLight is the image-based ambient term shared by scenes.
type IndirectLight struct {
	Texture   TextureHandle
	Ambient   rl.Vector3 // mean linear color of the map
	Intensity float32    // lux
}

func (l *IndirectLight) ResourceName() string {
	return "indirect-light"
}

// AmbientFloat returns the ambient color scaled for a vec3 uniform.
func (l *IndirectLight) AmbientFloat(scale float32) []float32 {
	return []float32{
		l.Ambient.X * l.Intensity * scale,
		l.Ambient.Y * l.Intensity * scale,
		l.Ambient.Z * l.Intensity * scale,
	}
}

// Skybox is the backdrop drawn behind a scene.
type Skybox struct {
	Texture TextureHandle
}

func (s *Skybox) ResourceName() string {
	return "skybox"
}
