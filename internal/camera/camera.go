package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Models are normalized to the unit cube,
// so the defaults frame the whole of one from a little above.
type OrbitCamera struct {
	Target    rl.Vector3
	Yaw       float32
	Pitch     float32
	Distance  float32
	Fovy      float32
	LookSpeed float32
}

func New() *OrbitCamera {
	return &OrbitCamera{
		Target:    rl.Vector3{},
		Yaw:       90.0,
		Pitch:     15.0,
		Distance:  4.0,
		Fovy:      45,
		LookSpeed: 0.3,
	}
}

// Rotate turns the camera by a mouse delta in pixels.
func (c *OrbitCamera) Rotate(dx, dy float32) {
	c.Yaw += dx * c.LookSpeed
	c.Pitch += dy * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	c.Yaw = float32(math.Mod(float64(c.Yaw), 360))
}

// Position returns the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(d*math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Target.Y + float32(d*math.Sin(pitchRad)),
		Z: c.Target.Z + float32(d*math.Sin(yawRad)*math.Cos(pitchRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
