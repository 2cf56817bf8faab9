package engine

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type LightType int

const (
	LightSun LightType = iota
	LightDirectional
)

func (t LightType) String() string {
	switch t {
	case LightSun:
		return "sun"
	case LightDirectional:
		return "directional"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// Light is the light-manager record attached to an entity.
type Light struct {
	Type      LightType
	Color     rl.Vector3 // linear
	Intensity float32    // lux
	Direction rl.Vector3 // normalized
	entity    *Entity
}

func (l *Light) Entity() *Entity {
	return l.entity
}

// ColorFloat returns the color premultiplied by a scaled intensity, ready
// for a vec3 uniform.
func (l *Light) ColorFloat(scale float32) []float32 {
	return []float32{
		l.Color.X * l.Intensity * scale,
		l.Color.Y * l.Intensity * scale,
		l.Color.Z * l.Intensity * scale,
	}
}

// LightBuilder configures a light before it is attached to an entity.
type LightBuilder struct {
	light Light
}

func NewLightBuilder(t LightType) *LightBuilder {
	return &LightBuilder{light: Light{
		Type:      t,
		Color:     rl.Vector3{X: 1, Y: 1, Z: 1},
		Intensity: 100_000,
		Direction: rl.Vector3{X: 0, Y: -1, Z: 0},
	}}
}

func (b *LightBuilder) Color(r, g, bl float32) *LightBuilder {
	b.light.Color = rl.Vector3{X: r, Y: g, Z: bl}
	return b
}

func (b *LightBuilder) Intensity(lux float32) *LightBuilder {
	b.light.Intensity = lux
	return b
}

func (b *LightBuilder) Direction(x, y, z float32) *LightBuilder {
	b.light.Direction = rl.Vector3Normalize(rl.Vector3{X: x, Y: y, Z: z})
	return b
}

// Build attaches the light to entity. An entity carries at most one light.
func (b *LightBuilder) Build(e *Engine, entity *Entity) *Light {
	l := b.light
	l.entity = entity
	e.lights.lights[entity] = &l
	return &l
}

// LightManager owns the light records of an engine, keyed by entity.
type LightManager struct {
	lights map[*Entity]*Light
}

func newLightManager() *LightManager {
	return &LightManager{lights: make(map[*Entity]*Light)}
}

func (m *LightManager) Get(e *Entity) (*Light, bool) {
	l, ok := m.lights[e]
	return l, ok
}

func (m *LightManager) Has(e *Entity) bool {
	_, ok := m.lights[e]
	return ok
}

// Destroy removes the light record of e, if any.
func (m *LightManager) Destroy(e *Entity) {
	delete(m.lights, e)
}

func (m *LightManager) Len() int {
	return len(m.lights)
}

// SceneLights returns the lights attached to entities of s, in scene order.
func (m *LightManager) SceneLights(s *Scene) []*Light {
	var out []*Light
	for _, e := range s.Entities() {
		if l, ok := m.lights[e]; ok {
			out = append(out, l)
		}
	}
	return out
}
