package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BaseColorFactor is the shader parameter multiplied into the albedo.
const BaseColorFactor = "baseColorFactor"

// RgbaType tags the encoding of a color handed to SetParameter.
type RgbaType int

const (
	RgbaLinear RgbaType = iota
	RgbaSRGB
)

// MaterialInstance holds named shader parameters. Colors are stored linear.
type MaterialInstance struct {
	Name   string
	params map[string]rl.Vector4
}

func NewMaterialInstance(name string) *MaterialInstance {
	return &MaterialInstance{
		Name:   name,
		params: make(map[string]rl.Vector4),
	}
}

// SetParameter sets a 4-component color. sRGB input is converted to linear;
// alpha is never converted.
func (m *MaterialInstance) SetParameter(name string, t RgbaType, r, g, b, a float32) {
	if t == RgbaSRGB {
		r, g, b = SRGBToLinear(r), SRGBToLinear(g), SRGBToLinear(b)
	}
	m.params[name] = rl.Vector4{X: r, Y: g, Z: b, W: a}
}

func (m *MaterialInstance) Parameter(name string) (rl.Vector4, bool) {
	v, ok := m.params[name]
	return v, ok
}

// BaseColor returns baseColorFactor, opaque white when unset.
func (m *MaterialInstance) BaseColor() rl.Vector4 {
	if v, ok := m.params[BaseColorFactor]; ok {
		return v
	}
	return rl.Vector4{X: 1, Y: 1, Z: 1, W: 1}
}
