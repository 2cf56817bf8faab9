package scenes

import (
	"strings"

	"cart3d/internal/engine"
	"cart3d/internal/gltfio"
	"cart3d/internal/palette"
)

// PaintPrefix marks the node whose material follows the product color.
const PaintPrefix = "car_paint_red"

// Colorize sets the base color of the first paint node of a to the color
// named by label. Models without a paint node are left alone and Colorize
// reports false. The write happens on every call.
func Colorize(a *gltfio.Asset, label string) bool {
	for _, e := range a.Entities {
		if !strings.HasPrefix(e.Name, PaintPrefix) {
			continue
		}
		r := engine.GetComponent[*engine.Renderable](e)
		if r == nil {
			return false
		}
		mi := r.MaterialInstanceAt(0)
		if mi == nil {
			return false
		}
		c := palette.Lookup(label)
		mi.SetParameter(engine.BaseColorFactor, engine.RgbaSRGB, c.R, c.G, c.B, 1)
		return true
	}
	return false
}
