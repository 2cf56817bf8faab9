package ui

import (
	"cart3d/internal/palette"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors, a light material look
var (
	colorBg        = rl.NewColor(250, 250, 250, 255)
	colorCard      = rl.NewColor(255, 255, 255, 255)
	colorCardEdge  = rl.NewColor(224, 224, 224, 255)
	colorSelected  = rl.NewColor(98, 0, 238, 40)
	colorPrimary   = rl.NewColor(98, 0, 238, 255)
	colorPrimaryHi = rl.NewColor(55, 0, 179, 255)
	colorButton    = rl.NewColor(238, 238, 238, 255)
	colorText      = rl.NewColor(33, 33, 33, 255)
	colorTextMuted = rl.NewColor(117, 117, 117, 255)
	colorViewport  = rl.NewColor(200, 200, 200, 255)
)

// initStyle sets up the raygui theme.
func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBg))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorButton))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorCardEdge))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorPrimary))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorPrimaryHi))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorCard))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorCardEdge))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorPrimary))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
}

// swatchColor converts a palette color for drawing.
func swatchColor(c palette.RGB) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
