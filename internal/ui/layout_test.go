package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var demoLayout = Layout{Width: 480, Height: 800, ViewW: 440, ViewH: 200}

func TestLayoutRows(t *testing.T) {
	r := demoLayout.Row(1, 0)
	assert.Equal(t, float32(380), r.Card.Y)
	assert.Equal(t, float32(288), r.Card.Height)
	assert.Equal(t, r.Card.Y, r.View.Y)
	assert.Equal(t, float32(440), r.View.Width)

	// buttons stay inside the card
	for _, b := range []struct{ y, h float32 }{{r.Plus.Y, r.Plus.Height}, {r.Minus.Y, r.Minus.Height}, {r.Color.Y, r.Color.Height}} {
		assert.GreaterOrEqual(t, b.y, r.View.Y+r.View.Height)
		assert.LessOrEqual(t, b.y+b.h, r.Card.Y+r.Card.Height)
	}
	assert.Less(t, r.Minus.X+r.Minus.Width, r.Plus.X)
}

func TestLayoutScrollClamp(t *testing.T) {
	assert.Equal(t, float32(1240), demoLayout.ContentHeight(4))
	assert.Equal(t, float32(0), demoLayout.ClampScroll(-30, 4))
	assert.Equal(t, float32(568), demoLayout.ClampScroll(10_000, 4))
	assert.Equal(t, float32(100), demoLayout.ClampScroll(100, 4))

	// a list shorter than the window does not scroll
	assert.Equal(t, float32(0), demoLayout.ClampScroll(50, 1))
	assert.Equal(t, float32(0), demoLayout.ClampScroll(50, 0))
}

func TestLayoutVisible(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, demoLayout.Visible(4, 0))
	assert.Equal(t, []int{1, 2, 3}, demoLayout.Visible(4, 568))
	assert.Empty(t, demoLayout.Visible(0, 0))
}

func TestSwatchColor(t *testing.T) {
	c := swatchColor(paletteRed)
	assert.Equal(t, uint8(162), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, uint8(255), channel(2))
	assert.Equal(t, uint8(0), channel(-1))
}
