package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	margin       = 20
	headerHeight = 56
	footerHeight = 72
	infoHeight   = 88
	buttonSize   = 36
	cardGap      = 16
)

// Row is the screen geometry of one cart card.
type Row struct {
	Index int
	Card  rl.Rectangle
	View  rl.Rectangle
	Minus rl.Rectangle
	Plus  rl.Rectangle
	Color rl.Rectangle
	// Swatch sits next to the color button.
	Swatch rl.Rectangle
	Select rl.Rectangle
}

// Layout places cart cards in a window. ViewW and ViewH are the size of the
// 3D viewport of each card. Scroll is how far the list has moved up.
type Layout struct {
	Width, Height int32
	ViewW, ViewH  int32
}

func (l Layout) cardHeight() float32 {
	return float32(l.ViewH) + infoHeight
}

// List returns the area between header and checkout footer.
func (l Layout) List() rl.Rectangle {
	return rl.Rectangle{
		X:      0,
		Y:      headerHeight,
		Width:  float32(l.Width),
		Height: float32(l.Height) - headerHeight - footerHeight,
	}
}

// Footer returns the checkout button.
func (l Layout) Footer() rl.Rectangle {
	return rl.Rectangle{
		X:      margin,
		Y:      float32(l.Height) - footerHeight + 12,
		Width:  float32(l.Width) - 2*margin,
		Height: footerHeight - 24,
	}
}

// ContentHeight is the height of a list of n cards.
func (l Layout) ContentHeight(n int) float32 {
	if n == 0 {
		return 0
	}
	return float32(n)*(l.cardHeight()+cardGap) - cardGap + 2*margin
}

// ClampScroll keeps scroll inside the list.
func (l Layout) ClampScroll(scroll float32, n int) float32 {
	limit := l.ContentHeight(n) - l.List().Height
	return max(0, min(scroll, limit))
}

// Row returns the geometry of card i.
func (l Layout) Row(i int, scroll float32) Row {
	list := l.List()
	y := list.Y + margin + float32(i)*(l.cardHeight()+cardGap) - scroll
	card := rl.Rectangle{
		X:      margin,
		Y:      y,
		Width:  float32(l.Width) - 2*margin,
		Height: l.cardHeight(),
	}
	view := rl.Rectangle{
		X:      card.X + (card.Width-float32(l.ViewW))/2,
		Y:      y,
		Width:  float32(l.ViewW),
		Height: float32(l.ViewH),
	}
	buttons := y + float32(l.ViewH) + infoHeight - buttonSize - 8
	right := card.X + card.Width - 8
	return Row{
		Index:  i,
		Card:   card,
		View:   view,
		Plus:   rl.Rectangle{X: right - buttonSize, Y: buttons, Width: buttonSize, Height: buttonSize},
		Minus:  rl.Rectangle{X: right - 2*buttonSize - 8, Y: buttons, Width: buttonSize, Height: buttonSize},
		Color:  rl.Rectangle{X: card.X + 8, Y: buttons, Width: 96, Height: buttonSize},
		Swatch: rl.Rectangle{X: card.X + 112, Y: buttons + 6, Width: buttonSize - 12, Height: buttonSize - 12},
		Select: rl.Rectangle{X: card.X + 8, Y: y + 8, Width: 24, Height: 24},
	}
}

// Visible returns the indices of the cards of an n item list that overlap
// the list area.
func (l Layout) Visible(n int, scroll float32) []int {
	list := l.List()
	var out []int
	for i := range n {
		card := l.Row(i, scroll).Card
		if card.Y+card.Height > list.Y && card.Y < list.Y+list.Height {
			out = append(out, i)
		}
	}
	return out
}
