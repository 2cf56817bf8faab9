// Package ui is the window of the shopping cart: a scrolling list of cart
// cards, each with a live 3D view of its product.
package ui

import (
	"context"
	"fmt"
	"log"

	"cart3d/internal/assets"
	"cart3d/internal/cart"
	"cart3d/internal/config"
	"cart3d/internal/driver"
	"cart3d/internal/engine"
	"cart3d/internal/frame"
	"cart3d/internal/lifecycle"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

const scrollSpeed = 40

type App struct {
	cfg    config.Config
	assets *assets.Store
	store  *cart.Store
	vm     *cart.ViewModel

	driver *driver.Driver
	coord  *lifecycle.Coordinator
	clock  *frame.Clock
	slots  *Slots
	inbox  *inbox
	layout Layout

	products []cart.Product
	selected map[uuid.UUID]bool
	scroll   float32
	dragging uuid.UUID
}

// New wires the cart to the window. Writes go through writer; the list
// follows store.
func New(cfg config.Config, a *assets.Store, store *cart.Store, writer *cart.Writer) *App {
	return &App{
		cfg:      cfg,
		assets:   a,
		store:    store,
		vm:       cart.NewViewModel(writer),
		clock:    frame.NewClock(),
		inbox:    newInbox(),
		selected: make(map[uuid.UUID]bool),
		layout: Layout{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			ViewW:  cfg.Viewport.Width,
			ViewH:  cfg.Viewport.Height,
		},
	}
}

func viewOptions(v config.Viewport) engine.ViewOptions {
	return engine.ViewOptions{
		MSAA:              v.MSAA,
		FXAA:              v.FXAA,
		Bloom:             v.Bloom,
		DynamicResolution: v.DynamicResolution,
		Clear:             colorViewport,
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	flags := uint32(rl.FlagWindowHighdpi)
	if a.cfg.Viewport.MSAA > 0 {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(a.cfg.Window.FPS)
	initStyle()

	// The driver needs the GL context of the window.
	a.driver = driver.New()
	a.coord = lifecycle.New(a.cfg, a.assets, a.driver)
	defer a.coord.Close()
	if err := a.coord.Start(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if failed := a.coord.Failed(); len(failed) > 0 {
		log.Printf("UI: no 3D view for %v", failed)
	}

	a.slots = NewSlots(a.coord.Engine(), a.clock, a.coord.Registry(),
		a.cfg.Viewport.Width, a.cfg.Viewport.Height, viewOptions(a.cfg.Viewport))
	defer a.slots.Close()

	cancel, err := a.store.Observe(ctx, a.inbox.put)
	if err != nil {
		return fmt.Errorf("ui: observe cart: %w", err)
	}
	defer cancel()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		a.update()
		a.draw()
	}
	return nil
}

func (a *App) update() {
	if products, ok := a.inbox.take(); ok {
		a.products = products
		a.prune()
	}

	a.scroll -= rl.GetMouseWheelMove() * scrollSpeed
	a.scroll = a.layout.ClampScroll(a.scroll, len(a.products))

	a.slots.Sync(a.visibleProducts())
	a.orbit()

	// Render every bound viewport into its target before the window pass.
	a.clock.Tick(int64(rl.GetTime() * 1e9))
}

func (a *App) visibleProducts() []cart.Product {
	idx := a.layout.Visible(len(a.products), a.scroll)
	out := make([]cart.Product, len(idx))
	for i, j := range idx {
		out[i] = a.products[j]
	}
	return out
}

// prune forgets selections of products no longer in the cart.
func (a *App) prune() {
	live := make(map[uuid.UUID]bool, len(a.products))
	for _, p := range a.products {
		live[p.ID] = true
	}
	for id := range a.selected {
		if !live[id] {
			delete(a.selected, id)
		}
	}
}

// orbit turns the camera of the viewport being dragged.
func (a *App) orbit() {
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.dragging = uuid.Nil
		return
	}
	mouse := rl.GetMousePosition()
	if a.dragging == uuid.Nil && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, i := range a.layout.Visible(len(a.products), a.scroll) {
			if rl.CheckCollisionPointRec(mouse, a.layout.Row(i, a.scroll).View) {
				a.dragging = a.products[i].ID
				break
			}
		}
	}
	if a.dragging == uuid.Nil {
		return
	}
	if v, ok := a.slots.Viewer(a.dragging); ok {
		d := rl.GetMouseDelta()
		v.Camera.Rotate(d.X, d.Y)
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBg)

	list := a.layout.List()
	rl.BeginScissorMode(int32(list.X), int32(list.Y), int32(list.Width), int32(list.Height))
	for _, i := range a.layout.Visible(len(a.products), a.scroll) {
		a.drawCard(a.layout.Row(i, a.scroll), a.products[i])
	}
	rl.EndScissorMode()

	rl.DrawRectangle(0, 0, a.layout.Width, headerHeight, colorPrimary)
	rl.DrawText(a.cfg.Window.Title, margin, 16, 24, colorCard)

	if gui.Button(a.layout.Footer(), "Checkout "+cart.CheckoutLabel(a.products)) {
		log.Printf("UI: checkout of %s", cart.CheckoutLabel(a.products))
	}
	rl.EndDrawing()
}

func (a *App) drawCard(row Row, p cart.Product) {
	item := cart.Items([]cart.Product{p})[0]

	rl.DrawRectangleRec(row.Card, colorCard)
	if a.selected[p.ID] {
		rl.DrawRectangleRec(row.Card, colorSelected)
	}
	rl.DrawRectangleLinesEx(row.Card, 1, colorCardEdge)

	rl.DrawRectangleRec(row.View, colorViewport)
	if v, ok := a.slots.Viewer(p.ID); ok {
		if tex, ok := a.driver.TargetTexture(v.Target()); ok {
			// render textures are stored upside down
			src := rl.Rectangle{Width: float32(tex.Width), Height: -float32(tex.Height)}
			rl.DrawTextureRec(tex, src, rl.Vector2{X: row.View.X, Y: row.View.Y}, rl.White)
		}
	}

	a.selected[p.ID] = gui.Toggle(row.Select, "", a.selected[p.ID])

	infoY := int32(row.View.Y + row.View.Height + 8)
	rl.DrawText(item.Label, int32(row.Card.X)+12, infoY, 20, colorText)
	rl.DrawText(item.Amount, int32(row.Card.X)+12, infoY+24, 16, colorTextMuted)

	if item.Swatch {
		if gui.Button(row.Color, "Color") {
			a.vm.CycleColor(p)
		}
		rl.DrawRectangleRec(row.Swatch, swatchColor(item.Color))
	}
	if gui.Button(row.Minus, "-") {
		a.vm.Decrease(p)
	}
	if gui.Button(row.Plus, "+") {
		a.vm.Increase(p)
	}
}
