package viewer

import (
	"errors"
	"fmt"

	"cart3d/internal/frame"
	"cart3d/internal/scenes"
)

var ErrState = errors.New("invalid binding state")

type State int

const (
	Unbound State = iota
	Bound
	Rendering
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Rendering:
		return "rendering"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Binding ties one viewer to the scene of a product category and keeps it
// drawing every frame. Unbound -> Bound -> Rendering -> Unbound, repeatable.
type Binding struct {
	clock    *frame.Clock
	registry *scenes.Registry

	viewer *Viewer
	ref    SceneRef
	task   *renderTask
	state  State
}

func NewBinding(clock *frame.Clock, registry *scenes.Registry) *Binding {
	return &Binding{clock: clock, registry: registry}
}

// renderTask draws one frame and posts itself for the next. stopped is the
// stop signal; once set the task never touches the viewer again.
type renderTask struct {
	b       *Binding
	stopped bool
}

func (t *renderTask) DoFrame(frameTimeNanos int64) {
	if t.stopped {
		return
	}
	v := t.b.viewer
	if !v.Engine().Running() {
		t.stopped = true
		return
	}
	v.Render(frameTimeNanos)
	t.b.clock.PostFrameCallback(t)
}

func (b *Binding) State() State {
	return b.state
}

// Category returns the bound category, "" when unbound.
func (b *Binding) Category() string {
	return b.ref.Category
}

func (b *Binding) Viewer() *Viewer {
	return b.viewer
}

// Active reports whether a render callback is registered.
func (b *Binding) Active() bool {
	return b.task != nil && !b.task.stopped
}

// Bind attaches the scene of category to v.
func (b *Binding) Bind(v *Viewer, category string) error {
	if b.state != Unbound {
		return fmt.Errorf("bind %q: %w: %s", category, ErrState, b.state)
	}
	ps, err := b.registry.Lookup(category)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	b.viewer = v
	b.ref.Set(category)
	v.SetScene(ps.Scene)
	b.state = Bound
	return nil
}

// Start registers the render callback with the clock.
func (b *Binding) Start() error {
	if b.state != Bound {
		return fmt.Errorf("start: %w: %s", ErrState, b.state)
	}
	b.task = &renderTask{b: b}
	b.clock.PostFrameCallback(b.task)
	b.state = Rendering
	return nil
}

// Unbind stops rendering and detaches the viewer. It must run before the
// viewer is released; after it returns nothing will draw into the viewer.
func (b *Binding) Unbind() {
	if b.task != nil {
		b.task.stopped = true
		b.clock.RemoveFrameCallback(b.task)
		b.task = nil
	}
	if b.viewer != nil {
		b.viewer.SetScene(nil)
		b.viewer = nil
	}
	b.ref.Clear()
	b.state = Unbound
}

// Rebind swaps the attached scene for the one of category. The render
// callback is kept.
func (b *Binding) Rebind(category string) error {
	if b.state == Unbound {
		return fmt.Errorf("rebind %q: %w: %s", category, ErrState, b.state)
	}
	if category == b.ref.Category {
		return nil
	}
	ps, err := b.registry.Lookup(category)
	if err != nil {
		return fmt.Errorf("rebind: %w", err)
	}
	b.ref.Set(category)
	b.viewer.SetScene(ps.Scene)
	return nil
}

// Apply follows a change of the bound product: a new category rebinds, then
// the paint color is written again.
func (b *Binding) Apply(category, color string) error {
	if b.state == Unbound {
		return fmt.Errorf("apply %q: %w: %s", category, ErrState, b.state)
	}
	if !b.viewer.Engine().Running() {
		return nil
	}
	if err := b.Rebind(category); err != nil {
		return err
	}
	ps, err := b.ref.Get(b.registry)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	scenes.Colorize(ps.Asset, color)
	return nil
}
