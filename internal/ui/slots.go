package ui

import (
	"log"

	"cart3d/internal/cart"
	"cart3d/internal/engine"
	"cart3d/internal/frame"
	"cart3d/internal/scenes"
	"cart3d/internal/viewer"

	"github.com/google/uuid"
)

// slot is the 3D view of one visible cart card.
type slot struct {
	viewer  *viewer.Viewer
	binding *viewer.Binding
	// bound is false when the category has no scene; the card then shows an
	// empty viewport.
	bound bool
	// applied is the product value last pushed into the scene.
	applied cart.Product
}

// Slots keeps a viewer bound to every visible product and releases the ones
// that scrolled away or were removed.
type Slots struct {
	engine   *engine.Engine
	clock    *frame.Clock
	registry *scenes.Registry
	width    int32
	height   int32
	options  engine.ViewOptions
	slots    map[uuid.UUID]*slot
}

func NewSlots(e *engine.Engine, clock *frame.Clock, registry *scenes.Registry, width, height int32, opts engine.ViewOptions) *Slots {
	return &Slots{
		engine:   e,
		clock:    clock,
		registry: registry,
		width:    width,
		height:   height,
		options:  opts,
		slots:    make(map[uuid.UUID]*slot),
	}
}

// Sync makes the set of live slots match visible. A product whose value
// changed since the last call gets its category and color applied again.
func (s *Slots) Sync(visible []cart.Product) {
	keep := make(map[uuid.UUID]bool, len(visible))
	for _, p := range visible {
		keep[p.ID] = true
	}
	for id := range s.slots {
		if !keep[id] {
			s.Release(id)
		}
	}

	for _, p := range visible {
		sl, ok := s.slots[p.ID]
		if !ok {
			sl = s.open(p)
			s.slots[p.ID] = sl
		}
		if !sl.bound || (ok && sl.applied == p) {
			continue
		}
		sl.applied = p
		if err := sl.binding.Apply(p.Material, p.Color); err != nil {
			log.Printf("UI: %s: %v", p.Material, err)
		}
	}
}

func (s *Slots) open(p cart.Product) *slot {
	sl := &slot{
		viewer:  viewer.New(s.engine, s.width, s.height, s.options),
		binding: viewer.NewBinding(s.clock, s.registry),
	}
	if err := sl.binding.Bind(sl.viewer, p.Material); err != nil {
		log.Printf("UI: no 3D view for %s: %v", p.Material, err)
		return sl
	}
	if err := sl.binding.Start(); err != nil {
		log.Printf("UI: %s: %v", p.Material, err)
		sl.binding.Unbind()
		return sl
	}
	sl.bound = true
	return sl
}

// Viewer returns the viewer of a live slot.
func (s *Slots) Viewer(id uuid.UUID) (*viewer.Viewer, bool) {
	sl, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	return sl.viewer, true
}

// Release stops rendering into the slot of id, then frees its viewport.
func (s *Slots) Release(id uuid.UUID) {
	sl, ok := s.slots[id]
	if !ok {
		return
	}
	sl.binding.Unbind()
	sl.viewer.Release()
	delete(s.slots, id)
}

func (s *Slots) Len() int {
	return len(s.slots)
}

// Close releases every slot. It must run before the engine is torn down.
func (s *Slots) Close() {
	for id := range s.slots {
		s.Release(id)
	}
}
