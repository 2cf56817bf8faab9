// Package engine is the rendering context: a small scene graph over a
// pluggable GPU driver, with explicit ownership of every resource it creates.
package engine

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

// Resource is anything whose lifetime is bounded by the engine context.
type Resource interface {
	ResourceName() string
}

// SequencingViolation is the panic value raised when a resource is destroyed
// while something that depends on it is still alive.
type SequencingViolation struct {
	Op   string
	Live []string
}

func (v *SequencingViolation) Error() string {
	return fmt.Sprintf("engine: %s with live dependents: %s", v.Op, strings.Join(v.Live, ", "))
}

// Engine is not safe for concurrent use; it belongs to the render goroutine.
type Engine struct {
	driver      Driver
	lights      *LightManager
	live        map[Resource]struct{}
	entities    map[*Entity]struct{}
	tearingDown bool
	destroyed   bool
}

func New(driver Driver) *Engine {
	return &Engine{
		driver:   driver,
		lights:   newLightManager(),
		live:     make(map[Resource]struct{}),
		entities: make(map[*Entity]struct{}),
	}
}

func (e *Engine) Driver() Driver {
	return e.driver
}

func (e *Engine) LightManager() *LightManager {
	return e.lights
}

// Track records r as alive. Tracking after Destroy is a programming error.
func (e *Engine) Track(r Resource) {
	if e.destroyed {
		panic(&SequencingViolation{Op: "track " + r.ResourceName() + " after destroy"})
	}
	e.live[r] = struct{}{}
}

func (e *Engine) Untrack(r Resource) {
	delete(e.live, r)
}

func (e *Engine) IsLive(r Resource) bool {
	_, ok := e.live[r]
	return ok
}

// Live returns the sorted names of every tracked resource and entity.
func (e *Engine) Live() []string {
	names := make([]string, 0, len(e.live)+len(e.entities))
	for r := range e.live {
		names = append(names, r.ResourceName())
	}
	for ent := range e.entities {
		names = append(names, "entity:"+ent.Name)
	}
	slices.Sort(names)
	return names
}

// BeginTeardown marks the context as shutting down. Renders stop from here on.
func (e *Engine) BeginTeardown() {
	e.tearingDown = true
}

// Running reports whether the context may still be rendered with.
func (e *Engine) Running() bool {
	return !e.tearingDown && !e.destroyed
}

// Destroyed reports whether Destroy has run.
func (e *Engine) Destroyed() bool {
	return e.destroyed
}

func (e *Engine) CreateScene(name string) *Scene {
	s := NewScene(name)
	e.Track(s)
	return s
}

func (e *Engine) DestroyScene(s *Scene) {
	e.Untrack(s)
}

// CreateEntity creates an entity owned by the engine, such as a light.
func (e *Engine) CreateEntity(name string) *Entity {
	ent := NewEntity(name)
	e.entities[ent] = struct{}{}
	return ent
}

// DestroyEntity destroys an engine-owned entity. Its light record must have
// been destroyed first.
func (e *Engine) DestroyEntity(ent *Entity) {
	if e.lights.Has(ent) {
		panic(&SequencingViolation{Op: "destroy entity " + ent.Name, Live: []string{"light:" + ent.Name}})
	}
	if deps := e.scenesReferencing(func(s *Scene) bool { return s.Contains(ent) }); len(deps) > 0 {
		panic(&SequencingViolation{Op: "destroy entity " + ent.Name, Live: deps})
	}
	delete(e.entities, ent)
}

// CreateIndirectLight decodes an environment map into the ambient term.
func (e *Engine) CreateIndirectLight(ext string, data []byte, intensity float32) (*IndirectLight, error) {
	env, err := e.driver.LoadEnvironment(ext, data)
	if err != nil {
		return nil, fmt.Errorf("create indirect light: %w", err)
	}
	l := &IndirectLight{Texture: env.Texture, Ambient: env.Average, Intensity: intensity}
	e.Track(l)
	return l, nil
}

func (e *Engine) DestroyIndirectLight(l *IndirectLight) {
	if deps := e.scenesReferencing(func(s *Scene) bool { return s.IndirectLight == l }); len(deps) > 0 {
		panic(&SequencingViolation{Op: "destroy indirect light", Live: deps})
	}
	e.driver.ReleaseEnvironment(l.Texture)
	e.Untrack(l)
}

func (e *Engine) CreateSkybox(ext string, data []byte) (*Skybox, error) {
	env, err := e.driver.LoadEnvironment(ext, data)
	if err != nil {
		return nil, fmt.Errorf("create skybox: %w", err)
	}
	s := &Skybox{Texture: env.Texture}
	e.Track(s)
	return s, nil
}

func (e *Engine) DestroySkybox(s *Skybox) {
	if deps := e.scenesReferencing(func(sc *Scene) bool { return sc.Skybox == s }); len(deps) > 0 {
		panic(&SequencingViolation{Op: "destroy skybox", Live: deps})
	}
	e.driver.ReleaseEnvironment(s.Texture)
	e.Untrack(s)
}

// Destroy releases the driver. Every resource and entity created through the
// engine must already be destroyed; anything else is a programming error.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	if live := e.Live(); len(live) > 0 {
		panic(&SequencingViolation{Op: "destroy engine", Live: live})
	}
	e.tearingDown = true
	e.destroyed = true
	e.driver.Close()
	log.Printf("Engine: destroyed")
}

func (e *Engine) scenesReferencing(match func(*Scene) bool) []string {
	var deps []string
	for r := range e.live {
		if s, ok := r.(*Scene); ok && match(s) {
			deps = append(deps, s.ResourceName())
		}
	}
	slices.Sort(deps)
	return deps
}
