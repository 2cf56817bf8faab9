// Package gltfio turns binary glTF buffers into engine entity hierarchies.
package gltfio

import (
	"cart3d/internal/engine"
)

// Asset is a loaded model: an entity hierarchy under a single root, with the
// model-space bounding box of all its geometry.
type Asset struct {
	Name string
	// Root is the parent of every top-level node. Its transform slot is
	// free for the caller, e.g. to fit the model to a unit cube.
	Root *engine.Entity
	// Entities lists every node entity in depth-first order, root excluded.
	Entities    []*engine.Entity
	BoundingBox engine.Box

	uploaded bool
	released bool
}

func (a *Asset) ResourceName() string {
	return "asset:" + a.Name
}

// Renderables returns the entities that carry geometry.
func (a *Asset) Renderables() []*engine.Entity {
	var out []*engine.Entity
	for _, e := range a.Entities {
		if engine.GetComponent[*engine.Renderable](e) != nil {
			out = append(out, e)
		}
	}
	return out
}

// Primitives returns every primitive of the asset in entity order.
func (a *Asset) Primitives() []*engine.Primitive {
	var out []*engine.Primitive
	for _, e := range a.Renderables() {
		out = append(out, engine.GetComponent[*engine.Renderable](e).Primitives...)
	}
	return out
}

// ReleaseSourceData drops the CPU copies of the geometry once it lives on
// the GPU.
func (a *Asset) ReleaseSourceData() {
	for _, p := range a.Primitives() {
		p.Source = nil
	}
	a.released = true
}

// SourceReleased reports whether ReleaseSourceData has run.
func (a *Asset) SourceReleased() bool {
	return a.released
}
