package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var lastUID atomic.Uint64

// Entity is a node of the scene graph. Its transform is local to its parent.
type Entity struct {
	Name       string
	UID        uint64
	Parent     *Entity
	Children   []*Entity
	transform  rl.Matrix
	components []Component
}

func NewEntity(name string) *Entity {
	return &Entity{
		Name:       name,
		UID:        lastUID.Add(1),
		transform:  rl.MatrixIdentity(),
		components: make([]Component, 0),
		Children:   make([]*Entity, 0),
	}
}

func (e *Entity) AddComponent(c Component) {
	c.SetEntity(e)
	e.components = append(e.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](e *Entity) T {
	var zero T
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (e *Entity) Components() []Component {
	return e.components
}

func (e *Entity) AddChild(child *Entity) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

func (e *Entity) RemoveChild(child *Entity) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Descendants returns e followed by every entity below it, depth first.
func (e *Entity) Descendants() []*Entity {
	out := []*Entity{e}
	for _, c := range e.Children {
		out = append(out, c.Descendants()...)
	}
	return out
}

// SetTransform replaces the local transform slot.
func (e *Entity) SetTransform(m rl.Matrix) {
	e.transform = m
}

func (e *Entity) Transform() rl.Matrix {
	return e.transform
}

// WorldTransform applies the local transform first, then every parent's.
func (e *Entity) WorldTransform() rl.Matrix {
	if e.Parent == nil {
		return e.transform
	}
	return rl.MatrixMultiply(e.transform, e.Parent.WorldTransform())
}
