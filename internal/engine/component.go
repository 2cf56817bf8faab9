package engine

type Component interface {
	SetEntity(e *Entity)
	Entity() *Entity
}

// BaseComponent provides the Entity back-reference for embedding.
type BaseComponent struct {
	entity *Entity
}

func (b *BaseComponent) SetEntity(e *Entity) {
	b.entity = e
}

func (b *BaseComponent) Entity() *Entity {
	return b.entity
}

// Primitive is one drawable piece of a renderable: a mesh uploaded to the
// driver plus the material instance it is drawn with.
type Primitive struct {
	Mesh     MeshHandle
	Material *MaterialInstance
	// Source holds CPU-side vertex data until the asset releases it.
	Source *PrimitiveData
}

// Renderable marks an entity as drawable.
type Renderable struct {
	BaseComponent
	Primitives []*Primitive
}

func NewRenderable(primitives ...*Primitive) *Renderable {
	return &Renderable{Primitives: primitives}
}

// MaterialInstanceAt returns the material of primitive i, or nil when out of range.
func (r *Renderable) MaterialInstanceAt(i int) *MaterialInstance {
	if i < 0 || i >= len(r.Primitives) {
		return nil
	}
	return r.Primitives[i].Material
}

func (r *Renderable) Len() int {
	return len(r.Primitives)
}
