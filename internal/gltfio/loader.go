package gltfio

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"cart3d/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var ErrInvalidAsset = errors.New("invalid glTF asset")

// AssetLoader creates assets from binary glTF and owns them until
// DestroyAsset. It must be destroyed after all of its assets.
type AssetLoader struct {
	engine *engine.Engine
	assets map[*Asset]struct{}
}

func NewAssetLoader(e *engine.Engine) *AssetLoader {
	l := &AssetLoader{engine: e, assets: make(map[*Asset]struct{})}
	e.Track(l)
	return l
}

func (l *AssetLoader) ResourceName() string {
	return "asset-loader"
}

// CreateAsset decodes a GLB buffer into an entity hierarchy. Geometry stays
// on the CPU until a ResourceLoader uploads it.
func (l *AssetLoader) CreateAsset(name string, buf []byte) (*Asset, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(buf)).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAsset, name, err)
	}

	b := &builder{doc: doc, visited: make(map[int]bool)}
	root := engine.NewEntity(name)
	roots := sceneRoots(doc)
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: %s: no nodes", ErrInvalidAsset, name)
	}
	for _, idx := range roots {
		if err := b.node(idx, root, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAsset, name, err)
		}
	}
	if !b.hasBounds {
		return nil, fmt.Errorf("%w: %s: no geometry", ErrInvalidAsset, name)
	}

	a := &Asset{
		Name:     name,
		Root:     root,
		Entities: b.entities,
		BoundingBox: engine.BoxFromMinMax(
			vec3(b.min), vec3(b.max),
		),
	}
	l.engine.Track(a)
	l.assets[a] = struct{}{}
	return a, nil
}

// DestroyAsset releases the GPU meshes of a and forgets it.
func (l *AssetLoader) DestroyAsset(a *Asset) {
	if _, ok := l.assets[a]; !ok {
		return
	}
	if a.uploaded {
		for _, p := range a.Primitives() {
			l.engine.Driver().ReleasePrimitive(p.Mesh)
		}
		a.uploaded = false
	}
	delete(l.assets, a)
	l.engine.Untrack(a)
}

func (l *AssetLoader) Len() int {
	return len(l.assets)
}

// Destroy releases the loader. Live assets make this a sequencing violation.
func (l *AssetLoader) Destroy() {
	if len(l.assets) > 0 {
		var live []string
		for a := range l.assets {
			live = append(live, a.ResourceName())
		}
		slices.Sort(live)
		panic(&engine.SequencingViolation{Op: "destroy asset loader", Live: live})
	}
	l.engine.Untrack(l)
}

// ResourceLoader uploads asset geometry to the driver.
type ResourceLoader struct {
	engine *engine.Engine
}

func NewResourceLoader(e *engine.Engine) *ResourceLoader {
	r := &ResourceLoader{engine: e}
	e.Track(r)
	return r
}

func (r *ResourceLoader) ResourceName() string {
	return "resource-loader"
}

// LoadResources uploads every primitive of a. On failure nothing stays
// uploaded.
func (r *ResourceLoader) LoadResources(a *Asset) error {
	if a.uploaded {
		return nil
	}
	if a.released {
		return fmt.Errorf("load resources %s: source data already released", a.Name)
	}
	driver := r.engine.Driver()
	prims := a.Primitives()
	for i, p := range prims {
		h, err := driver.UploadPrimitive(p.Source)
		if err != nil {
			for _, done := range prims[:i] {
				driver.ReleasePrimitive(done.Mesh)
			}
			return fmt.Errorf("load resources %s: %w", a.Name, err)
		}
		p.Mesh = h
	}
	a.uploaded = true
	return nil
}

func (r *ResourceLoader) Destroy() {
	r.engine.Untrack(r)
}

type builder struct {
	doc       *gltf.Document
	visited   map[int]bool
	entities  []*engine.Entity
	min, max  mgl32.Vec3
	hasBounds bool
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	// No scene: every node that is nobody's child.
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (b *builder) node(idx int, parent *engine.Entity, parentWorld mgl32.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if b.visited[idx] {
		return fmt.Errorf("node %d reachable twice", idx)
	}
	b.visited[idx] = true

	n := b.doc.Nodes[idx]
	local := localTransform(n)
	world := parentWorld.Mul4(local)

	name := n.Name
	if name == "" && n.Mesh != nil && *n.Mesh < len(b.doc.Meshes) {
		name = b.doc.Meshes[*n.Mesh].Name
	}
	e := engine.NewEntity(name)
	e.SetTransform(engine.MatrixFromColumnMajor(local))
	parent.AddChild(e)
	b.entities = append(b.entities, e)

	if n.Mesh != nil {
		r, err := b.mesh(*n.Mesh, world)
		if err != nil {
			return err
		}
		if r.Len() > 0 {
			e.AddComponent(r)
		}
	}

	for _, c := range n.Children {
		if err := b.node(c, e, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) mesh(idx int, world mgl32.Mat4) (*engine.Renderable, error) {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	m := b.doc.Meshes[idx]
	r := engine.NewRenderable()
	for i, p := range m.Primitives {
		data, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
		}
		if data == nil {
			continue
		}
		for _, pos := range data.Positions {
			b.expand(world.Mul4x1(mgl32.Vec4{pos[0], pos[1], pos[2], 1}).Vec3())
		}
		r.Primitives = append(r.Primitives, &engine.Primitive{
			Material: b.material(p.Material),
			Source:   data,
		})
	}
	return r, nil
}

func (b *builder) primitive(p *gltf.Primitive) (*engine.PrimitiveData, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	data := &engine.PrimitiveData{}
	if data.Positions, err = modeler.ReadPosition(b.doc, acr, nil); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if len(data.Positions) == 0 {
		return nil, nil
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acr, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if data.Normals, err = modeler.ReadNormal(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if data.TexCoords, err = modeler.ReadTextureCoord(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}
	if p.Indices != nil {
		if acr, err = b.accessor(*p.Indices); err != nil {
			return nil, err
		}
		if data.Indices, err = modeler.ReadIndices(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, i := range data.Indices {
			if int(i) >= len(data.Positions) {
				return nil, fmt.Errorf("index %d out of range of %d vertices", i, len(data.Positions))
			}
		}
	}
	return data, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// material creates a fresh instance per primitive so recoloring one surface
// never leaks into another.
func (b *builder) material(idx *int) *engine.MaterialInstance {
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return engine.NewMaterialInstance("default")
	}
	m := b.doc.Materials[*idx]
	inst := engine.NewMaterialInstance(m.Name)
	if m.PBRMetallicRoughness != nil && m.PBRMetallicRoughness.BaseColorFactor != nil {
		c := m.PBRMetallicRoughness.BaseColorFactor
		inst.SetParameter(engine.BaseColorFactor, engine.RgbaLinear,
			float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]))
	}
	return inst
}

func (b *builder) expand(p mgl32.Vec3) {
	if !b.hasBounds {
		b.min, b.max = p, p
		b.hasBounds = true
		return
	}
	for i := range 3 {
		b.min[i] = min(b.min[i], p[i])
		b.max[i] = max(b.max[i], p[i])
	}
}
