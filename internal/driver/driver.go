// Package driver implements engine.Driver on top of raylib. It needs an open
// window (and so a GL context) before New is called.
package driver

import (
	_ "embed"
	"fmt"
	"log"
	"runtime"

	"cart3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	//go:embed shaders/lit.vs
	litVS string
	//go:embed shaders/lit.fs
	litFS string
)

// lightScale maps lux to shader units. A 100000 lux sun ends up at 1.0.
const lightScale = 1.0 / 100_000

// averageSize is the side of the thumbnail an environment map is reduced to
// before its mean color is taken.
const averageSize = 16

type environment struct {
	texture rl.Texture2D
	average rl.Vector3
	loaded  bool
}

// Driver draws engine scenes into raylib render textures with a single
// lit shader.
type Driver struct {
	shader   rl.Shader
	material rl.Material

	baseColorLoc  int32
	lightDirLoc   int32
	lightColorLoc int32
	ambientLoc    int32
	viewPosLoc    int32

	meshes  map[engine.MeshHandle]rl.Mesh
	envs    map[engine.TextureHandle]environment
	targets map[engine.TargetHandle]rl.RenderTexture2D
	next    uint32
	closed  bool
}

var _ engine.Driver = (*Driver)(nil)

func New() *Driver {
	d := &Driver{
		meshes:  make(map[engine.MeshHandle]rl.Mesh),
		envs:    make(map[engine.TextureHandle]environment),
		targets: make(map[engine.TargetHandle]rl.RenderTexture2D),
	}

	d.shader = rl.LoadShaderFromMemory(litVS, litFS)
	d.baseColorLoc = rl.GetShaderLocation(d.shader, "baseColor")
	d.lightDirLoc = rl.GetShaderLocation(d.shader, "lightDir")
	d.lightColorLoc = rl.GetShaderLocation(d.shader, "lightColor")
	d.ambientLoc = rl.GetShaderLocation(d.shader, "ambient")
	d.viewPosLoc = rl.GetShaderLocation(d.shader, "viewPos")

	d.material = rl.LoadMaterialDefault()
	d.material.Shader = d.shader

	log.Printf("Driver: shader %d ready", d.shader.ID)
	return d
}

func (d *Driver) handle() uint32 {
	d.next++
	return d.next
}

// UploadPrimitive expands p into a triangle list and uploads it. Go memory
// handed to raylib is pinned for the duration of the upload and detached
// from the mesh afterwards, so UnloadMesh only frees GPU buffers.
func (d *Driver) UploadPrimitive(p *engine.PrimitiveData) (engine.MeshHandle, error) {
	v, err := expand(p)
	if err != nil {
		return 0, fmt.Errorf("upload primitive: %w", err)
	}

	mesh := rl.Mesh{
		VertexCount:   int32(v.vertexCount()),
		TriangleCount: int32(v.vertexCount() / 3),
		Vertices:      &v.positions[0],
		Normals:       &v.normals[0],
	}
	var pinner runtime.Pinner
	pinner.Pin(&v.positions[0])
	pinner.Pin(&v.normals[0])
	if v.texcoords != nil {
		mesh.Texcoords = &v.texcoords[0]
		pinner.Pin(&v.texcoords[0])
	}
	rl.UploadMesh(&mesh, false)
	pinner.Unpin()

	mesh.Vertices = nil
	mesh.Normals = nil
	mesh.Texcoords = nil
	if mesh.VaoID == 0 {
		return 0, fmt.Errorf("upload primitive: no vertex array for %d vertices", v.vertexCount())
	}

	h := engine.MeshHandle(d.handle())
	d.meshes[h] = mesh
	return h, nil
}

func (d *Driver) ReleasePrimitive(h engine.MeshHandle) {
	mesh, ok := d.meshes[h]
	if !ok {
		return
	}
	rl.UnloadMesh(&mesh)
	delete(d.meshes, h)
}

// LoadEnvironment decodes an environment image and records its mean color.
// Formats raylib cannot decode (KTX in most builds) fall back to a neutral
// gray ambient without a texture.
func (d *Driver) LoadEnvironment(ext string, data []byte) (engine.EnvironmentMap, error) {
	if len(data) == 0 {
		return engine.EnvironmentMap{}, fmt.Errorf("load environment %s: empty", ext)
	}
	h := engine.TextureHandle(d.handle())

	img := rl.LoadImageFromMemory(ext, data, int32(len(data)))
	if img == nil || img.Width == 0 || img.Height == 0 {
		log.Printf("Driver: cannot decode %s environment, using neutral ambient", ext)
		d.envs[h] = environment{average: neutralAmbient}
		return engine.EnvironmentMap{Texture: h, Average: neutralAmbient}, nil
	}
	defer rl.UnloadImage(img)

	env := environment{texture: rl.LoadTextureFromImage(img), loaded: true}

	thumb := rl.ImageCopy(img)
	rl.ImageResize(thumb, averageSize, averageSize)
	pixels := rl.LoadImageColors(thumb)
	env.average = averageLinear(pixels)
	rl.UnloadImageColors(pixels)
	rl.UnloadImage(thumb)

	d.envs[h] = env
	return engine.EnvironmentMap{Texture: h, Average: env.average}, nil
}

func (d *Driver) ReleaseEnvironment(h engine.TextureHandle) {
	env, ok := d.envs[h]
	if !ok {
		return
	}
	if env.loaded {
		rl.UnloadTexture(env.texture)
	}
	delete(d.envs, h)
}

func (d *Driver) CreateTarget(width, height int32) engine.TargetHandle {
	h := engine.TargetHandle(d.handle())
	d.targets[h] = rl.LoadRenderTexture(width, height)
	return h
}

func (d *Driver) ReleaseTarget(h engine.TargetHandle) {
	t, ok := d.targets[h]
	if !ok {
		return
	}
	rl.UnloadRenderTexture(t)
	delete(d.targets, h)
}

// TargetTexture returns the color texture of a target for compositing into
// the window.
func (d *Driver) TargetTexture(h engine.TargetHandle) (rl.Texture2D, bool) {
	t, ok := d.targets[h]
	return t.Texture, ok
}

// Render draws v.Scene into target. The skybox is drawn as a flat backdrop
// of its mean color.
func (d *Driver) Render(target engine.TargetHandle, v engine.View) {
	rt, ok := d.targets[target]
	if !ok || v.Scene == nil {
		return
	}

	bg := v.Options.Clear
	if v.Scene.Skybox != nil {
		if env, ok := d.envs[v.Scene.Skybox.Texture]; ok {
			bg = backdrop(env.average)
		}
	}

	d.setLighting(v)
	pos := v.Camera.Position
	rl.SetShaderValue(d.shader, d.viewPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)

	rl.BeginTextureMode(rt)
	rl.ClearBackground(bg)
	rl.BeginMode3D(v.Camera)
	for _, e := range v.Scene.Entities() {
		r := engine.GetComponent[*engine.Renderable](e)
		if r == nil {
			continue
		}
		world := e.WorldTransform()
		for _, p := range r.Primitives {
			mesh, ok := d.meshes[p.Mesh]
			if !ok {
				continue
			}
			c := rl.Vector4{X: 1, Y: 1, Z: 1, W: 1}
			if p.Material != nil {
				c = p.Material.BaseColor()
			}
			rl.SetShaderValue(d.shader, d.baseColorLoc, []float32{c.X, c.Y, c.Z, c.W}, rl.ShaderUniformVec4)
			rl.DrawMesh(mesh, d.material, world)
		}
	}
	rl.EndMode3D()
	rl.EndTextureMode()
}

func (d *Driver) setLighting(v engine.View) {
	dir := []float32{0, -1, 0}
	color := []float32{0, 0, 0}
	for _, l := range v.Lights {
		if l.Type == engine.LightSun || l.Type == engine.LightDirectional {
			dir = []float32{l.Direction.X, l.Direction.Y, l.Direction.Z}
			color = l.ColorFloat(lightScale)
			break
		}
	}
	ambient := []float32{neutralAmbient.X, neutralAmbient.Y, neutralAmbient.Z}
	if il := v.Scene.IndirectLight; il != nil {
		ambient = il.AmbientFloat(lightScale)
	}
	rl.SetShaderValue(d.shader, d.lightDirLoc, dir, rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.lightColorLoc, color, rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.ambientLoc, ambient, rl.ShaderUniformVec3)
}

// Close frees everything the driver still holds. The default material's
// texture belongs to raylib, so only the shader is unloaded with it.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if n := len(d.meshes) + len(d.envs) + len(d.targets); n > 0 {
		log.Printf("Driver: freeing %d leaked resources", n)
	}
	for h := range d.meshes {
		d.ReleasePrimitive(h)
	}
	for h := range d.envs {
		d.ReleaseEnvironment(h)
	}
	for h := range d.targets {
		d.ReleaseTarget(h)
	}
	rl.UnloadShader(d.shader)
}
