// Package scenes holds the per-category 3D scenes shown next to cart items,
// and the operations that prepare a loaded model for display.
package scenes

import (
	"errors"
	"fmt"
	"slices"

	"cart3d/internal/engine"
	"cart3d/internal/gltfio"
)

var ErrNotFound = errors.New("scene not registered")

// ProductScene is everything needed to show one product category. The engine
// is shared; the scene and asset belong to the entry and die with it.
type ProductScene struct {
	Engine *engine.Engine
	Scene  *engine.Scene
	Asset  *gltfio.Asset
}

// Registry maps category names to their scenes. It is owned by the lifecycle
// coordinator and used from the render goroutine only.
type Registry struct {
	scenes map[string]ProductScene
}

func NewRegistry() *Registry {
	return &Registry{scenes: make(map[string]ProductScene)}
}

// Register adds ps under key. Registering a key twice is a programming error.
func (r *Registry) Register(key string, ps ProductScene) {
	if _, exists := r.scenes[key]; exists {
		panic(fmt.Sprintf("scene %q already registered", key))
	}
	r.scenes[key] = ps
}

// Lookup returns the scene registered under key.
func (r *Registry) Lookup(key string) (ProductScene, error) {
	ps, ok := r.scenes[key]
	if !ok {
		return ProductScene{}, fmt.Errorf("lookup %q: %w", key, ErrNotFound)
	}
	return ps, nil
}

// ForEach calls fn for every entry in no particular order.
func (r *Registry) ForEach(fn func(key string, ps ProductScene)) {
	for k, ps := range r.scenes {
		fn(k, ps)
	}
}

// Remove forgets key. The caller is responsible for destroying the entry.
func (r *Registry) Remove(key string) {
	delete(r.scenes, key)
}

func (r *Registry) Len() int {
	return len(r.scenes)
}

// Keys returns the registered category names, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.scenes))
	for k := range r.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
