package viewer

import (
	"cart3d/internal/scenes"
)

// SceneRef refers to a registered scene by category name. It never holds the
// scene itself, so the registry stays the only owner.
type SceneRef struct {
	Category string // "" = none
}

// Get resolves the reference against r.
func (r SceneRef) Get(reg *scenes.Registry) (scenes.ProductScene, error) {
	return reg.Lookup(r.Category)
}

// IsValid returns true if the reference names a category.
// Note: This doesn't check if the category is registered.
func (r SceneRef) IsValid() bool {
	return r.Category != ""
}

func (r *SceneRef) Set(category string) {
	r.Category = category
}

func (r *SceneRef) Clear() {
	r.Category = ""
}
