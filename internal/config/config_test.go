package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Categories, 4)
	assert.Equal(t, "courtyard_8k", cfg.Environment.Name)
	assert.Equal(t, float32(6000), cfg.Sun.Kelvin)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
asset_root: /srv/bundle
viewport:
  width: 300
  height: 150
categories:
  - name: Wood
    model: models/wood/material_wood.glb
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/bundle", cfg.AssetRoot)
	assert.Equal(t, int32(300), cfg.Viewport.Width)
	assert.Equal(t, []Category{{Name: "Wood", Model: "models/wood/material_wood.glb"}}, cfg.Categories)
	// untouched fields keep their defaults
	assert.Equal(t, "cart.db", cfg.DatabasePath)
	assert.Equal(t, float32(70_000), cfg.Sun.Intensity)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CART3D_ASSETS", "/tmp/a")
	t.Setenv("CART3D_DB", ":memory:")
	t.Setenv("CART3D_FPS", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a", cfg.AssetRoot)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, int32(30), cfg.Window.FPS)
}

func TestLoadBadFPSKeepsDefault(t *testing.T) {
	t.Setenv("CART3D_FPS", "fast")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int32(60), cfg.Window.FPS)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader("colour: red\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Categories = append(cfg.Categories, Category{Name: "Wood", Model: "x.glb"})
	assert.ErrorContains(t, cfg.Validate(), "listed twice")

	cfg = Default()
	cfg.Categories = nil
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Viewport.Height = 0
	assert.ErrorContains(t, cfg.Validate(), "viewport")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
