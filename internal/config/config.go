// Package config provides the runtime configuration of the cart viewer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Category is a product category and the model shown for it.
type Category struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
}

// Environment names the image-based lighting bundle under envs/.
type Environment struct {
	Name              string  `yaml:"name"`
	IndirectIntensity float32 `yaml:"indirect_intensity"`
}

// Sun is the single directional light shared by every scene.
type Sun struct {
	Kelvin    float32    `yaml:"kelvin"`
	Intensity float32    `yaml:"intensity"`
	Direction [3]float32 `yaml:"direction"`
}

type Window struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int32  `yaml:"fps"`
}

// Viewport sizes the per-item 3D views and their post-processing switches.
type Viewport struct {
	Width             int32 `yaml:"width"`
	Height            int32 `yaml:"height"`
	MSAA              int32 `yaml:"msaa"`
	FXAA              bool  `yaml:"fxaa"`
	Bloom             bool  `yaml:"bloom"`
	DynamicResolution bool  `yaml:"dynamic_resolution"`
}

type Config struct {
	AssetRoot    string      `yaml:"asset_root"`
	DatabasePath string      `yaml:"database"`
	Window       Window      `yaml:"window"`
	Viewport     Viewport    `yaml:"viewport"`
	Environment  Environment `yaml:"environment"`
	Sun          Sun         `yaml:"sun"`
	Categories   []Category  `yaml:"categories"`
}

// Default returns the configuration of the demo.
func Default() Config {
	return Config{
		AssetRoot:    "assets",
		DatabasePath: "cart.db",
		Window:       Window{Width: 480, Height: 800, Title: "Shopping Cart", FPS: 60},
		Viewport:     Viewport{Width: 440, Height: 200, MSAA: 4, FXAA: true, Bloom: true, DynamicResolution: true},
		Environment:  Environment{Name: "courtyard_8k", IndirectIntensity: 30_000},
		Sun: Sun{
			Kelvin:    6_000,
			Intensity: 70_000,
			Direction: [3]float32{0.28, -0.6, -0.76},
		},
		Categories: []Category{
			{Name: "Car paint", Model: "models/car_paint/material_car_paint.glb"},
			{Name: "Carbon fiber", Model: "models/carbon_fiber/material_carbon_fiber.glb"},
			{Name: "Lacquered wood", Model: "models/lacquered_wood/material_lacquered_wood.glb"},
			{Name: "Wood", Model: "models/wood/material_wood.glb"},
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("config: no categories")
	}
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.Name == "" || cat.Model == "" {
			return fmt.Errorf("config: category %q needs a name and a model", cat.Name)
		}
		if seen[cat.Name] {
			return fmt.Errorf("config: category %q listed twice", cat.Name)
		}
		seen[cat.Name] = true
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("config: bad viewport size %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

func applyEnv(c *Config) {
	c.AssetRoot = getenv("CART3D_ASSETS", c.AssetRoot)
	c.DatabasePath = getenv("CART3D_DB", c.DatabasePath)
	c.Window.FPS = int32(atoienv("CART3D_FPS", int(c.Window.FPS)))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
