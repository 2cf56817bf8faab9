// Package lifecycle creates the rendering context and every product scene at
// startup, and destroys them in reverse order at shutdown.
package lifecycle

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"

	"cart3d/internal/assets"
	"cart3d/internal/config"
	"cart3d/internal/engine"
	"cart3d/internal/gltfio"
	"cart3d/internal/scenes"
)

// Environment is the lighting shared by every product scene. It is created
// before the first scene and destroyed after the last one.
type Environment struct {
	IndirectLight *engine.IndirectLight
	Skybox        *engine.Skybox
	Sun           *engine.Entity
}

type Coordinator struct {
	cfg    config.Config
	store  *assets.Store
	driver engine.Driver

	engine         *engine.Engine
	assetLoader    *gltfio.AssetLoader
	resourceLoader *gltfio.ResourceLoader
	env            Environment
	registry       *scenes.Registry
	failures       map[string]error

	started bool
	closed  bool
}

func New(cfg config.Config, store *assets.Store, driver engine.Driver) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		store:    store,
		driver:   driver,
		registry: scenes.NewRegistry(),
		failures: make(map[string]error),
	}
}

// Start builds the engine, the shared environment and one scene per
// category. A category that fails to load is logged and skipped; only a
// failure of the shared environment is returned. Close must be called
// either way.
func (c *Coordinator) Start() error {
	if c.started {
		return errors.New("lifecycle: already started")
	}
	c.started = true

	c.engine = engine.New(c.driver)
	c.assetLoader = gltfio.NewAssetLoader(c.engine)
	c.resourceLoader = gltfio.NewResourceLoader(c.engine)

	if err := c.loadEnvironment(); err != nil {
		return fmt.Errorf("lifecycle: %w", err)
	}

	for _, cat := range c.cfg.Categories {
		if err := c.loadCategory(cat); err != nil {
			log.Printf("Lifecycle: skipping %q: %v", cat.Name, err)
			c.failures[cat.Name] = err
			continue
		}
		log.Printf("Lifecycle: registered %q", cat.Name)
	}
	return nil
}

func (c *Coordinator) loadEnvironment() error {
	name := c.cfg.Environment.Name
	iblPath, skyboxPath := assets.EnvironmentPaths(name)

	data, err := c.store.Load(iblPath)
	if err != nil {
		return fmt.Errorf("environment %s: %w", name, err)
	}
	c.env.IndirectLight, err = c.engine.CreateIndirectLight(assets.Ext(iblPath), data, c.cfg.Environment.IndirectIntensity)
	if err != nil {
		return fmt.Errorf("environment %s: %w", name, err)
	}

	if data, err = c.store.Load(skyboxPath); err != nil {
		return fmt.Errorf("environment %s: %w", name, err)
	}
	c.env.Skybox, err = c.engine.CreateSkybox(assets.Ext(skyboxPath), data)
	if err != nil {
		return fmt.Errorf("environment %s: %w", name, err)
	}

	sun := c.cfg.Sun
	r, g, b := engine.CCT(sun.Kelvin)
	c.env.Sun = c.engine.CreateEntity("sun")
	engine.NewLightBuilder(engine.LightSun).
		Color(r, g, b).
		Intensity(sun.Intensity).
		Direction(sun.Direction[0], sun.Direction[1], sun.Direction[2]).
		Build(c.engine, c.env.Sun)
	return nil
}

func (c *Coordinator) loadCategory(cat config.Category) error {
	buf, err := c.store.Load(cat.Model)
	if err != nil {
		return err
	}
	a, err := c.assetLoader.CreateAsset(cat.Name, buf)
	if err != nil {
		return err
	}
	if err := scenes.FitToUnitCube(a); err != nil {
		c.assetLoader.DestroyAsset(a)
		return err
	}
	if err := c.resourceLoader.LoadResources(a); err != nil {
		c.assetLoader.DestroyAsset(a)
		return err
	}
	a.ReleaseSourceData()

	s := c.engine.CreateScene(cat.Name)
	s.IndirectLight = c.env.IndirectLight
	s.Skybox = c.env.Skybox
	s.AddEntities(a.Root.Descendants())
	s.AddEntity(c.env.Sun)

	c.registry.Register(cat.Name, scenes.ProductScene{Engine: c.engine, Scene: s, Asset: a})
	return nil
}

// Close destroys everything Start created, newest first, and the engine
// last. It is safe to call more than once and after a failed Start.
func (c *Coordinator) Close() {
	if c.closed || c.engine == nil {
		c.closed = true
		return
	}
	c.closed = true
	c.engine.BeginTeardown()

	c.registry.ForEach(func(key string, ps scenes.ProductScene) {
		c.engine.DestroyScene(ps.Scene)
		c.assetLoader.DestroyAsset(ps.Asset)
		c.registry.Remove(key)
	})

	if c.env.Sun != nil {
		c.engine.LightManager().Destroy(c.env.Sun)
		c.engine.DestroyEntity(c.env.Sun)
	}
	if c.env.IndirectLight != nil {
		c.engine.DestroyIndirectLight(c.env.IndirectLight)
	}
	if c.env.Skybox != nil {
		c.engine.DestroySkybox(c.env.Skybox)
	}
	c.env = Environment{}

	c.resourceLoader.Destroy()
	c.assetLoader.Destroy()
	c.engine.Destroy()
	log.Printf("Lifecycle: closed")
}

// Engine returns the rendering context, nil before Start.
func (c *Coordinator) Engine() *engine.Engine {
	return c.engine
}

func (c *Coordinator) Registry() *scenes.Registry {
	return c.registry
}

func (c *Coordinator) Environment() Environment {
	return c.env
}

// Failures returns the load error of every category that was skipped.
func (c *Coordinator) Failures() map[string]error {
	return maps.Clone(c.failures)
}

// Loaded returns the registered categories in configuration order.
func (c *Coordinator) Loaded() []string {
	var out []string
	for _, cat := range c.cfg.Categories {
		if _, err := c.registry.Lookup(cat.Name); err == nil {
			out = append(out, cat.Name)
		}
	}
	return out
}

// Failed returns the skipped categories, sorted.
func (c *Coordinator) Failed() []string {
	return slices.Sorted(maps.Keys(c.failures))
}
