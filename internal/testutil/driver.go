// Package testutil provides fakes shared by package tests.
package testutil

import (
	"errors"
	"fmt"

	"cart3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrInjected = errors.New("injected failure")

// FakeDriver records every call made by the engine. It draws nothing.
type FakeDriver struct {
	Meshes       map[engine.MeshHandle]*engine.PrimitiveData
	Environments map[engine.TextureHandle]bool
	Targets      map[engine.TargetHandle]bool
	Renders      map[engine.TargetHandle]int
	LastView     map[engine.TargetHandle]engine.View
	// StaleRenders counts renders into targets that were never created or
	// already released.
	StaleRenders int
	Calls        []string
	Closed       bool

	// FailUploadAfter makes the n-th upload onwards fail when > 0.
	FailUploadAfter int
	// FailEnvironment makes LoadEnvironment fail.
	FailEnvironment bool

	uploads int
	next    uint32
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		Meshes:       make(map[engine.MeshHandle]*engine.PrimitiveData),
		Environments: make(map[engine.TextureHandle]bool),
		Targets:      make(map[engine.TargetHandle]bool),
		Renders:      make(map[engine.TargetHandle]int),
		LastView:     make(map[engine.TargetHandle]engine.View),
	}
}

func (d *FakeDriver) handle() uint32 {
	d.next++
	return d.next
}

func (d *FakeDriver) UploadPrimitive(p *engine.PrimitiveData) (engine.MeshHandle, error) {
	d.uploads++
	if d.FailUploadAfter > 0 && d.uploads >= d.FailUploadAfter {
		return 0, ErrInjected
	}
	if p == nil {
		return 0, errors.New("nil primitive data")
	}
	h := engine.MeshHandle(d.handle())
	d.Meshes[h] = p
	d.Calls = append(d.Calls, fmt.Sprintf("upload %d", h))
	return h, nil
}

func (d *FakeDriver) ReleasePrimitive(h engine.MeshHandle) {
	delete(d.Meshes, h)
	d.Calls = append(d.Calls, fmt.Sprintf("release-mesh %d", h))
}

func (d *FakeDriver) LoadEnvironment(ext string, data []byte) (engine.EnvironmentMap, error) {
	if d.FailEnvironment {
		return engine.EnvironmentMap{}, ErrInjected
	}
	h := engine.TextureHandle(d.handle())
	d.Environments[h] = true
	d.Calls = append(d.Calls, fmt.Sprintf("environment %d", h))
	return engine.EnvironmentMap{Texture: h, Average: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}}, nil
}

func (d *FakeDriver) ReleaseEnvironment(h engine.TextureHandle) {
	delete(d.Environments, h)
	d.Calls = append(d.Calls, fmt.Sprintf("release-environment %d", h))
}

func (d *FakeDriver) CreateTarget(width, height int32) engine.TargetHandle {
	h := engine.TargetHandle(d.handle())
	d.Targets[h] = true
	d.Calls = append(d.Calls, fmt.Sprintf("target %d", h))
	return h
}

func (d *FakeDriver) ReleaseTarget(h engine.TargetHandle) {
	delete(d.Targets, h)
	d.Calls = append(d.Calls, fmt.Sprintf("release-target %d", h))
}

func (d *FakeDriver) Render(target engine.TargetHandle, v engine.View) {
	if !d.Targets[target] {
		d.StaleRenders++
		return
	}
	d.Renders[target]++
	d.LastView[target] = v
}

func (d *FakeDriver) Close() {
	d.Closed = true
	d.Calls = append(d.Calls, "close")
}
