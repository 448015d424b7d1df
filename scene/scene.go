// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is the minimal scene graph the stereo camera lives in:
// a tree of posed objects with optional light and mesh components,
// global lighting settings, and the material pool used when a model
// is loaded.
package scene

import (
	"log/slog"
)

// Scene is the top of the scene graph.
type Scene struct {
	// Root is the parent of all top-level objects.
	Root *Object

	// global lighting
	Env Environment

	// draw debug gizmos (light and camera frusta etc)
	DrawGizmos bool
}

// NewScene returns a new empty scene with default environment.
func NewScene() *Scene {
	sc := &Scene{Root: NewObject("scene")}
	sc.Env.Defaults()
	return sc
}

// AddObject adds ob as a top-level object.
func (sc *Scene) AddObject(ob *Object) {
	sc.Root.AddChild(ob)
}

// RemoveObject detaches ob from wherever it is in the scene.
// It returns false if ob was not attached.
func (sc *Scene) RemoveObject(ob *Object) bool {
	if ob == nil || ob.Parent == nil {
		return false
	}
	return ob.Parent.RemoveChild(ob)
}

// Contains returns true if ob is in the scene graph.
func (sc *Scene) Contains(ob *Object) bool {
	for o := ob; o != nil; o = o.Parent {
		if o == sc.Root {
			return true
		}
	}
	return false
}

// Objects returns all objects below the root in breadth-first order.
func (sc *Scene) Objects() []*Object {
	var objs []*Object
	sc.Root.WalkBreadth(func(o *Object) bool {
		if o != sc.Root {
			objs = append(objs, o)
		}
		return true
	})
	return objs
}

// Lights returns all objects with a light component.
func (sc *Scene) Lights() []*Object {
	var lts []*Object
	sc.Root.WalkBreadth(func(o *Object) bool {
		if o.Light != nil {
			lts = append(lts, o)
		}
		return true
	})
	return lts
}

// UpdateWorld recomputes all world matrices.
func (sc *Scene) UpdateWorld() {
	sc.Root.UpdateWorld(nil)
}

// ToggleGizmos flips DrawGizmos.
func (sc *Scene) ToggleGizmos() {
	sc.DrawGizmos = !sc.DrawGizmos
	slog.Info("gizmos", "draw", sc.DrawGizmos)
}
