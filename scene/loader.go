// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io/fs"

	"cogentcore.org/vr/mat32"
)

// MaterialFunc returns the material a mesh using src is created with.
type MaterialFunc func(sc *Scene, src *SourceMaterial) *Material

// ObjectFunc is called for every object created from the model, with
// the source material of its mesh (nil if it has none).
type ObjectFunc func(sc *Scene, ob *Object, src *SourceMaterial)

// LoadOptions are the import parameters of a model.
type LoadOptions struct {
	// uniform scale applied to the model
	Scale float32

	// intensity multipliers for imported lights
	SunIntensity, SpotIntensity, PointIntensity float32
}

func (lo *LoadOptions) Defaults() {
	lo.Scale = 0.6
	lo.SunIntensity = 1
	lo.SpotIntensity = 0.05
	lo.PointIntensity = 0.0015
}

// Loader imports a model file into a scene. It adds the model root to
// sc, calls matFn for every material and objFn for every object
// created, and returns the model root.
type Loader interface {
	LoadModelScene(sc *Scene, path string, opts LoadOptions, matFn MaterialFunc, objFn ObjectFunc) (*Object, error)
}

// NodeDesc describes one node of an in-memory model.
type NodeDesc struct {
	Name string
	Pos  mat32.Vec3
	Quat mat32.Quat

	// light, copied into the created object
	Light *Light

	// mesh name and its material; Mesh empty means no mesh
	Mesh     string
	Material *SourceMaterial

	Children []*NodeDesc
}

// MemoryLoader is a [Loader] for models described in memory, keyed
// by path.
type MemoryLoader struct {
	Models map[string]*NodeDesc
}

// NewMemoryLoader returns a loader serving the given models.
func NewMemoryLoader(models map[string]*NodeDesc) *MemoryLoader {
	return &MemoryLoader{Models: models}
}

func (ml *MemoryLoader) LoadModelScene(sc *Scene, path string, opts LoadOptions, matFn MaterialFunc, objFn ObjectFunc) (*Object, error) {
	desc, ok := ml.Models[path]
	if !ok {
		return nil, fmt.Errorf("scene: load %q: %w", path, fs.ErrNotExist)
	}
	mats := map[*SourceMaterial]*Material{}
	root := ml.build(sc, desc, opts, matFn, objFn, mats)
	if opts.Scale > 0 {
		root.Pose.Scale = mat32.V3(opts.Scale, opts.Scale, opts.Scale)
	}
	sc.AddObject(root)
	return root, nil
}

func (ml *MemoryLoader) build(sc *Scene, nd *NodeDesc, opts LoadOptions, matFn MaterialFunc, objFn ObjectFunc, mats map[*SourceMaterial]*Material) *Object {
	ob := NewObject(nd.Name)
	ob.Pose.Pos = nd.Pos
	if !nd.Quat.IsNil() {
		ob.Pose.Quat = nd.Quat
	}
	if nd.Light != nil {
		lt := *nd.Light
		switch lt.Type {
		case Sun:
			lt.Lumens *= opts.SunIntensity
		case Spot:
			lt.Lumens *= opts.SpotIntensity
		case Point:
			lt.Lumens *= opts.PointIntensity
		}
		ob.Light = &lt
	}
	var src *SourceMaterial
	if nd.Mesh != "" {
		src = nd.Material
		if src == nil {
			src = &SourceMaterial{}
			src.Defaults()
		}
		mt, ok := mats[src]
		if !ok {
			mt = matFn(sc, src)
			mats[src] = mt
		}
		ob.Mesh = &MeshRenderer{Mesh: nd.Mesh, Material: mt}
	}
	for _, kd := range nd.Children {
		ob.AddChild(ml.build(sc, kd, opts, matFn, objFn, mats))
	}
	if objFn != nil {
		objFn(sc, ob, src)
	}
	return ob
}
