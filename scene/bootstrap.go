// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"
	"path"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vr/mat32"
)

// Fallback textures for material slots the model leaves empty.
const (
	WhiteTexture = "Assets/Textures/white.png"
	MaskTexture  = "Assets/Textures/mask.png"
	BumpTexture  = "Assets/Textures/bump.png"
)

// Model identifies the model loaded at startup.
type Model struct {
	// folder holding the model and its textures
	Folder string

	// model file name within Folder
	File string

	// texture slots per material instance
	Capacity uint32

	Options LoadOptions
}

func (md *Model) Defaults() {
	md.Folder = "Assets/Models/"
	md.File = "cornellbox.gltf"
	md.Capacity = 64
	md.Options.Defaults()
}

// Path returns the full model path.
func (md *Model) Path() string {
	return path.Join(md.Folder, md.File)
}

// Bootstrap is the result of loading the startup model.
type Bootstrap struct {
	Scene *Scene
	Pool  *MaterialPool

	// model root
	Root *Object

	// root and all of its descendants, breadth first
	Objects []*Object

	// sun lights that were tuned
	Suns []*Light
}

// Load loads the model with ld, assigning pooled materials and push
// constants to every mesh. It rotates the model root a quarter turn
// about Y, limits every sun to one shadow cascade over 30 units, and
// sets the environment for an indoor scene.
func Load(sc *Scene, ld Loader, md *Model) (*Bootstrap, error) {
	bs := &Bootstrap{Scene: sc, Pool: NewMaterialPool(md.Capacity)}
	matFn := func(sc *Scene, src *SourceMaterial) *Material {
		return bs.Pool.Template(src.AlphaMode)
	}
	objFn := func(sc *Scene, ob *Object, src *SourceMaterial) {
		bs.configureMesh(md, ob, src)
	}
	root, err := ld.LoadModelScene(sc, md.Path(), md.Options, matFn, objFn)
	if err != nil {
		return nil, fmt.Errorf("scene: bootstrap: %w", err)
	}
	bs.Root = root
	root.Pose.SetAxisRotationRad(0, 1, 0, mat32.Pi/2)

	root.WalkBreadth(func(o *Object) bool {
		bs.Objects = append(bs.Objects, o)
		if o.Light.IsSun() {
			o.Light.CascadeCount = 1
			o.Light.ShadowDistance = 30
			bs.Suns = append(bs.Suns, o.Light)
		}
		return true
	})

	sc.Env.Celestials = false
	sc.Env.Scattering = false
	sc.Env.Ambient = 0.6
	sc.UpdateWorld()
	slog.Info("loaded model", "path", md.Path(), "objects", len(bs.Objects), "suns", len(bs.Suns))
	return bs, nil
}

// configureMesh moves the mesh of ob from its bucket template to a
// pooled instance and fills its texture slot and push constants.
func (bs *Bootstrap) configureMesh(md *Model, ob *Object, src *SourceMaterial) {
	if ob.Mesh == nil || src == nil {
		return
	}
	mt, slot, ok := bs.Pool.Assign(ob.Mesh.Material)
	if !ok {
		return
	}
	ob.Mesh.Material = mt

	base := WhiteTexture
	if src.BaseColorTexture != "" {
		base = path.Join(md.Folder, src.BaseColorTexture)
	}
	mask := MaskTexture
	if src.MetalRoughTexture != "" {
		mask = path.Join(md.Folder, src.MetalRoughTexture)
	}
	normal := BumpTexture
	if src.NormalTexture != "" {
		normal = path.Join(md.Folder, src.NormalTexture)
	}
	errors.Log(mt.SetTexture(MainTextures, slot, base))
	errors.Log(mt.SetTexture(MaskTextures, slot, mask))
	errors.Log(mt.SetTexture(NormalTextures, slot, normal))

	ob.Mesh.Push = PushConstants{
		TextureIndex: slot,
		Color:        src.BaseColor,
		Roughness:    src.Roughness,
		Metallic:     src.Metallic,
		Emission:     src.Emissive,
	}
}

// Remove detaches the model from its scene.
func (bs *Bootstrap) Remove() {
	if bs.Root != nil {
		bs.Scene.RemoveObject(bs.Root)
	}
}
