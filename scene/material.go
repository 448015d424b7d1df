// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"

	"cogentcore.org/vr/mat32"
)

// Buckets group materials by how they are blended.
type Buckets int32

const (
	Opaque Buckets = iota

	// Cutout is alpha tested, two sided.
	Cutout

	// Blend is alpha blended, two sided.
	Blend

	BucketsN
)

func (bk Buckets) String() string {
	switch bk {
	case Opaque:
		return "Opaque"
	case Cutout:
		return "Cutout"
	case Blend:
		return "Blend"
	}
	return "Buckets(?)"
}

// BucketForAlphaMode returns the bucket for a glTF alphaMode value.
func BucketForAlphaMode(mode string) Buckets {
	switch mode {
	case "MASK":
		return Cutout
	case "BLEND":
		return Blend
	}
	return Opaque
}

// BlendModes are the color blend modes of a [Material].
type BlendModes int32

const (
	BlendOpaque BlendModes = iota
	BlendAlpha
)

// CullModes are the face culling modes of a [Material].
type CullModes int32

const (
	CullBack CullModes = iota
	CullNone
)

// Texture slot names of the PBR shader. Each is an array of
// textures indexed by the per-object TextureIndex push constant.
const (
	MainTextures   = "MainTextures"
	MaskTextures   = "MaskTextures"
	NormalTextures = "NormalTextures"
)

// Material is an instance of the PBR shader with its keywords, render
// state and texture arrays. The texture arrays hold texture paths.
type Material struct {
	Name   string
	Bucket Buckets

	// shader variant keywords, sorted
	Keywords []string

	// draw order; higher draws later
	RenderQueue int

	Blend BlendModes
	Cull  CullModes

	// texture scale (xy) and offset (zw)
	TextureST [4]float32

	// texture arrays by slot name, each of the pool capacity
	Textures map[string][]string
}

// NewBucketMaterial returns a new material configured for the given
// bucket, with texture arrays of the given capacity.
func NewBucketMaterial(bk Buckets, capacity uint32) *Material {
	mt := &Material{Bucket: bk, TextureST: [4]float32{1, 1, 0, 0}}
	mt.EnableKeyword("TEXTURED")
	switch bk {
	case Opaque:
		mt.Name = "PBR"
		mt.RenderQueue = 1000
	case Cutout:
		mt.Name = "Cutout PBR"
		mt.RenderQueue = 5000
		mt.Blend = BlendAlpha
		mt.Cull = CullNone
		mt.EnableKeyword("ALPHA_CLIP")
		mt.EnableKeyword("TWO_SIDED")
	case Blend:
		mt.Name = "Transparent PBR"
		mt.RenderQueue = 5000
		mt.Blend = BlendAlpha
		mt.Cull = CullNone
		mt.EnableKeyword("TWO_SIDED")
	}
	mt.Textures = map[string][]string{
		MainTextures:   make([]string, capacity),
		MaskTextures:   make([]string, capacity),
		NormalTextures: make([]string, capacity),
	}
	return mt
}

func (mt *Material) String() string {
	return fmt.Sprintf("%s (%v)", mt.Name, mt.Keywords)
}

// EnableKeyword adds a shader keyword.
func (mt *Material) EnableKeyword(kw string) {
	i, found := slices.BinarySearch(mt.Keywords, kw)
	if !found {
		mt.Keywords = slices.Insert(mt.Keywords, i, kw)
	}
}

// HasKeyword returns true if the keyword is enabled.
func (mt *Material) HasKeyword(kw string) bool {
	_, found := slices.BinarySearch(mt.Keywords, kw)
	return found
}

// SetTexture sets the texture at index i of the named slot.
func (mt *Material) SetTexture(slot string, i uint32, path string) error {
	arr, ok := mt.Textures[slot]
	if !ok {
		return fmt.Errorf("scene: material %q has no texture slot %q", mt.Name, slot)
	}
	if int(i) >= len(arr) {
		return fmt.Errorf("scene: material %q slot %q index %d out of range [0,%d)", mt.Name, slot, i, len(arr))
	}
	arr[i] = path
	return nil
}

// PushConstants are the per-object shader constants of a mesh.
type PushConstants struct {
	// index into the material texture arrays
	TextureIndex uint32

	// base color factor, RGBA
	Color [4]float32

	Roughness float32
	Metallic  float32

	// emissive color
	Emission mat32.Vec3
}

// MeshRenderer is the mesh component of an [Object].
type MeshRenderer struct {
	// name of the mesh
	Mesh string

	// material the mesh is drawn with
	Material *Material

	// per-object shader constants
	Push PushConstants
}

// SourceMaterial is a material as described by an imported model.
// Texture paths are relative to the model folder; empty means absent.
type SourceMaterial struct {
	Name string

	// glTF alphaMode: OPAQUE, MASK or BLEND
	AlphaMode string

	BaseColorTexture  string
	MetalRoughTexture string
	NormalTexture     string

	BaseColor [4]float32
	Metallic  float32
	Roughness float32
	Emissive  mat32.Vec3
}

// Defaults sets the glTF default factors.
func (sm *SourceMaterial) Defaults() {
	sm.AlphaMode = "OPAQUE"
	sm.BaseColor = [4]float32{1, 1, 1, 1}
	sm.Metallic = 1
	sm.Roughness = 1
}
