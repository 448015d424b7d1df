// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"io/fs"
	"testing"

	"cogentcore.org/vr/mat32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialPoolRotation(t *testing.T) {
	mp := NewMaterialPool(2)
	tmpl := mp.Template("OPAQUE")
	assert.Equal(t, tmpl, mp.Template(""))
	assert.NotEqual(t, tmpl, mp.Template("MASK"))

	var slots []uint32
	var mats []*Material
	for i := 0; i < 5; i++ {
		mt, slot, ok := mp.Assign(tmpl)
		require.True(t, ok)
		slots = append(slots, slot)
		mats = append(mats, mt)
	}
	assert.Equal(t, []uint32{0, 1, 0, 1, 0}, slots)
	assert.Same(t, mats[0], mats[1])
	assert.NotSame(t, mats[1], mats[2])
	assert.Same(t, mats[2], mats[3])
	assert.NotSame(t, mats[3], mats[4])

	bs := &mp.Buckets[Opaque]
	assert.Len(t, bs.Retired, 2)
	assert.Len(t, bs.Instances(), 3)
	assert.Equal(t, uint32(1), bs.Next)
	assert.Nil(t, mp.Buckets[Cutout].Active, "other buckets are independent")

	blend, slot, ok := mp.Assign(mp.Template("BLEND"))
	require.True(t, ok)
	assert.Equal(t, uint32(0), slot)
	assert.Equal(t, Blend, blend.Bucket)
	assert.Len(t, blend.Textures[MainTextures], 2)

	_, _, ok = mp.Assign(NewBucketMaterial(Opaque, 2))
	assert.False(t, ok)
}

func TestBucketMaterials(t *testing.T) {
	assert.Equal(t, Opaque, BucketForAlphaMode("OPAQUE"))
	assert.Equal(t, Cutout, BucketForAlphaMode("MASK"))
	assert.Equal(t, Blend, BucketForAlphaMode("BLEND"))

	op := NewBucketMaterial(Opaque, 4)
	assert.Equal(t, []string{"TEXTURED"}, op.Keywords)
	assert.Equal(t, CullBack, op.Cull)
	assert.Equal(t, [4]float32{1, 1, 0, 0}, op.TextureST)

	cut := NewBucketMaterial(Cutout, 4)
	assert.Equal(t, []string{"ALPHA_CLIP", "TEXTURED", "TWO_SIDED"}, cut.Keywords)
	assert.Equal(t, 5000, cut.RenderQueue)
	assert.Equal(t, BlendAlpha, cut.Blend)
	assert.Equal(t, CullNone, cut.Cull)

	bl := NewBucketMaterial(Blend, 4)
	assert.True(t, bl.HasKeyword("TWO_SIDED"))
	assert.False(t, bl.HasKeyword("ALPHA_CLIP"))

	assert.NoError(t, bl.SetTexture(MainTextures, 3, "a.png"))
	assert.Error(t, bl.SetTexture(MainTextures, 4, "a.png"))
	assert.Error(t, bl.SetTexture("EmissiveTextures", 0, "a.png"))
}

func TestObjectTree(t *testing.T) {
	sc := NewScene()
	par := NewObject("par")
	par.Pose.Pos = mat32.V3(0, 1, 0)
	kid := NewObject("kid")
	kid.Pose.Pos = mat32.V3(1, 0, 0)
	par.AddChild(kid)
	sc.AddObject(par)
	sc.UpdateWorld()
	assert.Equal(t, mat32.V3(1, 1, 0), kid.Pose.WorldPos())
	assert.True(t, sc.Contains(kid))

	other := NewObject("other")
	other.AddChild(kid)
	assert.Empty(t, par.Children)
	assert.Same(t, other, kid.Parent)
	assert.False(t, sc.Contains(kid))

	assert.True(t, sc.RemoveObject(par))
	assert.False(t, sc.RemoveObject(par))
	assert.Empty(t, sc.Objects())

	assert.False(t, sc.DrawGizmos)
	sc.ToggleGizmos()
	assert.True(t, sc.DrawGizmos)
}

func TestBootstrap(t *testing.T) {
	sc := NewScene()
	var md Model
	md.Defaults()
	ld := NewMemoryLoader(map[string]*NodeDesc{md.Path(): CornellBox()})

	bs, err := Load(sc, ld, &md)
	require.NoError(t, err)
	require.NotNil(t, bs.Root)
	assert.True(t, sc.Contains(bs.Root))

	q := mat32.NewQuatAxisAngle(mat32.Vec3Y, mat32.Pi/2)
	assert.InDelta(t, q.Y, bs.Root.Pose.Quat.Y, 1e-6)
	assert.InDelta(t, q.W, bs.Root.Pose.Quat.W, 1e-6)
	assert.Equal(t, mat32.V3(0.6, 0.6, 0.6), bs.Root.Pose.Scale)

	require.Len(t, bs.Objects, 13)
	assert.Same(t, bs.Root, bs.Objects[0])
	assert.Equal(t, "floor", bs.Objects[1].Name)
	assert.Equal(t, "lamp light", bs.Objects[12].Name)

	require.Len(t, bs.Suns, 1)
	assert.Equal(t, 1, bs.Suns[0].CascadeCount)
	assert.Equal(t, float32(30), bs.Suns[0].ShadowDistance)
	lamp := bs.Objects[12].Light
	assert.Equal(t, Point, lamp.Type)
	assert.Equal(t, 4, lamp.CascadeCount)
	assert.InDelta(t, 50*0.0015, lamp.Lumens, 1e-6)

	assert.False(t, sc.Env.Celestials)
	assert.False(t, sc.Env.Scattering)
	assert.Equal(t, float32(0.6), sc.Env.Ambient)

	meshes := map[string]*MeshRenderer{}
	for _, o := range bs.Objects {
		if o.Mesh != nil {
			meshes[o.Name] = o.Mesh
		}
	}
	require.Len(t, meshes, 10)
	assert.Equal(t, uint32(0), meshes["floor"].Push.TextureIndex)
	assert.Equal(t, uint32(7), meshes["lamp"].Push.TextureIndex)
	assert.Same(t, meshes["floor"].Material, meshes["lamp"].Material)
	assert.Equal(t, mat32.V3(15, 15, 15), meshes["lamp"].Push.Emission)
	assert.Equal(t, float32(0), meshes["floor"].Push.Metallic)

	opaque := meshes["floor"].Material
	assert.Equal(t, WhiteTexture, opaque.Textures[MainTextures][0])
	assert.Equal(t, MaskTexture, opaque.Textures[MaskTextures][0])
	assert.Equal(t, BumpTexture, opaque.Textures[NormalTextures][0])

	plant := meshes["plant"]
	assert.Equal(t, Cutout, plant.Material.Bucket)
	assert.Equal(t, uint32(0), plant.Push.TextureIndex)
	assert.Equal(t, "Assets/Models/leaves.png", plant.Material.Textures[MainTextures][0])

	pane := meshes["pane"]
	assert.Equal(t, Blend, pane.Material.Bucket)
	assert.Equal(t, "Assets/Models/glass_normal.png", pane.Material.Textures[NormalTextures][0])
	assert.Equal(t, float32(0.3), pane.Push.Color[3])

	bs.Remove()
	assert.False(t, sc.Contains(bs.Root))
}

func TestBootstrapMissingModel(t *testing.T) {
	var md Model
	md.Defaults()
	_, err := Load(NewScene(), NewMemoryLoader(nil), &md)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
