// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/vr/mat32"
)

// CornellBox returns an in-memory description of a Cornell box: five
// walls, two blocks, a glass pane and a ceiling light, plus a sun.
func CornellBox() *NodeDesc {
	matte := func(name string, r, g, b float32) *SourceMaterial {
		sm := &SourceMaterial{Name: name}
		sm.Defaults()
		sm.BaseColor = [4]float32{r, g, b, 1}
		sm.Metallic = 0
		sm.Roughness = 0.9
		return sm
	}
	white := matte("white", 0.73, 0.73, 0.73)
	red := matte("red", 0.65, 0.05, 0.05)
	green := matte("green", 0.12, 0.45, 0.15)

	foliage := matte("foliage", 0.2, 0.5, 0.2)
	foliage.AlphaMode = "MASK"
	foliage.BaseColorTexture = "leaves.png"

	glass := matte("glass", 0.9, 0.95, 1)
	glass.AlphaMode = "BLEND"
	glass.BaseColor[3] = 0.3
	glass.Roughness = 0.05
	glass.NormalTexture = "glass_normal.png"

	lamp := matte("lamp", 1, 1, 1)
	lamp.Emissive = mat32.V3(15, 15, 15)

	sun := NewLight(Sun, 1)
	ceiling := NewLight(Point, 50)

	return &NodeDesc{
		Name: "cornellbox",
		Children: []*NodeDesc{
			{Name: "floor", Mesh: "quad", Material: white},
			{Name: "ceiling", Pos: mat32.V3(0, 2, 0), Mesh: "quad", Material: white},
			{Name: "back", Pos: mat32.V3(0, 1, -1), Mesh: "quad", Material: white},
			{Name: "left", Pos: mat32.V3(-1, 1, 0), Mesh: "quad", Material: red},
			{Name: "right", Pos: mat32.V3(1, 1, 0), Mesh: "quad", Material: green},
			{Name: "tall block", Pos: mat32.V3(-0.35, 0.6, -0.3), Mesh: "box", Material: white},
			{Name: "short block", Pos: mat32.V3(0.35, 0.3, 0.3), Mesh: "box", Material: white},
			{Name: "plant", Pos: mat32.V3(0.6, 0, -0.6), Mesh: "cards", Material: foliage},
			{Name: "pane", Pos: mat32.V3(0, 1, 0.5), Mesh: "quad", Material: glass},
			{Name: "lamp", Pos: mat32.V3(0, 1.98, 0), Mesh: "quad", Material: lamp, Children: []*NodeDesc{
				{Name: "lamp light", Pos: mat32.V3(0, -0.05, 0), Light: ceiling},
			}},
			{Name: "sun", Pos: mat32.V3(1, 3, 1), Light: sun},
		},
	}
}
