// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"image/color"

	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/stereo"
	vk "github.com/goki/vulkan"
)

// ClearRenderer is a [Renderer] that fills the resolve target with a
// single color lit by the scene's ambient level. It stands in for a
// rasterizer so the rest of the frame can run. The target is cleared
// in TransferDst and left in General.
type ClearRenderer struct {
	// color at full ambient light
	Color color.RGBA

	// color used while gizmos are drawn
	GizmoColor color.RGBA

	bb gpu.BarrierBatch
}

// NewClearRenderer returns a ClearRenderer with a sky blue color.
func NewClearRenderer() *ClearRenderer {
	return &ClearRenderer{
		Color:      color.RGBA{135, 206, 235, 255},
		GizmoColor: color.RGBA{255, 165, 0, 255},
	}
}

// ClearColor returns the color the target is cleared to.
func (cr *ClearRenderer) ClearColor(h *Host) color.RGBA {
	if h.DrawGizmos() {
		return cr.GizmoColor
	}
	amb := min(max(h.Scene.Env.Ambient, 0), 1)
	c := cr.Color
	return color.RGBA{uint8(float32(c.R) * amb), uint8(float32(c.G) * amb), uint8(float32(c.B) * amb), c.A}
}

func (cr *ClearRenderer) Render(h *Host, rec gpu.Recorder, cam *stereo.Camera) {
	res := cam.Resolve
	if res == nil || !res.IsActive() {
		return
	}
	cr.bb.AddDiscard(res, vk.ImageLayoutTransferDstOptimal)
	cr.bb.Record(rec)
	rec.ClearColorImage(res, cr.ClearColor(h))
	cr.bb.Add(res, vk.ImageLayoutGeneral)
	cr.bb.Record(rec)
}
