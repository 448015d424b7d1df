// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/mat32"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/tracking"
	vk "github.com/goki/vulkan"
)

// ErrZeroRenderSize is returned when the runtime recommends a render
// target with zero width or height.
var ErrZeroRenderSize = errors.New("stereo: recommended render size is zero")

// ResolveUsage is the usage of the camera resolve target.
const ResolveUsage = vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit)

// Options are the fixed camera settings.
type Options struct {
	// near clip plane
	Near float32

	// far clip plane
	Far float32

	// field of view in degrees
	FOV float32

	// height of the play-space origin above the scene origin
	BaseHeight float32

	// flip Y in the eye projections
	FlipY bool
}

func (op *Options) Defaults() {
	op.Near = 0.01
	op.Far = 1024
	op.FOV = 65
	op.BaseHeight = 0.5
}

// Rig is the play-space base object and the head-tracked stereo
// camera under it.
type Rig struct {
	Base   *scene.Object
	Camera *Camera
}

// Setup creates the rig in sc, sized to the render target recommended
// by dev, with eye parameters from dev and a resolve target allocated
// with alloc. On error nothing is left in the scene or allocated.
func Setup(sc *scene.Scene, dev *tracking.Device, alloc gpu.Allocator, opts *Options) (*Rig, error) {
	w, h, err := dev.RecommendedRenderSize()
	if err != nil {
		return nil, err
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroRenderSize, w, h)
	}

	base := scene.NewObject("CameraBase")
	base.Pose.Pos = mat32.V3(0, opts.BaseHeight, 0)
	cam := &Camera{
		Node:              scene.NewObject("Camera"),
		Near:              opts.Near,
		Far:               opts.Far,
		FOV:               opts.FOV,
		Mode:              SBSHorizontal,
		FramebufferWidth:  w,
		FramebufferHeight: h,
		FlipY:             opts.FlipY,
	}
	base.AddChild(cam.Node)

	dev.RefreshEyeAdjustment()
	dev.RefreshProjection(cam.Near, cam.Far)
	if err := cam.ApplyEyeParameters(dev); err != nil {
		return nil, err
	}

	cam.Resolve = gpu.NewImage("Camera Resolve", gpu.NewImageFormat(int(w), int(h)), ResolveUsage)
	if err := alloc.AllocImage(cam.Resolve); err != nil {
		return nil, fmt.Errorf("stereo: resolve target: %w", err)
	}

	sc.AddObject(base)
	base.UpdateWorld(nil)
	slog.Info("created stereo camera", "width", w, "height", h, "mode", cam.Mode)
	return &Rig{Base: base, Camera: cam}, nil
}

// Destroy removes the rig from sc and frees the resolve target.
func (rg *Rig) Destroy(sc *scene.Scene, alloc gpu.Allocator) {
	sc.RemoveObject(rg.Camera.Node)
	sc.RemoveObject(rg.Base)
	if rg.Camera.Resolve != nil {
		alloc.FreeImage(rg.Camera.Resolve)
	}
}

// IsRigCamera returns true if cam is the camera of this rig.
func (rg *Rig) IsRigCamera(cam *Camera) bool {
	return rg != nil && cam != nil && cam == rg.Camera
}
