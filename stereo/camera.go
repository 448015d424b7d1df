// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stereo provides the head-tracked side-by-side stereo camera
// rig and its per-eye view and projection matrices.
package stereo

import (
	"fmt"
	"image"

	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/mat32"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/tracking"
)

// StereoModes are the ways a camera lays out its eyes in the framebuffer.
type StereoModes int32

const (
	// Mono renders a single view to the whole framebuffer.
	Mono StereoModes = iota

	// SBSHorizontal renders the left eye to the left half and the
	// right eye to the right half of the framebuffer.
	SBSHorizontal
)

func (sm StereoModes) String() string {
	switch sm {
	case Mono:
		return "Mono"
	case SBSHorizontal:
		return "SBSHorizontal"
	}
	return "StereoModes(?)"
}

// Camera is a stereo camera attached to a scene object. The object's
// pose is the tracked head pose relative to the rig base.
type Camera struct {
	// scene node carrying the head pose
	Node *scene.Object

	// near clip plane
	Near float32

	// far clip plane
	Far float32

	// vertical field of view in degrees, used for Mono views
	FOV float32

	Mode StereoModes

	// size of the combined framebuffer
	FramebufferWidth, FramebufferHeight uint32

	// head-to-eye transform per eye: the inverse of the
	// runtime's eye-to-head transform
	HeadToEye [tracking.EyesN]mat32.Mat4

	// projection per eye, including the Y correction
	Projection [tracking.EyesN]mat32.Mat4

	// flip Y in the projection, for runtimes whose clip space
	// is Y-up
	FlipY bool

	// single-sample resolve target the scene is rendered into,
	// left in General layout between frames
	Resolve *gpu.Image
}

func (cm *Camera) String() string {
	return fmt.Sprintf("%s %dx%d %v", cm.Node.Name, cm.FramebufferWidth, cm.FramebufferHeight, cm.Mode)
}

// YCorrection returns the matrix post-multiplied into each projection.
func (cm *Camera) YCorrection() mat32.Mat4 {
	if cm.FlipY {
		return mat32.Scale4(1, -1, 1)
	}
	return mat32.Identity4()
}

// SetEye sets the head-to-eye transform and projection of one eye
// from the runtime's eye-to-head transform and projection.
func (cm *Camera) SetEye(eye tracking.Eye, eyeToHead, projection mat32.Mat4) error {
	headToEye, err := eyeToHead.Inverse()
	if err != nil {
		return fmt.Errorf("stereo: %v eye transform: %w", eye, err)
	}
	flip := cm.YCorrection()
	cm.HeadToEye[eye] = headToEye
	cm.Projection[eye] = projection.Mul(&flip)
	return nil
}

// ApplyEyeParameters copies the current eye transforms and projections
// of dev into the camera.
func (cm *Camera) ApplyEyeParameters(dev *tracking.Device) error {
	for _, eye := range tracking.Eyes {
		if err := cm.SetEye(eye, dev.EyeToHead(eye), dev.Projection(eye)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPose sets the camera's local pose to the tracked head pose and
// updates its world matrix.
func (cm *Camera) ApplyPose(ps tracking.Pose) {
	cm.Node.Pose.Pos = ps.Pos
	cm.Node.Pose.Quat = ps.Quat
	var par *mat32.Mat4
	if cm.Node.Parent != nil {
		par = &cm.Node.Parent.Pose.WorldMatrix
	}
	cm.Node.UpdateWorld(par)
}

// View returns the world-to-eye view matrix of the given eye.
func (cm *Camera) View(eye tracking.Eye) mat32.Mat4 {
	inv, err := cm.Node.Pose.WorldMatrix.Inverse()
	if err != nil {
		inv.SetIdentity()
	}
	if cm.Mode == Mono {
		return inv
	}
	return cm.HeadToEye[eye].Mul(&inv)
}

// ViewProjection returns the full world-to-clip matrix of the given eye.
func (cm *Camera) ViewProjection(eye tracking.Eye) mat32.Mat4 {
	view := cm.View(eye)
	if cm.Mode == Mono {
		var prj mat32.Mat4
		prj.SetPerspective(cm.FOV, float32(cm.FramebufferWidth)/float32(max(cm.FramebufferHeight, 1)), cm.Near, cm.Far)
		return prj.Mul(&view)
	}
	return cm.Projection[eye].Mul(&view)
}

// EyeViewport returns the region of the framebuffer the given eye is
// rendered to.
func (cm *Camera) EyeViewport(eye tracking.Eye) image.Rectangle {
	w, h := int(cm.FramebufferWidth), int(cm.FramebufferHeight)
	if cm.Mode == Mono {
		return image.Rect(0, 0, w, h)
	}
	if eye == tracking.Left {
		return image.Rect(0, 0, w/2, h)
	}
	return image.Rect(w/2, 0, w, h)
}
