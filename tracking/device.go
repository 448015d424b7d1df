// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vr/mat32"
	vk "github.com/goki/vulkan"
)

// ErrRuntimeUnavailable is returned when no headset runtime is present.
var ErrRuntimeUnavailable = errors.New("tracking: headset runtime unavailable")

// Device is the per-frame view of a [Runtime]: the current eye
// transforms, projections and headset pose, converted to column-major
// matrices. It keeps the last valid pose while tracking is lost.
type Device struct {
	rt Runtime

	eyeToHead  [EyesN]mat32.Mat4
	projection [EyesN]mat32.Mat4
	near, far  float32

	pose     Pose
	tracking bool
	frame    uint64
}

// NewDevice returns a Device for the given runtime, which must not be nil.
func NewDevice(rt Runtime) (*Device, error) {
	if rt == nil {
		return nil, ErrRuntimeUnavailable
	}
	dv := &Device{rt: rt, pose: IdentityPose()}
	for i := range dv.eyeToHead {
		dv.eyeToHead[i].SetIdentity()
		dv.projection[i].SetIdentity()
	}
	return dv, nil
}

// Runtime returns the underlying runtime.
func (dv *Device) Runtime() Runtime {
	return dv.rt
}

// RecommendedRenderSize returns the render target size recommended
// by the runtime.
func (dv *Device) RecommendedRenderSize() (width, height uint32, err error) {
	if dv == nil || dv.rt == nil {
		return 0, 0, ErrRuntimeUnavailable
	}
	width, height = dv.rt.RecommendedRenderTargetSize()
	return
}

// RefreshEyeAdjustment re-reads the eye-to-head transforms from the
// runtime. The result only changes when the runtime reports a change,
// such as an IPD adjustment.
func (dv *Device) RefreshEyeAdjustment() {
	for _, eye := range Eyes {
		dv.eyeToHead[eye].SetFromRowMajor34(dv.rt.EyeToHeadTransform(eye))
	}
}

// RefreshProjection re-reads the per-eye projections for the given
// clip planes, which are remembered for later calls with zero planes.
func (dv *Device) RefreshProjection(near, far float32) {
	if near > 0 && far > 0 {
		dv.near, dv.far = near, far
	}
	for _, eye := range Eyes {
		dv.projection[eye].SetFromRowMajor44(dv.rt.ProjectionMatrix(eye, dv.near, dv.far))
	}
}

// EyeToHead returns the eye-to-head transform from the last
// [Device.RefreshEyeAdjustment].
func (dv *Device) EyeToHead(eye Eye) mat32.Mat4 {
	return dv.eyeToHead[eye]
}

// Projection returns the projection from the last [Device.RefreshProjection].
func (dv *Device) Projection(eye Eye) mat32.Mat4 {
	return dv.projection[eye]
}

// ClipPlanes returns the near and far planes last used for projections.
func (dv *Device) ClipPlanes() (near, far float32) {
	return dv.near, dv.far
}

// CurrentPose returns the headset pose from the last [Device.Update],
// in runtime space. While tracking is lost it is the last valid pose
// with Valid set to false.
func (dv *Device) CurrentPose() Pose {
	return dv.pose
}

// Tracking returns whether the last update had a valid pose.
func (dv *Device) Tracking() bool {
	return dv.tracking
}

// Frame returns the number of updates so far.
func (dv *Device) Frame() uint64 {
	return dv.frame
}

// Update polls runtime events and samples the headset pose.
// It must be called exactly once per frame.
func (dv *Device) Update() {
	dv.frame++
	dv.rt.PollEvents()
	m, valid := dv.rt.HeadPose()
	if valid {
		dv.pose = PoseFromMatrix34(m, true)
	} else {
		dv.pose.Valid = false
	}
	if valid != dv.tracking {
		if valid {
			slog.Debug("tracking acquired", "frame", dv.frame, "pose", dv.pose)
		} else {
			slog.Debug("tracking lost, keeping last known pose", "frame", dv.frame, "pose", dv.pose)
		}
		dv.tracking = valid
	}
}

// InstanceExtensionsRequired returns the instance extensions the
// runtime requires.
func (dv *Device) InstanceExtensionsRequired() []string {
	return dv.rt.InstanceExtensionsRequired()
}

// DeviceExtensionsRequired returns the device extensions the runtime
// requires on the given physical device.
func (dv *Device) DeviceExtensionsRequired(pd vk.PhysicalDevice) []string {
	return dv.rt.DeviceExtensionsRequired(pd)
}
