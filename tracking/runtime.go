// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracking adapts a head-mounted display runtime into the eye
// transforms, projections and headset pose used by the stereo camera.
package tracking

import (
	vk "github.com/goki/vulkan"
)

// Runtime is the query surface of a headset tracking runtime.
// Matrices are row-major as the runtime reports them, in the runtime's
// own coordinate space. Implementations are not safe for concurrent use.
type Runtime interface {
	// RecommendedRenderTargetSize returns the size of the combined
	// side-by-side framebuffer the runtime recommends.
	RecommendedRenderTargetSize() (width, height uint32)

	// EyeToHeadTransform returns the 3x4 transform from eye space
	// to head space for the given eye.
	EyeToHeadTransform(eye Eye) [3][4]float32

	// ProjectionMatrix returns the 4x4 projection for the given eye
	// and clip planes.
	ProjectionMatrix(eye Eye, near, far float32) [4][4]float32

	// PollEvents drains the runtime event queue.
	PollEvents()

	// HeadPose samples the headset pose as a 3x4 device-to-world
	// transform. valid is false while tracking is lost.
	HeadPose() (pose [3][4]float32, valid bool)

	// InstanceExtensionsRequired returns the Vulkan instance
	// extensions the compositor needs.
	InstanceExtensionsRequired() []string

	// DeviceExtensionsRequired returns the Vulkan device extensions
	// the compositor needs on the given physical device.
	DeviceExtensionsRequired(pd vk.PhysicalDevice) []string
}
