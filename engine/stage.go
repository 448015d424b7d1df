// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine runs the per-frame sequence of a rendering host and
// the stages that hook into it.
package engine

import (
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/stereo"
	vk "github.com/goki/vulkan"
)

// Stage is a unit of functionality hooked into the [Host]. The host
// calls each method at a fixed point: PreInstanceInit before the
// vulkan instance is created, PreDeviceInit before the logical device
// is created, Init once the device exists, then per frame Update,
// PreRender and PostProcess for each camera, and PreSwap. Close is
// called once at shutdown, in reverse priority order.
type Stage interface {
	// Name is used in logs and errors.
	Name() string

	// Priority orders stages: lower runs first.
	Priority() int

	// PreInstanceInit requests instance extensions on cx.
	PreInstanceInit(cx *gpu.Context) error

	// PreDeviceInit requests device extensions for the selected
	// physical device on cx.
	PreDeviceInit(cx *gpu.Context, pd vk.PhysicalDevice) error

	// Init creates the stage's resources. On error the stage must
	// leave nothing behind.
	Init(h *Host) error

	Update(h *Host)
	PreRender(h *Host, cam *stereo.Camera)
	PostProcess(h *Host, rec gpu.Recorder, cam *stereo.Camera)
	PreSwap(h *Host)
	Close(h *Host)
}

// StageBase provides no-op implementations of every [Stage] method
// except Name, for embedding.
type StageBase struct{}

func (sb *StageBase) Priority() int                                             { return 0 }
func (sb *StageBase) PreInstanceInit(cx *gpu.Context) error                     { return nil }
func (sb *StageBase) PreDeviceInit(cx *gpu.Context, pd vk.PhysicalDevice) error { return nil }
func (sb *StageBase) Init(h *Host) error                                        { return nil }
func (sb *StageBase) Update(h *Host)                                            {}
func (sb *StageBase) PreRender(h *Host, cam *stereo.Camera)                     {}
func (sb *StageBase) PostProcess(h *Host, rec gpu.Recorder, cam *stereo.Camera) {}
func (sb *StageBase) PreSwap(h *Host)                                           {}
func (sb *StageBase) Close(h *Host)                                             {}
