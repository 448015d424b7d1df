// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"slices"

	"cogentcore.org/vr/mat32"
	vk "github.com/goki/vulkan"
)

// Sim is a simulated headset [Runtime]: a head standing at a fixed
// height that slowly sways and turns, advancing one step per
// PollEvents call.
type Sim struct {
	// size of the combined side-by-side framebuffer
	Width, Height uint32

	// interpupillary distance in meters
	IPD float32

	// vertical field of view of each eye in degrees
	FOV float32

	// height of the head above the play-space origin
	HeadHeight float32

	// simulated frame rate, used to advance time per step
	FrameRate float32

	// if > 0, tracking is lost for one step out of every LoseEvery
	LoseEvery int

	// Vulkan extensions the simulated compositor requires
	InstanceExts, DeviceExts []string

	// number of PollEvents calls so far
	Step int
}

// NewSim returns a Sim with standard headset defaults.
func NewSim() *Sim {
	sm := &Sim{}
	sm.Defaults()
	return sm
}

func (sm *Sim) Defaults() {
	sm.Width = 2468
	sm.Height = 1360
	sm.IPD = 0.064
	sm.FOV = 100
	sm.HeadHeight = 1.7
	sm.FrameRate = 90
	sm.InstanceExts = []string{"VK_KHR_external_memory_capabilities"}
	sm.DeviceExts = []string{"VK_KHR_external_memory", "VK_KHR_dedicated_allocation", "VK_KHR_get_memory_requirements2"}
}

func (sm *Sim) RecommendedRenderTargetSize() (width, height uint32) {
	return sm.Width, sm.Height
}

func (sm *Sim) EyeToHeadTransform(eye Eye) [3][4]float32 {
	x := sm.IPD / 2
	if eye == Left {
		x = -x
	}
	return [3][4]float32{
		{1, 0, 0, x},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

func (sm *Sim) ProjectionMatrix(eye Eye, near, far float32) [4][4]float32 {
	aspect := float32(1)
	if sm.Height > 0 {
		aspect = float32(sm.Width/2) / float32(sm.Height)
	}
	var p mat32.Mat4
	p.SetPerspective(sm.FOV, aspect, near, far)
	var r [4][4]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row][col] = p.At(row, col)
		}
	}
	return r
}

func (sm *Sim) PollEvents() {
	sm.Step++
}

func (sm *Sim) HeadPose() ([3][4]float32, bool) {
	if sm.LoseEvery > 0 && sm.Step%sm.LoseEvery == 0 {
		return [3][4]float32{}, false
	}
	t := float32(sm.Step) / max(sm.FrameRate, 1)
	q := mat32.NewQuatAxisAngle(mat32.Vec3Y, 0.3*mat32.Sin(0.5*t))
	pos := mat32.V3(0.05*mat32.Sin(t), sm.HeadHeight, 0)
	var m mat32.Mat4
	m.SetTransform(pos, q, mat32.V3(1, 1, 1))
	var r [3][4]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			r[row][col] = m.At(row, col)
		}
	}
	return r, true
}

func (sm *Sim) InstanceExtensionsRequired() []string {
	return slices.Clone(sm.InstanceExts)
}

func (sm *Sim) DeviceExtensionsRequired(pd vk.PhysicalDevice) []string {
	return slices.Clone(sm.DeviceExts)
}
