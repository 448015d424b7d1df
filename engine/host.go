// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/stereo"
	vk "github.com/goki/vulkan"
)

// Renderer renders the scene from one camera into its resolve target,
// leaving the target in the General layout.
type Renderer interface {
	Render(h *Host, rec gpu.Recorder, cam *stereo.Camera)
}

// Host owns the scene, the device context and the stages, and drives
// them through initialization and the per-frame sequence.
type Host struct {
	Ctx   *gpu.Context
	Scene *scene.Scene
	Alloc gpu.Allocator

	// Loader imports model files into the scene
	Loader scene.Loader

	Renderer Renderer

	// cameras rendered each frame, in order
	Cameras []*stereo.Camera

	// number of frames rendered
	Frame int

	stages []Stage

	// stages whose Init succeeded, in init order
	inited []Stage
}

// NewHost returns a new host on the given context, scene and allocator.
func NewHost(cx *gpu.Context, sc *scene.Scene, alloc gpu.Allocator) *Host {
	return &Host{Ctx: cx, Scene: sc, Alloc: alloc}
}

// AddStage adds stages, keeping all stages sorted by priority.
// Stages of equal priority keep the order they were added in.
func (h *Host) AddStage(st ...Stage) {
	h.stages = append(h.stages, st...)
	slices.SortStableFunc(h.stages, func(a, b Stage) int {
		return a.Priority() - b.Priority()
	})
}

// Stages returns the stages in the order they run.
func (h *Host) Stages() []Stage {
	return h.stages
}

// AddCamera adds cam to the cameras rendered each frame.
func (h *Host) AddCamera(cam *stereo.Camera) {
	if !slices.Contains(h.Cameras, cam) {
		h.Cameras = append(h.Cameras, cam)
	}
}

// RemoveCamera stops rendering cam.
func (h *Host) RemoveCamera(cam *stereo.Camera) {
	h.Cameras = slices.DeleteFunc(h.Cameras, func(c *stereo.Camera) bool { return c == cam })
}

// DrawGizmos returns whether editor gizmos are drawn.
func (h *Host) DrawGizmos() bool {
	return h.Scene.DrawGizmos
}

// ToggleGizmos flips whether editor gizmos are drawn.
func (h *Host) ToggleGizmos() {
	h.Scene.ToggleGizmos()
	slog.Debug("toggled gizmos", "draw", h.Scene.DrawGizmos)
}

// PreInstanceInit lets every stage request instance extensions.
// The first error stops the sequence.
func (h *Host) PreInstanceInit() error {
	for _, st := range h.stages {
		if err := st.PreInstanceInit(h.Ctx); err != nil {
			return fmt.Errorf("%s: pre-instance init: %w", st.Name(), err)
		}
	}
	return nil
}

// PreDeviceInit lets every stage request device extensions for pd.
func (h *Host) PreDeviceInit(pd vk.PhysicalDevice) error {
	for _, st := range h.stages {
		if err := st.PreDeviceInit(h.Ctx, pd); err != nil {
			return fmt.Errorf("%s: pre-device init: %w", st.Name(), err)
		}
	}
	return nil
}

// Init initializes every stage. If one fails, the stages initialized
// before it are closed and its error returned.
func (h *Host) Init() error {
	for _, st := range h.stages {
		if err := st.Init(h); err != nil {
			h.Close()
			return fmt.Errorf("%s: init: %w", st.Name(), err)
		}
		h.inited = append(h.inited, st)
		slog.Info("initialized stage", "stage", st.Name(), "priority", st.Priority())
	}
	return nil
}

// RenderFrame runs one frame: [Host.Record] then [Host.PreSwap].
// Callers that submit rec to a queue call those two separately, with
// the queue submission in between.
func (h *Host) RenderFrame(rec gpu.Recorder) {
	h.Record(rec)
	h.PreSwap()
}

// Record records one frame on rec: Update on every stage, then for
// each camera PreRender, the renderer and PostProcess.
func (h *Host) Record(rec gpu.Recorder) {
	h.Frame++
	for _, st := range h.inited {
		st.Update(h)
	}
	h.Scene.UpdateWorld()
	for _, cam := range h.Cameras {
		for _, st := range h.inited {
			st.PreRender(h, cam)
		}
		if h.Renderer != nil {
			h.Renderer.Render(h, rec, cam)
		}
		for _, st := range h.inited {
			st.PostProcess(h, rec, cam)
		}
	}
}

// PreSwap runs PreSwap on every stage, once the frame's commands
// have been submitted.
func (h *Host) PreSwap() {
	for _, st := range h.inited {
		st.PreSwap(h)
	}
}

// Close closes the initialized stages in reverse order.
func (h *Host) Close() {
	for i := len(h.inited) - 1; i >= 0; i-- {
		h.inited[i].Close(h)
	}
	h.inited = nil
}
