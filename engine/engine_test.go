// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/gpu/gputest"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/stereo"
	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logStage appends every call it gets to a shared log.
type logStage struct {
	StageBase
	name    string
	prio    int
	log     *[]string
	initErr error
}

func (ls *logStage) Name() string  { return ls.name }
func (ls *logStage) Priority() int { return ls.prio }

func (ls *logStage) add(what string) {
	*ls.log = append(*ls.log, ls.name+"."+what)
}

func (ls *logStage) PreInstanceInit(cx *gpu.Context) error {
	ls.add("PreInstanceInit")
	return nil
}

func (ls *logStage) Init(h *Host) error {
	ls.add("Init")
	return ls.initErr
}

func (ls *logStage) Update(h *Host) { ls.add("Update") }

func (ls *logStage) PreRender(h *Host, cam *stereo.Camera) {
	ls.add("PreRender " + cam.Node.Name)
}

func (ls *logStage) PostProcess(h *Host, rec gpu.Recorder, cam *stereo.Camera) {
	ls.add("PostProcess " + cam.Node.Name)
}

func (ls *logStage) PreSwap(h *Host) { ls.add("PreSwap") }
func (ls *logStage) Close(h *Host)   { ls.add("Close") }

type logRenderer struct {
	log *[]string
}

func (lr *logRenderer) Render(h *Host, rec gpu.Recorder, cam *stereo.Camera) {
	*lr.log = append(*lr.log, "render "+cam.Node.Name)
}

func newCamera(name string) *stereo.Camera {
	return &stereo.Camera{Node: scene.NewObject(name)}
}

func TestStageOrder(t *testing.T) {
	var log []string
	h := NewHost(&gpu.Context{}, scene.NewScene(), gputest.NewDevice())
	h.AddStage(&logStage{name: "b", prio: 10, log: &log}, &logStage{name: "a", prio: -1, log: &log})
	h.AddStage(&logStage{name: "c", prio: 10, log: &log})
	h.Renderer = &logRenderer{&log}
	h.AddCamera(newCamera("one"))
	h.AddCamera(newCamera("two"))

	require.NoError(t, h.PreInstanceInit())
	require.NoError(t, h.Init())
	assert.Equal(t, []string{
		"a.PreInstanceInit", "b.PreInstanceInit", "c.PreInstanceInit",
		"a.Init", "b.Init", "c.Init",
	}, log)

	log = nil
	h.RenderFrame(gputest.NewDevice())
	assert.Equal(t, []string{
		"a.Update", "b.Update", "c.Update",
		"a.PreRender one", "b.PreRender one", "c.PreRender one",
		"render one",
		"a.PostProcess one", "b.PostProcess one", "c.PostProcess one",
		"a.PreRender two", "b.PreRender two", "c.PreRender two",
		"render two",
		"a.PostProcess two", "b.PostProcess two", "c.PostProcess two",
		"a.PreSwap", "b.PreSwap", "c.PreSwap",
	}, log)
	assert.Equal(t, 1, h.Frame)

	log = nil
	h.Close()
	assert.Equal(t, []string{"c.Close", "b.Close", "a.Close"}, log)
	log = nil
	h.Close()
	assert.Empty(t, log, "closing twice does nothing")
}

func TestInitFailureClosesEarlier(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	h := NewHost(&gpu.Context{}, scene.NewScene(), gputest.NewDevice())
	h.AddStage(&logStage{name: "a", log: &log}, &logStage{name: "b", prio: 1, log: &log, initErr: boom}, &logStage{name: "c", prio: 2, log: &log})

	err := h.Init()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "b: init")
	assert.Equal(t, []string{"a.Init", "b.Init", "a.Close"}, log)

	log = nil
	h.AddCamera(newCamera("one"))
	h.RenderFrame(gputest.NewDevice())
	assert.Empty(t, log, "no stage runs after a failed init")
}

type extStage struct {
	StageBase
	err error
}

func (es *extStage) Name() string { return "ext" }

func (es *extStage) PreDeviceInit(cx *gpu.Context, pd vk.PhysicalDevice) error {
	cx.RequestDeviceExtension("VK_KHR_swapchain")
	return es.err
}

func TestPreDeviceInit(t *testing.T) {
	cx := &gpu.Context{}
	h := NewHost(cx, scene.NewScene(), gputest.NewDevice())
	h.AddStage(&extStage{})
	require.NoError(t, h.PreDeviceInit(nil))
	assert.Equal(t, []string{"VK_KHR_swapchain"}, cx.DeviceExts)

	h.AddStage(&extStage{err: fmt.Errorf("no")})
	assert.Error(t, h.PreDeviceInit(nil))
}

func TestCameras(t *testing.T) {
	h := NewHost(&gpu.Context{}, scene.NewScene(), gputest.NewDevice())
	one, two := newCamera("one"), newCamera("two")
	h.AddCamera(one)
	h.AddCamera(one)
	h.AddCamera(two)
	assert.Equal(t, []*stereo.Camera{one, two}, h.Cameras)
	h.RemoveCamera(one)
	assert.Equal(t, []*stereo.Camera{two}, h.Cameras)
}

func TestClearRenderer(t *testing.T) {
	gd := gputest.NewDevice()
	sc := scene.NewScene()
	sc.Env.Ambient = 0.5
	h := NewHost(&gpu.Context{}, sc, gd)
	cam := newCamera("cam")
	cam.Resolve = gpu.NewImage("res", gpu.NewImageFormat(4, 2), stereo.ResolveUsage)
	require.NoError(t, gd.AllocImage(cam.Resolve))

	cr := NewClearRenderer()
	cr.Color = color.RGBA{200, 100, 50, 255}
	h.Renderer = cr
	h.AddCamera(cam)

	for range 3 {
		h.RenderFrame(gd)
		assert.Empty(t, gd.Violations)
		assert.Equal(t, vk.ImageLayoutGeneral, cam.Resolve.Layout)
		assert.Equal(t, vk.ImageLayoutGeneral, gd.Layout(cam.Resolve))
		assert.Equal(t, color.RGBA{100, 50, 25, 255}, gd.Pixels(cam.Resolve).RGBAAt(3, 1))
	}
	assert.Len(t, gd.Clears, 3)
	for _, cl := range gd.Clears {
		assert.Equal(t, vk.ImageLayoutTransferDstOptimal, cl.Layout)
	}

	// each frame: a barrier into TransferDst ahead of the clear, then one
	// releasing the clear's write into General
	require.Len(t, gd.Barriers, 6)
	into, out := gd.Barriers[4], gd.Barriers[5]
	assert.Equal(t, vk.ImageLayoutTransferDstOptimal, into.Barriers[0].NewLayout)
	assert.NotZero(t, into.DstStage&vk.PipelineStageFlags(vk.PipelineStageTransferBit))
	assert.NotZero(t, into.Barriers[0].DstAccessMask&vk.AccessFlags(vk.AccessTransferWriteBit))
	assert.Equal(t, vk.ImageLayoutGeneral, out.Barriers[0].NewLayout)
	assert.NotZero(t, out.SrcStage&vk.PipelineStageFlags(vk.PipelineStageTransferBit))
	assert.NotZero(t, out.Barriers[0].SrcAccessMask&vk.AccessFlags(vk.AccessTransferWriteBit))

	h.ToggleGizmos()
	assert.True(t, h.DrawGizmos())
	h.RenderFrame(gd)
	assert.Equal(t, cr.GizmoColor, gd.Pixels(cam.Resolve).RGBAAt(0, 0))
}
