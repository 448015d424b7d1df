// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vr

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vr/config"
	"cogentcore.org/vr/engine"
	"cogentcore.org/vr/eyes"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/stereo"
	"cogentcore.org/vr/submit"
	"cogentcore.org/vr/tracking"
	vk "github.com/goki/vulkan"
)

// Priority is the stage priority of the plugin.
const Priority = 1000

// Plugin is the stereo rendering stage.
type Plugin struct {
	engine.StageBase

	Config     *config.Config
	Device     *tracking.Device
	Compositor submit.Compositor

	// Changes, if set, delivers live setting changes, applied at the
	// start of the next frame.
	Changes <-chan config.Live

	// created by Init
	Rig       *stereo.Rig
	Extractor *eyes.Extractor
	Submitter *submit.Submitter
	Model     *scene.Bootstrap

	// Extractor.Frames at the last submission
	submitted int
}

// New returns a new plugin for the headset behind dev.
func New(cfg *config.Config, dev *tracking.Device, comp submit.Compositor) *Plugin {
	return &Plugin{Config: cfg, Device: dev, Compositor: comp}
}

func (pl *Plugin) Name() string  { return "vr" }
func (pl *Plugin) Priority() int { return Priority }

// PreInstanceInit requests the instance extensions of the runtime and
// the physical device properties query the runtime uses to find its
// output device.
func (pl *Plugin) PreInstanceInit(cx *gpu.Context) error {
	if pl.Device == nil {
		return tracking.ErrRuntimeUnavailable
	}
	cx.RequestInstanceExtension(pl.Device.InstanceExtensionsRequired()...)
	cx.RequestInstanceExtension(vk.KhrGetPhysicalDeviceProperties2ExtensionName)
	return nil
}

// PreDeviceInit requests the device extensions of the runtime and
// the swapchain.
func (pl *Plugin) PreDeviceInit(cx *gpu.Context, pd vk.PhysicalDevice) error {
	if pl.Device == nil {
		return tracking.ErrRuntimeUnavailable
	}
	cx.RequestDeviceExtension(pl.Device.DeviceExtensionsRequired(pd)...)
	cx.RequestDeviceExtension(vk.KhrSwapchainExtensionName)
	return nil
}

// Init loads the startup model if the host has a loader, then creates
// the camera rig, the eye textures and the submitter. On error
// everything created so far is removed again.
func (pl *Plugin) Init(h *engine.Host) error {
	if pl.Device == nil {
		return tracking.ErrRuntimeUnavailable
	}
	mode, err := pl.Config.Mode()
	if err != nil {
		return err
	}
	if h.Loader != nil {
		md := pl.Config.SceneModel()
		pl.Model, err = scene.Load(h.Scene, h.Loader, &md)
		if err != nil {
			return err
		}
	}
	opts := pl.Config.CameraOptions()
	pl.Rig, err = stereo.Setup(h.Scene, pl.Device, h.Alloc, &opts)
	if err != nil {
		pl.Close(h)
		return err
	}
	pl.Extractor, err = eyes.NewExtractor(pl.Rig, mode, h.Alloc)
	if err != nil {
		pl.Close(h)
		return err
	}
	pl.Submitter = submit.NewSubmitter(pl.Compositor, h.Ctx)
	pl.submitted = 0
	h.AddCamera(pl.Rig.Camera)
	return nil
}

// Update applies pending live setting changes, refreshes the eye
// matrices and samples the headset.
func (pl *Plugin) Update(h *engine.Host) {
	pl.applyChanges()
	cam := pl.Rig.Camera
	pl.Device.RefreshEyeAdjustment()
	pl.Device.RefreshProjection(cam.Near, cam.Far)
	if pl.Config.DynamicEyeAdjust {
		errors.Log(cam.ApplyEyeParameters(pl.Device))
	}
	pl.Device.Update()
}

func (pl *Plugin) applyChanges() {
	if pl.Changes == nil {
		return
	}
	select {
	case lv := <-pl.Changes:
		flip := lv.FlipY != pl.Config.Camera.FlipY
		pl.Config.SetLive(lv)
		pl.Config.ApplyLevel()
		if flip {
			cam := pl.Rig.Camera
			cam.FlipY = lv.FlipY
			errors.Log(cam.ApplyEyeParameters(pl.Device))
		}
		slog.Info("applied live settings", "flipY", lv.FlipY, "dynamicEyeAdjust", lv.DynamicEyeAdjust, "logLevel", lv.LogLevel)
	default:
	}
}

// PreRender moves the rig camera to the tracked head pose.
func (pl *Plugin) PreRender(h *engine.Host, cam *stereo.Camera) {
	if !pl.Rig.IsRigCamera(cam) {
		return
	}
	cam.ApplyPose(pl.Device.CurrentPose())
}

// PostProcess copies the rig camera's framebuffer into the eye textures.
func (pl *Plugin) PostProcess(h *engine.Host, rec gpu.Recorder, cam *stereo.Camera) {
	pl.Extractor.Extract(rec, cam)
}

// PreSwap submits the eye textures if they were extracted this frame.
func (pl *Plugin) PreSwap(h *engine.Host) {
	if pl.Extractor.Frames == pl.submitted {
		return
	}
	pl.submitted = pl.Extractor.Frames
	pl.Submitter.Frame(pl.Extractor)
}

// ToggleGizmos flips whether the host draws gizmos. It is bound to F1
// in the viewer.
func (pl *Plugin) ToggleGizmos(h *engine.Host) {
	h.ToggleGizmos()
}

// Close removes the rig and the startup model from the scene and
// frees the eye textures and the resolve target.
func (pl *Plugin) Close(h *engine.Host) {
	if pl.Extractor != nil {
		pl.Extractor.Destroy()
		pl.Extractor = nil
	}
	if pl.Rig != nil {
		h.RemoveCamera(pl.Rig.Camera)
		pl.Rig.Destroy(h.Scene, h.Alloc)
		pl.Rig = nil
	}
	if pl.Model != nil {
		pl.Model.Remove()
		pl.Model = nil
	}
}
