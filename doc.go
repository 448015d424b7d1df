// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vr renders a scene in stereo for a head-mounted display.
//
// The [Plugin] is an [engine.Stage] that, once added to an
// [engine.Host], requests the vulkan extensions the headset runtime
// needs, builds a head-tracked stereo camera rig rendering into one
// side-by-side framebuffer, and every frame copies the two halves of
// that framebuffer into per-eye textures and submits them to the
// compositor.
//
// The pieces live in their own packages:
//
//   - tracking: headset runtime adapter, simulated headset, pose recording
//   - stereo: the camera rig and eye matrices
//   - eyes: the framebuffer to eye texture copy
//   - submit: compositor submission and error reporting
//   - scene: the scene graph, pooled materials and the startup model
//   - engine: the frame stage host
//   - gpu: vulkan context, images, layout transitions and commands
//   - config: settings
package vr
