// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"strings"

	"cogentcore.org/core/base/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes the vulkan loader for Display-enabled use, using glfw.
// Must call before doing any gpu stuff.
// Calls glfw.Init and sets the Vulkan instance proc addr and calls vk.Init.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	err := glfw.Init()
	if err != nil {
		return errors.Log(err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.Log(errors.New("gpu: Vulkan loader not found"))
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	return errors.Log(vk.Init())
}

// Terminate shuts down glfw; call as last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// WindowInstanceExtensions returns the instance extensions needed to
// create a surface for the given window, without NUL terminators.
func WindowInstanceExtensions(win *glfw.Window) []string {
	exts := win.GetRequiredInstanceExtensions()
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = strings.TrimRight(e, "\x00")
	}
	return names
}
