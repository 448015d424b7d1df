// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"slices"
	"strings"

	vk "github.com/goki/vulkan"
)

// Context holds the native Vulkan handles shared by the stereo pipeline.
// It is passed explicitly to every component that records GPU work or
// hands images to the compositor.
type Context struct {
	// Vulkan instance
	Instance vk.Instance

	// physical device the logical device was created on
	PhysicalDevice vk.PhysicalDevice

	// logical device
	Device vk.Device

	// graphics queue used for all submissions
	Queue vk.Queue

	// index of the queue family that Queue belongs to
	QueueFamily uint32

	// instance extensions to enable, without NUL terminators
	InstanceExts []string

	// device extensions to enable, without NUL terminators
	DeviceExts []string
}

// RequestInstanceExtension adds the given instance extensions to the
// list enabled at instance creation. Duplicates are ignored.
func (cx *Context) RequestInstanceExtension(names ...string) {
	cx.InstanceExts = appendUnique(cx.InstanceExts, names...)
}

// RequestDeviceExtension adds the given device extensions to the
// list enabled at device creation. Duplicates are ignored.
func (cx *Context) RequestDeviceExtension(names ...string) {
	cx.DeviceExts = appendUnique(cx.DeviceExts, names...)
}

func appendUnique(list []string, names ...string) []string {
	for _, nm := range names {
		nm = strings.TrimRight(nm, "\x00")
		if nm == "" || slices.Contains(list, nm) {
			continue
		}
		list = append(list, nm)
	}
	return list
}

// CheckExtensions returns an error wrapping [ErrExtensionUnavailable]
// that names every requested extension missing from available.
func CheckExtensions(kind string, requested, available []string) error {
	var missing []string
	for _, rq := range requested {
		if !slices.Contains(available, rq) {
			missing = append(missing, rq)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrExtensionUnavailable, kind, strings.Join(missing, ", "))
}

// cStrings returns NUL-terminated copies of the given names,
// as required by the Vulkan create info structs.
func cStrings(names []string) []string {
	cs := make([]string, len(names))
	for i, nm := range names {
		cs[i] = nm + "\x00"
	}
	return cs
}
