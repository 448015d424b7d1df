// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	vk "github.com/goki/vulkan"
)

var (
	// ErrExtensionUnavailable is returned when an instance or device
	// extension requested by the headset runtime is missing on the host.
	ErrExtensionUnavailable = errors.New("gpu: required Vulkan extension is not available")

	// ErrNoDevice is returned when no physical device or suitable
	// queue family can be found.
	ErrNoDevice = errors.New("gpu: no suitable Vulkan device")

	// ErrExtentMismatch is returned when a copy region does not fit
	// inside its source or destination image.
	ErrExtentMismatch = errors.New("gpu: copy region exceeds image extent")
)

func IsError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError returns an error for the given result, or nil on vk.Success.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return fmt.Errorf("vulkan error: %w (%d)", vk.Error(ret), ret)
}
