// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package submit

import (
	"slices"

	"cogentcore.org/vr/tracking"
	vk "github.com/goki/vulkan"
)

// Validator is a compositor that runs the checks a headset compositor
// makes on a submitted texture and then drops it. It stands in for
// the runtime when no headset is attached.
type Validator struct {
	// formats accepted; DefaultFormats if empty
	Formats []vk.Format

	// device the textures must belong to; any if nil
	Device vk.Device

	// if set, every submission returns DoNotHaveFocus
	Unfocused bool

	// the last accepted texture and bounds for each eye
	Last       [tracking.EyesN]Texture
	LastBounds [tracking.EyesN]Bounds

	// accepted submissions
	Accepted int
}

// DefaultFormats are the 8-bit and half-float color formats compositors take.
var DefaultFormats = []vk.Format{
	vk.FormatR8g8b8a8Srgb, vk.FormatR8g8b8a8Unorm,
	vk.FormatB8g8r8a8Srgb, vk.FormatB8g8r8a8Unorm,
	vk.FormatR16g16b16a16Sfloat,
}

func (vl *Validator) Submit(eye tracking.Eye, tex *Texture, bounds *Bounds) Error {
	switch {
	case eye < 0 || eye >= tracking.EyesN:
		return IndexOutOfRange
	case vl.Unfocused:
		return DoNotHaveFocus
	case tex == nil || tex.Handle == 0 || tex.Width == 0 || tex.Height == 0:
		return InvalidTexture
	case vl.Device != nil && tex.Device != vl.Device:
		return TextureIsOnWrongDevice
	case tex.SampleCount != 1:
		return InvalidTexture
	}
	formats := vl.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if !slices.Contains(formats, tex.Format) {
		return TextureUsesUnsupportedFormat
	}
	bd := FullBounds()
	if bounds != nil {
		bd = *bounds
	}
	if !bd.IsValid() {
		return InvalidBounds
	}
	vl.Last[eye] = *tex
	vl.LastBounds[eye] = bd
	vl.Accepted++
	return None
}
