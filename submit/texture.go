// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package submit

import (
	"fmt"

	"cogentcore.org/vr/gpu"
	vk "github.com/goki/vulkan"
)

// ColorSpaces are the color encodings a texture may be submitted with.
type ColorSpaces int32

const (
	Auto ColorSpaces = iota
	Gamma
	Linear
)

// Texture is the description of a native Vulkan image handed to the
// compositor: the handle, the objects that own it, and its shape.
type Texture struct {
	// native image handle
	Handle uint64

	Device         vk.Device
	PhysicalDevice vk.PhysicalDevice
	Instance       vk.Instance
	Queue          vk.Queue
	QueueFamily    uint32

	Width  uint32
	Height uint32
	Format vk.Format

	// number of samples per pixel
	SampleCount uint32

	ColorSpace ColorSpaces
}

// NewTexture describes im as owned by the device in cx. Eye textures
// are sRGB so the color space is Gamma.
func NewTexture(cx *gpu.Context, im *gpu.Image) Texture {
	return Texture{
		Handle:         im.Handle(),
		Device:         cx.Device,
		PhysicalDevice: cx.PhysicalDevice,
		Instance:       cx.Instance,
		Queue:          cx.Queue,
		QueueFamily:    cx.QueueFamily,
		Width:          im.Width(),
		Height:         im.Height(),
		Format:         im.Format.Format,
		SampleCount:    uint32(im.Format.SampleCount()),
		ColorSpace:     Gamma,
	}
}

func (tx *Texture) String() string {
	return fmt.Sprintf("%#x %dx%d %s x%d", tx.Handle, tx.Width, tx.Height, gpu.FormatName(tx.Format), tx.SampleCount)
}

// Bounds is the region of a texture shown to one eye, in texture
// coordinates.
type Bounds struct {
	UMin, UMax float32
	VMin, VMax float32
}

// FullBounds covers the whole texture.
func FullBounds() Bounds {
	return Bounds{UMin: 0, UMax: 1, VMin: 0, VMax: 1}
}

// HalfBounds covers the half of a side-by-side texture that belongs
// to the given eye index, 0 for left.
func HalfBounds(eye int) Bounds {
	u := 0.5 * float32(eye)
	return Bounds{UMin: u, UMax: u + 0.5, VMin: 0, VMax: 1}
}

// IsValid returns true if the bounds are non-empty and inside [0,1].
func (bd *Bounds) IsValid() bool {
	return bd.UMin >= 0 && bd.UMax <= 1 && bd.VMin >= 0 && bd.VMax <= 1 &&
		bd.UMin < bd.UMax && bd.VMin < bd.VMax
}
