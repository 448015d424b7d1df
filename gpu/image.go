// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
)

// Image is a single-layer 2D color image together with the layout it is
// known to be in at the current point of command recording.
// Layout is only updated by [BarrierBatch.Record].
type Image struct {
	// name for logging
	Name string

	// unique id, stable for the life of the image
	ID uuid.UUID

	// format & size of image
	Format ImageFormat

	// usage flags the image was created with
	Usage vk.ImageUsageFlags

	// vulkan image handle
	Image vk.Image

	// memory bound to the image, when owned
	Mem vk.DeviceMemory

	// layout at the current point in the command stream
	Layout vk.ImageLayout

	// device the image was created on
	Dev vk.Device
}

// NewImage returns a new Image with given name, format and usage.
// The vulkan image is not created until it is allocated.
func NewImage(name string, format ImageFormat, usage vk.ImageUsageFlags) *Image {
	return &Image{
		Name:   name,
		ID:     uuid.Must(uuid.NewV7()),
		Format: format,
		Usage:  usage,
		Layout: vk.ImageLayoutUndefined,
	}
}

func (im *Image) String() string {
	return fmt.Sprintf("%s [%s] %s", im.Name, LayoutName(im.Layout), im.Format.String())
}

func (im *Image) Width() uint32 {
	return uint32(im.Format.Size.X)
}

func (im *Image) Height() uint32 {
	return uint32(im.Format.Size.Y)
}

// IsActive returns true if the vulkan image has been created.
func (im *Image) IsActive() bool {
	return im.Image != nil
}

// Handle returns the raw vulkan handle as an integer, the form
// compositor APIs expect.
func (im *Image) Handle() uint64 {
	return uint64(uintptr(unsafe.Pointer(im.Image)))
}

// SubresourceLayers returns the color subresource of the base mip level.
func (im *Image) SubresourceLayers() vk.ImageSubresourceLayers {
	return vk.ImageSubresourceLayers{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
		LayerCount: 1,
	}
}

// SubresourceRange returns the full color subresource range.
func (im *Image) SubresourceRange() vk.ImageSubresourceRange {
	return vk.ImageSubresourceRange{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
		LevelCount: uint32(max(im.Format.Mips, 1)),
		LayerCount: 1,
	}
}

// ContainsRegion returns true if the rectangle at (x, y) with the
// given extent lies within the image.
func (im *Image) ContainsRegion(x, y int32, ext vk.Extent3D) bool {
	if x < 0 || y < 0 {
		return false
	}
	return uint32(x)+ext.Width <= im.Width() && uint32(y)+ext.Height <= im.Height() && ext.Depth <= 1
}
