// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// Allocator creates and frees the vulkan images behind [Image] values.
type Allocator interface {
	// AllocImage creates the vulkan image for im, using its Format and
	// Usage, binds device-local memory to it and sets im.Layout to Undefined.
	AllocImage(im *Image) error

	// FreeImage destroys the vulkan image and memory of im.
	// It is a no-op for an image that is not active.
	FreeImage(im *Image)
}

// DeviceAllocator allocates optimal-tiling device-local images on
// the device of a [Context].
type DeviceAllocator struct {
	Ctx *Context

	memProps vk.PhysicalDeviceMemoryProperties
	hasProps bool
}

// NewDeviceAllocator returns an allocator for the given context.
func NewDeviceAllocator(cx *Context) *DeviceAllocator {
	return &DeviceAllocator{Ctx: cx}
}

func (da *DeviceAllocator) AllocImage(im *Image) error {
	dev := da.Ctx.Device
	w, h := im.Format.Size32()
	var img vk.Image
	ret := vk.CreateImage(dev, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vk.ImageType2d,
		Format:        im.Format.Format,
		Extent:        vk.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:     uint32(max(im.Format.Mips, 1)),
		ArrayLayers:   1,
		Samples:       vk.SampleCountFlagBits(im.Format.SampleCount()),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         im.Usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}, nil, &img)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: create image %q: %w", im.Name, err)
	}

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev, img, &memReqs)
	memReqs.Deref()

	memType, ok := da.findMemoryType(memReqs.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit)
	if !ok {
		vk.DestroyImage(dev, img, nil)
		return fmt.Errorf("gpu: image %q: no device-local memory type", im.Name)
	}
	var mem vk.DeviceMemory
	ret = vk.AllocateMemory(dev, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &mem)
	if err := NewError(ret); err != nil {
		vk.DestroyImage(dev, img, nil)
		return fmt.Errorf("gpu: allocate memory for image %q: %w", im.Name, err)
	}
	if err := NewError(vk.BindImageMemory(dev, img, mem, 0)); err != nil {
		vk.FreeMemory(dev, mem, nil)
		vk.DestroyImage(dev, img, nil)
		return fmt.Errorf("gpu: bind memory for image %q: %w", im.Name, err)
	}
	im.Image = img
	im.Mem = mem
	im.Dev = dev
	im.Layout = vk.ImageLayoutUndefined
	return nil
}

func (da *DeviceAllocator) FreeImage(im *Image) {
	if !im.IsActive() {
		return
	}
	vk.DestroyImage(im.Dev, im.Image, nil)
	if im.Mem != nil {
		vk.FreeMemory(im.Dev, im.Mem, nil)
	}
	im.Image = nil
	im.Mem = nil
	im.Layout = vk.ImageLayoutUndefined
}

func (da *DeviceAllocator) findMemoryType(typeBits uint32, props vk.MemoryPropertyFlagBits) (uint32, bool) {
	if !da.hasProps {
		vk.GetPhysicalDeviceMemoryProperties(da.Ctx.PhysicalDevice, &da.memProps)
		da.memProps.Deref()
		da.hasProps = true
	}
	for i := uint32(0); i < da.memProps.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		mt := da.memProps.MemoryTypes[i]
		mt.Deref()
		if mt.PropertyFlags&vk.MemoryPropertyFlags(props) != 0 {
			return i, true
		}
	}
	return 0, false
}
