// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"strings"

	vk "github.com/goki/vulkan"
)

// ImageFormat describes the size and Vulkan format of an Image.
type ImageFormat struct {
	// Size of image
	Size image.Point

	// Image format: FormatR8g8b8a8Srgb is the default
	Format vk.Format

	// number of samples: 1 for resolve targets and eye textures
	Samples vk.SampleCountFlagBits

	// number of mip levels
	Mips int
}

// NewImageFormat returns a new ImageFormat with default format and given size.
func NewImageFormat(width, height int) ImageFormat {
	im := ImageFormat{}
	im.Defaults()
	im.SetSize(width, height)
	return im
}

// Defaults sets the standard 8-bit sRGB, single-sample, single-mip format.
func (im *ImageFormat) Defaults() {
	im.Format = vk.FormatR8g8b8a8Srgb
	im.Samples = vk.SampleCount1Bit
	im.Mips = 1
}

// String returns human-readable version of format
func (im *ImageFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s  Samples: %d  Mips: %d", im.Size, FormatName(im.Format), im.SampleCount(), im.Mips)
}

func (im *ImageFormat) SetSize(w, h int) {
	im.Size = image.Point{X: w, Y: h}
}

// Size32 returns size as uint32 values
func (im *ImageFormat) Size32() (width, height uint32) {
	width = uint32(im.Size.X)
	height = uint32(im.Size.Y)
	return
}

// Extent3D returns the size as a single-layer Vulkan extent.
func (im *ImageFormat) Extent3D() vk.Extent3D {
	w, h := im.Size32()
	return vk.Extent3D{Width: w, Height: h, Depth: 1}
}

// SampleCount returns the number of samples as an integer.
func (im *ImageFormat) SampleCount() int {
	if im.Samples == 0 {
		return 1
	}
	return int(im.Samples)
}

var formatNames = map[vk.Format]string{
	vk.FormatUndefined:          "VK_FORMAT_UNDEFINED",
	vk.FormatR8g8b8a8Unorm:      "VK_FORMAT_R8G8B8A8_UNORM",
	vk.FormatR8g8b8a8Srgb:       "VK_FORMAT_R8G8B8A8_SRGB",
	vk.FormatB8g8r8a8Unorm:      "VK_FORMAT_B8G8R8A8_UNORM",
	vk.FormatB8g8r8a8Srgb:       "VK_FORMAT_B8G8R8A8_SRGB",
	vk.FormatR16g16b16a16Sfloat: "VK_FORMAT_R16G16B16A16_SFLOAT",
	vk.FormatR32g32b32a32Sfloat: "VK_FORMAT_R32G32B32A32_SFLOAT",
	vk.FormatD32Sfloat:          "VK_FORMAT_D32_SFLOAT",
}

// FormatName returns the Vulkan enumerant name of the given format.
func FormatName(f vk.Format) string {
	if nm, ok := formatNames[f]; ok {
		return nm
	}
	return fmt.Sprintf("VkFormat(%d)", int32(f))
}

// usageBits is in Vulkan bit order so names come out in a stable order.
var usageBits = []struct {
	bit  vk.ImageUsageFlagBits
	name string
}{
	{vk.ImageUsageTransferSrcBit, "VK_IMAGE_USAGE_TRANSFER_SRC_BIT"},
	{vk.ImageUsageTransferDstBit, "VK_IMAGE_USAGE_TRANSFER_DST_BIT"},
	{vk.ImageUsageSampledBit, "VK_IMAGE_USAGE_SAMPLED_BIT"},
	{vk.ImageUsageStorageBit, "VK_IMAGE_USAGE_STORAGE_BIT"},
	{vk.ImageUsageColorAttachmentBit, "VK_IMAGE_USAGE_COLOR_ATTACHMENT_BIT"},
	{vk.ImageUsageDepthStencilAttachmentBit, "VK_IMAGE_USAGE_DEPTH_STENCIL_ATTACHMENT_BIT"},
	{vk.ImageUsageTransientAttachmentBit, "VK_IMAGE_USAGE_TRANSIENT_ATTACHMENT_BIT"},
	{vk.ImageUsageInputAttachmentBit, "VK_IMAGE_USAGE_INPUT_ATTACHMENT_BIT"},
}

// UsageNames returns the names of all usage bits set in the given flags.
func UsageNames(flags vk.ImageUsageFlags) []string {
	var names []string
	for _, ub := range usageBits {
		if flags&vk.ImageUsageFlags(ub.bit) != 0 {
			names = append(names, ub.name)
		}
	}
	return names
}

// UsageString returns UsageNames joined with "|".
func UsageString(flags vk.ImageUsageFlags) string {
	return strings.Join(UsageNames(flags), "|")
}

var layoutNames = map[vk.ImageLayout]string{
	vk.ImageLayoutUndefined:              "UNDEFINED",
	vk.ImageLayoutGeneral:                "GENERAL",
	vk.ImageLayoutColorAttachmentOptimal: "COLOR_ATTACHMENT_OPTIMAL",
	vk.ImageLayoutShaderReadOnlyOptimal:  "SHADER_READ_ONLY_OPTIMAL",
	vk.ImageLayoutTransferSrcOptimal:     "TRANSFER_SRC_OPTIMAL",
	vk.ImageLayoutTransferDstOptimal:     "TRANSFER_DST_OPTIMAL",
	vk.ImageLayoutPresentSrc:             "PRESENT_SRC_KHR",
}

// LayoutName returns a short name for the given image layout.
func LayoutName(l vk.ImageLayout) string {
	if nm, ok := layoutNames[l]; ok {
		return nm
	}
	return fmt.Sprintf("VkImageLayout(%d)", int32(l))
}
