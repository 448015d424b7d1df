// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/gpu/gputest"
	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestExtensions(t *testing.T) {
	var cx gpu.Context
	cx.RequestInstanceExtension("VK_KHR_surface", "VK_KHR_get_physical_device_properties2\x00")
	cx.RequestInstanceExtension("VK_KHR_get_physical_device_properties2", "", "VK_KHR_surface")
	assert.Equal(t, []string{"VK_KHR_surface", "VK_KHR_get_physical_device_properties2"}, cx.InstanceExts)

	cx.RequestDeviceExtension("VK_KHR_swapchain", "VK_KHR_swapchain")
	assert.Equal(t, []string{"VK_KHR_swapchain"}, cx.DeviceExts)
}

func TestCheckExtensions(t *testing.T) {
	avail := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	assert.NoError(t, gpu.CheckExtensions("device", []string{"VK_KHR_swapchain"}, avail))
	assert.NoError(t, gpu.CheckExtensions("device", nil, avail))

	err := gpu.CheckExtensions("device", []string{"VK_KHR_swapchain", "VK_KHR_external_memory", "VK_KHR_dedicated_allocation"}, avail)
	require.ErrorIs(t, err, gpu.ErrExtensionUnavailable)
	assert.Contains(t, err.Error(), "VK_KHR_external_memory, VK_KHR_dedicated_allocation")
	assert.NotContains(t, err.Error(), "VK_KHR_swapchain")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "VK_FORMAT_R8G8B8A8_SRGB", gpu.FormatName(vk.FormatR8g8b8a8Srgb))
	assert.Equal(t, "VkFormat(1000)", gpu.FormatName(vk.Format(1000)))

	usage := vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferSrcBit | vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit)
	assert.Equal(t, []string{
		"VK_IMAGE_USAGE_TRANSFER_SRC_BIT",
		"VK_IMAGE_USAGE_TRANSFER_DST_BIT",
		"VK_IMAGE_USAGE_SAMPLED_BIT",
		"VK_IMAGE_USAGE_COLOR_ATTACHMENT_BIT",
	}, gpu.UsageNames(usage))
	assert.Empty(t, gpu.UsageNames(0))
	assert.Equal(t, "VK_IMAGE_USAGE_TRANSFER_SRC_BIT|VK_IMAGE_USAGE_TRANSFER_DST_BIT|VK_IMAGE_USAGE_SAMPLED_BIT|VK_IMAGE_USAGE_COLOR_ATTACHMENT_BIT", gpu.UsageString(usage))
	assert.Equal(t, "GENERAL", gpu.LayoutName(vk.ImageLayoutGeneral))
}

func TestImageFormat(t *testing.T) {
	f := gpu.NewImageFormat(2468, 1360)
	assert.Equal(t, vk.FormatR8g8b8a8Srgb, f.Format)
	assert.Equal(t, 1, f.SampleCount())
	assert.Equal(t, 1, f.Mips)
	assert.Equal(t, vk.Extent3D{Width: 2468, Height: 1360, Depth: 1}, f.Extent3D())

	im := gpu.NewImage("resolve", f, vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit))
	assert.NotEqual(t, im.ID, gpu.NewImage("resolve", f, 0).ID)
	assert.False(t, im.IsActive())
	assert.True(t, im.ContainsRegion(1234, 0, vk.Extent3D{Width: 1234, Height: 1360, Depth: 1}))
	assert.False(t, im.ContainsRegion(1235, 0, vk.Extent3D{Width: 1234, Height: 1360, Depth: 1}))
	assert.False(t, im.ContainsRegion(-1, 0, vk.Extent3D{Width: 1, Height: 1, Depth: 1}))
}

func TestBarrierBatch(t *testing.T) {
	dev := gputest.NewDevice()
	a := gpu.NewImage("a", gpu.NewImageFormat(4, 4), 0)
	b := gpu.NewImage("b", gpu.NewImageFormat(4, 4), 0)
	require.NoError(t, dev.AllocImage(a))
	require.NoError(t, dev.AllocImage(b))
	dev.SetLayout(a, vk.ImageLayoutGeneral)

	var bb gpu.BarrierBatch
	bb.Record(dev)
	assert.Empty(t, dev.Barriers, "empty batch records nothing")

	bb.Add(a, vk.ImageLayoutTransferSrcOptimal)
	bb.AddDiscard(b, vk.ImageLayoutTransferDstOptimal)
	bb.Add(a, vk.ImageLayoutTransferSrcOptimal)
	assert.Equal(t, 3, bb.Len())
	assert.Equal(t, vk.ImageLayoutGeneral, a.Layout, "layout is committed on record")

	bb.Reset()
	bb.Add(a, vk.ImageLayoutTransferSrcOptimal)
	bb.AddDiscard(b, vk.ImageLayoutTransferDstOptimal)
	bb.Record(dev)
	require.Len(t, dev.Barriers, 1)
	call := dev.Barriers[0]
	require.Len(t, call.Barriers, 2)
	assert.Equal(t, vk.ImageLayoutGeneral, call.Barriers[0].OldLayout)
	assert.Equal(t, vk.ImageLayoutUndefined, call.Barriers[1].OldLayout)
	assert.Equal(t, vk.AccessFlags(vk.AccessColorAttachmentWriteBit|vk.AccessTransferWriteBit|vk.AccessShaderWriteBit), call.Barriers[0].SrcAccessMask)
	assert.Equal(t, vk.AccessFlags(0), call.Barriers[1].SrcAccessMask)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit|vk.PipelineStageTransferBit|vk.PipelineStageComputeShaderBit|vk.PipelineStageTopOfPipeBit), call.SrcStage)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageTransferBit), call.DstStage)
	assert.Equal(t, vk.ImageLayoutTransferSrcOptimal, a.Layout)
	assert.Equal(t, vk.ImageLayoutTransferDstOptimal, b.Layout)
	assert.Equal(t, 0, bb.Len())
	assert.Empty(t, dev.Violations)

	bb.Add(a, vk.ImageLayoutTransferSrcOptimal)
	assert.Equal(t, 0, bb.Len(), "no transition to the current layout")
}

func TestCopyOutOfBounds(t *testing.T) {
	dev := gputest.NewDevice()
	src := gpu.NewImage("src", gpu.NewImageFormat(4, 2), 0)
	dst := gpu.NewImage("dst", gpu.NewImageFormat(2, 2), 0)
	require.NoError(t, dev.AllocImage(src))
	require.NoError(t, dev.AllocImage(dst))
	dev.SetLayout(src, vk.ImageLayoutTransferSrcOptimal)
	dev.SetLayout(dst, vk.ImageLayoutTransferDstOptimal)

	dev.CopyImage(src, dst, []vk.ImageCopy{{
		SrcSubresource: src.SubresourceLayers(),
		DstSubresource: dst.SubresourceLayers(),
		Extent:         vk.Extent3D{Width: 4, Height: 2, Depth: 1},
	}})
	assert.Len(t, dev.Violations, 1)

	dev.FreeImage(src)
	dev.FreeImage(dst)
	assert.Equal(t, 0, dev.Live())
	assert.Equal(t, 2, dev.Frees)
}

func TestGeneralScopes(t *testing.T) {
	im := gpu.NewImage("res", gpu.NewImageFormat(4, 4), 0)

	// leaving General waits for clears and shader writes, not just attachments
	b, src, _ := gpu.Transition(im, vk.ImageLayoutGeneral, vk.ImageLayoutTransferSrcOptimal)
	for _, acc := range []vk.AccessFlagBits{vk.AccessColorAttachmentWriteBit, vk.AccessTransferWriteBit, vk.AccessShaderWriteBit} {
		assert.NotZero(t, b.SrcAccessMask&vk.AccessFlags(acc), "src access %#x", acc)
	}
	for _, st := range []vk.PipelineStageFlagBits{vk.PipelineStageColorAttachmentOutputBit, vk.PipelineStageTransferBit, vk.PipelineStageComputeShaderBit} {
		assert.NotZero(t, src&vk.PipelineStageFlags(st), "src stage %#x", st)
	}

	// entering General blocks transfers as well as attachments
	b, _, dst := gpu.Transition(im, vk.ImageLayoutUndefined, vk.ImageLayoutGeneral)
	assert.NotZero(t, dst&vk.PipelineStageFlags(vk.PipelineStageTransferBit))
	assert.NotZero(t, b.DstAccessMask&vk.AccessFlags(vk.AccessTransferWriteBit))

	// attachment-only layouts keep the narrow scope
	b, src, _ = gpu.Transition(im, vk.ImageLayoutColorAttachmentOptimal, vk.ImageLayoutTransferSrcOptimal)
	assert.Equal(t, vk.AccessFlags(vk.AccessColorAttachmentWriteBit), b.SrcAccessMask)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit), src)
}
