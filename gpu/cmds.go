// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image/color"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Recorder records image commands into a command stream.
// [CmdBuffer] records into a real vulkan command buffer;
// gputest provides a recording fake.
type Recorder interface {
	// PipelineBarrier records one pipeline barrier holding all
	// given image memory barriers.
	PipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier)

	// CopyImage records a copy of the given regions from src to dst,
	// using the images' current layouts.
	CopyImage(src, dst *Image, regions []vk.ImageCopy)

	// ClearColorImage records a clear of all of im to c,
	// using its current layout.
	ClearColorImage(im *Image, c color.RGBA)
}

// CmdBuffer is a vulkan command buffer implementing [Recorder].
type CmdBuffer struct {
	Buff vk.CommandBuffer
}

func (cb *CmdBuffer) PipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	vk.CmdPipelineBarrier(cb.Buff, srcStage, dstStage, 0, 0, nil, 0, nil, uint32(len(barriers)), barriers)
}

func (cb *CmdBuffer) CopyImage(src, dst *Image, regions []vk.ImageCopy) {
	vk.CmdCopyImage(cb.Buff, src.Image, src.Layout, dst.Image, dst.Layout, uint32(len(regions)), regions)
}

func (cb *CmdBuffer) ClearColorImage(im *Image, c color.RGBA) {
	var cv vk.ClearColorValue
	fl := (*[4]float32)(unsafe.Pointer(&cv))
	fl[0] = float32(c.R) / 255
	fl[1] = float32(c.G) / 255
	fl[2] = float32(c.B) / 255
	fl[3] = float32(c.A) / 255
	rng := im.SubresourceRange()
	vk.CmdClearColorImage(cb.Buff, im.Image, im.Layout, &cv, 1, []vk.ImageSubresourceRange{rng})
}

// CmdPool is a command pool with a single resettable primary buffer
// and the fence guarding its reuse.
type CmdPool struct {
	Pool  vk.CommandPool
	Cmd   CmdBuffer
	Fence vk.Fence
}

// Init creates the pool, its buffer and fence on the context's queue family.
func (cp *CmdPool) Init(cx *Context) error {
	var pool vk.CommandPool
	ret := vk.CreateCommandPool(cx.Device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: cx.QueueFamily,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &pool)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: create command pool: %w", err)
	}
	cp.Pool = pool

	buffs := make([]vk.CommandBuffer, 1)
	ret = vk.AllocateCommandBuffers(cx.Device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        cp.Pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, buffs)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: allocate command buffer: %w", err)
	}
	cp.Cmd.Buff = buffs[0]

	var fence vk.Fence
	ret = vk.CreateFence(cx.Device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}, nil, &fence)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	cp.Fence = fence
	return nil
}

// Begin waits until the previous submission of the buffer has finished,
// then resets and begins it.
func (cp *CmdPool) Begin(cx *Context) (*CmdBuffer, error) {
	fences := []vk.Fence{cp.Fence}
	if err := NewError(vk.WaitForFences(cx.Device, 1, fences, vk.True, vk.MaxUint64)); err != nil {
		return nil, err
	}
	vk.ResetFences(cx.Device, 1, fences)
	vk.ResetCommandBuffer(cp.Cmd.Buff, 0)
	ret := vk.BeginCommandBuffer(cp.Cmd.Buff, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	})
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return &cp.Cmd, nil
}

// Submit ends the buffer and submits it to the context queue.
// It does not wait for completion.
func (cp *CmdPool) Submit(cx *Context) error {
	if err := NewError(vk.EndCommandBuffer(cp.Cmd.Buff)); err != nil {
		return err
	}
	ret := vk.QueueSubmit(cx.Queue, 1, []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cp.Cmd.Buff},
	}}, cp.Fence)
	return NewError(ret)
}

// Destroy destroys the fence and pool, freeing its buffer.
func (cp *CmdPool) Destroy(cx *Context) {
	if cp.Fence != nil {
		vk.DestroyFence(cx.Device, cp.Fence, nil)
		cp.Fence = nil
	}
	if cp.Pool == nil {
		return
	}
	vk.DestroyCommandPool(cx.Device, cp.Pool, nil)
	cp.Pool = nil
	cp.Cmd.Buff = nil
}
