// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	vk "github.com/goki/vulkan"
)

// General images may be written by attachments, transfers
// such as clears, or compute shaders.
const (
	generalWrites = vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessTransferWriteBit | vk.AccessShaderWriteBit)
	generalReads  = vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessTransferReadBit | vk.AccessShaderReadBit)
	generalStages = vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageTransferBit | vk.PipelineStageComputeShaderBit)
)

// layoutAccess gives the access mask and pipeline stage that touch an
// image while it is in a given layout.
type layoutAccess struct {
	access vk.AccessFlags
	stage  vk.PipelineStageFlags
}

// srcAccess returns the accesses that must be complete before leaving
// the given layout.
func srcAccess(l vk.ImageLayout) layoutAccess {
	switch l {
	case vk.ImageLayoutUndefined:
		return layoutAccess{0, vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)}
	case vk.ImageLayoutGeneral:
		return layoutAccess{generalWrites, generalStages}
	case vk.ImageLayoutColorAttachmentOptimal:
		return layoutAccess{
			vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		}
	case vk.ImageLayoutTransferSrcOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessTransferReadBit), vk.PipelineStageFlags(vk.PipelineStageTransferBit)}
	case vk.ImageLayoutTransferDstOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessTransferWriteBit), vk.PipelineStageFlags(vk.PipelineStageTransferBit)}
	case vk.ImageLayoutShaderReadOnlyOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessShaderReadBit), vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)}
	case vk.ImageLayoutPresentSrc:
		return layoutAccess{0, vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)}
	}
	return layoutAccess{
		vk.AccessFlags(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit),
		vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
	}
}

// dstAccess returns the accesses that must wait for entry into the
// given layout.
func dstAccess(l vk.ImageLayout) layoutAccess {
	switch l {
	case vk.ImageLayoutGeneral:
		return layoutAccess{generalReads | generalWrites, generalStages}
	case vk.ImageLayoutColorAttachmentOptimal:
		return layoutAccess{
			vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		}
	case vk.ImageLayoutTransferSrcOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessTransferReadBit), vk.PipelineStageFlags(vk.PipelineStageTransferBit)}
	case vk.ImageLayoutTransferDstOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessTransferWriteBit), vk.PipelineStageFlags(vk.PipelineStageTransferBit)}
	case vk.ImageLayoutShaderReadOnlyOptimal:
		return layoutAccess{vk.AccessFlags(vk.AccessShaderReadBit), vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)}
	case vk.ImageLayoutPresentSrc:
		return layoutAccess{0, vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)}
	}
	return layoutAccess{
		vk.AccessFlags(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit),
		vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
	}
}

// Transition returns the image memory barrier moving im from oldLayout
// to newLayout, along with the source and destination stages it needs.
func Transition(im *Image, oldLayout, newLayout vk.ImageLayout) (vk.ImageMemoryBarrier, vk.PipelineStageFlags, vk.PipelineStageFlags) {
	src := srcAccess(oldLayout)
	dst := dstAccess(newLayout)
	b := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       src.access,
		DstAccessMask:       dst.access,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               im.Image,
		SubresourceRange:    im.SubresourceRange(),
	}
	return b, src.stage, dst.stage
}

// BarrierBatch accumulates layout transitions for several images so
// they are issued as a single pipeline barrier. Images keep their old
// Layout until the batch is recorded. A batch is reusable.
type BarrierBatch struct {
	barriers []vk.ImageMemoryBarrier
	images   []*Image
	srcStage vk.PipelineStageFlags
	dstStage vk.PipelineStageFlags
}

// Len returns the number of pending transitions.
func (bb *BarrierBatch) Len() int {
	return len(bb.barriers)
}

// Add queues a transition of im from its current layout to newLayout,
// preserving contents. Nothing is queued if im is already in newLayout.
func (bb *BarrierBatch) Add(im *Image, newLayout vk.ImageLayout) {
	if im.Layout == newLayout {
		return
	}
	bb.add(im, im.Layout, newLayout)
}

// AddDiscard queues a transition of im to newLayout from Undefined,
// discarding any previous contents.
func (bb *BarrierBatch) AddDiscard(im *Image, newLayout vk.ImageLayout) {
	bb.add(im, vk.ImageLayoutUndefined, newLayout)
}

func (bb *BarrierBatch) add(im *Image, oldLayout, newLayout vk.ImageLayout) {
	b, src, dst := Transition(im, oldLayout, newLayout)
	bb.barriers = append(bb.barriers, b)
	bb.images = append(bb.images, im)
	bb.srcStage |= src
	bb.dstStage |= dst
}

// Record issues all pending transitions as one pipeline barrier on rec,
// commits the new layouts to the images, and resets the batch.
// An empty batch records nothing.
func (bb *BarrierBatch) Record(rec Recorder) {
	if len(bb.barriers) == 0 {
		return
	}
	rec.PipelineBarrier(bb.srcStage, bb.dstStage, bb.barriers)
	for i, im := range bb.images {
		im.Layout = bb.barriers[i].NewLayout
	}
	bb.Reset()
}

// Reset drops all pending transitions without recording them.
func (bb *BarrierBatch) Reset() {
	bb.barriers = bb.barriers[:0]
	clear(bb.images)
	bb.images = bb.images[:0]
	bb.srcStage = 0
	bb.dstStage = 0
}
