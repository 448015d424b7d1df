// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a CPU model of a vulkan device for testing
// code that records image barriers and copies. It implements both
// [gpu.Allocator] and [gpu.Recorder].
package gputest

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"unsafe"

	"cogentcore.org/vr/gpu"
	vk "github.com/goki/vulkan"
)

// Discarded is the color written into an image whose contents are
// discarded by a transition from the Undefined layout.
var Discarded = color.RGBA{255, 0, 255, 255}

// BarrierCall records one PipelineBarrier call.
type BarrierCall struct {
	SrcStage vk.PipelineStageFlags
	DstStage vk.PipelineStageFlags
	Barriers []vk.ImageMemoryBarrier
}

// CopyCall records one CopyImage call.
type CopyCall struct {
	Src       *gpu.Image
	Dst       *gpu.Image
	SrcLayout vk.ImageLayout
	DstLayout vk.ImageLayout
	Regions   []vk.ImageCopy
}

// ClearCall records one ClearColorImage call.
type ClearCall struct {
	Image  *gpu.Image
	Layout vk.ImageLayout
	Color  color.RGBA
}

// Device is a fake device that forges image handles, keeps an RGBA
// pixel buffer per image, and tracks the layout each image is in on
// the simulated GPU timeline. Commands execute immediately.
type Device struct {
	// all barrier calls in order
	Barriers []BarrierCall

	// all copy calls in order
	Copies []CopyCall

	// all clear calls in order
	Clears []ClearCall

	// descriptions of every command that used an image in a layout
	// other than the one it was actually in
	Violations []string

	// number of images allocated and freed
	Allocs, Frees int

	// if set, AllocImage returns this error
	AllocErr error

	images  map[vk.Image]*gpu.Image
	pixels  map[vk.Image]*image.RGBA
	layouts map[vk.Image]vk.ImageLayout
	next    uintptr
}

// NewDevice returns a new empty fake device.
func NewDevice() *Device {
	return &Device{
		images:  map[vk.Image]*gpu.Image{},
		pixels:  map[vk.Image]*image.RGBA{},
		layouts: map[vk.Image]vk.ImageLayout{},
	}
}

// AllocImage forges a handle for im and allocates its pixels.
func (d *Device) AllocImage(im *gpu.Image) error {
	if d.AllocErr != nil {
		return d.AllocErr
	}
	d.next += 0x100
	var h vk.Image
	h = vk.Image(unsafe.Add(unsafe.Pointer(h), d.next))
	im.Image = h
	im.Layout = vk.ImageLayoutUndefined
	d.images[h] = im
	d.pixels[h] = image.NewRGBA(image.Rect(0, 0, im.Format.Size.X, im.Format.Size.Y))
	d.layouts[h] = vk.ImageLayoutUndefined
	d.Allocs++
	return nil
}

func (d *Device) FreeImage(im *gpu.Image) {
	if !im.IsActive() {
		return
	}
	delete(d.images, im.Image)
	delete(d.pixels, im.Image)
	delete(d.layouts, im.Image)
	im.Image = nil
	im.Layout = vk.ImageLayoutUndefined
	d.Frees++
}

// Live returns the number of allocated images not yet freed.
func (d *Device) Live() int {
	return len(d.images)
}

// SetLayout sets both the simulated and recorded layout of im,
// as if a render pass had left it there.
func (d *Device) SetLayout(im *gpu.Image, l vk.ImageLayout) {
	d.layouts[im.Image] = l
	im.Layout = l
}

// Layout returns the simulated layout of im.
func (d *Device) Layout(im *gpu.Image) vk.ImageLayout {
	return d.layouts[im.Image]
}

// Pixels returns the pixel buffer of im.
func (d *Device) Pixels(im *gpu.Image) *image.RGBA {
	return d.pixels[im.Image]
}

// Fill sets every pixel of im using fn, as if it had been rendered.
func (d *Device) Fill(im *gpu.Image, fn func(x, y int) color.RGBA) {
	px := d.pixels[im.Image]
	if px == nil {
		return
	}
	b := px.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px.SetRGBA(x, y, fn(x, y))
		}
	}
}

// ResetCalls clears the recorded calls and violations.
func (d *Device) ResetCalls() {
	d.Barriers = nil
	d.Copies = nil
	d.Clears = nil
	d.Violations = nil
}

func (d *Device) violation(format string, args ...any) {
	d.Violations = append(d.Violations, fmt.Sprintf(format, args...))
}

func (d *Device) name(h vk.Image) string {
	if im, ok := d.images[h]; ok {
		return im.Name
	}
	return fmt.Sprintf("image(%#x)", uintptr(unsafe.Pointer(h)))
}

func (d *Device) PipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, barriers []vk.ImageMemoryBarrier) {
	d.Barriers = append(d.Barriers, BarrierCall{
		SrcStage: srcStage,
		DstStage: dstStage,
		Barriers: slices.Clone(barriers),
	})
	for _, b := range barriers {
		cur, ok := d.layouts[b.Image]
		if !ok {
			d.violation("barrier on unknown %s", d.name(b.Image))
			continue
		}
		if b.OldLayout == vk.ImageLayoutUndefined {
			draw(d.pixels[b.Image], Discarded)
		} else if b.OldLayout != cur {
			d.violation("barrier on %s from %s but image is in %s", d.name(b.Image), gpu.LayoutName(b.OldLayout), gpu.LayoutName(cur))
		}
		d.layouts[b.Image] = b.NewLayout
	}
}

func (d *Device) CopyImage(src, dst *gpu.Image, regions []vk.ImageCopy) {
	d.Copies = append(d.Copies, CopyCall{
		Src:       src,
		Dst:       dst,
		SrcLayout: src.Layout,
		DstLayout: dst.Layout,
		Regions:   slices.Clone(regions),
	})
	if cur := d.layouts[src.Image]; cur != src.Layout || (cur != vk.ImageLayoutTransferSrcOptimal && cur != vk.ImageLayoutGeneral) {
		d.violation("copy from %s in %s, recorded as %s", src.Name, gpu.LayoutName(cur), gpu.LayoutName(src.Layout))
	}
	if cur := d.layouts[dst.Image]; cur != dst.Layout || (cur != vk.ImageLayoutTransferDstOptimal && cur != vk.ImageLayoutGeneral) {
		d.violation("copy to %s in %s, recorded as %s", dst.Name, gpu.LayoutName(cur), gpu.LayoutName(dst.Layout))
	}
	sp := d.pixels[src.Image]
	dp := d.pixels[dst.Image]
	if sp == nil || dp == nil {
		d.violation("copy between unallocated images %s -> %s", src.Name, dst.Name)
		return
	}
	for _, r := range regions {
		if !src.ContainsRegion(r.SrcOffset.X, r.SrcOffset.Y, r.Extent) || !dst.ContainsRegion(r.DstOffset.X, r.DstOffset.Y, r.Extent) {
			d.violation("copy region %+v out of bounds for %s -> %s", r, src.Name, dst.Name)
			continue
		}
		for y := 0; y < int(r.Extent.Height); y++ {
			for x := 0; x < int(r.Extent.Width); x++ {
				c := sp.RGBAAt(int(r.SrcOffset.X)+x, int(r.SrcOffset.Y)+y)
				dp.SetRGBA(int(r.DstOffset.X)+x, int(r.DstOffset.Y)+y, c)
			}
		}
	}
}

func (d *Device) ClearColorImage(im *gpu.Image, c color.RGBA) {
	d.Clears = append(d.Clears, ClearCall{Image: im, Layout: im.Layout, Color: c})
	if cur := d.layouts[im.Image]; cur != im.Layout || (cur != vk.ImageLayoutTransferDstOptimal && cur != vk.ImageLayoutGeneral) {
		d.violation("clear of %s in %s, recorded as %s", im.Name, gpu.LayoutName(cur), gpu.LayoutName(im.Layout))
	}
	draw(d.pixels[im.Image], c)
}

func draw(px *image.RGBA, c color.RGBA) {
	if px == nil {
		return
	}
	for i := 0; i < len(px.Pix); i += 4 {
		px.Pix[i], px.Pix[i+1], px.Pix[i+2], px.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}
