// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eyes copies the rendered side-by-side stereo framebuffer into
// the per-eye textures handed to the compositor.
package eyes

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/stereo"
	vk "github.com/goki/vulkan"
)

// Modes are the ways the framebuffer is handed to the compositor.
type Modes int32

const (
	// Split copies each half of the framebuffer into its own eye texture.
	Split Modes = iota

	// Mirror copies the whole framebuffer into one texture that is
	// submitted for both eyes with half-width bounds.
	Mirror
)

func (md Modes) String() string {
	switch md {
	case Split:
		return "Split"
	case Mirror:
		return "Mirror"
	}
	return "Modes(?)"
}

// TextureUsage is the usage of every eye texture.
const TextureUsage = vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit | vk.ImageUsageColorAttachmentBit)

var (
	// ErrOddWidth is returned in Split mode when the framebuffer width
	// cannot be halved exactly.
	ErrOddWidth = errors.New("eyes: split mode needs an even framebuffer width")

	// ErrNoResolve is returned when the camera has no resolve target.
	ErrNoResolve = errors.New("eyes: camera has no resolve target")
)

// Extractor owns the eye textures and records the per-frame copy of
// the rig camera's resolve target into them.
type Extractor struct {
	Mode Modes
	Rig  *stereo.Rig

	// number of frames extracted
	Frames int

	alloc    gpu.Allocator
	textures []*gpu.Image
	regions  []vk.ImageCopy
	pre      gpu.BarrierBatch
	post     gpu.BarrierBatch
}

// NewExtractor creates the eye textures for the rig camera in the
// given mode: two half-width textures for Split, one full texture for
// Mirror. Copy regions are validated against the textures here, so
// Extract never records an out-of-bounds copy.
func NewExtractor(rig *stereo.Rig, mode Modes, alloc gpu.Allocator) (*Extractor, error) {
	cam := rig.Camera
	if cam.Resolve == nil {
		return nil, ErrNoResolve
	}
	w, h := cam.Resolve.Width(), cam.Resolve.Height()
	ex := &Extractor{Mode: mode, Rig: rig, alloc: alloc}
	var names []string
	var tw uint32
	switch mode {
	case Split:
		if w%2 != 0 {
			return nil, fmt.Errorf("%w: %d", ErrOddWidth, w)
		}
		tw = w / 2
		names = []string{"Left Eye Texture", "Right Eye Texture"}
	case Mirror:
		tw = w
		names = []string{"Eye Texture"}
	default:
		return nil, fmt.Errorf("eyes: unknown mode %v", mode)
	}

	ext := vk.Extent3D{Width: tw, Height: h, Depth: 1}
	for i, nm := range names {
		tex := gpu.NewImage(nm, gpu.NewImageFormat(int(tw), int(h)), TextureUsage)
		src := vk.Offset3D{X: int32(uint32(i) * tw)}
		if !cam.Resolve.ContainsRegion(src.X, src.Y, ext) || !tex.ContainsRegion(0, 0, ext) {
			return nil, fmt.Errorf("%w: %s from (%d,%d) size %dx%d", gpu.ErrExtentMismatch, nm, src.X, src.Y, tw, h)
		}
		if err := alloc.AllocImage(tex); err != nil {
			ex.Destroy()
			return nil, fmt.Errorf("eyes: %s: %w", nm, err)
		}
		ex.textures = append(ex.textures, tex)
		ex.regions = append(ex.regions, vk.ImageCopy{
			SrcSubresource: cam.Resolve.SubresourceLayers(),
			SrcOffset:      src,
			DstSubresource: tex.SubresourceLayers(),
			Extent:         ext,
		})
	}
	slog.Info("created eye textures", "mode", mode, "count", len(ex.textures), "width", tw, "height", h)
	return ex, nil
}

// Textures returns the eye textures: left then right in Split mode,
// the single shared texture in Mirror mode.
func (ex *Extractor) Textures() []*gpu.Image {
	return ex.textures
}

// Regions returns the copy region of each texture.
func (ex *Extractor) Regions() []vk.ImageCopy {
	return ex.regions
}

// Extract records the copy of the camera's resolve target into the eye
// textures. It does nothing and returns false unless cam is the rig
// camera. The resolve target goes General -> TransferSrc -> General
// and each texture Undefined -> TransferDst -> TransferSrc, with one
// pipeline barrier before the copies and one after.
func (ex *Extractor) Extract(rec gpu.Recorder, cam *stereo.Camera) bool {
	if !ex.Rig.IsRigCamera(cam) || len(ex.textures) == 0 {
		return false
	}
	res := cam.Resolve

	ex.pre.Add(res, vk.ImageLayoutTransferSrcOptimal)
	for _, tex := range ex.textures {
		ex.pre.AddDiscard(tex, vk.ImageLayoutTransferDstOptimal)
	}
	ex.pre.Record(rec)

	for i, tex := range ex.textures {
		rec.CopyImage(res, tex, ex.regions[i:i+1])
	}

	ex.post.Add(res, vk.ImageLayoutGeneral)
	for _, tex := range ex.textures {
		ex.post.Add(tex, vk.ImageLayoutTransferSrcOptimal)
	}
	ex.post.Record(rec)
	ex.Frames++
	return true
}

// Destroy frees the eye textures.
func (ex *Extractor) Destroy() {
	for _, tex := range ex.textures {
		ex.alloc.FreeImage(tex)
	}
	ex.textures = nil
	ex.regions = nil
}
