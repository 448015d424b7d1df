// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package submit hands the eye textures to the compositor each frame
// and reports what the compositor thought of them.
package submit

import (
	"log/slog"

	"cogentcore.org/vr/eyes"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/tracking"
	vk "github.com/goki/vulkan"
)

// Compositor accepts one eye image per call.
type Compositor interface {
	Submit(eye tracking.Eye, tex *Texture, bounds *Bounds) Error
}

// CompositorFunc is a function that implements [Compositor].
type CompositorFunc func(eye tracking.Eye, tex *Texture, bounds *Bounds) Error

func (fn CompositorFunc) Submit(eye tracking.Eye, tex *Texture, bounds *Bounds) Error {
	return fn(eye, tex, bounds)
}

// Stats counts submission outcomes.
type Stats struct {
	// frames submitted
	Frames int

	// eye submissions by outcome class
	Classes [ClassesN]int

	// frames skipped because the textures were not ready
	Skipped int

	// the last failure, None if there was none yet
	LastError Error
}

// Failed returns the total number of failed eye submissions.
func (st *Stats) Failed() int {
	n := 0
	for c := Ok + 1; c < ClassesN; c++ {
		n += st.Classes[c]
	}
	return n
}

// Submitter submits the textures of an [eyes.Extractor].
type Submitter struct {
	Compositor Compositor
	Ctx        *gpu.Context
	Stats      Stats
}

// NewSubmitter returns a Submitter for the device in cx.
func NewSubmitter(comp Compositor, cx *gpu.Context) *Submitter {
	return &Submitter{Compositor: comp, Ctx: cx}
}

// Frame submits both eyes from the extractor's textures, in its mode:
// Split submits each texture with full bounds, Mirror submits the one
// texture twice with each eye's half. Failures are logged and counted
// but never retried. It returns the result for each eye.
func (sb *Submitter) Frame(ex *eyes.Extractor) [tracking.EyesN]Error {
	var res [tracking.EyesN]Error
	texs := ex.Textures()
	if !ready(texs) {
		sb.Stats.Skipped++
		slog.Debug("eye textures not ready, skipping submission", "frame", ex.Frames)
		return res
	}
	sb.Stats.Frames++
	for _, eye := range tracking.Eyes {
		im := texs[0]
		var bd Bounds
		if ex.Mode == eyes.Mirror {
			bd = HalfBounds(int(eye))
		} else {
			im = texs[eye]
			bd = FullBounds()
		}
		tx := NewTexture(sb.Ctx, im)
		res[eye] = sb.Compositor.Submit(eye, &tx, &bd)
		sb.report(eye, im, res[eye])
	}
	return res
}

func ready(texs []*gpu.Image) bool {
	if len(texs) == 0 {
		return false
	}
	for _, im := range texs {
		if !im.IsActive() || im.Layout != vk.ImageLayoutTransferSrcOptimal {
			return false
		}
	}
	return true
}

func (sb *Submitter) report(eye tracking.Eye, im *gpu.Image, e Error) {
	cls := e.Class()
	sb.Stats.Classes[cls]++
	if cls == Ok {
		return
	}
	sb.Stats.LastError = e
	args := []any{"eye", eye, "error", e, "code", int32(e), "texture", im.Name,
		"format", gpu.FormatName(im.Format.Format), "usage", gpu.UsageString(im.Usage),
		"mips", im.Format.Mips, "samples", im.Format.SampleCount(),
		"width", im.Width(), "height", im.Height()}
	switch cls {
	case UnsupportedFormat:
		slog.Error("compositor: unsupported texture format", args...)
	case BadTexture:
		slog.Error("compositor: invalid texture", args...)
	case NoFocus:
		slog.Warn("compositor: application does not have focus", args...)
	default:
		slog.Error("compositor: submission failed", args...)
	}
}
