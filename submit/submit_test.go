// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package submit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"unsafe"

	"cogentcore.org/vr/eyes"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/gpu/gputest"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/stereo"
	"cogentcore.org/vr/tracking"
	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	eye    tracking.Eye
	tex    Texture
	bounds Bounds
}

// recorder returns a compositor that records its calls and answers
// with result.
func recorder(calls *[]call, result func(eye tracking.Eye) Error) Compositor {
	return CompositorFunc(func(eye tracking.Eye, tex *Texture, bounds *Bounds) Error {
		*calls = append(*calls, call{eye, *tex, *bounds})
		if result == nil {
			return None
		}
		return result(eye)
	})
}

func testContext() *gpu.Context {
	var dev vk.Device
	return &gpu.Context{
		Device:      vk.Device(unsafe.Add(unsafe.Pointer(dev), 0x42)),
		QueueFamily: 3,
	}
}

// extracted returns an extractor whose textures hold one extracted frame.
func extracted(t *testing.T, mode eyes.Modes) *eyes.Extractor {
	t.Helper()
	sm := tracking.NewSim()
	dev, err := tracking.NewDevice(sm)
	require.NoError(t, err)
	gd := gputest.NewDevice()
	var opts stereo.Options
	opts.Defaults()
	rig, err := stereo.Setup(scene.NewScene(), dev, gd, &opts)
	require.NoError(t, err)
	ex, err := eyes.NewExtractor(rig, mode, gd)
	require.NoError(t, err)
	gd.SetLayout(rig.Camera.Resolve, vk.ImageLayoutGeneral)
	require.True(t, ex.Extract(gd, rig.Camera))
	return ex
}

func TestSplitSubmission(t *testing.T) {
	ex := extracted(t, eyes.Split)
	cx := testContext()
	var calls []call
	sb := NewSubmitter(recorder(&calls, nil), cx)

	res := sb.Frame(ex)
	assert.Equal(t, [tracking.EyesN]Error{None, None}, res)
	require.Len(t, calls, 2)
	for i, c := range calls {
		im := ex.Textures()[i]
		assert.Equal(t, tracking.Eye(i), c.eye)
		assert.Equal(t, im.Handle(), c.tex.Handle)
		assert.Equal(t, uint32(1234), c.tex.Width)
		assert.Equal(t, uint32(1360), c.tex.Height)
		assert.Equal(t, vk.FormatR8g8b8a8Srgb, c.tex.Format)
		assert.Equal(t, uint32(1), c.tex.SampleCount)
		assert.Equal(t, cx.Device, c.tex.Device)
		assert.Equal(t, uint32(3), c.tex.QueueFamily)
		assert.Equal(t, FullBounds(), c.bounds)
	}
	assert.NotEqual(t, calls[0].tex.Handle, calls[1].tex.Handle)
	assert.Equal(t, 1, sb.Stats.Frames)
	assert.Equal(t, 2, sb.Stats.Classes[Ok])
	assert.Zero(t, sb.Stats.Failed())
}

func TestMirrorSubmission(t *testing.T) {
	ex := extracted(t, eyes.Mirror)
	var calls []call
	sb := NewSubmitter(recorder(&calls, nil), testContext())

	sb.Frame(ex)
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0].tex, calls[1].tex, "the same texture goes to both eyes")
	assert.Equal(t, uint32(2468), calls[0].tex.Width)
	assert.Equal(t, uint32(1360), calls[0].tex.Height)
	assert.Equal(t, Bounds{UMin: 0, UMax: 0.5, VMin: 0, VMax: 1}, calls[0].bounds)
	assert.Equal(t, Bounds{UMin: 0.5, UMax: 1, VMin: 0, VMax: 1}, calls[1].bounds)
	assert.Equal(t, tracking.Left, calls[0].eye)
	assert.Equal(t, tracking.Right, calls[1].eye)
}

func TestUnsupportedFormatLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ex := extracted(t, eyes.Split)
	vl := &Validator{Formats: []vk.Format{vk.FormatB8g8r8a8Unorm}}
	sb := NewSubmitter(vl, testContext())

	res := sb.Frame(ex)
	assert.Equal(t, [tracking.EyesN]Error{TextureUsesUnsupportedFormat, TextureUsesUnsupportedFormat}, res)
	assert.Equal(t, 2, sb.Stats.Classes[UnsupportedFormat])
	assert.Equal(t, TextureUsesUnsupportedFormat, sb.Stats.LastError)
	assert.Zero(t, vl.Accepted)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "compositor: unsupported texture format"))
	assert.Contains(t, out, "VK_FORMAT_R8G8B8A8_SRGB")
	for _, nm := range []string{
		"VK_IMAGE_USAGE_TRANSFER_SRC_BIT",
		"VK_IMAGE_USAGE_TRANSFER_DST_BIT",
		"VK_IMAGE_USAGE_SAMPLED_BIT",
		"VK_IMAGE_USAGE_COLOR_ATTACHMENT_BIT",
	} {
		assert.Contains(t, out, nm)
	}
	assert.Contains(t, out, "usage="+gpu.UsageString(eyes.TextureUsage))
	assert.Contains(t, out, "mips=1")
	assert.Contains(t, out, "samples=1")

	// the next frame still goes through
	sb.Compositor = &Validator{}
	assert.Equal(t, [tracking.EyesN]Error{None, None}, sb.Frame(ex))
}

func TestRightEyeErrorChecked(t *testing.T) {
	ex := extracted(t, eyes.Split)
	var calls []call
	sb := NewSubmitter(recorder(&calls, func(eye tracking.Eye) Error {
		if eye == tracking.Right {
			return RequestFailed
		}
		return None
	}), testContext())

	res := sb.Frame(ex)
	assert.Equal(t, None, res[tracking.Left])
	assert.Equal(t, RequestFailed, res[tracking.Right])
	assert.Equal(t, 1, sb.Stats.Failed())
	assert.Equal(t, 1, sb.Stats.Classes[Generic])
	assert.Len(t, calls, 2, "never retried")
}

func TestNotReadySkipped(t *testing.T) {
	sm := tracking.NewSim()
	dev, err := tracking.NewDevice(sm)
	require.NoError(t, err)
	gd := gputest.NewDevice()
	var opts stereo.Options
	opts.Defaults()
	rig, err := stereo.Setup(scene.NewScene(), dev, gd, &opts)
	require.NoError(t, err)
	ex, err := eyes.NewExtractor(rig, eyes.Split, gd)
	require.NoError(t, err)

	var calls []call
	sb := NewSubmitter(recorder(&calls, nil), testContext())
	sb.Frame(ex)
	assert.Empty(t, calls)
	assert.Equal(t, 1, sb.Stats.Skipped)
	assert.Zero(t, sb.Stats.Frames)
}

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		err   Error
		class Classes
	}{
		{None, Ok},
		{TextureUsesUnsupportedFormat, UnsupportedFormat},
		{InvalidTexture, BadTexture},
		{TextureIsOnWrongDevice, BadTexture},
		{InvalidBounds, BadTexture},
		{DoNotHaveFocus, NoFocus},
		{IsNotSceneApplication, NoFocus},
		{RequestFailed, Generic},
		{AlreadySubmitted, Generic},
		{Error(999), Generic},
	}
	for _, test := range tests {
		assert.Equal(t, test.class, test.err.Class(), test.err.String())
	}
	assert.Equal(t, "TextureUsesUnsupportedFormat", TextureUsesUnsupportedFormat.String())
	assert.Equal(t, "Error(999)", Error(999).String())
	assert.EqualError(t, DoNotHaveFocus, "compositor error: DoNotHaveFocus")
	assert.Equal(t, "unsupported format", UnsupportedFormat.String())
}

func TestValidator(t *testing.T) {
	cx := testContext()
	good := Texture{Handle: 0x100, Device: cx.Device, Width: 8, Height: 8, Format: vk.FormatR8g8b8a8Srgb, SampleCount: 1}
	full := FullBounds()

	vl := &Validator{Device: cx.Device}
	assert.Equal(t, None, vl.Submit(tracking.Left, &good, &full))
	assert.Equal(t, None, vl.Submit(tracking.Right, &good, nil))
	assert.Equal(t, 2, vl.Accepted)
	assert.Equal(t, good, vl.Last[tracking.Right])

	assert.Equal(t, IndexOutOfRange, vl.Submit(tracking.EyesN, &good, &full))

	bad := good
	bad.Handle = 0
	assert.Equal(t, InvalidTexture, vl.Submit(tracking.Left, &bad, &full))

	bad = good
	bad.SampleCount = 4
	assert.Equal(t, InvalidTexture, vl.Submit(tracking.Left, &bad, &full))

	bad = good
	bad.Device = nil
	assert.Equal(t, TextureIsOnWrongDevice, vl.Submit(tracking.Left, &bad, &full))

	bad = good
	bad.Format = vk.FormatD32Sfloat
	assert.Equal(t, TextureUsesUnsupportedFormat, vl.Submit(tracking.Left, &bad, &full))

	inverted := Bounds{UMin: 0.5, UMax: 0.25, VMin: 0, VMax: 1}
	assert.Equal(t, InvalidBounds, vl.Submit(tracking.Left, &good, &inverted))

	vl.Unfocused = true
	assert.Equal(t, DoNotHaveFocus, vl.Submit(tracking.Left, &good, &full))
	assert.Equal(t, 2, vl.Accepted)
}

func TestHalfBounds(t *testing.T) {
	l, r := HalfBounds(0), HalfBounds(1)
	assert.True(t, l.IsValid())
	assert.True(t, r.IsValid())
	assert.Equal(t, l.UMax, r.UMin, "halves meet")
}
