// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"cogentcore.org/core/base/errors"
	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// A recording is a protobuf wire-format stream of length-delimited
// records, one top-level field per record kind:
//
//	1 header:     1 magic, 2 session id, 3 width, 4 height
//	2 eye:        1 eye, 2 packed 3x4 row-major fixed32
//	3 projection: 1 eye, 2 near, 3 far, 4 packed 4x4 row-major fixed32
//	4 pose:       1 valid, 2 packed 3x4 row-major fixed32
//	5 extensions: 1 kind (0 instance, 1 device), 2 repeated names
//
// Eye and projection records are written only when they change, and
// apply to all following poses.
const (
	recHeader     protowire.Number = 1
	recEye        protowire.Number = 2
	recProjection protowire.Number = 3
	recPose       protowire.Number = 4
	recExtensions protowire.Number = 5

	recordingMagic = "cogentcore.org/vr/pose-recording"
)

// ErrBadRecording is returned when a recording cannot be parsed.
var ErrBadRecording = errors.New("tracking: malformed pose recording")

// Recorder is a [Runtime] that passes every call through to another
// runtime and writes what it returns to a recording.
type Recorder struct {
	Runtime

	// Session uniquely identifies this recording.
	Session uuid.UUID

	w   io.Writer
	err error

	eyes  [EyesN][3][4]float32
	proj  [EyesN][4][4]float32
	hasEy [EyesN]bool
	hasPj [EyesN]bool
	poses int
}

// NewRecorder returns a Recorder wrapping rt that writes to w,
// and writes the recording header.
func NewRecorder(rt Runtime, w io.Writer) (*Recorder, error) {
	if rt == nil {
		return nil, ErrRuntimeUnavailable
	}
	rc := &Recorder{Runtime: rt, w: w, Session: uuid.Must(uuid.NewV7())}
	width, height := rt.RecommendedRenderTargetSize()
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, recordingMagic)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, rc.Session[:])
	b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, width)
	b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, height)
	rc.write(recHeader, b)
	rc.writeExtensions(0, rt.InstanceExtensionsRequired())
	return rc, rc.err
}

// Err returns the first write error, if any.
func (rc *Recorder) Err() error {
	return rc.err
}

// Poses returns the number of poses recorded.
func (rc *Recorder) Poses() int {
	return rc.poses
}

func (rc *Recorder) write(num protowire.Number, msg []byte) {
	if rc.err != nil {
		return
	}
	b := protowire.AppendTag(nil, num, protowire.BytesType)
	b = protowire.AppendBytes(b, msg)
	if _, err := rc.w.Write(b); err != nil {
		rc.err = errors.Log(fmt.Errorf("tracking: writing recording %s: %w", rc.Session, err))
	}
}

func (rc *Recorder) writeExtensions(kind uint64, names []string) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, kind)
	for _, nm := range names {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, nm)
	}
	rc.write(recExtensions, b)
}

func (rc *Recorder) EyeToHeadTransform(eye Eye) [3][4]float32 {
	m := rc.Runtime.EyeToHeadTransform(eye)
	if !rc.hasEy[eye] || rc.eyes[eye] != m {
		rc.eyes[eye], rc.hasEy[eye] = m, true
		var b []byte
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(eye))
		b = appendPacked(b, 2, m[0][:], m[1][:], m[2][:])
		rc.write(recEye, b)
	}
	return m
}

func (rc *Recorder) ProjectionMatrix(eye Eye, near, far float32) [4][4]float32 {
	m := rc.Runtime.ProjectionMatrix(eye, near, far)
	if !rc.hasPj[eye] || rc.proj[eye] != m {
		rc.proj[eye], rc.hasPj[eye] = m, true
		var b []byte
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(eye))
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(near))
		b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(far))
		b = appendPacked(b, 4, m[0][:], m[1][:], m[2][:], m[3][:])
		rc.write(recProjection, b)
	}
	return m
}

func (rc *Recorder) HeadPose() ([3][4]float32, bool) {
	m, valid := rc.Runtime.HeadPose()
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(valid))
	b = appendPacked(b, 2, m[0][:], m[1][:], m[2][:])
	rc.write(recPose, b)
	rc.poses++
	return m, valid
}

func (rc *Recorder) DeviceExtensionsRequired(pd vk.PhysicalDevice) []string {
	names := rc.Runtime.DeviceExtensionsRequired(pd)
	rc.writeExtensions(1, names)
	return names
}

// appendPacked appends the given rows as one packed fixed32 field.
func appendPacked(b []byte, num protowire.Number, rows ...[]float32) []byte {
	var buf []byte
	for _, row := range rows {
		for _, f := range row {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, buf)
}

func unpackFloats(b []byte, dst []float32) error {
	if len(b) != 4*len(dst) {
		return fmt.Errorf("%w: packed matrix has %d bytes, want %d", ErrBadRecording, len(b), 4*len(dst))
	}
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return nil
}
