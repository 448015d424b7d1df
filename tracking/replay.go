// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"fmt"
	"io"
	"slices"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

type replayRecord struct {
	kind  protowire.Number
	eye   Eye
	m34   [3][4]float32
	m44   [4][4]float32
	valid bool
}

// Replay is a [Runtime] that plays back a recording made by [Recorder].
// Each PollEvents advances to the next recorded pose. After the last
// pose, tracking is reported lost unless Loop is set.
type Replay struct {
	// Session of the recording
	Session uuid.UUID

	// restart from the first pose after the last one
	Loop bool

	width, height uint32
	instExts      []string
	devExts       []string

	records []replayRecord
	cur     int

	eyes  [EyesN][3][4]float32
	proj  [EyesN][4][4]float32
	pose  [3][4]float32
	valid bool
}

// NewReplay reads a whole recording from r.
func NewReplay(r io.Reader) (*Replay, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	rp := &Replay{}
	for i := range rp.eyes {
		rp.eyes[i] = [3][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}
	}
	gotHeader := false
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrBadRecording, protowire.ParseError(n))
		}
		data = data[n:]
		if typ != protowire.BytesType {
			return nil, fmt.Errorf("%w: record %d has wire type %d", ErrBadRecording, num, typ)
		}
		msg, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrBadRecording, protowire.ParseError(n))
		}
		data = data[n:]
		if !gotHeader && num != recHeader {
			return nil, fmt.Errorf("%w: missing header", ErrBadRecording)
		}
		if err := rp.parseRecord(num, msg); err != nil {
			return nil, err
		}
		gotHeader = true
	}
	if !gotHeader {
		return nil, fmt.Errorf("%w: empty recording", ErrBadRecording)
	}
	rp.applyUntilPose(false)
	return rp, nil
}

// walkFields walks the fields of one record, calling fn for each.
func walkFields(msg []byte, fn func(num protowire.Number, typ protowire.Type, val []byte, v uint64) error) error {
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrBadRecording, protowire.ParseError(n))
		}
		msg = msg[n:]
		var val []byte
		var v uint64
		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(msg)
		case protowire.Fixed32Type:
			var v32 uint32
			v32, n = protowire.ConsumeFixed32(msg)
			v = uint64(v32)
		case protowire.BytesType:
			val, n = protowire.ConsumeBytes(msg)
		default:
			n = protowire.ConsumeFieldValue(num, typ, msg)
		}
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrBadRecording, protowire.ParseError(n))
		}
		msg = msg[n:]
		if err := fn(num, typ, val, v); err != nil {
			return err
		}
	}
	return nil
}

func (rp *Replay) parseRecord(num protowire.Number, msg []byte) error {
	rec := replayRecord{kind: num}
	var flat [16]float32
	switch num {
	case recHeader:
		return walkFields(msg, func(f protowire.Number, _ protowire.Type, val []byte, v uint64) error {
			switch f {
			case 1:
				if string(val) != recordingMagic {
					return fmt.Errorf("%w: bad magic %q", ErrBadRecording, val)
				}
			case 2:
				id, err := uuid.FromBytes(val)
				if err != nil {
					return fmt.Errorf("%w: session: %w", ErrBadRecording, err)
				}
				rp.Session = id
			case 3:
				rp.width = uint32(v)
			case 4:
				rp.height = uint32(v)
			}
			return nil
		})
	case recExtensions:
		var kind uint64
		var names []string
		err := walkFields(msg, func(f protowire.Number, _ protowire.Type, val []byte, v uint64) error {
			switch f {
			case 1:
				kind = v
			case 2:
				names = append(names, string(val))
			}
			return nil
		})
		if kind == 0 {
			rp.instExts = names
		} else {
			rp.devExts = names
		}
		return err
	case recEye, recPose:
		err := walkFields(msg, func(f protowire.Number, _ protowire.Type, val []byte, v uint64) error {
			switch f {
			case 1:
				if num == recEye {
					rec.eye = Eye(v)
				} else {
					rec.valid = protowire.DecodeBool(v)
				}
			case 2:
				if err := unpackFloats(val, flat[:12]); err != nil {
					return err
				}
				for r := 0; r < 3; r++ {
					copy(rec.m34[r][:], flat[r*4:r*4+4])
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	case recProjection:
		err := walkFields(msg, func(f protowire.Number, _ protowire.Type, val []byte, v uint64) error {
			switch f {
			case 1:
				rec.eye = Eye(v)
			case 4:
				if err := unpackFloats(val, flat[:]); err != nil {
					return err
				}
				for r := 0; r < 4; r++ {
					copy(rec.m44[r][:], flat[r*4:r*4+4])
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	default:
		return nil
	}
	if rec.eye < 0 || rec.eye >= EyesN {
		return fmt.Errorf("%w: eye %d", ErrBadRecording, rec.eye)
	}
	rp.records = append(rp.records, rec)
	return nil
}

// applyUntilPose applies eye and projection records from the cursor
// up to the next pose, consuming that pose if takePose is set.
// It returns false if the recording is exhausted.
func (rp *Replay) applyUntilPose(takePose bool) bool {
	for rp.cur < len(rp.records) {
		rec := &rp.records[rp.cur]
		switch rec.kind {
		case recEye:
			rp.eyes[rec.eye] = rec.m34
		case recProjection:
			rp.proj[rec.eye] = rec.m44
		case recPose:
			if !takePose {
				return true
			}
			rp.pose, rp.valid = rec.m34, rec.valid
			rp.cur++
			return true
		}
		rp.cur++
	}
	return false
}

// Poses returns the number of poses in the recording.
func (rp *Replay) Poses() int {
	n := 0
	for _, rec := range rp.records {
		if rec.kind == recPose {
			n++
		}
	}
	return n
}

func (rp *Replay) RecommendedRenderTargetSize() (width, height uint32) {
	return rp.width, rp.height
}

func (rp *Replay) EyeToHeadTransform(eye Eye) [3][4]float32 {
	return rp.eyes[eye]
}

// ProjectionMatrix returns the recorded projection; near and far are
// those of the recording.
func (rp *Replay) ProjectionMatrix(eye Eye, near, far float32) [4][4]float32 {
	return rp.proj[eye]
}

func (rp *Replay) PollEvents() {
	if rp.applyUntilPose(true) {
		return
	}
	if rp.Loop && rp.Poses() > 0 {
		rp.cur = 0
		rp.applyUntilPose(true)
		return
	}
	rp.valid = false
}

func (rp *Replay) HeadPose() ([3][4]float32, bool) {
	return rp.pose, rp.valid
}

func (rp *Replay) InstanceExtensionsRequired() []string {
	return slices.Clone(rp.instExts)
}

func (rp *Replay) DeviceExtensionsRequired(pd vk.PhysicalDevice) []string {
	return slices.Clone(rp.devExts)
}
