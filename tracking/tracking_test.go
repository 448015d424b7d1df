// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"cogentcore.org/vr/mat32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDevice(t *testing.T) {
	_, err := NewDevice(nil)
	assert.ErrorIs(t, err, ErrRuntimeUnavailable)

	var dv *Device
	_, _, err = dv.RecommendedRenderSize()
	assert.ErrorIs(t, err, ErrRuntimeUnavailable)

	dv, err = NewDevice(NewSim())
	require.NoError(t, err)
	w, h, err := dv.RecommendedRenderSize()
	require.NoError(t, err)
	assert.Equal(t, uint32(2468), w)
	assert.Equal(t, uint32(1360), h)
	assert.True(t, dv.CurrentPose().Quat.IsIdentity())
	assert.False(t, dv.CurrentPose().Valid)
}

func TestRefreshIdempotent(t *testing.T) {
	dv, err := NewDevice(NewSim())
	require.NoError(t, err)

	dv.RefreshEyeAdjustment()
	dv.RefreshProjection(0.01, 1024)
	left, right := dv.EyeToHead(Left), dv.EyeToHead(Right)
	pl, pr := dv.Projection(Left), dv.Projection(Right)

	dv.RefreshEyeAdjustment()
	dv.RefreshProjection(0.01, 1024)
	assert.Equal(t, left, dv.EyeToHead(Left))
	assert.Equal(t, right, dv.EyeToHead(Right))
	assert.Equal(t, pl, dv.Projection(Left))
	assert.Equal(t, pr, dv.Projection(Right))

	assert.InDelta(t, -0.032, left.Translation().X, 1e-6)
	assert.InDelta(t, 0.032, right.Translation().X, 1e-6)

	// zero planes reuse the last ones
	dv.RefreshProjection(0, 0)
	assert.Equal(t, pl, dv.Projection(Left))
	near, far := dv.ClipPlanes()
	assert.Equal(t, float32(0.01), near)
	assert.Equal(t, float32(1024), far)
}

func TestUpdateKeepsLastPose(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	sm := NewSim()
	sm.LoseEvery = 3
	dv, err := NewDevice(sm)
	require.NoError(t, err)

	dv.Update()
	dv.Update()
	good := dv.CurrentPose()
	assert.True(t, good.Valid)
	assert.True(t, dv.Tracking())
	assert.InDelta(t, 1.7, good.Pos.Y, 1e-6)

	dv.Update() // step 3 is lost
	lost := dv.CurrentPose()
	assert.False(t, lost.Valid)
	assert.False(t, dv.Tracking())
	assert.Equal(t, good.Pos, lost.Pos)
	assert.Equal(t, good.Quat, lost.Quat)

	dv.Update()
	assert.True(t, dv.CurrentPose().Valid)
	assert.NotEqual(t, good.Pos, dv.CurrentPose().Pos)
	assert.Equal(t, uint64(4), dv.Frame())

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "tracking acquired"))
	assert.Equal(t, 1, strings.Count(out, "tracking lost"))
}

func TestPoseFromMatrix(t *testing.T) {
	q := mat32.NewQuatAxisAngle(mat32.Vec3Y, mat32.DegToRad(90))
	var m mat32.Mat4
	m.SetTransform(mat32.V3(1, 2, 3), q, mat32.V3(1, 1, 1))
	var m34 [3][4]float32
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			m34[r][c] = m.At(r, c)
		}
	}
	ps := PoseFromMatrix34(m34, true)
	assert.Equal(t, mat32.V3(1, 2, 3), ps.Pos)
	assert.InDelta(t, q.Y, ps.Quat.Y, 1e-5)
	assert.InDelta(t, q.W, ps.Quat.W, 1e-5)
	back := ps.Matrix()
	for i := range m {
		assert.InDelta(t, m[i], back[i], 1e-5)
	}
}

func TestRecordReplay(t *testing.T) {
	var buf bytes.Buffer
	sm := NewSim()
	sm.LoseEvery = 4
	rc, err := NewRecorder(sm, &buf)
	require.NoError(t, err)
	rec, err := NewDevice(rc)
	require.NoError(t, err)
	rec.RefreshEyeAdjustment()
	rec.RefreshProjection(0.01, 1024)
	devExts := rec.DeviceExtensionsRequired(nil)

	var poses []Pose
	for i := 0; i < 6; i++ {
		rec.RefreshEyeAdjustment()
		rec.RefreshProjection(0.01, 1024)
		rec.Update()
		poses = append(poses, rec.CurrentPose())
	}
	require.NoError(t, rc.Err())
	assert.Equal(t, 6, rc.Poses())

	rp, err := NewReplay(&buf)
	require.NoError(t, err)
	assert.Equal(t, rc.Session, rp.Session)
	assert.Equal(t, 6, rp.Poses())
	assert.Equal(t, sm.InstanceExts, rp.InstanceExtensionsRequired())
	assert.Equal(t, devExts, rp.DeviceExtensionsRequired(nil))

	play, err := NewDevice(rp)
	require.NoError(t, err)
	w, h, _ := play.RecommendedRenderSize()
	assert.Equal(t, uint32(2468), w)
	assert.Equal(t, uint32(1360), h)
	for i := range poses {
		play.RefreshEyeAdjustment()
		play.RefreshProjection(0.01, 1024)
		play.Update()
		assert.Equal(t, poses[i], play.CurrentPose(), "frame %d", i)
	}
	assert.Equal(t, rec.EyeToHead(Left), play.EyeToHead(Left))
	assert.Equal(t, rec.Projection(Right), play.Projection(Right))

	// past the end tracking is lost and the last pose is kept
	last := play.CurrentPose()
	play.Update()
	assert.False(t, play.CurrentPose().Valid)
	assert.Equal(t, last.Pos, play.CurrentPose().Pos)

	rp.Loop = true
	play.Update()
	assert.Equal(t, poses[0], play.CurrentPose())
}

func TestReplayBad(t *testing.T) {
	_, err := NewReplay(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrBadRecording)

	_, err = NewReplay(bytes.NewReader([]byte{0xff}))
	assert.ErrorIs(t, err, ErrBadRecording)

	var buf bytes.Buffer
	_, err = NewRecorder(NewSim(), &buf)
	require.NoError(t, err)
	data := buf.Bytes()
	data[5] ^= 0xff // corrupt the magic
	_, err = NewReplay(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadRecording)
}
