// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

import (
	"fmt"

	"cogentcore.org/vr/mat32"
)

// Pose is the headset position and orientation in runtime space.
type Pose struct {
	Pos  mat32.Vec3
	Quat mat32.Quat

	// Valid is true if the runtime was tracking when the pose was sampled.
	Valid bool
}

// IdentityPose returns the pose at the origin with no rotation,
// reported before the first valid sample.
func IdentityPose() Pose {
	return Pose{Quat: mat32.QuatIdentity()}
}

// PoseFromMatrix34 returns the pose encoded in a row-major 3x4
// rigid transform.
func PoseFromMatrix34(m34 [3][4]float32, valid bool) Pose {
	var m mat32.Mat4
	m.SetFromRowMajor34(m34)
	ps := Pose{Pos: m.Translation(), Valid: valid}
	ps.Quat.SetFromRotationMatrix(&m)
	ps.Quat.Normalize()
	return ps
}

// Matrix returns the pose as a column-major transform.
func (ps Pose) Matrix() mat32.Mat4 {
	var m mat32.Mat4
	m.SetTransform(ps.Pos, ps.Quat, mat32.V3(1, 1, 1))
	return m
}

func (ps Pose) String() string {
	return fmt.Sprintf("pos: %v quat: %v valid: %v", ps.Pos, ps.Quat, ps.Valid)
}
