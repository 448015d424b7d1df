// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/vr/mat32"
)

// Pose contains the full specification of position and orientation,
// always relevant to the parent element.
type Pose struct {
	// position of center of element (relative to parent)
	Pos mat32.Vec3

	// scale (relative to parent)
	Scale mat32.Vec3

	// Node rotation specified as a Quat (relative to parent)
	Quat mat32.Quat

	// Local matrix. Contains all position/rotation/scale information (relative to parent)
	Matrix mat32.Mat4 `display:"-"`

	// Parent's world matrix: we cache this so that we can independently update our own matrix
	ParMatrix mat32.Mat4 `display:"-"`

	// World matrix. Contains all absolute position/rotation/scale information (i.e. relative to very top parent, generally the scene)
	WorldMatrix mat32.Mat4 `display:"-"`
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
	if ps.ParMatrix == (mat32.Mat4{}) {
		ps.ParMatrix.SetIdentity()
	}
}

// CopyFrom copies just the pose information from the other pose, critically
// not copying the ParMatrix so that is preserved in the receiver.
func (ps *Pose) CopyFrom(op *Pose) {
	ps.Pos = op.Pos
	ps.Scale = op.Scale
	ps.Quat = op.Quat
	ps.UpdateMatrix()
}

// UpdateMatrix updates the local transform matrix based on its position, quaternion, and scale.
// Also checks for degenerate nil values
func (ps *Pose) UpdateMatrix() {
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix updates the world transform matrix based on Matrix and parent's WorldMatrix.
// Does NOT call UpdateMatrix so that can include other factors as needed.
func (ps *Pose) UpdateWorldMatrix(parWorld *mat32.Mat4) {
	if parWorld != nil {
		ps.ParMatrix = *parWorld
	}
	ps.WorldMatrix.MulMatrices(&ps.ParMatrix, &ps.Matrix)
}

// SetAxisRotationRad sets rotation from local axis and angle in radians.
func (ps *Pose) SetAxisRotationRad(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(mat32.V3(x, y, z).Normal(), angle)
}

// RotateOnAxisRad rotates around the specified local axis the specified angle in radians.
func (ps *Pose) RotateOnAxisRad(x, y, z, angle float32) {
	ps.Quat.SetMul(mat32.NewQuatAxisAngle(mat32.V3(x, y, z).Normal(), angle))
}

// WorldPos returns the current world position.
func (ps *Pose) WorldPos() mat32.Vec3 {
	return ps.WorldMatrix.Translation()
}
