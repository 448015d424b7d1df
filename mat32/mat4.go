// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat32

import "cogentcore.org/core/base/errors"

// ErrSingular is returned when inverting a matrix whose determinant is zero.
var ErrSingular = errors.New("mat32: matrix is not invertible")

// Mat4 is 4x4 matrix organized internally as column matrix:
// element (row, col) lives at index col*4 + row.
type Mat4 [16]float32

// Identity4 returns a new identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale4 returns a new scaling matrix.
func Scale4(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Mat4) SetIdentity() {
	*m = Identity4()
}

// IsIdentity returns true if this is exactly the identity matrix.
func (m *Mat4) IsIdentity() bool {
	return *m == Identity4()
}

// At returns the element at the given row and column.
func (m *Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// SetAt sets the element at the given row and column.
func (m *Mat4) SetAt(row, col int, v float32) {
	m[col*4+row] = v
}

// SetFromRowMajor34 sets this matrix from a row-major 3x4 affine
// matrix as reported by tracking runtimes, with a 0,0,0,1 bottom row.
func (m *Mat4) SetFromRowMajor34(r [3][4]float32) {
	m.SetIdentity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			m.SetAt(row, col, r[row][col])
		}
	}
}

// SetFromRowMajor44 sets this matrix from a row-major 4x4 matrix.
func (m *Mat4) SetFromRowMajor44(r [4][4]float32) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.SetAt(row, col, r[row][col])
		}
	}
}

// Translation returns the translation component of this matrix.
func (m *Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// MulMatrices sets this matrix as the matrix product a * b.
// Either argument may alias the receiver.
func (m *Mat4) MulMatrices(a, b *Mat4) {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	*m = r
}

// Mul returns the matrix product m * other.
func (m *Mat4) Mul(other *Mat4) Mat4 {
	var r Mat4
	r.MulMatrices(m, other)
	return r
}

// SetMul sets this matrix to m * other.
func (m *Mat4) SetMul(other *Mat4) {
	m.MulMatrices(m, other)
}

// MulVec3AsPoint returns v transformed by this matrix as a point (w = 1).
func (m *Mat4) MulVec3AsPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// SetTransform sets this matrix to a transformation matrix
// for the specified position, rotation and scale.
func (m *Mat4) SetTransform(pos Vec3, q Quat, scale Vec3) {
	x2 := q.X + q.X
	y2 := q.Y + q.Y
	z2 := q.Z + q.Z
	xx := q.X * x2
	xy := q.X * y2
	xz := q.X * z2
	yy := q.Y * y2
	yz := q.Y * z2
	zz := q.Z * z2
	wx := q.W * x2
	wy := q.W * y2
	wz := q.W * z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0
	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0
	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// SetInverse sets this matrix to the inverse of the src matrix.
// If src is not invertible, ErrSingular is returned and
// this matrix is set to the identity.
func (m *Mat4) SetInverse(src *Mat4) error {
	n11 := src[0]
	n12 := src[4]
	n13 := src[8]
	n14 := src[12]
	n21 := src[1]
	n22 := src[5]
	n23 := src[9]
	n24 := src[13]
	n31 := src[2]
	n32 := src[6]
	n33 := src[10]
	n34 := src[14]
	n41 := src[3]
	n42 := src[7]
	n43 := src[11]
	n44 := src[15]

	t11 := n23*n34*n42 - n24*n33*n42 + n24*n32*n43 - n22*n34*n43 - n23*n32*n44 + n22*n33*n44
	t12 := n14*n33*n42 - n13*n34*n42 - n14*n32*n43 + n12*n34*n43 + n13*n32*n44 - n12*n33*n44
	t13 := n13*n24*n42 - n14*n23*n42 + n14*n22*n43 - n12*n24*n43 - n13*n22*n44 + n12*n23*n44
	t14 := n14*n23*n32 - n13*n24*n32 - n14*n22*n33 + n12*n24*n33 + n13*n22*n34 - n12*n23*n34

	det := n11*t11 + n21*t12 + n31*t13 + n41*t14
	if det == 0 {
		m.SetIdentity()
		return ErrSingular
	}
	di := 1 / det

	var r Mat4
	r[0] = t11 * di
	r[1] = (n24*n33*n41 - n23*n34*n41 - n24*n31*n43 + n21*n34*n43 + n23*n31*n44 - n21*n33*n44) * di
	r[2] = (n22*n34*n41 - n24*n32*n41 + n24*n31*n42 - n21*n34*n42 - n22*n31*n44 + n21*n32*n44) * di
	r[3] = (n23*n32*n41 - n22*n33*n41 - n23*n31*n42 + n21*n33*n42 + n22*n31*n43 - n21*n32*n43) * di

	r[4] = t12 * di
	r[5] = (n13*n34*n41 - n14*n33*n41 + n14*n31*n43 - n11*n34*n43 - n13*n31*n44 + n11*n33*n44) * di
	r[6] = (n14*n32*n41 - n12*n34*n41 - n14*n31*n42 + n11*n34*n42 + n12*n31*n44 - n11*n32*n44) * di
	r[7] = (n12*n33*n41 - n13*n32*n41 + n13*n31*n42 - n11*n33*n42 - n12*n31*n43 + n11*n32*n43) * di

	r[8] = t13 * di
	r[9] = (n14*n23*n41 - n13*n24*n41 - n14*n21*n43 + n11*n24*n43 + n13*n21*n44 - n11*n23*n44) * di
	r[10] = (n12*n24*n41 - n14*n22*n41 + n14*n21*n42 - n11*n24*n42 - n12*n21*n44 + n11*n22*n44) * di
	r[11] = (n13*n22*n41 - n12*n23*n41 - n13*n21*n42 + n11*n23*n42 + n12*n21*n43 - n11*n22*n43) * di

	r[12] = t14 * di
	r[13] = (n13*n24*n31 - n14*n23*n31 + n14*n21*n33 - n11*n24*n33 - n13*n21*n34 + n11*n23*n34) * di
	r[14] = (n14*n22*n31 - n12*n24*n31 - n14*n21*n32 + n11*n24*n32 + n12*n21*n34 - n11*n22*n34) * di
	r[15] = (n12*n23*n31 - n13*n22*n31 + n13*n21*n32 - n11*n23*n32 - n12*n21*n33 + n11*n22*n33) * di

	*m = r
	return nil
}

// Inverse returns the inverse of this matrix.
func (m *Mat4) Inverse() (Mat4, error) {
	var r Mat4
	err := r.SetInverse(m)
	return r, err
}

// SetPerspective sets this matrix to a symmetric perspective projection
// with the vertical field of view given in degrees.
func (m *Mat4) SetPerspective(fov, aspect, near, far float32) {
	ymax := near * Tan(DegToRad(fov*0.5))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect
	m.SetFrustum(xmin, xmax, ymin, ymax, near, far)
}

// SetFrustum sets this matrix to a projection frustum with the
// specified planes.
func (m *Mat4) SetFrustum(left, right, bottom, top, near, far float32) {
	x := 2 * near / (right - left)
	y := 2 * near / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(far + near) / (far - near)
	d := -2 * far * near / (far - near)

	*m = Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		a, b, c, -1,
		0, 0, d, 0,
	}
}
