// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const StandardTol = float32(1.0e-5)

func assertMat4Tol(t *testing.T, want, got Mat4, tol float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], float64(tol), "element %d", i)
	}
}

func assertVec3Tol(t *testing.T, want, got Vec3, tol float32) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, float64(tol))
	assert.InDelta(t, want.Y, got.Y, float64(tol))
	assert.InDelta(t, want.Z, got.Z, float64(tol))
}

func TestMat4Inverse(t *testing.T) {
	var m Mat4
	q := NewQuatAxisAngle(V3(0, 1, 0), DegToRad(30))
	m.SetTransform(V3(1, 2, 3), q, V3(1, 1, 1))

	inv, err := m.Inverse()
	require.NoError(t, err)
	assertMat4Tol(t, Identity4(), m.Mul(&inv), StandardTol)
	assertMat4Tol(t, Identity4(), inv.Mul(&m), StandardTol)

	var zero Mat4
	_, err = zero.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMat4RowMajor34(t *testing.T) {
	var m Mat4
	m.SetFromRowMajor34([3][4]float32{
		{1, 0, 0, -0.032},
		{0, 1, 0, 0},
		{0, 0, 1, 0.015},
	})
	assert.Equal(t, V3(-0.032, 0, 0.015), m.Translation())
	assert.Equal(t, float32(1), m.At(3, 3))
	assert.Equal(t, float32(0), m.At(3, 0))

	// translating the origin yields the translation column
	assertVec3Tol(t, V3(-0.032, 0, 0.015), m.MulVec3AsPoint(Vec3Zero), StandardTol)

	inv, err := m.Inverse()
	require.NoError(t, err)
	assertVec3Tol(t, V3(0.032, 0, -0.015), inv.Translation(), StandardTol)
}

func TestMat4RowMajor44(t *testing.T) {
	var m Mat4
	m.SetFromRowMajor44([4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})
	assert.Equal(t, float32(2), m.At(0, 1))
	assert.Equal(t, float32(5), m.At(1, 0))
	assert.Equal(t, float32(5), m[1])
	assert.Equal(t, float32(2), m[4])
}

func TestMat4MulAlias(t *testing.T) {
	a := Scale4(2, 3, 4)
	b := a
	b.SetMul(&a)
	assert.Equal(t, Scale4(4, 9, 16), b)

	id := Identity4()
	assert.Equal(t, a, a.Mul(&id))
	assert.True(t, id.IsIdentity())
}

func TestQuatRoundTrip(t *testing.T) {
	q := NewQuatAxisAngle(V3(1, 1, 0).Normal(), DegToRad(45))
	var m Mat4
	m.SetTransform(Vec3Zero, q, V3(1, 1, 1))

	var back Quat
	back.SetFromRotationMatrix(&m)
	assert.InDelta(t, q.X, back.X, 1e-5)
	assert.InDelta(t, q.Y, back.Y, 1e-5)
	assert.InDelta(t, q.Z, back.Z, 1e-5)
	assert.InDelta(t, q.W, back.W, 1e-5)

	v := V3(0, 0, -1)
	assertVec3Tol(t, m.MulVec3AsPoint(v), v.MulQuat(q), StandardTol)

	id := q.Mul(q.Inverse())
	assert.InDelta(t, 1, id.W, 1e-5)
}

func TestPerspective(t *testing.T) {
	var p Mat4
	p.SetPerspective(90, 1, 1, 100)
	assert.InDelta(t, 1, p.At(0, 0), 1e-5)
	assert.InDelta(t, 1, p.At(1, 1), 1e-5)
	assert.Equal(t, float32(-1), p.At(3, 2))
}
