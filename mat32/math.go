// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mat32 provides the float32 vector, quaternion and 4x4 matrix
// types used for head, eye and projection transforms.
// Matrices are stored in column-major order, as Vulkan shaders expect.
package mat32

import "github.com/chewxy/math32"

const (
	// Pi is the float32 value of pi.
	Pi = math32.Pi

	// DegToRadFactor converts degrees to radians when multiplied.
	DegToRadFactor = Pi / 180

	// RadToDegFactor converts radians to degrees when multiplied.
	RadToDegFactor = 180 / Pi
)

// DegToRad converts a number from degrees to radians
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

func Abs(v float32) float32  { return math32.Abs(v) }
func Sqrt(v float32) float32 { return math32.Sqrt(v) }
func Sin(v float32) float32  { return math32.Sin(v) }
func Cos(v float32) float32  { return math32.Cos(v) }
func Tan(v float32) float32  { return math32.Tan(v) }

// ApproxEqual returns true if a and b differ by no more than tol.
func ApproxEqual(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}
