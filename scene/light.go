// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
)

// LightTypes are the kinds of light a scene [Light] can be.
type LightTypes int32

const (
	// Sun is a directional light with cascaded shadows.
	Sun LightTypes = iota

	// Point lights emit in all directions with distance attenuation.
	Point

	// Spot lights emit in a cone with distance attenuation.
	Spot
)

func (lt LightTypes) String() string {
	switch lt {
	case Sun:
		return "Sun"
	case Point:
		return "Point"
	case Spot:
		return "Spot"
	}
	return "LightTypes(?)"
}

// Light is the light component of an [Object]. Its position and
// direction come from the object's pose.
type Light struct {
	// Type of light
	Type LightTypes

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color.
	Lumens float32 `min:"0" step:"0.1"`

	// Color is the color of the light at full intensity.
	Color color.RGBA

	// number of shadow cascades, for Sun lights
	CascadeCount int

	// distance from the camera covered by shadows, for Sun lights
	ShadowDistance float32

	// cone angle in degrees, for Spot lights
	SpotAngle float32
}

// NewLight returns a new light of the given type with default settings.
func NewLight(typ LightTypes, lumens float32) *Light {
	lt := &Light{Type: typ, Lumens: lumens}
	lt.Defaults()
	return lt
}

func (lt *Light) Defaults() {
	lt.On = true
	lt.Color = color.RGBA{255, 255, 255, 255}
	lt.CascadeCount = 4
	lt.ShadowDistance = 64
	lt.SpotAngle = 45
}

// IsSun returns true for directional sun lights.
func (lt *Light) IsSun() bool {
	return lt != nil && lt.Type == Sun
}
