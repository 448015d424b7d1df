// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Environment holds the global lighting settings of a [Scene].
type Environment struct {
	// draw the sun, moon and stars
	Celestials bool

	// render atmospheric scattering for the sky
	Scattering bool

	// uniform ambient light level, in normalized 0-1 units
	Ambient float32 `min:"0" max:"1"`
}

func (ev *Environment) Defaults() {
	ev.Celestials = true
	ev.Scattering = true
	ev.Ambient = 0.2
}
