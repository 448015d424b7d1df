// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracking

// Eye identifies one eye of the headset.
type Eye int32

const (
	Left Eye = iota
	Right

	// EyesN is the number of eyes.
	EyesN
)

// Eyes lists both eyes in submission order.
var Eyes = [EyesN]Eye{Left, Right}

func (e Eye) String() string {
	switch e {
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Eye(?)"
}
