// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package submit

import "fmt"

// Error is a compositor submission result code. The values match the
// runtime's compositor error enumeration.
type Error int32

const (
	None                         Error = 0
	RequestFailed                Error = 1
	IncompatibleVersion          Error = 100
	DoNotHaveFocus               Error = 101
	InvalidTexture               Error = 102
	IsNotSceneApplication        Error = 103
	TextureIsOnWrongDevice       Error = 104
	TextureUsesUnsupportedFormat Error = 105
	SharedTexturesNotSupported   Error = 106
	IndexOutOfRange              Error = 107
	AlreadySubmitted             Error = 108
	InvalidBounds                Error = 109
	AlreadySet                   Error = 110
)

var errorNames = map[Error]string{
	None:                         "None",
	RequestFailed:                "RequestFailed",
	IncompatibleVersion:          "IncompatibleVersion",
	DoNotHaveFocus:               "DoNotHaveFocus",
	InvalidTexture:               "InvalidTexture",
	IsNotSceneApplication:        "IsNotSceneApplication",
	TextureIsOnWrongDevice:       "TextureIsOnWrongDevice",
	TextureUsesUnsupportedFormat: "TextureUsesUnsupportedFormat",
	SharedTexturesNotSupported:   "SharedTexturesNotSupported",
	IndexOutOfRange:              "IndexOutOfRange",
	AlreadySubmitted:             "AlreadySubmitted",
	InvalidBounds:                "InvalidBounds",
	AlreadySet:                   "AlreadySet",
}

func (e Error) String() string {
	if nm, ok := errorNames[e]; ok {
		return nm
	}
	return fmt.Sprintf("Error(%d)", int32(e))
}

// Error implements the error interface so a failed result can be
// wrapped and returned.
func (e Error) Error() string {
	return "compositor error: " + e.String()
}

// OK returns true if e is None.
func (e Error) OK() bool {
	return e == None
}

// Classes group compositor errors by what the caller can do about them.
type Classes int32

const (
	// Ok is a successful submission.
	Ok Classes = iota

	// UnsupportedFormat means the texture format or usage is not
	// accepted by the compositor.
	UnsupportedFormat

	// BadTexture means the texture description is wrong: a bad
	// handle, device or bounds.
	BadTexture

	// NoFocus means another application owns the display. It is
	// usually transient.
	NoFocus

	// Generic is every other failure.
	Generic

	ClassesN
)

func (c Classes) String() string {
	switch c {
	case Ok:
		return "ok"
	case UnsupportedFormat:
		return "unsupported format"
	case BadTexture:
		return "invalid texture"
	case NoFocus:
		return "focus"
	case Generic:
		return "generic"
	}
	return fmt.Sprintf("Classes(%d)", int32(c))
}

// Class returns the class of e.
func (e Error) Class() Classes {
	switch e {
	case None:
		return Ok
	case TextureUsesUnsupportedFormat:
		return UnsupportedFormat
	case InvalidTexture, TextureIsOnWrongDevice, SharedTexturesNotSupported, InvalidBounds:
		return BadTexture
	case DoNotHaveFocus, IsNotSceneApplication:
		return NoFocus
	}
	return Generic
}
