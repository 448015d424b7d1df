// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of the stereo pipeline and
// the viewer, with their defaults, TOML persistence and hot reload.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/vr/eyes"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/stereo"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned by [Config.Validate] for out-of-range settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the main config struct.
type Config struct {

	// Camera has the fixed stereo camera settings.
	Camera Camera

	// EyeMode is how the framebuffer is handed to the compositor:
	// split into two eye textures, or mirrored as one texture.
	EyeMode string `default:"split"`

	// DynamicEyeAdjust pushes refreshed eye-to-head matrices and
	// projections into the camera every frame, following IPD changes.
	DynamicEyeAdjust bool `default:"true"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `default:"info"`

	// Model is the scene model loaded at startup.
	Model Model

	// Runtime selects the tracking runtime.
	Runtime Runtime

	// Window has the desktop mirror window settings.
	Window Window
}

// Camera has the stereo camera settings.
type Camera struct {
	Near       float32 `default:"0.01"`
	Far        float32 `default:"1024"`
	FOV        float32 `default:"65"`
	BaseHeight float32 `default:"0.5"`

	// FlipY flips Y in the eye projections, for runtimes whose
	// clip space is Y-up.
	FlipY bool
}

// Model is the startup model.
type Model struct {
	Folder string `default:"Assets/Models/"`
	File   string `default:"cornellbox.gltf"`

	// Capacity is the number of objects that share one material instance.
	Capacity uint32 `default:"64"`
}

// Runtime selects and configures the tracking runtime.
type Runtime struct {

	// Replay is a pose recording to play back instead of the simulated
	// headset.
	Replay string

	// Loop restarts the replay at its end.
	Loop bool

	// Record is a file to record the runtime's poses into.
	Record string

	// Width and Height are the simulated headset's combined render size.
	Width  uint32 `default:"2468"`
	Height uint32 `default:"1360"`

	// IPD is the simulated interpupillary distance in meters.
	IPD float32 `default:"0.064"`
}

// Window is the desktop mirror window.
type Window struct {
	Width  int `default:"1234"`
	Height int `default:"680"`

	// Frames stops the viewer after this many frames; 0 runs until
	// the window is closed.
	Frames int
}

// New returns a new Config with all defaults set.
func New() *Config {
	cfg := &Config{}
	cli.SetFromDefaults(cfg)
	return cfg
}

// Open reads the config from the given TOML file on top of its
// current values and validates it.
func (cfg *Config) Open(filename string) error {
	if err := tomlx.Open(cfg, filename); err != nil {
		return err
	}
	return cfg.Validate()
}

// Save writes the config to the given TOML file.
func (cfg *Config) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	enc.SetIndentTables(true)
	return enc.Encode(cfg)
}

// Validate returns an error wrapping ErrInvalid for the first
// setting out of range.
func (cfg *Config) Validate() error {
	cm := &cfg.Camera
	switch {
	case cm.Near <= 0:
		return fmt.Errorf("%w: near %g must be positive", ErrInvalid, cm.Near)
	case cm.Far <= cm.Near:
		return fmt.Errorf("%w: far %g must be beyond near %g", ErrInvalid, cm.Far, cm.Near)
	case cm.FOV <= 0 || cm.FOV >= 180:
		return fmt.Errorf("%w: fov %g must be in (0, 180)", ErrInvalid, cm.FOV)
	case cfg.Model.Capacity == 0:
		return fmt.Errorf("%w: model capacity must be positive", ErrInvalid)
	}
	if _, err := cfg.Mode(); err != nil {
		return err
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed EyeMode.
func (cfg *Config) Mode() (eyes.Modes, error) {
	switch strings.ToLower(cfg.EyeMode) {
	case "split", "":
		return eyes.Split, nil
	case "mirror":
		return eyes.Mirror, nil
	}
	return eyes.Split, fmt.Errorf("%w: eye mode %q is not split or mirror", ErrInvalid, cfg.EyeMode)
}

// Level returns the parsed LogLevel.
func (cfg *Config) Level() (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}
	return lv, nil
}

// ApplyLevel sets the user log level from LogLevel.
func (cfg *Config) ApplyLevel() {
	lv, err := cfg.Level()
	if errors.Log(err) != nil {
		return
	}
	logx.UserLevel = lv
}

// CameraOptions returns the stereo camera options.
func (cfg *Config) CameraOptions() stereo.Options {
	return stereo.Options{
		Near:       cfg.Camera.Near,
		Far:        cfg.Camera.Far,
		FOV:        cfg.Camera.FOV,
		BaseHeight: cfg.Camera.BaseHeight,
		FlipY:      cfg.Camera.FlipY,
	}
}

// SceneModel returns the startup model settings.
func (cfg *Config) SceneModel() scene.Model {
	var md scene.Model
	md.Defaults()
	md.Folder = cfg.Model.Folder
	md.File = cfg.Model.File
	md.Capacity = cfg.Model.Capacity
	return md
}
