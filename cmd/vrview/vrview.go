// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vrview renders the startup scene through the stereo pipeline
// on a simulated or replayed headset, with a desktop window for input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/cli"
	"cogentcore.org/vr"
	"cogentcore.org/vr/config"
	"cogentcore.org/vr/engine"
	"cogentcore.org/vr/gpu"
	"cogentcore.org/vr/scene"
	"cogentcore.org/vr/submit"
	"cogentcore.org/vr/tracking"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gopxl/mainthread/v2"
)

// ConfigFile is the settings file read at startup and watched for
// live changes.
const ConfigFile = "vrview.toml"

func main() {
	opts := cli.DefaultOptions("vrview", "Renders a scene through the stereo headset pipeline.")
	opts.DefaultFiles = []string{ConfigFile}
	cli.Run(opts, config.New(), Run)
}

// Run runs the viewer until its window is closed or the configured
// number of frames is reached.
func Run(cfg *config.Config) error { //cli:cmd -root
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ApplyLevel()
	var err error
	mainthread.Run(func() {
		err = run(cfg)
	})
	return err
}

// openRuntime returns the tracking runtime selected by cfg and a
// function closing any files it uses.
func openRuntime(cfg *config.Config) (tracking.Runtime, func() error, error) {
	var rt tracking.Runtime
	var closers []io.Closer
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	if cfg.Runtime.Replay != "" {
		f, err := os.Open(cfg.Runtime.Replay)
		if err != nil {
			return nil, nil, err
		}
		rp, err := tracking.NewReplay(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		rp.Loop = cfg.Runtime.Loop
		slog.Info("replaying poses", "file", cfg.Runtime.Replay, "session", rp.Session, "poses", rp.Poses())
		rt = rp
	} else {
		sm := tracking.NewSim()
		sm.Width, sm.Height = cfg.Runtime.Width, cfg.Runtime.Height
		sm.IPD = cfg.Runtime.IPD
		rt = sm
	}

	if cfg.Runtime.Record != "" {
		f, err := os.Create(cfg.Runtime.Record)
		if err != nil {
			return nil, nil, err
		}
		rc, err := tracking.NewRecorder(rt, f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		closers = append(closers, recording{rc, f})
		slog.Info("recording poses", "file", cfg.Runtime.Record, "session", rc.Session)
		rt = rc
	}
	return rt, closeAll, nil
}

// recording closes the file under a recorder, reporting any write error.
type recording struct {
	rc *tracking.Recorder
	f  *os.File
}

func (r recording) Close() error {
	slog.Info("recorded poses", "poses", r.rc.Poses())
	return errors.Join(r.rc.Err(), r.f.Close())
}

func run(cfg *config.Config) error {
	if err := mainthread.CallErr(gpu.Init); err != nil {
		return err
	}
	defer mainthread.Call(gpu.Terminate)

	var win *glfw.Window
	var toggle atomic.Bool
	err := mainthread.CallErr(func() error {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
		var err error
		win, err = glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, "vrview", nil, nil)
		if err != nil {
			return err
		}
		win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			if key == glfw.KeyF1 && action == glfw.Press {
				toggle.Store(true)
			}
		})
		return nil
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(win.Destroy)

	rt, closeRuntime, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { errors.Log(closeRuntime()) }()
	dev, err := tracking.NewDevice(rt)
	if err != nil {
		return err
	}

	cx := &gpu.Context{}
	defer cx.Destroy()
	var winExts []string
	mainthread.Call(func() { winExts = gpu.WindowInstanceExtensions(win) })
	cx.RequestInstanceExtension(winExts...)

	comp := &submit.Validator{}
	plugin := vr.New(cfg, dev, comp)
	host := engine.NewHost(cx, scene.NewScene(), nil)
	host.AddStage(plugin)

	if err := host.PreInstanceInit(); err != nil {
		return err
	}
	if err := cx.CreateInstance("vrview"); err != nil {
		return err
	}
	if err := cx.SelectPhysicalDevice(); err != nil {
		return err
	}
	if err := host.PreDeviceInit(cx.PhysicalDevice); err != nil {
		return err
	}
	if err := cx.CreateDevice(); err != nil {
		return err
	}
	comp.Device = cx.Device

	md := cfg.SceneModel()
	host.Alloc = gpu.NewDeviceAllocator(cx)
	host.Loader = scene.NewMemoryLoader(map[string]*scene.NodeDesc{md.Path(): scene.CornellBox()})
	host.Renderer = engine.NewClearRenderer()

	if errors.Log1(fsx.FileExists(ConfigFile)) {
		w, err := config.Watch(ConfigFile)
		if err == nil {
			defer w.Close()
			plugin.Changes = w.Changes
		} else {
			slog.Warn("not watching config file", "file", ConfigFile, "err", err)
		}
	}

	if err := host.Init(); err != nil {
		return err
	}
	defer host.Close()

	var pool gpu.CmdPool
	if err := pool.Init(cx); err != nil {
		return err
	}
	defer pool.Destroy(cx)
	// the device must be idle before anything it uses is destroyed
	defer cx.WaitIdle()

	for cfg.Window.Frames == 0 || host.Frame < cfg.Window.Frames {
		var closed bool
		mainthread.Call(func() {
			glfw.PollEvents()
			closed = win.ShouldClose()
		})
		if closed {
			break
		}
		if toggle.Swap(false) {
			plugin.ToggleGizmos(host)
		}
		rec, err := pool.Begin(cx)
		if err != nil {
			return fmt.Errorf("begin frame %d: %w", host.Frame+1, err)
		}
		host.Record(rec)
		if err := pool.Submit(cx); err != nil {
			return fmt.Errorf("submit frame %d: %w", host.Frame, err)
		}
		host.PreSwap()
	}
	st := plugin.Submitter.Stats
	slog.Info("done", "frames", host.Frame, "submitted", st.Frames, "failed", st.Failed(), "skipped", st.Skipped)
	return nil
}
