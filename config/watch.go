// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Live is the subset of settings that can change while frames are
// being rendered.
type Live struct {
	FlipY            bool
	DynamicEyeAdjust bool
	LogLevel         string
}

// Live returns the live settings of cfg.
func (cfg *Config) Live() Live {
	return Live{FlipY: cfg.Camera.FlipY, DynamicEyeAdjust: cfg.DynamicEyeAdjust, LogLevel: cfg.LogLevel}
}

// SetLive sets the live settings of cfg.
func (cfg *Config) SetLive(lv Live) {
	cfg.Camera.FlipY = lv.FlipY
	cfg.DynamicEyeAdjust = lv.DynamicEyeAdjust
	cfg.LogLevel = lv.LogLevel
}

// Watcher reloads a config file when it changes and delivers the
// live settings of each valid version on Changes. Only the most
// recent change is kept if the receiver falls behind.
type Watcher struct {
	// Changes receives the live settings after each valid reload.
	Changes <-chan Live

	changes  chan Live
	watcher  *fsnotify.Watcher
	filename string
	done     chan struct{}
}

// Watch starts watching filename. The directory is watched rather than
// the file so that editors that replace the file are followed.
func Watch(filename string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(filename)); err != nil {
		fw.Close()
		return nil, err
	}
	ch := make(chan Live, 1)
	w := &Watcher{Changes: ch, changes: ch, watcher: fw, filename: filepath.Clean(filename), done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filename || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "file", w.filename, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg := New()
	if err := cfg.Open(w.filename); err != nil {
		slog.Warn("ignoring invalid config change", "file", w.filename, "err", err)
		return
	}
	lv := cfg.Live()
	// drop a pending change nobody has read yet
	select {
	case <-w.changes:
	default:
	}
	w.changes <- lv
	slog.Info("reloaded config", "file", w.filename)
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
