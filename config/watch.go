// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/mol/logx"
	"github.com/fsnotify/fsnotify"
)

// WatchDelay is how long [Watch] waits for writes to settle before
// reloading.
var WatchDelay = 100 * time.Millisecond

// Watch calls fn with the config at path each time it or one of its
// includes is written, until ctx is done. A failed reload is passed to
// fn with its error, and watching continues. The config is not loaded
// when Watch starts.
func Watch(ctx context.Context, path string, fn func(c *Config, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	files := []string{abs}
	if _, fs, err := open(abs); len(fs) > 0 {
		files = fs
		errors.Log(err)
	}
	dirs := map[string]bool{}
	watch := func(files []string) {
		for _, f := range files {
			d := filepath.Dir(f)
			if dirs[d] {
				continue
			}
			if errors.Log(w.Add(d)) == nil {
				dirs[d] = true
			}
		}
	}
	watch(files)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !slices.Contains(files, filepath.Clean(ev.Name)) {
				continue
			}
			logx.Logger().Debug("config changed", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(WatchDelay)
			fire = timer.C
		case <-fire:
			fire = nil
			c, fs, err := open(abs)
			if len(fs) > 0 {
				files = fs
				watch(files)
			}
			fn(c, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
