// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx holds the logger shared by the build pipeline.
// The default level depends on the build tags: Info by default,
// Debug with the "debug" tag and Warn with the "release" tag.
package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// UserLevel is the level of the default logger. It can be changed
// at any time, e.g. from a loaded config.
var UserLevel = &slog.LevelVar{}

var logger atomic.Pointer[slog.Logger]

func init() {
	UserLevel.Set(tagLevel)
	logger.Store(NewLogger(os.Stderr))
}

// NewLogger returns a text logger writing to w at [UserLevel].
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
}

// SetLogger sets the logger used by all packages of the module.
// Passing nil discards all output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Load()
}

// ParseLevel returns the level for a name such as "debug" or "WARN".
// Unknown names return the default level and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return tagLevel, false
}
