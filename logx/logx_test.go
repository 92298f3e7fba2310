// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("Debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, l)
	l, ok = ParseLevel("warning")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, l)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	old := UserLevel.Level()
	defer UserLevel.Set(old)
	UserLevel.Set(slog.LevelDebug)
	SetLogger(NewLogger(&buf))
	Logger().Debug("built", "visual", "polymer-trace")
	assert.Contains(t, buf.String(), "visual=polymer-trace")

	SetLogger(nil)
	Logger().Error("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
