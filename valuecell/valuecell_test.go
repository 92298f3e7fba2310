// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package valuecell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate(t *testing.T) {
	c := New(1.5)
	assert.Equal(t, 0, c.Version())
	Update(c, 1.5)
	assert.Equal(t, 1, c.Version())
	Update(c, 2.0)
	assert.Equal(t, 2, c.Version())
	assert.Equal(t, 2.0, c.Value())
}

func TestUpdateIfChanged(t *testing.T) {
	c := New(float32(0.2))
	assert.False(t, UpdateIfChanged(c, 0.2))
	assert.Equal(t, 0, c.Version())
	assert.True(t, UpdateIfChanged(c, 0.5))
	assert.Equal(t, 1, c.Version())
	assert.False(t, UpdateIfChanged(c, 0.5))
	assert.Equal(t, 1, c.Version())

	b := New(false)
	assert.True(t, UpdateIfChanged(b, true))
	assert.Equal(t, 1, b.Version())
}

func TestUpdateSliceIfChanged(t *testing.T) {
	arr := make([]float32, 6)
	c := New(arr)
	arr[0] = 3 // contents do not matter, only identity
	assert.False(t, UpdateSliceIfChanged(c, arr))
	assert.Equal(t, 0, c.Version())

	assert.True(t, UpdateSliceIfChanged(c, arr[:3]))
	assert.Equal(t, 1, c.Version())

	other := make([]float32, 3)
	assert.True(t, UpdateSliceIfChanged(c, other))
	assert.Equal(t, 2, c.Version())
}

func TestIDsUnique(t *testing.T) {
	a := New(0)
	b := New(0)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestTracker(t *testing.T) {
	var tr Tracker
	c := New([]uint8{0, 0})
	assert.True(t, tr.NeedsUpload(c))
	tr.MarkUploaded(c)
	assert.False(t, tr.NeedsUpload(c))
	UpdateIfChanged(New(1), 1)
	assert.False(t, tr.NeedsUpload(c))
	Update(c, c.Value())
	assert.True(t, tr.NeedsUpload(c))
	tr.MarkUploaded(c)
	tr.Forget(c)
	assert.True(t, tr.NeedsUpload(c))
}
