// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAction(t *testing.T) {
	arr := make([]uint8, 4)
	assert.True(t, ApplyAction(arr, 0, 4, Select))
	assert.Equal(t, []uint8{2, 2, 2, 2}, arr)
	assert.False(t, ApplyAction(arr, 0, 4, Select))
	assert.True(t, ApplyAction(arr, 1, 2, Highlight))
	assert.Equal(t, []uint8{2, 3, 2, 2}, arr)
	assert.True(t, ApplyAction(arr, 0, 4, RemoveHighlight))
	assert.False(t, ApplyAction(arr, 0, 4, RemoveHighlight))
	assert.True(t, ApplyAction(arr, 2, 3, Deselect))
	assert.Equal(t, []uint8{2, 2, 0, 2}, arr)
	assert.True(t, ApplyAction(arr, 0, 4, ToggleSelect))
	assert.Equal(t, []uint8{0, 0, 2, 0}, arr)
	assert.True(t, ApplyAction(arr, 0, 1, ToggleHighlight))
	assert.Equal(t, uint8(1), arr[0])
	assert.True(t, ApplyAction(arr, 0, 4, Clear))
	assert.Equal(t, []uint8{0, 0, 0, 0}, arr)
	assert.False(t, ApplyAction(arr, 0, 4, Clear))
}

func TestData(t *testing.T) {
	d := New(5, nil)
	assert.Equal(t, 5, d.Count())
	v := d.Cell.Version()
	assert.False(t, d.Apply(0, 5, Deselect))
	assert.Equal(t, v, d.Cell.Version())
	assert.True(t, d.Apply(3, 10, Select))
	assert.Equal(t, v+1, d.Cell.Version())
	assert.Equal(t, Selected, d.At(4))
	assert.Equal(t, None, d.At(2))
	assert.False(t, d.Apply(-3, 0, Select))

	arr := d.Cell.Value()
	d2 := New(3, d)
	assert.Same(t, d, d2)
	assert.Equal(t, 3, d2.Count())
	assert.Same(t, &arr[0], &d2.Cell.Value()[0])
	assert.Equal(t, None, d2.At(0))
}

func TestParseAction(t *testing.T) {
	for a := Highlight; a <= Clear; a++ {
		p, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, p)
	}
	_, err := ParseAction("zap")
	assert.Error(t, err)
	assert.Equal(t, "Actions(42)", Actions(42).String())
}
