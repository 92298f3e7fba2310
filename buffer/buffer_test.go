// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeReuse(t *testing.T) {
	b := New[float32](8)
	first := &b.Data()[0]
	assert.False(t, b.Resize(4))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 8, b.Cap())
	assert.Same(t, first, &b.Data()[0])

	assert.False(t, b.Resize(8))
	assert.Same(t, first, &b.Data()[0])

	assert.True(t, b.Resize(9))
	assert.Equal(t, 9, b.Len())
}

func TestReservePreserves(t *testing.T) {
	b := From([]uint32{1, 2, 3})
	assert.True(t, b.Reserve(10))
	assert.Equal(t, []uint32{1, 2, 3}, b.Data())
	assert.Equal(t, 10, b.Cap())
	assert.False(t, b.Reserve(5))
}

func TestAppendDetach(t *testing.T) {
	b := From(make([]uint8, 0, 4))
	b.Append(1, 2)
	b.Append(3)
	assert.Equal(t, []uint8{1, 2, 3}, b.Data())
	d := b.Detach()
	assert.Equal(t, 3, len(d))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())

	b.Append(7)
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Cap() >= 1)
}
