// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer provides an owned, resizable typed buffer whose
// backing storage is reused across rebuilds. Storage is only
// reallocated when the requested length exceeds the capacity.
package buffer

// Buffer owns a backing slice. The zero value is an empty buffer.
// A backing array must only ever be owned by one Buffer at a time;
// use [Buffer.Detach] to hand it over.
type Buffer[E any] struct {
	data []E
}

// New returns a new [Buffer] of length n.
func New[E any](n int) *Buffer[E] {
	return &Buffer[E]{data: make([]E, n)}
}

// From returns a [Buffer] taking ownership of the given slice,
// including any spare capacity beyond its length.
func From[E any](data []E) *Buffer[E] {
	return &Buffer[E]{data: data}
}

// Data returns the current contents.
func (b *Buffer[E]) Data() []E {
	return b.data
}

// Len returns the current length.
func (b *Buffer[E]) Len() int {
	return len(b.data)
}

// Cap returns the capacity of the backing storage.
func (b *Buffer[E]) Cap() int {
	return cap(b.data)
}

// Reserve ensures the backing storage can hold at least capacity
// elements without reallocation, preserving the current contents.
// It returns true if the storage was reallocated.
func (b *Buffer[E]) Reserve(capacity int) bool {
	if capacity <= cap(b.data) {
		return false
	}
	nd := make([]E, len(b.data), capacity)
	copy(nd, b.data)
	b.data = nd
	return true
}

// Resize sets the length to n, reusing the backing storage if it is
// large enough. Contents up to min(old, n) are preserved; elements
// exposed beyond the old length are not cleared when storage is reused.
// It returns true if the storage was reallocated.
func (b *Buffer[E]) Resize(n int) bool {
	realloc := b.Reserve(n)
	b.data = b.data[:n]
	return realloc
}

// Reset sets the length to 0 and keeps the storage.
func (b *Buffer[E]) Reset() {
	b.data = b.data[:0]
}

// Append appends values, growing the storage as needed.
func (b *Buffer[E]) Append(v ...E) {
	b.data = append(b.data, v...)
}

// Detach returns the contents and leaves the buffer empty without
// storage, so the returned slice has a single owner.
func (b *Buffer[E]) Detach() []E {
	d := b.data
	b.data = nil
	return d
}
