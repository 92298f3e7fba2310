// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package valuecell provides versioned value containers used for all
// buffers and uniforms handed to a renderer. A renderer remembers the
// last version it uploaded for each cell and skips the upload when
// the version has not moved.
package valuecell

import (
	"sync/atomic"
	"unsafe"
)

var lastID atomic.Int64

// Versioned is the part of a [Cell] a renderer needs to decide
// whether to re-upload it.
type Versioned interface {
	// ID is unique per cell for the lifetime of the process.
	ID() int

	// Version is incremented every time the held value is replaced.
	Version() int
}

// Cell holds a value of type T and a version counter.
// Readers may cache the last seen version to skip redundant uploads.
type Cell[T any] struct {
	id      int
	version int
	value   T
}

// New returns a new [Cell] holding the given value at version 0.
func New[T any](value T) *Cell[T] {
	return &Cell[T]{id: int(lastID.Add(1)), value: value}
}

// Value returns the held value.
func (c *Cell[T]) Value() T {
	return c.value
}

// Version returns the current version.
func (c *Cell[T]) Version() int {
	return c.version
}

// ID returns the process-unique id of the cell.
func (c *Cell[T]) ID() int {
	return c.id
}

// Update replaces the held value and increments the version
// unconditionally. It returns the cell for chaining.
func Update[T any](c *Cell[T], value T) *Cell[T] {
	c.value = value
	c.version++
	return c
}

// UpdateIfChanged replaces the held value and increments the version
// only if the value differs from the current one.
// It returns whether the cell was updated.
func UpdateIfChanged[T comparable](c *Cell[T], value T) bool {
	if c.value == value {
		return false
	}
	Update(c, value)
	return true
}

// UpdateSliceIfChanged is [UpdateIfChanged] for slice values, comparing
// by identity (same backing array start and same length), not contents.
func UpdateSliceIfChanged[E any](c *Cell[[]E], value []E) bool {
	if SameSlice(c.value, value) {
		return false
	}
	Update(c, value)
	return true
}

// SameSlice returns whether a and b view the same backing array
// from the same start with the same length.
func SameSlice[E any](a, b []E) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// Tracker records the last version seen for each cell id.
// It is the renderer side of the version protocol.
type Tracker struct {
	seen map[int]int
}

// NeedsUpload returns true if the cell has never been marked
// uploaded or its version moved since.
func (t *Tracker) NeedsUpload(v Versioned) bool {
	ver, ok := t.seen[v.ID()]
	return !ok || ver != v.Version()
}

// MarkUploaded records the current version of the cell.
func (t *Tracker) MarkUploaded(v Versioned) {
	if t.seen == nil {
		t.seen = make(map[int]int)
	}
	t.seen[v.ID()] = v.Version()
}

// Forget drops the record for the given cell, e.g. when the owning
// render object is destroyed.
func (t *Tracker) Forget(v Versioned) {
	delete(t.seen, v.ID())
}
