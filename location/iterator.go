// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package location provides the iterator over (instance, group)
// slots that drives per-slot color, size and marker computation.
package location

// Location is a resolved pointer into the data a visual renders,
// e.g. a structure element or a shape group.
type Location interface {
	LocationKind() string
}

type nullLocation struct{}

func (nullLocation) LocationKind() string { return "null" }

// Null is the location of slots that do not resolve to anything.
var Null Location = nullLocation{}

// Step is the state of an [Iterator] at one slot.
type Step struct {
	Location Location

	// Index is the linear slot index, InstanceIndex*GroupCount+GroupIndex,
	// which is the index into per-slot buffers.
	Index int

	GroupIndex    int
	InstanceIndex int

	// IsSecondary marks slots whose values duplicate another slot,
	// e.g. every instance after the first for per-group colors.
	IsSecondary bool

	// InstanceEnd is set on the last group of an instance.
	InstanceEnd bool

	// Done is set on the zero step returned when moving past the end.
	Done bool
}

// Iterator iterates over InstanceCount*GroupCount slots, instance
// major and group minor, matching the layout of per-slot buffers.
// Moving past the end is defined: it returns a Step with Done set
// and leaves the iterator exhausted until [Iterator.Reset].
type Iterator struct {
	GroupCount    int
	InstanceCount int

	// Count is GroupCount*InstanceCount.
	Count int

	getLocation func(group, instance int) Location
	isSecondary func(group, instance int) bool
	index       int
}

// NewIterator returns a new [Iterator]. getLocation and isSecondary
// may be nil, in which case all locations are [Null] and no slot is
// secondary.
func NewIterator(groupCount, instanceCount int, getLocation func(group, instance int) Location, isSecondary func(group, instance int) bool) *Iterator {
	return &Iterator{
		GroupCount:    groupCount,
		InstanceCount: instanceCount,
		Count:         groupCount * instanceCount,
		getLocation:   getLocation,
		isSecondary:   isSecondary,
	}
}

// SecondaryInstances is an isSecondary function marking every slot
// of every instance after the first.
func SecondaryInstances(group, instance int) bool {
	return instance > 0
}

// HasNext returns whether [Iterator.Move] yields another slot.
func (it *Iterator) HasNext() bool {
	return it.index < it.Count
}

// Move returns the current slot and advances.
func (it *Iterator) Move() Step {
	if it.index >= it.Count {
		return Step{Location: Null, Index: -1, GroupIndex: -1, InstanceIndex: -1, Done: true}
	}
	i := it.index
	it.index++
	g := i % it.GroupCount
	inst := i / it.GroupCount
	st := Step{
		Location:      Null,
		Index:         i,
		GroupIndex:    g,
		InstanceIndex: inst,
		InstanceEnd:   g == it.GroupCount-1,
	}
	if it.getLocation != nil {
		st.Location = it.getLocation(g, inst)
	}
	if it.isSecondary != nil {
		st.IsSecondary = it.isSecondary(g, inst)
	}
	return st
}

// Reset restarts the iteration from the first slot.
func (it *Iterator) Reset() {
	it.index = 0
}
