// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package marker holds the per-slot highlight and selection state
// of a visual.
package marker

import (
	"fmt"
	"strings"

	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/valuecell"
)

// Flags are the bits of one marker byte.
type Flags uint8

const (
	// None is an unmarked slot.
	None Flags = 0

	// Highlighted is set while the slot is hovered.
	Highlighted Flags = 1 << 0

	// Selected is set while the slot is selected.
	Selected Flags = 1 << 1
)

// Actions are the marking operations.
type Actions int32

const (
	Highlight Actions = iota
	RemoveHighlight
	Select
	Deselect
	ToggleHighlight
	ToggleSelect
	Clear
)

var actionNames = [...]string{"highlight", "remove-highlight", "select", "deselect", "toggle-highlight", "toggle-select", "clear"}

// String returns the name of the action.
func (a Actions) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Actions(%d)", int32(a))
	}
	return actionNames[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Actions, error) {
	nm := strings.ToLower(strings.TrimSpace(name))
	for i, an := range actionNames {
		if an == nm {
			return Actions(i), nil
		}
	}
	return 0, fmt.Errorf("marker.ParseAction: unknown action %q", name)
}

// apply returns the new value of one marker byte.
func apply(v uint8, action Actions) uint8 {
	switch action {
	case Highlight:
		return v | uint8(Highlighted)
	case RemoveHighlight:
		return v &^ uint8(Highlighted)
	case Select:
		return v | uint8(Selected)
	case Deselect:
		return v &^ uint8(Selected)
	case ToggleHighlight:
		return v ^ uint8(Highlighted)
	case ToggleSelect:
		return v ^ uint8(Selected)
	case Clear:
		return 0
	}
	return v
}

// ApplyAction applies the action to array[start:end] and returns
// whether any byte changed.
func ApplyAction(array []uint8, start, end int, action Actions) bool {
	changed := false
	for i := start; i < end; i++ {
		v := array[i]
		nv := apply(v, action)
		if nv != v {
			array[i] = nv
			changed = true
		}
	}
	return changed
}

// Data is the marker buffer of one visual: one byte per slot.
// It is only mutated through [Data.Apply].
type Data struct {
	Cell *valuecell.Cell[[]uint8]
}

// New returns marker data for count slots, reusing the storage of
// prev if given. All slots are cleared.
func New(count int, prev *Data) *Data {
	if prev == nil {
		return &Data{Cell: valuecell.New(make([]uint8, count))}
	}
	b := buffer.From(prev.Cell.Value())
	b.Resize(count)
	clear(b.Data())
	valuecell.Update(prev.Cell, b.Data())
	return prev
}

// Count returns the number of slots.
func (d *Data) Count() int {
	return len(d.Cell.Value())
}

// Apply applies the action to slots [start, end), clamped to the
// buffer, and bumps the cell version only if a byte changed.
func (d *Data) Apply(start, end int, action Actions) bool {
	arr := d.Cell.Value()
	start = max(start, 0)
	end = min(end, len(arr))
	if start >= end {
		return false
	}
	if !ApplyAction(arr, start, end, action) {
		return false
	}
	valuecell.Update(d.Cell, arr)
	return true
}

// At returns the flags of one slot.
func (d *Data) At(i int) Flags {
	return Flags(d.Cell.Value()[i])
}
