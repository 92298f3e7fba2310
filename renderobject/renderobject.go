// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderobject defines the opaque target that visuals
// populate: named, versioned value slots plus render state.
// Binding the slots to a GPU is the job of an external renderer.
package renderobject

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"cogentcore.org/mol/valuecell"
)

// Kind is the kind of geometry a render object draws.
type Kind int32

const (
	Points Kind = iota
	Mesh
	Lines
	Spheres
	Text
)

var kindNames = [...]string{"points", "mesh", "lines", "spheres", "text"}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// Names of the slots shared by all kinds.
const (
	APosition      = "aPosition"
	AGroup         = "aGroup"
	Elements       = "elements"
	ATransform     = "aTransform"
	UColor         = "uColor"
	TColor         = "tColor"
	DColorType     = "dColorType"
	USize          = "uSize"
	TSize          = "tSize"
	DSizeType      = "dSizeType"
	TMarker        = "tMarker"
	UAlpha         = "uAlpha"
	UInstanceCount = "uInstanceCount"
	UGroupCount    = "uGroupCount"
	DrawCount      = "drawCount"
	BoundingSphere = "boundingSphere"
)

// Values are the named slots of a render object.
type Values map[string]valuecell.Versioned

// Names returns the slot names, sorted.
func (v Values) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Get returns the typed cell of the named slot, or nil if there is
// no such slot or it holds another type.
func Get[T any](v Values, name string) *valuecell.Cell[T] {
	c, _ := v[name].(*valuecell.Cell[T])
	return c
}

// State is the render state of a render object.
type State struct {
	Visible   bool
	Pickable  bool
	Opaque    bool
	DepthMask bool
}

// RenderObject is a set of values drawn as one unit.
type RenderObject struct {
	// ID is unique for the lifetime of the process and is the object
	// part of picking ids.
	ID int

	Kind   Kind
	Values Values
	State  *valuecell.Cell[State]
}

var lastID atomic.Int64

// New returns a new [RenderObject] with a fresh id.
func New(kind Kind, values Values, state State) *RenderObject {
	return &RenderObject{
		ID:     int(lastID.Add(1)),
		Kind:   kind,
		Values: values,
		State:  valuecell.New(state),
	}
}

// PendingUploads returns the names of the slots that changed since
// the tracker last saw them.
func (o *RenderObject) PendingUploads(t *valuecell.Tracker) []string {
	var names []string
	for _, nm := range o.Values.Names() {
		if t.NeedsUpload(o.Values[nm]) {
			names = append(names, nm)
		}
	}
	return names
}

// MarkUploaded records all slots as seen by the tracker.
func (o *RenderObject) MarkUploaded(t *valuecell.Tracker) {
	for _, c := range o.Values {
		t.MarkUploaded(c)
	}
}

// PickingID identifies what was drawn at a pixel.
type PickingID struct {
	ObjectID   int
	InstanceID int
	GroupID    int
}

// String returns a compact representation of the id.
func (p PickingID) String() string {
	return fmt.Sprintf("%d/%d/%d", p.ObjectID, p.InstanceID, p.GroupID)
}
