// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package structure is the minimal structural model consumed by the
// representation pipeline: units of elements with residues and bonds,
// symmetry operators, and carbohydrate tables. Parsing of file formats
// happens elsewhere; models are assembled with a [Builder].
package structure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cogentcore.org/core/math32"
)

// ErrMalformed is returned for structures with inconsistent indexes.
var ErrMalformed = errors.New("structure: malformed")

// UnitKinds are the kinds of units.
type UnitKinds int32

const (
	// Atomic units contain atoms with chemical element symbols.
	Atomic UnitKinds = iota

	// Spheres units contain coarse grained spheres with explicit radii.
	Spheres
)

// String returns the name of the unit kind.
func (k UnitKinds) String() string {
	if k == Spheres {
		return "spheres"
	}
	return "atomic"
}

// ParseUnitKinds returns the unit kind with the given name.
func ParseUnitKinds(name string) (UnitKinds, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "atomic":
		return Atomic, nil
	case "spheres":
		return Spheres, nil
	}
	return Atomic, fmt.Errorf("structure.ParseUnitKinds: unknown unit kind %q", name)
}

// Unit is a placement of a [Model] in the structure.
type Unit struct {
	// ID is unique within the structure.
	ID int

	Kind  UnitKinds
	Model *Model

	// Operator transforms model coordinates into structure coordinates.
	Operator math32.Matrix4

	// InvariantID is shared by all units with the same model and kind,
	// i.e. units that only differ by their operator.
	InvariantID int
}

// NewUnit returns a new unit with the identity operator.
func NewUnit(id int, kind UnitKinds, model *Model) *Unit {
	return &Unit{ID: id, Kind: kind, Model: model, Operator: *math32.Identity4()}
}

// ElementCount returns the number of elements in the unit.
func (u *Unit) ElementCount() int {
	return len(u.Model.Elements)
}

// Position returns the structure coordinates of the given element.
func (u *Unit) Position(element int) math32.Vector3 {
	return u.Model.Elements[element].Position.MulMatrix4(&u.Operator)
}

// Structure is a set of units.
type Structure struct {
	Units []*Unit

	carbOnce      sync.Once
	carbohydrates *Carbohydrates
}

// New returns a new structure of the given units, assigning
// invariant ids so that units sharing a model and kind share one.
func New(units ...*Unit) *Structure {
	type key struct {
		m *Model
		k UnitKinds
	}
	ids := map[key]int{}
	for _, u := range units {
		k := key{u.Model, u.Kind}
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		u.InvariantID = id
	}
	return &Structure{Units: units}
}

// ElementCount returns the total number of elements over all units.
func (s *Structure) ElementCount() int {
	n := 0
	for _, u := range s.Units {
		n += u.ElementCount()
	}
	return n
}

// UnitIndex returns the index of the unit in [Structure.Units], or -1.
func (s *Structure) UnitIndex(u *Unit) int {
	for i, su := range s.Units {
		if su == u {
			return i
		}
	}
	return -1
}

// UnitByID returns the unit with the given id, or nil.
func (s *Structure) UnitByID(id int) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Validate checks all models of the structure.
func (s *Structure) Validate() error {
	seen := map[*Model]bool{}
	ids := map[int]bool{}
	for _, u := range s.Units {
		if u.Model == nil {
			return fmt.Errorf("%w: unit %d has no model", ErrMalformed, u.ID)
		}
		if ids[u.ID] {
			return fmt.Errorf("%w: duplicate unit id %d", ErrMalformed, u.ID)
		}
		ids[u.ID] = true
		if seen[u.Model] {
			continue
		}
		seen[u.Model] = true
		if err := u.Model.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UnitGroup is a set of units sharing an invariant id. The first unit
// is the representative whose model geometry is built; every unit is
// one instance.
type UnitGroup struct {
	Structure *Structure
	Units     []*Unit
}

// Key is a stable identifier of the group within a structure,
// used to match groups between rebuilds.
func (g UnitGroup) Key() string {
	return strconv.Itoa(g.Units[0].InvariantID) + ":" + g.Units[0].Kind.String()
}

// Representative returns the first unit of the group.
func (g UnitGroup) Representative() *Unit {
	return g.Units[0]
}

// UnitGroups returns the units grouped by invariant id, in order of
// first appearance.
func (s *Structure) UnitGroups() []UnitGroup {
	var groups []UnitGroup
	index := map[int]int{}
	for _, u := range s.Units {
		gi, ok := index[u.InvariantID]
		if !ok {
			gi = len(groups)
			index[u.InvariantID] = gi
			groups = append(groups, UnitGroup{Structure: s})
		}
		groups[gi].Units = append(groups[gi].Units, u)
	}
	return groups
}
