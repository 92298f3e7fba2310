// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loci defines Loci, structure relative selections that
// picking produces and marking consumes.
package loci

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/structure"
)

// Loci is a selection of parts of a structure or shape.
// The concrete types are [Empty], [Every], [Elements] and [Links]
// plus the types of other packages implementing this interface.
type Loci interface {
	LociKind() string
}

type emptyLoci struct{}

func (emptyLoci) LociKind() string { return "empty" }

type everyLoci struct{}

func (everyLoci) LociKind() string { return "every" }

var (
	// Empty is the Loci that matches nothing. It is returned
	// whenever picking or intersecting finds no match.
	Empty Loci = emptyLoci{}

	// Every matches everything.
	Every Loci = everyLoci{}
)

// Bounded is implemented by Loci that know their own bounding sphere.
type Bounded interface {
	BoundingSphere() (math32.Sphere, bool)
}

// Labeled is implemented by Loci that know their own label.
type Labeled interface {
	Label() string
}

// Equaler is implemented by Loci of other packages for [AreEqual].
type Equaler interface {
	EqualLoci(other Loci) bool
}

// Sizer is implemented by Loci that can tell if they select anything.
type Sizer interface {
	Size() int
}

// IsEmpty returns whether the loci selects nothing.
func IsEmpty(l Loci) bool {
	if l == nil || l == Empty {
		return true
	}
	if s, ok := l.(Sizer); ok {
		return s.Size() == 0
	}
	return false
}

// IsEvery returns whether the loci is [Every].
func IsEvery(l Loci) bool {
	return l == Every
}

// UnitElements are sorted, unique element indexes of one unit.
type UnitElements struct {
	Unit    *structure.Unit
	Indices []int
}

// Has returns whether the element index is included.
func (u UnitElements) Has(index int) bool {
	_, ok := slices.BinarySearch(u.Indices, index)
	return ok
}

// Elements selects elements of a structure.
type Elements struct {
	Structure *structure.Structure
	Units     []UnitElements
}

// LociKind implements [Loci].
func (Elements) LociKind() string { return "elements" }

// NewElements returns an [Elements] loci for the given element
// indexes of one unit. The indexes are sorted and deduplicated.
func NewElements(s *structure.Structure, u *structure.Unit, indices ...int) Elements {
	ix := slices.Clone(indices)
	slices.Sort(ix)
	ix = slices.Compact(ix)
	return Elements{Structure: s, Units: []UnitElements{{Unit: u, Indices: ix}}}
}

// Size returns the number of selected elements.
func (e Elements) Size() int {
	n := 0
	for _, u := range e.Units {
		n += len(u.Indices)
	}
	return n
}

// ForUnit returns the selection for the given unit, if any.
func (e Elements) ForUnit(u *structure.Unit) (UnitElements, bool) {
	for _, ue := range e.Units {
		if ue.Unit == u {
			return ue, true
		}
	}
	return UnitElements{}, false
}

// Links selects links between elements.
type Links struct {
	Structure *structure.Structure
	Links     []structure.LinkLocation
}

// LociKind implements [Loci].
func (Links) LociKind() string { return "links" }

// Size returns the number of selected links.
func (l Links) Size() int {
	return len(l.Links)
}

// AreEqual returns whether both loci select the same things.
func AreEqual(a, b Loci) bool {
	if IsEmpty(a) && IsEmpty(b) {
		return true
	}
	switch at := a.(type) {
	case Elements:
		bt, ok := b.(Elements)
		if !ok || at.Structure != bt.Structure || len(at.Units) != len(bt.Units) {
			return false
		}
		for i, u := range at.Units {
			if u.Unit != bt.Units[i].Unit || !slices.Equal(u.Indices, bt.Units[i].Indices) {
				return false
			}
		}
		return true
	case Links:
		bt, ok := b.(Links)
		return ok && at.Structure == bt.Structure && slices.Equal(at.Links, bt.Links)
	case Equaler:
		return at.EqualLoci(b)
	}
	return IsEvery(a) && IsEvery(b)
}

// BoundingSphere returns the bounding sphere of the loci in structure
// coordinates. It returns false for empty loci and loci without
// positions.
func BoundingSphere(l Loci) (math32.Sphere, bool) {
	if IsEmpty(l) {
		return math32.Sphere{}, false
	}
	var pts []math32.Vector3
	switch lt := l.(type) {
	case Bounded:
		return lt.BoundingSphere()
	case Elements:
		for _, u := range lt.Units {
			for _, i := range u.Indices {
				pts = append(pts, u.Unit.Position(i))
			}
		}
	case Links:
		for _, ln := range lt.Links {
			pts = append(pts, ln.AUnit.Position(ln.AIndex), ln.BUnit.Position(ln.BIndex))
		}
	}
	return SphereFromPoints(pts)
}

// SphereFromPoints returns a sphere centered on the bounding box
// of the points and enclosing all of them.
func SphereFromPoints(pts []math32.Vector3) (math32.Sphere, bool) {
	if len(pts) == 0 {
		return math32.Sphere{}, false
	}
	bb := math32.B3Empty()
	for _, p := range pts {
		bb.ExpandByPoint(p)
	}
	c := bb.Center()
	var r float32
	for _, p := range pts {
		r = math32.Max(r, p.Sub(c).Length())
	}
	return math32.Sphere{Center: c, Radius: r}, true
}

// Label returns a human readable description of the loci.
func Label(l Loci) string {
	if lb, ok := l.(Labeled); ok {
		return lb.Label()
	}
	if IsEvery(l) {
		return "Everything"
	}
	if IsEmpty(l) {
		return "Nothing"
	}
	switch lt := l.(type) {
	case Elements:
		if lt.Size() == 1 {
			for _, u := range lt.Units {
				if len(u.Indices) == 1 {
					return structure.ElementLocation{Unit: u.Unit, Element: u.Indices[0]}.String()
				}
			}
		}
		if len(lt.Units) == 1 {
			if r, ok := wholeResidue(lt.Units[0]); ok {
				return fmt.Sprintf("%s %s %d", r.ChainID, r.Name, r.SeqID)
			}
		}
		return fmt.Sprintf("%d elements", lt.Size())
	case Links:
		if len(lt.Links) == 1 {
			return "Link " + lt.Links[0].String()
		}
		return fmt.Sprintf("%d links", len(lt.Links))
	}
	return l.LociKind()
}

// wholeResidue returns the residue if the selection is exactly
// all elements of one residue.
func wholeResidue(u UnitElements) (*structure.Residue, bool) {
	r := u.Unit.Model.ResidueOf(u.Indices[0])
	if len(u.Indices) != r.End-r.Start {
		return nil, false
	}
	for i, ix := range u.Indices {
		if ix != r.Start+i {
			return nil, false
		}
	}
	return r, true
}
