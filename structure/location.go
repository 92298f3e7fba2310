// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"fmt"
	"strings"
)

// ElementLocation points at one element of a unit.
type ElementLocation struct {
	Unit    *Unit
	Element int
}

// LocationKind implements location.Location.
func (l ElementLocation) LocationKind() string { return "element" }

// Model returns the element record.
func (l ElementLocation) Model() *Element {
	return &l.Unit.Model.Elements[l.Element]
}

// Residue returns the residue of the element.
func (l ElementLocation) Residue() *Residue {
	return l.Unit.Model.ResidueOf(l.Element)
}

// String returns a short label such as "A ALA 12 CA".
func (l ElementLocation) String() string {
	e := l.Model()
	r := l.Residue()
	return strings.TrimSpace(fmt.Sprintf("%s %s %d %s", r.ChainID, r.Name, r.SeqID, e.Name))
}

// LinkLocation points at a link between two elements, possibly in
// different units.
type LinkLocation struct {
	AUnit  *Unit
	AIndex int
	BUnit  *Unit
	BIndex int
}

// LocationKind implements location.Location.
func (l LinkLocation) LocationKind() string { return "link" }

// A returns the location of the first element.
func (l LinkLocation) A() ElementLocation {
	return ElementLocation{Unit: l.AUnit, Element: l.AIndex}
}

// B returns the location of the second element.
func (l LinkLocation) B() ElementLocation {
	return ElementLocation{Unit: l.BUnit, Element: l.BIndex}
}

// String returns a label of both ends.
func (l LinkLocation) String() string {
	return l.A().String() + " - " + l.B().String()
}

// CarbohydrateLocation points at a carbohydrate element of a structure.
type CarbohydrateLocation struct {
	Structure *Structure
	Index     int
}

// LocationKind implements location.Location.
func (l CarbohydrateLocation) LocationKind() string { return "carbohydrate" }

// Element returns the carbohydrate element.
func (l CarbohydrateLocation) Element() *CarbohydrateElement {
	return &l.Structure.Carbohydrates().Elements[l.Index]
}
