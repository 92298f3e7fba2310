// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"slices"

	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
)

// StructureProps select what part of a unit group is drawn.
// Changing them changes counts.
type StructureProps struct {
	// UnitKinds are the kinds of units drawn; groups of other kinds
	// get an empty geometry.
	UnitKinds []structure.UnitKinds

	// IgnoreHydrogens skips hydrogen elements.
	IgnoreHydrogens bool
}

// DefaultStructureProps returns props drawing all units and elements.
func DefaultStructureProps() StructureProps {
	return StructureProps{UnitKinds: []structure.UnitKinds{structure.Atomic, structure.Spheres}}
}

// Includes returns whether units of kind k are drawn.
func (p StructureProps) Includes(k structure.UnitKinds) bool {
	return slices.Contains(p.UnitKinds, k)
}

// IncludesElement returns whether element e of unit u is drawn.
func (p StructureProps) IncludesElement(u *structure.Unit, e int) bool {
	return !p.IgnoreHydrogens || !structure.IsHydrogen(u.Model.Elements[e].Symbol)
}

// Equal returns whether both select the same.
func (p StructureProps) Equal(o StructureProps) bool {
	return p.IgnoreHydrogens == o.IgnoreHydrogens && slices.Equal(p.UnitKinds, o.UnitKinds)
}

// elementIterator iterates over every element of the representative
// unit, once per unit of the group.
func elementIterator(g structure.UnitGroup) *location.Iterator {
	return location.NewIterator(g.Representative().ElementCount(), len(g.Units), func(group, instance int) location.Location {
		return structure.ElementLocation{Unit: g.Units[instance], Element: group}
	}, location.SecondaryInstances)
}

// residueIterator iterates over every residue of the representative
// unit, located at the trace element, or the first element.
func residueIterator(g structure.UnitGroup) *location.Iterator {
	m := g.Representative().Model
	return location.NewIterator(len(m.Residues), len(g.Units), func(group, instance int) location.Location {
		r := &m.Residues[group]
		e := r.Trace
		if e < 0 {
			e = r.Start
		}
		if e >= r.End && r.Trace < 0 {
			return location.Null
		}
		return structure.ElementLocation{Unit: g.Units[instance], Element: e}
	}, location.SecondaryInstances)
}

// bondIterator iterates over every bond of the representative unit.
func bondIterator(g structure.UnitGroup) *location.Iterator {
	m := g.Representative().Model
	return location.NewIterator(len(m.Bonds), len(g.Units), func(group, instance int) location.Location {
		b := m.Bonds[group]
		u := g.Units[instance]
		return structure.LinkLocation{AUnit: u, AIndex: b.A, BUnit: u, BIndex: b.B}
	}, nil)
}

// elementLoci returns the loci of the element a picking id points at.
func elementLoci(id renderobject.PickingID, g structure.UnitGroup) loci.Loci {
	return loci.NewElements(g.Structure, g.Units[id.InstanceID], id.GroupID)
}

// residueLoci returns the loci of all elements of the residue a
// picking id points at.
func residueLoci(id renderobject.PickingID, g structure.UnitGroup) loci.Loci {
	u := g.Units[id.InstanceID]
	r := &u.Model.Residues[id.GroupID]
	if r.Start == r.End {
		return loci.Empty
	}
	ix := make([]int, 0, r.End-r.Start)
	for e := r.Start; e < r.End; e++ {
		ix = append(ix, e)
	}
	return loci.NewElements(g.Structure, u, ix...)
}

// bondLoci returns the loci of the bond a picking id points at.
func bondLoci(id renderobject.PickingID, g structure.UnitGroup) loci.Loci {
	u := g.Units[id.InstanceID]
	b := u.Model.Bonds[id.GroupID]
	return loci.Links{Structure: g.Structure, Links: []structure.LinkLocation{{AUnit: u, AIndex: b.A, BUnit: u, BIndex: b.B}}}
}

// eachInstance calls fn for every selection of a unit of the group,
// with the instance index of the unit.
func eachInstance(l loci.Elements, g structure.UnitGroup, fn func(instance int, ue loci.UnitElements) bool) bool {
	changed := false
	for _, ue := range l.Units {
		for i, u := range g.Units {
			if u == ue.Unit && fn(i, ue) {
				changed = true
			}
		}
	}
	return changed
}

// eachElement marks the slots of the selected elements, with one
// group per element.
func eachElement(l loci.Loci, g structure.UnitGroup, apply func(start, end int) bool) bool {
	el, ok := l.(loci.Elements)
	if !ok {
		return false
	}
	n := g.Representative().ElementCount()
	return eachInstance(el, g, func(instance int, ue loci.UnitElements) bool {
		changed := false
		for _, e := range ue.Indices {
			if e >= 0 && e < n && apply(instance*n+e, instance*n+e+1) {
				changed = true
			}
		}
		return changed
	})
}

// eachResidue marks the slots of the residues containing any selected
// element, with one group per residue.
func eachResidue(l loci.Loci, g structure.UnitGroup, apply func(start, end int) bool) bool {
	el, ok := l.(loci.Elements)
	if !ok {
		return false
	}
	m := g.Representative().Model
	n := len(m.Residues)
	return eachInstance(el, g, func(instance int, ue loci.UnitElements) bool {
		changed := false
		last := -1
		for _, e := range ue.Indices {
			if e < 0 || e >= len(m.Elements) {
				continue
			}
			r := m.Elements[e].Residue
			if r == last {
				continue
			}
			last = r
			if apply(instance*n+r, instance*n+r+1) {
				changed = true
			}
		}
		return changed
	})
}

// eachBond marks the slots of the selected bonds. Element loci select
// bonds with both ends selected.
func eachBond(l loci.Loci, g structure.UnitGroup, apply func(start, end int) bool) bool {
	m := g.Representative().Model
	n := len(m.Bonds)
	changed := false
	switch l := l.(type) {
	case loci.Links:
		for _, lk := range l.Links {
			if lk.AUnit != lk.BUnit {
				continue
			}
			bi := m.BondIndex(lk.AIndex, lk.BIndex)
			if bi < 0 {
				continue
			}
			for i, u := range g.Units {
				if u == lk.AUnit && apply(i*n+bi, i*n+bi+1) {
					changed = true
				}
			}
		}
	case loci.Elements:
		changed = eachInstance(l, g, func(instance int, ue loci.UnitElements) bool {
			c := false
			for bi, b := range m.Bonds {
				if ue.Has(b.A) && ue.Has(b.B) && apply(instance*n+bi, instance*n+bi+1) {
					c = true
				}
			}
			return c
		})
	}
	return changed
}
