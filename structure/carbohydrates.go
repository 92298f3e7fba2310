// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import "cogentcore.org/core/math32"

// CarbohydrateElement is one monosaccharide residue placed in
// the structure.
type CarbohydrateElement struct {
	Unit    *Unit
	Residue int

	// AnomericCarbon is the element index of the anomeric carbon
	// (C1, or the first ring atom if there is no C1).
	AnomericCarbon int

	// Center is the mean position of the residue in structure coordinates.
	Center math32.Vector3
}

// CarbohydrateLink connects two [CarbohydrateElement]s by index.
type CarbohydrateLink struct {
	A, B int
}

// Carbohydrates are the carbohydrate tables of a [Structure].
type Carbohydrates struct {
	Elements []CarbohydrateElement
	Links    []CarbohydrateLink
}

// Carbohydrates returns the carbohydrate tables, computing them on
// first use. It is safe for concurrent use.
func (s *Structure) Carbohydrates() *Carbohydrates {
	s.carbOnce.Do(func() {
		s.carbohydrates = ComputeCarbohydrates(s)
	})
	return s.carbohydrates
}

// ComputeCarbohydrates finds all saccharide residues of atomic units
// and links every pair of them connected by a bond.
func ComputeCarbohydrates(s *Structure) *Carbohydrates {
	c := &Carbohydrates{}
	for _, u := range s.Units {
		if u.Kind != Atomic {
			continue
		}
		m := u.Model
		// residue index -> carbohydrate element index, for this unit
		byResidue := map[int]int{}
		for ri := range m.Residues {
			r := &m.Residues[ri]
			if r.Kind != Saccharide || r.End == r.Start {
				continue
			}
			anomeric := r.Start
			var center math32.Vector3
			for ei := r.Start; ei < r.End; ei++ {
				if m.Elements[ei].Name == "C1" {
					anomeric = ei
				}
				center = center.Add(u.Position(ei))
			}
			center = center.DivScalar(float32(r.End - r.Start))
			byResidue[ri] = len(c.Elements)
			c.Elements = append(c.Elements, CarbohydrateElement{
				Unit:           u,
				Residue:        ri,
				AnomericCarbon: anomeric,
				Center:         center,
			})
		}
		for _, b := range m.Bonds {
			ra := m.Elements[b.A].Residue
			rb := m.Elements[b.B].Residue
			if ra == rb {
				continue
			}
			ca, oka := byResidue[ra]
			cb, okb := byResidue[rb]
			if oka && okb {
				c.Links = append(c.Links, CarbohydrateLink{A: ca, B: cb})
			}
		}
	}
	return c
}
