// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"fmt"
	"sort"

	"cogentcore.org/core/math32"
)

// helixPoint returns a point on a helix along z.
func helixPoint(radius, angleDeg, z float32) math32.Vector3 {
	a := math32.DegToRad(angleDeg)
	return math32.Vec3(radius*math32.Cos(a), radius*math32.Sin(a), z)
}

// HelixModel returns an alpha helix of amino acids with backbone
// atoms N, CA, C, O in chain "A". If gapAt > 0, the sequence ids jump
// by 10 from residue gapAt on, leaving a gap in the chain.
func HelixModel(residues, gapAt int) *Model {
	b := NewBuilder("helix")
	prevC := -1
	seq := 1
	for i := 0; i < residues; i++ {
		if gapAt > 0 && i == gapAt {
			seq += 10
		}
		b.AddResidue("ALA", seq, "A", Amino)
		seq++
		ang := float32(i) * 100
		z := float32(i) * 1.5
		n := b.AddElement("N", "N", helixPoint(1.6, ang-28, z-0.45))
		ca := b.AddElement("C", "CA", helixPoint(2.3, ang, z))
		c := b.AddElement("C", "C", helixPoint(1.6, ang+28, z+0.45))
		o := b.AddElement("O", "O", helixPoint(1.2, ang+40, z+1.5))
		b.AddBond(n, ca, 1).AddBond(ca, c, 1).AddBond(c, o, 2)
		if prevC >= 0 && !(gapAt > 0 && i == gapAt) {
			b.AddBond(prevC, n, 1)
		}
		prevC = c
	}
	return b.Model()
}

// NucleicModel returns a single stranded nucleic acid with atoms
// P, C4', N1 and C2 per nucleotide in chain "B".
func NucleicModel(nucleotides int) *Model {
	b := NewBuilder("nucleic")
	prevC4 := -1
	for i := 0; i < nucleotides; i++ {
		name := "DA"
		if i%2 == 1 {
			name = "DT"
		}
		b.AddResidue(name, i+1, "B", Nucleotide)
		ang := float32(i) * 36
		z := float32(i) * 3.4
		p := b.AddElement("P", "P", helixPoint(8.9, ang, z))
		c4 := b.AddElement("C", "C4'", helixPoint(7.6, ang+8, z+0.6))
		n1 := b.AddElement("N", "N1", helixPoint(5.2, ang+14, z+0.9))
		c2 := b.AddElement("C", "C2", helixPoint(3.6, ang+18, z+0.9))
		b.AddBond(p, c4, 1).AddBond(c4, n1, 1).AddBond(n1, c2, 2)
		if prevC4 >= 0 {
			b.AddBond(prevC4, p, 1)
		}
		prevC4 = c4
	}
	return b.Model()
}

// CarbohydrateModel returns a linear chain of glucose rings
// (C1-C5, O5) connected C1 to C4 of the next ring.
func CarbohydrateModel(rings int) *Model {
	b := NewBuilder("carbohydrate")
	names := []string{"C1", "C2", "C3", "C4", "C5", "O5"}
	prevC1 := -1
	for i := 0; i < rings; i++ {
		b.AddResidue("GLC", i+1, "C", Saccharide)
		center := math32.Vec3(float32(i)*5.5, 0, 0)
		first := -1
		for j, nm := range names {
			sym := "C"
			if nm[0] == 'O' {
				sym = "O"
			}
			p := helixPoint(1.4, float32(j)*60, 0).Add(center)
			ei := b.AddElement(sym, nm, p)
			if j == 0 {
				first = ei
			} else {
				b.AddBond(ei-1, ei, 1)
			}
		}
		b.AddBond(first+len(names)-1, first, 1)
		if prevC1 >= 0 {
			b.AddBond(prevC1, first+3, 1)
		}
		prevC1 = first
	}
	return b.Model()
}

// Translated returns a copy of the unit placed at the given offset.
func Translated(id int, kind UnitKinds, m *Model, offset math32.Vector3) *Unit {
	u := NewUnit(id, kind, m)
	u.Operator[12] = offset.X
	u.Operator[13] = offset.Y
	u.Operator[14] = offset.Z
	return u
}

var demos = map[string]func() *Structure{
	"helix": func() *Structure {
		m := HelixModel(12, 0)
		return New(NewUnit(0, Atomic, m), Translated(1, Atomic, m, math32.Vec3(20, 0, 0)))
	},
	"nucleic": func() *Structure {
		return New(NewUnit(0, Atomic, NucleicModel(10)))
	},
	"carbohydrate": func() *Structure {
		return New(NewUnit(0, Atomic, CarbohydrateModel(4)))
	},
	"mixed": func() *Structure {
		return New(
			NewUnit(0, Atomic, HelixModel(16, 8)),
			Translated(1, Atomic, NucleicModel(8), math32.Vec3(-25, 0, 0)),
			Translated(2, Atomic, CarbohydrateModel(3), math32.Vec3(0, 25, 0)),
		)
	},
}

// Demo returns one of the named synthetic structures, see [DemoNames].
func Demo(name string) (*Structure, error) {
	fn, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("structure.Demo: unknown demo %q, have %v", name, DemoNames())
	}
	return fn(), nil
}

// DemoNames returns the names accepted by [Demo], sorted.
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for nm := range demos {
		names = append(names, nm)
	}
	sort.Strings(names)
	return names
}
