// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"fmt"
	"sync"

	"cogentcore.org/core/math32"
)

// ResidueKinds are the kinds of residues, as far as
// representations care about them.
type ResidueKinds int32

const (
	// Other is any residue that is not part of a polymer.
	Other ResidueKinds = iota

	// Amino is an amino acid, traced through its CA atom.
	Amino

	// Nucleotide is a nucleotide, traced through its P (or C4') atom.
	Nucleotide

	// Saccharide is a monosaccharide.
	Saccharide
)

// String returns the name of the residue kind.
func (k ResidueKinds) String() string {
	switch k {
	case Amino:
		return "amino"
	case Nucleotide:
		return "nucleotide"
	case Saccharide:
		return "saccharide"
	}
	return "other"
}

// IsPolymer returns whether residues of this kind form a polymer trace.
func (k ResidueKinds) IsPolymer() bool {
	return k == Amino || k == Nucleotide
}

// Element is one atom, or one coarse grained sphere.
type Element struct {
	// Symbol is the chemical element symbol, e.g. "C".
	Symbol string

	// Name is the atom name, e.g. "CA".
	Name string

	// Position in model coordinates.
	Position math32.Vector3

	// Radius is only used by [Spheres] units.
	Radius float32

	// Residue is the index of the residue containing the element.
	Residue int
}

// Residue is a contiguous range of elements.
type Residue struct {
	Name    string
	SeqID   int
	ChainID string
	Kind    ResidueKinds

	// Start and End delimit the element range [Start, End).
	Start, End int

	// Trace is the element index of the trace atom, or -1.
	Trace int
}

// Bond is a covalent bond between two elements of the same model.
type Bond struct {
	A, B  int
	Order int
}

// PolymerStep connects two consecutive polymer residues of a chain.
// Gap is set if the sequence ids are not consecutive.
type PolymerStep struct {
	A, B int
	Gap  bool
}

// Model is the topology and coordinates shared by all [Unit]s that
// are symmetry copies of each other. It must not be modified
// after it was built.
type Model struct {
	Label    string
	Elements []Element
	Residues []Residue
	Bonds    []Bond

	polymerOnce sync.Once
	polymer     []int
	steps       []PolymerStep

	bondOnce  sync.Once
	bondIndex map[[2]int]int
}

// ElementCount returns the number of elements.
func (m *Model) ElementCount() int {
	return len(m.Elements)
}

// ResidueOf returns the residue of the given element.
func (m *Model) ResidueOf(element int) *Residue {
	return &m.Residues[m.Elements[element].Residue]
}

func (m *Model) computePolymer() {
	m.polymerOnce.Do(func() {
		prev := -1
		for ri := range m.Residues {
			r := &m.Residues[ri]
			if !r.Kind.IsPolymer() || r.Trace < 0 {
				continue
			}
			m.polymer = append(m.polymer, ri)
			if prev >= 0 {
				p := &m.Residues[prev]
				if p.ChainID == r.ChainID && p.Kind == r.Kind {
					m.steps = append(m.steps, PolymerStep{A: prev, B: ri, Gap: r.SeqID != p.SeqID+1})
				}
			}
			prev = ri
		}
	})
}

// PolymerResidues returns the indexes of all residues that have a
// trace element, in order.
func (m *Model) PolymerResidues() []int {
	m.computePolymer()
	return m.polymer
}

// PolymerSteps returns the steps between consecutive polymer residues
// of the same chain and kind, in order.
func (m *Model) PolymerSteps() []PolymerStep {
	m.computePolymer()
	return m.steps
}

// BondIndex returns the index of the bond between elements a and b,
// in either order, or -1.
func (m *Model) BondIndex(a, b int) int {
	m.bondOnce.Do(func() {
		m.bondIndex = make(map[[2]int]int, len(m.Bonds))
		for i, bd := range m.Bonds {
			m.bondIndex[bondKey(bd.A, bd.B)] = i
		}
	})
	if i, ok := m.bondIndex[bondKey(a, b)]; ok {
		return i
	}
	return -1
}

func bondKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Validate returns an error wrapping [ErrMalformed] if any index in
// the model is out of range.
func (m *Model) Validate() error {
	ne := len(m.Elements)
	nr := len(m.Residues)
	for i, e := range m.Elements {
		if e.Residue < 0 || e.Residue >= nr {
			return fmt.Errorf("%w: element %d of %q refers to residue %d of %d", ErrMalformed, i, m.Label, e.Residue, nr)
		}
	}
	for i, r := range m.Residues {
		if r.Start < 0 || r.End > ne || r.Start > r.End {
			return fmt.Errorf("%w: residue %d of %q has element range [%d, %d) of %d", ErrMalformed, i, m.Label, r.Start, r.End, ne)
		}
		if r.Trace >= ne {
			return fmt.Errorf("%w: residue %d of %q has trace element %d of %d", ErrMalformed, i, m.Label, r.Trace, ne)
		}
	}
	for i, b := range m.Bonds {
		if b.A < 0 || b.A >= ne || b.B < 0 || b.B >= ne {
			return fmt.Errorf("%w: bond %d of %q connects %d-%d of %d", ErrMalformed, i, m.Label, b.A, b.B, ne)
		}
	}
	return nil
}
