// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import "cogentcore.org/core/math32"

// Builder assembles a [Model] residue by residue.
type Builder struct {
	model *Model
}

// NewBuilder returns a new [Builder] for a model with the given label.
func NewBuilder(label string) *Builder {
	return &Builder{model: &Model{Label: label}}
}

// AddResidue starts a new residue; subsequent elements belong to it.
func (b *Builder) AddResidue(name string, seqID int, chainID string, kind ResidueKinds) *Builder {
	b.closeResidue()
	n := len(b.model.Elements)
	b.model.Residues = append(b.model.Residues, Residue{
		Name: name, SeqID: seqID, ChainID: chainID, Kind: kind,
		Start: n, End: n, Trace: -1,
	})
	return b
}

// AddElement adds an atom to the current residue, starting an
// unnamed residue if there is none, and returns its index.
func (b *Builder) AddElement(symbol, name string, pos math32.Vector3) int {
	return b.add(Element{Symbol: symbol, Name: name, Position: pos})
}

// AddSphere adds a coarse grained sphere to the current residue
// and returns its index.
func (b *Builder) AddSphere(name string, pos math32.Vector3, radius float32) int {
	return b.add(Element{Name: name, Position: pos, Radius: radius})
}

func (b *Builder) add(e Element) int {
	if len(b.model.Residues) == 0 {
		b.AddResidue("UNK", 1, "", Other)
	}
	e.Residue = len(b.model.Residues) - 1
	b.model.Elements = append(b.model.Elements, e)
	b.model.Residues[e.Residue].End = len(b.model.Elements)
	return len(b.model.Elements) - 1
}

// AddBond adds a bond between two element indexes.
func (b *Builder) AddBond(a, c, order int) *Builder {
	b.model.Bonds = append(b.model.Bonds, Bond{A: a, B: c, Order: order})
	return b
}

func (b *Builder) closeResidue() {
	n := len(b.model.Residues)
	if n == 0 {
		return
	}
	r := &b.model.Residues[n-1]
	r.Trace = traceElement(b.model, r)
}

// traceElement picks CA for amino acids and P (or C4') for
// nucleotides. Polymer residues with a single element are traced
// through it, which covers CA-only and coarse grained models.
func traceElement(m *Model, r *Residue) int {
	if !r.Kind.IsPolymer() || r.End == r.Start {
		return -1
	}
	names := []string{"CA"}
	if r.Kind == Nucleotide {
		names = []string{"P", "C4'"}
	}
	for _, nm := range names {
		for i := r.Start; i < r.End; i++ {
			if m.Elements[i].Name == nm {
				return i
			}
		}
	}
	if r.End-r.Start == 1 {
		return r.Start
	}
	return -1
}

// Model finishes and returns the model. The builder must not be
// used afterwards.
func (b *Builder) Model() *Model {
	b.closeResidue()
	m := b.model
	b.model = nil
	return m
}
