// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
)

// Polymer visuals have one group per residue of the representative
// unit; residues without geometry simply draw nothing.

func tracePosition(m *structure.Model, residue int) math32.Vector3 {
	return m.Elements[m.Residues[residue].Trace].Position
}

// residueDef fills in the residue based parts of a polymer visual.
func residueDef[G geometry.Geometry, P any](d *Def[structure.UnitGroup, G, P]) *Def[structure.UnitGroup, G, P] {
	d.CreateLocationIterator = func(g structure.UnitGroup, _ P) *location.Iterator {
		return residueIterator(g)
	}
	d.GetLoci = func(id renderobject.PickingID, g structure.UnitGroup, _ P) loci.Loci {
		return residueLoci(id, g)
	}
	d.EachLocation = func(l loci.Loci, g structure.UnitGroup, _ P, apply func(start, end int) bool) bool {
		return eachResidue(l, g, apply)
	}
	return d
}

// PolymerTraceProps are the props of the polymer trace visual.
type PolymerTraceProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	// TraceRadius is the radius of the tube.
	TraceRadius    float32
	RadialSegments int
}

// DefaultPolymerTraceProps returns the defaults of [PolymerTraceProps].
func DefaultPolymerTraceProps() PolymerTraceProps {
	return PolymerTraceProps{MeshProps: geometry.DefaultMeshProps(), TraceRadius: 0.3, RadialSegments: 12}
}

var polymerTraceDef = residueDef(&Def[structure.UnitGroup, *geometry.Mesh, PolymerTraceProps]{
	Name: "polymer-trace",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props PolymerTraceProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		m := g.Representative().Model
		cp := geometry.CylinderProps{RadiusTop: props.TraceRadius, RadiusBottom: props.TraceRadius, RadialSegments: props.RadialSegments}
		steps := m.PolymerSteps()
		joints := m.PolymerResidues()
		sp := geometry.SpherePrimitive(0)
		b := geometry.NewMeshBuilder(tc, len(joints)*len(sp.Vertices)+len(steps)*4*max(cp.RadialSegments, 3),
			len(joints)*sp.TriangleCount()+len(steps)*2*geometry.CylinderTriangleCount(cp), prev)
		for i, r := range joints {
			if err := tc.Tick("Building trace joints", i, len(joints)); err != nil {
				return nil, err
			}
			b.SetGroup(r)
			b.AddSphere(tracePosition(m, r), props.TraceRadius, 0)
		}
		for i, st := range steps {
			if err := tc.Tick("Building trace", i, len(steps)); err != nil {
				return nil, err
			}
			if st.Gap {
				continue
			}
			a, c := tracePosition(m, st.A), tracePosition(m, st.B)
			mid := a.Add(c).MulScalar(0.5)
			b.SetGroup(st.A)
			b.AddCylinder(a, mid, cp)
			b.SetGroup(st.B)
			b.AddCylinder(mid, c, cp)
		}
		return b.Mesh(), nil
	},
	SetUpdateState: func(s *UpdateState, n, c PolymerTraceProps) {
		s.CreateGeometry = n.TraceRadius != c.TraceRadius || n.RadialSegments != c.RadialSegments
	},
	Utils: geometry.MeshUtils(func(p PolymerTraceProps) *geometry.MeshProps { return &p.MeshProps }),
})

// NewPolymerTrace returns a visual drawing a tube through the trace
// elements of consecutive polymer residues.
func NewPolymerTrace() *UnitsVisual[*geometry.Mesh, PolymerTraceProps] {
	return NewUnitsVisual(polymerTraceDef)
}

// PolymerGapProps are the props of the polymer gap visual.
type PolymerGapProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	GapRadius      float32
	RadialSegments int

	// DashCount is the number of dashes per gap.
	DashCount int
}

// DefaultPolymerGapProps returns the defaults of [PolymerGapProps].
func DefaultPolymerGapProps() PolymerGapProps {
	return PolymerGapProps{MeshProps: geometry.DefaultMeshProps(), GapRadius: 0.2, RadialSegments: 8, DashCount: 6}
}

var polymerGapDef = residueDef(&Def[structure.UnitGroup, *geometry.Mesh, PolymerGapProps]{
	Name: "polymer-gap",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props PolymerGapProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		m := g.Representative().Model
		cp := geometry.CylinderProps{RadiusTop: props.GapRadius, RadiusBottom: props.GapRadius, RadialSegments: props.RadialSegments, TopCap: true, BottomCap: true}
		dashes := max(props.DashCount, 1)
		b := geometry.NewMeshBuilder(tc, 0, 0, prev)
		for i, st := range m.PolymerSteps() {
			if err := tc.Tick("Building gaps", i, len(m.PolymerSteps())); err != nil {
				return nil, err
			}
			if !st.Gap {
				continue
			}
			a, c := tracePosition(m, st.A), tracePosition(m, st.B)
			pieces := 2*dashes - 1
			step := c.Sub(a).DivScalar(float32(pieces))
			for k := 0; k < pieces; k += 2 {
				if 2*k+1 < pieces {
					b.SetGroup(st.A)
				} else {
					b.SetGroup(st.B)
				}
				s := a.Add(step.MulScalar(float32(k)))
				b.AddCylinder(s, s.Add(step), cp)
			}
		}
		return b.Mesh(), nil
	},
	SetUpdateState: func(s *UpdateState, n, c PolymerGapProps) {
		s.CreateGeometry = n.GapRadius != c.GapRadius || n.RadialSegments != c.RadialSegments || n.DashCount != c.DashCount
	},
	Utils: geometry.MeshUtils(func(p PolymerGapProps) *geometry.MeshProps { return &p.MeshProps }),
})

// NewPolymerGap returns a visual drawing dashed cylinders across
// gaps in polymer chains.
func NewPolymerGap() *UnitsVisual[*geometry.Mesh, PolymerGapProps] {
	return NewUnitsVisual(polymerGapDef)
}

// NucleotideBlockProps are the props of the nucleotide block visual.
type NucleotideBlockProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	BlockWidth     float32
	BlockThickness float32
}

// DefaultNucleotideBlockProps returns the defaults of [NucleotideBlockProps].
func DefaultNucleotideBlockProps() NucleotideBlockProps {
	return NucleotideBlockProps{MeshProps: geometry.DefaultMeshProps(), BlockWidth: 1.6, BlockThickness: 0.6}
}

// baseEnd returns the element of the residue farthest from its trace.
func baseEnd(m *structure.Model, r *structure.Residue) (int, bool) {
	t := m.Elements[r.Trace].Position
	best, dist := -1, float32(0)
	for e := r.Start; e < r.End; e++ {
		if d := m.Elements[e].Position.DistanceTo(t); e != r.Trace && d > dist {
			best, dist = e, d
		}
	}
	return best, best >= 0
}

var nucleotideBlockDef = residueDef(&Def[structure.UnitGroup, *geometry.Mesh, NucleotideBlockProps]{
	Name: "nucleotide-block",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props NucleotideBlockProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		m := g.Representative().Model
		b := geometry.NewMeshBuilder(tc, 0, 0, prev)
		for ri := range m.Residues {
			if err := tc.Tick("Building nucleotide blocks", ri, len(m.Residues)); err != nil {
				return nil, err
			}
			r := &m.Residues[ri]
			if r.Kind != structure.Nucleotide || r.Trace < 0 {
				continue
			}
			be, ok := baseEnd(m, r)
			if !ok {
				continue
			}
			t := m.Elements[r.Trace].Position
			d := m.Elements[be].Position.Sub(t)
			axis := d.Normal()
			x := geometry.Perpendicular(axis)
			z := axis.Cross(x)
			o := geometry.Orientation(t.Add(d.MulScalar(0.5)), x.MulScalar(props.BlockWidth), d, z.MulScalar(props.BlockThickness))
			b.SetGroup(ri)
			b.AddBox(&o)
		}
		return b.Mesh(), nil
	},
	SetUpdateState: func(s *UpdateState, n, c NucleotideBlockProps) {
		s.CreateGeometry = n.BlockWidth != c.BlockWidth || n.BlockThickness != c.BlockThickness
	},
	Utils: geometry.MeshUtils(func(p NucleotideBlockProps) *geometry.MeshProps { return &p.MeshProps }),
})

// NewNucleotideBlock returns a visual drawing a box from the trace
// of every nucleotide to its base.
func NewNucleotideBlock() *UnitsVisual[*geometry.Mesh, NucleotideBlockProps] {
	return NewUnitsVisual(nucleotideBlockDef)
}

// PolymerDirectionProps are the props of the polymer direction visual.
type PolymerDirectionProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	WedgeSize float32
}

// DefaultPolymerDirectionProps returns the defaults of [PolymerDirectionProps].
func DefaultPolymerDirectionProps() PolymerDirectionProps {
	return PolymerDirectionProps{MeshProps: geometry.DefaultMeshProps(), WedgeSize: 0.8}
}

var polymerDirectionDef = residueDef(&Def[structure.UnitGroup, *geometry.Mesh, PolymerDirectionProps]{
	Name: "polymer-direction",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props PolymerDirectionProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		m := g.Representative().Model
		steps := m.PolymerSteps()
		wp := geometry.WedgePrimitive()
		b := geometry.NewMeshBuilder(tc, len(steps)*len(wp.Vertices), len(steps)*wp.TriangleCount(), prev)
		for i, st := range steps {
			if err := tc.Tick("Building direction wedges", i, len(steps)); err != nil {
				return nil, err
			}
			if st.Gap {
				continue
			}
			a, c := tracePosition(m, st.A), tracePosition(m, st.B)
			d := c.Sub(a)
			if d.Length() == 0 {
				continue
			}
			y := d.Normal()
			z := geometry.Perpendicular(y)
			x := y.Cross(z)
			s := props.WedgeSize
			o := geometry.Orientation(a.Add(d.MulScalar(0.5)), x.MulScalar(s), y.MulScalar(s), z.MulScalar(s*0.5))
			b.SetGroup(st.A)
			b.AddWedge(&o)
		}
		return b.Mesh(), nil
	},
	SetUpdateState: func(s *UpdateState, n, c PolymerDirectionProps) {
		s.CreateGeometry = n.WedgeSize != c.WedgeSize
	},
	Utils: geometry.MeshUtils(func(p PolymerDirectionProps) *geometry.MeshProps { return &p.MeshProps }),
})

// NewPolymerDirection returns a visual drawing a wedge pointing from
// every polymer residue to the next.
func NewPolymerDirection() *UnitsVisual[*geometry.Mesh, PolymerDirectionProps] {
	return NewUnitsVisual(polymerDirectionDef)
}
