// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
)

// includesBond returns whether both ends of a bond are drawn.
func (p StructureProps) includesBond(u *structure.Unit, b structure.Bond) bool {
	return p.IncludesElement(u, b.A) && p.IncludesElement(u, b.B)
}

// IntraUnitLinkProps are the props of the intra unit link visual.
type IntraUnitLinkProps struct {
	geometry.MeshProps `mapstructure:",squash"`
	StructureProps     `mapstructure:",squash"`

	LinkRadius     float32
	RadialSegments int
}

// DefaultIntraUnitLinkProps returns the defaults of [IntraUnitLinkProps].
func DefaultIntraUnitLinkProps() IntraUnitLinkProps {
	return IntraUnitLinkProps{
		MeshProps:      geometry.DefaultMeshProps(),
		StructureProps: DefaultStructureProps(),
		LinkRadius:     0.15,
		RadialSegments: 16,
	}
}

func (p IntraUnitLinkProps) cylinder() geometry.CylinderProps {
	return geometry.CylinderProps{RadiusTop: p.LinkRadius, RadiusBottom: p.LinkRadius, RadialSegments: p.RadialSegments}
}

var intraUnitLinkDef = &Def[structure.UnitGroup, *geometry.Mesh, IntraUnitLinkProps]{
	Name: "intra-unit-link",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props IntraUnitLinkProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptyMesh(prev), nil
		}
		cp := props.cylinder()
		m := u.Model
		n := len(m.Bonds)
		segments := max(cp.RadialSegments, 3)
		b := geometry.NewMeshBuilder(tc, n*segments*2, n*geometry.CylinderTriangleCount(cp), prev)
		for i, bd := range m.Bonds {
			if err := tc.Tick("Building links", i, n); err != nil {
				return nil, err
			}
			if !props.includesBond(u, bd) {
				continue
			}
			b.SetGroup(i)
			b.AddCylinder(m.Elements[bd.A].Position, m.Elements[bd.B].Position, cp)
		}
		return b.Mesh(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ IntraUnitLinkProps) *location.Iterator {
		return bondIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ IntraUnitLinkProps) loci.Loci {
		return bondLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ IntraUnitLinkProps, apply func(start, end int) bool) bool {
		return eachBond(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c IntraUnitLinkProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
		s.CreateGeometry = n.LinkRadius != c.LinkRadius || n.RadialSegments != c.RadialSegments
	},
	Utils: geometry.MeshUtils(func(p IntraUnitLinkProps) *geometry.MeshProps { return &p.MeshProps }),
}

// NewIntraUnitLink returns a visual drawing the bonds of a unit as cylinders.
func NewIntraUnitLink() *UnitsVisual[*geometry.Mesh, IntraUnitLinkProps] {
	return NewUnitsVisual(intraUnitLinkDef)
}

// IntraUnitLinkLinesProps are the props of the intra unit link lines visual.
type IntraUnitLinkLinesProps struct {
	geometry.LinesProps `mapstructure:",squash"`
	StructureProps      `mapstructure:",squash"`
}

// DefaultIntraUnitLinkLinesProps returns the defaults of [IntraUnitLinkLinesProps].
func DefaultIntraUnitLinkLinesProps() IntraUnitLinkLinesProps {
	return IntraUnitLinkLinesProps{
		LinesProps:     geometry.DefaultLinesProps(),
		StructureProps: DefaultStructureProps(),
	}
}

var intraUnitLinkLinesDef = &Def[structure.UnitGroup, *geometry.Lines, IntraUnitLinkLinesProps]{
	Name: "intra-unit-link-lines",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props IntraUnitLinkLinesProps, prev *geometry.Lines) (*geometry.Lines, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptyLines(prev), nil
		}
		m := u.Model
		n := len(m.Bonds)
		b := geometry.NewLinesBuilder(tc, n, prev)
		for i, bd := range m.Bonds {
			if err := tc.Tick("Building link lines", i, n); err != nil {
				return nil, err
			}
			if props.includesBond(u, bd) {
				b.Add(m.Elements[bd.A].Position, m.Elements[bd.B].Position, i)
			}
		}
		return b.Lines(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ IntraUnitLinkLinesProps) *location.Iterator {
		return bondIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ IntraUnitLinkLinesProps) loci.Loci {
		return bondLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ IntraUnitLinkLinesProps, apply func(start, end int) bool) bool {
		return eachBond(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c IntraUnitLinkLinesProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
	},
	Utils: geometry.LinesUtils(func(p IntraUnitLinkLinesProps) *geometry.LinesProps { return &p.LinesProps }),
}

// NewIntraUnitLinkLines returns a visual drawing the bonds of a unit
// as wide lines.
func NewIntraUnitLinkLines() *UnitsVisual[*geometry.Lines, IntraUnitLinkLinesProps] {
	return NewUnitsVisual(intraUnitLinkLinesDef)
}
