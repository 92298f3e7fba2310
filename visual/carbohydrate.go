// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
)

// SymbolShapes are the glyph shapes of carbohydrate symbols.
type SymbolShapes int32

const (
	// FilledSphere is the shape of hexoses.
	FilledSphere SymbolShapes = iota

	// FilledCube is the shape of N-acetyl hexosamines.
	FilledCube

	// FilledWedge is the shape of deoxy hexoses.
	FilledWedge
)

var symbolShapes = map[string]SymbolShapes{
	"NAG": FilledCube, "NDG": FilledCube, "NGA": FilledCube, "A2G": FilledCube,
	"FUC": FilledWedge, "FUL": FilledWedge, "RAM": FilledWedge, "RM4": FilledWedge,
}

// SymbolShape returns the shape of the residue name.
func SymbolShape(name string) SymbolShapes {
	return symbolShapes[strings.ToUpper(name)]
}

// CarbohydrateSymbolProps are the props of the carbohydrate symbol visual.
type CarbohydrateSymbolProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	SymbolSize float32
	Detail     int
}

// DefaultCarbohydrateSymbolProps returns the defaults of [CarbohydrateSymbolProps].
func DefaultCarbohydrateSymbolProps() CarbohydrateSymbolProps {
	return CarbohydrateSymbolProps{MeshProps: geometry.DefaultMeshProps(), SymbolSize: 1, Detail: 1}
}

// carbohydrateResidueLoci returns the loci of all elements of the
// residue of a carbohydrate element.
func carbohydrateResidueLoci(s *structure.Structure, c *structure.CarbohydrateElement) loci.Loci {
	r := &c.Unit.Model.Residues[c.Residue]
	ix := make([]int, 0, r.End-r.Start)
	for e := r.Start; e < r.End; e++ {
		ix = append(ix, e)
	}
	return loci.NewElements(s, c.Unit, ix...)
}

// touchesResidue returns whether the selection contains any element
// of the residue.
func touchesResidue(ue loci.UnitElements, r *structure.Residue) bool {
	for _, e := range ue.Indices {
		if e >= r.Start && e < r.End {
			return true
		}
	}
	return false
}

var carbohydrateSymbolDef = &Def[*structure.Structure, *geometry.Mesh, CarbohydrateSymbolProps]{
	Name: "carbohydrate-symbol",
	CreateGeometry: func(tc *task.Context, s *structure.Structure, props CarbohydrateSymbolProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		els := s.Carbohydrates().Elements
		b := geometry.NewMeshBuilder(tc, 0, 0, prev)
		size := props.SymbolSize
		for i := range els {
			if err := tc.Tick("Building carbohydrate symbols", i, len(els)); err != nil {
				return nil, err
			}
			c := &els[i]
			m := c.Unit.Model
			r := &m.Residues[c.Residue]
			// orient the symbol in the ring plane, towards the anomeric carbon
			y := c.Unit.Position(c.AnomericCarbon).Sub(c.Center)
			if y.Length() == 0 {
				y = math32.Vec3(0, 1, 0)
			}
			y = y.Normal()
			x := geometry.Perpendicular(y)
			z := x.Cross(y)
			b.SetGroup(i)
			switch SymbolShape(r.Name) {
			case FilledCube:
				o := geometry.Orientation(c.Center, x.MulScalar(size), y.MulScalar(size), z.MulScalar(size))
				b.AddBox(&o)
			case FilledWedge:
				o := geometry.Orientation(c.Center, x.MulScalar(size), y.MulScalar(size), z.MulScalar(size*0.5))
				b.AddWedge(&o)
			default:
				b.AddSphere(c.Center, size*0.5, props.Detail)
			}
		}
		return b.Mesh(), nil
	},
	CreateLocationIterator: func(s *structure.Structure, _ CarbohydrateSymbolProps) *location.Iterator {
		return location.NewIterator(len(s.Carbohydrates().Elements), 1, func(group, _ int) location.Location {
			return structure.CarbohydrateLocation{Structure: s, Index: group}
		}, nil)
	},
	GetLoci: func(id renderobject.PickingID, s *structure.Structure, _ CarbohydrateSymbolProps) loci.Loci {
		return carbohydrateResidueLoci(s, &s.Carbohydrates().Elements[id.GroupID])
	},
	EachLocation: func(l loci.Loci, s *structure.Structure, _ CarbohydrateSymbolProps, apply func(start, end int) bool) bool {
		el, ok := l.(loci.Elements)
		if !ok {
			return false
		}
		changed := false
		for i, c := range s.Carbohydrates().Elements {
			ue, ok := el.ForUnit(c.Unit)
			if ok && touchesResidue(ue, &c.Unit.Model.Residues[c.Residue]) && apply(i, i+1) {
				changed = true
			}
		}
		return changed
	},
	SetUpdateState: func(s *UpdateState, n, c CarbohydrateSymbolProps) {
		s.CreateGeometry = n.SymbolSize != c.SymbolSize || n.Detail != c.Detail
	},
	Utils: geometry.MeshUtils(func(p CarbohydrateSymbolProps) *geometry.MeshProps { return &p.MeshProps }),
}

// NewCarbohydrateSymbol returns a visual drawing one symbol per
// monosaccharide of a structure.
func NewCarbohydrateSymbol() *ComplexVisual[*geometry.Mesh, CarbohydrateSymbolProps] {
	return NewComplexVisual(carbohydrateSymbolDef)
}

// CarbohydrateLinkProps are the props of the carbohydrate link visual.
type CarbohydrateLinkProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	LinkRadius     float32
	RadialSegments int
}

// DefaultCarbohydrateLinkProps returns the defaults of [CarbohydrateLinkProps].
func DefaultCarbohydrateLinkProps() CarbohydrateLinkProps {
	return CarbohydrateLinkProps{MeshProps: geometry.DefaultMeshProps(), LinkRadius: 0.3, RadialSegments: 12}
}

func (p CarbohydrateLinkProps) cylinder() geometry.CylinderProps {
	return geometry.CylinderProps{RadiusTop: p.LinkRadius, RadiusBottom: p.LinkRadius, RadialSegments: p.RadialSegments}
}

// carbohydrateLinkLocation returns the location of link i, between
// the anomeric carbons of both ends.
func carbohydrateLinkLocation(s *structure.Structure, i int) structure.LinkLocation {
	c := s.Carbohydrates()
	lk := c.Links[i]
	a, b := &c.Elements[lk.A], &c.Elements[lk.B]
	return structure.LinkLocation{AUnit: a.Unit, AIndex: a.AnomericCarbon, BUnit: b.Unit, BIndex: b.AnomericCarbon}
}

func sameLink(a, b structure.LinkLocation) bool {
	if a == b {
		return true
	}
	return a.AUnit == b.BUnit && a.AIndex == b.BIndex && a.BUnit == b.AUnit && a.BIndex == b.AIndex
}

var carbohydrateLinkDef = &Def[*structure.Structure, *geometry.Mesh, CarbohydrateLinkProps]{
	Name: "carbohydrate-link",
	CreateGeometry: func(tc *task.Context, s *structure.Structure, props CarbohydrateLinkProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		c := s.Carbohydrates()
		cp := props.cylinder()
		n := len(c.Links)
		b := geometry.NewMeshBuilder(tc, n*2*max(cp.RadialSegments, 3), n*geometry.CylinderTriangleCount(cp), prev)
		for i, lk := range c.Links {
			if err := tc.Tick("Building carbohydrate links", i, n); err != nil {
				return nil, err
			}
			b.SetGroup(i)
			b.AddCylinder(c.Elements[lk.A].Center, c.Elements[lk.B].Center, cp)
		}
		return b.Mesh(), nil
	},
	CreateLocationIterator: func(s *structure.Structure, _ CarbohydrateLinkProps) *location.Iterator {
		return location.NewIterator(len(s.Carbohydrates().Links), 1, func(group, _ int) location.Location {
			return carbohydrateLinkLocation(s, group)
		}, nil)
	},
	GetLoci: func(id renderobject.PickingID, s *structure.Structure, _ CarbohydrateLinkProps) loci.Loci {
		return loci.Links{Structure: s, Links: []structure.LinkLocation{carbohydrateLinkLocation(s, id.GroupID)}}
	},
	EachLocation: func(l loci.Loci, s *structure.Structure, _ CarbohydrateLinkProps, apply func(start, end int) bool) bool {
		changed := false
		n := len(s.Carbohydrates().Links)
		switch l := l.(type) {
		case loci.Links:
			for _, lk := range l.Links {
				for i := range n {
					if sameLink(lk, carbohydrateLinkLocation(s, i)) && apply(i, i+1) {
						changed = true
					}
				}
			}
		case loci.Elements:
			for i := range n {
				ll := carbohydrateLinkLocation(s, i)
				ua, oka := l.ForUnit(ll.AUnit)
				ub, okb := l.ForUnit(ll.BUnit)
				if oka && okb && ua.Has(ll.AIndex) && ub.Has(ll.BIndex) && apply(i, i+1) {
					changed = true
				}
			}
		}
		return changed
	},
	SetUpdateState: func(s *UpdateState, n, c CarbohydrateLinkProps) {
		s.CreateGeometry = n.LinkRadius != c.LinkRadius || n.RadialSegments != c.RadialSegments
	},
	Utils: geometry.MeshUtils(func(p CarbohydrateLinkProps) *geometry.MeshProps { return &p.MeshProps }),
}

// NewCarbohydrateLink returns a visual drawing a cylinder between the
// centers of every pair of linked monosaccharides.
func NewCarbohydrateLink() *ComplexVisual[*geometry.Mesh, CarbohydrateLinkProps] {
	return NewComplexVisual(carbohydrateLinkDef)
}
