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
	"cogentcore.org/mol/theme"
)

// ElementPointProps are the props of the element point visual.
type ElementPointProps struct {
	geometry.PointsProps `mapstructure:",squash"`
	StructureProps       `mapstructure:",squash"`
}

// DefaultElementPointProps returns the defaults of [ElementPointProps].
func DefaultElementPointProps() ElementPointProps {
	return ElementPointProps{
		PointsProps:    geometry.DefaultPointsProps(),
		StructureProps: DefaultStructureProps(),
	}
}

var elementPointDef = &Def[structure.UnitGroup, *geometry.Points, ElementPointProps]{
	Name: "element-point",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props ElementPointProps, prev *geometry.Points) (*geometry.Points, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptyPoints(prev), nil
		}
		n := u.ElementCount()
		b := geometry.NewPointsBuilder(tc, n, prev)
		for e := range n {
			if err := tc.Tick("Building points", e, n); err != nil {
				return nil, err
			}
			if props.IncludesElement(u, e) {
				b.Add(u.Model.Elements[e].Position, e)
			}
		}
		return b.Points(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ ElementPointProps) *location.Iterator {
		return elementIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ ElementPointProps) loci.Loci {
		return elementLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ ElementPointProps, apply func(start, end int) bool) bool {
		return eachElement(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c ElementPointProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
	},
	Utils: geometry.PointsUtils(func(p ElementPointProps) *geometry.PointsProps { return &p.PointsProps }),
}

// NewElementPoint returns a visual drawing every element as a point.
func NewElementPoint() *UnitsVisual[*geometry.Points, ElementPointProps] {
	return NewUnitsVisual(elementPointDef)
}

// ElementSphereProps are the props of the element sphere visual.
type ElementSphereProps struct {
	geometry.MeshProps `mapstructure:",squash"`
	StructureProps     `mapstructure:",squash"`

	// Size sets the sphere radii.
	Size theme.SizeProps

	// Detail is the subdivision level of the spheres.
	Detail int
}

// DefaultElementSphereProps returns the defaults of [ElementSphereProps].
func DefaultElementSphereProps() ElementSphereProps {
	return ElementSphereProps{
		MeshProps:      geometry.DefaultMeshProps(),
		StructureProps: DefaultStructureProps(),
		Size:           theme.SizeProps{Name: theme.PhysicalSize, Factor: 1},
		Detail:         1,
	}
}

var elementSphereDef = &Def[structure.UnitGroup, *geometry.Mesh, ElementSphereProps]{
	Name: "element-sphere",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props ElementSphereProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptyMesh(prev), nil
		}
		st, err := theme.NewSizeTheme(props.Size)
		if err != nil {
			return nil, err
		}
		p := geometry.SpherePrimitive(props.Detail)
		n := u.ElementCount()
		b := geometry.NewMeshBuilder(tc, n*len(p.Vertices), n*p.TriangleCount(), prev)
		for e := range n {
			if err := tc.Tick("Building spheres", e, n); err != nil {
				return nil, err
			}
			if !props.IncludesElement(u, e) {
				continue
			}
			b.SetGroup(e)
			b.AddSphere(u.Model.Elements[e].Position, st.Size(structure.ElementLocation{Unit: u, Element: e}), props.Detail)
		}
		return b.Mesh(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ ElementSphereProps) *location.Iterator {
		return elementIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ ElementSphereProps) loci.Loci {
		return elementLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ ElementSphereProps, apply func(start, end int) bool) bool {
		return eachElement(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c ElementSphereProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
		s.CreateGeometry = n.Size != c.Size || n.Detail != c.Detail
	},
	Utils: geometry.MeshUtils(func(p ElementSphereProps) *geometry.MeshProps { return &p.MeshProps }),
}

// NewElementSphere returns a visual drawing every element as a sphere mesh.
func NewElementSphere() *UnitsVisual[*geometry.Mesh, ElementSphereProps] {
	return NewUnitsVisual(elementSphereDef)
}

// ElementSphereImpostorProps are the props of the element sphere
// impostor visual.
type ElementSphereImpostorProps struct {
	geometry.SpheresProps `mapstructure:",squash"`
	StructureProps        `mapstructure:",squash"`
}

// DefaultElementSphereImpostorProps returns the defaults of
// [ElementSphereImpostorProps].
func DefaultElementSphereImpostorProps() ElementSphereImpostorProps {
	return ElementSphereImpostorProps{
		SpheresProps:   geometry.DefaultSpheresProps(),
		StructureProps: DefaultStructureProps(),
	}
}

var elementSphereImpostorDef = &Def[structure.UnitGroup, *geometry.Spheres, ElementSphereImpostorProps]{
	Name: "element-sphere-impostor",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props ElementSphereImpostorProps, prev *geometry.Spheres) (*geometry.Spheres, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptySpheres(prev), nil
		}
		n := u.ElementCount()
		b := geometry.NewSpheresBuilder(tc, n, prev)
		for e := range n {
			if err := tc.Tick("Building sphere impostors", e, n); err != nil {
				return nil, err
			}
			if props.IncludesElement(u, e) {
				b.Add(u.Model.Elements[e].Position, e)
			}
		}
		return b.Spheres(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ ElementSphereImpostorProps) *location.Iterator {
		return elementIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ ElementSphereImpostorProps) loci.Loci {
		return elementLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ ElementSphereImpostorProps, apply func(start, end int) bool) bool {
		return eachElement(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c ElementSphereImpostorProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
	},
	Utils: geometry.SpheresUtils(func(p ElementSphereImpostorProps) *geometry.SpheresProps { return &p.SpheresProps }),
}

// NewElementSphereImpostor returns a visual drawing every element as a
// ray cast sphere impostor, with radii taken from the size theme.
func NewElementSphereImpostor() *UnitsVisual[*geometry.Spheres, ElementSphereImpostorProps] {
	return NewUnitsVisual(elementSphereImpostorDef)
}

// GaussianSurfaceProps are the props of the gaussian surface visual.
type GaussianSurfaceProps struct {
	geometry.MeshProps            `mapstructure:",squash"`
	StructureProps                `mapstructure:",squash"`
	geometry.GaussianDensityProps `mapstructure:",squash"`
}

// DefaultGaussianSurfaceProps returns the defaults of [GaussianSurfaceProps].
func DefaultGaussianSurfaceProps() GaussianSurfaceProps {
	return GaussianSurfaceProps{
		MeshProps:            geometry.DefaultMeshProps(),
		StructureProps:       DefaultStructureProps(),
		GaussianDensityProps: geometry.DefaultGaussianDensityProps(),
	}
}

var gaussianSurfaceDef = &Def[structure.UnitGroup, *geometry.Mesh, GaussianSurfaceProps]{
	Name: "gaussian-surface",
	CreateGeometry: func(tc *task.Context, g structure.UnitGroup, props GaussianSurfaceProps, prev *geometry.Mesh) (*geometry.Mesh, error) {
		u := g.Representative()
		if !props.Includes(u.Kind) {
			return geometry.EmptyMesh(prev), nil
		}
		n := u.ElementCount()
		positions := make([]math32.Vector3, 0, n)
		radii := make([]float32, 0, n)
		elements := make([]int, 0, n)
		for e := range n {
			if !props.IncludesElement(u, e) {
				continue
			}
			positions = append(positions, u.Model.Elements[e].Position)
			radii = append(radii, structure.PhysicalRadius(structure.ElementLocation{Unit: u, Element: e}))
			elements = append(elements, e)
		}
		grid, err := geometry.ComputeGaussianDensity(tc, positions, radii, props.GaussianDensityProps)
		if err != nil {
			return nil, err
		}
		b := geometry.NewMeshBuilder(tc, 0, 0, prev)
		err = geometry.ExtractIsosurface(tc, grid, props.IsoLevel(), b, func(id int32) int {
			return elements[id]
		})
		if err != nil {
			return nil, err
		}
		return b.Mesh(), nil
	},
	CreateLocationIterator: func(g structure.UnitGroup, _ GaussianSurfaceProps) *location.Iterator {
		return elementIterator(g)
	},
	GetLoci: func(id renderobject.PickingID, g structure.UnitGroup, _ GaussianSurfaceProps) loci.Loci {
		return elementLoci(id, g)
	},
	EachLocation: func(l loci.Loci, g structure.UnitGroup, _ GaussianSurfaceProps, apply func(start, end int) bool) bool {
		return eachElement(l, g, apply)
	},
	SetUpdateState: func(s *UpdateState, n, c GaussianSurfaceProps) {
		s.CreateNew = !n.StructureProps.Equal(c.StructureProps)
		s.CreateGeometry = n.GaussianDensityProps != c.GaussianDensityProps
	},
	Utils: geometry.MeshUtils(func(p GaussianSurfaceProps) *geometry.MeshProps { return &p.MeshProps }),
}

// NewGaussianSurface returns a visual drawing the smooth molecular
// surface of a unit group.
func NewGaussianSurface() *UnitsVisual[*geometry.Mesh, GaussianSurfaceProps] {
	return NewUnitsVisual(gaussianSurfaceDef)
}
