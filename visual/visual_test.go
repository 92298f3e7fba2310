// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"context"
	"testing"

	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helixGroup(t *testing.T) structure.UnitGroup {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	groups := s.UnitGroups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Units, 2)
	return groups[0]
}

func countFlags(m *marker.Data, f marker.Flags) int {
	n := 0
	for i := range m.Count() {
		if m.At(i)&f != 0 {
			n++
		}
	}
	return n
}

func TestUpdateBeforeCreate(t *testing.T) {
	v := NewElementPoint()
	assert.Equal(t, Uninitialized, v.State())
	ok, err := v.Update(nil, DefaultElementPointProps())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v.RenderObject())
	assert.False(t, v.Mark(loci.Every, marker.Select))
	assert.Equal(t, loci.Empty, v.GetLoci(renderobject.PickingID{}))
}

func TestMarkRoundTrip(t *testing.T) {
	g := helixGroup(t)
	v := NewElementSphere()
	props := DefaultElementSphereProps()
	props.Detail = 0
	require.NoError(t, v.Create(nil, g, props))
	ro := v.RenderObject()
	require.NotNil(t, ro)
	m := v.Values().Marker
	n := g.Representative().ElementCount()
	require.Equal(t, n*len(g.Units), m.Count())

	for inst := range g.Units {
		for grp := 0; grp < n; grp += 5 {
			l := v.GetLoci(renderobject.PickingID{ObjectID: ro.ID, InstanceID: inst, GroupID: grp})
			require.False(t, loci.IsEmpty(l))
			assert.True(t, v.Mark(l, marker.Select))
			assert.Equal(t, 1, countFlags(m, marker.Selected))
			assert.Equal(t, marker.Selected, m.At(inst*n+grp))
			assert.True(t, v.Mark(l, marker.Deselect))
			assert.Equal(t, 0, countFlags(m, marker.Selected))
		}
	}

	assert.Equal(t, loci.Empty, v.GetLoci(renderobject.PickingID{ObjectID: ro.ID + 1000}))
	assert.Equal(t, loci.Empty, v.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: n}))

	assert.True(t, v.Mark(loci.Every, marker.Highlight))
	assert.Equal(t, m.Count(), countFlags(m, marker.Highlighted))
	assert.False(t, v.Mark(loci.Every, marker.Highlight))
	assert.False(t, v.Mark(loci.Empty, marker.Clear))
}

func TestPartialUpdate(t *testing.T) {
	g := helixGroup(t)
	v := NewElementSphere()
	props := DefaultElementSphereProps()
	props.Detail = 0
	require.NoError(t, v.Create(nil, g, props))
	id := v.RenderObject().ID
	verts := v.Geometry().Vertices
	vver := verts.Version()
	colors := v.Values().Color.Texture
	cver := colors.Version()

	// color only
	p2 := props
	p2.Color = theme.ColorProps{Name: theme.ElementSymbolColor}
	ok, err := v.Update(nil, p2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, verts, v.Geometry().Vertices)
	assert.Equal(t, vver, verts.Version())
	assert.Same(t, colors, v.Values().Color.Texture)
	assert.Greater(t, colors.Version(), cver)
	assert.Equal(t, theme.Group, v.Values().Color.Type.Value())

	// uniform only
	p3 := p2
	p3.Alpha = 0.5
	aver := v.Values().Alpha.Version()
	cver = colors.Version()
	_, err = v.Update(nil, p3)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v.Values().Alpha.Value())
	assert.Equal(t, aver+1, v.Values().Alpha.Version())
	assert.Equal(t, cver, colors.Version())
	assert.Equal(t, vver, verts.Version())
	assert.False(t, v.RenderObject().State.Value().Opaque)

	// geometry only
	p4 := p3
	p4.Detail = 1
	_, err = v.Update(nil, p4)
	require.NoError(t, err)
	assert.Same(t, verts, v.Geometry().Vertices)
	assert.Greater(t, verts.Version(), vver)
	assert.Equal(t, v.Geometry().DrawCount(), v.Values().DrawCount.Value())
	assert.Equal(t, id, v.RenderObject().ID)
	assert.Equal(t, p4, v.Props())
}

func TestInvalidPropsTransition(t *testing.T) {
	g := helixGroup(t)
	v := NewElementPoint()
	props := DefaultElementPointProps()
	require.NoError(t, v.Create(nil, g, props))

	p2 := props
	p2.IgnoreHydrogens = true
	ok, err := v.Update(nil, p2)
	assert.ErrorIs(t, err, ErrInvalidPropsTransition)
	assert.False(t, ok)
	assert.Equal(t, props, v.Props())

	p3 := props
	p3.UnitKinds = []structure.UnitKinds{structure.Spheres}
	_, err = v.Update(nil, p3)
	assert.ErrorIs(t, err, ErrInvalidPropsTransition)

	// a create applies it
	require.NoError(t, v.Create(nil, g, p3))
	assert.Equal(t, 0, v.Geometry().PointCount)
}

func TestRecreateAndDestroy(t *testing.T) {
	g := helixGroup(t)
	v := NewIntraUnitLink()
	props := DefaultIntraUnitLinkProps()
	require.NoError(t, v.Create(nil, g, props))
	ro := v.RenderObject()
	tris := v.Geometry().TriangleCount
	assert.Equal(t, len(g.Representative().Model.Bonds)*2*props.RadialSegments, tris)

	require.True(t, v.Mark(loci.Every, marker.Select))
	require.NoError(t, v.Create(nil, g, props))
	assert.Same(t, ro, v.RenderObject())
	assert.Equal(t, tris, v.Geometry().TriangleCount)
	for _, m := range renderobject.Get[[]uint8](ro.Values, renderobject.TMarker).Value() {
		assert.Equal(t, uint8(0), m)
	}

	v.Destroy()
	assert.Equal(t, Destroyed, v.State())
	assert.Nil(t, v.RenderObject())
	v.Destroy()
	assert.ErrorIs(t, v.Create(nil, g, props), ErrDestroyed)
	ok, err := v.Update(nil, props)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkBonds(t *testing.T) {
	g := helixGroup(t)
	v := NewIntraUnitLinkLines()
	require.NoError(t, v.Create(nil, g, DefaultIntraUnitLinkLinesProps()))
	m := v.Values().Marker
	u := g.Units[0]

	// the backbone atoms of the first residue have three bonds among them
	assert.True(t, v.Mark(loci.NewElements(g.Structure, u, 0, 1, 2, 3), marker.Select))
	assert.Equal(t, 3, countFlags(m, marker.Selected))

	l := v.GetLoci(renderobject.PickingID{ObjectID: v.RenderObject().ID, InstanceID: 1, GroupID: 0})
	links, ok := l.(loci.Links)
	require.True(t, ok)
	assert.Equal(t, g.Units[1], links.Links[0].AUnit)
	assert.True(t, v.Mark(l, marker.Select))
	assert.Equal(t, 4, countFlags(m, marker.Selected))

	other, err := structure.Demo("helix")
	require.NoError(t, err)
	assert.False(t, v.Mark(loci.NewElements(other, other.Units[0], 0, 1), marker.Clear))
}

func TestCreateCancelled(t *testing.T) {
	g := helixGroup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tc := task.NewContext(ctx, task.WithUpdateRate(0))
	v := NewElementSphere()
	err := v.Create(tc, g, DefaultElementSphereProps())
	assert.ErrorIs(t, err, task.ErrCancelled)
	assert.Equal(t, Uninitialized, v.State())
	assert.Nil(t, v.RenderObject())
}

func TestCreateMalformed(t *testing.T) {
	m := structure.NewBuilder("bad").AddResidue("ALA", 1, "A", structure.Amino).Model()
	m.Bonds = append(m.Bonds, structure.Bond{A: 0, B: 5})
	s := structure.New(structure.NewUnit(0, structure.Atomic, m))
	v := NewIntraUnitLink()
	assert.ErrorIs(t, v.Create(nil, s.UnitGroups()[0], DefaultIntraUnitLinkProps()), structure.ErrMalformed)
	assert.Equal(t, Uninitialized, v.State())
}

func TestPolymer(t *testing.T) {
	s := structure.New(structure.NewUnit(0, structure.Atomic, structure.HelixModel(16, 8)))
	g := s.UnitGroups()[0]

	trace := NewPolymerTrace()
	require.NoError(t, trace.Create(nil, g, DefaultPolymerTraceProps()))
	assert.Greater(t, trace.Geometry().TriangleCount, 0)
	ro := trace.RenderObject()
	l := trace.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: 3})
	el, ok := l.(loci.Elements)
	require.True(t, ok)
	assert.Equal(t, 4, el.Size())
	assert.True(t, trace.Mark(l, marker.Select))
	assert.Equal(t, 1, countFlags(trace.Values().Marker, marker.Selected))
	assert.Equal(t, marker.Selected, trace.Values().Marker.At(3))

	gap := NewPolymerGap()
	props := DefaultPolymerGapProps()
	require.NoError(t, gap.Create(nil, g, props))
	cyl := 2*props.RadialSegments + 2*props.RadialSegments
	assert.Equal(t, props.DashCount*cyl, gap.Geometry().TriangleCount)

	dir := NewPolymerDirection()
	require.NoError(t, dir.Create(nil, g, DefaultPolymerDirectionProps()))
	// 15 steps, one of them a gap
	assert.Equal(t, 14*8, dir.Geometry().TriangleCount)

	block := NewNucleotideBlock()
	require.NoError(t, block.Create(nil, g, DefaultNucleotideBlockProps()))
	assert.Equal(t, 0, block.Geometry().TriangleCount)

	n := structure.New(structure.NewUnit(0, structure.Atomic, structure.NucleicModel(10)))
	require.NoError(t, block.Create(nil, n.UnitGroups()[0], DefaultNucleotideBlockProps()))
	assert.Equal(t, 10*12, block.Geometry().TriangleCount)
}

func TestCarbohydrateLink(t *testing.T) {
	s, err := structure.Demo("carbohydrate")
	require.NoError(t, err)
	c := s.Carbohydrates()
	require.Len(t, c.Elements, 4)
	require.Len(t, c.Links, 3)

	v := NewCarbohydrateLink()
	props := DefaultCarbohydrateLinkProps()
	require.NoError(t, v.Create(nil, s, props))
	assert.Equal(t, len(c.Links)*2*props.RadialSegments, v.Geometry().TriangleCount)
	assert.Equal(t, 1, v.Values().Transform.Count())

	ro := v.RenderObject()
	l := v.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: 1})
	links, ok := l.(loci.Links)
	require.True(t, ok)
	require.Len(t, links.Links, 1)
	lk := links.Links[0]
	assert.Equal(t, s.Units[0], lk.AUnit)
	assert.Equal(t, s.Units[0], lk.BUnit)
	assert.Equal(t, 6, lk.AIndex)
	assert.Equal(t, 12, lk.BIndex)

	assert.True(t, v.Mark(l, marker.Select))
	assert.Equal(t, 1, countFlags(v.Values().Marker, marker.Selected))
	assert.Equal(t, marker.Selected, v.Values().Marker.At(1))
	assert.True(t, v.Mark(l, marker.Deselect))
	assert.Equal(t, 0, countFlags(v.Values().Marker, marker.Selected))
}

func TestCarbohydrateSymbol(t *testing.T) {
	s, err := structure.Demo("carbohydrate")
	require.NoError(t, err)
	v := NewCarbohydrateSymbol()
	props := DefaultCarbohydrateSymbolProps()
	props.Color = theme.ColorProps{Name: theme.CarbohydrateSymbolColor}
	require.NoError(t, v.Create(nil, s, props))
	assert.Equal(t, 4*80, v.Geometry().TriangleCount)
	assert.Equal(t, FilledCube, SymbolShape("nag"))
	assert.Equal(t, FilledSphere, SymbolShape("GLC"))

	ro := v.RenderObject()
	l := v.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: 2})
	el, ok := l.(loci.Elements)
	require.True(t, ok)
	assert.Equal(t, 6, el.Size())
	assert.True(t, v.Mark(l, marker.ToggleSelect))
	assert.Equal(t, marker.Selected, v.Values().Marker.At(2))
	assert.Equal(t, 1, countFlags(v.Values().Marker, marker.Selected))
}

func TestGaussianSurface(t *testing.T) {
	g := helixGroup(t)
	v := NewGaussianSurface()
	props := DefaultGaussianSurfaceProps()
	require.NoError(t, v.Create(nil, g, props))
	mesh := v.Geometry()
	assert.Greater(t, mesh.TriangleCount, 0)
	n := g.Representative().ElementCount()
	for _, gr := range mesh.Groups.Value()[:mesh.VertexCount] {
		assert.Less(t, int(gr), n)
	}
	verts := mesh.Vertices
	p2 := props
	p2.Resolution = 0.8
	_, err := v.Update(nil, p2)
	require.NoError(t, err)
	assert.Same(t, verts, v.Geometry().Vertices)
}

func TestElementSphereImpostor(t *testing.T) {
	g := helixGroup(t)
	v := NewElementSphereImpostor()
	props := DefaultElementSphereImpostorProps()
	require.NoError(t, v.Create(nil, g, props))
	ro := v.RenderObject()
	require.NotNil(t, ro)
	assert.Equal(t, renderobject.Spheres, ro.Kind)
	n := g.Representative().ElementCount()
	sp := v.Geometry()
	assert.Equal(t, n, sp.SphereCount)
	assert.Equal(t, n*6, v.Values().DrawCount.Value())
	assert.Equal(t, n*len(g.Units), v.Values().Marker.Count())

	l := v.GetLoci(renderobject.PickingID{ObjectID: ro.ID, InstanceID: 1, GroupID: 2})
	require.False(t, loci.IsEmpty(l))
	assert.True(t, v.Mark(l, marker.Select))
	assert.Equal(t, marker.Selected, v.Values().Marker.At(n+2))

	centers := sp.Centers.Version()
	sizes := v.Values().Size.Texture
	sver := sizes.Version()
	before := sizes.Value()[2]
	p2 := props
	p2.Size.Factor = 0.5
	ok, err := v.Update(nil, p2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, centers, sp.Centers.Version())
	assert.Greater(t, sizes.Version(), sver)
	assert.InDelta(t, before/2, v.Values().Size.Texture.Value()[2], 1e-6)

	p3 := p2
	p3.IgnoreHydrogens = true
	_, err = v.Update(nil, p3)
	assert.ErrorIs(t, err, ErrInvalidPropsTransition)

	p4 := p2
	p4.UnitKinds = []structure.UnitKinds{structure.Spheres}
	require.NoError(t, v.Create(nil, g, p4))
	assert.Equal(t, 0, v.Geometry().SphereCount)
	assert.Same(t, ro, v.RenderObject())
}
