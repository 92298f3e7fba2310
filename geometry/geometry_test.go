// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"context"
	"slices"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/metrics"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	all := []Geometry{EmptyPoints(nil), EmptyMesh(nil), EmptyLines(nil), EmptySpheres(nil), EmptyText(nil)}
	for _, g := range all {
		assert.Equal(t, 0, g.DrawCount(), g.Kind().String())
		assert.Equal(t, math32.Sphere{}, g.BoundingSphere())
		for nm, c := range g.Slots() {
			assert.NotNil(t, c, nm)
		}
	}
	m := NewMeshBuilder(nil, 10, 10, nil)
	m.AddSphere(math32.Vec3(0, 0, 0), 1, 0)
	mesh := m.Mesh()
	require.Equal(t, 12, mesh.VertexCount)
	e := EmptyMesh(mesh)
	assert.Same(t, mesh, e)
	assert.Equal(t, 0, e.VertexCount)
	assert.Equal(t, 0, e.TriangleCount)
}

func TestPrimitives(t *testing.T) {
	b := BoxPrimitive()
	assert.Len(t, b.Vertices, 24)
	assert.Equal(t, 12, b.TriangleCount())
	w := WedgePrimitive()
	assert.Len(t, w.Vertices, 18)
	assert.Equal(t, 8, w.TriangleCount())
	s0 := SpherePrimitive(0)
	assert.Len(t, s0.Vertices, 12)
	assert.Equal(t, 20, s0.TriangleCount())
	s1 := SpherePrimitive(1)
	assert.Len(t, s1.Vertices, 42)
	assert.Equal(t, 80, s1.TriangleCount())
	assert.Same(t, s1, SpherePrimitive(1))
	for _, v := range s1.Vertices {
		assert.InDelta(t, 1, v.Length(), 1e-5)
	}

	// every face of the box points away from the center
	for i := 0; i < len(b.Indices); i += 3 {
		p0, p1, p2 := b.Vertices[b.Indices[i]], b.Vertices[b.Indices[i+1]], b.Vertices[b.Indices[i+2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		assert.Greater(t, n.Dot(p0), float32(0))
	}
}

func TestCylinder(t *testing.T) {
	props := CylinderProps{RadiusTop: 0.3, RadiusBottom: 0.3, RadialSegments: 8}
	b := NewMeshBuilder(nil, 0, 0, nil)
	b.SetGroup(4)
	b.AddCylinder(math32.Vec3(0, 0, 0), math32.Vec3(0, 2, 0), props)
	b.AddCylinder(math32.Vec3(1, 1, 1), math32.Vec3(1, 1, 1), props)
	m := b.Mesh()
	assert.Equal(t, CylinderTriangleCount(props), m.TriangleCount)
	assert.Equal(t, 16, m.TriangleCount)
	assert.Equal(t, 16, m.VertexCount)
	assert.True(t, slices.Equal(slices.Repeat([]float32{4}, 16), m.Groups.Value()))

	props.TopCap, props.BottomCap = true, true
	b = NewMeshBuilder(nil, 0, 0, nil)
	b.AddCylinder(math32.Vec3(0, 0, 0), math32.Vec3(0, 2, 0), props)
	assert.Equal(t, 32, b.TriangleCount())
	assert.Equal(t, 32, CylinderTriangleCount(props))
}

func buildMesh(prev *Mesh) *Mesh {
	b := NewMeshBuilder(nil, 64, 64, prev)
	b.SetGroup(0)
	b.AddSphere(math32.Vec3(1, 2, 3), 1.5, 1)
	b.SetGroup(1)
	m := Orientation(math32.Vec3(0, 0, 0), math32.Vec3(2, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 0.5))
	b.AddBox(&m)
	return b.Mesh()
}

func TestMeshIdempotentAndReuse(t *testing.T) {
	a := buildMesh(nil)
	c := buildMesh(nil)
	assert.Equal(t, a.Vertices.Value(), c.Vertices.Value())
	assert.Equal(t, a.Indices.Value(), c.Indices.Value())
	assert.Equal(t, a.Groups.Value(), c.Groups.Value())

	pos := a.Vertices.Value()
	v := a.Vertices.Version()
	r := buildMesh(a)
	assert.Same(t, a, r)
	assert.Same(t, &pos[0], &r.Vertices.Value()[0])
	assert.Equal(t, v+1, r.Vertices.Version())
	assert.Equal(t, c.Vertices.Value(), r.Vertices.Value())
}

func TestReallocationMetric(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	tc := task.NewContext(context.Background(), task.WithMetrics(m))
	small := NewMeshBuilder(tc, 0, 0, nil)
	small.AddTriangle(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	mesh := small.Mesh()

	b := NewMeshBuilder(tc, 0, 0, mesh)
	b.AddSphere(math32.Vec3(0, 0, 0), 1, 2)
	b.Mesh()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reallocations.WithLabelValues("mesh")))

	b = NewMeshBuilder(tc, 0, 0, mesh)
	b.AddTriangle(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	b.Mesh()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reallocations.WithLabelValues("mesh")))
}

func TestTransformImmediate(t *testing.T) {
	b := NewPointsBuilder(nil, 2, nil)
	b.Add(math32.Vec3(0, 0, 0), 0)
	b.Add(math32.Vec3(1, 0, 0), 1)
	p := b.Points()
	m := Orientation(math32.Vec3(10, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1))
	v := p.Centers.Version()
	p.TransformRangeImmediate(&m, 1, 1)
	assert.Equal(t, []float32{0, 0, 0, 11, 0, 0}, p.Centers.Value())
	assert.Equal(t, v+1, p.Centers.Version())
	p.TransformImmediate(&m)
	assert.Equal(t, []float32{10, 0, 0, 21, 0, 0}, p.Centers.Value())
	assert.InDelta(t, 5.5, p.BoundingSphere().Radius, 1e-5)

	mb := NewMeshBuilder(nil, 0, 0, nil)
	mb.AddTriangle(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	mesh := mb.Mesh()
	assert.Equal(t, []float32{0, 0, 1}, mesh.Normals.Value()[0:3])
	scale := Orientation(math32.Vec3(0, 0, 0), math32.Vec3(3, 0, 0), math32.Vec3(0, 3, 0), math32.Vec3(0, 0, -1))
	mesh.TransformImmediate(&scale)
	n := mesh.Normals.Value()
	assert.InDelta(t, -1, n[2], 1e-6)
}

func TestLinesAndSpheres(t *testing.T) {
	lb := NewLinesBuilder(nil, 0, nil)
	lb.Add(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), 0)
	lb.AddDashes(math32.Vec3(0, 0, 0), math32.Vec3(0, 5, 0), 3, 1)
	l := lb.Lines()
	assert.Equal(t, 4, l.LineCount)
	assert.Equal(t, 24, l.DrawCount())
	assert.Len(t, l.Starts.Value(), 4*4*3)
	assert.Equal(t, float32(2), l.Starts.Value()[2*12+1])
	assert.Equal(t, float32(3), l.Ends.Value()[2*12+1])

	sb := NewSpheresBuilder(nil, 0, nil)
	sb.Add(math32.Vec3(0, 0, 0), 0)
	sb.Add(math32.Vec3(0, 0, 4), 1)
	s := sb.Spheres()
	assert.Equal(t, 2, s.SphereCount)
	assert.Equal(t, []uint32{4, 5, 6, 5, 7, 6}, s.Indices.Value()[6:])
	assert.InDelta(t, 2, s.BoundingSphere().Radius, 1e-5)
}

func TestText(t *testing.T) {
	b := NewTextBuilder(nil, 0, nil)
	b.Add("AB C", math32.Vec3(1, 2, 3), 0.5, 7)
	txt := b.Text()
	assert.Equal(t, 3, txt.CharCount)
	assert.Equal(t, 18, txt.DrawCount())
	assert.Equal(t, float32(7), txt.Groups.Value()[0])
	assert.NotEmpty(t, txt.Font.Value())
	mp := txt.Mappings.Value()
	// glyphs are laid out left to right around the anchor
	assert.Less(t, mp[0], float32(0))
	assert.Greater(t, mp[len(mp)-2], float32(0))
	for _, tc := range txt.TexCoords.Value() {
		assert.GreaterOrEqual(t, tc, float32(0))
		assert.LessOrEqual(t, tc, float32(1))
	}
}

func TestIsosurface(t *testing.T) {
	props := DefaultGaussianDensityProps()
	props.Resolution = 0.25
	center := math32.Vec3(1, 1, 1)
	g, err := ComputeGaussianDensity(task.Background(), []math32.Vector3{center}, []float32{1.5}, props)
	require.NoError(t, err)
	b := NewMeshBuilder(nil, 0, 0, nil)
	require.NoError(t, ExtractIsosurface(task.Background(), g, props.IsoLevel(), b, func(id int32) int { return int(id) + 3 }))
	m := b.Mesh()
	require.Greater(t, m.TriangleCount, 100)
	pos := m.Vertices.Value()
	ns := m.Normals.Value()
	for i := 0; i < m.VertexCount; i++ {
		p := math32.Vec3(pos[i*3], pos[i*3+1], pos[i*3+2])
		d := p.Sub(center)
		assert.InDelta(t, 1.5, d.Length(), 0.1)
		n := math32.Vec3(ns[i*3], ns[i*3+1], ns[i*3+2])
		assert.Greater(t, n.Dot(d), float32(0))
	}
	assert.Equal(t, float32(3), m.Groups.Value()[0])

	empty, err := ComputeGaussianDensity(task.Background(), nil, nil, props)
	require.NoError(t, err)
	b = NewMeshBuilder(nil, 0, 0, nil)
	require.NoError(t, ExtractIsosurface(task.Background(), empty, props.IsoLevel(), b, nil))
	assert.Equal(t, 0, b.TriangleCount())
}

type meshProps struct {
	Mesh MeshProps
}

func TestUtils(t *testing.T) {
	mesh := buildMesh(nil)
	u := MeshUtils(func(p *meshProps) *MeshProps { return &p.Mesh })
	props := &meshProps{Mesh: DefaultMeshProps()}
	props.Mesh.Color = theme.ColorProps{Name: theme.UnitIndexColor}
	tr := IdentityTransform(nil)
	it := location.NewIterator(2, 1, nil, nil)
	v, err := u.CreateValues(task.Background(), mesh, tr, it, props)
	require.NoError(t, err)
	assert.Equal(t, Counts{Draw: mesh.TriangleCount * 3, Group: 2, Instance: 1}, v.Counts())
	assert.Same(t, mesh.Vertices, v.Slots[renderobject.APosition])
	assert.Equal(t, false, renderobject.Get[bool](v.Slots, "dDoubleSided").Value())
	assert.Equal(t, 2, v.Marker.Count())
	assert.Nil(t, v.Size)

	alpha := v.Alpha.Version()
	ds := renderobject.Get[bool](v.Slots, "dDoubleSided")
	dsv := ds.Version()
	props.Mesh.Alpha = 0.5
	u.UpdateValues(v, props)
	assert.Equal(t, alpha+1, v.Alpha.Version())
	assert.Equal(t, dsv, ds.Version())
	assert.False(t, u.RenderState(props).Opaque)

	props.Mesh.DoubleSided = true
	u.UpdateValues(v, props)
	assert.Equal(t, dsv+1, ds.Version())

	bad := &meshProps{Mesh: DefaultMeshProps()}
	bad.Mesh.Color.Name = "nope"
	_, err = u.CreateValues(task.Background(), mesh, tr, it, bad)
	assert.Error(t, err)
}

func TestTransformBoundingSphere(t *testing.T) {
	ops := []math32.Matrix4{*math32.Identity4(), Orientation(math32.Vec3(10, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1))}
	tr := NewTransform(ops, nil)
	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, ops[1], tr.Operator(1))
	s := tr.BoundingSphere(math32.Sphere{Radius: 1})
	assert.Equal(t, math32.Vec3(5, 0, 0), s.Center)
	assert.InDelta(t, 6, s.Radius, 1e-6)

	m := tr.Matrices.Value()
	tr2 := NewTransform(ops[:1], tr)
	assert.Same(t, tr, tr2)
	assert.Same(t, &m[0], &tr2.Matrices.Value()[0])
	assert.Equal(t, 1, tr2.Count())
}
