// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/valuecell"
)

// MeshBuilder assembles a [Mesh] from triangles and primitives.
// All vertices added after [MeshBuilder.SetGroup] belong to that group.
type MeshBuilder struct {
	tc       *task.Context
	prev     *Mesh
	vertices *buffer.Buffer[float32]
	normals  *buffer.Buffer[float32]
	groups   *buffer.Buffer[float32]
	indices  *buffer.Buffer[uint32]
	group    float32
	old      []float32
}

// NewMeshBuilder returns a builder with room for the given counts,
// reusing the storage of prev if given. tc may be nil.
func NewMeshBuilder(tc *task.Context, initialVertexCount, initialTriangleCount int, prev *Mesh) *MeshBuilder {
	b := &MeshBuilder{tc: tc, prev: prev}
	var vc, nc, gc *valuecell.Cell[[]float32]
	var ic *valuecell.Cell[[]uint32]
	if prev != nil {
		vc, nc, gc, ic = prev.Vertices, prev.Normals, prev.Groups, prev.Indices
		b.old = vc.Value()
	}
	b.vertices = reuse(vc, initialVertexCount*3)
	b.normals = reuse(nc, initialVertexCount*3)
	b.groups = reuse(gc, initialVertexCount)
	b.indices = reuse(ic, initialTriangleCount*3)
	return b
}

// SetGroup sets the group of subsequently added vertices.
func (b *MeshBuilder) SetGroup(group int) {
	b.group = float32(group)
}

// VertexCount returns the number of vertices added so far.
func (b *MeshBuilder) VertexCount() int {
	return b.groups.Len()
}

// TriangleCount returns the number of triangles added so far.
func (b *MeshBuilder) TriangleCount() int {
	return b.indices.Len() / 3
}

func (b *MeshBuilder) addVertex(p, n math32.Vector3) uint32 {
	i := uint32(b.groups.Len())
	appendVec(b.vertices, p)
	appendVec(b.normals, n)
	b.groups.Append(b.group)
	return i
}

// AddTriangle adds a flat shaded triangle, counter clockwise
// when seen from the front.
func (b *MeshBuilder) AddTriangle(a, c, d math32.Vector3) {
	n := c.Sub(a).Cross(d.Sub(a)).Normal()
	i := b.addVertex(a, n)
	b.addVertex(c, n)
	b.addVertex(d, n)
	b.indices.Append(i, i+1, i+2)
}

// AddPrimitive adds the primitive transformed by m.
func (b *MeshBuilder) AddPrimitive(p *Primitive, m *math32.Matrix4) {
	nm := normalMatrix(m)
	off := uint32(b.groups.Len())
	for i, v := range p.Vertices {
		b.addVertex(v.MulMatrix4(m), nm.mul(p.Normals[i]))
	}
	for _, ix := range p.Indices {
		b.indices.Append(off + ix)
	}
}

// CylinderProps are the shape parameters of [MeshBuilder.AddCylinder].
type CylinderProps struct {
	RadiusTop      float32
	RadiusBottom   float32
	RadialSegments int
	TopCap         bool
	BottomCap      bool
}

// CylinderTriangleCount returns the number of triangles
// [MeshBuilder.AddCylinder] adds for the props.
func CylinderTriangleCount(props CylinderProps) int {
	n := max(props.RadialSegments, 3)
	t := 2 * n
	if props.TopCap {
		t += n
	}
	if props.BottomCap {
		t += n
	}
	return t
}

// AddCylinder adds a cylinder from start (bottom) to end (top).
// Nothing is added for coincident endpoints.
func (b *MeshBuilder) AddCylinder(start, end math32.Vector3, props CylinderProps) {
	d := end.Sub(start)
	if d.Length() == 0 {
		return
	}
	n := max(props.RadialSegments, 3)
	axis := d.Normal()
	u := Perpendicular(axis)
	v := axis.Cross(u)
	radial := func(i int) math32.Vector3 {
		a := 2 * math32.Pi * float32(i) / float32(n)
		return u.MulScalar(math32.Cos(a)).Add(v.MulScalar(math32.Sin(a)))
	}
	off := uint32(b.groups.Len())
	for i := range n {
		r := radial(i)
		b.addVertex(start.Add(r.MulScalar(props.RadiusBottom)), r)
		b.addVertex(end.Add(r.MulScalar(props.RadiusTop)), r)
	}
	for i := range n {
		j := (i + 1) % n
		bi, ti := off+uint32(2*i), off+uint32(2*i+1)
		bj, tj := off+uint32(2*j), off+uint32(2*j+1)
		b.indices.Append(bi, bj, tj, bi, tj, ti)
	}
	if props.BottomCap {
		b.addCap(start, axis.MulScalar(-1), props.RadiusBottom, n, radial, true)
	}
	if props.TopCap {
		b.addCap(end, axis, props.RadiusTop, n, radial, false)
	}
}

func (b *MeshBuilder) addCap(center, normal math32.Vector3, radius float32, n int, radial func(i int) math32.Vector3, flip bool) {
	c := b.addVertex(center, normal)
	for i := range n {
		b.addVertex(center.Add(radial(i).MulScalar(radius)), normal)
	}
	for i := range n {
		ri := c + 1 + uint32(i)
		rj := c + 1 + uint32((i+1)%n)
		if flip {
			b.indices.Append(c, rj, ri)
		} else {
			b.indices.Append(c, ri, rj)
		}
	}
}

// AddSphere adds an icosphere of the given subdivision detail.
func (b *MeshBuilder) AddSphere(center math32.Vector3, radius float32, detail int) {
	p := SpherePrimitive(detail)
	off := uint32(b.groups.Len())
	for _, v := range p.Vertices {
		b.addVertex(center.Add(v.MulScalar(radius)), v)
	}
	for _, ix := range p.Indices {
		b.indices.Append(off + ix)
	}
}

// AddBox adds the unit cube centered at the origin transformed by m.
func (b *MeshBuilder) AddBox(m *math32.Matrix4) {
	b.AddPrimitive(BoxPrimitive(), m)
}

// AddWedge adds the unit wedge transformed by m: a triangular
// prism pointing along +Y and extruded along Z.
func (b *MeshBuilder) AddWedge(m *math32.Matrix4) {
	b.AddPrimitive(WedgePrimitive(), m)
}

// Mesh returns the built mesh.
func (b *MeshBuilder) Mesh() *Mesh {
	m := b.prev
	if m == nil {
		m = &Mesh{}
	}
	m.VertexCount = b.groups.Len()
	m.TriangleCount = b.indices.Len() / 3
	m.Vertices = commit(m.Vertices, b.vertices)
	m.Normals = commit(m.Normals, b.normals)
	m.Groups = commit(m.Groups, b.groups)
	m.Indices = commit(m.Indices, b.indices)
	m.sphere = boundingSphere(m.Vertices.Value(), m.VertexCount)
	if b.prev != nil {
		reportRealloc(b.tc, renderobject.Mesh, sameStorage(m.Vertices, b.old))
	}
	return m
}

// Perpendicular returns a unit vector perpendicular to the unit vector d.
func Perpendicular(d math32.Vector3) math32.Vector3 {
	ref := math32.Vec3(1, 0, 0)
	if math32.Abs(d.X) > 0.9 {
		ref = math32.Vec3(0, 1, 0)
	}
	return ref.Cross(d).Normal()
}

// Orientation returns the matrix mapping the unit X, Y and Z axes to
// x, y and z and the origin to center.
func Orientation(center, x, y, z math32.Vector3) math32.Matrix4 {
	return math32.Matrix4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		center.X, center.Y, center.Z, 1,
	}
}
