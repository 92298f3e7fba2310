// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"sync"

	"cogentcore.org/core/math32"
)

// Primitive is an indexed triangle mesh template with per vertex
// normals, added to a [MeshBuilder] under a transform.
type Primitive struct {
	Vertices []math32.Vector3
	Normals  []math32.Vector3
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (p *Primitive) TriangleCount() int {
	return len(p.Indices) / 3
}

// addQuad adds the quad center ± u/2 ± v/2 facing u × v.
func (p *Primitive) addQuad(center, u, v math32.Vector3) {
	n := u.Cross(v).Normal()
	hu, hv := u.MulScalar(0.5), v.MulScalar(0.5)
	off := uint32(len(p.Vertices))
	p.Vertices = append(p.Vertices,
		center.Sub(hu).Sub(hv),
		center.Add(hu).Sub(hv),
		center.Add(hu).Add(hv),
		center.Sub(hu).Add(hv),
	)
	p.Normals = append(p.Normals, n, n, n, n)
	p.Indices = append(p.Indices, off, off+1, off+2, off, off+2, off+3)
}

// addTriangle adds a flat triangle.
func (p *Primitive) addTriangle(a, b, c math32.Vector3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normal()
	off := uint32(len(p.Vertices))
	p.Vertices = append(p.Vertices, a, b, c)
	p.Normals = append(p.Normals, n, n, n)
	p.Indices = append(p.Indices, off, off+1, off+2)
}

var (
	boxOnce sync.Once
	box     *Primitive

	wedgeOnce sync.Once
	wedge     *Primitive

	spheresMu sync.Mutex
	spheres   = map[int]*Primitive{}
)

// BoxPrimitive returns the unit cube centered at the origin,
// with 24 vertices and 12 triangles.
func BoxPrimitive() *Primitive {
	boxOnce.Do(func() {
		x, y, z := math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1)
		p := &Primitive{}
		p.addQuad(x.MulScalar(0.5), y, z)
		p.addQuad(x.MulScalar(-0.5), z, y)
		p.addQuad(y.MulScalar(0.5), z, x)
		p.addQuad(y.MulScalar(-0.5), x, z)
		p.addQuad(z.MulScalar(0.5), x, y)
		p.addQuad(z.MulScalar(-0.5), y, x)
		box = p
	})
	return box
}

// WedgePrimitive returns the unit wedge: a triangle with its tip at
// +Y in the XY plane, extruded along Z from -0.5 to 0.5. It has 18
// vertices and 8 triangles.
func WedgePrimitive() *Primitive {
	wedgeOnce.Do(func() {
		tri := []math32.Vector3{math32.Vec3(-0.5, -0.5, 0), math32.Vec3(0.5, -0.5, 0), math32.Vec3(0, 0.5, 0)}
		front, back := math32.Vec3(0, 0, 0.5), math32.Vec3(0, 0, -0.5)
		p := &Primitive{}
		p.addTriangle(tri[0].Add(front), tri[1].Add(front), tri[2].Add(front))
		p.addTriangle(tri[0].Add(back), tri[2].Add(back), tri[1].Add(back))
		for i := range tri {
			a, b := tri[i], tri[(i+1)%3]
			p.addQuad(a.Add(b).MulScalar(0.5), b.Sub(a), math32.Vec3(0, 0, 1))
		}
		wedge = p
	})
	return wedge
}

var icosahedronFaces = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// SpherePrimitive returns the unit icosphere subdivided detail times,
// with 20*4^detail triangles. Vertices are shared, and the normal of
// a vertex equals its position. Primitives are cached per detail.
func SpherePrimitive(detail int) *Primitive {
	detail = max(detail, 0)
	spheresMu.Lock()
	defer spheresMu.Unlock()
	if p, ok := spheres[detail]; ok {
		return p
	}
	t := (1 + math32.Sqrt(5)) / 2
	verts := []math32.Vector3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normal()
	}
	faces := icosahedronFaces
	for range detail {
		mids := map[[2]uint32]uint32{}
		mid := func(a, b uint32) uint32 {
			k := [2]uint32{min(a, b), max(a, b)}
			if m, ok := mids[k]; ok {
				return m
			}
			m := uint32(len(verts))
			verts = append(verts, verts[a].Add(verts[b]).Normal())
			mids[k] = m
			return m
		}
		nf := make([]uint32, 0, len(faces)*4)
		for i := 0; i < len(faces); i += 3 {
			a, b, c := faces[i], faces[i+1], faces[i+2]
			ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)
			nf = append(nf, a, ab, ca, b, bc, ab, c, ca, bc, ab, bc, ca)
		}
		faces = nf
	}
	p := &Primitive{Vertices: verts, Normals: verts, Indices: faces}
	spheres[detail] = p
	return p
}
