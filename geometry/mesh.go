// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/valuecell"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	VertexCount   int
	TriangleCount int

	// Vertices holds 3 floats per vertex (aPosition).
	Vertices *valuecell.Cell[[]float32]

	// Normals holds 3 floats per vertex (aNormal).
	Normals *valuecell.Cell[[]float32]

	// Groups holds one group index per vertex (aGroup).
	Groups *valuecell.Cell[[]float32]

	// Indices holds 3 vertex indices per triangle (elements).
	Indices *valuecell.Cell[[]uint32]

	sphere math32.Sphere
}

func (m *Mesh) Kind() renderobject.Kind       { return renderobject.Mesh }
func (m *Mesh) DrawCount() int                { return m.TriangleCount * 3 }
func (m *Mesh) BoundingSphere() math32.Sphere { return m.sphere }

func (m *Mesh) Slots() renderobject.Values {
	return renderobject.Values{
		renderobject.APosition: m.Vertices,
		"aNormal":              m.Normals,
		renderobject.AGroup:    m.Groups,
		renderobject.Elements:  m.Indices,
	}
}

func (m *Mesh) TransformImmediate(t *math32.Matrix4) {
	m.TransformRangeImmediate(t, 0, m.VertexCount)
}

// TransformRangeImmediate transforms vertices and normals.
func (m *Mesh) TransformRangeImmediate(t *math32.Matrix4, offset, count int) {
	transformRange(m.Vertices.Value(), t, offset, count)
	nm := normalMatrix(t)
	ns := m.Normals.Value()
	end := min(offset+count, len(ns)/3)
	for i := max(offset, 0); i < end; i++ {
		n := nm.mul(math32.Vec3(ns[i*3], ns[i*3+1], ns[i*3+2]))
		ns[i*3], ns[i*3+1], ns[i*3+2] = n.X, n.Y, n.Z
	}
	valuecell.Update(m.Vertices, m.Vertices.Value())
	valuecell.Update(m.Normals, ns)
	m.sphere = boundingSphere(m.Vertices.Value(), m.VertexCount)
}

// EmptyMesh returns a mesh with zero counts, reusing prev if given.
func EmptyMesh(prev *Mesh) *Mesh {
	return NewMeshBuilder(nil, 0, 0, prev).Mesh()
}

// MeshProps are the props of [Mesh].
type MeshProps struct {
	BaseProps `mapstructure:",squash"`

	DoubleSided bool
	FlipSided   bool
	FlatShaded  bool
}

// DefaultMeshProps returns the defaults of [MeshProps].
func DefaultMeshProps() MeshProps {
	return MeshProps{BaseProps: DefaultBaseProps()}
}

// MeshUtils returns the [Utils] of meshes for props P.
func MeshUtils[P any](get func(props P) *MeshProps) Utils[P] {
	return Utils[P]{
		Kind: renderobject.Mesh,
		Base: func(props P) BaseProps { return get(props).BaseProps },
		Uniforms: func(v *Values, props P) {
			mp := get(props)
			SetUniform(v, "dDoubleSided", mp.DoubleSided)
			SetUniform(v, "dFlipSided", mp.FlipSided)
			SetUniform(v, "dFlatShaded", mp.FlatShaded)
		},
		Opaque: true,
	}
}

// matrix3 is the upper 3x3 of a [math32.Matrix4], column major.
type matrix3 [9]float32

func (m matrix3) mul(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(
		m[0]*v.X+m[3]*v.Y+m[6]*v.Z,
		m[1]*v.X+m[4]*v.Y+m[7]*v.Z,
		m[2]*v.X+m[5]*v.Y+m[8]*v.Z,
	).Normal()
}

// normalMatrix returns the cofactor matrix of the upper 3x3 of t,
// which transforms normals up to scale. Its sign is flipped for
// mirroring transforms so that normals keep pointing outwards.
func normalMatrix(t *math32.Matrix4) matrix3 {
	a, b, c := t[0], t[4], t[8]
	d, e, f := t[1], t[5], t[9]
	g, h, i := t[2], t[6], t[10]
	co := matrix3{
		e*i - f*h, -(d*i - f*g), d*h - e*g,
		-(b*i - c*h), a*i - c*g, -(a*h - b*g),
		b*f - c*e, -(a*f - c*d), a*e - b*d,
	}
	// co is row major
	var m matrix3
	for r := range 3 {
		for j := range 3 {
			m[j*3+r] = co[r*3+j]
		}
	}
	det := a*co[0] + b*co[1] + c*co[2]
	if det < 0 {
		for k := range m {
			m[k] = -m[k]
		}
	}
	return m
}
