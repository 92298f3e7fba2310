// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/valuecell"
)

// Spheres are ray cast sphere impostors, drawn as quads of 4 vertices
// and 6 indices each. The radius comes from the size theme.
type Spheres struct {
	SphereCount int

	// Centers holds 3 floats per vertex (aPosition).
	Centers *valuecell.Cell[[]float32]

	// Mappings holds 2 floats per vertex (aMapping).
	Mappings *valuecell.Cell[[]float32]

	// Indices holds 6 vertex indices per sphere (elements).
	Indices *valuecell.Cell[[]uint32]

	// Groups holds one group index per vertex (aGroup).
	Groups *valuecell.Cell[[]float32]

	sphere math32.Sphere
}

var sphereMapping = [8]float32{-1, 1, -1, -1, 1, 1, 1, -1}

func (s *Spheres) Kind() renderobject.Kind       { return renderobject.Spheres }
func (s *Spheres) DrawCount() int                { return s.SphereCount * 6 }
func (s *Spheres) BoundingSphere() math32.Sphere { return s.sphere }

func (s *Spheres) Slots() renderobject.Values {
	return renderobject.Values{
		renderobject.APosition: s.Centers,
		"aMapping":             s.Mappings,
		renderobject.Elements:  s.Indices,
		renderobject.AGroup:    s.Groups,
	}
}

func (s *Spheres) TransformImmediate(m *math32.Matrix4) {
	s.TransformRangeImmediate(m, 0, s.SphereCount)
}

// TransformRangeImmediate transforms count spheres starting at offset.
func (s *Spheres) TransformRangeImmediate(m *math32.Matrix4, offset, count int) {
	transformRange(s.Centers.Value(), m, offset*4, count*4)
	valuecell.Update(s.Centers, s.Centers.Value())
	s.sphere = boundingSphere(s.Centers.Value(), s.SphereCount*4)
}

// EmptySpheres returns spheres with zero count, reusing prev if given.
func EmptySpheres(prev *Spheres) *Spheres {
	return NewSpheresBuilder(nil, 0, prev).Spheres()
}

// SpheresProps are the props of [Spheres].
type SpheresProps struct {
	BaseProps `mapstructure:",squash"`

	Size theme.SizeProps

	// IgnoreLight draws the spheres without shading.
	IgnoreLight bool
}

// DefaultSpheresProps returns the defaults of [SpheresProps].
func DefaultSpheresProps() SpheresProps {
	return SpheresProps{
		BaseProps: DefaultBaseProps(),
		Size:      theme.SizeProps{Name: theme.PhysicalSize, Factor: 1},
	}
}

// SpheresUtils returns the [Utils] of spheres for props P.
func SpheresUtils[P any](get func(props P) *SpheresProps) Utils[P] {
	return Utils[P]{
		Kind: renderobject.Spheres,
		Base: func(props P) BaseProps { return get(props).BaseProps },
		Size: func(props P) (theme.SizeProps, bool) { return get(props).Size, true },
		Uniforms: func(v *Values, props P) {
			SetUniform(v, "dIgnoreLight", get(props).IgnoreLight)
		},
		Opaque: true,
	}
}

// SpheresBuilder assembles [Spheres].
type SpheresBuilder struct {
	tc       *task.Context
	prev     *Spheres
	centers  *buffer.Buffer[float32]
	mappings *buffer.Buffer[float32]
	indices  *buffer.Buffer[uint32]
	groups   *buffer.Buffer[float32]
	old      []float32
}

// NewSpheresBuilder returns a builder with room for initialCount
// spheres, reusing the storage of prev if given. tc may be nil.
func NewSpheresBuilder(tc *task.Context, initialCount int, prev *Spheres) *SpheresBuilder {
	b := &SpheresBuilder{tc: tc, prev: prev}
	var cc, mc, gc *valuecell.Cell[[]float32]
	var ic *valuecell.Cell[[]uint32]
	if prev != nil {
		cc, mc, ic, gc = prev.Centers, prev.Mappings, prev.Indices, prev.Groups
		b.old = cc.Value()
	}
	b.centers = reuse(cc, initialCount*12)
	b.mappings = reuse(mc, initialCount*8)
	b.indices = reuse(ic, initialCount*6)
	b.groups = reuse(gc, initialCount*4)
	return b
}

// Add adds a sphere.
func (b *SpheresBuilder) Add(center math32.Vector3, group int) {
	off := uint32(b.groups.Len())
	b.mappings.Append(sphereMapping[:]...)
	for range 4 {
		appendVec(b.centers, center)
		b.groups.Append(float32(group))
	}
	b.indices.Append(off, off+1, off+2, off+1, off+3, off+2)
}

// Spheres returns the built spheres.
func (b *SpheresBuilder) Spheres() *Spheres {
	s := b.prev
	if s == nil {
		s = &Spheres{}
	}
	s.SphereCount = b.groups.Len() / 4
	s.Centers = commit(s.Centers, b.centers)
	s.Mappings = commit(s.Mappings, b.mappings)
	s.Indices = commit(s.Indices, b.indices)
	s.Groups = commit(s.Groups, b.groups)
	s.sphere = boundingSphere(s.Centers.Value(), s.SphereCount*4)
	if b.prev != nil {
		reportRealloc(b.tc, renderobject.Spheres, sameStorage(s.Centers, b.old))
	}
	return s
}
