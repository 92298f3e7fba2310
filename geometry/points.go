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

// Points are screen space sized points.
type Points struct {
	PointCount int

	// Centers holds 3 floats per point (aPosition).
	Centers *valuecell.Cell[[]float32]

	// Groups holds one group index per point (aGroup).
	Groups *valuecell.Cell[[]float32]

	sphere math32.Sphere
}

func (p *Points) Kind() renderobject.Kind       { return renderobject.Points }
func (p *Points) DrawCount() int                { return p.PointCount }
func (p *Points) BoundingSphere() math32.Sphere { return p.sphere }

func (p *Points) Slots() renderobject.Values {
	return renderobject.Values{
		renderobject.APosition: p.Centers,
		renderobject.AGroup:    p.Groups,
	}
}

func (p *Points) TransformImmediate(m *math32.Matrix4) {
	p.TransformRangeImmediate(m, 0, p.PointCount)
}

func (p *Points) TransformRangeImmediate(m *math32.Matrix4, offset, count int) {
	transformRange(p.Centers.Value(), m, offset, count)
	valuecell.Update(p.Centers, p.Centers.Value())
	p.sphere = boundingSphere(p.Centers.Value(), p.PointCount)
}

// EmptyPoints returns points with zero count, reusing prev if given.
func EmptyPoints(prev *Points) *Points {
	return NewPointsBuilder(nil, 0, prev).Points()
}

// PointsProps are the props of [Points].
type PointsProps struct {
	BaseProps `mapstructure:",squash"`

	Size theme.SizeProps

	// PointSizeAttenuation makes points smaller with distance.
	PointSizeAttenuation bool

	// PointFilledCircle draws disks instead of squares.
	PointFilledCircle bool

	// PointEdgeBleach is the softness of the point edges, in [0, 1].
	PointEdgeBleach float32
}

// DefaultPointsProps returns the defaults of [PointsProps].
func DefaultPointsProps() PointsProps {
	return PointsProps{
		BaseProps:       DefaultBaseProps(),
		Size:            theme.SizeProps{Name: theme.UniformSize, Value: 3},
		PointEdgeBleach: 0.2,
	}
}

// PointsUtils returns the [Utils] of points for props P.
func PointsUtils[P any](get func(props P) *PointsProps) Utils[P] {
	return Utils[P]{
		Kind: renderobject.Points,
		Base: func(props P) BaseProps { return get(props).BaseProps },
		Size: func(props P) (theme.SizeProps, bool) { return get(props).Size, true },
		Uniforms: func(v *Values, props P) {
			pp := get(props)
			SetUniform(v, "dPointSizeAttenuation", pp.PointSizeAttenuation)
			SetUniform(v, "dPointFilledCircle", pp.PointFilledCircle)
			SetUniform(v, "uPointEdgeBleach", math32.Clamp(pp.PointEdgeBleach, 0, 1))
		},
		Opaque: true,
	}
}

// PointsBuilder assembles [Points].
type PointsBuilder struct {
	tc      *task.Context
	prev    *Points
	centers *buffer.Buffer[float32]
	groups  *buffer.Buffer[float32]
	old     []float32
}

// NewPointsBuilder returns a builder with room for initialCount points,
// reusing the storage of prev if given. tc may be nil.
func NewPointsBuilder(tc *task.Context, initialCount int, prev *Points) *PointsBuilder {
	b := &PointsBuilder{tc: tc, prev: prev}
	var cc, gc *valuecell.Cell[[]float32]
	if prev != nil {
		cc, gc = prev.Centers, prev.Groups
		b.old = cc.Value()
	}
	b.centers = reuse(cc, initialCount*3)
	b.groups = reuse(gc, initialCount)
	return b
}

// Add adds a point.
func (b *PointsBuilder) Add(p math32.Vector3, group int) {
	appendVec(b.centers, p)
	b.groups.Append(float32(group))
}

// Points returns the built points.
func (b *PointsBuilder) Points() *Points {
	p := b.prev
	if p == nil {
		p = &Points{}
	}
	p.PointCount = b.groups.Len()
	p.Centers = commit(p.Centers, b.centers)
	p.Groups = commit(p.Groups, b.groups)
	p.sphere = boundingSphere(p.Centers.Value(), p.PointCount)
	if b.prev != nil {
		reportRealloc(b.tc, renderobject.Points, sameStorage(p.Centers, b.old))
	}
	return p
}
