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

// Lines are screen space wide line segments, drawn as quads of
// 4 vertices and 6 indices each.
type Lines struct {
	LineCount int

	// Mappings holds 2 floats per vertex (aMapping).
	Mappings *valuecell.Cell[[]float32]

	// Indices holds 6 vertex indices per segment (elements).
	Indices *valuecell.Cell[[]uint32]

	// Groups holds one group index per vertex (aGroup).
	Groups *valuecell.Cell[[]float32]

	// Starts and Ends hold the segment endpoints, 3 floats per
	// vertex (aStart, aEnd).
	Starts *valuecell.Cell[[]float32]
	Ends   *valuecell.Cell[[]float32]

	sphere math32.Sphere
}

// lineMapping are the quad corners of one segment.
var lineMapping = [8]float32{-1, 1, -1, -1, 1, 1, 1, -1}

func (l *Lines) Kind() renderobject.Kind       { return renderobject.Lines }
func (l *Lines) DrawCount() int                { return l.LineCount * 6 }
func (l *Lines) BoundingSphere() math32.Sphere { return l.sphere }

func (l *Lines) Slots() renderobject.Values {
	return renderobject.Values{
		"aMapping":            l.Mappings,
		renderobject.Elements: l.Indices,
		renderobject.AGroup:   l.Groups,
		"aStart":              l.Starts,
		"aEnd":                l.Ends,
	}
}

func (l *Lines) TransformImmediate(m *math32.Matrix4) {
	l.TransformRangeImmediate(m, 0, l.LineCount)
}

// TransformRangeImmediate transforms count segments starting at offset.
func (l *Lines) TransformRangeImmediate(m *math32.Matrix4, offset, count int) {
	transformRange(l.Starts.Value(), m, offset*4, count*4)
	transformRange(l.Ends.Value(), m, offset*4, count*4)
	valuecell.Update(l.Starts, l.Starts.Value())
	valuecell.Update(l.Ends, l.Ends.Value())
	l.sphere = linesSphere(l.Starts.Value(), l.Ends.Value(), l.LineCount)
}

func linesSphere(starts, ends []float32, n int) math32.Sphere {
	pts := make([]float32, 0, n*6)
	for i := range n {
		pts = append(pts, starts[i*12:i*12+3]...)
		pts = append(pts, ends[i*12:i*12+3]...)
	}
	return boundingSphere(pts, n*2)
}

// EmptyLines returns lines with zero count, reusing prev if given.
func EmptyLines(prev *Lines) *Lines {
	return NewLinesBuilder(nil, 0, prev).Lines()
}

// LinesProps are the props of [Lines].
type LinesProps struct {
	BaseProps `mapstructure:",squash"`

	Size theme.SizeProps

	// LineSizeAttenuation makes lines thinner with distance.
	LineSizeAttenuation bool
}

// DefaultLinesProps returns the defaults of [LinesProps].
func DefaultLinesProps() LinesProps {
	return LinesProps{
		BaseProps: DefaultBaseProps(),
		Size:      theme.SizeProps{Name: theme.UniformSize, Value: 2},
	}
}

// LinesUtils returns the [Utils] of lines for props P.
func LinesUtils[P any](get func(props P) *LinesProps) Utils[P] {
	return Utils[P]{
		Kind: renderobject.Lines,
		Base: func(props P) BaseProps { return get(props).BaseProps },
		Size: func(props P) (theme.SizeProps, bool) { return get(props).Size, true },
		Uniforms: func(v *Values, props P) {
			SetUniform(v, "dLineSizeAttenuation", get(props).LineSizeAttenuation)
		},
		Opaque: true,
	}
}

// LinesBuilder assembles [Lines].
type LinesBuilder struct {
	tc       *task.Context
	prev     *Lines
	mappings *buffer.Buffer[float32]
	indices  *buffer.Buffer[uint32]
	groups   *buffer.Buffer[float32]
	starts   *buffer.Buffer[float32]
	ends     *buffer.Buffer[float32]
	old      []float32
}

// NewLinesBuilder returns a builder with room for initialCount
// segments, reusing the storage of prev if given. tc may be nil.
func NewLinesBuilder(tc *task.Context, initialCount int, prev *Lines) *LinesBuilder {
	b := &LinesBuilder{tc: tc, prev: prev}
	var mc, gc, sc, ec *valuecell.Cell[[]float32]
	var ic *valuecell.Cell[[]uint32]
	if prev != nil {
		mc, ic, gc, sc, ec = prev.Mappings, prev.Indices, prev.Groups, prev.Starts, prev.Ends
		b.old = sc.Value()
	}
	b.mappings = reuse(mc, initialCount*8)
	b.indices = reuse(ic, initialCount*6)
	b.groups = reuse(gc, initialCount*4)
	b.starts = reuse(sc, initialCount*12)
	b.ends = reuse(ec, initialCount*12)
	return b
}

// Add adds a segment.
func (b *LinesBuilder) Add(start, end math32.Vector3, group int) {
	off := uint32(b.groups.Len())
	b.mappings.Append(lineMapping[:]...)
	for range 4 {
		appendVec(b.starts, start)
		appendVec(b.ends, end)
		b.groups.Append(float32(group))
	}
	b.indices.Append(off, off+1, off+2, off+1, off+3, off+2)
}

// AddDashes adds segments dashes between start and end, leaving
// a gap of the same length between consecutive dashes.
func (b *LinesBuilder) AddDashes(start, end math32.Vector3, segments, group int) {
	segments = max(segments, 1)
	step := end.Sub(start).DivScalar(float32(segments*2 - 1))
	for i := range segments {
		s := start.Add(step.MulScalar(float32(2 * i)))
		b.Add(s, s.Add(step), group)
	}
}

// Lines returns the built lines.
func (b *LinesBuilder) Lines() *Lines {
	l := b.prev
	if l == nil {
		l = &Lines{}
	}
	l.LineCount = b.groups.Len() / 4
	l.Mappings = commit(l.Mappings, b.mappings)
	l.Indices = commit(l.Indices, b.indices)
	l.Groups = commit(l.Groups, b.groups)
	l.Starts = commit(l.Starts, b.starts)
	l.Ends = commit(l.Ends, b.ends)
	l.sphere = linesSphere(l.Starts.Value(), l.Ends.Value(), l.LineCount)
	if b.prev != nil {
		reportRealloc(b.tc, renderobject.Lines, sameStorage(l.Starts, b.old))
	}
	return l
}
