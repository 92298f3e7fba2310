// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geometry provides the geometry kinds that visuals build
// (points, meshes, lines, sphere impostors and text) together with
// their builders and the utilities that turn a geometry into render
// object values.
//
// Builders accept the previous geometry of the same kind and reuse
// its cells and backing storage: the returned geometry is then the
// same object with new contents.
package geometry

import (
	"image/color"
	"unsafe"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/valuecell"
)

// Geometry is implemented by all geometry kinds.
type Geometry interface {
	// Kind returns the render object kind.
	Kind() renderobject.Kind

	// DrawCount is the number of vertices or indices to draw.
	DrawCount() int

	// BoundingSphere is the bounding sphere in model coordinates.
	BoundingSphere() math32.Sphere

	// Slots returns the cells owned by the geometry, by slot name.
	Slots() renderobject.Values

	// TransformImmediate transforms all positions in place.
	TransformImmediate(m *math32.Matrix4)

	// TransformRangeImmediate transforms count positions starting
	// at offset in place. Position is the unit the kind counts in:
	// points, vertices, segments, spheres or characters.
	TransformRangeImmediate(m *math32.Matrix4, offset, count int)
}

// BaseProps are the props common to all geometry kinds.
type BaseProps struct {
	Alpha     float32
	Visible   bool
	DepthMask bool
	Color     theme.ColorProps
}

// DefaultBaseProps returns the defaults of [BaseProps].
func DefaultBaseProps() BaseProps {
	return BaseProps{
		Alpha:     1,
		Visible:   true,
		DepthMask: true,
		Color:     theme.ColorProps{Name: theme.UniformColor, Value: color.RGBA{0x99, 0x99, 0x99, 0xff}},
	}
}

// Counts are the counts a render object is drawn with.
type Counts struct {
	Draw     int
	Group    int
	Instance int
}

// Values are the render object values of one geometry with typed
// access to the cells the build pipeline updates.
type Values struct {
	// Slots are handed to the render object. Geometry cells are
	// replaced in this map when the geometry object changes.
	Slots renderobject.Values

	Color     *theme.ColorData
	Size      *theme.SizeData
	Marker    *marker.Data
	Transform *Transform

	Alpha          *valuecell.Cell[float32]
	GroupCount     *valuecell.Cell[int]
	DrawCount      *valuecell.Cell[int]
	BoundingSphere *valuecell.Cell[math32.Sphere]
}

// Counts returns the current counts.
func (v *Values) Counts() Counts {
	return Counts{
		Draw:     v.DrawCount.Value(),
		Group:    v.GroupCount.Value(),
		Instance: v.Transform.Count(),
	}
}

// SetUniform sets a scalar slot, creating it on first use and
// bumping its version only if the value changed.
func SetUniform[T comparable](v *Values, name string, value T) {
	if c := renderobject.Get[T](v.Slots, name); c != nil {
		valuecell.UpdateIfChanged(c, value)
		return
	}
	v.Slots[name] = valuecell.New(value)
}

// reuse returns a buffer over the storage of the cell if there is one,
// emptied and able to hold n elements.
func reuse[E any](c *valuecell.Cell[[]E], n int) *buffer.Buffer[E] {
	var b *buffer.Buffer[E]
	if c == nil {
		b = buffer.New[E](0)
	} else {
		b = buffer.From(c.Value())
	}
	b.Reset()
	b.Reserve(n)
	return b
}

// commit stores the buffer contents in the cell, creating it if nil.
func commit[E any](c *valuecell.Cell[[]E], b *buffer.Buffer[E]) *valuecell.Cell[[]E] {
	if c == nil {
		return valuecell.New(b.Detach())
	}
	valuecell.Update(c, b.Detach())
	return c
}

// sameStorage reports whether the cell still holds the storage it had
// before a rebuild, for reallocation accounting.
func sameStorage[E any](c *valuecell.Cell[[]E], prev []E) bool {
	if c == nil || cap(prev) == 0 {
		return false
	}
	return unsafe.SliceData(c.Value()) == unsafe.SliceData(prev)
}

// reportRealloc records that a builder had to allocate new storage
// even though a previous geometry was given.
func reportRealloc(tc *task.Context, kind renderobject.Kind, reused bool) {
	if reused {
		return
	}
	logx.Logger().Debug("geometry storage reallocated", "kind", kind)
	if tc != nil {
		tc.Metrics().Reallocated(kind.String())
	}
}

// boundingSphere returns the bounding sphere of n points stored
// as xyz triples.
func boundingSphere(pos []float32, n int) math32.Sphere {
	if n == 0 {
		return math32.Sphere{}
	}
	bb := math32.B3Empty()
	for i := 0; i < n; i++ {
		bb.ExpandByPoint(math32.Vec3(pos[i*3], pos[i*3+1], pos[i*3+2]))
	}
	c := bb.Center()
	var r float32
	for i := 0; i < n; i++ {
		r = math32.Max(r, math32.Vec3(pos[i*3], pos[i*3+1], pos[i*3+2]).Sub(c).Length())
	}
	return math32.Sphere{Center: c, Radius: r}
}

// transformRange applies m to count xyz triples starting at offset.
func transformRange(pos []float32, m *math32.Matrix4, offset, count int) {
	end := min(offset+count, len(pos)/3)
	for i := max(offset, 0); i < end; i++ {
		p := math32.Vec3(pos[i*3], pos[i*3+1], pos[i*3+2]).MulMatrix4(m)
		pos[i*3], pos[i*3+1], pos[i*3+2] = p.X, p.Y, p.Z
	}
}

// appendVec appends the components of v.
func appendVec(b *buffer.Buffer[float32], v math32.Vector3) {
	b.Append(v.X, v.Y, v.Z)
}
