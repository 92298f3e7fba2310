// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/valuecell"
)

// Transform holds the per instance transforms of a render object.
type Transform struct {
	// Matrices holds 16 floats per instance, column major (aTransform).
	Matrices *valuecell.Cell[[]float32]

	// InstanceCount is the number of instances (uInstanceCount).
	InstanceCount *valuecell.Cell[int]
}

// NewTransform returns the transform for the given instance
// operators, reusing the cells and storage of prev if given.
func NewTransform(ops []math32.Matrix4, prev *Transform) *Transform {
	var mc *valuecell.Cell[[]float32]
	if prev != nil {
		mc = prev.Matrices
	}
	b := reuse(mc, len(ops)*16)
	for i := range ops {
		b.Append(ops[i][:]...)
	}
	if prev == nil {
		return &Transform{
			Matrices:      commit(nil, b),
			InstanceCount: valuecell.New(len(ops)),
		}
	}
	commit(prev.Matrices, b)
	valuecell.UpdateIfChanged(prev.InstanceCount, len(ops))
	return prev
}

// IdentityTransform returns a transform with a single identity instance.
func IdentityTransform(prev *Transform) *Transform {
	return NewTransform([]math32.Matrix4{*math32.Identity4()}, prev)
}

// Count returns the number of instances.
func (t *Transform) Count() int {
	return t.InstanceCount.Value()
}

// Operator returns the matrix of instance i.
func (t *Transform) Operator(i int) math32.Matrix4 {
	var m math32.Matrix4
	copy(m[:], t.Matrices.Value()[i*16:i*16+16])
	return m
}

// BoundingSphere returns the bounding sphere of the geometry sphere
// placed by every instance. Operators are assumed to be rigid.
func (t *Transform) BoundingSphere(s math32.Sphere) math32.Sphere {
	n := t.Count()
	if n == 0 {
		return math32.Sphere{}
	}
	bb := math32.B3Empty()
	centers := make([]math32.Vector3, n)
	for i := range n {
		m := t.Operator(i)
		c := s.Center.MulMatrix4(&m)
		centers[i] = c
		bb.ExpandByPoint(c)
	}
	center := bb.Center()
	var r float32
	for _, c := range centers {
		r = math32.Max(r, c.Sub(center).Length()+s.Radius)
	}
	return math32.Sphere{Center: center, Radius: r}
}
