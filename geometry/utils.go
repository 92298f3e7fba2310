// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"maps"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/valuecell"
)

// Utils turn a geometry of one kind into render object values, for
// the props type P of a visual. They are created by the per kind
// constructors such as [MeshUtils].
type Utils[P any] struct {
	Kind renderobject.Kind

	// Base returns the base props.
	Base func(props P) BaseProps

	// Size returns the size theme props, if the kind is sized.
	Size func(props P) (theme.SizeProps, bool)

	// Uniforms sets the kind specific slots, see [SetUniform].
	Uniforms func(v *Values, props P)

	// Opaque reports whether the kind is drawn opaque at full alpha.
	Opaque bool
}

// CreateValues evaluates the themes over the iterator and returns the
// values of the geometry.
func (u Utils[P]) CreateValues(tc *task.Context, g Geometry, tr *Transform, it *location.Iterator, props P) (*Values, error) {
	base := u.Base(props)
	ct, err := theme.NewColorTheme(base.Color)
	if err != nil {
		return nil, err
	}
	colors, err := theme.CreateColors(tc, it, ct, nil)
	if err != nil {
		return nil, err
	}
	var sizes *theme.SizeData
	if sp, ok := u.SizeOf(props); ok {
		st, err := theme.NewSizeTheme(sp)
		if err != nil {
			return nil, err
		}
		if sizes, err = theme.CreateSizes(tc, it, st, nil); err != nil {
			return nil, err
		}
	}
	v := &Values{
		Slots:          renderobject.Values{},
		Color:          colors,
		Size:           sizes,
		Marker:         marker.New(it.Count, nil),
		Transform:      tr,
		Alpha:          valuecell.New(base.Alpha),
		GroupCount:     valuecell.New(it.GroupCount),
		DrawCount:      valuecell.New(g.DrawCount()),
		BoundingSphere: valuecell.New(tr.BoundingSphere(g.BoundingSphere())),
	}
	maps.Copy(v.Slots, g.Slots())
	v.Slots[renderobject.ATransform] = tr.Matrices
	v.Slots[renderobject.UInstanceCount] = tr.InstanceCount
	v.Slots[renderobject.UColor] = colors.Uniform
	v.Slots[renderobject.TColor] = colors.Texture
	v.Slots[renderobject.DColorType] = colors.Type
	if sizes != nil {
		v.Slots[renderobject.USize] = sizes.Uniform
		v.Slots[renderobject.TSize] = sizes.Texture
		v.Slots[renderobject.DSizeType] = sizes.Type
	}
	v.Slots[renderobject.TMarker] = v.Marker.Cell
	v.Slots[renderobject.UAlpha] = v.Alpha
	v.Slots[renderobject.UGroupCount] = v.GroupCount
	v.Slots[renderobject.DrawCount] = v.DrawCount
	v.Slots[renderobject.BoundingSphere] = v.BoundingSphere
	if u.Uniforms != nil {
		u.Uniforms(v, props)
	}
	return v, nil
}

// SizeOf returns the size theme props, if the kind is sized.
func (u Utils[P]) SizeOf(props P) (theme.SizeProps, bool) {
	if u.Size == nil {
		return theme.SizeProps{}, false
	}
	return u.Size(props)
}

// UpdateValues updates the uniforms for changed props. It never
// changes buffer identity.
func (u Utils[P]) UpdateValues(v *Values, props P) {
	valuecell.UpdateIfChanged(v.Alpha, u.Base(props).Alpha)
	if u.Uniforms != nil {
		u.Uniforms(v, props)
	}
}

// UpdateGeometry makes the values reflect a rebuilt geometry and
// transform. Counts, cells and bounding sphere are only touched if
// they changed.
func (u Utils[P]) UpdateGeometry(v *Values, g Geometry, tr *Transform, groupCount int) {
	for nm, c := range g.Slots() {
		if v.Slots[nm] != c {
			v.Slots[nm] = c
		}
	}
	if v.Transform != tr {
		v.Transform = tr
		v.Slots[renderobject.ATransform] = tr.Matrices
		v.Slots[renderobject.UInstanceCount] = tr.InstanceCount
	}
	valuecell.UpdateIfChanged(v.DrawCount, g.DrawCount())
	valuecell.UpdateIfChanged(v.GroupCount, groupCount)
	valuecell.UpdateIfChanged(v.BoundingSphere, tr.BoundingSphere(g.BoundingSphere()))
}

// UpdateColors re-evaluates the color theme into the existing cells.
func (u Utils[P]) UpdateColors(tc *task.Context, v *Values, it *location.Iterator, props P) error {
	ct, err := theme.NewColorTheme(u.Base(props).Color)
	if err != nil {
		return err
	}
	_, err = theme.CreateColors(tc, it, ct, v.Color)
	return err
}

// UpdateSizes re-evaluates the size theme into the existing cells.
func (u Utils[P]) UpdateSizes(tc *task.Context, v *Values, it *location.Iterator, props P) error {
	sp, ok := u.SizeOf(props)
	if !ok || v.Size == nil {
		return nil
	}
	st, err := theme.NewSizeTheme(sp)
	if err != nil {
		return err
	}
	_, err = theme.CreateSizes(tc, it, st, v.Size)
	return err
}

// RenderState returns the render state for the props.
func (u Utils[P]) RenderState(props P) renderobject.State {
	base := u.Base(props)
	return renderobject.State{
		Visible:   base.Visible,
		Pickable:  true,
		Opaque:    u.Opaque && base.Alpha >= 1,
		DepthMask: base.DepthMask,
	}
}

// UpdateRenderState updates the state cell if the props change it.
func (u Utils[P]) UpdateRenderState(s *valuecell.Cell[renderobject.State], props P) bool {
	return valuecell.UpdateIfChanged(s, u.RenderState(props))
}

// uniformVector returns the color as an rgb vector in [0, 1].
func uniformVector(r, g, b uint8) math32.Vector3 {
	return math32.Vec3(float32(r)/255, float32(g)/255, float32(b)/255)
}
