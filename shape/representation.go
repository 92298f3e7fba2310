// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/visual"
)

// Builder derives a shape from data. It reuses prev and its geometry
// if given.
type Builder[D any, G geometry.Geometry, P any] func(tc *task.Context, data D, props P, prev *Shape[G]) (*Shape[G], error)

// Representation draws the shape a [Builder] derives from data. It
// follows the lifecycle of a [visual.Visual].
type Representation[D any, G geometry.Geometry, P any] struct {
	name  string
	build Builder[D, G, P]
	utils geometry.Utils[P]

	// SetUpdateState sets CreateGeometry when the change from current
	// props c to new props n needs the shape rebuilt. Without it
	// every Update rebuilds.
	SetUpdateState func(s *visual.UpdateState, n, c P)

	state        visual.States
	data         D
	props        P
	shape        *Shape[G]
	values       *geometry.Values
	iterator     *location.Iterator
	renderObject *renderobject.RenderObject
}

// NewRepresentation returns an uninitialized representation.
func NewRepresentation[D any, G geometry.Geometry, P any](name string, build Builder[D, G, P], utils geometry.Utils[P]) *Representation[D, G, P] {
	return &Representation[D, G, P]{name: name, build: build, utils: utils}
}

func (r *Representation[D, G, P]) Name() string         { return r.name }
func (r *Representation[D, G, P]) State() visual.States { return r.state }
func (r *Representation[D, G, P]) Props() P             { return r.props }

// Shape returns the current shape, or nil before Create.
func (r *Representation[D, G, P]) Shape() *Shape[G] { return r.shape }

func (r *Representation[D, G, P]) Values() *geometry.Values { return r.values }

// RenderObjects returns the render object, if created.
func (r *Representation[D, G, P]) RenderObjects() []*renderobject.RenderObject {
	if r.renderObject == nil {
		return nil
	}
	return []*renderobject.RenderObject{r.renderObject}
}

func (r *Representation[D, G, P]) iteratorFor(s *Shape[G]) *location.Iterator {
	return location.NewIterator(s.GroupCount, 1, func(group, _ int) location.Location {
		return Location[G]{Shape: s, Group: group}
	}, nil)
}

// Create builds the shape for data. A created representation with an
// unchanged group count is rebuilt in place, keeping its render object.
func (r *Representation[D, G, P]) Create(tc *task.Context, data D, props P) error {
	if r.state == visual.Destroyed {
		return fmt.Errorf("%s: %w", r.name, visual.ErrDestroyed)
	}
	s, err := r.build(tc, data, props, r.shape)
	if err != nil {
		return err
	}
	it := r.iteratorFor(s)
	u := r.utils
	if r.state == visual.Created && r.iterator.GroupCount == it.GroupCount {
		if err := u.UpdateColors(tc, r.values, it, props); err != nil {
			return err
		}
		if err := u.UpdateSizes(tc, r.values, it, props); err != nil {
			return err
		}
		u.UpdateValues(r.values, props)
		u.UpdateGeometry(r.values, s.Geometry, r.values.Transform, it.GroupCount)
		u.UpdateRenderState(r.renderObject.State, props)
		r.values.Marker = marker.New(it.Count, r.values.Marker)
		r.commit(data, props, s, it)
		return nil
	}
	var prevTransform *geometry.Transform
	if r.values != nil {
		prevTransform = r.values.Transform
	}
	tr := geometry.NewTransform([]math32.Matrix4{*math32.Identity4()}, prevTransform)
	vals, err := u.CreateValues(tc, s.Geometry, tr, it, props)
	if err != nil {
		return err
	}
	r.values = vals
	r.renderObject = renderobject.New(u.Kind, vals.Slots, u.RenderState(props))
	r.commit(data, props, s, it)
	r.state = visual.Created
	logx.Logger().Debug("shape created", "shape", s.Name, "object", r.renderObject.ID, "groups", it.GroupCount)
	return nil
}

func (r *Representation[D, G, P]) commit(data D, props P, s *Shape[G], it *location.Iterator) {
	r.data = data
	r.props = props
	r.shape = s
	r.iterator = it
}

// Update applies new props to the current data. Changes that only
// touch colors, sizes or uniforms keep the shape. It returns false
// without error before Create.
func (r *Representation[D, G, P]) Update(tc *task.Context, props P) (bool, error) {
	if r.state != visual.Created {
		return false, nil
	}
	u := r.utils
	s := visual.UpdateState{CreateGeometry: r.SetUpdateState == nil}
	if u.Base(props).Color != u.Base(r.props).Color {
		s.UpdateColor = true
	}
	if ns, ok := u.SizeOf(props); ok {
		if cs, _ := u.SizeOf(r.props); ns != cs {
			s.UpdateSize = true
		}
	}
	if r.SetUpdateState != nil {
		r.SetUpdateState(&s, props, r.props)
	}
	if s.CreateNew || s.CreateGeometry {
		if err := r.Create(tc, r.data, props); err != nil {
			return false, err
		}
		return true, nil
	}
	if s.UpdateColor {
		if err := u.UpdateColors(tc, r.values, r.iterator, props); err != nil {
			return false, err
		}
	}
	if s.UpdateSize {
		if err := u.UpdateSizes(tc, r.values, r.iterator, props); err != nil {
			return false, err
		}
	}
	u.UpdateValues(r.values, props)
	u.UpdateRenderState(r.renderObject.State, props)
	r.props = props
	return true, nil
}

// GetLoci returns the shape group a picking id points at.
func (r *Representation[D, G, P]) GetLoci(id renderobject.PickingID) loci.Loci {
	if r.state != visual.Created || id.ObjectID != r.renderObject.ID {
		return loci.Empty
	}
	if id.InstanceID != 0 || id.GroupID < 0 || id.GroupID >= r.iterator.GroupCount {
		return loci.Empty
	}
	return NewLoci(r.shape, id.GroupID)
}

// Mark applies the action to the groups of the loci. Loci of other
// shapes are ignored.
func (r *Representation[D, G, P]) Mark(l loci.Loci, action marker.Actions) bool {
	if r.state != visual.Created || loci.IsEmpty(l) {
		return false
	}
	m := r.values.Marker
	if loci.IsEvery(l) {
		return m.Apply(0, m.Count(), action)
	}
	sl, ok := l.(Loci[G])
	if !ok || sl.Shape != r.shape {
		return false
	}
	changed := false
	for _, g := range sl.Groups {
		if g >= 0 && g < m.Count() && m.Apply(g, g+1, action) {
			changed = true
		}
	}
	return changed
}

// Destroy releases the render object. It is idempotent.
func (r *Representation[D, G, P]) Destroy() {
	r.renderObject = nil
	r.values = nil
	r.iterator = nil
	r.state = visual.Destroyed
}
