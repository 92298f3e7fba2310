// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visual turns structure data into one render object per
// visual. A visual owns its geometry, its render object values and
// its props, and rebuilds only what a props change requires.
package visual

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
)

var (
	// ErrInvalidPropsTransition is returned by Update for props changes
	// that alter group or instance counts. Such changes need a Create.
	ErrInvalidPropsTransition = errors.New("visual: props change requires create")

	// ErrDestroyed is returned by Create after Destroy.
	ErrDestroyed = errors.New("visual: destroyed")
)

// States are the lifecycle states of a visual.
type States int32

const (
	// Uninitialized visuals have no render object yet.
	Uninitialized States = iota

	// Created visuals have a committed render object.
	Created

	// Destroyed visuals released their render object for good.
	Destroyed
)

func (s States) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Created:
		return "created"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("States(%d)", int32(s))
}

// Visual is one renderable part of a representation, built from data
// of type D with props of type P.
//
// A failed or cancelled Create or Update keeps the committed props and
// render object, but geometry rebuilt in place may be partially written
// until the next successful build.
type Visual[D, P any] interface {
	// Name is the registered name of the visual, e.g. "polymer-trace".
	Name() string

	// State returns the lifecycle state.
	State() States

	// RenderObject returns the committed render object, or nil
	// unless the visual is [Created].
	RenderObject() *renderobject.RenderObject

	// Props returns the last committed props.
	Props() P

	// Create builds everything from data and props. When called on a
	// created visual it rebuilds, reusing storage where counts allow, and
	// clears all markers.
	// On error the prior committed state is kept.
	Create(tc *task.Context, data D, props P) error

	// Update applies a props change with the least work possible.
	// It returns false without error before the first Create.
	Update(tc *task.Context, props P) (bool, error)

	// GetLoci resolves a picking id of this visual's render object.
	GetLoci(id renderobject.PickingID) loci.Loci

	// Mark applies the action to all slots the loci covers and
	// reports whether any slot changed.
	Mark(l loci.Loci, action marker.Actions) bool

	// Destroy releases the render object. It is idempotent.
	Destroy()
}

// UpdateState collects what a props change requires.
type UpdateState struct {
	// CreateNew is set if counts change, which Update rejects.
	CreateNew bool

	// CreateGeometry rebuilds the geometry in place.
	CreateGeometry bool

	UpdateColor bool
	UpdateSize  bool
}

// Def defines a visual over data D, geometry G and props P by the
// functions that differ between visuals.
type Def[D any, G geometry.Geometry, P any] struct {
	Name string

	// CreateGeometry builds the geometry, reusing prev, which is the
	// zero G on the first build.
	CreateGeometry func(tc *task.Context, data D, props P, prev G) (G, error)

	// CreateLocationIterator returns the iterator over all slots of
	// the geometry. Its instance count must match the transform.
	CreateLocationIterator func(data D, props P) *location.Iterator

	// GetLoci returns the loci of a slot, or [loci.Empty].
	GetLoci func(id renderobject.PickingID, data D, props P) loci.Loci

	// EachLocation calls apply for every slot range the loci covers
	// and returns whether any call returned true.
	EachLocation func(l loci.Loci, data D, props P, apply func(start, end int) bool) bool

	// SetUpdateState sets the kind specific flags of s for a change
	// from currentProps to newProps. Color and size changes are
	// detected by the driver.
	SetUpdateState func(s *UpdateState, newProps, currentProps P)

	Utils geometry.Utils[P]
}

// adapter adapts the two kinds of visual data to the driver.
type adapter[D any] struct {
	validate    func(D) error
	operators   func(D) []math32.Matrix4
	structureOf func(D) *structure.Structure
}

// driver is the state machine shared by [UnitsVisual] and [ComplexVisual].
type driver[D any, G geometry.Geometry, P any] struct {
	def   *Def[D, G, P]
	kind  adapter[D]
	state States

	data         D
	props        P
	geometry     G
	values       *geometry.Values
	iterator     *location.Iterator
	renderObject *renderobject.RenderObject
}

func (v *driver[D, G, P]) Name() string  { return v.def.Name }
func (v *driver[D, G, P]) State() States { return v.state }
func (v *driver[D, G, P]) Props() P      { return v.props }

func (v *driver[D, G, P]) RenderObject() *renderobject.RenderObject {
	if v.state != Created {
		return nil
	}
	return v.renderObject
}

// Values returns the render object values, or nil.
func (v *driver[D, G, P]) Values() *geometry.Values {
	return v.values
}

// Geometry returns the current geometry.
func (v *driver[D, G, P]) Geometry() G {
	return v.geometry
}

func (v *driver[D, G, P]) Create(tc *task.Context, data D, props P) error {
	if v.state == Destroyed {
		return fmt.Errorf("%s: %w", v.def.Name, ErrDestroyed)
	}
	if err := v.kind.validate(data); err != nil {
		return fmt.Errorf("%s: %w", v.def.Name, err)
	}
	g, err := v.def.CreateGeometry(tc, data, props, v.geometry)
	if err != nil {
		return err
	}
	it := v.def.CreateLocationIterator(data, props)
	u := v.def.Utils
	if v.state == Created && v.iterator.GroupCount == it.GroupCount && v.iterator.InstanceCount == it.InstanceCount {
		tr := geometry.NewTransform(v.kind.operators(data), v.values.Transform)
		if err := u.UpdateColors(tc, v.values, it, props); err != nil {
			return err
		}
		if err := u.UpdateSizes(tc, v.values, it, props); err != nil {
			return err
		}
		u.UpdateValues(v.values, props)
		u.UpdateGeometry(v.values, g, tr, it.GroupCount)
		u.UpdateRenderState(v.renderObject.State, props)
		v.values.Marker = marker.New(it.Count, v.values.Marker)
		v.commit(data, props, g, it)
		logx.Logger().Debug("visual rebuilt", "visual", v.def.Name, "groups", it.GroupCount, "instances", it.InstanceCount)
		return nil
	}
	var prevTransform *geometry.Transform
	if v.values != nil {
		prevTransform = v.values.Transform
	}
	tr := geometry.NewTransform(v.kind.operators(data), prevTransform)
	vals, err := u.CreateValues(tc, g, tr, it, props)
	if err != nil {
		return err
	}
	v.values = vals
	v.renderObject = renderobject.New(u.Kind, vals.Slots, u.RenderState(props))
	v.commit(data, props, g, it)
	v.state = Created
	logx.Logger().Debug("visual created", "visual", v.def.Name, "object", v.renderObject.ID, "groups", it.GroupCount, "instances", it.InstanceCount)
	return nil
}

func (v *driver[D, G, P]) commit(data D, props P, g G, it *location.Iterator) {
	v.data = data
	v.props = props
	v.geometry = g
	v.iterator = it
}

func (v *driver[D, G, P]) Update(tc *task.Context, props P) (bool, error) {
	if v.state != Created {
		return false, nil
	}
	u := v.def.Utils
	s := UpdateState{}
	if u.Base(props).Color != u.Base(v.props).Color {
		s.UpdateColor = true
	}
	if ns, ok := u.SizeOf(props); ok {
		if cs, _ := u.SizeOf(v.props); ns != cs {
			s.UpdateSize = true
		}
	}
	if v.def.SetUpdateState != nil {
		v.def.SetUpdateState(&s, props, v.props)
	}
	if s.CreateNew {
		return false, fmt.Errorf("%s: %w", v.def.Name, ErrInvalidPropsTransition)
	}
	g := v.geometry
	if s.CreateGeometry {
		var err error
		if g, err = v.def.CreateGeometry(tc, v.data, props, v.geometry); err != nil {
			return false, err
		}
	}
	if s.UpdateColor {
		if err := u.UpdateColors(tc, v.values, v.iterator, props); err != nil {
			return false, err
		}
	}
	if s.UpdateSize {
		if err := u.UpdateSizes(tc, v.values, v.iterator, props); err != nil {
			return false, err
		}
	}
	u.UpdateValues(v.values, props)
	if s.CreateGeometry {
		u.UpdateGeometry(v.values, g, v.values.Transform, v.iterator.GroupCount)
	}
	u.UpdateRenderState(v.renderObject.State, props)
	v.props = props
	v.geometry = g
	return true, nil
}

func (v *driver[D, G, P]) GetLoci(id renderobject.PickingID) loci.Loci {
	if v.state != Created || id.ObjectID != v.renderObject.ID {
		return loci.Empty
	}
	if id.InstanceID < 0 || id.InstanceID >= v.iterator.InstanceCount || id.GroupID < 0 || id.GroupID >= v.iterator.GroupCount {
		return loci.Empty
	}
	return v.def.GetLoci(id, v.data, v.props)
}

func (v *driver[D, G, P]) Mark(l loci.Loci, action marker.Actions) bool {
	if v.state != Created || loci.IsEmpty(l) {
		return false
	}
	m := v.values.Marker
	if loci.IsEvery(l) {
		return m.Apply(0, m.Count(), action)
	}
	if s := v.kind.structureOf(v.data); s != nil {
		if ls := lociStructure(l); ls != nil && ls != s {
			return false
		}
	}
	return v.def.EachLocation(l, v.data, v.props, func(start, end int) bool {
		return m.Apply(start, end, action)
	})
}

func (v *driver[D, G, P]) Destroy() {
	if v.state == Destroyed {
		return
	}
	if v.renderObject != nil {
		logx.Logger().Debug("visual destroyed", "visual", v.def.Name, "object", v.renderObject.ID)
	}
	v.renderObject = nil
	v.values = nil
	v.iterator = nil
	v.state = Destroyed
}

// lociStructure returns the structure a structure loci refers to.
func lociStructure(l loci.Loci) *structure.Structure {
	switch l := l.(type) {
	case loci.Elements:
		return l.Structure
	case loci.Links:
		return l.Structure
	}
	return nil
}

// UnitsVisual renders one unit group: the geometry of the
// representative unit, instanced once per unit of the group.
type UnitsVisual[G geometry.Geometry, P any] struct {
	driver[structure.UnitGroup, G, P]
}

// NewUnitsVisual returns an uninitialized visual for the definition.
func NewUnitsVisual[G geometry.Geometry, P any](def *Def[structure.UnitGroup, G, P]) *UnitsVisual[G, P] {
	v := &UnitsVisual[G, P]{}
	v.def = def
	v.kind = adapter[structure.UnitGroup]{
		validate: func(g structure.UnitGroup) error {
			if len(g.Units) == 0 {
				return fmt.Errorf("%w: empty unit group", structure.ErrMalformed)
			}
			for _, u := range g.Units {
				if u.Model == nil {
					return fmt.Errorf("%w: unit %d has no model", structure.ErrMalformed, u.ID)
				}
			}
			return g.Representative().Model.Validate()
		},
		operators: func(g structure.UnitGroup) []math32.Matrix4 {
			ops := make([]math32.Matrix4, len(g.Units))
			for i, u := range g.Units {
				ops[i] = u.Operator
			}
			return ops
		},
		structureOf: func(g structure.UnitGroup) *structure.Structure { return g.Structure },
	}
	return v
}

// ComplexVisual renders a whole structure as a single instance.
type ComplexVisual[G geometry.Geometry, P any] struct {
	driver[*structure.Structure, G, P]
}

// NewComplexVisual returns an uninitialized visual for the definition.
func NewComplexVisual[G geometry.Geometry, P any](def *Def[*structure.Structure, G, P]) *ComplexVisual[G, P] {
	v := &ComplexVisual[G, P]{}
	v.def = def
	v.kind = adapter[*structure.Structure]{
		validate: func(s *structure.Structure) error {
			if s == nil {
				return fmt.Errorf("%w: no structure", structure.ErrMalformed)
			}
			return s.Validate()
		},
		operators: func(*structure.Structure) []math32.Matrix4 {
			return []math32.Matrix4{*math32.Identity4()}
		},
		structureOf: func(s *structure.Structure) *structure.Structure { return s },
	}
	return v
}
