// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repr

import (
	"fmt"

	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/visual"
)

// UnitsRepresentation draws one visual per unit group of a structure.
// Visuals are matched to groups by [structure.UnitGroup.Key], so that
// rebuilding a changed structure reuses the visuals of unchanged groups.
// The props P of the representation are projected to the props V of
// its visuals.
type UnitsRepresentation[V, P any] struct {
	newVisual func() visual.Visual[structure.UnitGroup, V]
	project   func(P) V

	keys    []string
	visuals map[string]visual.Visual[structure.UnitGroup, V]
	props   P
	created bool
}

// NewUnitsRepresentation returns a new representation creating its
// visuals with newVisual.
func NewUnitsRepresentation[Vis visual.Visual[structure.UnitGroup, V], V, P any](newVisual func() Vis, project func(P) V) *UnitsRepresentation[V, P] {
	return &UnitsRepresentation[V, P]{
		newVisual: func() visual.Visual[structure.UnitGroup, V] { return newVisual() },
		project:   project,
		visuals:   map[string]visual.Visual[structure.UnitGroup, V]{},
	}
}

// Create creates or rebuilds the visual of every unit group and
// destroys the visuals of groups that are gone. On error the visuals
// of new groups are discarded and the previous set is kept.
func (r *UnitsRepresentation[V, P]) Create(tc *task.Context, s *structure.Structure, props P) error {
	if s == nil {
		return fmt.Errorf("%w: no structure", structure.ErrMalformed)
	}
	groups := s.UnitGroups()
	vp := r.project(props)
	keys := make([]string, 0, len(groups))
	next := make(map[string]visual.Visual[structure.UnitGroup, V], len(groups))
	var added []visual.Visual[structure.UnitGroup, V]
	for i, g := range groups {
		if err := tc.Update("Creating unit groups", i, len(groups)); err != nil {
			destroyAll(added)
			return err
		}
		k := g.Key()
		v, ok := r.visuals[k]
		if !ok {
			v = r.newVisual()
			added = append(added, v)
		}
		if err := v.Create(tc, g, vp); err != nil {
			destroyAll(added)
			return fmt.Errorf("unit group %s: %w", k, err)
		}
		keys = append(keys, k)
		next[k] = v
	}
	for k, v := range r.visuals {
		if _, ok := next[k]; !ok {
			logx.Logger().Debug("unit group removed", "group", k, "visual", v.Name())
			v.Destroy()
		}
	}
	r.keys = keys
	r.visuals = next
	r.props = props
	r.created = true
	return nil
}

func destroyAll[V any](vs []visual.Visual[structure.UnitGroup, V]) {
	for _, v := range vs {
		v.Destroy()
	}
}

// Update updates the visuals of all unit groups.
func (r *UnitsRepresentation[V, P]) Update(tc *task.Context, props P) (bool, error) {
	if !r.created {
		return false, nil
	}
	vp := r.project(props)
	updated := false
	for _, k := range r.keys {
		ok, err := r.visuals[k].Update(tc, vp)
		if err != nil {
			return updated, fmt.Errorf("unit group %s: %w", k, err)
		}
		updated = updated || ok
	}
	r.props = props
	return updated, nil
}

func (r *UnitsRepresentation[V, P]) Props() P {
	return r.props
}

func (r *UnitsRepresentation[V, P]) GetLoci(id renderobject.PickingID) loci.Loci {
	for _, k := range r.keys {
		if l := r.visuals[k].GetLoci(id); !loci.IsEmpty(l) {
			return l
		}
	}
	return loci.Empty
}

func (r *UnitsRepresentation[V, P]) Mark(l loci.Loci, action marker.Actions) bool {
	changed := false
	for _, k := range r.keys {
		if r.visuals[k].Mark(l, action) {
			changed = true
		}
	}
	return changed
}

func (r *UnitsRepresentation[V, P]) RenderObjects() []*renderobject.RenderObject {
	var ros []*renderobject.RenderObject
	for _, k := range r.keys {
		if ro := r.visuals[k].RenderObject(); ro != nil {
			ros = append(ros, ro)
		}
	}
	return ros
}

func (r *UnitsRepresentation[V, P]) Destroy() {
	for _, v := range r.visuals {
		v.Destroy()
	}
	r.visuals = map[string]visual.Visual[structure.UnitGroup, V]{}
	r.keys = nil
	r.created = false
}

// ComplexRepresentation draws a whole structure with one visual.
type ComplexRepresentation[V, P any] struct {
	newVisual func() visual.Visual[*structure.Structure, V]
	project   func(P) V

	visual visual.Visual[*structure.Structure, V]
	props  P
}

// NewComplexRepresentation returns a new representation drawing with
// the given visual.
func NewComplexRepresentation[Vis visual.Visual[*structure.Structure, V], V, P any](newVisual func() Vis, project func(P) V) *ComplexRepresentation[V, P] {
	r := &ComplexRepresentation[V, P]{
		newVisual: func() visual.Visual[*structure.Structure, V] { return newVisual() },
		project:   project,
	}
	r.visual = r.newVisual()
	return r
}

func (r *ComplexRepresentation[V, P]) Create(tc *task.Context, s *structure.Structure, props P) error {
	if r.visual.State() == visual.Destroyed {
		r.visual = r.newVisual()
	}
	if err := r.visual.Create(tc, s, r.project(props)); err != nil {
		return err
	}
	r.props = props
	return nil
}

func (r *ComplexRepresentation[V, P]) Update(tc *task.Context, props P) (bool, error) {
	ok, err := r.visual.Update(tc, r.project(props))
	if err == nil && ok {
		r.props = props
	}
	return ok, err
}

func (r *ComplexRepresentation[V, P]) Props() P {
	return r.props
}

func (r *ComplexRepresentation[V, P]) GetLoci(id renderobject.PickingID) loci.Loci {
	return r.visual.GetLoci(id)
}

func (r *ComplexRepresentation[V, P]) Mark(l loci.Loci, action marker.Actions) bool {
	return r.visual.Mark(l, action)
}

func (r *ComplexRepresentation[V, P]) RenderObjects() []*renderobject.RenderObject {
	if ro := r.visual.RenderObject(); ro != nil {
		return []*renderobject.RenderObject{ro}
	}
	return nil
}

func (r *ComplexRepresentation[V, P]) Destroy() {
	r.visual.Destroy()
}
