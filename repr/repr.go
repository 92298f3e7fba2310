// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repr composes visuals into named representations of a
// structure, such as cartoon or ball-and-stick.
package repr

import (
	"fmt"

	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"github.com/jinzhu/copier"
)

// Representation is a visual style of a structure with props of type P.
// It follows the lifecycle of a [visual.Visual].
type Representation[P any] interface {
	// RenderObjects returns the render objects of all created visuals.
	RenderObjects() []*renderobject.RenderObject

	// Props returns the last committed props.
	Props() P

	// Create builds the representation for the structure.
	Create(tc *task.Context, s *structure.Structure, props P) error

	// Update applies a props change. It returns false without error
	// before the first Create.
	Update(tc *task.Context, props P) (bool, error)

	// GetLoci resolves a picking id, or returns [loci.Empty].
	GetLoci(id renderobject.PickingID) loci.Loci

	// Mark applies the action to every visual and reports whether
	// any marker changed.
	Mark(l loci.Loci, action marker.Actions) bool

	// Destroy releases all visuals. It is idempotent.
	Destroy()
}

// Part is a named sub-representation of a [Composite].
type Part[P any] struct {
	Name string
	Repr Representation[P]
}

// Composite is an ordered list of sub-representations sharing one
// props record. The order of the parts is the picking priority.
type Composite[P any] struct {
	label    string
	defaults P
	parts    []Part[P]

	props   P
	created bool
}

// NewComposite returns a new composite representation.
func NewComposite[P any](label string, defaults P, parts ...Part[P]) *Composite[P] {
	return &Composite[P]{label: label, defaults: defaults, parts: parts}
}

// Label returns the name of the representation, e.g. "cartoon".
func (c *Composite[P]) Label() string {
	return c.label
}

// PartNames returns the names of the parts in picking priority order.
func (c *Composite[P]) PartNames() []string {
	names := make([]string, len(c.parts))
	for i, p := range c.parts {
		names[i] = p.Name
	}
	return names
}

// Defaults returns a copy of the default props.
func (c *Composite[P]) Defaults() P {
	return deepCopy(c.defaults)
}

// Props returns a copy of the committed props.
func (c *Composite[P]) Props() P {
	return deepCopy(c.props)
}

// deepCopy copies props so that callers cannot alias slices
// of the committed record.
func deepCopy[P any](p P) P {
	var out P
	if err := copier.CopyWithOption(&out, &p, copier.Option{DeepCopy: true}); err != nil {
		return p
	}
	return out
}

// Create runs Create of every part in order. A failing part aborts
// the rest; parts created before it are kept.
func (c *Composite[P]) Create(tc *task.Context, s *structure.Structure, props P) error {
	for _, p := range c.parts {
		if err := tc.Check(); err != nil {
			return err
		}
		if err := p.Repr.Create(tc, s, props); err != nil {
			return fmt.Errorf("%s: %s: %w", c.label, p.Name, err)
		}
	}
	c.props = deepCopy(props)
	c.created = true
	logx.Logger().Debug("representation created", "repr", c.label, "objects", len(c.RenderObjects()))
	return nil
}

// Update runs Update of every part in order.
func (c *Composite[P]) Update(tc *task.Context, props P) (bool, error) {
	if !c.created {
		return false, nil
	}
	updated := false
	for _, p := range c.parts {
		if err := tc.Check(); err != nil {
			return updated, err
		}
		ok, err := p.Repr.Update(tc, props)
		if err != nil {
			return updated, fmt.Errorf("%s: %s: %w", c.label, p.Name, err)
		}
		updated = updated || ok
	}
	c.props = deepCopy(props)
	logx.Logger().Debug("representation updated", "repr", c.label)
	return updated, nil
}

// CreateTask returns a task running [Composite.Create].
func (c *Composite[P]) CreateTask(s *structure.Structure, props P) *task.Task {
	return task.New("create "+c.label, func(tc *task.Context) error {
		return c.Create(tc, s, props)
	})
}

// UpdateTask returns a task running [Composite.Update].
func (c *Composite[P]) UpdateTask(props P) *task.Task {
	return task.New("update "+c.label, func(tc *task.Context) error {
		_, err := c.Update(tc, props)
		return err
	})
}

// GetLoci returns the first non empty loci of the parts in order.
func (c *Composite[P]) GetLoci(id renderobject.PickingID) loci.Loci {
	for _, p := range c.parts {
		if l := p.Repr.GetLoci(id); !loci.IsEmpty(l) {
			return l
		}
	}
	return loci.Empty
}

// Mark broadcasts to every part.
func (c *Composite[P]) Mark(l loci.Loci, action marker.Actions) bool {
	changed := false
	for _, p := range c.parts {
		if p.Repr.Mark(l, action) {
			changed = true
		}
	}
	return changed
}

// RenderObjects returns the render objects of all parts, in order.
func (c *Composite[P]) RenderObjects() []*renderobject.RenderObject {
	var ros []*renderobject.RenderObject
	for _, p := range c.parts {
		ros = append(ros, p.Repr.RenderObjects()...)
	}
	return ros
}

// Destroy destroys every part.
func (c *Composite[P]) Destroy() {
	for _, p := range c.parts {
		p.Repr.Destroy()
	}
	c.created = false
}
