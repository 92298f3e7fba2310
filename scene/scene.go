// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene holds the named representations of one structure,
// builds them concurrently and routes picking and marking to them.
package scene

import (
	"context"
	"fmt"
	"sync"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/repr"
	"cogentcore.org/mol/shape"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/visual"
	"golang.org/x/sync/errgroup"
)

// Entry is a named representation with the props it is built with.
type Entry struct {
	Name  string
	Repr  repr.Handle
	Props map[string]any
}

// Scene is an ordered set of named representations of one structure,
// plus an optional label layer. The order is the picking priority.
type Scene struct {
	// Runner runs the build tasks.
	Runner *task.Runner

	mu        sync.Mutex
	entries   *ordmap.Map[string, *Entry]
	labels    *shape.LabelRepresentation
	structure *structure.Structure
}

// New returns an empty scene running its builds with runner, which
// may be nil.
func New(runner *task.Runner) *Scene {
	if runner == nil {
		runner = &task.Runner{}
	}
	return &Scene{Runner: runner, entries: ordmap.New[string, *Entry]()}
}

// Structure returns the structure of the last successful [Scene.Build].
func (s *Scene) Structure() *structure.Structure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.structure
}

// Add adds a representation under a unique name. It is built by the
// next [Scene.Build].
func (s *Scene) Add(name string, h repr.Handle, props map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, has := s.entries.ValueByKeyTry(name); has {
		return fmt.Errorf("scene.Add: representation %q already exists", name)
	}
	s.entries.Add(name, &Entry{Name: name, Repr: h, Props: props})
	return nil
}

// Remove destroys and removes the named representation.
func (s *Scene) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, has := s.entries.ValueByKeyTry(name)
	if !has {
		return false
	}
	e.Repr.Destroy()
	return s.entries.DeleteKey(name)
}

// Get returns the named entry.
func (s *Scene) Get(name string) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.ValueByKeyTry(name)
}

// Names returns the names in picking priority order.
func (s *Scene) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Keys()
}

// Build creates every representation for the structure. Builds run
// concurrently, each as its own task; the first failure cancels the
// others.
func (s *Scene) Build(ctx context.Context, st *structure.Structure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range s.entries.Values() {
		g.Go(func() error {
			return s.Runner.Run(gctx, task.New("build "+e.Name, func(tc *task.Context) error {
				return e.Repr.Create(tc, st, e.Props)
			}))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.structure = st
	logx.Logger().Debug("scene built", "representations", s.entries.Len(), "objects", len(s.renderObjects()))
	return nil
}

// Update decodes values onto the props of the named representation
// and updates it.
func (s *Scene) Update(ctx context.Context, name string, values map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, has := s.entries.ValueByKeyTry(name)
	if !has {
		return false, fmt.Errorf("scene.Update: no representation %q", name)
	}
	updated := false
	err := s.Runner.Run(ctx, task.New("update "+name, func(tc *task.Context) error {
		var err error
		updated, err = e.Repr.Update(tc, values)
		return err
	}))
	if err != nil {
		return false, err
	}
	e.Props = mergeProps(e.Props, values)
	return updated, nil
}

// mergeProps returns a with the values of b, recursing into tables.
func mergeProps(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		am, aok := out[k].(map[string]any)
		bm, bok := v.(map[string]any)
		if aok && bok {
			out[k] = mergeProps(am, bm)
			continue
		}
		out[k] = v
	}
	return out
}

// SetLabels shows one text label per info, replacing the previous
// labels. No infos removes the label layer.
func (s *Scene) SetLabels(ctx context.Context, infos []shape.LabelInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(infos) == 0 {
		if s.labels != nil {
			s.labels.Destroy()
			s.labels = nil
		}
		return nil
	}
	if s.labels == nil {
		s.labels = shape.NewLabelRepresentation()
	}
	lr := s.labels
	props := shape.DefaultLabelProps()
	if lr.State() == visual.Created {
		props = lr.Props()
	}
	return s.Runner.Run(ctx, task.New("labels", func(tc *task.Context) error {
		return lr.Create(tc, shape.LabelData{Infos: infos}, props)
	}))
}

// Pick returns the loci of the first representation that resolves
// the picking id, or [loci.Empty].
func (s *Scene) Pick(id renderobject.PickingID) loci.Loci {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries.Values() {
		if l := e.Repr.GetLoci(id); !loci.IsEmpty(l) {
			return l
		}
	}
	if s.labels != nil {
		return s.labels.GetLoci(id)
	}
	return loci.Empty
}

func (s *Scene) mark(l loci.Loci, action marker.Actions) bool {
	changed := false
	for _, e := range s.entries.Values() {
		if e.Repr.Mark(l, action) {
			changed = true
		}
	}
	if s.labels != nil && s.labels.Mark(l, action) {
		changed = true
	}
	return changed
}

// Highlight highlights the loci after clearing any previous highlight.
func (s *Scene) Highlight(l loci.Loci) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := s.mark(loci.Every, marker.RemoveHighlight)
	return s.mark(l, marker.Highlight) || cleared
}

// Select adds the loci to the selection.
func (s *Scene) Select(l loci.Loci) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(l, marker.Select)
}

// Deselect removes the loci from the selection.
func (s *Scene) Deselect(l loci.Loci) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(l, marker.Deselect)
}

// ToggleSelect flips the selection of the loci.
func (s *Scene) ToggleSelect(l loci.Loci) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(l, marker.ToggleSelect)
}

// ClearSelection deselects everything.
func (s *Scene) ClearSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(loci.Every, marker.Deselect)
}

// RenderObjects returns the render objects of all representations in
// order, followed by those of the label layer.
func (s *Scene) RenderObjects() []*renderobject.RenderObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderObjects()
}

func (s *Scene) renderObjects() []*renderobject.RenderObject {
	var ros []*renderobject.RenderObject
	for _, e := range s.entries.Values() {
		ros = append(ros, e.Repr.RenderObjects()...)
	}
	if s.labels != nil {
		ros = append(ros, s.labels.RenderObjects()...)
	}
	return ros
}

// BoundingSphere returns a sphere enclosing every render object that
// draws something.
func (s *Scene) BoundingSphere() (math32.Sphere, bool) {
	var out math32.Sphere
	found := false
	for _, ro := range s.RenderObjects() {
		dc := renderobject.Get[int](ro.Values, renderobject.DrawCount)
		bs := renderobject.Get[math32.Sphere](ro.Values, renderobject.BoundingSphere)
		if dc == nil || bs == nil || dc.Value() == 0 {
			continue
		}
		if !found {
			out, found = bs.Value(), true
			continue
		}
		out = unionSphere(out, bs.Value())
	}
	return out, found
}

// unionSphere returns the smallest sphere enclosing both spheres.
func unionSphere(a, b math32.Sphere) math32.Sphere {
	d := b.Center.Sub(a.Center)
	dist := d.Length()
	if dist+b.Radius <= a.Radius {
		return a
	}
	if dist+a.Radius <= b.Radius {
		return b
	}
	r := (dist + a.Radius + b.Radius) / 2
	return math32.Sphere{Center: a.Center.Add(d.MulScalar((r - a.Radius) / dist)), Radius: r}
}

// Destroy destroys every representation and the label layer.
func (s *Scene) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries.Values() {
		e.Repr.Destroy()
	}
	s.entries.Reset()
	if s.labels != nil {
		s.labels.Destroy()
		s.labels = nil
	}
	s.structure = nil
}
