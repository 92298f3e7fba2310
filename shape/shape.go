// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape draws geometry derived directly from arbitrary data,
// such as text labels, as a single render object.
package shape

import (
	"fmt"
	"image/color"
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/theme"
)

// Shape is a geometry with per group colors, sizes and labels.
type Shape[G geometry.Geometry] struct {
	Name       string
	Data       any
	Geometry   G
	GroupCount int

	// Color returns the color of a group, used by the
	// [theme.ShapeGroupColor] theme.
	Color func(group int) color.RGBA

	// Size returns the size of a group.
	Size func(group int) float32

	// Label returns the label of a group.
	Label func(group int) string

	// Sphere returns the bounding sphere of a group, if it has one.
	Sphere func(group int) (math32.Sphere, bool)
}

// Location is one group of a shape.
type Location[G geometry.Geometry] struct {
	Shape *Shape[G]
	Group int
}

func (Location[G]) LocationKind() string { return "shape" }

// GroupColor implements [theme.GroupColorer].
func (l Location[G]) GroupColor() color.RGBA {
	if l.Shape.Color == nil {
		return theme.DefaultColor
	}
	return l.Shape.Color(l.Group)
}

// Loci selects groups of a shape.
type Loci[G geometry.Geometry] struct {
	Shape  *Shape[G]
	Groups []int
}

// NewLoci returns the loci of the given groups. The groups are
// sorted and deduplicated.
func NewLoci[G geometry.Geometry](s *Shape[G], groups ...int) Loci[G] {
	gs := slices.Clone(groups)
	slices.Sort(gs)
	return Loci[G]{Shape: s, Groups: slices.Compact(gs)}
}

func (Loci[G]) LociKind() string { return "shape" }

func (l Loci[G]) Size() int { return len(l.Groups) }

// Label implements [loci.Labeled].
func (l Loci[G]) Label() string {
	if len(l.Groups) == 1 && l.Shape.Label != nil {
		return l.Shape.Label(l.Groups[0])
	}
	return fmt.Sprintf("%d groups of %s", len(l.Groups), l.Shape.Name)
}

// EqualLoci implements [loci.Equaler].
func (l Loci[G]) EqualLoci(other loci.Loci) bool {
	o, ok := other.(Loci[G])
	return ok && o.Shape == l.Shape && slices.Equal(o.Groups, l.Groups)
}

// BoundingSphere implements [loci.Bounded].
func (l Loci[G]) BoundingSphere() (math32.Sphere, bool) {
	if l.Shape.Sphere == nil {
		return math32.Sphere{}, false
	}
	var pts []math32.Vector3
	var r float32
	for _, g := range l.Groups {
		s, ok := l.Shape.Sphere(g)
		if !ok {
			continue
		}
		pts = append(pts, s.Center)
		r = max(r, s.Radius)
	}
	s, ok := loci.SphereFromPoints(pts)
	s.Radius += r
	return s, ok
}
