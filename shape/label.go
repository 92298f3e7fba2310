// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/visual"
)

// LabelInfo is one label. An empty Label is derived from the loci.
type LabelInfo struct {
	Loci  loci.Loci
	Label string
}

// Text returns the label text.
func (i LabelInfo) Text() string {
	if i.Label != "" {
		return i.Label
	}
	return loci.Label(i.Loci)
}

// LabelData are the labels drawn by a [LabelRepresentation].
type LabelData struct {
	Infos []LabelInfo
}

// Name returns the text of a single label, or the number of labels.
func (d LabelData) Name() string {
	if len(d.Infos) == 1 {
		return d.Infos[0].Text()
	}
	return fmt.Sprintf("%d Labels", len(d.Infos))
}

// LabelProps are the props of a [LabelRepresentation].
type LabelProps struct {
	geometry.TextProps `mapstructure:",squash"`
}

// DefaultLabelProps returns the defaults of [LabelProps].
func DefaultLabelProps() LabelProps {
	p := LabelProps{TextProps: geometry.DefaultTextProps()}
	p.TextSize = 0.8
	p.BorderWidth = 0.2
	p.Color = theme.ColorProps{Name: theme.ShapeGroupColor}
	return p
}

// buildLabels places every label on the bounding sphere of its loci.
// Labels whose loci has no bounding sphere are skipped, but keep
// their group. Every build returns a new shape, so loci of an older
// shape never match it; only the text storage of prev is reused.
func buildLabels(tc *task.Context, data LabelData, props LabelProps, prev *Shape[*geometry.Text]) (*Shape[*geometry.Text], error) {
	var prevText *geometry.Text
	if prev != nil {
		prevText = prev.Geometry
	}
	n := len(data.Infos)
	spheres := make([]math32.Sphere, n)
	bounded := make([]bool, n)
	b := geometry.NewTextBuilder(tc, 16*n, prevText)
	for i, info := range data.Infos {
		if err := tc.Tick("Building labels", i, n); err != nil {
			return nil, err
		}
		s, ok := loci.BoundingSphere(info.Loci)
		if !ok {
			continue
		}
		spheres[i], bounded[i] = s, true
		b.Add(info.Text(), s.Center, s.Radius, i)
	}
	textColor := props.TextColor
	return &Shape[*geometry.Text]{
		Name:       data.Name(),
		Data:       data,
		Geometry:   b.Text(),
		GroupCount: n,
		Color:      func(int) color.RGBA { return textColor },
		Size:       func(int) float32 { return props.TextSize },
		Label:      func(group int) string { return data.Infos[group].Text() },
		Sphere: func(group int) (math32.Sphere, bool) {
			return spheres[group], bounded[group]
		},
	}, nil
}

// LabelRepresentation draws one text label per [LabelInfo].
type LabelRepresentation = Representation[LabelData, *geometry.Text, LabelProps]

// NewLabelRepresentation returns a new label representation.
func NewLabelRepresentation() *LabelRepresentation {
	r := NewRepresentation[LabelData, *geometry.Text, LabelProps]("label", buildLabels,
		geometry.TextUtils(func(p LabelProps) *geometry.TextProps { return &p.TextProps }))
	r.SetUpdateState = func(s *visual.UpdateState, n, c LabelProps) {
		// the shape captures text size and color
		s.CreateGeometry = n.TextSize != c.TextSize || n.TextColor != c.TextColor
	}
	return r
}

// Label returns the label of a group of the current shape.
func Label[D any, G geometry.Geometry, P any](r *Representation[D, G, P], group int) string {
	s := r.Shape()
	if s == nil || s.Label == nil || group < 0 || group >= s.GroupCount {
		return ""
	}
	return s.Label(group)
}
