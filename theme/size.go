// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"

	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/valuecell"
)

// SizeThemeName names a size theme.
type SizeThemeName string

const (
	UniformSize  SizeThemeName = "uniform"
	PhysicalSize SizeThemeName = "physical"
)

// SizeThemeNames lists all size theme names.
var SizeThemeNames = []SizeThemeName{UniformSize, PhysicalSize}

// DefaultSize is used for locations a theme does not cover.
const DefaultSize float32 = 1

// SizeProps selects and parameterizes a size theme.
type SizeProps struct {
	// Name of the theme; empty means uniform.
	Name SizeThemeName

	// Value is the size of the uniform theme.
	Value float32

	// Factor scales every size; zero means 1.
	Factor float32
}

// SizeTheme maps locations to sizes. Size must be total and
// deterministic.
type SizeTheme struct {
	Granularity Granularity
	Size        func(loc location.Location) float32
}

// NewSizeTheme returns the theme for the given props.
func NewSizeTheme(props SizeProps) (SizeTheme, error) {
	f := props.Factor
	if f == 0 {
		f = 1
	}
	switch props.Name {
	case UniformSize, "":
		v := props.Value * f
		return SizeTheme{Granularity: Uniform, Size: func(location.Location) float32 { return v }}, nil
	case PhysicalSize:
		return SizeTheme{Granularity: Group, Size: func(loc location.Location) float32 {
			return physicalSize(loc) * f
		}}, nil
	}
	return SizeTheme{}, fmt.Errorf("theme.NewSizeTheme: unknown size theme %q", props.Name)
}

func physicalSize(loc location.Location) float32 {
	el, ok := elementOf(loc)
	if !ok {
		return DefaultSize
	}
	return structure.PhysicalRadius(el)
}

// SizeData are the size values of a visual.
type SizeData struct {
	// Type is the granularity (dSizeType).
	Type *valuecell.Cell[Granularity]

	// Uniform is the size of the uniform type (uSize).
	Uniform *valuecell.Cell[float32]

	// Texture holds one value per instance, group or slot (tSize).
	Texture *valuecell.Cell[[]float32]
}

// CreateSizes evaluates the theme over the iterator, driving it once
// to completion, and fills the size values, reusing those of prev
// if given.
func CreateSizes(tc *task.Context, it *location.Iterator, theme SizeTheme, prev *SizeData) (*SizeData, error) {
	sd := prev
	if sd == nil {
		sd = &SizeData{
			Type:    valuecell.New(theme.Granularity),
			Uniform: valuecell.New(float32(0)),
			Texture: valuecell.New([]float32{}),
		}
	}
	n := 0
	switch theme.Granularity {
	case Instance:
		n = it.InstanceCount
	case Group:
		n = it.GroupCount
	case GroupInstance:
		n = it.Count
	}
	buf := buffer.From(sd.Texture.Value())
	buf.Resize(n)
	arr := buf.Data()

	it.Reset()
	for it.HasNext() {
		st := it.Move()
		if err := tc.Tick("Creating size", st.Index, it.Count); err != nil {
			return nil, err
		}
		idx := -1
		switch theme.Granularity {
		case Instance:
			if st.GroupIndex == 0 {
				idx = st.InstanceIndex
			}
		case Group:
			if st.InstanceIndex == 0 {
				idx = st.GroupIndex
			}
		case GroupInstance:
			idx = st.Index
		}
		if idx >= 0 {
			arr[idx] = theme.Size(st.Location)
		}
	}
	if theme.Granularity == Uniform {
		valuecell.UpdateIfChanged(sd.Uniform, theme.Size(location.Null))
	}
	valuecell.UpdateIfChanged(sd.Type, theme.Granularity)
	valuecell.Update(sd.Texture, arr)
	return sd, nil
}
