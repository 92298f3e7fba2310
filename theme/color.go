// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme provides the color and size themes: pure functions
// from a location to a value, and the evaluators that fill the
// per-slot buffers of a visual from a [location.Iterator].
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/valuecell"
)

// Granularity is how many values a theme produces.
type Granularity int32

const (
	// Uniform is one value for everything.
	Uniform Granularity = iota

	// Instance is one value per instance.
	Instance

	// Group is one value per group, shared by all instances.
	Group

	// GroupInstance is one value per slot.
	GroupInstance
)

// String returns the name of the granularity, as used for the
// dColorType and dSizeType defines.
func (g Granularity) String() string {
	switch g {
	case Instance:
		return "instance"
	case Group:
		return "group"
	case GroupInstance:
		return "groupInstance"
	}
	return "uniform"
}

// ColorThemeName names a color theme.
type ColorThemeName string

const (
	UniformColor            ColorThemeName = "uniform"
	ElementSymbolColor      ColorThemeName = "element-symbol"
	UnitIndexColor          ColorThemeName = "unit-index"
	ChainIDColor            ColorThemeName = "chain-id"
	ResidueNameColor        ColorThemeName = "residue-name"
	CarbohydrateSymbolColor ColorThemeName = "carbohydrate-symbol"
	ShapeGroupColor         ColorThemeName = "shape-group"
)

// ColorThemeNames lists all color theme names.
var ColorThemeNames = []ColorThemeName{UniformColor, ElementSymbolColor, UnitIndexColor, ChainIDColor, ResidueNameColor, CarbohydrateSymbolColor, ShapeGroupColor}

// DefaultColor is used for locations a theme does not cover.
var DefaultColor = RGB(0xCCCCCC)

// ColorProps selects and parameterizes a color theme.
type ColorProps struct {
	// Name of the theme; empty means uniform.
	Name ColorThemeName

	// Value is the color of the uniform theme.
	Value color.RGBA
}

// ColorTheme maps locations to colors. Color must be total and
// deterministic.
type ColorTheme struct {
	Granularity Granularity
	Color       func(loc location.Location, isSecondary bool) color.RGBA
}

// NewColorTheme returns the theme for the given props.
func NewColorTheme(props ColorProps) (ColorTheme, error) {
	switch props.Name {
	case UniformColor, "":
		v := props.Value
		return ColorTheme{Granularity: Uniform, Color: func(location.Location, bool) color.RGBA { return v }}, nil
	case ElementSymbolColor:
		return ColorTheme{Granularity: Group, Color: elementSymbolColor}, nil
	case UnitIndexColor:
		return ColorTheme{Granularity: Instance, Color: unitIndexColor}, nil
	case ChainIDColor:
		return ColorTheme{Granularity: Group, Color: chainIDColor}, nil
	case ResidueNameColor:
		return ColorTheme{Granularity: Group, Color: residueNameColor}, nil
	case CarbohydrateSymbolColor:
		return ColorTheme{Granularity: Group, Color: carbohydrateSymbolColor}, nil
	case ShapeGroupColor:
		return ColorTheme{Granularity: Group, Color: shapeGroupColor}, nil
	}
	return ColorTheme{}, fmt.Errorf("theme.NewColorTheme: unknown color theme %q", props.Name)
}

// elementOf resolves the element a location refers to.
func elementOf(loc location.Location) (structure.ElementLocation, bool) {
	switch l := loc.(type) {
	case structure.ElementLocation:
		return l, true
	case structure.LinkLocation:
		return l.A(), true
	case structure.CarbohydrateLocation:
		e := l.Element()
		return structure.ElementLocation{Unit: e.Unit, Element: e.AnomericCarbon}, true
	}
	return structure.ElementLocation{}, false
}

// elementLinkOf is [elementOf] but takes the B end of a link for
// secondary slots, so that each half of a link is colored by its own end.
func elementLinkOf(loc location.Location, isSecondary bool) (structure.ElementLocation, bool) {
	if l, ok := loc.(structure.LinkLocation); ok && isSecondary {
		return l.B(), true
	}
	return elementOf(loc)
}

var elementColors = map[string]uint32{
	"H":  0xFFFFFF,
	"C":  0x909090,
	"N":  0x3050F8,
	"O":  0xFF0D0D,
	"F":  0x90E050,
	"NA": 0xAB5CF2,
	"MG": 0x8AFF00,
	"P":  0xFF8000,
	"S":  0xFFFF30,
	"CL": 0x1FF01F,
	"K":  0x8F40D4,
	"CA": 0x3DFF00,
	"FE": 0xE06633,
	"ZN": 0x7D80B0,
	"SE": 0xFFA100,
	"BR": 0xA62929,
	"I":  0x940094,
}

func elementSymbolColor(loc location.Location, isSecondary bool) color.RGBA {
	el, ok := elementLinkOf(loc, isSecondary)
	if !ok {
		return DefaultColor
	}
	if el.Unit.Kind != structure.Atomic {
		return DefaultColor
	}
	if c, ok := elementColors[strings.ToUpper(el.Model().Symbol)]; ok {
		return RGB(c)
	}
	return DefaultColor
}

func unitIndexColor(loc location.Location, isSecondary bool) color.RGBA {
	el, ok := elementOf(loc)
	if !ok {
		return DefaultColor
	}
	return Distinct(el.Unit.ID)
}

func chainIDColor(loc location.Location, isSecondary bool) color.RGBA {
	el, ok := elementLinkOf(loc, isSecondary)
	if !ok {
		return DefaultColor
	}
	return DistinctFor(el.Residue().ChainID)
}

var residueColors = map[string]uint32{
	"ALA": 0x8CFF8C, "ARG": 0x00007C, "ASN": 0xFF7C70, "ASP": 0xA00042,
	"CYS": 0xFFFF70, "GLN": 0xFF4C4C, "GLU": 0x660000, "GLY": 0xFFFFFF,
	"HIS": 0x7070FF, "ILE": 0x004C00, "LEU": 0x455E45, "LYS": 0x4747B8,
	"MET": 0xB8A042, "PHE": 0x534C52, "PRO": 0x525252, "SER": 0xFF7042,
	"THR": 0xB84C00, "TRP": 0x4F4600, "TYR": 0x8C704C, "VAL": 0xFF8CFF,
	"A": 0xDC143C, "DA": 0xDC143C, "G": 0x32CD32, "DG": 0x32CD32,
	"C": 0xFFD700, "DC": 0xFFD700, "T": 0x4169E1, "DT": 0x4169E1, "U": 0x40E0D0,
}

func residueNameColor(loc location.Location, isSecondary bool) color.RGBA {
	el, ok := elementLinkOf(loc, isSecondary)
	if !ok {
		return DefaultColor
	}
	if c, ok := residueColors[el.Residue().Name]; ok {
		return RGB(c)
	}
	return DefaultColor
}

// snfgColors are the symbol nomenclature for glycans colors.
var snfgColors = map[string]uint32{
	"GLC": 0x0090BC, "BGC": 0x0090BC,
	"MAN": 0x00A651, "BMA": 0x00A651,
	"GAL": 0xFFD400, "GLA": 0xFFD400,
	"NAG": 0x0090BC, "NDG": 0x0090BC,
	"FUC": 0xED1C24, "FUL": 0xED1C24,
	"SIA": 0xA54399,
	"XYS": 0xF47920, "XYP": 0xF47920,
}

func carbohydrateSymbolColor(loc location.Location, isSecondary bool) color.RGBA {
	el, ok := elementLinkOf(loc, isSecondary)
	if !ok {
		return DefaultColor
	}
	r := el.Residue()
	if r.Kind != structure.Saccharide {
		return DefaultColor
	}
	if c, ok := snfgColors[r.Name]; ok {
		return RGB(c)
	}
	return RGB(0xFFFFFF)
}

// GroupColorer is implemented by locations that carry their own
// color, such as the groups of a shape.
type GroupColorer interface {
	GroupColor() color.RGBA
}

func shapeGroupColor(loc location.Location, _ bool) color.RGBA {
	if c, ok := loc.(GroupColorer); ok {
		return c.GroupColor()
	}
	return DefaultColor
}

// ColorData are the color values of a visual.
type ColorData struct {
	// Type is the granularity (dColorType).
	Type *valuecell.Cell[Granularity]

	// Uniform is the color of the uniform type (uColor).
	Uniform *valuecell.Cell[math32.Vector3]

	// Texture holds 3 bytes per value for the other types (tColor).
	Texture *valuecell.Cell[[]uint8]
}

func colorVector(c color.RGBA) math32.Vector3 {
	return math32.Vec3(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

// CreateColors evaluates the theme over the iterator, driving it once
// to completion, and fills the color values, reusing those of prev
// if given.
func CreateColors(tc *task.Context, it *location.Iterator, theme ColorTheme, prev *ColorData) (*ColorData, error) {
	cd := prev
	if cd == nil {
		cd = &ColorData{
			Type:    valuecell.New(theme.Granularity),
			Uniform: valuecell.New(math32.Vector3{}),
			Texture: valuecell.New([]uint8{}),
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
	buf := buffer.From(cd.Texture.Value())
	buf.Resize(n * 3)
	arr := buf.Data()

	it.Reset()
	for it.HasNext() {
		st := it.Move()
		if err := tc.Tick("Creating color", st.Index, it.Count); err != nil {
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
		if idx < 0 {
			continue
		}
		c := theme.Color(st.Location, st.IsSecondary)
		arr[idx*3], arr[idx*3+1], arr[idx*3+2] = c.R, c.G, c.B
	}
	if theme.Granularity == Uniform {
		valuecell.UpdateIfChanged(cd.Uniform, colorVector(theme.Color(location.Null, false)))
	}
	valuecell.UpdateIfChanged(cd.Type, theme.Granularity)
	valuecell.Update(cd.Texture, arr)
	return cd, nil
}
