// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"context"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/location"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementIterator(s *structure.Structure) *location.Iterator {
	u := s.Units[0]
	return location.NewIterator(u.ElementCount(), len(s.Units), func(g, i int) location.Location {
		return structure.ElementLocation{Unit: s.Units[i], Element: g}
	}, location.SecondaryInstances)
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, c)
	assert.Equal(t, c, RGB(0xFF8000))
	_, err = Hex("nope")
	assert.Error(t, err)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, Distinct(3), Distinct(3))
	assert.NotEqual(t, Distinct(0), Distinct(1))
	assert.Equal(t, DistinctFor("A"), DistinctFor("A"))
	assert.Equal(t, uint8(255), Distinct(7).A)
}

func TestNewColorTheme(t *testing.T) {
	for _, nm := range ColorThemeNames {
		th, err := NewColorTheme(ColorProps{Name: nm})
		require.NoError(t, err, nm)
		// themes are total
		assert.Equal(t, th.Color(location.Null, false), th.Color(location.Null, false))
	}
	_, err := NewColorTheme(ColorProps{Name: "rainbow"})
	assert.Error(t, err)
}

func TestElementSymbolColor(t *testing.T) {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	th, err := NewColorTheme(ColorProps{Name: ElementSymbolColor})
	require.NoError(t, err)
	assert.Equal(t, Group, th.Granularity)
	n := structure.ElementLocation{Unit: s.Units[0], Element: 0}
	o := structure.ElementLocation{Unit: s.Units[0], Element: 3}
	assert.Equal(t, RGB(0x3050F8), th.Color(n, false))
	assert.Equal(t, RGB(0xFF0D0D), th.Color(o, false))
	assert.Equal(t, DefaultColor, th.Color(location.Null, false))

	link := structure.LinkLocation{AUnit: s.Units[0], AIndex: 0, BUnit: s.Units[0], BIndex: 3}
	assert.Equal(t, RGB(0x3050F8), th.Color(link, false))
	assert.Equal(t, RGB(0xFF0D0D), th.Color(link, true))
}

func TestCreateColorsGroup(t *testing.T) {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	it := elementIterator(s)
	th, err := NewColorTheme(ColorProps{Name: ElementSymbolColor})
	require.NoError(t, err)
	cd, err := CreateColors(task.Background(), it, th, nil)
	require.NoError(t, err)
	arr := cd.Texture.Value()
	require.Len(t, arr, it.GroupCount*3)
	assert.Equal(t, []uint8{0x30, 0x50, 0xF8}, arr[0:3])
	assert.Equal(t, Group, cd.Type.Value())
	assert.False(t, it.HasNext())

	// rebuild reuses the cells and storage
	v := cd.Texture.Version()
	cd2, err := CreateColors(task.Background(), it, th, cd)
	require.NoError(t, err)
	assert.Same(t, cd, cd2)
	assert.Same(t, &arr[0], &cd2.Texture.Value()[0])
	assert.Equal(t, v+1, cd2.Texture.Version())
}

func TestCreateColorsInstanceAndSlot(t *testing.T) {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	it := elementIterator(s)
	th, err := NewColorTheme(ColorProps{Name: UnitIndexColor})
	require.NoError(t, err)
	cd, err := CreateColors(task.Background(), it, th, nil)
	require.NoError(t, err)
	arr := cd.Texture.Value()
	require.Len(t, arr, 2*3)
	c1 := Distinct(1)
	assert.Equal(t, []uint8{c1.R, c1.G, c1.B}, arr[3:6])

	slot := ColorTheme{Granularity: GroupInstance, Color: th.Color}
	cd, err = CreateColors(task.Background(), it, slot, nil)
	require.NoError(t, err)
	assert.Len(t, cd.Texture.Value(), it.Count*3)
}

func TestCreateColorsUniform(t *testing.T) {
	it := location.NewIterator(4, 1, nil, nil)
	th, err := NewColorTheme(ColorProps{Value: RGB(0xFF0000)})
	require.NoError(t, err)
	cd, err := CreateColors(task.Background(), it, th, nil)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(1, 0, 0), cd.Uniform.Value())
	assert.Empty(t, cd.Texture.Value())

	v := cd.Uniform.Version()
	_, err = CreateColors(task.Background(), it, th, cd)
	require.NoError(t, err)
	assert.Equal(t, v, cd.Uniform.Version())
}

func TestCreateEmpty(t *testing.T) {
	it := location.NewIterator(0, 1, nil, nil)
	th, err := NewColorTheme(ColorProps{Name: ElementSymbolColor})
	require.NoError(t, err)
	cd, err := CreateColors(task.Background(), it, th, nil)
	require.NoError(t, err)
	assert.Empty(t, cd.Texture.Value())

	st, err := NewSizeTheme(SizeProps{Name: PhysicalSize})
	require.NoError(t, err)
	sd, err := CreateSizes(task.Background(), it, st, nil)
	require.NoError(t, err)
	assert.Empty(t, sd.Texture.Value())
}

func TestCreateSizes(t *testing.T) {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	it := elementIterator(s)
	st, err := NewSizeTheme(SizeProps{Name: PhysicalSize, Factor: 2})
	require.NoError(t, err)
	sd, err := CreateSizes(task.Background(), it, st, nil)
	require.NoError(t, err)
	arr := sd.Texture.Value()
	require.Len(t, arr, it.GroupCount)
	assert.InDelta(t, 2*1.55, arr[0], 1e-6)
	assert.InDelta(t, 2*1.7, arr[1], 1e-6)

	st, err = NewSizeTheme(SizeProps{Value: 0.5})
	require.NoError(t, err)
	sd, err = CreateSizes(task.Background(), it, st, sd)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), sd.Uniform.Value())
	assert.Equal(t, Uniform, sd.Type.Value())

	_, err = NewSizeTheme(SizeProps{Name: "huge"})
	assert.Error(t, err)
}

func TestSpheresPhysicalSize(t *testing.T) {
	b := structure.NewBuilder("cg")
	b.AddResidue("BB", 1, "A", structure.Other)
	b.AddSphere("BB", math32.Vec3(0, 0, 0), 3.5)
	s := structure.New(structure.NewUnit(0, structure.Spheres, b.Model()))
	st, err := NewSizeTheme(SizeProps{Name: PhysicalSize})
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), st.Size(structure.ElementLocation{Unit: s.Units[0], Element: 0}))
}

func TestCreateColorsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tc := task.NewContext(ctx, task.WithUpdateRate(0))
	it := location.NewIterator(10, 1, nil, nil)
	th, err := NewColorTheme(ColorProps{Name: ElementSymbolColor})
	require.NoError(t, err)
	_, err = CreateColors(tc, it, th, nil)
	assert.ErrorIs(t, err, task.ErrCancelled)
}
