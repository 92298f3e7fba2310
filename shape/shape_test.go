// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"strings"
	"testing"

	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/visual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyphs(s string) int {
	return len(strings.ReplaceAll(s, " ", ""))
}

func labelData(t *testing.T) (*structure.Structure, LabelData) {
	s, err := structure.Demo("helix")
	require.NoError(t, err)
	r := s.Units[1].Model.Residues[1]
	var ix []int
	for e := r.Start; e < r.End; e++ {
		ix = append(ix, e)
	}
	return s, LabelData{Infos: []LabelInfo{
		{Loci: loci.NewElements(s, s.Units[0], 0), Label: "first"},
		{Loci: loci.Empty, Label: "none"},
		{Loci: loci.NewElements(s, s.Units[1], ix...)},
	}}
}

func TestLabels(t *testing.T) {
	_, data := labelData(t)
	r := NewLabelRepresentation()
	assert.Equal(t, "", Label(r, 0))
	require.NoError(t, r.Create(nil, data, DefaultLabelProps()))

	sh := r.Shape()
	assert.Equal(t, "3 Labels", sh.Name)
	assert.Equal(t, 3, sh.GroupCount)
	assert.Equal(t, "first", Label(r, 0))
	assert.Equal(t, "none", Label(r, 1))
	third := loci.Label(data.Infos[2].Loci)
	assert.Equal(t, third, Label(r, 2))
	assert.Equal(t, "", Label(r, 3))
	assert.Equal(t, glyphs("first")+glyphs(third), sh.Geometry.CharCount)

	_, ok := NewLoci(sh, 1).BoundingSphere()
	assert.False(t, ok)
	_, ok = NewLoci(sh, 0).BoundingSphere()
	assert.True(t, ok)

	v := r.Values()
	assert.Equal(t, theme.Group, v.Color.Type.Value())
	assert.Equal(t, []uint8{0, 0, 0}, v.Color.Texture.Value()[:3])

	one := LabelData{Infos: data.Infos[:1]}
	assert.Equal(t, "first", one.Name())
}

func TestShapeLoci(t *testing.T) {
	_, data := labelData(t)
	r := NewLabelRepresentation()
	require.NoError(t, r.Create(nil, data, DefaultLabelProps()))
	ro := r.RenderObjects()[0]

	l := r.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: 1})
	sl, ok := l.(Loci[*geometry.Text])
	require.True(t, ok)
	assert.Equal(t, []int{1}, sl.Groups)
	assert.Equal(t, "none", loci.Label(l))
	assert.True(t, loci.AreEqual(l, NewLoci(r.Shape(), 1)))
	assert.False(t, loci.AreEqual(l, NewLoci(r.Shape(), 2)))

	assert.Equal(t, loci.Empty, r.GetLoci(renderobject.PickingID{ObjectID: ro.ID, GroupID: 3}))
	assert.Equal(t, loci.Empty, r.GetLoci(renderobject.PickingID{ObjectID: ro.ID, InstanceID: 1}))

	assert.True(t, r.Mark(l, marker.Select))
	assert.Equal(t, marker.Selected, r.Values().Marker.At(1))
	assert.False(t, r.Mark(l, marker.Select))

	other := NewLabelRepresentation()
	require.NoError(t, other.Create(nil, data, DefaultLabelProps()))
	assert.False(t, other.Mark(l, marker.Select))
	assert.True(t, other.Mark(loci.Every, marker.Highlight))
}

func TestLabelUpdate(t *testing.T) {
	_, data := labelData(t)
	r := NewLabelRepresentation()
	ok, err := r.Update(nil, DefaultLabelProps())
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Create(nil, data, DefaultLabelProps()))
	id := r.RenderObjects()[0].ID
	sh := r.Shape()
	centers := sh.Geometry.Centers.Version()

	p := DefaultLabelProps()
	p.Alpha = 0.5
	p.BorderWidth = 0.4
	ok, err = r.Update(nil, p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, sh, r.Shape())
	assert.Equal(t, centers, sh.Geometry.Centers.Version())
	assert.Equal(t, float32(0.5), r.Values().Alpha.Value())
	assert.Equal(t, float32(0.4), r.Props().BorderWidth)

	old := NewLoci(sh, 0)
	p.TextSize = 2
	ok, err = r.Update(nil, p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, r.RenderObjects()[0].ID)
	assert.NotSame(t, sh, r.Shape())
	assert.Equal(t, float32(2), r.Shape().Size(0))
	assert.False(t, r.Mark(old, marker.Select))
	assert.True(t, r.Mark(NewLoci(r.Shape(), 0), marker.Select))

	r.Destroy()
	r.Destroy()
	assert.Equal(t, visual.Destroyed, r.State())
	assert.Empty(t, r.RenderObjects())
	assert.ErrorIs(t, r.Create(nil, data, p), visual.ErrDestroyed)
}

func TestLabelRebuildNewInfos(t *testing.T) {
	s, data := labelData(t)
	r := NewLabelRepresentation()
	require.NoError(t, r.Create(nil, data, DefaultLabelProps()))
	first := r.Shape()
	old := NewLoci(first, 0)
	require.True(t, r.Mark(loci.Every, marker.Select))

	next := LabelData{Infos: []LabelInfo{
		{Loci: loci.NewElements(s, s.Units[1], 0), Label: "a"},
		{Loci: loci.NewElements(s, s.Units[1], 1), Label: "b"},
		{Loci: loci.NewElements(s, s.Units[1], 2), Label: "c"},
	}}
	require.NoError(t, r.Create(nil, next, DefaultLabelProps()))
	assert.NotSame(t, first, r.Shape())
	assert.Equal(t, "first", first.Label(0))
	assert.Equal(t, "a", Label(r, 0))
	assert.Equal(t, []uint8{0, 0, 0}, r.Values().Marker.Cell.Value())
	assert.False(t, r.Mark(old, marker.Select))
	assert.Equal(t, marker.None, r.Values().Marker.At(0))
}
