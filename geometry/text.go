// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"image"
	"image/color"
	"sync"

	"cogentcore.org/core/math32"
	"cogentcore.org/mol/buffer"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/valuecell"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text is camera facing text, drawn as one quad of 4 vertices and
// 6 indices per glyph. Glyph shapes come from a bitmap font atlas.
type Text struct {
	CharCount int

	// Centers holds the anchor of the glyph's text, 3 floats per
	// vertex (aPosition).
	Centers *valuecell.Cell[[]float32]

	// Mappings holds the glyph corner relative to the anchor in units
	// of the line height, 2 floats per vertex (aMapping).
	Mappings *valuecell.Cell[[]float32]

	// Depths holds the depth offset of the text, one per vertex (aDepth).
	Depths *valuecell.Cell[[]float32]

	// TexCoords holds the atlas coordinates, 2 floats per vertex (aTexCoord).
	TexCoords *valuecell.Cell[[]float32]

	// Groups holds one group index per vertex (aGroup).
	Groups *valuecell.Cell[[]float32]

	// Indices holds 6 vertex indices per glyph (elements).
	Indices *valuecell.Cell[[]uint32]

	// Font is the alpha atlas of the font (tFont).
	Font *valuecell.Cell[[]uint8]

	sphere math32.Sphere
}

func (t *Text) Kind() renderobject.Kind       { return renderobject.Text }
func (t *Text) DrawCount() int                { return t.CharCount * 6 }
func (t *Text) BoundingSphere() math32.Sphere { return t.sphere }

func (t *Text) Slots() renderobject.Values {
	return renderobject.Values{
		renderobject.APosition: t.Centers,
		"aMapping":             t.Mappings,
		"aDepth":               t.Depths,
		"aTexCoord":            t.TexCoords,
		renderobject.AGroup:    t.Groups,
		renderobject.Elements:  t.Indices,
		"tFont":                t.Font,
	}
}

func (t *Text) TransformImmediate(m *math32.Matrix4) {
	t.TransformRangeImmediate(m, 0, t.CharCount)
}

// TransformRangeImmediate transforms the anchors of count glyphs
// starting at offset.
func (t *Text) TransformRangeImmediate(m *math32.Matrix4, offset, count int) {
	transformRange(t.Centers.Value(), m, offset*4, count*4)
	valuecell.Update(t.Centers, t.Centers.Value())
	t.sphere = boundingSphere(t.Centers.Value(), t.CharCount*4)
}

// EmptyText returns text with zero count, reusing prev if given.
func EmptyText(prev *Text) *Text {
	return NewTextBuilder(nil, 0, prev).Text()
}

// TextProps are the props of [Text].
type TextProps struct {
	BaseProps `mapstructure:",squash"`

	// TextSize is the height of a line.
	TextSize float32

	// BorderWidth is the width of the background border around the text.
	BorderWidth float32

	// OffsetZ moves the text towards the camera.
	OffsetZ float32

	TextColor color.RGBA
}

// DefaultTextProps returns the defaults of [TextProps].
func DefaultTextProps() TextProps {
	return TextProps{
		BaseProps: DefaultBaseProps(),
		TextSize:  0.5,
		OffsetZ:   2,
		TextColor: color.RGBA{0, 0, 0, 255},
	}
}

// TextUtils returns the [Utils] of text for props P.
func TextUtils[P any](get func(props P) *TextProps) Utils[P] {
	return Utils[P]{
		Kind: renderobject.Text,
		Base: func(props P) BaseProps { return get(props).BaseProps },
		Size: func(props P) (theme.SizeProps, bool) {
			return theme.SizeProps{Name: theme.UniformSize, Value: get(props).TextSize}, true
		},
		Uniforms: func(v *Values, props P) {
			tp := get(props)
			SetUniform(v, "uBorderWidth", tp.BorderWidth)
			SetUniform(v, "uOffsetZ", tp.OffsetZ)
			SetUniform(v, "uTextColor", uniformVector(tp.TextColor.R, tp.TextColor.G, tp.TextColor.B))
		},
	}
}

// TextFace is the face all text is laid out with.
var TextFace font.Face = basicfont.Face7x13

var (
	atlasOnce sync.Once
	atlas     []uint8
	atlasSize image.Point
)

// fontAtlas returns the alpha atlas of [TextFace].
func fontAtlas() ([]uint8, image.Point) {
	atlasOnce.Do(func() {
		_, mask, _, _, ok := TextFace.Glyph(fixed.P(0, 0), 'A')
		if !ok {
			return
		}
		b := mask.Bounds()
		atlasSize = b.Size()
		atlas = make([]uint8, 0, b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				_, _, _, a := mask.At(x, y).RGBA()
				atlas = append(atlas, uint8(a>>8))
			}
		}
	})
	return atlas, atlasSize
}

// TextBuilder assembles [Text].
type TextBuilder struct {
	tc        *task.Context
	prev      *Text
	centers   *buffer.Buffer[float32]
	mappings  *buffer.Buffer[float32]
	depths    *buffer.Buffer[float32]
	texCoords *buffer.Buffer[float32]
	groups    *buffer.Buffer[float32]
	indices   *buffer.Buffer[uint32]
	old       []float32
}

// NewTextBuilder returns a builder with room for initialCount glyphs,
// reusing the storage of prev if given. tc may be nil.
func NewTextBuilder(tc *task.Context, initialCount int, prev *Text) *TextBuilder {
	b := &TextBuilder{tc: tc, prev: prev}
	var cc, mc, dc, tcc, gc *valuecell.Cell[[]float32]
	var ic *valuecell.Cell[[]uint32]
	if prev != nil {
		cc, mc, dc, tcc, gc, ic = prev.Centers, prev.Mappings, prev.Depths, prev.TexCoords, prev.Groups, prev.Indices
		b.old = cc.Value()
	}
	b.centers = reuse(cc, initialCount*12)
	b.mappings = reuse(mc, initialCount*8)
	b.depths = reuse(dc, initialCount*4)
	b.texCoords = reuse(tcc, initialCount*8)
	b.groups = reuse(gc, initialCount*4)
	b.indices = reuse(ic, initialCount*6)
	return b
}

// Add adds str centered on the anchor. Runes the face does not have
// are drawn as '?'. Whitespace advances without adding a glyph.
func (b *TextBuilder) Add(str string, anchor math32.Vector3, depth float32, group int) {
	m := TextFace.Metrics()
	lineHeight := float32(m.Height.Ceil())
	ascent := float32(m.Ascent.Ceil())
	descent := float32(m.Descent.Ceil())
	width := float32(font.MeasureString(TextFace, str).Ceil())
	_, size := fontAtlas()
	ox := -width / 2
	oy := (ascent - descent) / 2

	pen := fixed.I(0)
	prev := rune(-1)
	for _, r := range str {
		if prev >= 0 {
			pen += TextFace.Kern(prev, r)
		}
		prev = r
		dr, _, maskp, adv, ok := TextFace.Glyph(fixed.Point26_6{X: pen}, r)
		if !ok {
			dr, _, maskp, adv, _ = TextFace.Glyph(fixed.Point26_6{X: pen}, '?')
		}
		pen += adv
		if r == ' ' || dr.Empty() {
			continue
		}
		x0 := (float32(dr.Min.X) + ox) / lineHeight
		x1 := (float32(dr.Max.X) + ox) / lineHeight
		y0 := (-float32(dr.Max.Y) + oy) / lineHeight
		y1 := (-float32(dr.Min.Y) + oy) / lineHeight
		u0 := float32(maskp.X) / float32(max(size.X, 1))
		u1 := float32(maskp.X+dr.Dx()) / float32(max(size.X, 1))
		v0 := float32(maskp.Y) / float32(max(size.Y, 1))
		v1 := float32(maskp.Y+dr.Dy()) / float32(max(size.Y, 1))

		off := uint32(b.groups.Len())
		b.mappings.Append(x0, y1, x0, y0, x1, y1, x1, y0)
		b.texCoords.Append(u0, v0, u0, v1, u1, v0, u1, v1)
		for range 4 {
			appendVec(b.centers, anchor)
			b.depths.Append(depth)
			b.groups.Append(float32(group))
		}
		b.indices.Append(off, off+1, off+2, off+1, off+3, off+2)
	}
}

// Text returns the built text.
func (b *TextBuilder) Text() *Text {
	t := b.prev
	if t == nil {
		t = &Text{}
	}
	t.CharCount = b.groups.Len() / 4
	t.Centers = commit(t.Centers, b.centers)
	t.Mappings = commit(t.Mappings, b.mappings)
	t.Depths = commit(t.Depths, b.depths)
	t.TexCoords = commit(t.TexCoords, b.texCoords)
	t.Groups = commit(t.Groups, b.groups)
	t.Indices = commit(t.Indices, b.indices)
	if t.Font == nil {
		a, _ := fontAtlas()
		t.Font = valuecell.New(a)
	}
	t.sphere = boundingSphere(t.Centers.Value(), t.CharCount*4)
	if b.prev != nil {
		reportRealloc(b.tc, renderobject.Text, sameStorage(t.Centers, b.old))
	}
	return t
}
