// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads consecutive palette entries around the hue circle.
const goldenAngle = 137.50776405003785

// Distinct returns the i-th color of an unbounded categorical palette.
// Hues advance by the golden angle in HCL space, so neighbouring
// indexes are well separated.
func Distinct(i int) color.RGBA {
	h := math.Mod(float64(i)*goldenAngle, 360)
	l := 0.62
	if i%2 == 1 {
		l = 0.72
	}
	r, g, b := colorful.Hcl(h, 0.55, l).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// DistinctFor returns the palette color for a string key, e.g. a chain id.
func DistinctFor(key string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(key))
	return Distinct(int(h.Sum32() % 4096))
}

// Hex returns the color for a "#rrggbb" string.
func Hex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// RGB returns an opaque color from a 0xRRGGBB value.
func RGB(hex uint32) color.RGBA {
	return color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}
