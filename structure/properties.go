// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import "strings"

// DefaultVdwRadius is used for elements without a tabulated radius.
const DefaultVdwRadius = 2.0

// vdwRadii are van der Waals radii in Angstrom (Bondi 1964,
// with hydrogen after Rowland & Taylor 1996).
var vdwRadii = map[string]float32{
	"H":  1.1,
	"HE": 1.4,
	"LI": 1.81,
	"BE": 1.53,
	"B":  1.92,
	"C":  1.7,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"NE": 1.54,
	"NA": 2.27,
	"MG": 1.73,
	"AL": 1.84,
	"SI": 2.1,
	"P":  1.8,
	"S":  1.8,
	"CL": 1.75,
	"AR": 1.88,
	"K":  2.75,
	"CA": 2.31,
	"NI": 1.63,
	"CU": 1.4,
	"ZN": 1.39,
	"GA": 1.87,
	"GE": 2.11,
	"AS": 1.85,
	"SE": 1.9,
	"BR": 1.85,
	"KR": 2.02,
	"I":  1.98,
	"XE": 2.16,
}

// VdwRadius returns the van der Waals radius of the element symbol.
func VdwRadius(symbol string) float32 {
	if r, ok := vdwRadii[strings.ToUpper(symbol)]; ok {
		return r
	}
	return DefaultVdwRadius
}

// IsHydrogen returns whether the element symbol is hydrogen
// or one of its isotopes.
func IsHydrogen(symbol string) bool {
	switch strings.ToUpper(symbol) {
	case "H", "D", "T":
		return true
	}
	return false
}

// PhysicalRadius is the physical size of an element: the vdW radius
// for atomic units, the sphere radius for coarse grained units.
func PhysicalRadius(l ElementLocation) float32 {
	e := l.Model()
	if l.Unit.Kind == Spheres {
		return e.Radius
	}
	return VdwRadius(e.Symbol)
}
