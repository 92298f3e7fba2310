// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/mol/task"
)

// maxGridPoints bounds the size of density grids; the spacing is
// increased until the grid fits.
const maxGridPoints = 1 << 22

// Grid is a scalar field sampled on a regular grid, x fastest.
type Grid struct {
	Dims   [3]int
	Origin math32.Vector3
	Delta  float32
	Data   []float32

	// IDs holds per sample the index of the source that contributed
	// most to it, or -1.
	IDs []int32
}

func (g *Grid) index(x, y, z int) int {
	return (z*g.Dims[1]+y)*g.Dims[0] + x
}

// Position returns the position of a sample.
func (g *Grid) Position(x, y, z int) math32.Vector3 {
	return g.Origin.Add(math32.Vec3(float32(x), float32(y), float32(z)).MulScalar(g.Delta))
}

// GaussianDensityProps parameterize [ComputeGaussianDensity].
type GaussianDensityProps struct {
	// Resolution is the grid spacing.
	Resolution float32

	// RadiusOffset is added to every radius.
	RadiusOffset float32

	// Smoothness is the falloff exponent; the iso level of the
	// surface is exp(-Smoothness).
	Smoothness float32
}

// DefaultGaussianDensityProps returns the defaults of [GaussianDensityProps].
func DefaultGaussianDensityProps() GaussianDensityProps {
	return GaussianDensityProps{Resolution: 1, Smoothness: 1.5}
}

// IsoLevel returns the iso level at which the surface of an
// isolated sphere is at its radius.
func (p GaussianDensityProps) IsoLevel() float32 {
	return math32.Exp(-p.Smoothness)
}

// ComputeGaussianDensity sums a gaussian per sphere onto a grid
// enclosing all spheres.
func ComputeGaussianDensity(tc *task.Context, positions []math32.Vector3, radii []float32, props GaussianDensityProps) (*Grid, error) {
	alpha := math32.Max(props.Smoothness, 0.1)
	cutoffFactor := math32.Sqrt((alpha + 4.6) / alpha)
	g := &Grid{Delta: math32.Max(props.Resolution, 0.1)}
	if len(positions) == 0 {
		return g, nil
	}
	var maxR float32
	bb := math32.B3Empty()
	for i, p := range positions {
		bb.ExpandByPoint(p)
		maxR = math32.Max(maxR, radii[i]+props.RadiusOffset)
	}
	pad := maxR*cutoffFactor + g.Delta
	bb.ExpandByScalar(pad)
	size := bb.Size()
	for {
		for d, s := range [3]float32{size.X, size.Y, size.Z} {
			g.Dims[d] = int(math32.Ceil(s/g.Delta)) + 1
		}
		if g.Dims[0]*g.Dims[1]*g.Dims[2] <= maxGridPoints {
			break
		}
		g.Delta *= 1.25
	}
	g.Origin = bb.Min
	n := g.Dims[0] * g.Dims[1] * g.Dims[2]
	g.Data = make([]float32, n)
	g.IDs = make([]int32, n)
	best := make([]float32, n)
	for i := range g.IDs {
		g.IDs[i] = -1
	}
	for i, p := range positions {
		if err := tc.Tick("Computing density", i, len(positions)); err != nil {
			return nil, err
		}
		r := radii[i] + props.RadiusOffset
		if r <= 0 {
			continue
		}
		rInvSq := 1 / (r * r)
		cut := r * cutoffFactor
		lo := p.Sub(g.Origin).SubScalar(cut).DivScalar(g.Delta)
		hi := p.Sub(g.Origin).AddScalar(cut).DivScalar(g.Delta)
		x0, y0, z0 := max(int(lo.X), 0), max(int(lo.Y), 0), max(int(lo.Z), 0)
		x1 := min(int(math32.Ceil(hi.X)), g.Dims[0]-1)
		y1 := min(int(math32.Ceil(hi.Y)), g.Dims[1]-1)
		z1 := min(int(math32.Ceil(hi.Z)), g.Dims[2]-1)
		for z := z0; z <= z1; z++ {
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					d := g.Position(x, y, z).Sub(p)
					dSq := d.Dot(d)
					if dSq > cut*cut {
						continue
					}
					f := math32.Exp(-alpha * dSq * rInvSq)
					k := g.index(x, y, z)
					g.Data[k] += f
					if f > best[k] {
						best[k] = f
						g.IDs[k] = int32(i)
					}
				}
			}
		}
	}
	return g, nil
}

// cubeCorners are the corner offsets of a grid cell.
var cubeCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// cubeTetrahedra split a cell into six tetrahedra around the 0-6 diagonal.
var cubeTetrahedra = [6][4]int{
	{0, 5, 1, 6}, {0, 1, 2, 6}, {0, 2, 3, 6},
	{0, 3, 7, 6}, {0, 7, 4, 6}, {0, 4, 5, 6},
}

// ExtractIsosurface adds the iso surface of the grid at the given level
// to the builder with marching tetrahedra. Triangles face towards
// lower values. The group of a triangle is group of the id of its
// highest valued sample.
func ExtractIsosurface(tc *task.Context, g *Grid, iso float32, b *MeshBuilder, group func(id int32) int) error {
	cells := (g.Dims[0] - 1) * (g.Dims[1] - 1) * (g.Dims[2] - 1)
	ci := 0
	var pos [8]math32.Vector3
	var val [8]float32
	var ids [8]int32
	for z := 0; z < g.Dims[2]-1; z++ {
		for y := 0; y < g.Dims[1]-1; y++ {
			for x := 0; x < g.Dims[0]-1; x++ {
				if err := tc.Tick("Extracting surface", ci, cells); err != nil {
					return err
				}
				ci++
				below, above := false, false
				for c, o := range cubeCorners {
					k := g.index(x+o[0], y+o[1], z+o[2])
					val[c] = g.Data[k]
					ids[c] = g.IDs[k]
					if val[c] >= iso {
						above = true
					} else {
						below = true
					}
				}
				if !below || !above {
					continue
				}
				for c, o := range cubeCorners {
					pos[c] = g.Position(x+o[0], y+o[1], z+o[2])
				}
				for _, t := range cubeTetrahedra {
					tetrahedron(b, t, &pos, &val, &ids, iso, group)
				}
			}
		}
	}
	return nil
}

func tetrahedron(b *MeshBuilder, t [4]int, pos *[8]math32.Vector3, val *[8]float32, ids *[8]int32, iso float32, group func(id int32) int) {
	var in, out []int
	for _, c := range t {
		if val[c] >= iso {
			in = append(in, c)
		} else {
			out = append(out, c)
		}
	}
	if len(in) == 0 || len(out) == 0 {
		return
	}
	interp := func(a, c int) math32.Vector3 {
		f := (iso - val[a]) / (val[c] - val[a])
		return pos[a].Add(pos[c].Sub(pos[a]).MulScalar(f))
	}
	outward := centroid(pos, out).Sub(centroid(pos, in))
	top := in[0]
	for _, c := range in {
		if val[c] > val[top] {
			top = c
		}
	}
	id := ids[top]
	if id >= 0 && group != nil {
		b.SetGroup(group(id))
	}
	emit := func(p0, p1, p2 math32.Vector3) {
		if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(outward) < 0 {
			p1, p2 = p2, p1
		}
		b.AddTriangle(p0, p1, p2)
	}
	switch len(in) {
	case 1:
		a := in[0]
		emit(interp(a, out[0]), interp(a, out[1]), interp(a, out[2]))
	case 3:
		a := out[0]
		emit(interp(in[0], a), interp(in[1], a), interp(in[2], a))
	case 2:
		q0 := interp(in[0], out[0])
		q1 := interp(in[0], out[1])
		q2 := interp(in[1], out[1])
		q3 := interp(in[1], out[0])
		emit(q0, q1, q2)
		emit(q0, q2, q3)
	}
}

func centroid(pos *[8]math32.Vector3, corners []int) math32.Vector3 {
	var c math32.Vector3
	for _, k := range corners {
		c = c.Add(pos[k])
	}
	return c.DivScalar(float32(len(corners)))
}
