// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repr

import (
	"cogentcore.org/mol/geometry"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/visual"
)

func unitsPart[Vis visual.Visual[structure.UnitGroup, V], V, P any](name string, newVisual func() Vis, project func(P) V) Part[P] {
	return Part[P]{Name: name, Repr: NewUnitsRepresentation(newVisual, project)}
}

func complexPart[Vis visual.Visual[*structure.Structure, V], V, P any](name string, newVisual func() Vis, project func(P) V) Part[P] {
	return Part[P]{Name: name, Repr: NewComplexRepresentation(newVisual, project)}
}

func identity[P any](p P) P { return p }

// CartoonProps are the props of the cartoon representation.
type CartoonProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	TraceRadius    float32
	RadialSegments int

	GapRadius float32
	DashCount int

	BlockWidth     float32
	BlockThickness float32

	WedgeSize float32

	SymbolSize float32
	Detail     int
	LinkRadius float32
}

// DefaultCartoonProps returns the defaults of [CartoonProps], taken
// from the defaults of its visuals.
func DefaultCartoonProps() CartoonProps {
	tr := visual.DefaultPolymerTraceProps()
	gp := visual.DefaultPolymerGapProps()
	nb := visual.DefaultNucleotideBlockProps()
	pd := visual.DefaultPolymerDirectionProps()
	cs := visual.DefaultCarbohydrateSymbolProps()
	cl := visual.DefaultCarbohydrateLinkProps()
	return CartoonProps{
		MeshProps:      geometry.DefaultMeshProps(),
		TraceRadius:    tr.TraceRadius,
		RadialSegments: tr.RadialSegments,
		GapRadius:      gp.GapRadius,
		DashCount:      gp.DashCount,
		BlockWidth:     nb.BlockWidth,
		BlockThickness: nb.BlockThickness,
		WedgeSize:      pd.WedgeSize,
		SymbolSize:     cs.SymbolSize,
		Detail:         cs.Detail,
		LinkRadius:     cl.LinkRadius,
	}
}

// NewCartoon returns a cartoon representation. Its parts in picking
// priority order are polymer-trace, polymer-gap, nucleotide-block,
// polymer-direction, carbohydrate-symbol and carbohydrate-link.
func NewCartoon() *Composite[CartoonProps] {
	return NewComposite("cartoon", DefaultCartoonProps(),
		unitsPart("polymer-trace", visual.NewPolymerTrace, func(p CartoonProps) visual.PolymerTraceProps {
			return visual.PolymerTraceProps{MeshProps: p.MeshProps, TraceRadius: p.TraceRadius, RadialSegments: p.RadialSegments}
		}),
		unitsPart("polymer-gap", visual.NewPolymerGap, func(p CartoonProps) visual.PolymerGapProps {
			return visual.PolymerGapProps{MeshProps: p.MeshProps, GapRadius: p.GapRadius, RadialSegments: p.RadialSegments, DashCount: p.DashCount}
		}),
		unitsPart("nucleotide-block", visual.NewNucleotideBlock, func(p CartoonProps) visual.NucleotideBlockProps {
			return visual.NucleotideBlockProps{MeshProps: p.MeshProps, BlockWidth: p.BlockWidth, BlockThickness: p.BlockThickness}
		}),
		unitsPart("polymer-direction", visual.NewPolymerDirection, func(p CartoonProps) visual.PolymerDirectionProps {
			return visual.PolymerDirectionProps{MeshProps: p.MeshProps, WedgeSize: p.WedgeSize}
		}),
		complexPart("carbohydrate-symbol", visual.NewCarbohydrateSymbol, func(p CartoonProps) visual.CarbohydrateSymbolProps {
			return visual.CarbohydrateSymbolProps{MeshProps: p.MeshProps, SymbolSize: p.SymbolSize, Detail: p.Detail}
		}),
		complexPart("carbohydrate-link", visual.NewCarbohydrateLink, func(p CartoonProps) visual.CarbohydrateLinkProps {
			return visual.CarbohydrateLinkProps{MeshProps: p.MeshProps, LinkRadius: p.LinkRadius, RadialSegments: p.RadialSegments}
		}),
	)
}

// NewSpacefill returns a representation drawing every element as a
// sphere of its van der Waals radius.
func NewSpacefill() *Composite[visual.ElementSphereProps] {
	return NewComposite("spacefill", visual.DefaultElementSphereProps(),
		unitsPart("element-sphere", visual.NewElementSphere, identity[visual.ElementSphereProps]),
	)
}

// BallAndStickProps are the props of the ball and stick representation.
type BallAndStickProps struct {
	geometry.MeshProps    `mapstructure:",squash"`
	visual.StructureProps `mapstructure:",squash"`

	// SizeFactor scales the van der Waals radius of the balls.
	SizeFactor float32

	// IgnoreLight draws the balls without shading.
	IgnoreLight bool

	LinkRadius     float32
	RadialSegments int
}

// DefaultBallAndStickProps returns the defaults of [BallAndStickProps].
func DefaultBallAndStickProps() BallAndStickProps {
	lp := visual.DefaultIntraUnitLinkProps()
	return BallAndStickProps{
		MeshProps:      geometry.DefaultMeshProps(),
		StructureProps: visual.DefaultStructureProps(),
		SizeFactor:     0.3,
		LinkRadius:     lp.LinkRadius,
		RadialSegments: lp.RadialSegments,
	}
}

// NewBallAndStick returns a representation drawing elements as sphere
// impostors and bonds as cylinders.
func NewBallAndStick() *Composite[BallAndStickProps] {
	return NewComposite("ball-and-stick", DefaultBallAndStickProps(),
		unitsPart("element-sphere-impostor", visual.NewElementSphereImpostor, func(p BallAndStickProps) visual.ElementSphereImpostorProps {
			return visual.ElementSphereImpostorProps{
				SpheresProps: geometry.SpheresProps{
					BaseProps:   p.BaseProps,
					Size:        theme.SizeProps{Name: theme.PhysicalSize, Factor: p.SizeFactor},
					IgnoreLight: p.IgnoreLight,
				},
				StructureProps: p.StructureProps,
			}
		}),
		unitsPart("intra-unit-link", visual.NewIntraUnitLink, func(p BallAndStickProps) visual.IntraUnitLinkProps {
			return visual.IntraUnitLinkProps{MeshProps: p.MeshProps, StructureProps: p.StructureProps, LinkRadius: p.LinkRadius, RadialSegments: p.RadialSegments}
		}),
	)
}

// NewPoint returns a representation drawing every element as a point.
func NewPoint() *Composite[visual.ElementPointProps] {
	return NewComposite("point", visual.DefaultElementPointProps(),
		unitsPart("element-point", visual.NewElementPoint, identity[visual.ElementPointProps]),
	)
}

// NewLine returns a representation drawing bonds as wide lines.
func NewLine() *Composite[visual.IntraUnitLinkLinesProps] {
	return NewComposite("line", visual.DefaultIntraUnitLinkLinesProps(),
		unitsPart("intra-unit-link-lines", visual.NewIntraUnitLinkLines, identity[visual.IntraUnitLinkLinesProps]),
	)
}

// CarbohydrateProps are the props of the carbohydrate representation.
type CarbohydrateProps struct {
	geometry.MeshProps `mapstructure:",squash"`

	SymbolSize float32
	Detail     int

	LinkRadius     float32
	RadialSegments int
}

// DefaultCarbohydrateProps returns the defaults of [CarbohydrateProps].
func DefaultCarbohydrateProps() CarbohydrateProps {
	cs := visual.DefaultCarbohydrateSymbolProps()
	cl := visual.DefaultCarbohydrateLinkProps()
	return CarbohydrateProps{
		MeshProps:      geometry.DefaultMeshProps(),
		SymbolSize:     cs.SymbolSize,
		Detail:         cs.Detail,
		LinkRadius:     cl.LinkRadius,
		RadialSegments: cl.RadialSegments,
	}
}

// NewCarbohydrate returns a representation drawing saccharides as
// symbols joined by links.
func NewCarbohydrate() *Composite[CarbohydrateProps] {
	return NewComposite("carbohydrate", DefaultCarbohydrateProps(),
		complexPart("carbohydrate-symbol", visual.NewCarbohydrateSymbol, func(p CarbohydrateProps) visual.CarbohydrateSymbolProps {
			return visual.CarbohydrateSymbolProps{MeshProps: p.MeshProps, SymbolSize: p.SymbolSize, Detail: p.Detail}
		}),
		complexPart("carbohydrate-link", visual.NewCarbohydrateLink, func(p CarbohydrateProps) visual.CarbohydrateLinkProps {
			return visual.CarbohydrateLinkProps{MeshProps: p.MeshProps, LinkRadius: p.LinkRadius, RadialSegments: p.RadialSegments}
		}),
	)
}

// NewMolecularSurface returns a representation drawing a gaussian
// surface around every unit.
func NewMolecularSurface() *Composite[visual.GaussianSurfaceProps] {
	return NewComposite("molecular-surface", visual.DefaultGaussianSurfaceProps(),
		unitsPart("gaussian-surface", visual.NewGaussianSurface, identity[visual.GaussianSurfaceProps]),
	)
}
