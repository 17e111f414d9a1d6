package surface

import (
	"context"
	"math"

	"github.com/atomiclab/atomic/internal/ctxutil"
	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Default slab dimensions: 3x3 in-plane repetitions, 4 layers, 10 A of
// vacuum above and below.
const (
	defaultRepeatX = 3
	defaultRepeatY = 3
	defaultLayers  = 4
	defaultVacuum  = 10.0
)

// Builder constructs bulk-terminated surface slabs. It satisfies the
// orchestrator's StructureProvider contract.
type Builder struct {
	repeatX int
	repeatY int
	layers  int
	vacuum  float64
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSize overrides the slab repetitions and layer count.
func WithSize(nx, ny, layers int) BuilderOption {
	return func(b *Builder) {
		if nx > 0 {
			b.repeatX = nx
		}
		if ny > 0 {
			b.repeatY = ny
		}
		if layers > 0 {
			b.layers = layers
		}
	}
}

// WithVacuum overrides the vacuum padding in Angstroms.
func WithVacuum(vacuum float64) BuilderOption {
	return func(b *Builder) {
		if vacuum > 0 {
			b.vacuum = vacuum
		}
	}
}

// NewBuilder creates a slab builder with the default 3x3x4 geometry.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		repeatX: defaultRepeatX,
		repeatY: defaultRepeatY,
		layers:  defaultLayers,
		vacuum:  defaultVacuum,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the surface for the element/face pair. Layer tags run
// from 1 at the surface (highest z) downward into the bulk. Fails with
// ErrUnsupportedSurface for pairs outside the known-surface table.
func (b *Builder) Build(ctx context.Context, element, face string) (*domain.Structure, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if IsTwoDimensional(element, face) {
		if element == "MoS2" {
			return b.buildMoS2(), nil
		}
		return b.buildGraphene(), nil
	}

	a, err := LatticeConstant(element)
	if err != nil {
		return nil, err
	}

	switch face {
	case "100":
		return b.buildFCC100(element, a), nil
	case "111":
		return b.buildFCC111(element, a), nil
	case "110":
		return b.buildFCC110(element, a), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedSurface,
			"%s(%s): face must be one of 100, 111, 110, graphene, 2d", element, face)
	}
}

// buildFCC100 stacks square-lattice layers with spacing a/2; alternate
// layers are offset by half a site in both in-plane directions.
func (b *Builder) buildFCC100(element string, a float64) *domain.Structure {
	s := a / math.Sqrt2 // in-plane nearest-neighbor spacing
	d := a / 2          // interlayer spacing

	return b.stackLayers(element, s*float64(b.repeatX), s*float64(b.repeatY), d,
		func(layer int) (dx, dy float64) {
			if layer%2 == 1 {
				return s / 2, s / 2
			}
			return 0, 0
		},
		func(addAtom func(x, y float64), dx, dy float64) {
			for i := 0; i < b.repeatX; i++ {
				for j := 0; j < b.repeatY; j++ {
					addAtom(float64(i)*s+dx, float64(j)*s+dy)
				}
			}
		})
}

// buildFCC111 stacks hexagonal layers with spacing a/sqrt(3) in ABC
// order; each layer is shifted by one third of the cell diagonal.
func (b *Builder) buildFCC111(element string, a float64) *domain.Structure {
	s := a / math.Sqrt2
	d := a / math.Sqrt(3)
	rowY := s * math.Sqrt(3) / 2

	return b.stackLayers(element, s*float64(b.repeatX), rowY*float64(b.repeatY), d,
		func(layer int) (dx, dy float64) {
			shift := float64(layer % 3)
			return shift * s / 2, shift * rowY / 3
		},
		func(addAtom func(x, y float64), dx, dy float64) {
			for j := 0; j < b.repeatY; j++ {
				rowOffset := float64(j%2) * s / 2
				for i := 0; i < b.repeatX; i++ {
					addAtom(float64(i)*s+rowOffset+dx, float64(j)*rowY+dy)
				}
			}
		})
}

// buildFCC110 stacks rectangular layers with spacing a/(2*sqrt(2));
// alternate layers sit at the cell midpoints.
func (b *Builder) buildFCC110(element string, a float64) *domain.Structure {
	sx := a / math.Sqrt2
	sy := a
	d := a / (2 * math.Sqrt2)

	return b.stackLayers(element, sx*float64(b.repeatX), sy*float64(b.repeatY), d,
		func(layer int) (dx, dy float64) {
			if layer%2 == 1 {
				return sx / 2, sy / 2
			}
			return 0, 0
		},
		func(addAtom func(x, y float64), dx, dy float64) {
			for i := 0; i < b.repeatX; i++ {
				for j := 0; j < b.repeatY; j++ {
					addAtom(float64(i)*sx+dx, float64(j)*sy+dy)
				}
			}
		})
}

// stackLayers assembles a slab from per-layer in-plane generators.
// Layer 0 is the bottom; tags are assigned surface-first afterwards.
func (b *Builder) stackLayers(
	element string,
	cellX, cellY, spacing float64,
	offset func(layer int) (dx, dy float64),
	fill func(addAtom func(x, y float64), dx, dy float64),
) *domain.Structure {
	atoms := make([]domain.Atom, 0, b.repeatX*b.repeatY*b.layers)

	for layer := 0; layer < b.layers; layer++ {
		z := b.vacuum + float64(layer)*spacing
		dx, dy := offset(layer)
		// Tag 1 is the surface layer (topmost), increasing downward.
		tag := b.layers - layer
		fill(func(x, y float64) {
			atoms = append(atoms, domain.Atom{
				Symbol:   element,
				Position: domain.Position{X: x, Y: y, Z: z},
				Tag:      tag,
			})
		}, dx, dy)
	}

	height := 2*b.vacuum + float64(b.layers-1)*spacing
	return &domain.Structure{
		Formula: chemicalFormula(map[string]int{element: len(atoms)}),
		Cell: [3][3]float64{
			{cellX, 0, 0},
			{0, cellY, 0},
			{0, 0, height},
		},
		Atoms: atoms,
	}
}

// Graphene and MoS2 geometry constants, in Angstroms.
const (
	grapheneCC       = 1.42
	mos2Lattice      = 3.16
	mos2SandwichHalf = 1.595 // half the S-Mo-S thickness of 3.19
)

// buildGraphene constructs a flat periodic graphene sheet with two atoms
// per hexagonal cell. All atoms carry tag 1: the sheet is its own surface.
func (b *Builder) buildGraphene() *domain.Structure {
	a := grapheneCC * math.Sqrt(3) // hexagonal lattice constant 2.46
	rowY := a * math.Sqrt(3) / 2

	atoms := make([]domain.Atom, 0, 2*b.repeatX*b.repeatY)
	z := b.vacuum
	for j := 0; j < b.repeatY; j++ {
		for i := 0; i < b.repeatX; i++ {
			x0 := float64(i)*a + float64(j%2)*a/2
			y0 := float64(j) * rowY
			atoms = append(atoms,
				domain.Atom{Symbol: "C", Position: domain.Position{X: x0, Y: y0, Z: z}, Tag: 1},
				domain.Atom{Symbol: "C", Position: domain.Position{X: x0 + a/2, Y: y0 + grapheneCC/2, Z: z}, Tag: 1},
			)
		}
	}

	return &domain.Structure{
		Formula: chemicalFormula(map[string]int{"C": len(atoms)}),
		Cell: [3][3]float64{
			{a * float64(b.repeatX), 0, 0},
			{0, rowY * float64(b.repeatY), 0},
			{0, 0, 2 * b.vacuum},
		},
		Atoms: atoms,
	}
}

// buildMoS2 constructs a single 2H-phase MoS2 trilayer: a Mo plane
// between two S planes. The upper S plane carries tag 1, Mo tag 2, lower
// S tag 3, so displacement statistics still distinguish the outer plane.
func (b *Builder) buildMoS2() *domain.Structure {
	a := mos2Lattice
	rowY := a * math.Sqrt(3) / 2

	counts := map[string]int{}
	atoms := make([]domain.Atom, 0, 3*b.repeatX*b.repeatY)
	zMo := b.vacuum + mos2SandwichHalf
	for j := 0; j < b.repeatY; j++ {
		for i := 0; i < b.repeatX; i++ {
			x0 := float64(i)*a + float64(j%2)*a/2
			y0 := float64(j) * rowY
			atoms = append(atoms,
				domain.Atom{Symbol: "S", Position: domain.Position{X: x0, Y: y0, Z: zMo + mos2SandwichHalf}, Tag: 1},
				domain.Atom{Symbol: "Mo", Position: domain.Position{X: x0 + a/2, Y: y0 + rowY/3, Z: zMo}, Tag: 2},
				domain.Atom{Symbol: "S", Position: domain.Position{X: x0, Y: y0, Z: zMo - mos2SandwichHalf}, Tag: 3},
			)
			counts["S"] += 2
			counts["Mo"]++
		}
	}

	return &domain.Structure{
		Formula: chemicalFormula(counts),
		Cell: [3][3]float64{
			{a * float64(b.repeatX), 0, 0},
			{0, rowY * float64(b.repeatY), 0},
			{0, 0, 2*b.vacuum + 2*mos2SandwichHalf},
		},
		Atoms: atoms,
	}
}
