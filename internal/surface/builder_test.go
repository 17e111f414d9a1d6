package surface

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

// layerZs returns the distinct mean z per tag, keyed by tag.
func layerZs(s *domain.Structure) map[int]float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, a := range s.Atoms {
		sums[a.Tag] += a.Position.Z
		counts[a.Tag]++
	}
	out := map[int]float64{}
	for tag, sum := range sums {
		out[tag] = sum / float64(counts[tag])
	}
	return out
}

func TestBuild_FCCSlabs(t *testing.T) {
	tests := []struct {
		name    string
		element string
		face    string
		spacing float64 // expected interlayer spacing
	}{
		{"copper 100", "Cu", "100", 3.61 / 2},
		{"copper 111", "Cu", "111", 3.61 / math.Sqrt(3)},
		{"copper 110", "Cu", "110", 3.61 / (2 * math.Sqrt2)},
		{"platinum 111", "Pt", "111", 3.92 / math.Sqrt(3)},
		{"gold 100", "Au", "100", 4.08 / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			s, err := b.Build(context.Background(), tt.element, tt.face)
			require.NoError(t, err)

			// Default 3x3x4 slab.
			assert.Equal(t, 36, s.NumAtoms())
			assert.Equal(t, tt.element+"36", s.Formula)

			// Tags run 1 (surface) through 4 (bottom), 9 atoms each.
			tagCounts := map[int]int{}
			for _, a := range s.Atoms {
				tagCounts[a.Tag]++
			}
			assert.Equal(t, map[int]int{1: 9, 2: 9, 3: 9, 4: 9}, tagCounts)

			// Tag 1 is the topmost layer and successive layers sit one
			// bulk spacing apart.
			zs := layerZs(s)
			assert.Greater(t, zs[1], zs[2])
			for tag := 1; tag <= 3; tag++ {
				assert.InDelta(t, tt.spacing, zs[tag]-zs[tag+1], 1e-9,
					"spacing between layers %d and %d", tag, tag+1)
			}

			// The cell's z extent covers the slab plus vacuum on both sides.
			assert.InDelta(t, 2*10.0+3*tt.spacing, s.Cell[2][2], 1e-9)
		})
	}
}

func TestBuild_CustomSize(t *testing.T) {
	b := NewBuilder(WithSize(2, 2, 3), WithVacuum(5))
	s, err := b.Build(context.Background(), "Ni", "100")
	require.NoError(t, err)

	assert.Equal(t, 12, s.NumAtoms())
	assert.Equal(t, "Ni12", s.Formula)
	assert.InDelta(t, 2*5.0+2*(3.52/2), s.Cell[2][2], 1e-9)
}

func TestBuild_Graphene(t *testing.T) {
	b := NewBuilder()
	s, err := b.Build(context.Background(), "C", "graphene")
	require.NoError(t, err)

	// Two-atom basis, 3x3 cells.
	assert.Equal(t, 18, s.NumAtoms())
	assert.Equal(t, "C18", s.Formula)

	// A single flat sheet: every atom at the same z, all tag 1.
	for _, a := range s.Atoms {
		assert.Equal(t, "C", a.Symbol)
		assert.Equal(t, 1, a.Tag)
		assert.InDelta(t, s.Atoms[0].Position.Z, a.Position.Z, 1e-9)
	}
}

func TestBuild_MoS2(t *testing.T) {
	b := NewBuilder()
	s, err := b.Build(context.Background(), "MoS2", "2d")
	require.NoError(t, err)

	assert.Equal(t, 27, s.NumAtoms())
	assert.Equal(t, "Mo9S18", s.Formula)

	// Sandwich ordering: S plane above Mo plane above S plane.
	zs := layerZs(s)
	assert.Greater(t, zs[1], zs[2])
	assert.Greater(t, zs[2], zs[3])
	assert.InDelta(t, 1.595, zs[1]-zs[2], 1e-9)
	assert.InDelta(t, 1.595, zs[2]-zs[3], 1e-9)

	for _, a := range s.Atoms {
		if a.Symbol == "Mo" {
			assert.Equal(t, 2, a.Tag)
		} else {
			assert.Contains(t, []int{1, 3}, a.Tag)
		}
	}
}

func TestBuild_UnsupportedFace(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build(context.Background(), "Cu", "211")
	assert.ErrorIs(t, err, atomicerrors.ErrUnsupportedSurface)

	_, err = b.Build(context.Background(), "Fe", "100")
	assert.ErrorIs(t, err, atomicerrors.ErrUnsupportedSurface)
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder().Build(ctx, "Cu", "100")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatticeConstants(t *testing.T) {
	for element, want := range map[string]float64{
		"Cu": 3.61, "Pt": 3.92, "Au": 4.08, "Ag": 4.09, "Ni": 3.52, "Pd": 3.89,
	} {
		a, err := LatticeConstant(element)
		require.NoError(t, err, element)
		assert.Equal(t, want, a, element)
	}

	_, err := LatticeConstant("Fe")
	assert.ErrorIs(t, err, atomicerrors.ErrUnsupportedSurface)
}

func TestBulkInterlayerSpacing(t *testing.T) {
	tests := []struct {
		name    string
		element string
		face    string
		want    float64
	}{
		{"cu 100 is half the lattice constant", "Cu", "100", 1.805},
		{"cu 111", "Cu", "111", 3.61 / math.Sqrt(3)},
		{"cu 110", "Cu", "110", 3.61 / (2 * math.Sqrt2)},
		{"mos2 sublayer spacing", "MoS2", "2d", 1.595},
		{"graphene uses graphite spacing", "C", "graphene", 3.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BulkInterlayerSpacing(tt.element, tt.face)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := BulkInterlayerSpacing("Fe", "100")
	assert.ErrorIs(t, err, atomicerrors.ErrUnsupportedSurface)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("Cu", "100"))
	assert.True(t, IsSupported("Pd", "110"))
	assert.True(t, IsSupported("C", "graphene"))
	assert.True(t, IsSupported("MoS2", "2d"))
	assert.False(t, IsSupported("Fe", "100"))
	assert.False(t, IsSupported("Cu", "211"))
	assert.False(t, IsSupported("MoS2", "100"))
}

func TestKnownSurfaces(t *testing.T) {
	known := KnownSurfaces()
	assert.Len(t, known, 6*3+2)
	assert.Contains(t, known, "Cu(100)")
	assert.Contains(t, known, "MoS2(2d)")
	assert.IsIncreasing(t, known)
}
