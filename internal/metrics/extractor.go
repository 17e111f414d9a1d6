// Package metrics derives relaxation observables from an
// unrelaxed/relaxed structure pair: the d12 and d23 interlayer spacing
// changes relative to the unrelaxed spacing, and per-atom displacement
// statistics.
package metrics

import (
	"math"
	"sort"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Extract computes the metric set for a relaxation. Both structures must
// hold the same atoms in the same order; bulkSpacing is the ideal
// interlayer spacing for the element/face pair in Angstroms and serves
// only as the layer banding quantum.
//
// d12 and d23 are the relaxed interlayer distances relative to the
// distances measured on the unrelaxed structure itself, so extracting a
// structure against an unchanged copy always yields zero change even
// when the slab's actual spacing differs from the ideal bulk value.
//
// Layers are identified by quantizing unrelaxed z coordinates into bands
// of width bulkSpacing. An atom exactly on a band boundary is assigned to
// the lower band. Layer 1 is the topmost (highest z).
func Extract(unrelaxed, relaxed *domain.Structure, bulkSpacing float64) (*domain.MetricSet, error) {
	if unrelaxed == nil || len(unrelaxed.Atoms) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyStructure, "extract metrics: unrelaxed")
	}
	if relaxed == nil || len(relaxed.Atoms) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyStructure, "extract metrics: relaxed")
	}
	if err := checkSameAtoms(unrelaxed, relaxed); err != nil {
		return nil, err
	}
	if bulkSpacing <= 0 {
		return nil, errors.Wrapf(errors.ErrValueOutOfRange, "extract metrics: bulk spacing %g", bulkSpacing)
	}

	bands := assignBands(unrelaxed, bulkSpacing)
	layers := orderTopDown(bands)

	m := &domain.MetricSet{NumLayers: len(layers)}

	if len(layers) >= 2 {
		pre := meanZ(unrelaxed, layers[0]) - meanZ(unrelaxed, layers[1])
		post := meanZ(relaxed, layers[0]) - meanZ(relaxed, layers[1])
		m.D12ChangePct = (post - pre) / pre * 100
	}
	if len(layers) >= 3 {
		pre := meanZ(unrelaxed, layers[1]) - meanZ(unrelaxed, layers[2])
		post := meanZ(relaxed, layers[1]) - meanZ(relaxed, layers[2])
		m.D23ChangePct = (post - pre) / pre * 100
	}

	surface := map[int]bool{}
	if len(layers) > 0 {
		for _, idx := range layers[0] {
			surface[idx] = true
		}
	}

	var sum, surfaceSum float64
	var surfaceCount int
	for i := range unrelaxed.Atoms {
		d := displacement(unrelaxed.Atoms[i].Position, relaxed.Atoms[i].Position)
		sum += d
		if d > m.MaxDisplacement {
			m.MaxDisplacement = d
		}
		if surface[i] {
			surfaceSum += d
			surfaceCount++
			if d > m.SurfaceMaxDisplacement {
				m.SurfaceMaxDisplacement = d
			}
		}
	}
	m.MeanDisplacement = sum / float64(len(unrelaxed.Atoms))
	if surfaceCount > 0 {
		m.SurfaceMeanDisplacement = surfaceSum / float64(surfaceCount)
	}

	return m, nil
}

// checkSameAtoms verifies count and per-index species identity.
func checkSameAtoms(a, b *domain.Structure) error {
	if len(a.Atoms) != len(b.Atoms) {
		return errors.Wrapf(errors.ErrStructureMismatch,
			"atom count %d vs %d", len(a.Atoms), len(b.Atoms))
	}
	for i := range a.Atoms {
		if a.Atoms[i].Symbol != b.Atoms[i].Symbol {
			return errors.Wrapf(errors.ErrStructureMismatch,
				"atom %d species %s vs %s", i, a.Atoms[i].Symbol, b.Atoms[i].Symbol)
		}
	}
	return nil
}

// assignBands groups atom indices by quantized unrelaxed z. Band index
// for an atom at height z is ceil((z - zmin)/spacing - 0.5); the -0.5
// centers bands on layers while the ceil sends an atom exactly on a
// band boundary down.
func assignBands(s *domain.Structure, spacing float64) map[int][]int {
	zmin := s.Atoms[0].Position.Z
	for _, atom := range s.Atoms[1:] {
		if atom.Position.Z < zmin {
			zmin = atom.Position.Z
		}
	}

	bands := map[int][]int{}
	for i, atom := range s.Atoms {
		q := (atom.Position.Z - zmin) / spacing
		band := int(math.Ceil(q - 0.5))
		bands[band] = append(bands[band], i)
	}
	return bands
}

// orderTopDown returns band member lists sorted from highest band to
// lowest, so index 0 is the surface layer.
func orderTopDown(bands map[int][]int) [][]int {
	keys := make([]int, 0, len(bands))
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	layers := make([][]int, 0, len(keys))
	for _, k := range keys {
		layers = append(layers, bands[k])
	}
	return layers
}

func meanZ(s *domain.Structure, indices []int) float64 {
	var sum float64
	for _, i := range indices {
		sum += s.Atoms[i].Position.Z
	}
	return sum / float64(len(indices))
}

func displacement(a, b domain.Position) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
