// Package reference resolves literature reference data for surface
// relaxations. The primary source is a curated embedded dataset; an
// optional HTTP client can consult a remote database and falls back to
// the embedded data when the remote is unreachable.
package reference

import (
	"context"
	_ "embed"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/atomiclab/atomic/internal/ctxutil"
	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

//go:embed data/references.yaml
var embeddedReferences []byte

// BulkProperties holds cached bulk crystal data for an element.
type BulkProperties struct {
	Element         string  `json:"element" yaml:"element"`
	LatticeConstant float64 `json:"lattice_constant" yaml:"lattice_constant"`
	Density         float64 `json:"density" yaml:"density"`
	CrystalSystem   string  `json:"crystal_system" yaml:"crystal_system"`
	SpaceGroup      string  `json:"space_group" yaml:"space_group"`
}

// Provider looks up reference records for an element/face pair. A lookup
// with no matching records returns an empty slice and a nil error;
// errors indicate the provider itself failed.
type Provider interface {
	Lookup(ctx context.Context, element, face string) ([]domain.ReferenceRecord, error)
}

type dataset struct {
	Surfaces []domain.ReferenceRecord `yaml:"surfaces"`
	Bulk     []BulkProperties         `yaml:"bulk"`
}

// Store serves the embedded curated dataset.
type Store struct {
	once     sync.Once
	loadErr  error
	surfaces map[string][]domain.ReferenceRecord
	bulk     map[string]BulkProperties
}

// NewStore creates a store over the embedded dataset. Parsing is
// deferred to the first lookup.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) load() error {
	s.once.Do(func() {
		var ds dataset
		if err := yaml.Unmarshal(embeddedReferences, &ds); err != nil {
			s.loadErr = errors.Wrap(err, "parse embedded reference data")
			return
		}

		s.surfaces = make(map[string][]domain.ReferenceRecord, len(ds.Surfaces))
		for _, rec := range ds.Surfaces {
			k := key(rec.Element, rec.Face)
			s.surfaces[k] = append(s.surfaces[k], rec)
		}

		s.bulk = make(map[string]BulkProperties, len(ds.Bulk))
		for _, b := range ds.Bulk {
			s.bulk[b.Element] = b
		}
	})
	return s.loadErr
}

// Lookup returns the curated records for element/face. An unknown pair
// yields an empty slice, not an error.
func (s *Store) Lookup(ctx context.Context, element, face string) ([]domain.ReferenceRecord, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	records := s.surfaces[key(element, face)]
	out := make([]domain.ReferenceRecord, len(records))
	copy(out, records)
	return out, nil
}

// Bulk returns cached bulk properties for an element.
func (s *Store) Bulk(element string) (BulkProperties, bool) {
	if err := s.load(); err != nil {
		return BulkProperties{}, false
	}
	b, ok := s.bulk[element]
	return b, ok
}

// All returns every curated surface record, ordered by element then face.
func (s *Store) All() ([]domain.ReferenceRecord, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	out := make([]domain.ReferenceRecord, 0, len(s.surfaces))
	for _, records := range s.surfaces {
		out = append(out, records...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Element != out[j].Element {
			return out[i].Element < out[j].Element
		}
		return out[i].Face < out[j].Face
	})
	return out, nil
}

func key(element, face string) string {
	return strings.TrimSpace(element) + "/" + strings.TrimSpace(face)
}
