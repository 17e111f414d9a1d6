package domain

import "github.com/atomiclab/atomic/internal/constants"

// MetricSet holds the derived relaxation metrics for one task. Computed
// once per relaxed task from its unrelaxed/relaxed structure pair;
// immutable afterwards.
type MetricSet struct {
	// D12ChangePct is the signed percentage change in the spacing between
	// the first and second atomic layers, relaxed vs unrelaxed. Negative
	// values are contractions.
	D12ChangePct float64 `json:"d12_change_pct"`

	// D23ChangePct is the analogous change for layers two and three.
	D23ChangePct float64 `json:"d23_change_pct"`

	// MeanDisplacement is the mean per-atom Euclidean displacement in
	// Angstroms over all atoms.
	MeanDisplacement float64 `json:"mean_displacement"`

	// MaxDisplacement is the maximum per-atom displacement in Angstroms.
	MaxDisplacement float64 `json:"max_displacement"`

	// SurfaceMeanDisplacement is the mean displacement over surface-layer
	// atoms only.
	SurfaceMeanDisplacement float64 `json:"surface_mean_displacement"`

	// SurfaceMaxDisplacement is the maximum displacement over
	// surface-layer atoms only.
	SurfaceMaxDisplacement float64 `json:"surface_max_displacement"`

	// NumLayers is the number of layer bands identified by z-quantization.
	NumLayers int `json:"num_layers"`
}

// ReferenceRecord is one curated experimental or DFT relaxation datum
// for an (element, face) pair. Records are static: loaded at process
// start and never mutated.
type ReferenceRecord struct {
	Element string `json:"element" yaml:"element"`
	Face    string `json:"face" yaml:"face"`

	// D12ChangePct and D23ChangePct are the literature interlayer
	// relaxations in percent; negative means contraction.
	D12ChangePct float64 `json:"d12_change_pct" yaml:"d12_change_pct"`
	D23ChangePct float64 `json:"d23_change_pct" yaml:"d23_change_pct"`

	// SurfaceEnergy is the literature surface energy in J/m^2, when known.
	SurfaceEnergy float64 `json:"surface_energy,omitempty" yaml:"surface_energy,omitempty"`

	// Citation is the literature source string.
	Citation string `json:"citation" yaml:"citation"`

	// Method is the measurement/calculation method: "LEED", "DFT", "X-ray".
	Method string `json:"method" yaml:"method"`
}

// AgreementVerdict summarizes how closely predicted metrics match the
// literature. Deviation is nil for the no-reference case.
type AgreementVerdict struct {
	// Label is the categorical agreement summary.
	Label constants.AgreementLabel `json:"label"`

	// Deviation is the mean absolute difference between predicted and
	// reference d12/d23 changes, averaged across all matching records.
	// Nil when no reference records exist.
	Deviation *float64 `json:"deviation,omitempty"`

	// Records are the reference records the verdict was scored against.
	Records []ReferenceRecord `json:"records,omitempty"`
}

// HasReference reports whether the verdict was scored against at least
// one literature record.
func (v *AgreementVerdict) HasReference() bool {
	return v.Label != constants.AgreementNoReference
}
