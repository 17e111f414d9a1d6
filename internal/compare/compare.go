// Package compare scores computed relaxation metrics against literature
// reference records and assigns an agreement label.
package compare

import (
	"math"

	"github.com/atomiclab/atomic/internal/config"
	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
)

// Thresholds holds the agreement band boundaries in percentage points of
// deviation. A deviation below Excellent is EXCELLENT, below Good is
// GOOD, below Fair is FAIR, anything else POOR.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// FromConfig extracts the threshold bands from configuration.
func FromConfig(cfg config.CompareConfig) Thresholds {
	return Thresholds{
		Excellent: cfg.Excellent,
		Good:      cfg.Good,
		Fair:      cfg.Fair,
	}
}

// Score computes the agreement verdict for a metric set against the
// reference records. With no records the verdict is NO_REFERENCE and the
// deviation is nil. With records, the deviation for each record is the
// mean absolute difference of the d12 and d23 changes, and the verdict
// carries the mean across records.
func Score(m *domain.MetricSet, records []domain.ReferenceRecord, t Thresholds) domain.AgreementVerdict {
	if m == nil || len(records) == 0 {
		return domain.AgreementVerdict{
			Label:   constants.AgreementNoReference,
			Records: records,
		}
	}

	var total float64
	for _, rec := range records {
		d12 := math.Abs(m.D12ChangePct - rec.D12ChangePct)
		d23 := math.Abs(m.D23ChangePct - rec.D23ChangePct)
		total += (d12 + d23) / 2
	}
	deviation := total / float64(len(records))

	return domain.AgreementVerdict{
		Label:     labelFor(deviation, t),
		Deviation: &deviation,
		Records:   records,
	}
}

func labelFor(deviation float64, t Thresholds) constants.AgreementLabel {
	switch {
	case deviation < t.Excellent:
		return constants.AgreementExcellent
	case deviation < t.Good:
		return constants.AgreementGood
	case deviation < t.Fair:
		return constants.AgreementFair
	default:
		return constants.AgreementPoor
	}
}
