// Package ai produces the natural-language discussion section of a
// relaxation report through an LLM. Discussion generation is best-effort:
// the pipeline degrades to a placeholder rather than failing a task when
// the model is unavailable.
package ai

import (
	"context"
	"strings"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
)

// DiscussionRequest carries everything the model needs to discuss a
// completed relaxation.
type DiscussionRequest struct {
	Element   string                  `json:"element"`
	Face      string                  `json:"face"`
	NumAtoms  int                     `json:"num_atoms"`
	Converged bool                    `json:"converged"`
	Metrics   *domain.MetricSet       `json:"metrics"`
	Verdict   domain.AgreementVerdict `json:"verdict"`
}

// Generator produces a discussion for a relaxation result.
type Generator interface {
	// Discuss returns the discussion text. Implementations must respect
	// ctx cancellation and return ErrAIEmptyResponse for blank output.
	Discuss(ctx context.Context, req DiscussionRequest) (string, error)
}

// PlaceholderDiscussion is the text substituted when discussion
// generation fails after its retry. Reports carrying it are marked
// degraded but still succeed.
const PlaceholderDiscussion = "Automated discussion was unavailable for this run. " +
	"The computed metrics and literature comparison above stand on their own; " +
	"re-run the analysis with a configured model to generate a discussion."

// agreementWords maps the lowercase category words the model may use in
// a discussion back to their labels.
//
//nolint:gochecknoglobals // Read-only lookup table
var agreementWords = map[string]constants.AgreementLabel{
	"excellent": constants.AgreementExcellent,
	"good":      constants.AgreementGood,
	"fair":      constants.AgreementFair,
	"poor":      constants.AgreementPoor,
}

// CategoryMismatch reports whether the generated discussion text claims
// an agreement category different from the computed verdict. The check
// is best-effort word matching: it flags only when the text names at
// least one category word and never names the computed one. Verdicts
// without references are never flagged since there is no category to
// contradict.
func CategoryMismatch(text string, verdict domain.AgreementVerdict) bool {
	if !verdict.HasReference() {
		return false
	}

	lowered := strings.ToLower(text)
	sawAny := false
	for word, label := range agreementWords {
		if !containsWord(lowered, word) {
			continue
		}
		if label == verdict.Label {
			return false
		}
		sawAny = true
	}
	return sawAny
}

// containsWord reports whether s contains word bounded by non-letters,
// so "good" does not match inside "goodness".
func containsWord(s, word string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isLetter(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx == len(s) || !isLetter(s[afterIdx])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
