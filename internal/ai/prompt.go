package ai

import (
	"fmt"
	"strings"
)

// buildPrompt renders the discussion prompt from the request. The prompt
// pins the model to the computed numbers so it cannot invent values.
func buildPrompt(req DiscussionRequest) string {
	var b strings.Builder

	b.WriteString("You are a surface scientist reviewing a slab relaxation result.\n")
	b.WriteString("Write a concise discussion (2-3 paragraphs) of the findings below.\n")
	b.WriteString("Use only the numbers provided. Do not invent values.\n\n")

	fmt.Fprintf(&b, "Surface: %s(%s), %d atoms\n", req.Element, req.Face, req.NumAtoms)
	fmt.Fprintf(&b, "Relaxation converged: %t\n", req.Converged)

	if m := req.Metrics; m != nil {
		fmt.Fprintf(&b, "d12 change: %+.2f%% (negative = contraction)\n", m.D12ChangePct)
		fmt.Fprintf(&b, "d23 change: %+.2f%%\n", m.D23ChangePct)
		fmt.Fprintf(&b, "Mean displacement: %.4f A (surface layer %.4f A)\n",
			m.MeanDisplacement, m.SurfaceMeanDisplacement)
		fmt.Fprintf(&b, "Max displacement: %.4f A\n", m.MaxDisplacement)
	}

	if req.Verdict.HasReference() {
		fmt.Fprintf(&b, "\nAgreement with literature: %s", strings.ToUpper(req.Verdict.Label.String()))
		if req.Verdict.Deviation != nil {
			fmt.Fprintf(&b, " (mean deviation %.2f percentage points)", *req.Verdict.Deviation)
		}
		b.WriteString("\nReference records:\n")
		for _, rec := range req.Verdict.Records {
			fmt.Fprintf(&b, "- %s(%s): d12 %+.1f%%, d23 %+.1f%% [%s] %s\n",
				rec.Element, rec.Face, rec.D12ChangePct, rec.D23ChangePct, rec.Method, rec.Citation)
		}
	} else {
		b.WriteString("\nNo literature reference data is available for this surface. ")
		b.WriteString("Discuss the computed values on their own terms.\n")
	}

	b.WriteString("\nCover: the physical interpretation of the interlayer changes, ")
	b.WriteString("how the result compares to the references (if any), and any caveats.\n")

	return b.String()
}
