// Package report assembles the final markdown document for a completed
// relaxation task: structure summary, energy table, metric table,
// literature comparison, and the model-generated discussion.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Input carries everything the assembler needs. Trajectory and Metrics
// are nil for structure-only runs; Discussion may be the placeholder.
type Input struct {
	TaskID             string
	SessionID          string
	Element            string
	Face               string
	Structure          *domain.Structure
	Trajectory         *domain.Trajectory
	Metrics            *domain.MetricSet
	Verdict            domain.AgreementVerdict
	Discussion         string
	DiscussionDegraded bool
	Artifacts          map[string]string
	GeneratedAt        time.Time
}

// Assemble builds the report model and renders its markdown.
func Assemble(in Input) (*domain.Report, error) {
	if in.Structure == nil || len(in.Structure.Atoms) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyStructure, "assemble report")
	}

	r := &domain.Report{
		TaskID:             in.TaskID,
		Element:            in.Element,
		Face:               in.Face,
		NumAtoms:           in.Structure.NumAtoms(),
		Metrics:            in.Metrics,
		Verdict:            &in.Verdict,
		Discussion:         in.Discussion,
		DiscussionDegraded: in.DiscussionDegraded,
		Artifacts:          in.Artifacts,
		GeneratedAt:        in.GeneratedAt,
	}
	if t := in.Trajectory; t != nil {
		r.InitialEnergy = t.InitialEnergy()
		r.FinalEnergy = t.FinalEnergy()
		r.Converged = t.Converged
	}

	r.Markdown = render(in)
	return r, nil
}

// WriteFile writes the rendered markdown to dir using the report naming
// contract and records the path in the report's artifact map.
func WriteFile(dir string, r *domain.Report) (string, error) {
	name := fmt.Sprintf(constants.ReportMDFormat, r.Element, r.Face)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(r.Markdown), 0o644); err != nil { //nolint:gosec // report is world-readable
		return "", errors.Wrapf(err, "write report %s", path)
	}
	if r.Artifacts == nil {
		r.Artifacts = map[string]string{}
	}
	r.Artifacts["report_md"] = path
	return path, nil
}

func render(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Relaxation Report: %s(%s)\n\n", in.Element, in.Face)
	fmt.Fprintf(&b, "*Generated: %s*\n", in.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "*Task ID: %s*\n", in.TaskID)
	if in.SessionID != "" {
		fmt.Fprintf(&b, "*Session ID: %s*\n", in.SessionID)
	}
	b.WriteString("\n")

	renderStructure(&b, in)
	renderRelaxation(&b, in)
	renderMetrics(&b, in)
	renderComparison(&b, in)
	renderDiscussion(&b, in)
	renderArtifacts(&b, in)

	b.WriteString("---\n")
	b.WriteString("*Generated by atomic*\n")
	return b.String()
}

func renderStructure(b *strings.Builder, in Input) {
	b.WriteString("## Structure\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(b, "| Element | %s |\n", in.Element)
	fmt.Fprintf(b, "| Surface Face | %s |\n", in.Face)
	fmt.Fprintf(b, "| Chemical Formula | %s |\n", in.Structure.Formula)
	fmt.Fprintf(b, "| Number of Atoms | %d |\n\n", in.Structure.NumAtoms())
}

func renderRelaxation(b *strings.Builder, in Input) {
	t := in.Trajectory
	if t == nil {
		b.WriteString("## Relaxation\n\nRelaxation was not performed for this run.\n\n")
		return
	}

	b.WriteString("## Relaxation\n\n")
	b.WriteString("| State | Energy (eV) |\n")
	b.WriteString("|-------|-------------|\n")
	fmt.Fprintf(b, "| Initial (unrelaxed) | %.4f |\n", t.InitialEnergy())
	fmt.Fprintf(b, "| Final (relaxed) | %.4f |\n", t.FinalEnergy())
	fmt.Fprintf(b, "| **Change** | **%.4f** |\n\n", t.EnergyChange())

	converged := "no"
	if t.Converged {
		converged = "yes"
	}
	fmt.Fprintf(b, "Converged: %s (%d steps)\n\n", converged, len(t.Samples)-1)
}

func renderMetrics(b *strings.Builder, in Input) {
	m := in.Metrics
	if m == nil {
		return
	}

	b.WriteString("## Surface Metrics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| d12 change | %+.2f%% |\n", m.D12ChangePct)
	fmt.Fprintf(b, "| d23 change | %+.2f%% |\n", m.D23ChangePct)
	fmt.Fprintf(b, "| Mean displacement | %.4f Å |\n", m.MeanDisplacement)
	fmt.Fprintf(b, "| Max displacement | %.4f Å |\n", m.MaxDisplacement)
	fmt.Fprintf(b, "| Surface mean displacement | %.4f Å |\n", m.SurfaceMeanDisplacement)
	fmt.Fprintf(b, "| Surface max displacement | %.4f Å |\n", m.SurfaceMaxDisplacement)
	fmt.Fprintf(b, "| Layers detected | %d |\n\n", m.NumLayers)
}

func renderComparison(b *strings.Builder, in Input) {
	if in.Metrics == nil {
		return
	}

	b.WriteString("## Literature Comparison\n\n")
	v := in.Verdict
	if !v.HasReference() {
		b.WriteString("No literature reference data is available for this surface. ")
		b.WriteString("Agreement: **NO_REFERENCE**.\n\n")
		return
	}

	fmt.Fprintf(b, "Agreement: **%s**", strings.ToUpper(v.Label.String()))
	if v.Deviation != nil {
		fmt.Fprintf(b, " (mean deviation %.2f percentage points)", *v.Deviation)
	}
	b.WriteString("\n\n")

	b.WriteString("| Source | Method | d12 (%) | d23 (%) |\n")
	b.WriteString("|--------|--------|---------|--------|\n")
	fmt.Fprintf(b, "| This work | LJ relaxation | %+.2f | %+.2f |\n",
		in.Metrics.D12ChangePct, in.Metrics.D23ChangePct)
	for _, rec := range v.Records {
		fmt.Fprintf(b, "| %s | %s | %+.1f | %+.1f |\n",
			rec.Citation, rec.Method, rec.D12ChangePct, rec.D23ChangePct)
	}
	b.WriteString("\n")
}

func renderDiscussion(b *strings.Builder, in Input) {
	if in.Discussion == "" {
		return
	}

	b.WriteString("## Discussion\n\n")
	if in.DiscussionDegraded {
		b.WriteString("> Note: automated discussion generation was unavailable; ")
		b.WriteString("this section holds a placeholder.\n\n")
	}
	b.WriteString(in.Discussion)
	b.WriteString("\n\n")
}

func renderArtifacts(b *strings.Builder, in Input) {
	if len(in.Artifacts) == 0 {
		return
	}

	b.WriteString("## Artifacts\n\n")
	for _, key := range []string{"unrelaxed_xyz", "relaxed_xyz", "relaxation_png", "report_md"} {
		if path, ok := in.Artifacts[key]; ok {
			fmt.Fprintf(b, "- `%s`\n", filepath.Base(path))
		}
	}
	b.WriteString("\n")
}
