package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

func fullInput() Input {
	dev := 0.21
	return Input{
		TaskID:    "task-20260115-093002-a1b2",
		SessionID: "bench-7",
		Element:   "Cu",
		Face:      "100",
		Structure: &domain.Structure{
			Formula: "Cu36",
			Atoms:   make([]domain.Atom, 36),
		},
		Trajectory: &domain.Trajectory{
			Samples: []domain.TrajectorySample{
				{Step: 0, Energy: -120.5},
				{Step: 1, Energy: -121.9},
				{Step: 2, Energy: -122.4},
			},
			Converged: true,
		},
		Metrics: &domain.MetricSet{
			D12ChangePct:     -1.92,
			D23ChangePct:     0.61,
			MeanDisplacement: 0.034,
			MaxDisplacement:  0.051,
			NumLayers:        4,
		},
		Verdict: domain.AgreementVerdict{
			Label:     constants.AgreementExcellent,
			Deviation: &dev,
			Records: []domain.ReferenceRecord{
				{
					Element:      "Cu",
					Face:         "100",
					D12ChangePct: -2.1,
					D23ChangePct: 0.8,
					Citation:     "Lindgren et al., Phys. Rev. B 29, 576 (1984)",
					Method:       "LEED",
				},
			},
		},
		Discussion: "The surface layer contracts toward the bulk.",
		Artifacts: map[string]string{
			"unrelaxed_xyz":  "/out/Cu_100_unrelaxed.xyz",
			"relaxed_xyz":    "/out/Cu_100_relaxed.xyz",
			"relaxation_png": "/out/Cu_100_relaxation.png",
		},
		GeneratedAt: time.Date(2026, 1, 15, 9, 30, 2, 0, time.UTC),
	}
}

func TestAssemble_FullReport(t *testing.T) {
	in := fullInput()

	r, err := Assemble(in)
	require.NoError(t, err)

	assert.Equal(t, in.TaskID, r.TaskID)
	assert.Equal(t, 36, r.NumAtoms)
	assert.InDelta(t, -120.5, r.InitialEnergy, 1e-9)
	assert.InDelta(t, -122.4, r.FinalEnergy, 1e-9)
	assert.True(t, r.Converged)
	assert.False(t, r.DiscussionDegraded)

	md := r.Markdown
	assert.Contains(t, md, "# Relaxation Report: Cu(100)")
	assert.Contains(t, md, "*Generated: 2026-01-15 09:30:02*")
	assert.Contains(t, md, "*Session ID: bench-7*")

	for _, heading := range []string{
		"## Structure",
		"## Relaxation",
		"## Surface Metrics",
		"## Literature Comparison",
		"## Discussion",
		"## Artifacts",
	} {
		assert.Contains(t, md, heading)
	}

	assert.Contains(t, md, "| Chemical Formula | Cu36 |")
	assert.Contains(t, md, "| d12 change | -1.92% |")
	assert.Contains(t, md, "Agreement: **EXCELLENT** (mean deviation 0.21 percentage points)")
	assert.Contains(t, md, "| Lindgren et al., Phys. Rev. B 29, 576 (1984) | LEED | -2.1 | +0.8 |")
	assert.Contains(t, md, "The surface layer contracts toward the bulk.")
	assert.Contains(t, md, "- `Cu_100_relaxation.png`")
	assert.Contains(t, md, "*Generated by atomic*")
	assert.NotContains(t, md, "placeholder")
}

func TestAssemble_StructureOnly(t *testing.T) {
	in := fullInput()
	in.Trajectory = nil
	in.Metrics = nil
	in.Verdict = domain.AgreementVerdict{}
	in.Discussion = ""
	delete(in.Artifacts, "relaxed_xyz")
	delete(in.Artifacts, "relaxation_png")

	r, err := Assemble(in)
	require.NoError(t, err)

	md := r.Markdown
	assert.Contains(t, md, "Relaxation was not performed for this run.")
	assert.NotContains(t, md, "## Surface Metrics")
	assert.NotContains(t, md, "## Literature Comparison")
	assert.NotContains(t, md, "## Discussion")
	assert.Zero(t, r.InitialEnergy)
}

func TestAssemble_NoReference(t *testing.T) {
	in := fullInput()
	in.Verdict = domain.AgreementVerdict{Label: constants.AgreementNoReference}

	r, err := Assemble(in)
	require.NoError(t, err)

	assert.Contains(t, r.Markdown, "Agreement: **NO_REFERENCE**")
	assert.Contains(t, r.Markdown, "No literature reference data is available")
	assert.NotContains(t, r.Markdown, "| Source | Method |")
}

func TestAssemble_DegradedDiscussion(t *testing.T) {
	in := fullInput()
	in.Discussion = "placeholder text"
	in.DiscussionDegraded = true

	r, err := Assemble(in)
	require.NoError(t, err)

	assert.True(t, r.DiscussionDegraded)
	assert.Contains(t, r.Markdown, "> Note: automated discussion generation was unavailable")
}

func TestAssemble_EmptyStructure(t *testing.T) {
	in := fullInput()
	in.Structure = nil
	_, err := Assemble(in)
	assert.ErrorIs(t, err, atomicerrors.ErrEmptyStructure)

	in.Structure = &domain.Structure{}
	_, err = Assemble(in)
	assert.ErrorIs(t, err, atomicerrors.ErrEmptyStructure)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	r, err := Assemble(fullInput())
	require.NoError(t, err)

	path, err := WriteFile(dir, r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Cu_100_report.md"), path)
	assert.Equal(t, path, r.Artifacts["report_md"])

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "# Relaxation Report: Cu(100)"))
}

func TestWriteFile_BadDir(t *testing.T) {
	r, err := Assemble(fullInput())
	require.NoError(t, err)

	_, err = WriteFile(filepath.Join(t.TempDir(), "missing", "nested"), r)
	assert.Error(t, err)
}
