package domain

import "time"

// Report is the structured final document for a task: deterministic
// metadata plus the LLM-generated discussion. Immutable once written
// to disk.
type Report struct {
	// TaskID identifies the task this report belongs to.
	TaskID string `json:"task_id"`

	// Element and Face identify the analyzed surface.
	Element string `json:"element"`
	Face    string `json:"face"`

	// NumAtoms is the atom count of the analyzed structure.
	NumAtoms int `json:"num_atoms"`

	// InitialEnergy and FinalEnergy bracket the relaxation trajectory, in eV.
	// Zero for structure-only runs.
	InitialEnergy float64 `json:"initial_energy,omitempty"`
	FinalEnergy   float64 `json:"final_energy,omitempty"`

	// Converged reports whether the optimizer converged within budget.
	Converged bool `json:"converged,omitempty"`

	// Metrics is the derived metric set; nil for structure-only runs.
	Metrics *MetricSet `json:"metrics,omitempty"`

	// Verdict is the agreement verdict; nil for structure-only runs.
	Verdict *AgreementVerdict `json:"verdict,omitempty"`

	// Discussion is the LLM-generated narrative, treated as opaque
	// markdown. Set to a placeholder string when generation degrades.
	Discussion string `json:"discussion,omitempty"`

	// DiscussionDegraded is true when the discussion call failed after
	// retry and the placeholder was substituted.
	DiscussionDegraded bool `json:"discussion_degraded,omitempty"`

	// Artifacts maps artifact kinds ("unrelaxed_xyz", "relaxed_xyz",
	// "visualization", "report_md") to file paths.
	Artifacts map[string]string `json:"artifacts,omitempty"`

	// GeneratedAt is the report assembly timestamp (UTC).
	GeneratedAt time.Time `json:"generated_at"`

	// Markdown is the rendered report body as written to disk.
	Markdown string `json:"-"`
}
