package constants

// TaskStatus represents the state of a pipeline task in the atomic state machine.
// Status values use snake_case for JSON serialization compatibility.
type TaskStatus string

// Task status constants define the valid states a task can be in.
// These follow the pipeline state machine:
//
//	Pending → Generating
//	Generating → Relaxing, Succeeded (relax disabled: structure-only), Failed
//	Relaxing → Extracting, Failed
//	Extracting → Comparing, Failed
//	Comparing → Reporting, Failed
//	Reporting → Succeeded, Failed
const (
	// TaskStatusPending indicates a task has been created but not yet started.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusGenerating indicates the structure provider is building the
	// initial atomic surface.
	TaskStatusGenerating TaskStatus = "generating"

	// TaskStatusRelaxing indicates the relaxation engine is optimizing the
	// structure. Skipped entirely when relaxation is disabled by options.
	TaskStatusRelaxing TaskStatus = "relaxing"

	// TaskStatusExtracting indicates interlayer and displacement metrics are
	// being computed from the unrelaxed/relaxed pair.
	TaskStatusExtracting TaskStatus = "extracting"

	// TaskStatusComparing indicates metrics are being scored against
	// literature reference records.
	TaskStatusComparing TaskStatus = "comparing"

	// TaskStatusReporting indicates the report assembler is producing the
	// final document, including the LLM discussion section.
	TaskStatusReporting TaskStatus = "reporting"

	// TaskStatusSucceeded indicates the task reached a terminal success
	// state. A structure-only run (relaxation disabled) also ends here.
	TaskStatusSucceeded TaskStatus = "succeeded"

	// TaskStatusFailed indicates the task was absorbed by a fatal stage
	// failure. Partial artifacts are left on disk for inspection.
	TaskStatusFailed TaskStatus = "failed"
)

// String returns the string representation of the TaskStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s TaskStatus) String() string {
	return string(s)
}

// AgreementLabel is the categorical half of an agreement verdict.
type AgreementLabel string

// Agreement labels, ordered best to worst. NoReference is not a fault:
// an absent literature record is an expected, common case.
const (
	AgreementExcellent   AgreementLabel = "excellent"
	AgreementGood        AgreementLabel = "good"
	AgreementFair        AgreementLabel = "fair"
	AgreementPoor        AgreementLabel = "poor"
	AgreementNoReference AgreementLabel = "no_reference"
)

// String returns the string representation of the AgreementLabel.
func (l AgreementLabel) String() string {
	return string(l)
}
