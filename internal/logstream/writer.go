package logstream

import (
	"encoding/json"
	"io"
	"strings"
)

// TeeWriter wraps an io.Writer and mirrors log entries that carry a
// task_id field into the matching task's log stream. It is installed as
// the zerolog sink so every stage log emission becomes pollable by an
// external observer without a second logging call site.
type TeeWriter struct {
	registry *Registry
	target   io.Writer
}

// NewTeeWriter creates a TeeWriter that mirrors task-tagged entries to
// the registry while passing all writes through to target.
func NewTeeWriter(registry *Registry, target io.Writer) *TeeWriter {
	return &TeeWriter{
		registry: registry,
		target:   target,
	}
}

// taskFields is the minimal shape extracted from a JSON log entry.
type taskFields struct {
	TaskID string `json:"task_id"`
}

// Write implements io.Writer. It parses JSON log entries to extract
// task_id and mirrors matching entries into the task's log stream.
// Entries without a task_id pass through untouched.
func (w *TeeWriter) Write(p []byte) (n int, err error) {
	w.mirror(p)
	return w.target.Write(p)
}

// mirror attempts to parse the entry and append it to the task stream.
// Failures are ignored to avoid disrupting normal logging.
func (w *TeeWriter) mirror(p []byte) {
	var fields taskFields
	if err := json.Unmarshal(p, &fields); err != nil {
		return
	}
	if fields.TaskID == "" {
		return
	}
	w.registry.AppendRaw(fields.TaskID, strings.TrimRight(string(p), "\n"))
}
