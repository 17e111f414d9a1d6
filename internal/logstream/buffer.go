// Package logstream provides bounded, append-only, per-task log buffers.
//
// Each task owns a monotonically growing sequence of timestamped lines.
// Writers append under a single per-task mutation point; readers poll at
// any cadence and always observe a prefix-consistent view (no torn reads,
// no reordering). Retention is bounded: the oldest lines are dropped once
// a stream exceeds its configured window.
package logstream

import (
	"fmt"
	"sync"
	"time"

	"github.com/atomiclab/atomic/internal/clock"
	"github.com/atomiclab/atomic/internal/constants"
)

// Registry is a process-wide collection of task-scoped log streams.
// It is injected into the orchestrator at construction so tests can
// instantiate isolated instances per test case.
type Registry struct {
	mu        sync.RWMutex
	streams   map[string]*stream
	retention int
	clk       clock.Clock
}

// stream is one task's bounded line buffer.
type stream struct {
	mu    sync.Mutex
	lines []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithRetention overrides the per-stream retention window.
func WithRetention(lines int) Option {
	return func(r *Registry) {
		if lines > 0 {
			r.retention = lines
		}
	}
}

// WithClock overrides the clock used for line timestamps.
func WithClock(clk clock.Clock) Option {
	return func(r *Registry) {
		r.clk = clk
	}
}

// NewRegistry creates an empty log stream registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		streams:   make(map[string]*stream),
		retention: constants.DefaultLogRetentionLines,
		clk:       clock.RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetRetention reconfigures the per-stream retention window. The
// registry is built before configuration is loaded, so the configured
// window arrives through this setter. Non-positive values are ignored.
func (r *Registry) SetRetention(lines int) {
	if lines <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retention = lines
}

func (r *Registry) retentionWindow() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.retention
}

// Append adds a timestamped line to the task's stream, creating the
// stream on first use. Lines beyond the retention window are dropped
// oldest-first.
func (r *Registry) Append(taskID, line string) {
	stamped := fmt.Sprintf("%s %s", r.clk.Now().UTC().Format(time.RFC3339), line)
	r.AppendRaw(taskID, stamped)
}

// AppendRaw adds a line without a timestamp prefix. Used by the zerolog
// tee writer, whose entries already carry a timestamp field.
func (r *Registry) AppendRaw(taskID, line string) {
	s := r.get(taskID, true)
	retention := r.retentionWindow()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	if over := len(s.lines) - retention; over > 0 {
		// Copy rather than re-slice so dropped lines become collectable.
		kept := make([]string, retention)
		copy(kept, s.lines[over:])
		s.lines = kept
	}
}

// Poll returns up to maxLines of the most recent lines for the task, in
// original emission order. A non-positive maxLines returns all retained
// lines. Polling an unknown task returns nil, not an error: an observer
// may start polling before the task emits its first line.
func (r *Registry) Poll(taskID string, maxLines int) []string {
	s := r.get(taskID, false)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.lines)
	if maxLines > 0 && maxLines < n {
		n = maxLines
	}
	out := make([]string, n)
	copy(out, s.lines[len(s.lines)-n:])
	return out
}

// Len returns the number of retained lines for the task.
func (r *Registry) Len(taskID string) int {
	s := r.get(taskID, false)
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// get returns the task's stream, creating it when create is set.
func (r *Registry) get(taskID string, create bool) *stream {
	r.mu.RLock()
	s, ok := r.streams[taskID]
	r.mu.RUnlock()
	if ok || !create {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.streams[taskID]; ok {
		return s
	}
	s = &stream{}
	r.streams[taskID] = s
	return s
}
