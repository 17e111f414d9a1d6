// Package domain provides shared domain types for the atomic pipeline system.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"time"

	"github.com/atomiclab/atomic/internal/constants"
)

// SurfaceSpec is a validated, structured pipeline request. Free-form text is
// resolved into one of these by an external intent-resolution collaborator
// before it reaches the orchestrator.
type SurfaceSpec struct {
	// Element is the chemical symbol ("Cu", "Pt", ...) or compound formula
	// for 2D materials ("MoS2").
	Element string `json:"element"`

	// Face is the surface face identifier: "100", "111", "110" for FCC
	// metals, "graphene" or "2d" for layered materials.
	Face string `json:"face"`

	// Relax controls whether the relaxation stage runs. When false the
	// task ends in a structure-only success after the unrelaxed structure
	// is persisted.
	Relax bool `json:"relax"`

	// Steps is the optimizer step budget. Zero means the configured default.
	Steps int `json:"steps,omitempty"`
}

// Task represents one end-to-end pipeline execution for a single
// element/face request. Tasks are owned exclusively by the orchestrator
// and are terminal once status leaves the running stages.
//
// Example JSON representation:
//
//	{
//	    "id": "task-20260115-093002-a1b2",
//	    "session_id": "f4f9...",
//	    "spec": {"element": "Cu", "face": "100", "relax": true},
//	    "status": "succeeded",
//	    "created_at": "2026-01-15T09:30:02Z",
//	    "output_dir": "/home/u/.atomic/output/Cu_100_task-20260115-093002-a1b2"
//	}
type Task struct {
	// ID is the unique identifier for the task.
	// Format: task-YYYYMMDD-HHMMSS-xxxx (short random suffix).
	ID string `json:"id"`

	// SessionID links this task to the session that submitted it.
	SessionID string `json:"session_id"`

	// Spec is the validated surface request this task executes.
	Spec SurfaceSpec `json:"spec"`

	// Status represents the current state in the task lifecycle.
	Status constants.TaskStatus `json:"status"`

	// OutputDir is the task-scoped directory holding all artifacts.
	// Allocated on the pending → generating transition.
	OutputDir string `json:"output_dir,omitempty"`

	// Transitions is the audit trail of all status changes.
	Transitions []Transition `json:"transitions,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is when the task reached a terminal status (nil before).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Transition records a single status change in a task's history.
type Transition struct {
	// FromStatus is the status before the transition.
	FromStatus constants.TaskStatus `json:"from_status"`

	// ToStatus is the status after the transition.
	ToStatus constants.TaskStatus `json:"to_status"`

	// Timestamp is when the transition occurred (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Reason is an optional explanation for the transition.
	Reason string `json:"reason,omitempty"`
}

// FailureDescriptor is returned to the caller when a task fails. It carries
// a single human-readable message plus the task's full log stream for
// diagnostic replay.
type FailureDescriptor struct {
	// TaskID identifies the failed task.
	TaskID string `json:"task_id"`

	// Stage is the status the task was in when the failure occurred.
	Stage constants.TaskStatus `json:"stage"`

	// Message is the single human-readable failure summary.
	Message string `json:"message"`

	// LogLines is the task's full log stream at failure time.
	LogLines []string `json:"log_lines,omitempty"`
}
