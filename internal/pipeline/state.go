// Package pipeline orchestrates the relaxation workflow: structure
// generation, relaxation, metric extraction, literature comparison, and
// report assembly, with a state machine tracking each task.
//
// Import rules:
//   - CAN import every internal package except internal/cli
//   - MUST NOT import: internal/cli
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

// ValidTransitions defines all allowed state transitions in the task
// lifecycle. Format: from_status -> []to_statuses
//
// The state machine follows this flow:
//
//	Pending → Generating
//	Generating → Relaxing, Succeeded (structure-only), Failed
//	Relaxing → Extracting, Failed
//	Extracting → Comparing, Failed
//	Comparing → Reporting, Failed
//	Reporting → Succeeded, Failed
//
// Generating → Succeeded covers structure-only runs that skip every
// downstream stage. Failed absorbs: no transition leaves it.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.TaskStatus][]constants.TaskStatus{
	constants.TaskStatusPending: {constants.TaskStatusGenerating},
	constants.TaskStatusGenerating: {
		constants.TaskStatusRelaxing,
		constants.TaskStatusSucceeded, // structure-only run
		constants.TaskStatusFailed,
	},
	constants.TaskStatusRelaxing:   {constants.TaskStatusExtracting, constants.TaskStatusFailed},
	constants.TaskStatusExtracting: {constants.TaskStatusComparing, constants.TaskStatusFailed},
	constants.TaskStatusComparing:  {constants.TaskStatusReporting, constants.TaskStatusFailed},
	constants.TaskStatusReporting:  {constants.TaskStatusSucceeded, constants.TaskStatusFailed},
}

// terminalStatuses defines states where no further transitions are allowed.
// Terminal states are those NOT present as keys in ValidTransitions.
// MAINTENANCE: When adding new statuses, update both ValidTransitions and this map.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStatuses = map[constants.TaskStatus]bool{
	constants.TaskStatusSucceeded: true,
	constants.TaskStatusFailed:    true,
}

// IsValidTransition checks if a transition from one status to another is
// allowed. Returns false for transitions from terminal states or to the
// same state.
func IsValidTransition(from, to constants.TaskStatus) bool {
	if from == to {
		return false
	}

	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus returns true for states where no further transitions
// are allowed. Terminal states: Succeeded, Failed.
func IsTerminalStatus(status constants.TaskStatus) bool {
	return terminalStatuses[status]
}

// GetValidTargetStatuses returns all valid target statuses for a given
// status. Returns nil for terminal states or unknown statuses.
func GetValidTargetStatuses(from constants.TaskStatus) []constants.TaskStatus {
	targets, exists := ValidTransitions[from]
	if !exists {
		return nil
	}
	result := make([]constants.TaskStatus, len(targets))
	copy(result, targets)
	return result
}

// Transition validates and applies a state transition to the task.
// It records the transition in the task's history and updates timestamps.
//
// Transitions to Failed ignore context cancellation: cancellation is
// itself a failure cause, and a task must never be left stranded in a
// non-terminal status because its context died.
//
// Returns an error if:
//   - ctx is canceled (unless transitioning to Failed)
//   - task is nil
//   - The transition is invalid (returns wrapped ErrInvalidTransition)
func Transition(ctx context.Context, task *domain.Task, to constants.TaskStatus, reason string) error {
	if to != constants.TaskStatusFailed {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	if task == nil {
		return fmt.Errorf("%w: task is nil", atomicerrors.ErrInvalidTransition)
	}

	from := task.Status
	if !IsValidTransition(from, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			atomicerrors.ErrInvalidTransition, from, to)
	}

	now := time.Now().UTC()

	task.Transitions = append(task.Transitions, domain.Transition{
		FromStatus: from,
		ToStatus:   to,
		Timestamp:  now,
		Reason:     reason,
	})
	task.Status = to
	task.UpdatedAt = now

	if IsTerminalStatus(to) {
		task.CompletedAt = &now
	}

	return nil
}
