// Package errors provides centralized error handling for atomic.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidSpec indicates an unrecognized element/face combination.
	// User-correctable; surfaced before any artifacts are created.
	ErrInvalidSpec = errors.New("invalid surface spec")

	// ErrUnsupportedSurface indicates the structure provider cannot build
	// the requested surface geometry.
	ErrUnsupportedSurface = errors.New("unsupported surface")

	// ErrStructureMismatch indicates the unrelaxed and relaxed structures
	// do not share atom count and ordering. This is an internal invariant
	// violation and is fatal to the task.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrRelaxation indicates the relaxation engine failed.
	// Fatal to the task; partial artifacts are retained on disk.
	ErrRelaxation = errors.New("relaxation failed")

	// ErrGeneration indicates the structure provider failed to build the
	// requested surface. Fatal to the task.
	ErrGeneration = errors.New("structure generation failed")

	// ErrReferenceLookup indicates the network reference lookup failed.
	// Non-fatal: the store degrades to its embedded records.
	ErrReferenceLookup = errors.New("reference lookup failed")

	// ErrInvalidTransition indicates an attempt to make an invalid task
	// state transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotTerminal indicates an attempt to record a task that has
	// not reached a terminal status into a session history.
	ErrTaskNotTerminal = errors.New("task not in terminal status")

	// ErrEmptyStructure indicates a structure with no atoms was supplied
	// where a populated one is required.
	ErrEmptyStructure = errors.New("structure has no atoms")

	// ErrConfigNil indicates a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidCompare indicates invalid agreement threshold
	// configuration (non-positive or non-increasing bounds).
	ErrConfigInvalidCompare = errors.New("invalid compare configuration")

	// ErrConfigInvalidRelax indicates invalid relaxation configuration.
	ErrConfigInvalidRelax = errors.New("invalid relax configuration")

	// ErrConfigInvalidLog indicates invalid log stream configuration.
	ErrConfigInvalidLog = errors.New("invalid log configuration")

	// ErrConfigInvalidAI indicates an invalid AI configuration value.
	ErrConfigInvalidAI = errors.New("invalid AI configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrMaxRetriesExceeded indicates the maximum retry attempts have been reached.
	ErrMaxRetriesExceeded = errors.New("maximum retry attempts exceeded")

	// ErrAIEmptyResponse indicates that the AI returned an empty response.
	ErrAIEmptyResponse = errors.New("AI returned empty response")

	// ErrAINotConfigured indicates no API key is available for the
	// discussion generator.
	ErrAINotConfigured = errors.New("AI generator not configured")
)
