// Package testutil provides testing utilities for atomic.
//
// This package contains mock errors and fake collaborators used across
// test files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockRelaxFailed indicates a mock relaxation engine failure.
	ErrMockRelaxFailed = errors.New("relaxation engine failed")

	// ErrMockBuildFailed indicates a mock structure provider failure.
	ErrMockBuildFailed = errors.New("structure build failed")

	// ErrMockLookupFailed indicates a mock reference lookup failure.
	ErrMockLookupFailed = errors.New("reference lookup failed")

	// ErrMockDiscussFailed indicates a mock discussion generator failure.
	ErrMockDiscussFailed = errors.New("discussion generation failed")

	// ErrMockNetwork indicates a mock network error occurred.
	ErrMockNetwork = errors.New("network error")
)
