// Package constants provides centralized constant values used throughout atomic.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by atomic for organizing data.
const (
	// AtomicHome is the hidden directory name where atomic stores all its data.
	// This directory is created in the user's home directory.
	AtomicHome = ".atomic"

	// OutputDir is the directory name under AtomicHome where task artifacts
	// (structure files, reports) are written.
	OutputDir = "output"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Artifact file name formats. These are a byte-for-byte naming contract
// shared with external consumers; changing them breaks compatibility.
const (
	// UnrelaxedXYZFormat names the unrelaxed structure artifact:
	// fmt.Sprintf(UnrelaxedXYZFormat, element, face).
	UnrelaxedXYZFormat = "%s_%s_unrelaxed.xyz"

	// RelaxedXYZFormat names the relaxed structure artifact.
	RelaxedXYZFormat = "%s_%s_relaxed.xyz"

	// RelaxationPNGFormat names the relaxation trajectory plot.
	RelaxationPNGFormat = "%s_%s_relaxation.png"

	// ReportMDFormat names the final markdown report artifact.
	ReportMDFormat = "%s_%s_report.md"
)

// Relaxation defaults.
const (
	// DefaultRelaxationSteps is the default optimizer step budget.
	DefaultRelaxationSteps = 200

	// DefaultMaxConcurrentRelaxations bounds simultaneous relaxations.
	// The relaxation engine is the dominant resource consumer; excess
	// tasks queue on the semaphore rather than being rejected.
	DefaultMaxConcurrentRelaxations = 1
)

// Timeout and retry configuration for network-bound collaborators.
const (
	// DefaultAITimeout is the maximum duration for one LLM discussion call.
	DefaultAITimeout = 2 * time.Minute

	// DefaultReferenceTimeout is the maximum duration for a network
	// reference lookup. Lookups are never retried: a miss degrades to the
	// embedded records.
	DefaultReferenceTimeout = 10 * time.Second

	// DiscussionRetryBackoff is the wait before the single retry of a
	// failed discussion generation call.
	DiscussionRetryBackoff = 2 * time.Second
)

// Log stream retention defaults.
const (
	// DefaultLogRetentionLines bounds each task's log stream; the oldest
	// lines are dropped beyond this window.
	DefaultLogRetentionLines = 500
)
