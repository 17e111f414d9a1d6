// Package config provides configuration management for atomic with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (ATOMIC_* prefix)
//  2. Project config (.atomic/config.yaml)
//  3. Global config (~/.atomic/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for atomic.
// It contains all configuration sections for the application.
type Config struct {
	// Output contains settings for artifact output directories.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Relax contains settings for the relaxation stage.
	Relax RelaxConfig `yaml:"relax" mapstructure:"relax"`

	// Compare contains the agreement scoring thresholds.
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`

	// Reference contains settings for the networked reference lookup.
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`

	// AI contains settings for the LLM discussion generator.
	AI AIConfig `yaml:"ai" mapstructure:"ai"`

	// Log contains settings for per-task log streams.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Session contains settings for the session registry.
	Session SessionConfig `yaml:"session" mapstructure:"session"`
}

// OutputConfig controls where task artifacts are written.
type OutputConfig struct {
	// Dir is the base output directory. Empty means ~/.atomic/output.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// RelaxConfig contains settings for the relaxation stage.
type RelaxConfig struct {
	// Steps is the default optimizer step budget per task.
	// Default: 200
	Steps int `yaml:"steps" mapstructure:"steps"`

	// MaxConcurrent bounds simultaneous relaxations process-wide.
	// The relaxation engine is CPU/accelerator-bound; excess tasks queue.
	// Default: 1
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// CompareConfig holds the agreement-category deviation thresholds in
// percentage points. These are policy constants, not derived from a
// statistical model, which is why they are configuration rather than code.
// A deviation below Excellent maps to EXCELLENT, below Good to GOOD,
// below Fair to FAIR, anything else to POOR.
type CompareConfig struct {
	// Excellent is the upper bound for the EXCELLENT category.
	// Default: 0.5
	Excellent float64 `yaml:"excellent" mapstructure:"excellent"`

	// Good is the upper bound for the GOOD category.
	// Default: 1.5
	Good float64 `yaml:"good" mapstructure:"good"`

	// Fair is the upper bound for the FAIR category.
	// Default: 3.0
	Fair float64 `yaml:"fair" mapstructure:"fair"`
}

// ReferenceConfig contains settings for the network reference lookup.
// Lookups are optional: any failure degrades to the embedded records.
type ReferenceConfig struct {
	// Endpoint is the reference data service base URL. Empty disables
	// network lookups entirely; only embedded records are used.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// APIKeyEnvVar names the environment variable holding the service
	// API key. Default: "MP_API_KEY"
	APIKeyEnvVar string `yaml:"api_key_env_var" mapstructure:"api_key_env_var"`

	// Timeout bounds one lookup request. No retries: a miss is not a fault.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// AIConfig contains settings for the LLM discussion generator.
type AIConfig struct {
	// Model specifies the generation model.
	// Default: "gemini-2.0-flash"
	Model string `yaml:"model" mapstructure:"model"`

	// APIKeyEnvVar names the environment variable holding the API key.
	// Default: "GEMINI_API_KEY"
	APIKeyEnvVar string `yaml:"api_key_env_var" mapstructure:"api_key_env_var"`

	// Timeout is the maximum duration for one discussion call.
	// Default: 2 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RetryBackoff is the wait before the single retry of a failed call.
	// Default: 2s
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
}

// LogConfig contains settings for per-task log streams.
type LogConfig struct {
	// RetentionLines bounds each task's log stream; oldest lines are
	// dropped beyond this window.
	// Default: 500
	RetentionLines int `yaml:"retention_lines" mapstructure:"retention_lines"`
}

// SessionConfig contains settings for the session registry.
type SessionConfig struct {
	// TTL enables lazy eviction of sessions idle longer than this
	// duration. Zero means sessions live for the process lifetime.
	// Default: 0 (no eviction)
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}
