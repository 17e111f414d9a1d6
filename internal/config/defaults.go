package config

import (
	"github.com/spf13/viper"

	"github.com/atomiclab/atomic/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			// Dir: empty means ~/.atomic/output, resolved at load time.
			Dir: "",
		},
		Relax: RelaxConfig{
			// Steps: 200 matches the step budget the reference MACE
			// workflows converge within for small metal slabs.
			Steps: constants.DefaultRelaxationSteps,

			// MaxConcurrent: 1 treats the relaxation engine as a
			// bottleneck resource; raise only on multi-accelerator hosts.
			MaxConcurrent: constants.DefaultMaxConcurrentRelaxations,
		},
		Compare: CompareConfig{
			// Thresholds in percentage points of interlayer change.
			Excellent: 0.5,
			Good:      1.5,
			Fair:      3.0,
		},
		Reference: ReferenceConfig{
			// Endpoint: empty disables network lookups; embedded
			// literature records are always available.
			Endpoint:     "",
			APIKeyEnvVar: "MP_API_KEY",
			Timeout:      constants.DefaultReferenceTimeout,
		},
		AI: AIConfig{
			Model:        "gemini-2.0-flash",
			APIKeyEnvVar: "GEMINI_API_KEY",
			Timeout:      constants.DefaultAITimeout,
			RetryBackoff: constants.DiscussionRetryBackoff,
		},
		Log: LogConfig{
			RetentionLines: constants.DefaultLogRetentionLines,
		},
		Session: SessionConfig{
			// TTL: 0 keeps sessions for the process lifetime.
			TTL: 0,
		},
	}
}

// setDefaults registers all default values on a Viper instance so that
// partially specified config files inherit the remaining defaults.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("relax.steps", d.Relax.Steps)
	v.SetDefault("relax.max_concurrent", d.Relax.MaxConcurrent)
	v.SetDefault("compare.excellent", d.Compare.Excellent)
	v.SetDefault("compare.good", d.Compare.Good)
	v.SetDefault("compare.fair", d.Compare.Fair)
	v.SetDefault("reference.endpoint", d.Reference.Endpoint)
	v.SetDefault("reference.api_key_env_var", d.Reference.APIKeyEnvVar)
	v.SetDefault("reference.timeout", d.Reference.Timeout)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.api_key_env_var", d.AI.APIKeyEnvVar)
	v.SetDefault("ai.timeout", d.AI.Timeout)
	v.SetDefault("ai.retry_backoff", d.AI.RetryBackoff)
	v.SetDefault("log.retention_lines", d.Log.RetentionLines)
	v.SetDefault("session.ttl", d.Session.TTL)
}
