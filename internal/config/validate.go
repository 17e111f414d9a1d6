package config

import (
	"github.com/atomiclab/atomic/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Relax steps and max_concurrent must be positive
//   - Compare thresholds must be positive and strictly increasing
//   - Reference and AI timeouts must be positive
//   - Log retention must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateRelaxConfig(&cfg.Relax); err != nil {
		return err
	}
	if err := validateCompareConfig(&cfg.Compare); err != nil {
		return err
	}
	if err := validateAIConfig(&cfg.AI); err != nil {
		return err
	}
	if cfg.Reference.Timeout <= 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"reference.timeout must be positive, got %s", cfg.Reference.Timeout)
	}
	if cfg.Log.RetentionLines < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.retention_lines must be at least 1, got %d", cfg.Log.RetentionLines)
	}
	if cfg.Session.TTL < 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"session.ttl must not be negative, got %s", cfg.Session.TTL)
	}

	return nil
}

// validateRelaxConfig checks relaxation-stage configuration values.
func validateRelaxConfig(cfg *RelaxConfig) error {
	if cfg.Steps < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidRelax,
			"relax.steps must be at least 1, got %d", cfg.Steps)
	}
	if cfg.MaxConcurrent < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidRelax,
			"relax.max_concurrent must be at least 1, got %d", cfg.MaxConcurrent)
	}
	return nil
}

// validateCompareConfig checks the agreement threshold ordering.
// Thresholds must form a strictly increasing positive sequence so every
// deviation maps to exactly one category.
func validateCompareConfig(cfg *CompareConfig) error {
	if cfg.Excellent <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidCompare,
			"compare.excellent must be positive, got %g", cfg.Excellent)
	}
	if cfg.Good <= cfg.Excellent {
		return errors.Wrapf(errors.ErrConfigInvalidCompare,
			"compare.good (%g) must exceed compare.excellent (%g)", cfg.Good, cfg.Excellent)
	}
	if cfg.Fair <= cfg.Good {
		return errors.Wrapf(errors.ErrConfigInvalidCompare,
			"compare.fair (%g) must exceed compare.good (%g)", cfg.Fair, cfg.Good)
	}
	return nil
}

// validateAIConfig checks LLM generator configuration values.
func validateAIConfig(cfg *AIConfig) error {
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.RetryBackoff < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.retry_backoff must not be negative, got %s", cfg.RetryBackoff)
	}
	if cfg.Model == "" {
		return errors.Wrap(errors.ErrConfigInvalidAI, "ai.model must not be empty")
	}
	return nil
}
