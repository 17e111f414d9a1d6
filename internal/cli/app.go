package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/atomiclab/atomic/internal/ai"
	"github.com/atomiclab/atomic/internal/config"
	"github.com/atomiclab/atomic/internal/logstream"
	"github.com/atomiclab/atomic/internal/pipeline"
	"github.com/atomiclab/atomic/internal/reference"
	"github.com/atomiclab/atomic/internal/relax"
	"github.com/atomiclab/atomic/internal/session"
	"github.com/atomiclab/atomic/internal/surface"
)

// appContext carries the process-wide registries and flags into the
// subcommand constructors.
type appContext struct {
	flags    *GlobalFlags
	streams  *logstream.Registry
	sessions *session.Registry
}

// loadConfig loads and validates the layered configuration with the CLI
// logger attached to the context, then applies the registry knobs. The
// registries predate configuration loading because the logger tee needs
// them at startup, so retention and TTL are pushed in here.
func (a *appContext) loadConfig(ctx context.Context) (context.Context, *config.Config, error) {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return ctx, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return ctx, nil, err
	}

	a.streams.SetRetention(cfg.Log.RetentionLines)
	a.sessions.SetTTL(cfg.Session.TTL)
	return ctx, cfg, nil
}

// buildOrchestrator wires the pipeline from configuration. The discussion
// generator is optional: a missing API key degrades every discussion to
// the placeholder instead of failing.
func (a *appContext) buildOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, error) {
	store := reference.NewStore()

	var refs reference.Provider = store
	if cfg.Reference.Endpoint != "" {
		refs = reference.NewClient(cfg.Reference.Endpoint, cfg.Reference.APIKeyEnvVar, cfg.Reference.Timeout, store)
	}

	var discuss ai.Generator
	gemini, err := ai.NewGeminiGenerator(ctx, cfg.AI.Model, cfg.AI.APIKeyEnvVar, cfg.AI.Timeout)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("discussion model unavailable, reports will carry placeholders")
	} else {
		discuss = ai.NewRetryingGenerator(gemini, cfg.AI.RetryBackoff)
	}

	return pipeline.NewOrchestrator(pipeline.Options{
		Config:    cfg,
		Provider:  surface.NewBuilder(),
		Engine:    relax.NewLJEngine(),
		Reference: refs,
		Discuss:   discuss,
		Sessions:  a.sessions,
		Logs:      a.streams,
	})
}
