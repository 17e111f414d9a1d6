package ai

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/atomiclab/atomic/internal/errors"
)

// timeSleep wraps time.After so tests can stub the backoff wait.
//
//nolint:gochecknoglobals // Required for test mocking
var timeSleep = func(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// isRetryable determines whether a discussion failure should be retried.
// Returns false for context errors, missing configuration, and auth
// failures; transient errors (network, rate limits, empty responses)
// retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if stderrors.Is(err, errors.ErrAINotConfigured) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "api key") ||
		strings.Contains(errStr, "authentication") ||
		strings.Contains(errStr, "permission denied") {
		return false
	}

	return true
}

// RetryingGenerator wraps a Generator with a single retry after a fixed
// backoff. It implements the discussion failure policy: one retry for
// transient errors, then the caller degrades to a placeholder.
type RetryingGenerator struct {
	inner   Generator
	backoff time.Duration
}

// NewRetryingGenerator wraps gen with retry-once behavior.
func NewRetryingGenerator(gen Generator, backoff time.Duration) *RetryingGenerator {
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	return &RetryingGenerator{inner: gen, backoff: backoff}
}

// Discuss attempts the discussion, retrying once after the backoff when
// the first attempt fails with a retryable error.
func (r *RetryingGenerator) Discuss(ctx context.Context, req DiscussionRequest) (string, error) {
	text, err := r.inner.Discuss(ctx, req)
	if err == nil {
		return text, nil
	}
	if !isRetryable(err) {
		return "", err
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Dur("backoff", r.backoff).
		Msg("discussion generation failed, retrying once")

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "discussion retry")
	case <-timeSleep(r.backoff):
	}

	text, err = r.inner.Discuss(ctx, req)
	if err != nil {
		return "", errors.Wrapf(errors.ErrMaxRetriesExceeded, "discussion: %v", err)
	}
	return text, nil
}
