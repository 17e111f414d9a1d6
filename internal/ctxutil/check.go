// Package ctxutil provides context helpers shared across the pipeline.
package ctxutil

import "context"

// Canceled reports whether ctx is done, returning its error (Canceled or
// DeadlineExceeded) when it is and nil otherwise. Called at the entry of
// every blocking operation so canceled runs bail out before doing work.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
