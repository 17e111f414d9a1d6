// Package relax provides structure relaxation. The built-in engine runs a
// damped steepest-descent minimization over a pairwise Lennard-Jones
// potential with periodic in-plane boundary conditions.
package relax

import (
	"context"

	"github.com/atomiclab/atomic/internal/domain"
)

// Engine minimizes the energy of a structure. Implementations must not
// mutate the input; they return a relaxed copy and the energy trajectory.
type Engine interface {
	// Relax minimizes s for at most maxSteps steps. The returned
	// trajectory records the energy at each step and whether the force
	// criterion was met before the step budget ran out.
	Relax(ctx context.Context, s *domain.Structure, maxSteps int) (*domain.Structure, *domain.Trajectory, error)
}
