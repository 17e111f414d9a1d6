package relax

import (
	"context"
	"math"

	"github.com/atomiclab/atomic/internal/ctxutil"
	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Per-element Lennard-Jones parameters. Sigma is derived from the bulk
// nearest-neighbor distance r0 = a/sqrt(2) via sigma = r0 / 2^(1/6);
// epsilon values approximate cohesive-energy scales in eV.
var ljParams = map[string]struct {
	Sigma   float64
	Epsilon float64
}{
	"Cu": {Sigma: 2.2744, Epsilon: 0.40},
	"Pt": {Sigma: 2.4697, Epsilon: 0.66},
	"Au": {Sigma: 2.5705, Epsilon: 0.44},
	"Ag": {Sigma: 2.5768, Epsilon: 0.34},
	"Ni": {Sigma: 2.2177, Epsilon: 0.52},
	"Pd": {Sigma: 2.4508, Epsilon: 0.45},
	"C":  {Sigma: 1.2653, Epsilon: 0.86},
	"Mo": {Sigma: 2.4500, Epsilon: 0.80},
	"S":  {Sigma: 2.1000, Epsilon: 0.35},
}

// Fallback parameters for symbols missing from the table.
var defaultLJ = struct {
	Sigma   float64
	Epsilon float64
}{Sigma: 2.5, Epsilon: 0.40}

// LJEngine is the built-in minimizer. The zero value is not usable; use
// NewLJEngine.
type LJEngine struct {
	fmax     float64 // convergence threshold on the max force component, eV/A
	stepSize float64 // initial steepest-descent step, A
	cutoff   float64 // pair interaction cutoff, A
}

// LJOption configures the built-in engine.
type LJOption func(*LJEngine)

// WithForceThreshold overrides the convergence criterion in eV/A.
func WithForceThreshold(fmax float64) LJOption {
	return func(e *LJEngine) {
		if fmax > 0 {
			e.fmax = fmax
		}
	}
}

// NewLJEngine creates the built-in Lennard-Jones relaxation engine.
func NewLJEngine(opts ...LJOption) *LJEngine {
	e := &LJEngine{
		fmax:     0.05,
		stepSize: 0.05,
		cutoff:   6.0,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Relax runs damped steepest descent until the max force component drops
// below the threshold or maxSteps is exhausted. The in-plane cell is
// treated periodically; z is open.
func (e *LJEngine) Relax(ctx context.Context, s *domain.Structure, maxSteps int) (*domain.Structure, *domain.Trajectory, error) {
	if s == nil || len(s.Atoms) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyStructure, "relax")
	}
	if maxSteps <= 0 {
		return nil, nil, errors.Wrapf(errors.ErrValueOutOfRange, "relax: max steps %d", maxSteps)
	}

	relaxed := s.Copy()
	traj := &domain.Trajectory{
		Samples: make([]domain.TrajectorySample, 0, maxSteps+1),
	}

	step := e.stepSize
	energy, forces := e.evaluate(relaxed)
	traj.Samples = append(traj.Samples, domain.TrajectorySample{Step: 0, Energy: energy})

	for n := 1; n <= maxSteps; n++ {
		if err := ctxutil.Canceled(ctx); err != nil {
			return nil, nil, errors.Wrap(err, "relax")
		}

		if maxComponent(forces) < e.fmax {
			traj.Converged = true
			break
		}

		trial := relaxed.Copy()
		move(trial, forces, step)
		trialEnergy, trialForces := e.evaluate(trial)

		if trialEnergy < energy {
			relaxed, energy, forces = trial, trialEnergy, trialForces
			step = math.Min(step*1.2, 0.2)
		} else {
			// Uphill move: shrink the step and retry from the same point.
			step *= 0.5
			if step < 1e-6 {
				traj.Converged = true
				break
			}
		}
		traj.Samples = append(traj.Samples, domain.TrajectorySample{Step: n, Energy: energy})
	}

	return relaxed, traj, nil
}

// evaluate computes the total LJ energy and per-atom forces with the
// minimum-image convention applied in x and y.
func (e *LJEngine) evaluate(s *domain.Structure) (float64, [][3]float64) {
	n := len(s.Atoms)
	forces := make([][3]float64, n)
	cutoff2 := e.cutoff * e.cutoff
	lx, ly := s.Cell[0][0], s.Cell[1][1]

	var energy float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.Atoms[i].Position.X - s.Atoms[j].Position.X
			dy := s.Atoms[i].Position.Y - s.Atoms[j].Position.Y
			dz := s.Atoms[i].Position.Z - s.Atoms[j].Position.Z
			dx = minimumImage(dx, lx)
			dy = minimumImage(dy, ly)

			r2 := dx*dx + dy*dy + dz*dz
			if r2 > cutoff2 || r2 == 0 {
				continue
			}

			sigma, eps := e.pairParams(s.Atoms[i].Symbol, s.Atoms[j].Symbol)
			sr2 := sigma * sigma / r2
			sr6 := sr2 * sr2 * sr2
			sr12 := sr6 * sr6

			energy += 4 * eps * (sr12 - sr6)

			// f = -dE/dr along the pair vector.
			fScale := 24 * eps * (2*sr12 - sr6) / r2
			forces[i][0] += fScale * dx
			forces[i][1] += fScale * dy
			forces[i][2] += fScale * dz
			forces[j][0] -= fScale * dx
			forces[j][1] -= fScale * dy
			forces[j][2] -= fScale * dz
		}
	}
	return energy, forces
}

// pairParams mixes unlike-species parameters with Lorentz-Berthelot rules.
func (e *LJEngine) pairParams(a, b string) (sigma, eps float64) {
	pa, ok := ljParams[a]
	if !ok {
		pa = defaultLJ
	}
	pb, ok := ljParams[b]
	if !ok {
		pb = defaultLJ
	}
	return (pa.Sigma + pb.Sigma) / 2, math.Sqrt(pa.Epsilon * pb.Epsilon)
}

func minimumImage(d, l float64) float64 {
	if l <= 0 {
		return d
	}
	return d - l*math.Round(d/l)
}

func maxComponent(forces [][3]float64) float64 {
	var m float64
	for _, f := range forces {
		for _, c := range f {
			if a := math.Abs(c); a > m {
				m = a
			}
		}
	}
	return m
}

// move displaces every atom along its force, capping the largest single
// displacement at step Angstroms.
func move(s *domain.Structure, forces [][3]float64, step float64) {
	fmax := maxComponent(forces)
	if fmax == 0 {
		return
	}
	scale := step / fmax
	for i := range s.Atoms {
		s.Atoms[i].Position.X += scale * forces[i][0]
		s.Atoms[i].Position.Y += scale * forces[i][1]
		s.Atoms[i].Position.Z += scale * forces[i][2]
	}
}
