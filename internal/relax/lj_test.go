package relax

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

// dimer builds two atoms separated by r along z in an open (non-periodic)
// cell.
func dimer(symbol string, r float64) *domain.Structure {
	return &domain.Structure{
		Formula: symbol + "2",
		Atoms: []domain.Atom{
			{Symbol: symbol, Position: domain.Position{Z: 0}},
			{Symbol: symbol, Position: domain.Position{Z: r}},
		},
	}
}

func separation(s *domain.Structure) float64 {
	a, b := s.Atoms[0].Position, s.Atoms[1].Position
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestRelax_DimerFindsMinimum(t *testing.T) {
	// The LJ minimum for a pair sits at r = 2^(1/6) * sigma.
	sigma := ljParams["Cu"].Sigma
	r0 := math.Pow(2, 1.0/6.0) * sigma

	e := NewLJEngine()
	relaxed, traj, err := e.Relax(context.Background(), dimer("Cu", r0*1.15), 500)
	require.NoError(t, err)

	assert.True(t, traj.Converged)
	assert.InDelta(t, r0, separation(relaxed), 0.02)
}

func TestRelax_EnergyNeverIncreases(t *testing.T) {
	e := NewLJEngine()
	_, traj, err := e.Relax(context.Background(), dimer("Au", 3.2), 200)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(traj.Samples), 2)
	for i := 1; i < len(traj.Samples); i++ {
		assert.LessOrEqual(t, traj.Samples[i].Energy, traj.Samples[i-1].Energy,
			"energy rose at step %d", i)
	}
	assert.Less(t, traj.EnergyChange(), 0.0)
}

func TestRelax_InputIsNotMutated(t *testing.T) {
	original := dimer("Ag", 3.3)
	snapshot := original.Copy()

	e := NewLJEngine()
	relaxed, _, err := e.Relax(context.Background(), original, 100)
	require.NoError(t, err)

	assert.Equal(t, snapshot.Atoms, original.Atoms)
	assert.NotEqual(t, original.Atoms[1].Position, relaxed.Atoms[1].Position)
}

func TestRelax_AlreadyRelaxedConvergesImmediately(t *testing.T) {
	sigma := ljParams["Cu"].Sigma
	r0 := math.Pow(2, 1.0/6.0) * sigma

	e := NewLJEngine()
	_, traj, err := e.Relax(context.Background(), dimer("Cu", r0), 100)
	require.NoError(t, err)

	assert.True(t, traj.Converged)
	assert.Len(t, traj.Samples, 1)
}

func TestRelax_StepBudgetExhausted(t *testing.T) {
	// A single step cannot converge a stretched dimer.
	e := NewLJEngine(WithForceThreshold(1e-9))
	_, traj, err := e.Relax(context.Background(), dimer("Pt", 3.5), 1)
	require.NoError(t, err)
	assert.False(t, traj.Converged)
}

func TestRelax_Validation(t *testing.T) {
	e := NewLJEngine()

	_, _, err := e.Relax(context.Background(), nil, 100)
	assert.ErrorIs(t, err, atomicerrors.ErrEmptyStructure)

	_, _, err = e.Relax(context.Background(), &domain.Structure{}, 100)
	assert.ErrorIs(t, err, atomicerrors.ErrEmptyStructure)

	_, _, err = e.Relax(context.Background(), dimer("Cu", 3.0), 0)
	assert.ErrorIs(t, err, atomicerrors.ErrValueOutOfRange)
}

func TestRelax_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewLJEngine()
	_, _, err := e.Relax(ctx, dimer("Cu", 3.0), 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinimumImage(t *testing.T) {
	tests := []struct {
		name string
		d, l float64
		want float64
	}{
		{"inside the cell", 1.0, 10.0, 1.0},
		{"wraps forward", 9.0, 10.0, -1.0},
		{"wraps backward", -9.0, 10.0, 1.0},
		{"open boundary passes through", 9.0, 0, 9.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, minimumImage(tt.d, tt.l), 1e-12)
		})
	}
}

func TestPairParams_LorentzBerthelot(t *testing.T) {
	e := NewLJEngine()

	sigma, eps := e.pairParams("Mo", "S")
	assert.InDelta(t, (2.45+2.10)/2, sigma, 1e-9)
	assert.InDelta(t, math.Sqrt(0.80*0.35), eps, 1e-9)

	// Unknown species fall back to the default parameters.
	sigma, _ = e.pairParams("Xx", "Xx")
	assert.InDelta(t, 2.5, sigma, 1e-9)
}
