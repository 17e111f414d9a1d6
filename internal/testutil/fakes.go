package testutil

import (
	"context"
	"sync"

	"github.com/atomiclab/atomic/internal/ai"
	"github.com/atomiclab/atomic/internal/domain"
)

// FakeRelaxer is a relax.Engine that applies a fixed displacement
// function instead of running a minimization. The zero value returns the
// input unchanged with a two-sample converged trajectory.
type FakeRelaxer struct {
	// Displace, when set, maps each atom to its relaxed position. Nil
	// leaves positions unchanged.
	Displace func(a domain.Atom) domain.Position

	// Err, when set, is returned from every call.
	Err error

	// Converged is the flag stamped onto the trajectory.
	Converged bool

	mu    sync.Mutex
	calls int
}

// Relax applies the displacement function and fabricates a trajectory.
func (f *FakeRelaxer) Relax(_ context.Context, s *domain.Structure, maxSteps int) (*domain.Structure, *domain.Trajectory, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Err != nil {
		return nil, nil, f.Err
	}

	relaxed := s.Copy()
	if f.Displace != nil {
		for i := range relaxed.Atoms {
			relaxed.Atoms[i].Position = f.Displace(relaxed.Atoms[i])
		}
	}

	traj := &domain.Trajectory{
		Samples: []domain.TrajectorySample{
			{Step: 0, Energy: -1.0},
			{Step: min(maxSteps, 1), Energy: -2.0},
		},
		Converged: f.Converged,
	}
	return relaxed, traj, nil
}

// Calls reports how many times Relax ran.
func (f *FakeRelaxer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeProvider is a pipeline.StructureProvider returning a canned
// structure or error.
type FakeProvider struct {
	Structure *domain.Structure
	Err       error
}

// Build returns the canned structure.
func (f *FakeProvider) Build(_ context.Context, _, _ string) (*domain.Structure, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Structure.Copy(), nil
}

// FakeReference is a reference.Provider returning canned records.
type FakeReference struct {
	Records []domain.ReferenceRecord
	Err     error
}

// Lookup returns the canned records.
func (f *FakeReference) Lookup(_ context.Context, _, _ string) ([]domain.ReferenceRecord, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Records, nil
}

// FakeGenerator is an ai.Generator with scripted responses. Each call
// consumes the next entry of Errs before Text is returned, so a two-entry
// Errs slice simulates fail-then-fail or fail-then-succeed sequences.
type FakeGenerator struct {
	Text string
	Errs []error

	mu    sync.Mutex
	calls int
}

// Discuss returns the scripted outcome for this call.
func (f *FakeGenerator) Discuss(_ context.Context, _ ai.DiscussionRequest) (string, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.mu.Unlock()

	if n < len(f.Errs) && f.Errs[n] != nil {
		return "", f.Errs[n]
	}
	return f.Text, nil
}

// Calls reports how many times Discuss ran.
func (f *FakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
