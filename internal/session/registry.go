// Package session provides the process-wide session registry.
//
// A session groups the tasks issued by one conversational caller. The
// registry's lifecycle is bound to the process: there is no persistence
// across restarts. Callers that present an unknown session identifier
// get a fresh session under that identifier, never an error, which lets
// identifiers survive restarts gracefully.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atomiclab/atomic/internal/clock"
	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

// Registry maps session identifiers to sessions. Mutations of the same
// session's history are serialized; operations on different sessions
// proceed without contention beyond the registry map lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	clk      clock.Clock
}

// entry pairs a session with its own mutation lock.
type entry struct {
	mu      sync.Mutex
	session domain.Session
}

// Option configures a Registry.
type Option func(*Registry)

// WithTTL enables lazy eviction of sessions idle longer than ttl.
// Zero keeps sessions for the process lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithClock overrides the clock used for activity timestamps.
func WithClock(clk clock.Clock) Option {
	return func(r *Registry) {
		r.clk = clk
	}
}

// NewRegistry creates an empty session registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		clk:      clock.RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTTL reconfigures the idle eviction window. The registry is built
// before configuration is loaded, so the configured ttl arrives through
// this setter. Zero disables eviction; negative values are ignored.
func (r *Registry) SetTTL(ttl time.Duration) {
	if ttl < 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ttl = ttl
}

// GetOrCreate returns the session for id, creating one when id is empty
// or unknown. The second return reports whether the session already
// existed. A generated identifier is a UUID; a caller-supplied unknown
// identifier is adopted verbatim.
func (r *Registry) GetOrCreate(id string) (domain.Session, bool) {
	now := r.clk.Now().UTC()

	if id != "" {
		if e := r.lookup(id, now); e != nil {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.session.LastActive = now
			return e.session, true
		}
	}

	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock: a concurrent caller may have
	// created the same id.
	if e, ok := r.sessions[id]; ok {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.session.LastActive = now
		return e.session, true
	}

	e := &entry{
		session: domain.Session{
			ID:         id,
			CreatedAt:  now,
			LastActive: now,
		},
	}
	r.sessions[id] = e
	return e.session, false
}

// Record appends a completed task to the session's history. Only tasks
// that reached a terminal status may be recorded; anything else returns
// ErrTaskNotTerminal. Recording against an unknown session creates it,
// matching the restart-tolerant contract of GetOrCreate.
func (r *Registry) Record(sessionID string, task *domain.Task) error {
	if task.Status != constants.TaskStatusSucceeded && task.Status != constants.TaskStatusFailed {
		return atomicerrors.Wrapf(atomicerrors.ErrTaskNotTerminal,
			"task %s has status %s", task.ID, task.Status)
	}

	now := r.clk.Now().UTC()
	e := r.lookup(sessionID, now)
	if e == nil {
		r.mu.Lock()
		if existing, ok := r.sessions[sessionID]; ok {
			e = existing
		} else {
			e = &entry{
				session: domain.Session{
					ID:         sessionID,
					CreatedAt:  now,
					LastActive: now,
				},
			}
			r.sessions[sessionID] = e
		}
		r.mu.Unlock()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.TaskIDs = append(e.session.TaskIDs, task.ID)
	e.session.LastActive = now
	return nil
}

// Get returns a copy of the session for id, or false when unknown.
func (r *Registry) Get(id string) (domain.Session, bool) {
	e := r.lookup(id, r.clk.Now().UTC())
	if e == nil {
		return domain.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	s.TaskIDs = append([]string(nil), e.session.TaskIDs...)
	return s, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// lookup returns the live entry for id, evicting it first when the TTL
// policy marks it expired. Eviction is lazy: it happens on access, not
// on a timer.
func (r *Registry) lookup(id string, now time.Time) *entry {
	r.mu.RLock()
	e, ok := r.sessions[id]
	ttl := r.ttl
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	if ttl > 0 {
		e.mu.Lock()
		expired := now.Sub(e.session.LastActive) > ttl
		e.mu.Unlock()
		if expired {
			r.mu.Lock()
			delete(r.sessions, id)
			r.mu.Unlock()
			return nil
		}
	}
	return e
}
