package domain

import "time"

// Session is the conversational continuity context grouping multiple tasks
// issued by the same caller. Sessions live for the process lifetime; an
// unknown session_id supplied by a caller is treated as a fresh session,
// never as an error, so identifiers survive process restarts gracefully.
type Session struct {
	// ID is the session identifier (UUID), returned to the caller on
	// first contact for reuse on subsequent calls.
	ID string `json:"id"`

	// TaskIDs is the ordered history of tasks recorded into this session.
	// Only tasks that reached a terminal status may appear here.
	TaskIDs []string `json:"task_ids"`

	// CreatedAt is when the session was allocated.
	CreatedAt time.Time `json:"created_at"`

	// LastActive is updated on every access or mutation.
	LastActive time.Time `json:"last_active"`
}
