package logstream

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/clock"
)

func TestRegistry_AppendAndPoll(t *testing.T) {
	r := NewRegistry(WithClock(clock.Fixed(time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC))))

	r.Append("task-a", "generating surface")
	r.Append("task-a", "relaxing")
	r.Append("task-b", "other task")

	lines := r.Poll("task-a", 0)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "generating surface")
	assert.Contains(t, lines[1], "relaxing")
	assert.Contains(t, lines[0], "2026-01-15T09:30:00Z")

	// Streams are task-scoped.
	assert.Equal(t, 1, r.Len("task-b"))
	assert.Equal(t, 2, r.Len("task-a"))
}

func TestRegistry_PollReturnsMostRecent(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 10; i++ {
		r.Append("task-a", fmt.Sprintf("line %d", i))
	}

	lines := r.Poll("task-a", 3)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 7")
	assert.Contains(t, lines[2], "line 9")

	// Non-positive maxLines returns everything retained.
	assert.Len(t, r.Poll("task-a", 0), 10)
	assert.Len(t, r.Poll("task-a", -1), 10)

	// Requesting more than exists returns what exists.
	assert.Len(t, r.Poll("task-a", 100), 10)
}

func TestRegistry_PollUnknownTask(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Poll("task-unknown", 10))
	assert.Equal(t, 0, r.Len("task-unknown"))
}

func TestRegistry_RetentionDropsOldest(t *testing.T) {
	r := NewRegistry(WithRetention(5))
	for i := 0; i < 8; i++ {
		r.Append("task-a", fmt.Sprintf("line %d", i))
	}

	lines := r.Poll("task-a", 0)
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "line 3")
	assert.Contains(t, lines[4], "line 7")
}

func TestRegistry_SetRetentionAppliesToLaterAppends(t *testing.T) {
	r := NewRegistry()
	r.SetRetention(3)

	for i := 0; i < 5; i++ {
		r.Append("task-a", fmt.Sprintf("line %d", i))
	}

	lines := r.Poll("task-a", 0)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 2")
	assert.Contains(t, lines[2], "line 4")

	// Non-positive values leave the window unchanged.
	r.SetRetention(0)
	r.Append("task-a", "line 5")
	assert.Len(t, r.Poll("task-a", 0), 3)
}

func TestRegistry_AppendRawSkipsTimestamp(t *testing.T) {
	r := NewRegistry()
	r.AppendRaw("task-a", `{"level":"info","task_id":"task-a","message":"hello"}`)

	lines := r.Poll("task-a", 1)
	require.Len(t, lines, 1)
	assert.Equal(t, `{"level":"info","task_id":"task-a","message":"hello"}`, lines[0])
}

func TestRegistry_ConcurrentAppends(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 50; i++ {
				r.Append("task-a", fmt.Sprintf("writer %d line %d", w, i))
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	assert.Equal(t, 200, r.Len("task-a"))
}
