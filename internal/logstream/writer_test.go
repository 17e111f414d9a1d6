package logstream

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeWriter_MirrorsTaskEntries(t *testing.T) {
	registry := NewRegistry()
	var sink bytes.Buffer
	tee := NewTeeWriter(registry, &sink)

	entry := []byte(`{"level":"info","task_id":"task-a","message":"relaxing"}` + "\n")
	n, err := tee.Write(entry)
	require.NoError(t, err)
	assert.Equal(t, len(entry), n)

	// Passed through to the target unchanged.
	assert.Equal(t, string(entry), sink.String())

	// Mirrored into the task stream without the trailing newline.
	lines := registry.Poll("task-a", 0)
	require.Len(t, lines, 1)
	assert.Equal(t, `{"level":"info","task_id":"task-a","message":"relaxing"}`, lines[0])
}

func TestTeeWriter_IgnoresUntaggedEntries(t *testing.T) {
	registry := NewRegistry()
	var sink bytes.Buffer
	tee := NewTeeWriter(registry, &sink)

	_, err := tee.Write([]byte(`{"level":"info","message":"startup"}` + "\n"))
	require.NoError(t, err)
	_, err = tee.Write([]byte("not json at all\n"))
	require.NoError(t, err)

	// Both still reach the target.
	assert.Contains(t, sink.String(), "startup")
	assert.Contains(t, sink.String(), "not json")
}

func TestTeeWriter_AsZerologSink(t *testing.T) {
	registry := NewRegistry()
	var sink bytes.Buffer
	log := zerolog.New(NewTeeWriter(registry, &sink))

	log.Info().Str("task_id", "task-b").Msg("comparing")
	log.Info().Msg("no task attached")

	lines := registry.Poll("task-b", 0)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "comparing")
	assert.NotContains(t, lines[0], "no task attached")
}
