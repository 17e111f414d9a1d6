package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args against a sandboxed
// atomic home, returning combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ATOMIC_HOME", t.TempDir())

	var out bytes.Buffer
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			"full info",
			BuildInfo{Version: "1.2.0", Commit: "abc1234", Date: "2026-01-15"},
			"1.2.0 (commit: abc1234, built: 2026-01-15)",
		},
		{
			"empty info uses placeholders",
			BuildInfo{},
			"dev (commit: none, built: unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.info))
		})
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"relax", "analyze", "interactive", "logs", "refs", "check-config"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("quiet"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("session"))
}

func TestRootCommand_NoArgsShowsHelp(t *testing.T) {
	out, err := runCommand(t)
	require.NoError(t, err)
	assert.Contains(t, out, "surface relaxation pipeline")
	assert.Contains(t, out, "Available Commands")
}

func TestRefsCommand(t *testing.T) {
	out, err := runCommand(t, "refs", "Cu", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Cu(100)")
	assert.Contains(t, out, "Lindgren")

	out, err = runCommand(t, "refs", "Cu")
	require.NoError(t, err)
	assert.Contains(t, out, "Cu(100)")
	assert.Contains(t, out, "Cu(110)")
	assert.Contains(t, out, "Cu(111)")
	assert.NotContains(t, out, "Pt(111)")

	out, err = runCommand(t, "refs", "Fe", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "no reference data")
}

func TestLogsCommand_UnknownTask(t *testing.T) {
	out, err := runCommand(t, "logs", "task-20260101-000000-dead")
	require.NoError(t, err)
	assert.Contains(t, out, "no log stream for task task-20260101-000000-dead")
}

func TestCheckConfigCommand(t *testing.T) {
	t.Setenv("ATOMIC_RELAX_STEPS", "123")

	out, err := runCommand(t, "check-config")
	require.NoError(t, err)
	assert.Contains(t, out, "steps: 123")
	assert.Contains(t, out, "max_concurrent: 1")
	assert.Contains(t, out, "# log file:")
}

func TestRelaxCommand_UnsupportedSurface(t *testing.T) {
	_, err := runCommand(t, "relax", "Fe", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported surface Fe(100)")
}

func TestRelaxCommand_StructureOnly(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATOMIC_HOME", home)

	var out bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"relax", "C", "graphene", "--no-relax"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "succeeded")

	// The artifact directory landed under {home}/output.
	entries, err := os.ReadDir(filepath.Join(home, "output"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "C_graphene_task-")

	_, err = os.Stat(filepath.Join(home, "output", entries[0].Name(), "C_graphene_unrelaxed.xyz"))
	assert.NoError(t, err)
}

func TestRelaxCommand_FullRun(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a real minimization")
	}

	home := t.TempDir()
	t.Setenv("ATOMIC_HOME", home)
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"relax", "Cu", "100", "--steps", "30", "--session", "cli-test"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "succeeded")

	entries, err := os.ReadDir(filepath.Join(home, "output"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	dir := filepath.Join(home, "output", entries[0].Name())
	for _, name := range []string{
		"Cu_100_unrelaxed.xyz",
		"Cu_100_relaxed.xyz",
		"Cu_100_relaxation.png",
		"Cu_100_report.md",
	} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}

	body, err := os.ReadFile(filepath.Join(dir, "Cu_100_report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "## Literature Comparison")
}
