package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/atomiclab/atomic/internal/logstream"
	"github.com/atomiclab/atomic/internal/session"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	Verbose bool
	Quiet   bool
	Session string
}

// globalLogger stores the initialized logger for use by subcommands.
// Set during PersistentPreRunE; access via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// This MUST only be called after the root command's PersistentPreRunE has
// executed; before that it returns a zero-value logger that discards all
// output. Safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command for the atomic CLI. The log stream
// and session registries are created here so the logger tee and the
// orchestrator share them for the life of the process.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	streams := logstream.NewRegistry()
	sessions := session.NewRegistry()

	cmd := &cobra.Command{
		Use:   "atomic",
		Short: "atomic - surface relaxation pipeline",
		Long: `atomic generates bulk-terminated metal and 2D surfaces, relaxes them,
extracts interlayer relaxation metrics, compares the results against
curated literature references, and assembles a markdown report with an
AI-generated discussion.

Supported surfaces:
  • FCC metals Cu, Pt, Au, Ag, Ni, Pd with (100), (111), (110) faces
  • Graphene and monolayer MoS2 sheets`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands, so PersistentPreRunE still runs for flag checks.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet, streams)
			globalLoggerMu.Unlock()
			return nil
		},
		// We print our own error messages.
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only log warnings and errors")
	cmd.PersistentFlags().StringVar(&flags.Session, "session", "", "session identifier to group tasks (generated when empty)")

	app := &appContext{flags: flags, streams: streams, sessions: sessions}
	addRelaxCommand(cmd, app)
	addAnalyzeCommand(cmd, app)
	addInteractiveCommand(cmd, app)
	addLogsCommand(cmd, app)
	addRefsCommand(cmd)
	addCheckConfigCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	defer CloseLogFile()
	return cmd.ExecuteContext(ctx)
}
