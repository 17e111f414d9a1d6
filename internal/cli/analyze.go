package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/domain"
)

// addAnalyzeCommand registers `atomic analyze ELEMENT FACE`: the full
// pipeline with a result summary printed to stdout.
func addAnalyzeCommand(root *cobra.Command, app *appContext) {
	var steps int

	cmd := &cobra.Command{
		Use:   "analyze ELEMENT FACE",
		Short: "Run the full relaxation analysis and print a summary",
		Long: `Run the complete pipeline for a surface: generation, relaxation,
metric extraction, literature comparison, and report assembly. Prints
the agreement verdict and the report location when done.

Examples:
  atomic analyze Cu 100
  atomic analyze Ag 111 --steps 300`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			orch, err := app.buildOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}

			task, rep, err := orch.Submit(ctx, domain.SurfaceSpec{
				Element: args[0],
				Face:    args[1],
				Relax:   true,
				Steps:   steps,
			}, app.flags.Session)
			if err != nil {
				if task != nil {
					printFailure(cmd, orch, task)
				}
				return err
			}

			cmd.Printf("Task %s %s\n\n", task.ID, task.Status)
			if rep != nil && rep.Verdict != nil {
				cmd.Printf("Agreement: %s\n\n", strings.ToUpper(rep.Verdict.Label.String()))
			}
			cmd.Println("Recent activity:")
			for _, line := range orch.Logs().Poll(task.ID, 10) {
				cmd.Printf("  %s\n", line)
			}
			cmd.Printf("\nReport: %s\n", filepath.Join(task.OutputDir,
				fmt.Sprintf(constants.ReportMDFormat, task.Spec.Element, task.Spec.Face)))
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "maximum relaxation steps (0 uses relax.steps from config)")

	root.AddCommand(cmd)
}
