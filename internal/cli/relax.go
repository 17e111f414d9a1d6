package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/surface"
)

// addRelaxCommand registers `atomic relax ELEMENT FACE`, which runs the
// pipeline for one surface. --no-relax stops after structure generation.
func addRelaxCommand(root *cobra.Command, app *appContext) {
	var (
		steps   int
		noRelax bool
	)

	cmd := &cobra.Command{
		Use:   "relax ELEMENT FACE",
		Short: "Generate and relax a surface",
		Long: `Generate a bulk-terminated surface slab, relax it, extract interlayer
metrics, compare against literature references, and write a report.

With --no-relax only the unrelaxed structure is generated and written.

Examples:
  atomic relax Cu 100
  atomic relax Pt 111 --steps 500
  atomic relax C graphene --no-relax`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			element, face := args[0], args[1]
			if !surface.IsSupported(element, face) {
				return fmt.Errorf("unsupported surface %s(%s); known surfaces: %s",
					element, face, strings.Join(surface.KnownSurfaces(), ", "))
			}

			ctx, cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			orch, err := app.buildOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}

			task, rep, err := orch.Submit(ctx, domain.SurfaceSpec{
				Element: element,
				Face:    face,
				Relax:   !noRelax,
				Steps:   steps,
			}, app.flags.Session)
			if err != nil {
				if task != nil {
					printFailure(cmd, orch, task)
				}
				return err
			}

			cmd.Printf("Task %s %s\n", task.ID, task.Status)
			if rep != nil && rep.Verdict != nil {
				cmd.Printf("Agreement: %s\n", strings.ToUpper(rep.Verdict.Label.String()))
			}
			cmd.Printf("Artifacts: %s\n", task.OutputDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "maximum relaxation steps (0 uses relax.steps from config)")
	cmd.Flags().BoolVar(&noRelax, "no-relax", false, "generate the structure only, skip relaxation")

	root.AddCommand(cmd)
}

// printFailure renders the failure descriptor with its log excerpt.
func printFailure(cmd *cobra.Command, orch taskFailureSource, task *domain.Task) {
	f := orch.Failure(task.ID)
	if f == nil {
		return
	}
	cmd.PrintErrf("Task %s failed at stage %s: %s\n", f.TaskID, f.Stage, f.Message)
	for _, line := range f.LogLines {
		cmd.PrintErrf("  %s\n", line)
	}
}

// taskFailureSource is the slice of the orchestrator the failure printer
// needs.
type taskFailureSource interface {
	Failure(taskID string) *domain.FailureDescriptor
}
