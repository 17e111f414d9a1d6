package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/pipeline"
	"github.com/atomiclab/atomic/internal/surface"
)

// intent is a parsed interactive request.
type intent struct {
	action  string // "relax", "generate", "analyze"
	element string
	face    string
	steps   int
}

// interactiveElements canonicalizes element words the user may type.
var interactiveElements = map[string]string{
	"cu":       "Cu",
	"pt":       "Pt",
	"au":       "Au",
	"ag":       "Ag",
	"ni":       "Ni",
	"pd":       "Pd",
	"c":        "C",
	"graphene": "C",
	"mos2":     "MoS2",
}

// addInteractiveCommand registers `atomic interactive`, a prompt loop
// that drives multiple submissions through one process. Because the
// session registry and task log streams live for the process lifetime,
// this is the surface where `logs` and session grouping pay off: every
// task submitted in the loop stays queryable until the loop exits.
func addInteractiveCommand(root *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Run surfaces interactively in one session",
		Long: `Start a prompt loop that accepts simple requests and runs them
through the pipeline. All tasks share one session, and their activity
streams stay pollable with "logs TASK_ID" for the life of the loop.

Requests are plain words, for example:
  relax Cu 100
  generate graphene
  analyze Pt 111 steps 300
  logs task-20260115-093002-a1b2
  session
  exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			orch, err := app.buildOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}

			sess, _ := orch.Sessions().GetOrCreate(app.flags.Session)
			cmd.Printf("atomic interactive, session %s\n", sess.ID)
			cmd.Println(`Type "help" for examples, "exit" to leave.`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				cmd.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if done := runInteractiveLine(ctx, cmd, orch, sess.ID, line); done {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	root.AddCommand(cmd)
}

// runInteractiveLine dispatches one request. It returns true when the
// loop should exit.
func runInteractiveLine(ctx context.Context, cmd *cobra.Command, orch *pipeline.Orchestrator, sessionID, line string) bool {
	words := strings.Fields(strings.ToLower(line))

	switch words[0] {
	case "exit", "quit":
		return true
	case "help":
		cmd.Println(`Requests:
  relax ELEMENT [FACE]      generate and relax (face defaults to 100)
  generate ELEMENT [FACE]   structure only, no relaxation
  analyze ELEMENT [FACE]    full pipeline, same as relax
  logs TASK_ID              recent activity for a task
  session                   tasks run so far in this session
  exit                      leave the loop
Append "steps N" to bound the relaxation.`)
		return false
	case "logs":
		if len(words) < 2 {
			cmd.Println("usage: logs TASK_ID")
			return false
		}
		// Task IDs are lowercase, so the lowered words are usable as-is.
		lines := orch.Logs().Poll(words[1], 20)
		if lines == nil {
			cmd.Printf("no log stream for task %s\n", words[1])
			return false
		}
		for _, l := range lines {
			cmd.Println(l)
		}
		return false
	case "session":
		printSessionHistory(cmd, orch, sessionID)
		return false
	}

	in, err := parseIntent(words)
	if err != nil {
		cmd.Printf("%v\n", err)
		return false
	}

	task, rep, err := orch.Submit(ctx, domain.SurfaceSpec{
		Element: in.element,
		Face:    in.face,
		Relax:   in.action != "generate",
		Steps:   in.steps,
	}, sessionID)
	if err != nil {
		if task != nil {
			printFailure(cmd, orch, task)
		}
		cmd.Printf("%v\n", err)
		return false
	}

	cmd.Printf("Task %s %s\n", task.ID, task.Status)
	if rep != nil && rep.Verdict != nil {
		cmd.Printf("Agreement: %s\n", strings.ToUpper(rep.Verdict.Label.String()))
	}
	cmd.Printf("Artifacts: %s\n", task.OutputDir)
	return false
}

// parseIntent extracts the action, element, face, and step bound from
// the lowered request words. Unrecognized words are ignored so phrasing
// like "please relax the Cu 100 surface" still parses.
func parseIntent(words []string) (intent, error) {
	in := intent{action: "relax", face: ""}

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w {
		case "relax", "analyze", "analysis", "report":
			if w != "relax" {
				in.action = "analyze"
			}
			continue
		case "generate", "create":
			in.action = "generate"
			continue
		case "steps":
			if i+1 < len(words) {
				if n, err := strconv.Atoi(words[i+1]); err == nil {
					in.steps = n
					i++
				}
			}
			continue
		}

		if el, ok := interactiveElements[w]; ok {
			in.element = el
			if w == "graphene" {
				in.face = "graphene"
			}
			if w == "mos2" {
				in.face = "2d"
			}
			continue
		}
		if w == "100" || w == "111" || w == "110" || w == "graphene" || w == "2d" {
			in.face = w
		}
	}

	if in.element == "" {
		return in, fmt.Errorf("no element recognized; supported: %s",
			strings.Join(surface.KnownSurfaces(), ", "))
	}
	if in.face == "" {
		switch in.element {
		case "C":
			in.face = "graphene"
		case "MoS2":
			in.face = "2d"
		default:
			in.face = "100"
		}
	}
	return in, nil
}

// printSessionHistory lists the terminal tasks recorded in the session.
func printSessionHistory(cmd *cobra.Command, orch *pipeline.Orchestrator, sessionID string) {
	sess, ok := orch.Sessions().Get(sessionID)
	if !ok || len(sess.TaskIDs) == 0 {
		cmd.Println("no tasks in this session yet")
		return
	}
	for _, id := range sess.TaskIDs {
		task, err := orch.Task(id)
		if err != nil {
			cmd.Printf("  %s (unknown)\n", id)
			continue
		}
		cmd.Printf("  %s %s(%s) %s\n", task.ID, task.Spec.Element, task.Spec.Face, task.Status)
	}
}
