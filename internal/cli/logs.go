package cli

import (
	"github.com/spf13/cobra"
)

// addLogsCommand registers `atomic logs TASK_ID`, which polls the last N
// lines of a task's activity stream.
func addLogsCommand(root *cobra.Command, app *appContext) {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs TASK_ID",
		Short: "Show recent activity for a task",
		Long: `Poll the in-memory activity stream for a task and print its most
recent lines in chronological order. Task streams live for the duration
of the process, so tasks from earlier invocations are not visible here;
use "atomic interactive" to keep streams pollable across submissions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			recent := app.streams.Poll(taskID, lines)
			if recent == nil {
				cmd.Printf("no log stream for task %s\n", taskID)
				return nil
			}
			for _, line := range recent {
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lines, "lines", 50, "maximum number of lines to show")

	root.AddCommand(cmd)
}
