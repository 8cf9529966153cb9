/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the task to work on now",
	Long:  `Show the first open task in execution order that is not waiting on another open task.`,
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

// nextReady returns the first task in execution order with no blockers.
func nextReady(s *task.Scheduler) (task.Task, bool) {
	for _, t := range s.Ordered(false) {
		if len(s.Blockers(t.ID)) == 0 {
			return t, true
		}
	}
	return task.Task{}, false
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	now := clock()
	t, ok := nextReady(s.sched)
	if isJSON() {
		if !ok {
			return printJSON(cmd.OutOrStdout(), nil)
		}
		return printJSON(cmd.OutOrStdout(), toResponse(t, nil, now))
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
		return nil
	}
	if isQuiet() {
		fmt.Fprintln(cmd.OutOrStdout(), t.ID)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTaskDetail(t, nil, now, viewOptions()))
	return nil
}
