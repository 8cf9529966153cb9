/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [id]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as completed",
	Long: `Mark a task as completed. Tasks that depend on it are no longer held back.

Without an id, an interactive list of open tasks is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	s, err := openWriteSession()
	if err != nil {
		return err
	}
	defer s.close()

	id, err := resolveTaskArg(s, args, func(t task.Task) bool { return !t.Completed }, "Select task to complete")
	if err != nil {
		if isCancelled(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if errors.Is(err, ErrNoTasksFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No open tasks.")
			return nil
		}
		return err
	}

	before, ok := s.sched.Get(id)
	if !ok {
		return task.NotFoundError(id)
	}
	if before.Completed && !isQuiet() && !isJSON() {
		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is already completed.\n", id)
	}

	if !s.sched.Complete(id) {
		return task.NotFoundError(id)
	}
	if err := s.save(); err != nil {
		return err
	}

	if err := reportMutation(cmd, s, id, "completed", "Completed"); err != nil {
		return err
	}
	if !before.Completed && !isQuiet() && !isJSON() {
		for _, t := range newlyUnblocked(s.sched, id) {
			fmt.Fprintf(cmd.OutOrStdout(), "  → #%d %s is now ready\n", t.ID, t.Title)
		}
	}
	return nil
}

// newlyUnblocked returns open tasks that depended on id and now have no
// blockers left.
func newlyUnblocked(s *task.Scheduler, id int) []task.Task {
	var out []task.Task
	for _, t := range s.Ordered(false) {
		if t.HasDependency(id) && len(s.Blockers(t.ID)) == 0 {
			out = append(out, t)
		}
	}
	return out
}
