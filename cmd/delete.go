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

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its id. If no id is provided, an interactive list is shown.
A confirmation prompt is displayed before deletion unless --yes is passed.

Other tasks that depended on the deleted task stop referring to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openWriteSession()
	if err != nil {
		return err
	}
	defer s.close()

	id, err := resolveTaskArg(s, args, nil, "Select task to delete")
	if err != nil {
		if isCancelled(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return nil
		}
		if errors.Is(err, ErrNoTasksFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks available to delete.")
			return nil
		}
		return err
	}

	t, ok := s.sched.Get(id)
	if !ok {
		return task.NotFoundError(id)
	}

	dependents := 0
	for _, other := range s.sched.List() {
		if other.HasDependency(id) {
			dependents++
		}
	}
	label := fmt.Sprintf("Delete task #%d '%s'", t.ID, t.Title)
	if dependents > 0 {
		label += fmt.Sprintf(" (%d task(s) depend on it)", dependents)
	}

	confirmed, err := confirmOrAbort(label, deleteYes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
		return nil
	}

	if !s.sched.Delete(id) {
		return task.NotFoundError(id)
	}
	if err := s.save(); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), deleteResponse{Status: "deleted", ID: id})
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted task #%d: %s\n", id, t.Title)
	}
	return nil
}
