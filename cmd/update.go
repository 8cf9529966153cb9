/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"strings"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/util"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task",
	Long: `Change one or more fields of a task. Only the flags you pass are changed.

Examples:
  smarttask update 3 --urgency 9
  smarttask update 3 --clear-deadline
  smarttask update 5 --deps 1,4`,
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	RunE:    runUpdate,
}

var (
	updateTitle         string
	updateDescription   string
	updateDeadline      string
	updateClearDeadline bool
	updateUrgency       int
	updateDeps          string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "new deadline")
	updateCmd.Flags().BoolVar(&updateClearDeadline, "clear-deadline", false, "remove the deadline")
	updateCmd.Flags().IntVarP(&updateUrgency, "urgency", "u", 0, "new urgency from 1 to 10")
	updateCmd.Flags().StringVar(&updateDeps, "deps", "", "replace dependencies with these comma-separated ids (\"\" clears them)")
	updateCmd.MarkFlagsMutuallyExclusive("deadline", "clear-deadline")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := util.ParseTaskID(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var patch task.Patch
	if flags.Changed("title") {
		title := strings.TrimSpace(updateTitle)
		patch.Title = &title
	}
	if flags.Changed("description") {
		patch.Description = &updateDescription
	}
	if flags.Changed("deadline") {
		d, err := util.ParseDeadline(updateDeadline)
		if err != nil {
			return err
		}
		patch.Deadline = &d
	}
	patch.ClearDeadline = updateClearDeadline
	if flags.Changed("urgency") {
		patch.Urgency = &updateUrgency
	}

	var deps []int
	if flags.Changed("deps") {
		if deps, err = util.ParseIDList(updateDeps); err != nil {
			return err
		}
		if err := util.CheckSelfDependency(id, deps); err != nil {
			return err
		}
	}

	if patch.Empty() && !flags.Changed("deps") {
		return errors.New("nothing to update; pass at least one of --title, --description, --deadline, --clear-deadline, --urgency, --deps")
	}

	s, err := openWriteSession()
	if err != nil {
		return err
	}
	defer s.close()

	if flags.Changed("deps") {
		known := s.knownDependencies(cmd, deps)
		patch.Dependencies = &known
	}

	found, err := s.sched.Edit(id, patch)
	if !found {
		return task.NotFoundError(id)
	}
	if err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	return reportMutation(cmd, s, id, "updated", "Updated")
}
