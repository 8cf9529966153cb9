/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/josephgoksu/smarttask/internal/util"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := util.ParseTaskID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	t, ok := s.sched.Get(id)
	if !ok {
		return task.NotFoundError(id)
	}

	now := clock()
	blockers := s.sched.Blockers(id)
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), toResponse(t, blockers, now))
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTaskDetail(t, blockers, now, viewOptions()))
	return nil
}
