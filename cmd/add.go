/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/util"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the list and print its id.

Deadlines accept YYYY-MM-DD, "YYYY-MM-DD HH:MM", MM/DD/YYYY, "MM/DD/YYYY HH:MM"
or RFC 3339, in local time. Dependencies are comma-separated task ids; ids that
do not exist are dropped with a warning.

Examples:
  smarttask add "Write the report" -u 8 --deadline 2025-06-12
  smarttask add "Send the report" --deps 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addDeadline    string
	addUrgency     int
	addDeps        string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline, e.g. 2025-06-12 or \"2025-06-12 17:00\"")
	addCmd.Flags().IntVarP(&addUrgency, "urgency", "u", task.DefaultUrgency, "urgency from 1 (low) to 10 (critical)")
	addCmd.Flags().StringVar(&addDeps, "deps", "", "comma-separated ids of tasks this one depends on")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))

	nt := task.NewTask{
		Title:       title,
		Description: addDescription,
		Urgency:     addUrgency,
	}
	if addUrgency == 0 {
		return &task.ValidationError{Field: "urgency", Err: fmt.Errorf("must be between %d and %d", task.MinUrgency, task.MaxUrgency)}
	}
	if addDeadline != "" {
		d, err := util.ParseDeadline(addDeadline)
		if err != nil {
			return err
		}
		nt.Deadline = &d
		if d.Before(clock()) && !isQuiet() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: deadline %s is already in the past\n", deadlineHint(nt.Deadline))
		}
	}
	deps, err := util.ParseIDList(addDeps)
	if err != nil {
		return err
	}

	s, err := openWriteSession()
	if err != nil {
		return err
	}
	defer s.close()

	nt.Dependencies = s.knownDependencies(cmd, deps)
	id, err := s.sched.Add(nt)
	if err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}

	return reportMutation(cmd, s, id, "created", "Added")
}

// reportMutation prints the task after a successful change.
func reportMutation(cmd *cobra.Command, s *session, id int, status, verb string) error {
	t, ok := s.sched.Get(id)
	if !ok {
		return task.NotFoundError(id)
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), mutationResponse{
			Status: status,
			Task:   toResponse(t, s.sched.Blockers(id), clock()),
		})
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s task #%d: %s (score %.1f)\n", verb, t.ID, t.Title, t.PriorityScore)
	} else if status == "created" {
		fmt.Fprintln(cmd.OutOrStdout(), t.ID)
	}
	return nil
}

// deadlineHint formats a deadline for warnings.
func deadlineHint(d *time.Time) string {
	if d == nil {
		return "none"
	}
	return d.Local().Format(GetConfig().Display.TimeFormat)
}
