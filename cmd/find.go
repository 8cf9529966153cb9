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

// findQueries maps a query name to its scheduler query and heading.
var findQueries = map[string]struct {
	title string
	run   func(*task.Scheduler) []task.Task
}{
	"overdue": {"Overdue tasks", (*task.Scheduler).Overdue},
	"today":   {"Due today", (*task.Scheduler).DueToday},
	"high":    {fmt.Sprintf("High priority (urgency %d+)", task.HighUrgency), (*task.Scheduler).HighPriority},
}

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find overdue|today|high",
	Short: "Find open tasks that are overdue, due today or high priority",
	Long: `Find open tasks matching one of the built-in queries:

  overdue  deadline already passed
  today    deadline falls on today's date
  high     urgency 8 or more`,
	ValidArgs: []string{"overdue", "today", "high"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	q := findQueries[args[0]]

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	now := clock()
	found := q.run(s.sched)
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), toResponses(s.sched, found, now))
	}

	out := cmd.OutOrStdout()
	if !isQuiet() {
		ui.RenderPageHeader(out, q.title, fmt.Sprintf("%d task(s)", len(found)))
	}
	if len(found) == 0 {
		return nil
	}
	fmt.Fprint(out, ui.RenderTaskTable(found, blockersFor(s.sched, found), now, viewOptions()))
	return nil
}
