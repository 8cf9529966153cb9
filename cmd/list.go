/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in the order to work on them",
	Long: `List open tasks in execution order: a task never appears before an open
task it depends on, and among tasks that are ready the highest priority score
comes first. If dependencies form a cycle, the tasks caught in it are listed
last by score.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listAll bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	now := clock()
	ordered := s.sched.Ordered(listAll)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), toResponses(s.sched, ordered, now))
	}

	out := cmd.OutOrStdout()
	if len(ordered) == 0 {
		if s.sched.Len() == 0 {
			fmt.Fprintln(out, "No tasks yet. Add one with 'smarttask add \"title\"'.")
		} else {
			fmt.Fprintln(out, "Nothing to do. Use --all to show completed tasks.")
		}
		return nil
	}

	if !isQuiet() {
		ui.RenderPageHeader(out, "Tasks", ui.RenderStats(s.sched.Stats()))
	}
	fmt.Fprint(out, ui.RenderTaskTable(ordered, blockersFor(s.sched, ordered), now, viewOptions()))
	return nil
}
