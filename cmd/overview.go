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

var overviewCmd = &cobra.Command{
	Use:     "overview",
	Aliases: []string{"stats"},
	Short:   "Show task counts",
	Args:    cobra.NoArgs,
	RunE:    runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

type overviewResponse struct {
	task.Stats
	Blocked int  `json:"blocked"`
	NextID  *int `json:"next_task_id"`
}

func runOverview(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	resp := overviewResponse{Stats: s.sched.Stats()}
	for _, t := range s.sched.Ordered(false) {
		if len(s.sched.Blockers(t.ID)) > 0 {
			resp.Blocked++
		}
	}
	next, ok := nextReady(s.sched)
	if ok {
		resp.NextID = &next.ID
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.RenderStats(resp.Stats))
	if resp.Blocked > 0 {
		fmt.Fprintf(out, "%d open task(s) waiting on dependencies\n", resp.Blocked)
	}
	if ok {
		fmt.Fprintf(out, "Next: #%d %s\n", next.ID, next.Title)
	}
	return nil
}
