/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephgoksu/smarttask/internal/config"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/store"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize smarttask in the current directory",
	Long: `Initialize a smarttask project in the current directory.

This creates the .smarttask directory with:
  • .smarttask.yaml - configuration (data format, display settings)
  • the task data file, once the first task is saved
  • .gitignore - keeps logs, backups and lock files out of version control

With --sample, five demo tasks with deadlines and dependencies are added.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initFormat string
	initSample bool
	initForce  bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFormat, "format", config.DefaultDataFormat, "data format: json, yaml, toml or sqlite")
	initCmd.Flags().BoolVar(&initSample, "sample", false, "add demo tasks")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config and allow seeding a non-empty list")
}

const gitignoreContent = `# smarttask generated files
logs/
backups/
crash_logs/
*.lock
*.tmp
`

func runInit(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(initFormat)
	switch format {
	case store.FormatJSON, store.FormatYAML, store.FormatTOML, store.FormatSQLite:
	default:
		return fmt.Errorf("unsupported format %q (use json, yaml, toml or sqlite)", initFormat)
	}

	dir := config.LocalDirName
	fc := config.DefaultFileConfig(dir, format)
	out := cmd.OutOrStdout()

	cfgPath, err := config.WriteConfigFile(dir, fc, initForce)
	created := err == nil
	switch {
	case errors.Is(err, os.ErrExist):
		fmt.Fprintf(out, "✓ smarttask already initialized (%s)\n", cfgPath)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "✓ Created %s\n", cfgPath)
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); err != nil {
			LogError("write .gitignore", err)
		}
	}

	if !initSample {
		if created && !isQuiet() {
			fmt.Fprintln(out, "Add your first task with 'smarttask add \"title\"'.")
		}
		return nil
	}

	var st store.TaskStore
	if created {
		st, err = openStoreAt(filepath.Join(dir, fc.Data.File), fc.Data.Format, fc.Data.SchemaCheck)
	} else {
		st, err = GetStore()
	}
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	n, err := seedSample(st, initForce)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "Task list is not empty; sample tasks not added (use --force to add them anyway).")
		return nil
	}
	fmt.Fprintf(out, "✓ Added %d sample tasks to %s\n", n, st.Path())
	return nil
}

// sampleTasks returns the demo tasks with deadlines relative to now.
// Dependencies refer to the ids the tasks get in an empty list.
func sampleTasks(now time.Time) []task.NewTask {
	in := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	day := 24 * time.Hour
	return []task.NewTask{
		{
			Title:       "Complete Project Proposal",
			Description: "Write and submit the final project proposal for Q4 planning.",
			Deadline:    in(2 * day),
			Urgency:     9,
		},
		{
			Title:       "Team Meeting Preparation",
			Description: "Prepare agenda and materials for weekly team meeting.",
			Deadline:    in(day),
			Urgency:     7,
		},
		{
			Title:       "Code Review",
			Description: "Review pull requests from team members.",
			Deadline:    in(4 * time.Hour),
			Urgency:     6,
		},
		{
			Title:        "Update Documentation",
			Description:  "Update API documentation with recent changes.",
			Deadline:     in(5 * day),
			Urgency:      4,
			Dependencies: []int{1},
		},
		{
			Title:        "Client Presentation",
			Description:  "Prepare presentation for client meeting next week.",
			Deadline:     in(7 * day),
			Urgency:      8,
			Dependencies: []int{1, 4},
		},
	}
}

// seedSample adds the demo tasks and returns how many were added. A list that
// already has tasks is left alone unless force is set.
func seedSample(st store.TaskStore, force bool) (int, error) {
	list, err := st.Load()
	if err != nil {
		return 0, err
	}
	if len(list.Tasks) > 0 && !force {
		return 0, nil
	}

	sched := task.New(task.WithClock(clock))
	if err := sched.Restore(list); err != nil {
		return 0, err
	}

	// Dependencies are written against ids 1..5; shift them onto the ids the
	// tasks actually receive.
	base := sched.NextID() - 1
	for _, nt := range sampleTasks(clock()) {
		for i := range nt.Dependencies {
			nt.Dependencies[i] += base
		}
		if _, err := sched.Add(nt); err != nil {
			return 0, err
		}
	}
	if err := st.Save(sched.Snapshot()); err != nil {
		return 0, err
	}
	return len(sampleTasks(clock())), nil
}
