/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to other formats",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Export tasks as CSV",
	Long: `Write tasks to a CSV file, id ascending. Use "-" to write to standard output.
Completed tasks are left out unless --all is passed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCSV,
}

var exportAll bool

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCSVCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "include completed tasks")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	var tasks []task.Task
	for _, t := range s.sched.List() {
		if exportAll || !t.Completed {
			tasks = append(tasks, t)
		}
	}
	records := task.ToRecords(tasks)

	if args[0] == "-" {
		return store.ExportCSV(cmd.OutOrStdout(), records)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[0], err)
	}
	if err := store.ExportCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", args[0], err)
	}

	if !isQuiet() && !isJSON() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d task(s) to %s\n", len(records), args[0])
	}
	return nil
}
