/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/josephgoksu/smarttask/internal/config"
	"github.com/josephgoksu/smarttask/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Copy the task data to a backup file",
	Long: `Copy the task data to a backup file together with its checksum.

Without a file name the backup goes to backups/ inside the data directory.
Backups of a sqlite store are written as JSON documents.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the task data with a backup",
	Long: `Replace the task data with the contents of a backup file. The backup is
validated first; if it is corrupt or invalid the current data is left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var restoreYes bool

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}

// defaultBackupPath names a backup file next to the data, unique per run.
func defaultBackupPath() string {
	format := GetConfig().Data.Format
	if format == "" || format == store.FormatSQLite {
		format = store.FormatJSON
	}
	name := fmt.Sprintf("tasks_%s_%s.%s", clock().Format("20060102_150405"), uuid.NewString()[:8], format)
	return filepath.Join(config.GetDataDir(), "backups", name)
}

func runBackup(cmd *cobra.Command, args []string) error {
	dest := defaultBackupPath()
	if len(args) > 0 {
		dest = args[0]
	}

	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Backup(dest); err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"status": "ok", "path": dest})
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Backed up %s to %s\n", st.Path(), dest)
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	src := args[0]

	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	confirmed, err := confirmOrAbort(fmt.Sprintf("Replace %s with %s", st.Path(), src), restoreYes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
		return nil
	}

	if err := st.Restore(src); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	list, err := st.Load()
	if err != nil {
		return fmt.Errorf("restore: reading back: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"status": "ok", "tasks": len(list.Tasks), "next_id": list.NextID})
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %d task(s) from %s\n", len(list.Tasks), src)
	}
	return nil
}
