/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"log/slog"
	"time"

	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Live view of the execution order",
	Long: `Open a full-screen view of the execution order.

The view reloads when the data file changes (for example after 'smarttask add'
in another terminal) and every board.refreshSeconds so that scores follow the
clock as deadlines approach.

Keys: r refresh, a toggle completed tasks, q quit.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

// loadBoardData reads the store afresh and orders it.
func loadBoardData(includeCompleted bool) (ui.BoardData, error) {
	s, err := openSession()
	if err != nil {
		return ui.BoardData{}, err
	}
	defer s.close()

	ordered := s.sched.Ordered(includeCompleted)
	return ui.BoardData{
		Tasks:    ordered,
		Blockers: blockersFor(s.sched, ordered),
		Stats:    s.sched.Stats(),
		Now:      clock(),
	}, nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return errors.New("board needs an interactive terminal; use 'smarttask list' instead")
	}
	cfg := GetConfig()

	opts := ui.BoardOptions{
		Title:   "smarttask",
		Refresh: time.Duration(cfg.Board.RefreshSeconds) * time.Second,
		View:    viewOptions(),
	}

	path := GetTaskFilePath()
	if path != ":memory:" {
		watcher, err := ui.WatchFile(path, slog.Default())
		if err != nil {
			LogError("file watch unavailable, relying on the refresh timer", err)
		} else {
			defer func() { _ = watcher.Close() }()
			opts.Changes = watcher.Changes()
		}
	}
	return ui.RunBoard(ui.NewBoardModel(loadBoardData, opts))
}
