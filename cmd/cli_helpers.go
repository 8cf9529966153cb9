package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/josephgoksu/smarttask/internal/util"
	"github.com/josephgoksu/smarttask/internal/utils"
	"github.com/josephgoksu/smarttask/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// clock is the current time as seen by commands. Tests replace it.
var clock = time.Now

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// session is one load-modify-save cycle against the configured store.
type session struct {
	store store.TaskStore
	sched *task.Scheduler
}

// openSession loads the persisted document into a fresh scheduler. Nothing is
// written unless save is called.
func openSession() (*session, error) {
	return newSession(false)
}

// openWriteSession is openSession for commands that save. The store stays
// locked until close, so a concurrent command cannot overwrite the change.
func openWriteSession() (*session, error) {
	return newSession(true)
}

func newSession(exclusive bool) (*session, error) {
	st, err := GetStore()
	if err != nil {
		return nil, err
	}

	if l, ok := st.(store.SessionLocker); ok && exclusive {
		if err := l.Hold(); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	list, err := st.Load()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load tasks from %s: %w", st.Path(), err)
	}

	sched := task.New(task.WithClock(clock), task.WithLogger(slog.Default()))
	if err := sched.Restore(list); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load tasks from %s: %w", st.Path(), err)
	}
	return &session{store: st, sched: sched}, nil
}

func (s *session) save() error {
	if err := s.store.Save(s.sched.Snapshot()); err != nil {
		return fmt.Errorf("save tasks to %s: %w", s.store.Path(), err)
	}
	return nil
}

func (s *session) close() {
	_ = s.store.Close()
}

// exists reports whether id names a task in the session.
func (s *session) exists(id int) bool {
	_, ok := s.sched.Get(id)
	return ok
}

// knownDependencies drops ids that name no task and warns about them.
func (s *session) knownDependencies(cmd *cobra.Command, deps []int) []int {
	known, unknown := util.SplitKnown(deps, s.exists)
	if len(unknown) > 0 && !isQuiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring unknown dependency ids: %s\n", utils.HashIDs(unknown))
	}
	return known
}

// blockersFor maps each task id to its current blockers.
func blockersFor(s *task.Scheduler, tasks []task.Task) map[int][]int {
	out := make(map[int][]int, len(tasks))
	for _, t := range tasks {
		if b := s.Blockers(t.ID); len(b) > 0 {
			out[t.ID] = b
		}
	}
	return out
}

func viewOptions() ui.ViewOptions {
	cfg := GetConfig()
	return ui.ViewOptions{
		MaxTitleWidth: cfg.Display.MaxTitleWidth,
		TimeFormat:    cfg.Display.TimeFormat,
	}
}

// resolveTaskArg parses the id argument or, when it is missing and the
// terminal is interactive, asks the user to pick a task.
func resolveTaskArg(s *session, args []string, filterFn func(task.Task) bool, label string) (int, error) {
	if len(args) > 0 {
		return util.ParseTaskID(args[0])
	}
	if isJSON() || !ui.IsInteractive() {
		return 0, errors.New("a task id is required")
	}
	t, err := selectTaskInteractive(s.sched, filterFn, label)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// confirmOrAbort asks a yes/no question. Non-interactive sessions must pass
// --yes instead.
func confirmOrAbort(label string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if isJSON() || !ui.IsInteractive() {
		return false, errors.New("confirmation required; pass --yes to proceed")
	}
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isCancelled reports a user backing out of an interactive prompt.
func isCancelled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
