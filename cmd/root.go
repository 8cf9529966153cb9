/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/josephgoksu/smarttask/internal/logger"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"

	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smarttask",
	Short: "smarttask - priority-aware task tracking",
	Long: `smarttask keeps a personal list of tasks and tells you what to work on next.

Every task gets a priority score from its urgency, how close its deadline is
and how long it has been waiting. Tasks that depend on unfinished work are
held back until that work is done.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		logger.SetBasePath(cfg.Project.RootDir)
		logger.SetCommand(cmd.CommandPath(), args)

		// Log to file only once the project directory exists, so a first run
		// does not create it as a side effect.
		logPath := cfg.Project.OutputLogPath
		if _, err := os.Stat(cfg.Project.RootDir); err != nil {
			logPath = ""
		}

		_, closer, err := logger.Setup(logger.Options{
			Path:    logPath,
			Verbose: isVerbose(),
			Version: version,
		})
		if err != nil {
			// Logging is best effort; the command still runs.
			LogError("log setup failed", err)
			return nil
		}
		logCloser = closer
		slog.Debug("command started", "command", cmd.CommandPath(), "args", args)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.smarttask/.smarttask.yaml or $HOME/.smarttask.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "print only essential output")

	bindPersistentFlags()
}

// bindPersistentFlags binds the global flags to Viper. It is repeated on every
// config load so a viper.Reset does not lose the bindings.
func bindPersistentFlags() {
	for _, name := range []string{"config", "verbose", "json", "quiet"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// GetStore initializes and returns the task store for the configured data
// file and format.
func GetStore() (store.TaskStore, error) {
	cfg := GetConfig()
	return openStoreAt(GetTaskFilePath(), cfg.Data.Format, cfg.Data.SchemaCheck)
}

func openStoreAt(path, format string, schemaCheck bool) (store.TaskStore, error) {
	s, err := store.New(format, nil)
	if err != nil {
		return nil, err
	}

	settings := map[string]string{
		store.DataFileKey:    path,
		store.SchemaCheckKey: strconv.FormatBool(schemaCheck),
	}
	if format != store.FormatSQLite {
		settings[store.DataFileFormatKey] = format
	}
	if err := s.Initialize(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", path, err)
	}
	return s, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(s *task.Scheduler, filterFn func(task.Task) bool, label string) (task.Task, error) {
	var tasks []task.Task
	for _, t := range s.Ordered(true) {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}

	if len(tasks) == 0 {
		return task.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (#{{ .ID }}, urgency {{ .Urgency }})`,
		Inactive: `  {{ .Title | faint }} (#{{ .ID }}, urgency {{ .Urgency }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (#{{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Urgency:\t" | faint }} {{ .Urgency }}
{{ "Score:\t" | faint }} {{ printf "%.1f" .PriorityScore }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		input = strings.ToLower(strings.TrimPrefix(input, "#"))
		return strings.Contains(strings.ToLower(t.Title), input) || strconv.Itoa(t.ID) == input
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return task.Task{}, err // includes promptui.ErrInterrupt
	}
	return tasks[i], nil
}
