package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

// setupCmdTest runs the test inside a fresh directory with the data file at
// <dir>/tasks.json and a fixed clock.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	viper.Reset()
	viper.Set("data.dir", dir)
	viper.Set("project.rootDir", filepath.Join(dir, ".smarttask"))

	clock = func() time.Time { return testNow }
	t.Cleanup(func() {
		clock = time.Now
		viper.Reset()
	})
	return dir
}

// resetFlags puts every flag back to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := execute(t, args...)
	require.NoError(t, err, "smarttask %v\nstderr: %s", args, stderr)
	return out
}

type listedTask struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Urgency      int    `json:"urgency"`
	Dependencies []int  `json:"dependencies"`
	Completed    bool   `json:"completed"`
	BlockedBy    []int  `json:"blocked_by"`
	Status       string `json:"status"`
}

func listJSON(t *testing.T, args ...string) []listedTask {
	t.Helper()
	out := mustExecute(t, append(args, "--json")...)
	var tasks []listedTask
	require.NoError(t, json.Unmarshal([]byte(out), &tasks), out)
	return tasks
}

func showJSON(t *testing.T, id string) listedTask {
	t.Helper()
	out := mustExecute(t, "show", id, "--json")
	var got listedTask
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}

func taskIDs(tasks []listedTask) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
