package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesConfig(t *testing.T) {
	dir := setupCmdTest(t)
	viper.Set("data.dir", "")

	out := mustExecute(t, "init", "--format", "yaml")
	assert.Contains(t, out, "Created")

	cfgPath := filepath.Join(dir, ".smarttask", ".smarttask.yaml")
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: yaml")
	assert.FileExists(t, filepath.Join(dir, ".smarttask", ".gitignore"))

	out = mustExecute(t, "init")
	assert.Contains(t, out, "already initialized")

	_, _, err = execute(t, "init", "--format", "xml", "--force")
	assert.Error(t, err)
}

func TestInit_Sample(t *testing.T) {
	setupCmdTest(t)
	viper.Set("data.dir", "")

	out := mustExecute(t, "init", "--sample")
	assert.Contains(t, out, "Added 5 sample tasks")

	// Scores at the fixed clock: #3 160, #1 130, #2 130, #4 55, #5 85.
	// #4 waits on #1 and #5 waits on #1 and #4.
	tasks := listJSON(t, "list")
	assert.Equal(t, []int{3, 1, 2, 4, 5}, taskIDs(tasks))
	assert.Equal(t, []int{1, 4}, tasks[4].BlockedBy)

	out = mustExecute(t, "init", "--sample")
	assert.Contains(t, out, "sample tasks not added")
	assert.Len(t, listJSON(t, "list"), 5)
}

func TestDoctor_Clean(t *testing.T) {
	setupCmdTest(t)
	mustExecute(t, "add", "A")
	mustExecute(t, "add", "B", "--deps", "1")

	out := mustExecute(t, "doctor")
	assert.Contains(t, out, "Load: 2 task(s), 2 pending, next id 3")
	assert.Contains(t, out, "Dependencies: no self references")
	assert.Contains(t, out, "Everything looks good")
}

func TestDoctor_ReportsCycle(t *testing.T) {
	setupCmdTest(t)
	mustExecute(t, "add", "A")
	mustExecute(t, "add", "B", "--deps", "1")
	mustExecute(t, "update", "1", "--deps", "2")

	out := mustExecute(t, "doctor")
	assert.Contains(t, out, "Cycle: #1 -> #2 -> #1")

	// the cycle does not stop ordering
	assert.Len(t, listJSON(t, "list"), 2)
}

func TestDoctor_CorruptDataFails(t *testing.T) {
	dir := setupCmdTest(t)
	mustExecute(t, "add", "A")

	path := filepath.Join(dir, "tasks.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, ' '), 0o644))

	out, _, err := execute(t, "doctor")
	assert.ErrorIs(t, err, errDoctorFailed)
	assert.Contains(t, out, "checksum mismatch")

	_, _, err = execute(t, "list")
	assert.ErrorContains(t, err, "checksum mismatch")
}
