package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestGetDataDir_ResolutionOrder(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	work := t.TempDir()
	chdir(t, work)

	origGlobal := GetGlobalConfigDir
	t.Cleanup(func() { GetGlobalConfigDir = origGlobal })
	GetGlobalConfigDir = func() (string, error) { return "/home/test/.smarttask", nil }

	t.Setenv("XDG_DATA_HOME", "")
	assert.Equal(t, "/home/test/.smarttask", GetDataDir())

	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "smarttask"), GetDataDir())

	require.NoError(t, os.Mkdir(LocalDirName, 0o755))
	assert.Equal(t, LocalDirName, GetDataDir())

	viper.Set("data.dir", "/explicit")
	assert.Equal(t, "/explicit", GetDataDir())
}

func TestGetDataDir_GlobalError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	origGlobal := GetGlobalConfigDir
	t.Cleanup(func() { GetGlobalConfigDir = origGlobal })
	GetGlobalConfigDir = func() (string, error) { return "", errors.New("no home") }

	assert.Equal(t, LocalDirName, GetDataDir())
}

func TestResolveDataFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("data.dir", "/d")

	assert.Equal(t, filepath.Join("/d", "tasks.yaml"), ResolveDataFile("tasks.yaml"))
	assert.Equal(t, filepath.Join("/d", DefaultDataFile), ResolveDataFile(""))
	assert.Equal(t, "/abs/tasks.json", ResolveDataFile("/abs/tasks.json"))
}

func TestWriteConfigFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteConfigFile(dir, DefaultFileConfig(dir, "yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".smarttask.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got FileConfig
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "tasks.yaml", got.Data.File)
	assert.Equal(t, "yaml", got.Data.Format)
	assert.Equal(t, DefaultRefreshSeconds, got.Board.RefreshSeconds)

	_, err = WriteConfigFile(dir, DefaultFileConfig(dir, "json"), false)
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = WriteConfigFile(dir, DefaultFileConfig(dir, "sqlite"), true)
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "tasks.db")
}
