package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global data directory (~/.smarttask).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LocalDirName), nil
}

// GetDataDir returns the directory holding the task data file.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (Viper/env/flag)
// 2. Local project directory: .smarttask (if exists)
// 3. XDG_DATA_HOME/smarttask (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.smarttask
func GetDataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir
	}

	if info, err := os.Stat(LocalDirName); err == nil && info.IsDir() {
		return LocalDirName
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return LocalDirName
	}
	return dir
}

// ResolveDataFile joins a relative data file name onto GetDataDir. Absolute
// paths are returned unchanged.
func ResolveDataFile(file string) string {
	if file == "" {
		file = DefaultDataFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(GetDataDir(), file)
}
