// Package config provides centralized configuration constants and path
// resolution for smarttask.
package config

// Directory and file names.
const (
	// AppName is used for directory names and the env prefix.
	AppName = "smarttask"

	// LocalDirName is the per-project data directory.
	LocalDirName = ".smarttask"

	// ConfigName is the config file base name, e.g. .smarttask/.smarttask.yaml.
	ConfigName = ".smarttask"

	// EnvPrefix is prepended to environment variables, e.g. SMARTTASK_DATA_FORMAT.
	EnvPrefix = "SMARTTASK"
)

// Defaults applied with viper.SetDefault.
const (
	DefaultDataFile       = "tasks.json"
	DefaultDataFormat     = "json"
	DefaultLogPath        = "logs/smarttask.log"
	DefaultMaxTitleWidth  = 40
	DefaultTimeFormat     = "2006-01-02 15:04"
	DefaultRefreshSeconds = 30
)
