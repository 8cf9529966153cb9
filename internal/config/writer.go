package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the subset of settings written by `smarttask init`.
type FileConfig struct {
	Project struct {
		RootDir       string `yaml:"rootDir"`
		OutputLogPath string `yaml:"outputLogPath"`
	} `yaml:"project"`
	Data struct {
		File        string `yaml:"file"`
		Format      string `yaml:"format"`
		SchemaCheck bool   `yaml:"schemaCheck"`
	} `yaml:"data"`
	Display struct {
		MaxTitleWidth int    `yaml:"maxTitleWidth"`
		TimeFormat    string `yaml:"timeFormat"`
	} `yaml:"display"`
	Board struct {
		RefreshSeconds int `yaml:"refreshSeconds"`
	} `yaml:"board"`
}

// DefaultFileConfig returns the settings written for a new project.
func DefaultFileConfig(rootDir, format string) FileConfig {
	if format == "" {
		format = DefaultDataFormat
	}
	var c FileConfig
	c.Project.RootDir = rootDir
	c.Project.OutputLogPath = DefaultLogPath
	c.Data.Format = format
	c.Data.File = "tasks." + format
	if format == "sqlite" {
		c.Data.File = "tasks.db"
	}
	c.Data.SchemaCheck = true
	c.Display.MaxTitleWidth = DefaultMaxTitleWidth
	c.Display.TimeFormat = DefaultTimeFormat
	c.Board.RefreshSeconds = DefaultRefreshSeconds
	return c
}

// WriteConfigFile writes cfg as YAML to dir/.smarttask.yaml and returns the
// path. An existing file is left alone unless overwrite is set.
func WriteConfigFile(dir string, cfg FileConfig, overwrite bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(dir, ConfigName+".yaml")

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, os.ErrExist
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	content := append([]byte("# smarttask configuration\n"), data...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
