/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	JSON    bool          `mapstructure:"json"`
	Quiet   bool          `mapstructure:"quiet"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Display DisplayConfig `mapstructure:"display"`
	Board   BoardConfig   `mapstructure:"board"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir       string `mapstructure:"rootDir" validate:"required"`
	OutputLogPath string `mapstructure:"outputLogPath" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir         string `mapstructure:"dir"`
	File        string `mapstructure:"file" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml sqlite"`
	SchemaCheck bool   `mapstructure:"schemaCheck"`
}

// DisplayConfig controls table rendering.
type DisplayConfig struct {
	MaxTitleWidth int    `mapstructure:"maxTitleWidth" validate:"omitempty,min=8,max=200"`
	TimeFormat    string `mapstructure:"timeFormat" validate:"required"`
}

// BoardConfig controls the live board view.
type BoardConfig struct {
	// RefreshSeconds is how often the board re-orders tasks so that deadline
	// and age terms stay current.
	RefreshSeconds int `mapstructure:"refreshSeconds" validate:"min=1,max=3600"`
}
