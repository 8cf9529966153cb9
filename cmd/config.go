package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/smarttask/internal/config"
	"github.com/josephgoksu/smarttask/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	return validate.Struct(cfg)
}

func setConfigDefaults() {
	viper.SetDefault("project.rootDir", config.LocalDirName)
	viper.SetDefault("project.outputLogPath", config.DefaultLogPath)
	viper.SetDefault("data.file", config.DefaultDataFile)
	viper.SetDefault("data.format", config.DefaultDataFormat)
	viper.SetDefault("data.schemaCheck", true)
	viper.SetDefault("display.maxTitleWidth", config.DefaultMaxTitleWidth)
	viper.SetDefault("display.timeFormat", config.DefaultTimeFormat)
	viper.SetDefault("board.refreshSeconds", config.DefaultRefreshSeconds)
}

// InitConfig reads in config file and ENV variables if set. It exits the
// process when the resulting configuration is invalid.
func InitConfig() {
	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig populates GlobalAppConfig from .env, the environment, the config
// file and defaults, in that order of precedence after explicit flags.
func loadConfig() error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	bindPersistentFlags()

	viper.SetEnvPrefix(config.EnvPrefix) // e.g., SMARTTASK_DATA_FORMAT
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	projectDir := viper.GetString("project.rootDir")
	if projectDir == "" {
		projectDir = config.LocalDirName
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.SetConfigName(config.ConfigName)
		if info, err := os.Stat(projectDir); err == nil && info.IsDir() {
			viper.AddConfigPath(projectDir) // ./.smarttask/.smarttask.yaml
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			LogError("no config file found, using defaults and environment", nil)
		case cfgFileFlag != "" && errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("config file %s not found", cfgFileFlag)
		default:
			return fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
		}
	} else {
		LogError("using config file "+viper.ConfigFileUsed(), nil)
	}

	setConfigDefaults()

	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Project.RootDir == "" {
		cfg.Project.RootDir = viper.GetString("project.rootDir")
	}
	if cfg.Project.OutputLogPath == "" {
		cfg.Project.OutputLogPath = viper.GetString("project.outputLogPath")
	}
	if !filepath.IsAbs(cfg.Project.OutputLogPath) {
		cfg.Project.OutputLogPath = filepath.Join(cfg.Project.RootDir, cfg.Project.OutputLogPath)
	}
	cfg.Data.Format = strings.ToLower(cfg.Data.Format)

	if err := validateAppConfig(&cfg); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	GlobalAppConfig = cfg
	return nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// dataFileName returns the configured data file, following the format's
// extension when the default name is still in place.
func dataFileName(cfg *types.AppConfig) string {
	file := cfg.Data.File
	if file == "" || file == config.DefaultDataFile {
		switch cfg.Data.Format {
		case "", "json":
			return config.DefaultDataFile
		case "sqlite":
			return "tasks.db"
		default:
			return "tasks." + cfg.Data.Format
		}
	}
	return file
}

// GetTaskFilePath returns the full path to the task data file.
func GetTaskFilePath() string {
	return config.ResolveDataFile(dataFileName(GetConfig()))
}
