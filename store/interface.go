package store

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/smarttask/models"
	"github.com/spf13/afero"
)

// Configuration keys understood by Initialize.
const (
	DataFileKey       = "dataFile"
	DataFileFormatKey = "dataFileFormat"
	SchemaCheckKey    = "schemaCheck"
)

// Supported data formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatTOML   = "toml"
	FormatSQLite = "sqlite"
)

// TaskStore persists the whole task document. The scheduler owns the live
// collection; a store only moves snapshots in and out of a backend.
type TaskStore interface {
	// Initialize configures the store with backend settings such as the data
	// file path and format. It must be called before any other method.
	Initialize(config map[string]string) error

	// Load reads the persisted document. A backend that holds no data yet
	// returns models.NewTaskList().
	Load() (models.TaskList, error)

	// Save replaces the persisted document with list.
	Save(list models.TaskList) error

	// Backup writes a copy of the persisted data to destinationPath.
	Backup(destinationPath string) error

	// Restore validates the document at sourcePath and, only if it is valid,
	// replaces the persisted data with it.
	Restore(sourcePath string) error

	// Path returns the location of the persisted data.
	Path() string

	// Close releases file locks or database handles.
	Close() error
}

// SessionLocker is implemented by stores that can keep other processes out
// for a whole load-modify-save cycle. While held, Load and Save run under the
// held lock instead of taking their own.
type SessionLocker interface {
	Hold() error
	Release() error
}

// New returns an uninitialised store for format. fs is used by the file
// backends; nil means the OS filesystem.
func New(format string, fs afero.Fs) (TaskStore, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON, FormatYAML, FormatTOML:
		return NewFileTaskStore(fs), nil
	case FormatSQLite:
		return NewSQLiteTaskStore(fs), nil
	default:
		return nil, fmt.Errorf("unsupported data format %q (use json, yaml, toml or sqlite)", format)
	}
}
