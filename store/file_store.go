package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/josephgoksu/smarttask/models"
	"github.com/spf13/afero"
)

const (
	defaultDataFile   = "tasks.json" // Default filename if only format implies extension
	defaultDataFormat = FormatJSON
	checksumSuffix    = ".checksum"
	lockSuffix        = ".lock"
)

// locker is the subset of *flock.Flock the store needs.
type locker interface {
	Lock() error
	RLock() error
	Unlock() error
}

// noLock is used when the store runs on a non-OS filesystem, where there is no
// other process to coordinate with.
type noLock struct{}

func (noLock) Lock() error   { return nil }
func (noLock) RLock() error  { return nil }
func (noLock) Unlock() error { return nil }

// FileTaskStore implements the TaskStore interface using a file backend.
// It supports JSON, YAML, and TOML formats, keeps a sha256 checksum sidecar
// next to the data file and serialises access across processes with a lock
// file.
type FileTaskStore struct {
	fs          afero.Fs
	filePath    string
	format      string // "json", "yaml" or "toml"
	schemaCheck bool
	flk         locker
	held        bool
}

// NewFileTaskStore creates a new instance of FileTaskStore on fs (nil means the
// OS filesystem). Initialize must be called separately.
func NewFileTaskStore(fsys afero.Fs) *FileTaskStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FileTaskStore{fs: fsys}
}

// Initialize configures the FileTaskStore.
// It expects a 'dataFile' key in the config map specifying the path to the data file.
// If not provided, it defaults to 'tasks.json' in the current working directory.
// The directory of the data file is created when missing.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[DataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[DataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case FormatJSON, FormatYAML, FormatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else if guessed := FormatFromPath(s.filePath); guessed != "" && guessed != FormatSQLite {
		s.format = guessed
	} else {
		s.format = defaultDataFormat
	}

	// A default file name follows the chosen format's extension.
	if s.filePath == defaultDataFile && s.format != FormatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	if val, ok := config[SchemaCheckKey]; ok && val != "" {
		check, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", SchemaCheckKey, val, err)
		}
		s.schemaCheck = check
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, isOS := s.fs.(*afero.OsFs); isOS {
		s.flk = flock.New(s.filePath + lockSuffix)
	} else {
		s.flk = noLock{}
	}
	return nil
}

// Path returns the data file path.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// Format returns the data format in use.
func (s *FileTaskStore) Format() string {
	return s.format
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads the data file, verifies its checksum and decodes it. A missing
// data file yields an empty document.
func (s *FileTaskStore) Load() (models.TaskList, error) {
	if err := s.rlock(); err != nil {
		return models.TaskList{}, fmt.Errorf("failed to acquire read lock for %s: %w", s.filePath, err)
	}
	defer s.unlock()

	return s.loadInternal()
}

// loadInternal assumes the lock is held.
func (s *FileTaskStore) loadInternal() (models.TaskList, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewTaskList(), nil
		}
		return models.TaskList{}, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if err := s.verifyChecksum(data); err != nil {
		return models.TaskList{}, err
	}

	list, err := DecodeAndValidate(data, s.format, s.filePath, s.schemaCheck)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("failed to load %s: %w", s.filePath, err)
	}
	return list, nil
}

// verifyChecksum compares data with the sidecar. A data file without a sidecar
// was written by hand or by an older version and is accepted; the next save
// creates the sidecar.
func (s *FileTaskStore) verifyChecksum(data []byte) error {
	checksumFilePath := s.filePath + checksumSuffix
	expected, err := afero.ReadFile(s.fs, checksumFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading checksum file %s: %w", checksumFilePath, err)
	}

	want := strings.TrimSpace(string(expected))
	if got := calculateChecksum(data); got != want {
		return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or was edited by hand", s.filePath, want, got)
	}
	return nil
}

// Save writes list to a temporary file, then renames it and its checksum into
// place.
func (s *FileTaskStore) Save(list models.TaskList) error {
	if err := s.lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", s.filePath, err)
	}
	defer s.unlock()

	return s.saveInternal(list)
}

// saveInternal assumes the lock is held.
func (s *FileTaskStore) saveInternal(list models.TaskList) error {
	data, err := Encode(list, s.format)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = s.fs.Remove(tempFilePath) }()
	defer func() { _ = s.fs.Remove(tempChecksumFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := afero.WriteFile(s.fs, tempChecksumFilePath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := s.fs.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated, but failed to update checksum file %s: %w", s.filePath, checksumFilePath, err)
	}
	return nil
}

// Backup copies the data file and its checksum sidecar to destinationPath.
func (s *FileTaskStore) Backup(destinationPath string) error {
	if err := s.rlock(); err != nil {
		return fmt.Errorf("failed to acquire read lock for backup: %w", err)
	}
	defer s.unlock()

	input, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}
	if err := s.verifyChecksum(input); err != nil {
		return err
	}

	if dir := filepath.Dir(destinationPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	if err := afero.WriteFile(s.fs, destinationPath+checksumSuffix, []byte(calculateChecksum(input)), 0o644); err != nil {
		return fmt.Errorf("failed to write backup checksum for %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the data file with the document at sourcePath. The source
// may be in any supported text format; it is fully validated and then written
// in this store's format, so a bad backup never replaces good data.
func (s *FileTaskStore) Restore(sourcePath string) error {
	list, err := ReadDocument(s.fs, sourcePath, s.format, s.schemaCheck)
	if err != nil {
		return err
	}

	if err := s.lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for restore: %w", err)
	}
	defer s.unlock()

	return s.saveInternal(list)
}

// Hold takes the exclusive lock and keeps it until Release or Close.
func (s *FileTaskStore) Hold() error {
	if s.held {
		return nil
	}
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", s.filePath, err)
	}
	s.held = true
	return nil
}

// Release gives up a lock taken by Hold.
func (s *FileTaskStore) Release() error {
	if !s.held {
		return nil
	}
	s.held = false
	return s.flk.Unlock()
}

// rlock, lock and unlock are no-ops while Hold is in effect. Taking a shared
// lock on the held descriptor would downgrade it.
func (s *FileTaskStore) rlock() error {
	if s.held {
		return nil
	}
	return s.flk.RLock()
}

func (s *FileTaskStore) lock() error {
	if s.held {
		return nil
	}
	return s.flk.Lock()
}

func (s *FileTaskStore) unlock() {
	if !s.held {
		_ = s.flk.Unlock()
	}
}

// Close releases the lock and its file handle.
func (s *FileTaskStore) Close() error {
	if s.flk == nil {
		return nil
	}
	_ = s.Release()
	if fl, ok := s.flk.(*flock.Flock); ok {
		return fl.Close()
	}
	return nil
}

// ReadDocument reads and validates a task document from path. The format is
// taken from the file extension, falling back to fallbackFormat. A checksum
// sidecar next to the file, when present, must match.
func ReadDocument(fsys afero.Fs, path, fallbackFormat string, schemaCheck bool) (models.TaskList, error) {
	format := FormatFromPath(path)
	if format == "" || format == FormatSQLite {
		format = fallbackFormat
	}
	if format == FormatSQLite || format == "" {
		format = FormatJSON
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if sum, err := afero.ReadFile(fsys, path+checksumSuffix); err == nil {
		if got := calculateChecksum(data); got != strings.TrimSpace(string(sum)) {
			return models.TaskList{}, fmt.Errorf("checksum mismatch for %s - file is corrupt or was edited by hand", path)
		}
	}

	list, err := DecodeAndValidate(data, format, path, schemaCheck)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return list, nil
}
