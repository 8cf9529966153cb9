package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/smarttask/models"
	yaml "gopkg.in/yaml.v3"
)

// FormatFromPath guesses a data format from a file extension. It returns ""
// when the extension is not recognised.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return ""
}

// Encode marshals list in one of the text formats.
func Encode(list models.TaskList, format string) ([]byte, error) {
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(list, "", "  ")
	case FormatYAML:
		return yaml.Marshal(list)
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(list); err != nil {
			return nil, fmt.Errorf("marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for encoding: %s", format)
	}
}

// Decode unmarshals a document. Syntax errors, type mismatches and unparsable
// timestamps are reported as *models.DeserializationError with source as the
// path. An empty input decodes to an empty document.
func Decode(data []byte, format, source string) (models.TaskList, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.NewTaskList(), nil
	}

	var list models.TaskList
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &list)
	case FormatYAML:
		err = yaml.Unmarshal(data, &list)
	case FormatTOML:
		_, err = toml.Decode(string(data), &list)
	default:
		return models.TaskList{}, fmt.Errorf("unsupported data format for decoding: %s", format)
	}
	if err != nil {
		return models.TaskList{}, &models.DeserializationError{Path: source, Err: err}
	}
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	return list, nil
}

// DecodeAndValidate decodes data and runs the document checks, so a caller can
// tell a good file from a bad one before touching anything.
func DecodeAndValidate(data []byte, format, source string, schemaCheck bool) (models.TaskList, error) {
	if schemaCheck && format == FormatJSON && len(bytes.TrimSpace(data)) > 0 {
		if err := ValidateJSONSchema(data); err != nil {
			var derr *models.DeserializationError
			if errors.As(err, &derr) {
				derr.Path = source + ": " + derr.Path
				return models.TaskList{}, derr
			}
			return models.TaskList{}, err
		}
	}
	list, err := Decode(data, format, source)
	if err != nil {
		return models.TaskList{}, err
	}
	if err := list.Validate(); err != nil {
		return models.TaskList{}, err
	}
	return list, nil
}
