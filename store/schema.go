package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/josephgoksu/smarttask/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "smarttask://tasks.schema.json"

// taskListSchema describes the JSON document written by the file store.
const taskListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["tasks", "next_id"],
  "properties": {
    "next_id": {"type": "integer", "minimum": 1},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "urgency", "created_at"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "deadline": {"type": ["string", "null"], "format": "date-time"},
          "urgency": {"type": "integer", "minimum": 1, "maximum": 10},
          "dependencies": {"type": ["array", "null"], "items": {"type": "integer"}},
          "completed": {"type": "boolean"},
          "created_at": {"type": "string", "format": "date-time"},
          "priority_score": {"type": "number"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(taskListSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateJSONSchema checks a JSON document against the task list schema. The
// first violation is returned as a *models.DeserializationError whose Path
// points into the document, e.g. "tasks[1].created_at".
func ValidateJSONSchema(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &models.DeserializationError{Err: err}
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return &models.DeserializationError{Err: err}
		}
		leaf := firstLeaf(ve)
		return &models.DeserializationError{
			Path: jsonPointerToPath(leaf.InstanceLocation),
			Err:  fmt.Errorf("%s", leaf.Message),
		}
	}
	return nil
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
