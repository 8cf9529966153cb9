package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Task is the flat persisted record of a single task. Field names are shared by
// every data format (json, yaml, toml) and by the sqlite columns.
type Task struct {
	ID            int        `json:"id" yaml:"id" toml:"id" validate:"required,min=1"`
	Title         string     `json:"title" yaml:"title" toml:"title" validate:"required"`
	Description   string     `json:"description" yaml:"description" toml:"description"`
	Deadline      *time.Time `json:"deadline" yaml:"deadline" toml:"deadline,omitempty"` // nil when the task has no deadline
	Urgency       int        `json:"urgency" yaml:"urgency" toml:"urgency" validate:"required,min=1,max=10"`
	Dependencies  []int      `json:"dependencies" yaml:"dependencies" toml:"dependencies" validate:"dive,min=1"`
	Completed     bool       `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at" toml:"created_at" validate:"required"`
	PriorityScore float64    `json:"priority_score" yaml:"priority_score" toml:"priority_score"`
}

// TaskList is the persisted collection document.
// NextID is stored verbatim so id allocation survives deleting the highest id.
type TaskList struct {
	Tasks  []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	NextID int    `json:"next_id" yaml:"next_id" toml:"next_id" validate:"required,min=1"`
}

// NewTaskList returns an empty document with id allocation starting at 1.
func NewTaskList() TaskList {
	return TaskList{Tasks: []Task{}, NextID: 1}
}

// DeserializationError reports a persisted record that cannot be turned back into
// scheduler state: a missing required field, an unparsable timestamp, a duplicate
// id or an inconsistent next_id.
type DeserializationError struct {
	Path string // location inside the document, e.g. "tasks[2].title"
	Err  error
}

func (e *DeserializationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("deserialize %s: %s", e.Path, e.Err)
	}
	return "deserialize: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}

// Validate checks a whole document: field rules on every record, unique ids and a
// next_id above the highest id. The first problem found is returned as a
// *DeserializationError.
func (l TaskList) Validate() error {
	if l.NextID < 1 {
		return &DeserializationError{Path: "next_id", Err: fmt.Errorf("must be >= 1, got %d", l.NextID)}
	}

	seen := make(map[int]bool, len(l.Tasks))
	maxID := 0
	for i, t := range l.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if err := ValidateStruct(t); err != nil {
			return &DeserializationError{Path: path, Err: err}
		}
		if seen[t.ID] {
			return &DeserializationError{Path: path + ".id", Err: fmt.Errorf("duplicate id %d", t.ID)}
		}
		seen[t.ID] = true
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	if l.NextID <= maxID {
		return &DeserializationError{Path: "next_id", Err: fmt.Errorf("next_id %d must be greater than highest id %d", l.NextID, maxID)}
	}
	return nil
}
