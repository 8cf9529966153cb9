package task

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by callers that turn a false result from Get, Edit,
// Delete or Complete into an error.
var ErrNotFound = errors.New("task not found")

var (
	errEmptyTitle   = errors.New("title cannot be empty")
	errUrgencyRange = fmt.Errorf("urgency must be between %d and %d", MinUrgency, MaxUrgency)
	errDependencyID = errors.New("dependency ids must be positive")
)

// ValidationError reports user-supplied field values the scheduler rejects.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError wraps ErrNotFound with the id that was looked up.
func NotFoundError(id int) error {
	return fmt.Errorf("task #%d: %w", id, ErrNotFound)
}
