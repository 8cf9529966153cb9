package task

import (
	"fmt"
	"slices"
	"time"
)

// DefaultUrgency is applied when a new task is added without an urgency.
const DefaultUrgency = 5

// Urgency bounds, inclusive.
const (
	MinUrgency = 1
	MaxUrgency = 10
)

// HighUrgency is the threshold for the high-priority query and row colouring.
const HighUrgency = 8

// Task is one unit of work tracked by the Scheduler.
type Task struct {
	ID            int
	Title         string
	Description   string
	Deadline      *time.Time // nil means no deadline
	Urgency       int
	Dependencies  []int // set semantics, insertion order kept
	Completed     bool
	CreatedAt     time.Time
	PriorityScore float64 // last computed score, see ComputePriorityScore
}

// NewTask holds the fields accepted by Scheduler.Add.
// A zero Urgency means DefaultUrgency.
type NewTask struct {
	Title        string
	Description  string
	Deadline     *time.Time
	Urgency      int
	Dependencies []int
}

// Patch is a partial update for Scheduler.Edit. Nil fields are left unchanged.
// ClearDeadline removes the deadline and takes precedence over Deadline.
type Patch struct {
	Title         *string
	Description   *string
	Deadline      *time.Time
	ClearDeadline bool
	Urgency       *int
	Dependencies  *[]int
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Deadline == nil &&
		!p.ClearDeadline && p.Urgency == nil && p.Dependencies == nil
}

// Clone returns a deep copy that shares no memory with t.
func (t Task) Clone() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.Dependencies != nil {
		c.Dependencies = slices.Clone(t.Dependencies)
	}
	return c
}

// HasDependency reports whether id is among the task's dependencies.
func (t Task) HasDependency(id int) bool {
	return slices.Contains(t.Dependencies, id)
}

// Validate checks the user-editable fields.
func (t *Task) Validate() error {
	return validateFields(t.Title, t.Urgency, t.Dependencies)
}

// validateFields accepts dependency ids that do not exist, but never ids that
// no task could have.
func validateFields(title string, urgency int, deps []int) error {
	if title == "" {
		return &ValidationError{Field: "title", Err: errEmptyTitle}
	}
	if urgency < MinUrgency || urgency > MaxUrgency {
		return &ValidationError{Field: "urgency", Err: errUrgencyRange}
	}
	for _, id := range deps {
		if id < 1 {
			return &ValidationError{Field: "dependencies", Err: fmt.Errorf("%w: %d", errDependencyID, id)}
		}
	}
	return nil
}

// dedupe drops repeated ids while keeping first-seen order.
func dedupe(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	out := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
