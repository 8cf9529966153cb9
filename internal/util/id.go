// Package util provides parsing helpers shared by the CLI commands.
package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by ID parsing functions.
var (
	ErrInvalidID = errors.New("invalid task ID")
	ErrSelfRef   = errors.New("task cannot depend on itself")
)

// ParseTaskID parses a task id as typed by a user. A leading "#" is accepted,
// so "#12" and "12" are the same id.
func ParseTaskID(s string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: %d must be positive", ErrInvalidID, id)
	}
	return id, nil
}

// ParseIDList parses a comma separated list such as "1, #4,7". Empty entries are
// skipped and repeated ids are kept once.
func ParseIDList(s string) ([]int, error) {
	ids := []int{}
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := ParseTaskID(part)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SplitKnown partitions ids into those for which exists returns true and the
// rest, keeping order in both.
func SplitKnown(ids []int, exists func(int) bool) (known, unknown []int) {
	known = []int{}
	for _, id := range ids {
		if exists(id) {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	return known, unknown
}

// CheckSelfDependency returns ErrSelfRef when deps contains id.
func CheckSelfDependency(id int, deps []int) error {
	for _, d := range deps {
		if d == id {
			return fmt.Errorf("task #%d: %w", id, ErrSelfRef)
		}
	}
	return nil
}
