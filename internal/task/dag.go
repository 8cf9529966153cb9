package task

import (
	"fmt"
	"slices"
	"strings"
)

// DanglingRef is a dependency on an id that is not in the collection.
type DanglingRef struct {
	TaskID       int `json:"task_id"`
	DependencyID int `json:"dependency_id"`
}

// Report lists dependency problems. None of them stop Order from producing a
// result; they explain why a task may never appear as ready.
type Report struct {
	SelfReferences []int         `json:"self_references,omitempty"`
	Dangling       []DanglingRef `json:"dangling,omitempty"`
	Cycles         [][]int       `json:"cycles,omitempty"` // each path starts and ends on the same id
}

// OK reports whether nothing was found.
func (r Report) OK() bool {
	return len(r.SelfReferences) == 0 && len(r.Dangling) == 0 && len(r.Cycles) == 0
}

// Err summarises the cycles as an error, or nil when there are none.
func (r Report) Err() error {
	if len(r.Cycles) == 0 {
		return nil
	}
	paths := make([]string, 0, len(r.Cycles))
	for _, c := range r.Cycles {
		paths = append(paths, FormatPath(c))
	}
	return fmt.Errorf("dependency cycle detected: %s", strings.Join(paths, ", "))
}

// FormatPath renders an id path as "#1 -> #2 -> #1".
func FormatPath(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, " -> ")
}

// CheckIntegrity inspects the dependency graph of tasks. Cycles are only
// searched among incomplete tasks since completed ones never block.
func CheckIntegrity(tasks []Task) Report {
	var r Report

	taskMap := make(map[int]Task, len(tasks))
	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		taskMap[t.ID] = t
		ids = append(ids, t.ID)
	}
	slices.Sort(ids)

	for _, id := range ids {
		for _, dep := range taskMap[id].Dependencies {
			if dep == id {
				r.SelfReferences = append(r.SelfReferences, id)
			} else if _, ok := taskMap[dep]; !ok {
				r.Dangling = append(r.Dangling, DanglingRef{TaskID: id, DependencyID: dep})
			}
		}
	}

	visited := make(map[int]bool)
	onStack := make(map[int]int) // id -> index in stack
	var stack []int

	var visit func(id int)
	visit = func(id int) {
		visited[id] = true
		onStack[id] = len(stack)
		stack = append(stack, id)

		for _, dep := range taskMap[id].Dependencies {
			t, ok := taskMap[dep]
			if !ok || dep == id || t.Completed {
				continue
			}
			if at, inProgress := onStack[dep]; inProgress {
				cycle := slices.Clone(stack[at:])
				r.Cycles = append(r.Cycles, append(cycle, dep))
			} else if !visited[dep] {
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, id)
	}

	for _, id := range ids {
		if !visited[id] && !taskMap[id].Completed {
			visit(id)
		}
	}
	return r
}
