package task

import (
	"container/heap"
	"slices"
	"time"
)

// before is the ordering comparator: higher score first, then lower id.
func before(a, b *Task) bool {
	if a.PriorityScore != b.PriorityScore {
		return a.PriorityScore > b.PriorityScore
	}
	return a.ID < b.ID
}

// readySet is a max-heap of positions into a task slice.
type readySet struct {
	tasks []Task
	items []int
}

func (r *readySet) Len() int           { return len(r.items) }
func (r *readySet) Less(i, j int) bool { return before(&r.tasks[r.items[i]], &r.tasks[r.items[j]]) }
func (r *readySet) Swap(i, j int)      { r.items[i], r.items[j] = r.items[j], r.items[i] }
func (r *readySet) Push(x any)         { r.items = append(r.items, x.(int)) }
func (r *readySet) Pop() any {
	old := r.items
	n := len(old)
	x := old[n-1]
	r.items = old[:n-1]
	return x
}

// Order returns copies of tasks arranged so that every task comes after the
// present, incomplete tasks it depends on, choosing the highest-scoring ready
// task at each step. Scores are recomputed at now. Dependencies on ids outside
// tasks, or on completed tasks, never block.
//
// When dependencies form a cycle, or a completed task depends on an incomplete
// one, the tasks that could not be placed are appended in score order, so the
// result is always a permutation of the input.
func Order(tasks []Task, now time.Time) []Task {
	work := make([]Task, len(tasks))
	pos := make(map[int]int, len(tasks))
	for i, t := range tasks {
		work[i] = t.Clone()
		ComputePriorityScore(&work[i], now)
		pos[t.ID] = i
	}

	inDegree := make([]int, len(work))
	dependents := make([][]int, len(work))
	for i := range work {
		for _, depID := range dedupe(work[i].Dependencies) {
			j, ok := pos[depID]
			if !ok || work[j].Completed {
				continue
			}
			inDegree[i]++
			// Completed tasks are never released by emission, so one waiting on
			// an incomplete task lands in the fallback batch.
			if !work[i].Completed {
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	ready := &readySet{tasks: work}
	for i, n := range inDegree {
		if n == 0 {
			ready.items = append(ready.items, i)
		}
	}
	heap.Init(ready)

	ordered := make([]Task, 0, len(work))
	emitted := make([]bool, len(work))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		emitted[i] = true
		ordered = append(ordered, work[i])
		for _, d := range dependents[i] {
			inDegree[d]--
			if inDegree[d] == 0 {
				heap.Push(ready, d)
			}
		}
	}

	if len(ordered) < len(work) {
		var rest []Task
		for i := range work {
			if !emitted[i] {
				rest = append(rest, work[i])
			}
		}
		slices.SortFunc(rest, func(a, b Task) int {
			switch {
			case before(&a, &b):
				return -1
			case before(&b, &a):
				return 1
			}
			return 0
		})
		ordered = append(ordered, rest...)
	}
	return ordered
}
