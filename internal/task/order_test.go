package task

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() Option {
	return WithClock(func() time.Time { return refNow })
}

func ids(tasks []Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func mustAdd(t *testing.T, s *Scheduler, nt NewTask) int {
	t.Helper()
	id, err := s.Add(nt)
	require.NoError(t, err)
	return id
}

func TestOrdered_DependencyBeatsScore(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 9})
	b := mustAdd(t, s, NewTask{Title: "B", Urgency: 5, Deadline: at(-day), Dependencies: []int{a}})

	assert.Equal(t, []int{a, b}, ids(s.Ordered(false)))
}

func TestOrdered_HigherScoreFirst(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 5})
	b := mustAdd(t, s, NewTask{Title: "B", Urgency: 9})

	assert.Equal(t, []int{b, a}, ids(s.Ordered(false)))
}

func TestOrdered_CycleFallsBackToScore(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 5, Dependencies: []int{2}})
	b := mustAdd(t, s, NewTask{Title: "B", Urgency: 9, Dependencies: []int{a}})
	require.Equal(t, 2, b)

	assert.Equal(t, []int{b, a}, ids(s.Ordered(false)))
}

func TestOrdered_UnknownDependencyDoesNotBlock(t *testing.T) {
	s := New(fixedClock())
	hi := mustAdd(t, s, NewTask{Title: "high", Urgency: 10})
	c := mustAdd(t, s, NewTask{Title: "C", Urgency: 1, Dependencies: []int{999}})

	got := s.Ordered(false)
	assert.Equal(t, []int{hi, c}, ids(got))
	assert.Empty(t, s.Blockers(c))
}

func TestOrdered_TiesBrokenByID(t *testing.T) {
	s := New(fixedClock())
	for i := 0; i < 4; i++ {
		mustAdd(t, s, NewTask{Title: "same", Urgency: 5})
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids(s.Ordered(false)))
}

func TestOrdered_CompletedDependencyUnblocks(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 1})
	b := mustAdd(t, s, NewTask{Title: "B", Urgency: 9, Dependencies: []int{a}})

	assert.Equal(t, []int{a, b}, ids(s.Ordered(false)))
	assert.Equal(t, []int{a}, s.Blockers(b))

	require.True(t, s.Complete(a))
	assert.Equal(t, []int{b}, ids(s.Ordered(false)))
	assert.Equal(t, []int{b, a}, ids(s.Ordered(true)), "a completed dependency no longer blocks even when shown")
	assert.Empty(t, s.Blockers(b))
}

func TestOrder_CompletedDependents(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  []int
	}{
		{
			name: "completed task waiting on incomplete one goes last",
			tasks: []Task{
				{ID: 1, Urgency: 9, CreatedAt: refNow},
				{ID: 2, Urgency: 10, Completed: true, Dependencies: []int{1}, CreatedAt: refNow},
				{ID: 3, Urgency: 5, CreatedAt: refNow},
			},
			want: []int{1, 3, 2},
		},
		{
			name: "held back completed tasks keep score order",
			tasks: []Task{
				{ID: 1, Urgency: 1, CreatedAt: refNow},
				{ID: 2, Urgency: 3, Completed: true, Dependencies: []int{1}, CreatedAt: refNow},
				{ID: 3, Urgency: 8, Completed: true, Dependencies: []int{1}, CreatedAt: refNow},
			},
			want: []int{1, 3, 2},
		},
		{
			name: "completed task on completed dependency is ready",
			tasks: []Task{
				{ID: 1, Urgency: 2, Completed: true, CreatedAt: refNow},
				{ID: 2, Urgency: 9, Completed: true, Dependencies: []int{1}, CreatedAt: refNow},
				{ID: 3, Urgency: 5, CreatedAt: refNow},
			},
			want: []int{2, 3, 1},
		},
		{
			name: "incomplete dependent of completed task is still released",
			tasks: []Task{
				{ID: 1, Urgency: 4, CreatedAt: refNow},
				{ID: 2, Urgency: 9, Completed: true, Dependencies: []int{1}, CreatedAt: refNow},
				{ID: 3, Urgency: 6, Dependencies: []int{1}, CreatedAt: refNow},
			},
			want: []int{1, 3, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Order(tt.tasks, refNow)))
		})
	}
}

func TestOrdered_IncludeCompletedHoldsBackCompletedDependents(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 9})
	c := mustAdd(t, s, NewTask{Title: "C", Urgency: 10, Dependencies: []int{a}})
	d := mustAdd(t, s, NewTask{Title: "D", Urgency: 5})
	require.True(t, s.Complete(c))

	assert.Equal(t, []int{a, d}, ids(s.Ordered(false)))
	assert.Equal(t, []int{a, d, c}, ids(s.Ordered(true)))
}

func TestOrdered_SelfReferenceIsCycle(t *testing.T) {
	s := New(fixedClock())
	a := mustAdd(t, s, NewTask{Title: "A", Urgency: 9, Dependencies: []int{1}})
	b := mustAdd(t, s, NewTask{Title: "B", Urgency: 1})

	assert.Equal(t, []int{b, a}, ids(s.Ordered(false)))
}

func TestOrdered_Empty(t *testing.T) {
	s := New(fixedClock())
	assert.Empty(t, s.Ordered(false))
	assert.Empty(t, s.Ordered(true))
}

func TestOrdered_AllCompleted(t *testing.T) {
	s := New(fixedClock())
	mustAdd(t, s, NewTask{Title: "A"})
	mustAdd(t, s, NewTask{Title: "B"})
	s.Complete(1)
	s.Complete(2)

	assert.Empty(t, s.Ordered(false))
	assert.Len(t, s.Ordered(true), 2)
}

func TestOrder_PermutationAndDependencyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(25)
		tasks := make([]Task, n)
		for i := range tasks {
			var deps []int
			for k := rng.Intn(4); k > 0; k-- {
				deps = append(deps, 1+rng.Intn(n+3)) // some ids do not exist
			}
			tasks[i] = Task{
				ID:           i + 1,
				Title:        "t",
				Urgency:      1 + rng.Intn(10),
				Dependencies: deps,
				Completed:    rng.Intn(5) == 0,
				CreatedAt:    refNow.Add(-time.Duration(rng.Intn(10)) * day),
			}
		}

		got := Order(tasks, refNow)
		require.Len(t, got, n)

		position := make(map[int]int, n)
		for i, task := range got {
			_, dup := position[task.ID]
			require.False(t, dup, "duplicate id %d", task.ID)
			position[task.ID] = i
		}

		report := CheckIntegrity(tasks)
		if len(report.Cycles) > 0 || len(report.SelfReferences) > 0 {
			continue
		}
		byID := make(map[int]Task, n)
		for _, task := range tasks {
			byID[task.ID] = task
		}
		lastIncomplete := -1
		for i, task := range got {
			if !task.Completed {
				lastIncomplete = i
			}
		}
		for _, task := range got {
			for _, dep := range task.Dependencies {
				d, ok := byID[dep]
				if !ok || d.Completed {
					continue
				}
				assert.Less(t, position[dep], position[task.ID], "round %d: #%d before its dependency #%d", round, task.ID, dep)
				if task.Completed {
					assert.Greater(t, position[task.ID], lastIncomplete, "round %d: completed #%d released before the fallback batch", round, task.ID)
				}
			}
		}
	}
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	in := []Task{{ID: 1, Urgency: 3, Dependencies: []int{2}, CreatedAt: refNow}, {ID: 2, Urgency: 4, CreatedAt: refNow}}
	out := Order(in, refNow)
	out[0].Dependencies = append(out[0].Dependencies, 7)
	out[1].Dependencies = append(out[1].Dependencies, 7)

	assert.Equal(t, 0.0, in[0].PriorityScore)
	assert.Equal(t, []int{2}, in[0].Dependencies)
	assert.Nil(t, in[1].Dependencies)
}
