package task

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/josephgoksu/smarttask/models"
)

// Scheduler owns the task collection. All methods are safe for concurrent use;
// results are copies and never alias internal state.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[int]*Task
	nextID int
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now as the scheduler's notion of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for debug output of mutations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Stats summarises the collection.
type Stats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Completed    int `json:"completed"`
	Overdue      int `json:"overdue"`
	HighPriority int `json:"high_priority"`
}

// New returns an empty scheduler whose first id is 1.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tasks:  make(map[int]*Task),
		nextID: 1,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a task and returns its id.
func (s *Scheduler) Add(nt NewTask) (int, error) {
	urgency := nt.Urgency
	if urgency == 0 {
		urgency = DefaultUrgency
	}
	if err := validateFields(nt.Title, urgency, nt.Dependencies); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := &Task{
		ID:           s.nextID,
		Title:        nt.Title,
		Description:  nt.Description,
		Urgency:      urgency,
		Dependencies: dedupe(nt.Dependencies),
		CreatedAt:    now,
	}
	if nt.Deadline != nil {
		d := *nt.Deadline
		t.Deadline = &d
	}
	s.tasks[t.ID] = t
	s.nextID++
	s.recompute(now)

	s.logger.Debug("task added", "id", t.ID, "urgency", t.Urgency, "deps", t.Dependencies)
	return t.ID, nil
}

// Edit applies p to the task with the given id. It returns false when no such
// task exists. A validation failure leaves the task untouched.
func (s *Scheduler) Edit(id int, p Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[id]
	if !ok {
		return false, nil
	}

	next := cur.Clone()
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.ClearDeadline {
		next.Deadline = nil
	} else if p.Deadline != nil {
		d := *p.Deadline
		next.Deadline = &d
	}
	if p.Urgency != nil {
		next.Urgency = *p.Urgency
	}
	if p.Dependencies != nil {
		next.Dependencies = dedupe(*p.Dependencies)
	}
	if err := next.Validate(); err != nil {
		return true, err
	}

	*cur = next
	s.recompute(s.now())
	s.logger.Debug("task edited", "id", id)
	return true, nil
}

// Delete removes the task and strips its id from every other task's
// dependencies.
func (s *Scheduler) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	for _, t := range s.tasks {
		t.Dependencies = slices.DeleteFunc(t.Dependencies, func(d int) bool { return d == id })
	}
	s.recompute(s.now())
	s.logger.Debug("task deleted", "id", id)
	return true
}

// Complete marks the task done. Completing a completed task is a no-op that
// still reports true.
func (s *Scheduler) Complete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Completed = true
	s.recompute(s.now())
	s.logger.Debug("task completed", "id", id)
	return true
}

// Get returns a copy of the task with the given id.
func (s *Scheduler) Get(id int) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.Clone(), true
}

// List returns every task, id ascending.
func (s *Scheduler) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(*Task) bool { return true })
}

// Len returns the number of tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// NextID returns the id the next Add will assign.
func (s *Scheduler) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// Overdue returns incomplete tasks whose deadline has passed.
func (s *Scheduler) Overdue() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	return s.collect(func(t *Task) bool { return isOverdue(t, now) })
}

// DueToday returns incomplete tasks whose deadline falls on today's calendar
// date in the clock's location.
func (s *Scheduler) DueToday() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	return s.collect(func(t *Task) bool {
		return !t.Completed && t.Deadline != nil && sameDate(t.Deadline.In(now.Location()), now)
	})
}

// HighPriority returns incomplete tasks with urgency of at least HighUrgency.
func (s *Scheduler) HighPriority() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(t *Task) bool { return !t.Completed && t.Urgency >= HighUrgency })
}

// Stats counts tasks by state.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		if isOverdue(t, now) {
			st.Overdue++
		}
		if t.Urgency >= HighUrgency {
			st.HighPriority++
		}
	}
	return st
}

// Blockers returns the ids of present, incomplete tasks that id depends on.
func (s *Scheduler) Blockers(id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil
	}
	var out []int
	for _, d := range t.Dependencies {
		if dep, ok := s.tasks[d]; ok && !dep.Completed {
			out = append(out, d)
		}
	}
	return out
}

// Ordered returns the display order of the collection, see Order. Completed
// tasks are left out unless includeCompleted is set.
func (s *Scheduler) Ordered(includeCompleted bool) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.recompute(now)
	work := s.collect(func(t *Task) bool { return includeCompleted || !t.Completed })
	return Order(work, now)
}

// Snapshot returns the persisted form of the collection, tasks id ascending.
func (s *Scheduler) Snapshot() models.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.TaskList{
		Tasks:  ToRecords(s.collect(func(*Task) bool { return true })),
		NextID: s.nextID,
	}
}

// Restore replaces the collection with the contents of list. The document is
// validated in full before anything is swapped in, so on error the scheduler
// keeps its previous state.
func (s *Scheduler) Restore(list models.TaskList) error {
	if err := list.Validate(); err != nil {
		return err
	}

	tasks := make(map[int]*Task, len(list.Tasks))
	for _, rec := range list.Tasks {
		t := FromRecord(rec)
		tasks[t.ID] = &t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.nextID = list.NextID
	s.recompute(s.now())
	s.logger.Debug("tasks restored", "count", len(tasks), "next_id", s.nextID)
	return nil
}

// recompute refreshes the score cache of every task. Caller holds mu.
func (s *Scheduler) recompute(now time.Time) {
	for _, t := range s.tasks {
		ComputePriorityScore(t, now)
	}
}

// collect copies the tasks matching keep, id ascending. Caller holds mu.
func (s *Scheduler) collect(keep func(*Task) bool) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	slices.SortFunc(out, func(a, b Task) int { return a.ID - b.ID })
	return out
}

func isOverdue(t *Task, now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
