package task

import (
	"slices"

	"github.com/josephgoksu/smarttask/models"
)

// ToRecord maps a task onto its persisted record.
func ToRecord(t Task) models.Task {
	rec := models.Task{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Urgency:       t.Urgency,
		Dependencies:  slices.Clone(t.Dependencies),
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
		PriorityScore: t.PriorityScore,
	}
	if rec.Dependencies == nil {
		rec.Dependencies = []int{}
	}
	if t.Deadline != nil {
		d := *t.Deadline
		rec.Deadline = &d
	}
	return rec
}

// FromRecord maps a persisted record back onto a task. The record is expected to
// have passed models.ValidateStruct already.
func FromRecord(rec models.Task) Task {
	t := Task{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		Urgency:       rec.Urgency,
		Dependencies:  dedupe(rec.Dependencies),
		Completed:     rec.Completed,
		CreatedAt:     rec.CreatedAt,
		PriorityScore: rec.PriorityScore,
	}
	if rec.Deadline != nil {
		d := *rec.Deadline
		t.Deadline = &d
	}
	return t
}

// ToRecords maps a slice of tasks, keeping order.
func ToRecords(tasks []Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToRecord(t))
	}
	return out
}
