package task

import "time"

// Status is the display class of a task, used to colour rows.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusOverdue     Status = "overdue"
	StatusDueSoon     Status = "due-soon"
	StatusHighUrgency Status = "high-urgency"
	StatusNormal      Status = "normal"
)

// Classify returns the first matching class in the order completed, overdue,
// due soon (at most one whole day left), high urgency, normal.
func Classify(t Task, now time.Time) Status {
	switch {
	case t.Completed:
		return StatusCompleted
	case t.Deadline != nil && t.Deadline.Before(now):
		return StatusOverdue
	case t.Deadline != nil && floorDays(t.Deadline.Sub(now)) <= 1:
		return StatusDueSoon
	case t.Urgency >= HighUrgency:
		return StatusHighUrgency
	default:
		return StatusNormal
	}
}
