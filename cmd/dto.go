package cmd

import (
	"time"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/models"
)

// taskResponse is the JSON form of a task in command output.
type taskResponse struct {
	models.Task
	BlockedBy []int  `json:"blocked_by"`
	Status    string `json:"status"`
}

type mutationResponse struct {
	Status string       `json:"status"`
	Task   taskResponse `json:"task"`
}

type deleteResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

func toResponse(t task.Task, blockers []int, now time.Time) taskResponse {
	if blockers == nil {
		blockers = []int{}
	}
	return taskResponse{
		Task:      task.ToRecord(t),
		BlockedBy: blockers,
		Status:    string(task.Classify(t, now)),
	}
}

func toResponses(s *task.Scheduler, tasks []task.Task, now time.Time) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t, s.Blockers(t.ID), now))
	}
	return out
}
