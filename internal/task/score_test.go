package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := refNow.Add(d)
	return &t
}

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name     string
		urgency  int
		deadline *time.Time
		age      time.Duration
		want     float64
	}{
		{name: "no deadline fresh", urgency: 5, want: 50},
		{name: "overdue by a minute", urgency: 5, deadline: at(-time.Minute), want: 250},
		{name: "overdue by days", urgency: 3, deadline: at(-72 * time.Hour), want: 230},
		{name: "due later today", urgency: 5, deadline: at(3 * time.Hour), want: 150},
		{name: "one day", urgency: 5, deadline: at(25 * time.Hour), want: 110},
		{name: "three days", urgency: 5, deadline: at(3*day + time.Hour), want: 70},
		{name: "four days", urgency: 5, deadline: at(4*day + time.Hour), want: 70},
		{name: "seven days", urgency: 5, deadline: at(7*day + time.Hour), want: 55},
		{name: "ten days", urgency: 5, deadline: at(10*day + time.Hour), want: 60},
		{name: "far future", urgency: 5, deadline: at(40 * day), want: 50},
		{name: "age three days", urgency: 1, age: 3*day + time.Hour, want: 16},
		{name: "age capped", urgency: 1, age: 30 * day, want: 30},
		{name: "age under a day", urgency: 2, age: 23 * time.Hour, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Urgency: tt.urgency, Deadline: tt.deadline, CreatedAt: refNow.Add(-tt.age)}
			assert.Equal(t, tt.want, PriorityScore(task, refNow))
		})
	}
}

func TestComputePriorityScore_StoresResult(t *testing.T) {
	task := Task{Urgency: 9, CreatedAt: refNow}
	got := ComputePriorityScore(&task, refNow)
	assert.Equal(t, 90.0, got)
	assert.Equal(t, 90.0, task.PriorityScore)
}

func TestFloorDays(t *testing.T) {
	assert.Equal(t, 0, floorDays(0))
	assert.Equal(t, 0, floorDays(23*time.Hour))
	assert.Equal(t, 1, floorDays(day))
	assert.Equal(t, -1, floorDays(-time.Nanosecond))
	assert.Equal(t, -1, floorDays(-day))
	assert.Equal(t, -2, floorDays(-day-time.Second))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want Status
	}{
		{name: "completed wins", task: Task{Completed: true, Urgency: 9, Deadline: at(-day)}, want: StatusCompleted},
		{name: "overdue", task: Task{Urgency: 9, Deadline: at(-time.Minute)}, want: StatusOverdue},
		{name: "due tomorrow", task: Task{Urgency: 2, Deadline: at(day + time.Hour)}, want: StatusDueSoon},
		{name: "due in two days high urgency", task: Task{Urgency: 8, Deadline: at(2 * day)}, want: StatusHighUrgency},
		{name: "normal", task: Task{Urgency: 5}, want: StatusNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.task, refNow))
		})
	}
}
