package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask(id int) Task {
	return Task{
		ID:        id,
		Title:     "Write report",
		Urgency:   5,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTask_ValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "valid task", mutate: func(*Task) {}},
		{name: "missing id", mutate: func(t *Task) { t.ID = 0 }, wantErr: true},
		{name: "empty title", mutate: func(t *Task) { t.Title = "" }, wantErr: true},
		{name: "urgency below range", mutate: func(t *Task) { t.Urgency = 0 }, wantErr: true},
		{name: "urgency above range", mutate: func(t *Task) { t.Urgency = 11 }, wantErr: true},
		{name: "zero created_at", mutate: func(t *Task) { t.CreatedAt = time.Time{} }, wantErr: true},
		{name: "non-positive dependency", mutate: func(t *Task) { t.Dependencies = []int{2, 0} }, wantErr: true},
		{name: "dangling dependency is fine", mutate: func(t *Task) { t.Dependencies = []int{999} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask(1)
			tt.mutate(&task)
			err := ValidateStruct(task)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskList_Validate(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		assert.NoError(t, NewTaskList().Validate())
	})

	t.Run("next_id honoured above deleted ids", func(t *testing.T) {
		list := TaskList{Tasks: []Task{validTask(1), validTask(3)}, NextID: 7}
		assert.NoError(t, list.Validate())
	})

	t.Run("duplicate id", func(t *testing.T) {
		list := TaskList{Tasks: []Task{validTask(2), validTask(2)}, NextID: 3}
		err := list.Validate()
		var derr *DeserializationError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "tasks[1].id", derr.Path)
	})

	t.Run("next_id not above highest id", func(t *testing.T) {
		list := TaskList{Tasks: []Task{validTask(4)}, NextID: 4}
		err := list.Validate()
		var derr *DeserializationError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "next_id", derr.Path)
	})

	t.Run("invalid record reports its index", func(t *testing.T) {
		bad := validTask(2)
		bad.Title = ""
		list := TaskList{Tasks: []Task{validTask(1), bad}, NextID: 3}
		err := list.Validate()
		var derr *DeserializationError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "tasks[1]", derr.Path)
		assert.Contains(t, err.Error(), "Title")
	})
}

func TestTask_JSONFieldNames(t *testing.T) {
	deadline := time.Date(2025, 3, 4, 17, 0, 0, 0, time.UTC)
	task := validTask(3)
	task.Deadline = &deadline
	task.Dependencies = []int{1, 2}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "title", "description", "deadline", "urgency", "dependencies", "completed", "created_at", "priority_score"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2025-03-04T17:00:00Z", raw["deadline"])

	task.Deadline = nil
	data, err = json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"deadline":null`)
}
