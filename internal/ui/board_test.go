package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoardData() BoardData {
	return BoardData{
		Tasks: []task.Task{
			{ID: 2, Title: "Plan sprint", Urgency: 9, PriorityScore: 90},
			{ID: 1, Title: "Write notes", Urgency: 3, PriorityScore: 30, Dependencies: []int{2}},
		},
		Blockers: map[int][]int{1: {2}},
		Stats:    task.Stats{Total: 2, Pending: 2, HighPriority: 1},
		Now:      viewNow,
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardModel_RendersLoadedData(t *testing.T) {
	m := NewBoardModel(func(bool) (BoardData, error) { return sampleBoardData(), nil }, BoardOptions{})
	assert.Contains(t, m.View(), "Loading...")

	next, _ := m.Update(boardDataMsg{data: sampleBoardData()})
	out := next.View()

	assert.Contains(t, out, "Execution order")
	assert.Contains(t, out, "Plan sprint")
	assert.Contains(t, out, "Write notes")
	assert.Contains(t, out, "2 total")
	assert.NotContains(t, out, "Loading...")
}

func TestBoardModel_KeepsDataOnLoadError(t *testing.T) {
	m := NewBoardModel(nil, BoardOptions{})
	next, _ := m.Update(boardDataMsg{data: sampleBoardData()})
	next, _ = next.Update(boardDataMsg{err: errors.New("checksum mismatch")})

	out := next.View()
	assert.Contains(t, out, "checksum mismatch")
	assert.Contains(t, out, "Plan sprint")
}

func TestBoardModel_ToggleCompletedReloads(t *testing.T) {
	var calls []bool
	load := func(all bool) (BoardData, error) {
		calls = append(calls, all)
		return sampleBoardData(), nil
	}
	m := NewBoardModel(load, BoardOptions{})

	next, cmd := m.Update(runeKey("a"))
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(boardDataMsg)
	require.True(t, ok)
	assert.Equal(t, []bool{true}, calls)
	assert.Contains(t, next.View(), "including completed")

	_, cmd = next.Update(runeKey("r"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []bool{true, true}, calls)
}

func TestBoardModel_Quit(t *testing.T) {
	m := NewBoardModel(nil, BoardOptions{})
	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBoardModel_ChangeNotificationReloads(t *testing.T) {
	changes := make(chan struct{}, 1)
	loads := 0
	m := NewBoardModel(func(bool) (BoardData, error) {
		loads++
		return sampleBoardData(), nil
	}, BoardOptions{Changes: changes})

	changes <- struct{}{}
	msg := m.waitForChange()()
	assert.Equal(t, boardChangedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	close(changes)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c != nil {
			c()
		}
	}
	assert.Equal(t, 1, loads)
}

func TestBoardModel_NoRefreshSources(t *testing.T) {
	m := NewBoardModel(nil, BoardOptions{})
	assert.Nil(t, m.tickCmd())
	assert.Nil(t, m.waitForChange())
}

func TestWatchFile_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	fw, err := WatchFile(path, nil)
	require.NoError(t, err)
	defer func() { _ = fw.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":[]}`), 0o644))

	select {
	case <-fw.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}
