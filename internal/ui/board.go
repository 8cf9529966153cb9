package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/smarttask/internal/task"
)

// BoardData is one snapshot of the task list as shown on the board.
type BoardData struct {
	Tasks    []task.Task // execution order
	Blockers map[int][]int
	Stats    task.Stats
	Now      time.Time
}

// BoardLoader reads the current state, including completed tasks when asked.
type BoardLoader func(includeCompleted bool) (BoardData, error)

// BoardOptions configures a BoardModel.
type BoardOptions struct {
	Title   string
	Refresh time.Duration   // 0 disables periodic refresh
	Changes <-chan struct{} // optional file change notifications
	View    ViewOptions
}

type boardKeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	ToggleDone key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle completed"),
		),
	}
}

type boardTickMsg time.Time

type boardChangedMsg struct{}

type boardDataMsg struct {
	data BoardData
	err  error
}

// BoardModel is a live view of the execution order.
type BoardModel struct {
	load     BoardLoader
	opts     BoardOptions
	keys     boardKeyMap
	table    table.Model
	data     BoardData
	err      error
	showDone bool
	loaded   bool
	width    int
}

// NewBoardModel builds the board. Nothing is loaded until Init runs.
func NewBoardModel(load BoardLoader, opts BoardOptions) BoardModel {
	if opts.Title == "" {
		opts.Title = "Execution order"
	}

	t := table.New(
		table.WithColumns(boardColumns(opts.View)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(ColorPrimary).Bold(true)
	styles.Selected = styles.Selected.Foreground(ColorText).Background(ColorPrimary).Bold(false)
	t.SetStyles(styles)

	return BoardModel{
		load:  load,
		opts:  opts,
		keys:  defaultBoardKeys(),
		table: t,
	}
}

func boardColumns(v ViewOptions) []table.Column {
	widths := []int{5, v.titleWidth(), 7, len(v.layout()), 7, 12, 12}
	cols := make([]table.Column, len(TaskHeaders))
	for i, h := range TaskHeaders {
		w := widths[i]
		if len(h) > w {
			w = len(h)
		}
		cols[i] = table.Column{Title: h, Width: w}
	}
	return cols
}

// Init loads the first snapshot and starts the refresh sources.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd(), m.waitForChange())
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		h := msg.Height - 7
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		m.table.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.ToggleDone):
			m.showDone = !m.showDone
			return m, m.loadCmd()
		}

	case boardTickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())

	case boardChangedMsg:
		return m, tea.Batch(m.loadCmd(), m.waitForChange())

	case boardDataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.data = msg.data
		m.table.SetRows(m.rows())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BoardModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.data.Tasks))
	for _, t := range m.data.Tasks {
		rows = append(rows, TaskRow(t, m.data.Blockers[t.ID], m.data.Now, m.opts.View))
	}
	return rows
}

// View implements tea.Model.
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(m.opts.Title))
	if m.showDone {
		b.WriteString(StyleSubtle.Render(" (including completed)"))
	}
	b.WriteString("\n")

	switch {
	case !m.loaded && m.err == nil:
		b.WriteString(StyleSubtle.Render("Loading...") + "\n")
	case m.loaded:
		b.WriteString(RenderStats(m.data.Stats) + "\n\n")
		if len(m.data.Tasks) == 0 {
			b.WriteString(StyleSubtle.Render("Nothing to do.") + "\n")
		} else {
			b.WriteString(m.table.View() + "\n")
		}
	}

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	b.WriteString(StyleSubtle.Render(m.footer()))
	return b.String()
}

func (m BoardModel) footer() string {
	parts := []string{}
	for _, k := range []key.Binding{m.keys.Refresh, m.keys.ToggleDone, m.keys.Quit} {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if m.loaded {
		parts = append(parts, "updated "+m.data.Now.Local().Format("15:04:05"))
	}
	return strings.Join(parts, " · ")
}

func (m BoardModel) loadCmd() tea.Cmd {
	load, all := m.load, m.showDone
	return func() tea.Msg {
		data, err := load(all)
		return boardDataMsg{data: data, err: err}
	}
}

func (m BoardModel) tickCmd() tea.Cmd {
	if m.opts.Refresh <= 0 {
		return nil
	}
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return boardTickMsg(t)
	})
}

func (m BoardModel) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return boardChangedMsg{}
	}
}

// RunBoard runs the board full screen until the user quits.
func RunBoard(m BoardModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
