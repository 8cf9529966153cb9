package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/utils"
)

// ViewOptions controls how tasks are rendered.
type ViewOptions struct {
	MaxTitleWidth int
	TimeFormat    string
}

func (o ViewOptions) titleWidth() int {
	if o.MaxTitleWidth <= 0 {
		return 40
	}
	return o.MaxTitleWidth
}

func (o ViewOptions) layout() string {
	if o.TimeFormat == "" {
		return "2006-01-02 15:04"
	}
	return o.TimeFormat
}

// TaskHeaders are the columns of the task table.
var TaskHeaders = []string{"ID", "Title", "Urgency", "Deadline", "Score", "Blocked By", "Status"}

// FormatDeadline renders a deadline in the local zone, or "-" when unset.
func FormatDeadline(d *time.Time, layout string) string {
	if d == nil {
		return "-"
	}
	return d.Local().Format(layout)
}

// FormatScore renders a priority score with one decimal place.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// TaskRow returns the plain cells for one task. blockers are the incomplete
// dependencies currently holding it back.
func TaskRow(t task.Task, blockers []int, now time.Time, opts ViewOptions) []string {
	return []string{
		"#" + strconv.Itoa(t.ID),
		utils.Truncate(utils.OneLine(t.Title), opts.titleWidth()),
		strconv.Itoa(t.Urgency),
		FormatDeadline(t.Deadline, opts.layout()),
		FormatScore(t.PriorityScore),
		utils.HashIDs(blockers),
		StatusLabel(task.Classify(t, now)),
	}
}

// RenderTaskTable renders tasks in the given order, one styled row per task.
func RenderTaskTable(tasks []task.Task, blockers map[int][]int, now time.Time, opts ViewOptions) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks.") + "\n"
	}

	tbl := &Table{Headers: TaskHeaders}
	for _, t := range tasks {
		tbl.Rows = append(tbl.Rows, TaskRow(t, blockers[t.ID], now, opts))
		tbl.RowStyles = append(tbl.RowStyles, StatusStyle(task.Classify(t, now)))
	}
	return tbl.Render()
}

// RenderTaskDetail renders every field of a task in a panel.
func RenderTaskDetail(t task.Task, blockers []int, now time.Time, opts ViewOptions) string {
	status := task.Classify(t, now)

	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleSubtle.Render(fmt.Sprintf("%-12s", label+":")), value)
	}

	field("Status", StatusStyle(status).Render(StatusLabel(status)))
	field("Urgency", strconv.Itoa(t.Urgency))
	field("Deadline", FormatDeadline(t.Deadline, opts.layout()))
	field("Created", t.CreatedAt.Local().Format(opts.layout()))
	field("Score", FormatScore(t.PriorityScore))
	field("Depends on", utils.HashIDs(t.Dependencies))
	field("Blocked by", utils.HashIDs(blockers))
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(WrapText(t.Description, 72))
	}

	title := fmt.Sprintf("#%d %s", t.ID, t.Title)
	return NewPanel(title, strings.TrimRight(b.String(), "\n")).
		WithBorderColor(borderFor(status)).
		Render()
}

func borderFor(s task.Status) lipgloss.Color {
	switch s {
	case task.StatusOverdue:
		return ColorError
	case task.StatusDueSoon:
		return ColorWarning
	case task.StatusCompleted:
		return ColorSuccess
	default:
		return ColorSecondary
	}
}

// RenderStats renders the summary counts on one line.
func RenderStats(st task.Stats) string {
	parts := []string{
		StyleTitle.Render(strconv.Itoa(st.Total)) + " total",
		StylePrimary.Render(strconv.Itoa(st.Pending)) + " pending",
		StyleSuccess.Render(strconv.Itoa(st.Completed)) + " completed",
		StyleError.Render(strconv.Itoa(st.Overdue)) + " overdue",
		StyleWarning.Render(strconv.Itoa(st.HighPriority)) + " high priority",
	}
	return strings.Join(parts, StyleSubtle.Render(" · "))
}
