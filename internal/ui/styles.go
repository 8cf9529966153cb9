package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/smarttask/internal/task"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for high urgency

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Row styles by display class
	StyleRowCompleted   = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)
	StyleRowOverdue     = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleRowDueSoon     = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleRowHighUrgency = lipgloss.NewStyle().Foreground(ColorCyan)
	StyleRowNormal      = lipgloss.NewStyle().Foreground(ColorText)
)

var titleCaser = cases.Title(language.English)

// StatusStyle returns the row style for a display class.
func StatusStyle(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusCompleted:
		return StyleRowCompleted
	case task.StatusOverdue:
		return StyleRowOverdue
	case task.StatusDueSoon:
		return StyleRowDueSoon
	case task.StatusHighUrgency:
		return StyleRowHighUrgency
	default:
		return StyleRowNormal
	}
}

// StatusLabel renders a display class for humans, e.g. "Due Soon".
func StatusLabel(s task.Status) string {
	return titleCaser.String(strings.ReplaceAll(string(s), "-", " "))
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
