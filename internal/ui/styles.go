package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6b7280")
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the user table.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Modified lipgloss.Style
	Table    table.Styles
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Muted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#101F38")).
		Background(Accent).
		Bold(false)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1),
		Status:   lipgloss.NewStyle().Foreground(Accent),
		Error:    lipgloss.NewStyle().Foreground(Destructive),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(Warning),
		Help:     lipgloss.NewStyle().Foreground(Muted),
		Label:    lipgloss.NewStyle().Width(14),
		Modified: lipgloss.NewStyle().Foreground(Warning),
		Table:    ts,
	}
}
