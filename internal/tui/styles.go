package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#667eea")
	colorAccent  = lipgloss.Color("#ff6b6b")
	colorGold    = lipgloss.Color("#ffd700")
	colorMuted   = lipgloss.Color("#8a8f98")
	colorError   = lipgloss.Color("#e53935")
)

// Styles groups every lipgloss style the showcase view uses.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Cart     lipgloss.Style
	CartBump lipgloss.Style
	Cursor   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Tag      lipgloss.Style
	Stars    lipgloss.Style
	Detail   lipgloss.Style
	Footer   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted),
		Cart:     lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
		CartBump: lipgloss.NewStyle().Padding(0, 1).Bold(true).Border(lipgloss.ThickBorder()).BorderForeground(colorAccent).Foreground(colorAccent),
		Cursor:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Item:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Tag:      lipgloss.NewStyle().Foreground(colorPrimary),
		Stars:    lipgloss.NewStyle().Foreground(colorGold),
		Detail:   lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary),
		Footer:   lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Status:   lipgloss.NewStyle().Foreground(colorGold),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}
