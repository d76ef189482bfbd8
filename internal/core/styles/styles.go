// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var light = Palette{
	Primary:    lipgloss.Color("#2563eb"),
	Foreground: lipgloss.Color("#1f2937"),
	Muted:      lipgloss.Color("#9ca3af"),
	Success:    lipgloss.Color("#16a34a"),
	Warning:    lipgloss.Color("#d97706"),
	Error:      lipgloss.Color("#dc2626"),
}

var dark = Palette{
	Primary:    lipgloss.Color("#7aa2f7"),
	Foreground: lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Error:      lipgloss.Color("#f7768e"),
}

// Active returns the palette for the persisted dark-mode preference.
func Active(darkMode bool) Palette {
	if darkMode {
		return dark
	}
	return light
}

// Theme bundles the rendering styles derived from a palette.
type Theme struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Done      lipgloss.Style
	Overdue   lipgloss.Style
	Selected  lipgloss.Style
	StatGood  lipgloss.Style
	StatWarn  lipgloss.Style
	priority  map[task.Priority]lipgloss.Style
	StatusBar lipgloss.Style
}

// NewTheme derives rendering styles from the palette.
func NewTheme(p Palette) Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted),
		Overdue:  lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		StatGood: lipgloss.NewStyle().Foreground(p.Success),
		StatWarn: lipgloss.NewStyle().Foreground(p.Warning),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(p.Error),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(p.Warning),
			task.PriorityLow:    lipgloss.NewStyle().Foreground(p.Muted),
		},
		StatusBar: lipgloss.NewStyle().Foreground(p.Foreground),
	}
}

// Priority returns the style for a priority badge.
func (t Theme) Priority(p task.Priority) lipgloss.Style {
	if s, ok := t.priority[p]; ok {
		return s
	}
	return t.Muted
}
