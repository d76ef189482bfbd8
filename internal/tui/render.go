package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("taskdeck"))
	b.WriteString("  ")
	b.WriteString(m.theme.Muted.Render(m.filterLine()))
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.searchInput.View())
	case modeAdd:
		b.WriteString(m.addInput.View())
	default:
		if m.query.Search != "" {
			b.WriteString(m.theme.Muted.Render("/" + m.query.Search))
		}
	}
	b.WriteString("\n")

	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m *Model) filterLine() string {
	return fmt.Sprintf("%s · %s · %s", m.query.Status, m.query.Category, m.query.SortBy)
}

func (m *Model) renderList() string {
	if len(m.view) == 0 {
		return m.theme.Muted.Render("  nothing here")
	}

	now := time.Now()
	h := m.listHeight()
	end := m.scroll + h
	if end > len(m.view) {
		end = len(m.view)
	}

	rows := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		rows = append(rows, m.renderRow(m.view[i], i == m.cursor, now))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(t task.Task, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = m.theme.Selected.Render("> ")
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	content := t.Content
	switch {
	case t.Completed:
		content = m.theme.Done.Render(content)
	case t.Overdue(now):
		content = m.theme.Overdue.Render(content)
	case selected:
		content = m.theme.Selected.Render(content)
	}

	parts := []string{cursor + check, m.theme.Priority(t.Priority).Render(priorityBadge(t.Priority)), content}
	if t.Category != task.CategoryGeneral {
		parts = append(parts, m.theme.Muted.Render("#"+string(t.Category)))
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("Jan 02")
		if t.Overdue(now) {
			parts = append(parts, m.theme.Overdue.Render(due))
		} else {
			parts = append(parts, m.theme.Muted.Render(due))
		}
	}
	if len(t.Tags) > 0 {
		parts = append(parts, m.theme.Muted.Render("@"+strings.Join(t.Tags, " @")))
	}

	row := strings.Join(parts, " ")
	if m.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return row
}

func priorityBadge(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "!!!"
	case task.PriorityMedium:
		return "!! "
	default:
		return "!  "
	}
}

func (m *Model) renderStatusBar() string {
	stats := fmt.Sprintf("%d total · %s · %d pending",
		m.stats.Total,
		m.theme.StatGood.Render(fmt.Sprintf("%d done", m.stats.Completed)),
		m.stats.Pending,
	)
	if m.stats.Overdue > 0 {
		stats += " · " + m.theme.StatWarn.Render(fmt.Sprintf("%d overdue", m.stats.Overdue))
	}
	stats += m.theme.Muted.Render(fmt.Sprintf(" · %d%%", m.stats.CompletionRate()))

	help := m.theme.Muted.Render("a add  space toggle  d delete  / search  f/c/s filters  t theme  q quit")
	line := m.theme.StatusBar.Render(stats)
	if m.status != "" {
		line += "  " + m.theme.StatWarn.Render(m.status)
	}
	return line + "\n" + help
}
