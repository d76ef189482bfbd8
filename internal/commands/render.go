package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/colonyops/taskdeck/internal/app"
	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// reportDispatch downgrades a persist failure to a warning: the mutation took
// effect in memory and the command's output is still correct. Anything else
// fails the command.
func reportDispatch(ew io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, app.ErrPersist) {
		fmt.Fprintf(ew, "warning: %v\n", err)
		return nil
	}
	return err
}

// theme derives the rendering theme from the persisted dark-mode preference.
func (f *Flags) theme(ctx context.Context) styles.Theme {
	return styles.NewTheme(styles.Active(f.App.DarkMode(ctx)))
}

func renderTaskLine(theme styles.Theme, t task.Task, now time.Time) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	content := t.Content
	switch {
	case t.Completed:
		content = theme.Done.Render(content)
	case t.Overdue(now):
		content = theme.Overdue.Render(content)
	}

	parts := []string{
		theme.Muted.Render(shortID(t.ID)),
		check,
		theme.Priority(t.Priority).Render(string(t.Priority)),
		content,
	}
	if t.Category != task.CategoryGeneral {
		parts = append(parts, theme.Muted.Render("#"+string(t.Category)))
	}
	if t.DueDate != nil {
		due := "due " + t.DueDate.Format("2006-01-02")
		if t.Overdue(now) {
			parts = append(parts, theme.Overdue.Render(due))
		} else {
			parts = append(parts, theme.Muted.Render(due))
		}
	}
	if len(t.Tags) > 0 {
		parts = append(parts, theme.Muted.Render("@"+strings.Join(t.Tags, " @")))
	}

	return strings.Join(parts, " ")
}

func renderStats(theme styles.Theme, s task.Stats) string {
	overdue := fmt.Sprintf("%d overdue", s.Overdue)
	if s.Overdue > 0 {
		overdue = theme.StatWarn.Render(overdue)
	}
	return fmt.Sprintf("%s  %s  %d pending  %s  %s",
		theme.Title.Render(fmt.Sprintf("%d tasks", s.Total)),
		theme.StatGood.Render(fmt.Sprintf("%d done", s.Completed)),
		s.Pending,
		overdue,
		theme.Muted.Render(fmt.Sprintf("%d%% complete", s.CompletionRate())),
	)
}
