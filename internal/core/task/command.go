package task

import (
	"fmt"
	"time"
)

// Command is a sealed set of mutations over the task list. Each variant is a
// pure description of a state transition applied by Reduce. The unexported
// marker method keeps the set closed so an unhandled variant is a bug in this
// package, not silently ignored input.
type Command interface {
	isCommand()
}

// ReplaceAll discards the current list and adopts the given tasks verbatim.
// Used only when loading persisted state at startup.
type ReplaceAll struct {
	Tasks []Task
}

// Add appends a new task with a generated ID and fresh timestamps.
type Add struct {
	ID       string // optional; generated when empty
	Content  string
	Priority Priority
	Category Category
	DueDate  *time.Time
	Tags     []string
}

// Fields carries a shallow partial update for a task. Nil fields are left
// untouched by the merge.
type Fields struct {
	Content   *string
	Completed *bool
	Priority  *Priority
	Category  *Category
	DueDate   **time.Time // outer nil = untouched, inner nil = clear the due date
	Tags      *[]string
}

// Update merges Fields into the task with the matching ID. No-op when the ID
// is not present.
type Update struct {
	ID     string
	Fields Fields
}

// Delete removes the task with the matching ID. No-op when absent.
type Delete struct {
	ID string
}

// BatchDelete removes every task whose ID is in IDs. Missing IDs are ignored.
type BatchDelete struct {
	IDs []string
}

// ToggleAll sets every task's completed flag to the given value.
type ToggleAll struct {
	Completed bool
}

func (ReplaceAll) isCommand()  {}
func (Add) isCommand()         {}
func (Update) isCommand()      {}
func (Delete) isCommand()      {}
func (BatchDelete) isCommand() {}
func (ToggleAll) isCommand()   {}

// Reduce applies cmd to tasks and returns the resulting list. The input list
// and its tasks are never mutated; every returned task the command touched is
// a fresh copy, so callers can rely on reference comparison to detect change.
func Reduce(tasks []Task, cmd Command, now time.Time) ([]Task, error) {
	switch c := cmd.(type) {
	case ReplaceAll:
		next := make([]Task, len(c.Tasks))
		for i, t := range c.Tasks {
			next[i] = t.clone()
		}
		return next, nil

	case Add:
		id := c.ID
		if id == "" {
			id = NewID()
		}
		priority := c.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		category := c.Category
		if category == "" {
			category = CategoryGeneral
		}
		t := Task{
			ID:        id,
			Content:   c.Content,
			Completed: false,
			Priority:  priority,
			Category:  category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if c.DueDate != nil {
			due := *c.DueDate
			t.DueDate = &due
		}
		if len(c.Tags) > 0 {
			t.Tags = make([]string, len(c.Tags))
			copy(t.Tags, c.Tags)
		}
		next := make([]Task, 0, len(tasks)+1)
		next = append(next, tasks...)
		next = append(next, t)
		return next, nil

	case Update:
		next := make([]Task, len(tasks))
		copy(next, tasks)
		for i, t := range tasks {
			if t.ID != c.ID {
				continue
			}
			merged := t.clone()
			applyFields(&merged, c.Fields)
			merged.UpdatedAt = now
			next[i] = merged
			break
		}
		return next, nil

	case Delete:
		next := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != c.ID {
				next = append(next, t)
			}
		}
		return next, nil

	case BatchDelete:
		doomed := make(map[string]struct{}, len(c.IDs))
		for _, id := range c.IDs {
			doomed[id] = struct{}{}
		}
		next := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if _, ok := doomed[t.ID]; !ok {
				next = append(next, t)
			}
		}
		return next, nil

	case ToggleAll:
		next := make([]Task, len(tasks))
		for i, t := range tasks {
			toggled := t.clone()
			toggled.Completed = c.Completed
			toggled.UpdatedAt = now
			next[i] = toggled
		}
		return next, nil

	default:
		return tasks, fmt.Errorf("unknown command %T", cmd)
	}
}

func applyFields(t *Task, f Fields) {
	if f.Content != nil {
		t.Content = *f.Content
	}
	if f.Completed != nil {
		t.Completed = *f.Completed
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Category != nil {
		t.Category = *f.Category
	}
	if f.DueDate != nil {
		if *f.DueDate == nil {
			t.DueDate = nil
		} else {
			due := **f.DueDate
			t.DueDate = &due
		}
	}
	if f.Tags != nil {
		tags := make([]string, len(*f.Tags))
		copy(tags, *f.Tags)
		t.Tags = tags
	}
}
