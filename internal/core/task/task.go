// Package task defines the todo item domain model, its mutation commands,
// and the derived-view computations over the task list.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// priorityRank orders priorities for sorting. Higher sorts first.
var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank returns the numeric sort rank of the priority. Unknown values rank
// below low so malformed data never floats to the top of a view.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryShopping Category = "shopping"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryWork,
		CategoryPersonal,
		CategoryStudy,
		CategoryHealth,
		CategoryShopping,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Task represents a single todo item.
//
// ID is assigned at creation and never changes. CreatedAt is set once;
// UpdatedAt is refreshed by every mutating command that touches the task.
// A nil DueDate means the task has no deadline.
type Task struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	Category  Category   `json:"category"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Tags      []string   `json:"tags,omitempty"`
}

// NewID returns a fresh unique task identifier.
func NewID() string {
	return uuid.NewString()
}

// Overdue reports whether the task's due date is strictly before now and the
// task is not completed. Tasks without a due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// clone returns a copy of the task with its own tags slice, so reducing a
// list never aliases mutable state between the old and new lists.
func (t Task) clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = make([]string, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return c
}
