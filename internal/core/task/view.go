package task

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter narrows a view by completion state.
type StatusFilter string

const (
	FilterAll         StatusFilter = "all"
	FilterUncompleted StatusFilter = "uncompleted"
	FilterCompleted   StatusFilter = "completed"
	FilterOverdue     StatusFilter = "overdue"
)

// StatusFilters lists all filters in display order.
func StatusFilters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterUncompleted, FilterCompleted, FilterOverdue}
}

// SortKey selects the total order applied to a view.
type SortKey string

const (
	SortCreatedAt    SortKey = "createdAt" // newest first (default)
	SortPriority     SortKey = "priority"  // high before low
	SortDueDate      SortKey = "dueDate"   // soonest first, undated last
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists all sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortCreatedAt, SortPriority, SortDueDate, SortAlphabetical}
}

// CategoryAll passes every category through the category filter.
const CategoryAll = "all"

// Query describes a derived view of the task list. It is transient UI state;
// applying a query never mutates tasks.
type Query struct {
	Status   StatusFilter
	Category string // CategoryAll or a Category value
	Search   string
	SortBy   SortKey
}

// DefaultQuery returns the view shown before the user touches any control.
func DefaultQuery() Query {
	return Query{
		Status:   FilterAll,
		Category: CategoryAll,
		SortBy:   SortCreatedAt,
	}
}

// ApplyQuery filters and sorts tasks per q and returns a new slice. The
// pipeline runs in fixed order: status, category, then search; sorting is
// applied last and is stable. Overdue checks use the caller-supplied now so
// the same task can move in or out of an overdue view as time passes.
func ApplyQuery(tasks []Task, q Query, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	term := strings.ToLower(strings.TrimSpace(q.Search))

	for _, t := range tasks {
		if !matchStatus(t, q.Status, now) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && string(t.Category) != q.Category {
			continue
		}
		if term != "" && !matchSearch(t, term) {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, q.SortBy)
	return out
}

func matchStatus(t Task, f StatusFilter, now time.Time) bool {
	switch f {
	case FilterUncompleted:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterOverdue:
		return t.Overdue(now)
	default:
		return true
	}
}

func matchSearch(t Task, term string) bool {
	if strings.Contains(strings.ToLower(t.Content), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortTasks(tasks []Task, key SortKey) {
	switch key {
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil && b == nil:
				return false
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortAlphabetical:
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(tasks, func(i, j int) bool {
			return coll.CompareString(tasks[i].Content, tasks[j].Content) < 0
		})
	default: // SortCreatedAt, newest first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Stats aggregates counts over the full task list, not a filtered view.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// CompletionRate returns the completed percentage, rounded, 0 for an empty
// list.
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Completed)/float64(s.Total)*100 + 0.5)
}

// Summarize computes aggregate statistics for the full list. Overdue uses the
// same predicate as the overdue status filter.
func Summarize(tasks []Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	return s
}
