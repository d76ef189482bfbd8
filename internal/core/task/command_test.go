package task_test

import (
	"testing"
	"time"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func reduce(t *testing.T, tasks []task.Task, cmd task.Command) []task.Task {
	t.Helper()
	next, err := task.Reduce(tasks, cmd, now)
	require.NoError(t, err)
	return next
}

func TestReduce_Add(t *testing.T) {
	t.Run("assigns unique ids across many adds", func(t *testing.T) {
		var tasks []task.Task
		for i := 0; i < 50; i++ {
			tasks = reduce(t, tasks, task.Add{Content: "item"})
		}

		require.Len(t, tasks, 50)
		seen := make(map[string]bool, len(tasks))
		for _, item := range tasks {
			assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
			seen[item.ID] = true
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		tasks := reduce(t, nil, task.Add{Content: "Buy milk"})

		require.Len(t, tasks, 1)
		got := tasks[0]
		assert.Equal(t, "Buy milk", got.Content)
		assert.False(t, got.Completed)
		assert.Equal(t, task.PriorityMedium, got.Priority)
		assert.Equal(t, task.CategoryGeneral, got.Category)
		assert.Nil(t, got.DueDate)
		assert.Equal(t, now, got.CreatedAt)
		assert.Equal(t, now, got.UpdatedAt)
	})

	t.Run("does not alias caller slices", func(t *testing.T) {
		tags := []string{"errand"}
		tasks := reduce(t, nil, task.Add{Content: "x", Tags: tags})
		tags[0] = "mutated"

		assert.Equal(t, []string{"errand"}, tasks[0].Tags)
	})
}

func TestReduce_Update(t *testing.T) {
	seed := func(t *testing.T) []task.Task {
		t.Helper()
		tasks := reduce(t, nil, task.Add{ID: "a", Content: "one", Priority: task.PriorityLow})
		return reduce(t, tasks, task.Add{ID: "b", Content: "two"})
	}

	t.Run("merges partial fields and refreshes updatedAt", func(t *testing.T) {
		tasks := seed(t)
		later := now.Add(time.Hour)
		content := "one, revised"
		done := true

		next, err := task.Reduce(tasks, task.Update{
			ID:     "a",
			Fields: task.Fields{Content: &content, Completed: &done},
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "one, revised", next[0].Content)
		assert.True(t, next[0].Completed)
		assert.Equal(t, task.PriorityLow, next[0].Priority, "untouched field survives merge")
		assert.Equal(t, later, next[0].UpdatedAt)

		// Original list is untouched.
		assert.Equal(t, "one", tasks[0].Content)
		assert.Equal(t, now, tasks[0].UpdatedAt)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		tasks := seed(t)
		content := "ghost"

		next, err := task.Reduce(tasks, task.Update{ID: "zzz", Fields: task.Fields{Content: &content}}, now)
		require.NoError(t, err)
		assert.Equal(t, tasks, next)
	})

	t.Run("clears due date via double pointer", func(t *testing.T) {
		due := now.Add(24 * time.Hour)
		tasks := reduce(t, nil, task.Add{ID: "a", Content: "dated", DueDate: &due})

		var cleared *time.Time
		next, err := task.Reduce(tasks, task.Update{ID: "a", Fields: task.Fields{DueDate: &cleared}}, now)
		require.NoError(t, err)
		assert.Nil(t, next[0].DueDate)
	})
}

func TestReduce_Delete(t *testing.T) {
	tasks := reduce(t, nil, task.Add{ID: "a", Content: "one"})
	tasks = reduce(t, tasks, task.Add{ID: "b", Content: "two"})

	t.Run("removes matching task", func(t *testing.T) {
		next := reduce(t, tasks, task.Delete{ID: "a"})
		require.Len(t, next, 1)
		assert.Equal(t, "b", next[0].ID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		next := reduce(t, tasks, task.Delete{ID: "nope"})
		assert.Equal(t, tasks, next)
	})
}

func TestReduce_BatchDelete(t *testing.T) {
	var tasks []task.Task
	tasks = reduce(t, tasks, task.Add{ID: "a", Content: "one"})
	tasks = reduce(t, tasks, task.Add{ID: "b", Content: "two"})
	tasks = reduce(t, tasks, task.Add{ID: "c", Content: "three"})

	t.Run("removes all matches and ignores missing ids", func(t *testing.T) {
		next := reduce(t, tasks, task.BatchDelete{IDs: []string{"a", "c", "ghost"}})
		require.Len(t, next, 1)
		assert.Equal(t, "b", next[0].ID)
	})

	t.Run("clearing all completed leaves none completed", func(t *testing.T) {
		done := true
		withDone, err := task.Reduce(tasks, task.Update{ID: "b", Fields: task.Fields{Completed: &done}}, now)
		require.NoError(t, err)

		var completedIDs []string
		for _, item := range withDone {
			if item.Completed {
				completedIDs = append(completedIDs, item.ID)
			}
		}

		next := reduce(t, withDone, task.BatchDelete{IDs: completedIDs})
		for _, item := range next {
			assert.False(t, item.Completed)
		}
	})
}

func TestReduce_ToggleAll(t *testing.T) {
	var tasks []task.Task
	tasks = reduce(t, tasks, task.Add{ID: "a", Content: "one"})
	tasks = reduce(t, tasks, task.Add{ID: "b", Content: "two"})

	later := now.Add(time.Minute)
	next, err := task.Reduce(tasks, task.ToggleAll{Completed: true}, later)
	require.NoError(t, err)

	for _, item := range next {
		assert.True(t, item.Completed)
		assert.Equal(t, later, item.UpdatedAt)
	}

	stats := task.Summarize(next, later)
	assert.Zero(t, stats.Pending)
	assert.Equal(t, stats.Total, stats.Completed)
}

func TestReduce_ReplaceAll(t *testing.T) {
	existing := reduce(t, nil, task.Add{ID: "old", Content: "stale"})
	incoming := []task.Task{
		{ID: "x", Content: "loaded", CreatedAt: now, UpdatedAt: now},
	}

	next, err := task.Reduce(existing, task.ReplaceAll{Tasks: incoming}, now)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "x", next[0].ID)
}
