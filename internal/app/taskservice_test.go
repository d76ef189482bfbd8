package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/data/db"
	"github.com/colonyops/taskdeck/internal/data/stores"
)

func newTestStore(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestTaskService_DispatchPersistsWriteThrough(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewTaskService(store, zerolog.Nop())

	_, err := svc.Dispatch(ctx, task.Add{Content: "Buy milk", Category: task.CategoryShopping})
	require.NoError(t, err)

	// A second service over the same store sees the persisted list.
	other := NewTaskService(store, zerolog.Nop())
	require.NoError(t, other.Load(ctx))

	tasks := other.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Content)
}

func TestTaskService_LoadMissingBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(newTestStore(t), zerolog.Nop())

	require.NoError(t, svc.Load(ctx))
	assert.Empty(t, svc.Tasks())
}

func TestTaskService_LoadCorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, KeyTodos, "not an array"))

	svc := NewTaskService(store, zerolog.Nop())
	require.NoError(t, svc.Load(ctx))
	assert.Empty(t, svc.Tasks())
}

type failingKV struct {
	kv.KV
	setErr error
}

func (f *failingKV) Set(ctx context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func TestTaskService_PersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	broken := &failingKV{KV: newTestStore(t), setErr: errors.New("quota exceeded")}
	svc := NewTaskService(broken, zerolog.Nop())

	tasks, err := svc.Dispatch(ctx, task.Add{Content: "still here"})
	require.ErrorIs(t, err, ErrPersist)
	require.Len(t, tasks, 1)

	// The in-memory list advanced despite the failed write.
	assert.Len(t, svc.Tasks(), 1)

	// Subsequent commands keep operating on the in-memory state.
	_, err = svc.Dispatch(ctx, task.ToggleAll{Completed: true})
	require.ErrorIs(t, err, ErrPersist)
	assert.True(t, svc.Tasks()[0].Completed)
}

func TestTaskService_ViewAndStats(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(newTestStore(t), zerolog.Nop())

	past := time.Now().Add(-24 * time.Hour)
	_, err := svc.Dispatch(ctx, task.Add{Content: "Overdue errand", DueDate: &past, Category: task.CategoryShopping})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, task.Add{Content: "Fresh idea"})
	require.NoError(t, err)

	q := task.DefaultQuery()
	q.Status = task.FilterOverdue
	view := svc.View(q)
	require.Len(t, view, 1)
	assert.Equal(t, "Overdue errand", view[0].Content)

	stats := svc.Stats()
	assert.Equal(t, task.Stats{Total: 2, Completed: 0, Pending: 2, Overdue: 1}, stats)
}

func TestTaskService_Find(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(newTestStore(t), zerolog.Nop())

	tasks, err := svc.Dispatch(ctx, task.Add{Content: "findable"})
	require.NoError(t, err)

	got, ok := svc.Find(tasks[0].ID)
	assert.True(t, ok)
	assert.Equal(t, "findable", got.Content)

	_, ok = svc.Find("missing")
	assert.False(t, ok)
}
