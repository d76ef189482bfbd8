package stores_test

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/data/db"
	"github.com/colonyops/taskdeck/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestKVStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	require.NoError(t, store.Set(ctx, "greeting", "hello"))

	var got string
	require.NoError(t, store.Get(ctx, "greeting", &got))
	assert.Equal(t, "hello", got)
}

func TestKVStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	var dest string
	err := store.Get(ctx, "absent", &dest)
	assert.ErrorIs(t, err, kv.ErrNoKey)
}

func TestKVStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	require.NoError(t, store.Set(ctx, "flag", false))
	require.NoError(t, store.Set(ctx, "flag", true))

	var got bool
	require.NoError(t, store.Get(ctx, "flag", &got))
	assert.True(t, got)
}

func TestKVStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	require.NoError(t, store.Set(ctx, "key", "val"))

	has, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "key"))

	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestKVStore_ListKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Set(ctx, "a", 1))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestKVStore_TaskListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	todos := kv.Keyed[[]task.Task](store, "todos")

	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	in := []task.Task{
		{
			ID:        task.NewID(),
			Content:   "Buy milk",
			Priority:  task.PriorityHigh,
			Category:  task.CategoryShopping,
			DueDate:   &due,
			CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			Tags:      []string{"errand"},
		},
		{
			ID:        task.NewID(),
			Content:   "Write report",
			Completed: true,
			Priority:  task.PriorityMedium,
			Category:  task.CategoryWork,
			CreatedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, todos.Set(ctx, in))

	out, err := todos.Get(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[0].Content, out[0].Content)
	assert.Equal(t, in[0].Tags, out[0].Tags)
	assert.True(t, in[0].DueDate.Equal(*out[0].DueDate))
	assert.Equal(t, in[1].Completed, out[1].Completed)
}

func TestKVStore_TypedThemeFlag(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	dark := kv.Keyed[bool](store, "isDarkMode")

	require.NoError(t, dark.Set(ctx, true))

	got, err := dark.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}
