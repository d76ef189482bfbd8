package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// KeyTodos is the blob-store key holding the serialized task list.
const KeyTodos = "todos"

// ErrPersist wraps a write-through persistence failure. The in-memory list
// stays authoritative for the rest of the session; callers report and move on.
var ErrPersist = errors.New("persist task list")

// TaskService owns the authoritative in-memory task list. Every mutation goes
// through Dispatch, which applies the pure reducer and then write-through
// persists the full list. Commands never interleave; the mutex serializes the
// CLI, TUI, and debounced-search paths.
type TaskService struct {
	mu    sync.Mutex
	tasks []task.Task
	todos *kv.TypedKV[[]task.Task]
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService creates a TaskService persisting to the given blob store.
func NewTaskService(store kv.KV, log zerolog.Logger) *TaskService {
	return &TaskService{
		todos: kv.Keyed[[]task.Task](store, KeyTodos),
		log:   log.With().Str("component", "task-service").Logger(),
		now:   time.Now,
	}
}

// Load replaces the in-memory list with the persisted blob. A missing or
// corrupt blob is not fatal: the service starts empty and logs the condition.
func (s *TaskService) Load(ctx context.Context) error {
	stored, err := s.todos.Get(ctx)
	if err != nil {
		if errors.Is(err, kv.ErrNoKey) {
			s.log.Debug().Msg("no persisted tasks, starting empty")
		} else {
			s.log.Warn().Err(err).Msg("persisted tasks unreadable, starting empty")
		}
		stored = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := task.Reduce(s.tasks, task.ReplaceAll{Tasks: stored}, s.now())
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// Dispatch applies cmd to the list and persists the result. The returned
// slice is the new authoritative list. A persistence failure is returned
// wrapped in ErrPersist after the in-memory state has already advanced.
func (s *TaskService) Dispatch(ctx context.Context, cmd task.Command) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := task.Reduce(s.tasks, cmd, s.now())
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.tasks = next

	if err := s.todos.Set(ctx, s.tasks); err != nil {
		s.log.Error().Err(err).Msg("write-through persist failed, memory stays authoritative")
		return s.snapshotLocked(), fmt.Errorf("%w: %v", ErrPersist, err)
	}

	return s.snapshotLocked(), nil
}

// Tasks returns a snapshot of the full list.
func (s *TaskService) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// View derives the filtered, sorted view for q at evaluation time.
func (s *TaskService) View(q task.Query) []task.Task {
	return task.ApplyQuery(s.Tasks(), q, s.now())
}

// Stats summarizes the full list at evaluation time.
func (s *TaskService) Stats() task.Stats {
	return task.Summarize(s.Tasks(), s.now())
}

// Find returns the task with the given ID, or false when absent.
func (s *TaskService) Find(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (s *TaskService) snapshotLocked() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
