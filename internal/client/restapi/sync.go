package restapi

import (
	"context"
	"net/url"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// SyncedTask is a task as stored on the server, attributed to a user.
type SyncedTask struct {
	task.Task
	UserID string `json:"userId"`
}

// FetchTasks returns all server-side tasks owned by the user.
func (c *Client) FetchTasks(ctx context.Context, userID string) ([]task.Task, error) {
	var synced []SyncedTask
	if err := c.getJSON(ctx, "/todos?userId="+url.QueryEscape(userID), &synced); err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(synced))
	for _, s := range synced {
		tasks = append(tasks, s.Task)
	}
	return tasks, nil
}

// PushTask uploads a task for the user, creating the server-side record.
func (c *Client) PushTask(ctx context.Context, userID string, t task.Task) error {
	return c.postJSON(ctx, "/todos", SyncedTask{Task: t, UserID: userID}, nil)
}

// UpdateTask patches the server-side record for the task.
func (c *Client) UpdateTask(ctx context.Context, t task.Task) error {
	return c.patchJSON(ctx, "/todos/"+url.PathEscape(t.ID), t, nil)
}

// RemoveTask deletes the server-side record by task ID.
func (c *Client) RemoveTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/todos/"+url.PathEscape(id))
}
