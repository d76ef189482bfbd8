package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// SyncCmd implements push/pull against the remote todo collection.
type SyncCmd struct {
	flags *Flags
}

// NewSyncCmd creates the sync command group.
func NewSyncCmd(flags *Flags) *SyncCmd {
	return &SyncCmd{flags: flags}
}

// Register adds the sync commands to the application.
func (cmd *SyncCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "sync",
		Usage: "Sync tasks with the server",
		Commands: []*cli.Command{
			{
				Name:      "push",
				Usage:     "Replace the server-side list with the local one",
				UsageText: "taskdeck sync push",
				Action:    cmd.runPush,
			},
			{
				Name:      "pull",
				Usage:     "Replace the local list with the server-side one",
				UsageText: "taskdeck sync pull",
				Action:    cmd.runPull,
			},
		},
	})
	return root
}

func (cmd *SyncCmd) runPush(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}
	user, _ := cmd.flags.App.Session.CurrentUser()

	// Remove the server copy first so push is a full replacement, not a merge.
	remote, err := cmd.flags.App.Sync.FetchTasks(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("fetch remote tasks: %w", err)
	}
	for _, t := range remote {
		if err := cmd.flags.App.Sync.RemoveTask(ctx, t.ID); err != nil {
			return fmt.Errorf("remove remote task %s: %w", shortID(t.ID), err)
		}
	}

	local := cmd.flags.App.Tasks.Tasks()
	for _, t := range local {
		if err := cmd.flags.App.Sync.PushTask(ctx, user.ID, t); err != nil {
			return fmt.Errorf("push task %s: %w", shortID(t.ID), err)
		}
	}

	fmt.Fprintf(c.Root().Writer, "pushed %d tasks\n", len(local))
	return nil
}

func (cmd *SyncCmd) runPull(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}
	user, _ := cmd.flags.App.Session.CurrentUser()

	remote, err := cmd.flags.App.Sync.FetchTasks(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("fetch remote tasks: %w", err)
	}

	_, err = cmd.flags.App.Tasks.Dispatch(ctx, task.ReplaceAll{Tasks: remote})
	if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "pulled %d tasks\n", len(remote))
	return nil
}
