package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/logging"
	"github.com/colonyops/taskdeck/internal/tui"
)

// TuiCmd launches the interactive task list.
type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates the tui command.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive task list",
		UsageText: "taskdeck tui",
		Action:    cmd.Run,
	})
	return root
}

// Run starts the TUI. Exported so the root command can use it as the default
// action.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	model := tui.New(ctx, cmd.flags.App, logging.Component("tui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetSend(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
