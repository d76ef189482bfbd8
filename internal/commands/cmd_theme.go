package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ThemeCmd toggles the persisted dark-mode preference.
type ThemeCmd struct {
	flags *Flags
}

// NewThemeCmd creates the theme command.
func NewThemeCmd(flags *Flags) *ThemeCmd {
	return &ThemeCmd{flags: flags}
}

// Register adds the theme command to the application.
func (cmd *ThemeCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the color theme",
		UsageText: "taskdeck theme [light|dark|toggle]",
		Action:    cmd.run,
	})
	return root
}

func (cmd *ThemeCmd) run(ctx context.Context, c *cli.Command) error {
	dark := cmd.flags.App.DarkMode(ctx)

	switch c.Args().Get(0) {
	case "":
		fmt.Fprintln(c.Root().Writer, themeName(dark))
		return nil
	case "light":
		dark = false
	case "dark":
		dark = true
	case "toggle":
		dark = !dark
	default:
		return fmt.Errorf("usage: %s", c.UsageText)
	}

	if err := cmd.flags.App.SetDarkMode(ctx, dark); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	fmt.Fprintln(c.Root().Writer, themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
