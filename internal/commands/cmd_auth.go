package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/taskdeck/internal/app"
	"github.com/colonyops/taskdeck/internal/core/auth"
	"github.com/colonyops/taskdeck/internal/core/validate"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// AuthCmd implements the auth command group.
type AuthCmd struct {
	flags *Flags

	username string
	password string
	email    string
	name     string
	asJSON   bool
}

// NewAuthCmd creates the auth command group.
func NewAuthCmd(flags *Flags) *AuthCmd {
	return &AuthCmd{flags: flags}
}

// Register adds the auth commands to the application.
func (cmd *AuthCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "auth",
		Usage: "Manage the login session",
		Commands: []*cli.Command{
			cmd.loginCmd(),
			cmd.signupCmd(),
			cmd.logoutCmd(),
			cmd.whoamiCmd(),
		},
	})
	return root
}

func (cmd *AuthCmd) credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "account username",
			Destination: &cmd.username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "account password (prompted when omitted)",
			Sources:     cli.EnvVars("TASKDECK_PASSWORD"),
			Destination: &cmd.password,
		},
	}
}

func (cmd *AuthCmd) loginCmd() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Log in with an existing account",
		UsageText: "taskdeck auth login [--username <u>] [--password <p>]",
		Flags:     cmd.credentialFlags(),
		Action:    cmd.run(app.ModeLogin),
	}
}

func (cmd *AuthCmd) signupCmd() *cli.Command {
	return &cli.Command{
		Name:      "signup",
		Usage:     "Create an account and log in",
		UsageText: "taskdeck auth signup [--username <u>] [--password <p>] [--email <e>] [--name <n>]",
		Flags: append(cmd.credentialFlags(),
			&cli.StringFlag{
				Name:        "email",
				Usage:       "account email",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "display name",
				Destination: &cmd.name,
			},
		),
		Action: cmd.run(app.ModeSignup),
	}
}

func (cmd *AuthCmd) run(mode app.LoginMode) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if err := cmd.collect(mode); err != nil {
			return err
		}
		if err := cmd.validateInput(mode); err != nil {
			return err
		}

		out := cmd.flags.App.Session.Login(ctx, cmd.request(), mode)
		if !out.Success {
			return fmt.Errorf("%s", out.Message)
		}

		fmt.Fprintf(c.Root().Writer, "logged in as %s\n", out.User.Username)
		return nil
	}
}

// collect fills missing fields, interactively when stdin is a terminal.
func (cmd *AuthCmd) collect(mode app.LoginMode) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cmd.collectNonInteractive()
	}

	var fields []huh.Field
	if cmd.username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Validate(validate.Required).
			Value(&cmd.username))
	}
	if mode == app.ModeSignup {
		if cmd.email == "" {
			fields = append(fields, huh.NewInput().
				Title("Email").
				Validate(validate.Email).
				Value(&cmd.email))
		}
		if cmd.name == "" {
			fields = append(fields, huh.NewInput().
				Title("Name").
				Value(&cmd.name))
		}
	}
	if cmd.password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validate.Required).
			Value(&cmd.password))
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// collectNonInteractive reads only the password, from stdin, when it was not
// supplied by flag or environment. Everything else must come from flags.
func (cmd *AuthCmd) collectNonInteractive() error {
	if cmd.password != "" {
		return nil
	}
	var pw string
	if _, err := fmt.Fscanln(os.Stdin, &pw); err != nil {
		return fmt.Errorf("read password from stdin: %w", err)
	}
	cmd.password = strings.TrimSpace(pw)
	return nil
}

func (cmd *AuthCmd) validateInput(mode app.LoginMode) error {
	if err := validate.SignupField("username", cmd.username, validate.Required); err != nil {
		return err
	}
	if err := validate.SignupField("password", cmd.password, validate.Required); err != nil {
		return err
	}
	if mode == app.ModeSignup {
		if err := validate.SignupField("email", cmd.email, validate.Email); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *AuthCmd) request() auth.SignupRequest {
	name := cmd.name
	if name == "" {
		name = cmd.username
	}
	return auth.SignupRequest{
		Username: cmd.username,
		Password: cmd.password,
		Email:    cmd.email,
		Name:     name,
	}
}

func (cmd *AuthCmd) logoutCmd() *cli.Command {
	return &cli.Command{
		Name:      "logout",
		Usage:     "Log out and clear the stored session",
		UsageText: "taskdeck auth logout",
		Action: func(ctx context.Context, c *cli.Command) error {
			if cmd.flags.App.Session.State() == app.StateInitializing {
				cmd.flags.App.Session.Init(ctx)
			}
			cmd.flags.App.Session.Logout(ctx)
			fmt.Fprintln(c.Root().Writer, "logged out")
			return nil
		},
	}
}

func (cmd *AuthCmd) whoamiCmd() *cli.Command {
	return &cli.Command{
		Name:      "whoami",
		Usage:     "Show the logged-in user",
		UsageText: "taskdeck auth whoami [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit JSON instead of styled output",
				Destination: &cmd.asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cmd.flags.requireSession(ctx); err != nil {
				return err
			}
			user, _ := cmd.flags.App.Session.CurrentUser()
			if cmd.asJSON {
				return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, user)
			}
			fmt.Fprintf(c.Root().Writer, "%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}
