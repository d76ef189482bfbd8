package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/taskdeck/internal/app"
	"github.com/colonyops/taskdeck/internal/core/config"
)

// Flags holds global flag values and the lazily constructed application,
// shared by all command groups.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIURL     string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config

	// App is the application aggregate constructed in the Before hook.
	App *app.App
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdeck", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskdeck")
}

// requireSession settles the auth state machine and fails unless a user is
// logged in. Task data is unreachable without an authenticated session.
func (f *Flags) requireSession(ctx context.Context) error {
	if f.App.Session.State() == app.StateInitializing {
		f.App.Session.Init(ctx)
	}
	if !f.App.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in; run `taskdeck auth login` first")
	}
	return nil
}

// loadTasks gates on the session and then loads the persisted task list.
func (f *Flags) loadTasks(ctx context.Context) error {
	if err := f.requireSession(ctx); err != nil {
		return err
	}
	if err := f.App.Tasks.Load(ctx); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return nil
}
