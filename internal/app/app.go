// Package app wires the task store, session lifecycle, and sync client into
// a single application aggregate consumed by the CLI and TUI.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/client/restapi"
	"github.com/colonyops/taskdeck/internal/core/config"
	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/data/db"
)

// KeyDarkMode is the blob-store key holding the persisted theme flag.
const KeyDarkMode = "isDarkMode"

// App is the central entry point for all taskdeck operations. Commands and
// the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks   *TaskService
	Session *SessionService
	Sync    *restapi.Client
	Config  *config.Config
	DB      *db.DB

	darkMode *kv.TypedKV[bool]
}

// New constructs an App from explicit dependencies.
func New(cfg *config.Config, database *db.DB, store kv.KV, api *restapi.Client, log zerolog.Logger) *App {
	return &App{
		Tasks:    NewTaskService(store, log),
		Session:  NewSessionService(api, store, log),
		Sync:     api,
		Config:   cfg,
		DB:       database,
		darkMode: kv.Keyed[bool](store, KeyDarkMode),
	}
}

// DarkMode reports the persisted theme preference. Missing or unreadable
// falls back to the configured theme, then light.
func (a *App) DarkMode(ctx context.Context) bool {
	dark, err := a.darkMode.Get(ctx)
	if err != nil {
		return a.Config != nil && a.Config.Theme == "dark"
	}
	return dark
}

// SetDarkMode persists the theme preference.
func (a *App) SetDarkMode(ctx context.Context, dark bool) error {
	return a.darkMode.Set(ctx, dark)
}
