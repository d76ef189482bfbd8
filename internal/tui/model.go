// Package tui implements the interactive task list screen.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/app"
	"github.com/colonyops/taskdeck/internal/core/styles"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/core/validate"
	"github.com/colonyops/taskdeck/pkg/timers"
)

// SearchDebounce is the quiet period between the last keystroke in the search
// box and the view re-derivation.
const SearchDebounce = 300 * time.Millisecond

// searchAppliedMsg carries a settled search term back into the update loop
// after the debounce window closes.
type searchAppliedMsg struct {
	term string
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeAdd
)

// Model is the bubbletea model for the task list screen.
type Model struct {
	ctx context.Context
	app *app.App
	log zerolog.Logger

	theme styles.Theme
	dark  bool

	query task.Query
	view  []task.Task
	stats task.Stats

	mode   inputMode
	cursor int
	scroll int
	width  int
	height int
	status string

	searchInput textinput.Model
	addInput    textinput.Model

	debounce *timers.Debouncer
	send     func(tea.Msg)
}

// New creates the model. Wire Send with [Model.SetSend] once the program
// exists; until then debounced search terms are applied synchronously.
func New(ctx context.Context, a *app.App, log zerolog.Logger) *Model {
	search := textinput.New()
	search.Placeholder = "search content or tags"
	search.Prompt = "/"
	search.CharLimit = 120

	add := textinput.New()
	add.Placeholder = "what needs doing?"
	add.Prompt = "> "
	add.CharLimit = 500

	dark := a.DarkMode(ctx)
	m := &Model{
		ctx:         ctx,
		app:         a,
		log:         log.With().Str("component", "tui").Logger(),
		theme:       styles.NewTheme(styles.Active(dark)),
		dark:        dark,
		query:       task.DefaultQuery(),
		searchInput: search,
		addInput:    add,
		debounce:    timers.NewDebouncer(SearchDebounce),
	}
	m.refresh()
	return m
}

// SetSend wires the program's message injector so debounced callbacks can
// re-enter the update loop.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case searchAppliedMsg:
		// A stale term can arrive after the box was cleared; the latest
		// trigger always wins because earlier timers were cancelled.
		m.query.Search = msg.term
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAdd:
			return m.updateAdd(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.debounce.Stop()
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "a":
		m.mode = modeAdd
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampScroll()
		}
	case "down", "j":
		if m.cursor < len(m.view)-1 {
			m.cursor++
			m.clampScroll()
		}

	case " ", "x":
		if t, ok := m.selected(); ok {
			completed := !t.Completed
			m.dispatch(task.Update{ID: t.ID, Fields: task.Fields{Completed: &completed}})
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.dispatch(task.Delete{ID: t.ID})
		}
	case "T":
		m.dispatch(task.ToggleAll{Completed: m.stats.Pending > 0})

	case "f":
		m.query.Status = cycle(task.StatusFilters(), m.query.Status)
		m.refresh()
	case "c":
		m.query.Category = cycle(categoryOptions(), m.query.Category)
		m.refresh()
	case "s":
		m.query.SortBy = cycle(task.SortKeys(), m.query.SortBy)
		m.refresh()

	case "t":
		m.dark = !m.dark
		m.theme = styles.NewTheme(styles.Active(m.dark))
		if err := m.app.SetDarkMode(m.ctx, m.dark); err != nil {
			m.log.Warn().Err(err).Msg("persist theme failed")
		}

	case "esc":
		if m.query.Search != "" {
			m.query.Search = ""
			m.searchInput.SetValue("")
			m.refresh()
		}
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearch("")
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch(m.searchInput.Value())
	return m, cmd
}

// applySearch schedules the term through the debouncer. Without a program
// injector (tests) it applies immediately.
func (m *Model) applySearch(term string) {
	if m.send == nil {
		m.query.Search = term
		m.refresh()
		return
	}
	m.debounce.Trigger(func() {
		m.send(searchAppliedMsg{term: term})
	})
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.addInput.Blur()
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.addInput.Value())
		m.mode = modeBrowse
		m.addInput.Blur()
		if err := validate.TaskContent(content); err != nil {
			return m, nil
		}
		m.dispatch(task.Add{Content: content})
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m *Model) dispatch(cmd task.Command) {
	if _, err := m.app.Tasks.Dispatch(m.ctx, cmd); err != nil {
		m.log.Warn().Err(err).Msg("dispatch failed to persist")
		m.status = "saved in memory only; storage write failed"
	}
	m.refresh()
}

// refresh re-derives the visible slice and stats from the authoritative list.
func (m *Model) refresh() {
	m.view = m.app.Tasks.View(m.query)
	m.stats = m.app.Tasks.Stats()
	if m.cursor >= len(m.view) {
		m.cursor = len(m.view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) selected() (task.Task, bool) {
	if len(m.view) == 0 || m.cursor >= len(m.view) {
		return task.Task{}, false
	}
	return m.view[m.cursor], true
}

func (m *Model) clampScroll() {
	h := m.listHeight()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// listHeight is the row budget for tasks after the chrome lines.
func (m *Model) listHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func categoryOptions() []string {
	opts := []string{task.CategoryAll}
	for _, c := range task.Categories() {
		opts = append(opts, string(c))
	}
	return opts
}

// cycle returns the element after current, wrapping; unknown values restart
// at the head.
func cycle[T comparable](opts []T, current T) T {
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
