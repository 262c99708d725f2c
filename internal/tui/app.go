// Package tui implements the interactive terminal UI for the task list.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/config"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/session"
	"github.com/taskbot-dev/taskbot/internal/store"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewForm
	viewConfirmDelete
)

const (
	keyEsc = "esc"

	listChrome   = 5 // greeting + tabs + blank line + blank line + status bar
	errorChrome  = 1 // extra line when error toast is displayed
	tickInterval = 30 * time.Second // how often relative dates refresh
)

// App is the top-level bubbletea model.
type App struct {
	store   *store.Store
	sess    *session.Session
	cfg     *config.Config
	snap    store.Snapshot
	view    view
	cursor  int
	scroll  int
	width   int
	height  int
	err     error
	now     func() time.Time

	form *form

	// Delete confirmation.
	deleteID    int
	deleteTitle string
}

// NewApp creates the model and loads the initial task list.
func NewApp(st *store.Store, sess *session.Session, cfg *config.Config) *App {
	return &App{
		store: st,
		sess:  sess,
		cfg:   cfg,
		now:   time.Now,
	}
}

// SetNow overrides the clock used for relative labels (for testing).
func (a *App) SetNow(fn func() time.Time) {
	a.now = fn
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.refreshCmd(), tickCmd())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case ReloadMsg:
		return a, a.refreshCmd()
	case refreshedMsg:
		a.snap = a.store.Snapshot()
		a.err = a.snap.Err
		a.clampCursor()
		return a, nil
	case mutatedMsg:
		a.snap = a.store.Snapshot()
		a.err = msg.err
		if msg.err != nil {
			a.sess.Haptic(session.HapticError)
		} else {
			a.sess.Haptic(msg.cue)
		}
		a.clampCursor()
		return a, nil
	case TickMsg:
		return a, tickCmd()
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.view {
	case viewForm:
		return a.form.view(a.theme(), a.width)
	case viewConfirmDelete:
		return a.viewDeleteConfirm()
	default:
		return a.viewList()
	}
}

func (a *App) theme() session.Theme {
	return a.sess.Theme
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return a, tea.Quit
	}

	switch a.view {
	case viewList:
		return a.handleListKey(msg)
	case viewForm:
		return a.handleFormKey(msg)
	case viewConfirmDelete:
		return a.handleDeleteKey(msg)
	}

	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.snap.Tasks)-1 {
			a.cursor++
			a.ensureVisible()
			a.sess.Haptic(session.HapticSelection)
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.ensureVisible()
			a.sess.Haptic(session.HapticSelection)
		}
	case "h", "left":
		return a, a.shiftFilter(-1)
	case "l", "right", "tab":
		return a, a.shiftFilter(1)
	case "1", "2", "3", "4":
		filters := task.Filters()
		idx := int(msg.String()[0] - '1')
		if idx < len(filters) {
			return a, a.setFilterCmd(filters[idx])
		}
	case " ", "x":
		if t := a.selectedTask(); t != nil {
			return a, a.toggleCmd(t.ID)
		}
	case "a", "n":
		a.form = newForm(nil, date.FromTime(a.now()))
		a.view = viewForm
		return a, a.form.focusCmd()
	case "e", "enter":
		if t := a.selectedTask(); t != nil {
			a.form = newForm(t, date.FromTime(a.now()))
			a.view = viewForm
			return a, a.form.focusCmd()
		}
	case "d", "D":
		if t := a.selectedTask(); t != nil {
			a.deleteID = t.ID
			a.deleteTitle = t.Title
			a.view = viewConfirmDelete
			a.sess.Haptic(session.HapticWarning)
		}
	case "t":
		a.sess.ToggleTheme()
		a.cfg.Theme = a.sess.Theme.Name
		if err := a.cfg.Save(); err != nil {
			a.err = err
		}
	case "r":
		return a, a.refreshCmd()
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, cmd := a.form.update(msg)
	if !done {
		return a, cmd
	}

	a.view = viewList
	if a.form.canceled {
		a.form = nil
		return a, nil
	}

	f := a.form
	a.form = nil
	if f.editID == 0 {
		return a, a.createCmd(f.draft())
	}
	return a, a.updateCmd(f.editID, f.patch())
}

func (a *App) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := a.deleteID
		a.view = viewList
		return a, a.deleteCmd(id)
	case "n", "N", keyEsc, "q":
		a.view = viewList
	}
	return a, nil
}

func (a *App) selectedTask() *task.Task {
	if len(a.snap.Tasks) == 0 {
		return nil
	}
	if a.cursor >= 0 && a.cursor < len(a.snap.Tasks) {
		return a.snap.Tasks[a.cursor]
	}
	return nil
}

func (a *App) clampCursor() {
	if len(a.snap.Tasks) == 0 {
		a.cursor = 0
		a.scroll = 0
		return
	}
	if a.cursor >= len(a.snap.Tasks) {
		a.cursor = len(a.snap.Tasks) - 1
	}
	a.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the selected row is
// within the visible window.
func (a *App) ensureVisible() {
	maxVis := a.visibleCards()
	switch {
	case a.cursor >= a.scroll+maxVis:
		a.scroll = a.cursor - maxVis + 1
	case a.cursor < a.scroll:
		a.scroll = a.cursor
	}
}

func (a *App) chromeHeight() int {
	h := listChrome
	if a.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCards returns how many cards fit in the list area. Cards are
// a fixed three lines tall (two content lines inside a border would be
// taller; these are flat rows).
func (a *App) visibleCards() int {
	budget := a.height - a.chromeHeight()
	n := budget / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

func (a *App) shiftFilter(delta int) tea.Cmd {
	filters := task.Filters()
	cur := 0
	for i, f := range filters {
		if f == a.snap.Filter {
			cur = i
			break
		}
	}
	next := (cur + delta + len(filters)) % len(filters)
	return a.setFilterCmd(filters[next])
}

// --- Messages and commands ---

// ReloadMsg is sent by the file watcher to trigger a list refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically to refresh relative date labels.
type TickMsg struct{}

type refreshedMsg struct{}

type mutatedMsg struct {
	err error
	cue session.HapticKind
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.store.Refresh(context.Background())
		return refreshedMsg{}
	}
}

func (a *App) setFilterCmd(f task.Filter) tea.Cmd {
	return func() tea.Msg {
		_ = a.store.SetFilter(context.Background(), f)
		return refreshedMsg{}
	}
}

func (a *App) toggleCmd(id int) tea.Cmd {
	return func() tea.Msg {
		err := a.store.Toggle(context.Background(), id)
		return mutatedMsg{err: err, cue: session.HapticSuccess}
	}
}

func (a *App) createCmd(d backend.Draft) tea.Cmd {
	return func() tea.Msg {
		_, err := a.store.Create(context.Background(), d)
		return mutatedMsg{err: err, cue: session.HapticSuccess}
	}
}

func (a *App) updateCmd(id int, p backend.Patch) tea.Cmd {
	return func() tea.Msg {
		err := a.store.Update(context.Background(), id, p)
		return mutatedMsg{err: err, cue: session.HapticSuccess}
	}
}

func (a *App) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		err := a.store.Delete(context.Background(), id)
		return mutatedMsg{err: err, cue: session.HapticWarning}
	}
}
