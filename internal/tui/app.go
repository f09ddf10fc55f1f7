// Package tui implements the terminal UI: task tabs, the draw dialog and the
// drawn card with its shuffle animation and countdown.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/draw"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
	viewDrawDialog
	viewCard
	viewTaskForm
)

const keyEsc = "esc"

// App is the top-level bubbletea model.
type App struct {
	cfg     *config.Config
	tracker *tracker.Tracker
	session *draw.Session

	view   view
	tab    int
	rows   []task.Task
	cursor int
	offset int // first visible row
	width  int
	height int
	err    error
	notice string

	// Delete confirmation.
	deleteID   int64
	deleteName string

	dialog drawDialog
	form   taskForm

	// Card view.
	spinner      spinner.Model
	shuffling    bool
	shuffleGen   int
	fan          []task.Task
	fanIdx       int
	countdown    draw.Countdown
	countdownGen int
	progress     progress.Model
	timeUp       bool
}

// NewApp creates the model. The tracker and session are owned by the caller.
func NewApp(cfg *config.Config, tr *tracker.Tracker, session *draw.Session) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	a := &App{
		cfg:      cfg,
		tracker:  tr,
		session:  session,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.progress.Width = max(msg.Width-cardChrome*2, 10) //nolint:mnd // minimum bar width
		a.ensureVisible()
		return a, nil
	case ReloadMsg:
		if err := a.tracker.Reload(); err != nil {
			a.err = err
		}
		a.refresh()
		return a, nil
	case spinner.TickMsg:
		if !a.shuffling {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if len(a.fan) > 0 {
			a.fanIdx = (a.fanIdx + 1) % len(a.fan)
		}
		return a, cmd
	case shuffleDoneMsg:
		if msg.gen == a.shuffleGen {
			a.shuffling = false
		}
		return a, nil
	case countdownMsg:
		return a.handleCountdownTick(msg)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.view {
	case viewConfirmDelete:
		return a.viewDeleteConfirm()
	case viewDrawDialog:
		return a.viewDrawDialog()
	case viewCard:
		return a.viewCard()
	case viewTaskForm:
		return a.viewTaskForm()
	default:
		return a.viewList()
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return a, tea.Quit
	}

	switch a.view {
	case viewList:
		return a.handleListKey(msg)
	case viewConfirmDelete:
		return a.handleDeleteKey(msg)
	case viewDrawDialog:
		return a.handleDialogKey(msg)
	case viewCard:
		return a.handleCardKey(msg)
	case viewTaskForm:
		return a.handleFormKey(msg)
	}
	return a, nil
}

// WatchPaths returns the directories whose changes should trigger a reload.
func (a *App) WatchPaths() []string {
	return a.cfg.WatchPaths()
}

// currentTab returns the tab being shown.
func (a *App) currentTab() tracker.Tab {
	return tracker.Tabs[a.tab]
}

// refresh rebuilds the visible rows from the tracker.
func (a *App) refresh() {
	a.rows = a.tracker.View(a.currentTab())
	if a.cursor >= len(a.rows) {
		a.cursor = max(len(a.rows)-1, 0)
	}
	a.ensureVisible()
}

// apply runs a tracker mutation for the selected row. Unknown IDs are
// ignored: the row may have been removed by another process.
func (a *App) apply(fn func(id int64) (task.Task, error)) {
	t, ok := a.selected()
	if !ok {
		return
	}
	if _, err := fn(t.ID); err != nil && !clierr.HasCode(err, clierr.TaskNotFound) {
		a.err = err
	} else {
		a.err = nil
	}
	a.refresh()
}

func (a *App) selected() (task.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return task.Task{}, false
	}
	return a.rows[a.cursor], true
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a refresh.
type ReloadMsg struct{}

type shuffleDoneMsg struct{ gen int }

type countdownMsg struct{ gen int }

func shuffleCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return shuffleDoneMsg{gen: gen} })
}

func countdownCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownMsg{gen: gen} })
}

// --- Keys ---

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Toggle   key.Binding
	Undo     key.Binding
	Stall    key.Binding
	Delete   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Draw     key.Binding
	Left     key.Binding
	Right    key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Redraw   key.Binding
	Timer    key.Binding
	Complete key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "l", "right")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "h", "left")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "enter")),
	Undo:     key.NewBinding(key.WithKeys("u")),
	Stall:    key.NewBinding(key.WithKeys("s")),
	Delete:   key.NewBinding(key.WithKeys("x")),
	Add:      key.NewBinding(key.WithKeys("a")),
	Edit:     key.NewBinding(key.WithKeys("e")),
	Draw:     key.NewBinding(key.WithKeys("D")),
	Left:     key.NewBinding(key.WithKeys("left", "h")),
	Right:    key.NewBinding(key.WithKeys("right", "l")),
	Confirm:  key.NewBinding(key.WithKeys("enter")),
	Back:     key.NewBinding(key.WithKeys(keyEsc)),
	Redraw:   key.NewBinding(key.WithKeys("r")),
	Timer:    key.NewBinding(key.WithKeys("t")),
	Complete: key.NewBinding(key.WithKeys("c")),
}
