package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

const (
	listChrome  = 4 // tab bar, blank line, blank line, status bar
	errorChrome = 1 // extra line when an error or notice is displayed
)

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q":
		return a, tea.Quit
	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		a.switchTab(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.NextTab):
		a.switchTab((a.tab + 1) % len(tracker.Tabs))
	case key.Matches(msg, keys.PrevTab):
		a.switchTab((a.tab + len(tracker.Tabs) - 1) % len(tracker.Tabs))
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
			a.ensureVisible()
		}
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
			a.ensureVisible()
		}
	case key.Matches(msg, keys.Toggle):
		a.apply(a.tracker.Toggle)
	case key.Matches(msg, keys.Undo):
		a.apply(a.tracker.Undo)
	case key.Matches(msg, keys.Stall):
		a.apply(a.tracker.Stall)
	case key.Matches(msg, keys.Delete):
		if t, ok := a.selected(); ok {
			a.deleteID = t.ID
			a.deleteName = t.Name
			a.view = viewConfirmDelete
		}
	case key.Matches(msg, keys.Add):
		a.openAddForm()
	case key.Matches(msg, keys.Edit):
		a.openEditForm()
	case key.Matches(msg, keys.Draw):
		a.openDrawDialog()
	}
	return a, nil
}

func (a *App) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		a.apply(func(int64) (task.Task, error) { return a.tracker.Delete(a.deleteID) })
		a.view = viewList
	case "n", "N", keyEsc, "q":
		a.view = viewList
	}
	return a, nil
}

func (a *App) switchTab(i int) {
	if i == a.tab {
		return
	}
	a.tab = i
	a.cursor = 0
	a.offset = 0
	a.notice = ""
	a.refresh()
}

// visibleRows returns how many task rows fit below the tab bar.
func (a *App) visibleRows() int {
	h := a.height - listChrome
	if a.err != nil || a.notice != "" {
		h -= errorChrome
	}
	return max(h, 1)
}

func (a *App) ensureVisible() {
	n := a.visibleRows()
	switch {
	case a.cursor >= a.offset+n:
		a.offset = a.cursor - n + 1
	case a.cursor < a.offset:
		a.offset = a.cursor
	}
	if a.offset < 0 {
		a.offset = 0
	}
}

func (a *App) viewList() string {
	parts := []string{a.renderTabs(), ""}

	if len(a.rows) == 0 {
		parts = append(parts, dimStyle.Render("  (empty)"))
	}
	end := min(a.offset+a.visibleRows(), len(a.rows))
	for i := a.offset; i < end; i++ {
		parts = append(parts, a.renderRow(a.rows[i], i == a.cursor))
	}

	parts = append(parts, "", a.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderTabs() string {
	counts := a.tracker.Summary().Tabs
	tabs := make([]string, 0, len(tracker.Tabs))
	for i, tab := range tracker.Tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, tab.Title(), counts[i].Count)
		if i == a.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderRow(t task.Task, active bool) string {
	mark := "[ ]"
	if t.Done() {
		mark = doneStyle.Render("[x]")
	}
	if t.Stalled {
		mark = stallStyle.Render("[~]")
	}

	meta := fmt.Sprintf("%dm  %s  %s  %s",
		t.Duration,
		levelStyle(t.Priority).Render("P:"+string(t.Priority)),
		levelStyle(t.Energy).Render("E:"+string(t.Energy)),
		categoryStyle.Render(t.Category))
	if t.Kind == task.Recurring {
		meta += dimStyle.Render("  daily")
	}

	nameW := max(a.width-lipgloss.Width(meta)-10, 8) //nolint:mnd // cursor, mark and gaps
	line := fmt.Sprintf("%s %s  %s", mark, padRight(truncate(t.Name, nameW), nameW), meta)
	if t.Stalled && t.StallReason != "" {
		line += dimStyle.Render("  (" + t.StallReason + ")")
	}

	if active {
		return activeRowStyle.Render("> " + line)
	}
	return "  " + line
}

func (a *App) renderStatusBar() string {
	status := fmt.Sprintf(" %s | %d tasks | a:add e:edit space:toggle u:undo s:stall x:del D:draw q:quit",
		a.cfg.Name, len(a.tracker.Tasks()))
	status = statusBarStyle.Render(truncate(status, a.width))

	switch {
	case a.err != nil:
		return errorStyle.Render(truncate("Error: "+a.err.Error(), a.width)) + "\n" + status
	case a.notice != "":
		return noticeStyle.Render(truncate(a.notice, a.width)) + "\n" + status
	}
	return status
}

func (a *App) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", a.deleteID, a.deleteName) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
