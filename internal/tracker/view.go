package tracker

import (
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// Tab is one of the three list views.
type Tab string

// Tabs.
const (
	Pending   Tab = "pending"
	Completed Tab = "completed"
	Stalled   Tab = "stalled"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{Pending, Completed, Stalled}

// ParseTab parses a tab name. "done" is accepted for Completed.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "":
		return Pending, nil
	case "completed", "done":
		return Completed, nil
	case "stalled":
		return Stalled, nil
	}
	return "", clierr.Newf(clierr.InvalidTab, "invalid tab %q", s).
		WithDetails(map[string]any{"tab": s, "allowed": Tabs})
}

// Title returns the capitalized tab name.
func (tab Tab) Title() string {
	s := string(tab)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Contains reports whether tk belongs in the tab.
func (tab Tab) Contains(tk task.Task) bool {
	switch tab {
	case Pending:
		return !tk.Stalled && !tk.Done()
	case Completed:
		return !tk.Stalled && tk.Done()
	case Stalled:
		return tk.Stalled
	}
	return false
}

// View returns the tasks in tab, in insertion order.
func View(tasks []task.Task, tab Tab) []task.Task {
	result := []task.Task{}
	for _, tk := range tasks {
		if tab.Contains(tk) {
			result = append(result, tk)
		}
	}
	return result
}

// View returns the tracker's tasks in tab.
func (t *Tracker) View(tab Tab) []task.Task {
	return View(t.tasks, tab)
}
