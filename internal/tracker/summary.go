package tracker

import (
	"slices"
	"sort"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// TabCount holds the number of tasks in one tab.
type TabCount struct {
	Tab   Tab `json:"tab"`
	Count int `json:"count"`
}

// CategoryCount holds per-tab counts for one category.
type CategoryCount struct {
	Category  string `json:"category"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
	Stalled   int    `json:"stalled"`
	Total     int    `json:"total"`
}

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority task.Level `json:"priority"`
	Count    int        `json:"count"`
}

// Overview is the aggregate tracker overview.
type Overview struct {
	TotalTasks     int             `json:"total_tasks"`
	PendingMinutes int             `json:"pending_minutes"`
	Tabs           []TabCount      `json:"tabs"`
	Categories     []CategoryCount `json:"categories"`
	Priorities     []PriorityCount `json:"priorities"`
	LastReset      string          `json:"last_reset,omitempty"`
}

// Summarize computes counts per tab, category and priority. Categories come
// in registry order, then any unregistered ones alphabetically, with
// Uncategorized last.
func Summarize(tasks []task.Task, registry []string) Overview {
	tabMap := make(map[Tab]int, len(Tabs))
	catMap := make(map[string]*CategoryCount)
	prioMap := make(map[task.Level]int, len(task.Levels))
	minutes := 0

	for _, tk := range tasks {
		cc, ok := catMap[tk.Category]
		if !ok {
			cc = &CategoryCount{Category: tk.Category}
			catMap[tk.Category] = cc
		}
		cc.Total++
		for _, tab := range Tabs {
			if !tab.Contains(tk) {
				continue
			}
			tabMap[tab]++
			switch tab {
			case Pending:
				cc.Pending++
				minutes += tk.Duration
			case Completed:
				cc.Completed++
			case Stalled:
				cc.Stalled++
			}
		}
		prioMap[tk.Priority]++
	}

	tabs := make([]TabCount, 0, len(Tabs))
	for _, tab := range Tabs {
		tabs = append(tabs, TabCount{Tab: tab, Count: tabMap[tab]})
	}

	// Highest priority first.
	priorities := make([]PriorityCount, 0, len(task.Levels))
	for i := len(task.Levels) - 1; i >= 0; i-- {
		p := task.Levels[i]
		priorities = append(priorities, PriorityCount{Priority: p, Count: prioMap[p]})
	}

	return Overview{
		TotalTasks:     len(tasks),
		PendingMinutes: minutes,
		Tabs:           tabs,
		Categories:     sortCategories(catMap, registry),
		Priorities:     priorities,
	}
}

func sortCategories(catMap map[string]*CategoryCount, registry []string) []CategoryCount {
	keys := make([]string, 0, len(catMap))
	for k := range catMap {
		keys = append(keys, k)
	}
	rank := func(k string) int {
		if k == task.Uncategorized {
			return len(registry) + 1
		}
		if i := slices.Index(registry, k); i >= 0 {
			return i
		}
		return len(registry)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	result := make([]CategoryCount, 0, len(keys))
	for _, k := range keys {
		result = append(result, *catMap[k])
	}
	return result
}

// Summary returns the overview of the tracker's tasks.
func (t *Tracker) Summary() Overview {
	o := Summarize(t.tasks, t.categories)
	o.LastReset = t.lastReset.String()
	return o
}
