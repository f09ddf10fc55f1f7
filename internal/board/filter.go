package board

import (
	"slices"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// FilterOptions defines which tasks to include. Empty fields match everything.
type FilterOptions struct {
	Kinds      []task.Kind
	Priorities []task.Level
	Energies   []task.Level
	Categories []string
	MaxMinutes int    // 0 = no limit
	Search     string // case-insensitive substring match across name, category and stall reason
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	var result []task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t task.Task, opts FilterOptions) bool {
	if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, t.Kind) {
		return false
	}
	if len(opts.Priorities) > 0 && !slices.Contains(opts.Priorities, t.Priority) {
		return false
	}
	if len(opts.Energies) > 0 && !slices.Contains(opts.Energies, t.Energy) {
		return false
	}
	if len(opts.Categories) > 0 && !containsFold(opts.Categories, t.Category) {
		return false
	}
	if opts.MaxMinutes > 0 && t.Duration > opts.MaxMinutes {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across name,
// category and stall reason.
func matchesSearch(t task.Task, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{t.Name, t.Category, t.StallReason} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
