// Package board provides list-level operations on task collections:
// filtering, sorting, and grouping for the list command.
package board

import (
	"slices"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// Validate checks the sort field.
func (o ListOptions) Validate() error {
	if o.SortBy != "" && !slices.Contains(ValidSortFields(), o.SortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid sort field %q; valid: %s",
			o.SortBy, strings.Join(ValidSortFields(), ", ")).
			WithDetails(map[string]any{"sort": o.SortBy, "allowed": ValidSortFields()})
	}
	return nil
}

// List applies filters, sorting and the limit. The input slice is not modified.
func List(tasks []task.Task, opts ListOptions) []task.Task {
	result := Filter(tasks, opts.Filter)

	sortField := opts.SortBy
	if sortField == "" {
		sortField = FieldID
	}
	Sort(result, sortField, opts.Reverse)

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}
