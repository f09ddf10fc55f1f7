package board

import (
	"slices"
	"sort"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Field  string         `json:"field"`
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key     string      `json:"key"`
	Total   int         `json:"total"`
	Minutes int         `json:"minutes"`
	Tasks   []task.Task `json:"tasks"`
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{FieldCategory, FieldPriority, FieldEnergy, FieldKind}
}

// GroupBy groups tasks by the specified field, keeping the task order
// within each group.
func GroupBy(tasks []task.Task, field string) GroupedSummary {
	groups := make(map[string][]task.Task)
	for _, t := range tasks {
		key := extractGroupKey(t, field)
		groups[key] = append(groups[key], t)
	}

	result := GroupedSummary{
		Field:  field,
		Groups: make([]GroupSummary, 0, len(groups)),
	}
	for _, key := range sortGroupKeys(groups, field) {
		g := GroupSummary{Key: key, Total: len(groups[key]), Tasks: groups[key]}
		for _, t := range g.Tasks {
			g.Minutes += t.Duration
		}
		result.Groups = append(result.Groups, g)
	}
	return result
}

func extractGroupKey(t task.Task, field string) string {
	switch field {
	case FieldCategory:
		return t.Category
	case FieldPriority:
		return string(t.Priority)
	case FieldEnergy:
		return string(t.Energy)
	case FieldKind:
		return string(t.Kind)
	default:
		return "(all)"
	}
}

func sortGroupKeys(groups map[string][]task.Task, field string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case FieldPriority, FieldEnergy:
		sort.SliceStable(keys, func(i, j int) bool {
			return levelIndex(task.Level(keys[i])) > levelIndex(task.Level(keys[j]))
		})
	case FieldCategory:
		// Uncategorized last, the rest alphabetically.
		slices.SortFunc(keys, func(a, b string) int {
			switch {
			case a == task.Uncategorized:
				return 1
			case b == task.Uncategorized:
				return -1
			}
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
	default:
		sort.Strings(keys)
	}
	return keys
}
