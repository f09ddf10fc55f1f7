package board

import (
	"slices"
	"sort"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// Sort fields.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldDuration = "duration"
	FieldPriority = "priority"
	FieldEnergy   = "energy"
	FieldCategory = "category"
	FieldKind     = "kind"
)

// ValidSortFields returns the list of valid --sort field names.
func ValidSortFields() []string {
	return []string{FieldID, FieldName, FieldDuration, FieldPriority, FieldEnergy, FieldCategory}
}

// Sort sorts tasks by the given field. Priority and energy sort high first;
// ties keep their previous (creation) order.
func Sort(tasks []task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return compareTasks(tasks[j], tasks[i], field)
		}
		return compareTasks(tasks[i], tasks[j], field)
	})
}

func compareTasks(a, b task.Task, field string) bool {
	switch field {
	case FieldName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case FieldDuration:
		return a.Duration < b.Duration
	case FieldPriority:
		return levelIndex(a.Priority) > levelIndex(b.Priority)
	case FieldEnergy:
		return levelIndex(a.Energy) > levelIndex(b.Energy)
	case FieldCategory:
		return strings.ToLower(a.Category) < strings.ToLower(b.Category)
	default:
		return a.ID < b.ID
	}
}

func levelIndex(l task.Level) int {
	return slices.Index(task.Levels, l)
}
