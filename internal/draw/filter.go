// Package draw picks a random task that fits a time window and tracks the
// redraw budget of the active draw.
package draw

import (
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// All matches every value of a filter field.
const All = "all"

// Filter narrows the draw by priority, energy and category. Each field is
// All or a concrete value. The zero Filter is treated as all-All.
type Filter struct {
	Priority string `json:"priority"`
	Energy   string `json:"energy"`
	Category string `json:"category"`
}

// AnyFilter returns a filter that matches every task.
func AnyFilter() Filter {
	return Filter{Priority: All, Energy: All, Category: All}
}

// ParseFilter validates the priority and energy values. Blank fields mean All.
func ParseFilter(priority, energy, category string) (Filter, error) {
	f := AnyFilter()
	if p := strings.TrimSpace(priority); p != "" && !strings.EqualFold(p, All) {
		lvl, ok := task.ParseLevel(p)
		if !ok {
			return Filter{}, task.ValidateLevel(clierr.InvalidPriority, "priority", priority)
		}
		f.Priority = string(lvl)
	}
	if e := strings.TrimSpace(energy); e != "" && !strings.EqualFold(e, All) {
		lvl, ok := task.ParseLevel(e)
		if !ok {
			return Filter{}, task.ValidateLevel(clierr.InvalidEnergy, "energy", energy)
		}
		f.Energy = string(lvl)
	}
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, All) {
		f.Category = c
	}
	return f, nil
}

// Matches reports whether t passes every non-All field.
func (f Filter) Matches(t task.Task) bool {
	return matchField(f.Priority, string(t.Priority)) &&
		matchField(f.Energy, string(t.Energy)) &&
		matchField(f.Category, t.Category)
}

// IsAll reports whether the filter matches every task.
func (f Filter) IsAll() bool {
	return isAll(f.Priority) && isAll(f.Energy) && isAll(f.Category)
}

func matchField(want, got string) bool {
	return isAll(want) || want == got
}

func isAll(v string) bool {
	return v == "" || v == All
}
