package draw

import (
	"math/rand/v2"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// Criteria are the inputs of one draw.
type Criteria struct {
	AvailableTime  int    `json:"available_time"` // minutes
	AllowCompleted bool   `json:"allow_completed"`
	Filter         Filter `json:"filter"`
}

// Validate rejects a non-positive time window.
func (c Criteria) Validate() error {
	if c.AvailableTime <= 0 {
		return clierr.Newf(clierr.InvalidDuration, "available time must be a positive number of minutes, got %d", c.AvailableTime).
			WithDetails(map[string]any{"available_time": c.AvailableTime})
	}
	return nil
}

// Eligible reports whether t can be drawn under c. AllowCompleted only
// re-admits recurring tasks done today; completed one-off tasks never qualify.
func Eligible(t task.Task, c Criteria) bool {
	if t.Duration > c.AvailableTime || t.Stalled {
		return false
	}
	switch t.Kind {
	case task.Recurring:
		if t.CompletedToday && !c.AllowCompleted {
			return false
		}
	default:
		if t.Completed {
			return false
		}
	}
	return c.Filter.Matches(t)
}

// EligibleSet returns the eligible tasks in their original order.
func EligibleSet(tasks []task.Task, c Criteria) []task.Task {
	result := []task.Task{}
	for _, t := range tasks {
		if Eligible(t, c) {
			result = append(result, t)
		}
	}
	return result
}

// Pick returns a uniformly chosen candidate. It reports false for an empty set.
func Pick(rng *rand.Rand, candidates []task.Task) (task.Task, bool) {
	if len(candidates) == 0 {
		return task.Task{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// NewRand returns a generator seeded with seed. Equal seeds replay the same
// sequence of picks.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NoEligible returns the error for an empty eligible set.
func NoEligible(c Criteria) *clierr.Error {
	return clierr.Newf(clierr.NoEligibleTasks, "no task fits %d minutes with the current filters", c.AvailableTime).
		WithDetails(map[string]any{
			"available_time":  c.AvailableTime,
			"allow_completed": c.AllowCompleted,
			"filter":          c.Filter,
		})
}
