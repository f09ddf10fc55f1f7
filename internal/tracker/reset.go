package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/xiaofuou6/chaos-card-machine/internal/date"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// loadLastReset returns the stored reset day. A missing or unparseable
// marker yields the zero Date, which forces a reset.
func loadLastReset(store kv.Store) date.Date {
	raw, ok, err := store.Load(kv.KeyLastReset)
	if err != nil || !ok {
		return date.Date{}
	}
	var d date.Date
	if json.Unmarshal([]byte(raw), &d) != nil {
		return date.Date{}
	}
	return d
}

// resetIfNewDay clears CompletedToday on recurring tasks the first time the
// tracker is opened on a new local calendar day.
func (t *Tracker) resetIfNewDay() error {
	today := date.Of(t.opts.Now())
	if !t.lastReset.IsZero() && t.lastReset.Equal(today) {
		return nil
	}

	tasks := make([]task.Task, len(t.tasks))
	copy(tasks, t.tasks)
	cleared := 0
	for i := range tasks {
		if tasks[i].Kind == task.Recurring && tasks[i].CompletedToday {
			tasks[i].CompletedToday = false
			cleared++
		}
	}

	raw, err := task.Encode(tasks)
	if err != nil {
		return err
	}
	if err := t.store.Save(kv.KeyTasks, raw); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	marker, err := json.Marshal(today)
	if err != nil {
		return fmt.Errorf("marshaling reset date: %w", err)
	}
	if err := t.store.Save(kv.KeyLastReset, string(marker)); err != nil {
		return fmt.Errorf("saving reset date: %w", err)
	}

	t.tasks = tasks
	t.lastReset = today
	t.record(ActionReset, 0, fmt.Sprintf("%s: %d recurring cleared", today, cleared))
	return nil
}
