// Package tracker owns the task collection and the category registry, and
// persists both through a kv.Store after every mutation.
//
// A Tracker is not safe for concurrent use. Front-ends drive it from a single
// flow of control (a cobra command or the bubbletea update loop).
package tracker

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xiaofuou6/chaos-card-machine/internal/date"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// Activity actions recorded by the tracker.
const (
	ActionAdd     = "add"
	ActionEdit    = "edit"
	ActionToggle  = "toggle"
	ActionUndo    = "undo"
	ActionStall   = "stall"
	ActionUnstall = "unstall"
	ActionDone    = "done"
	ActionDelete  = "delete"
	ActionReset   = "reset"
)

// Recorder receives one entry per successful mutation.
type Recorder interface {
	Record(action string, taskID int64, detail string)
}

// Options configures a Tracker. The zero value is usable.
type Options struct {
	Now             func() time.Time // defaults to time.Now
	Recorder        Recorder
	Durations       []int  // preset duration choices; defaults to task.DefaultDurations
	DefaultCategory string // used by Add when the input has no category
	OnChange        func() // called after every persisted mutation
}

// Tracker is the task store.
type Tracker struct {
	store      kv.Store
	opts       Options
	tasks      []task.Task
	categories []string
	lastReset  date.Date
}

// Open loads tasks and categories from store and runs the daily reset.
func Open(store kv.Store, opts Options) (*Tracker, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Durations) == 0 {
		opts.Durations = task.DefaultDurations
	}
	t := &Tracker{store: store, opts: opts}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-reads everything from the store and applies the daily reset if
// the calendar day changed since the last one.
func (t *Tracker) Reload() error {
	tasks, err := loadTasks(t.store)
	if err != nil {
		return err
	}
	categories, err := loadCategories(t.store)
	if err != nil {
		return err
	}
	t.tasks = tasks
	t.categories = categories
	t.lastReset = loadLastReset(t.store)
	return t.resetIfNewDay()
}

// Durations returns the preset duration choices.
func (t *Tracker) Durations() []int {
	return slices.Clone(t.opts.Durations)
}

// Tasks returns a copy of all tasks in insertion order.
func (t *Tracker) Tasks() []task.Task {
	return slices.Clone(t.tasks)
}

// Categories returns the registered categories in registration order.
func (t *Tracker) Categories() []string {
	return slices.Clone(t.categories)
}

// LastReset returns the day the daily reset last ran.
func (t *Tracker) LastReset() date.Date {
	return t.lastReset
}

// Get returns the task with the given ID.
func (t *Tracker) Get(id int64) (task.Task, error) {
	i := task.IndexOf(t.tasks, id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	return t.tasks[i], nil
}

// Add validates in and appends a new task with cleared flags.
func (t *Tracker) Add(in task.Input) (task.Task, error) {
	if strings.TrimSpace(in.Category) == "" && t.opts.DefaultCategory != "" {
		in.Category = t.opts.DefaultCategory
	}
	f, err := in.Validate(t.opts.Durations)
	if err != nil {
		return task.Task{}, err
	}

	now := t.opts.Now()
	added := task.Task{
		ID:        t.nextID(now),
		Name:      f.Name,
		Kind:      f.Kind,
		Duration:  f.Duration,
		Priority:  f.Priority,
		Energy:    f.Energy,
		Category:  f.Category,
		CreatedAt: now,
	}

	tasks := append(slices.Clone(t.tasks), added)
	if err := t.commit(tasks, f.Category); err != nil {
		return task.Task{}, err
	}
	t.record(ActionAdd, added.ID, added.Name)
	return added, nil
}

// Edit replaces the editable fields of an existing task. The stall reason
// is only updated while the task is stalled. Completion flags are kept.
func (t *Tracker) Edit(id int64, in task.Input) (task.Task, error) {
	i := task.IndexOf(t.tasks, id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	f, err := in.Validate(t.opts.Durations)
	if err != nil {
		return task.Task{}, err
	}

	tasks := slices.Clone(t.tasks)
	edited := &tasks[i]
	edited.Name = f.Name
	edited.Kind = f.Kind
	edited.Duration = f.Duration
	edited.Priority = f.Priority
	edited.Energy = f.Energy
	edited.Category = f.Category
	if edited.Stalled {
		edited.StallReason = f.StallReason
	}

	if err := t.commit(tasks, f.Category); err != nil {
		return task.Task{}, err
	}
	t.record(ActionEdit, id, edited.Name)
	return *edited, nil
}

// Toggle flips the completion flag that matches the task's kind.
func (t *Tracker) Toggle(id int64) (task.Task, error) {
	return t.update(id, ActionToggle, func(tk *task.Task) { tk.ToggleDone() })
}

// Undo marks the task not done.
func (t *Tracker) Undo(id int64) (task.Task, error) {
	return t.update(id, ActionUndo, func(tk *task.Task) { tk.SetDone(false) })
}

// MarkDone marks the task done.
func (t *Tracker) MarkDone(id int64) (task.Task, error) {
	return t.update(id, ActionDone, func(tk *task.Task) { tk.SetDone(true) })
}

// Stall flips the stalled flag. Resuming a task clears its stall reason.
func (t *Tracker) Stall(id int64) (task.Task, error) {
	i := task.IndexOf(t.tasks, id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	action := ActionStall
	if t.tasks[i].Stalled {
		action = ActionUnstall
	}
	return t.update(id, action, func(tk *task.Task) { tk.ToggleStall() })
}

// SetStallReason stalls the task if it is not stalled yet and sets the reason.
func (t *Tracker) SetStallReason(id int64, reason string) (task.Task, error) {
	reason = strings.TrimSpace(reason)
	return t.update(id, ActionStall, func(tk *task.Task) {
		tk.Stalled = true
		tk.StallReason = reason
	})
}

// Delete removes a task and returns it.
func (t *Tracker) Delete(id int64) (task.Task, error) {
	i := task.IndexOf(t.tasks, id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	removed := t.tasks[i]
	tasks := slices.Delete(slices.Clone(t.tasks), i, i+1)
	if err := t.commit(tasks, ""); err != nil {
		return task.Task{}, err
	}
	t.record(ActionDelete, id, removed.Name)
	return removed, nil
}

func (t *Tracker) update(id int64, action string, fn func(*task.Task)) (task.Task, error) {
	i := task.IndexOf(t.tasks, id)
	if i < 0 {
		return task.Task{}, task.NotFound(id)
	}
	tasks := slices.Clone(t.tasks)
	fn(&tasks[i])
	if err := t.commit(tasks, ""); err != nil {
		return task.Task{}, err
	}
	t.record(action, id, "")
	return tasks[i], nil
}

// commit persists category (when it is new) and tasks, and only then swaps
// them into memory, so a failed save leaves the tracker unchanged. The
// registry is written first: a task is never stored under a category the
// registry lacks.
func (t *Tracker) commit(tasks []task.Task, category string) error {
	categories := t.categories
	if category != "" && category != task.Uncategorized && !slices.Contains(t.categories, category) {
		categories = append(slices.Clone(t.categories), category)
		data, err := json.Marshal(categories)
		if err != nil {
			return fmt.Errorf("marshaling categories: %w", err)
		}
		if err := t.store.Save(kv.KeyCategories, string(data)); err != nil {
			return fmt.Errorf("saving categories: %w", err)
		}
	}

	raw, err := task.Encode(tasks)
	if err != nil {
		return err
	}
	if err := t.store.Save(kv.KeyTasks, raw); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	t.tasks = tasks
	t.categories = categories

	if t.opts.OnChange != nil {
		t.opts.OnChange()
	}
	return nil
}

func (t *Tracker) record(action string, id int64, detail string) {
	if t.opts.Recorder != nil {
		t.opts.Recorder.Record(action, id, detail)
	}
}

// nextID uses the creation time in milliseconds, bumped past the largest
// existing ID when the clock would collide or has gone backwards.
func (t *Tracker) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, tk := range t.tasks {
		if tk.ID >= id {
			id = tk.ID + 1
		}
	}
	return id
}

func loadTasks(store kv.Store) ([]task.Task, error) {
	raw, ok, err := store.Load(kv.KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if !ok {
		return []task.Task{}, nil
	}
	return task.Decode(raw)
}

func loadCategories(store kv.Store) ([]string, error) {
	raw, ok, err := store.Load(kv.KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return []string{}, nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	return categories, nil
}
