package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// formField identifies a row of the task form.
type formField int

const (
	fieldName formField = iota
	fieldKind
	fieldDuration
	fieldPriority
	fieldEnergy
	fieldCategory
	fieldReason // only shown when editing a stalled task
)

var kindChoices = []task.Kind{task.OneOff, task.Recurring}

// taskForm adds a task (editID 0) or edits an existing one. Text fields take
// every key while focused; choice fields cycle with left/right.
type taskForm struct {
	editID     int64
	withReason bool
	focus      formField

	name     textinput.Model
	category textinput.Model
	reason   textinput.Model
	custom   textinput.Model

	kind     int
	duration int // index into presets; len(presets) selects custom
	priority int // index into task.Levels
	energy   int
	presets  []int

	err error
}

func newTextInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

func (a *App) openAddForm() {
	a.openForm(0, a.cfg.DefaultInput(), false)
}

func (a *App) openEditForm() {
	t, ok := a.selected()
	if !ok {
		return
	}
	a.openForm(t.ID, task.InputFrom(t), t.Stalled)
}

func (a *App) openForm(id int64, in task.Input, withReason bool) {
	f := taskForm{
		editID:     id,
		withReason: withReason,
		name:       newTextInput("what needs doing", 120, 40),
		category:   newTextInput(task.Uncategorized, 40, 24),
		reason:     newTextInput("why it is stalled", 200, 40),
		custom:     newTextInput("minutes", 4, 8),
		presets:    a.tracker.Durations(),
	}
	f.name.SetValue(in.Name)
	if in.Category != task.Uncategorized {
		f.category.SetValue(in.Category)
	}
	f.reason.SetValue(in.StallReason)

	if k, ok := task.ParseKind(in.Kind); ok {
		f.kind = max(slices.Index(kindChoices, k), 0)
	}
	f.priority = levelIndex(in.Priority)
	f.energy = levelIndex(in.Energy)

	minutes, err := task.ResolveDuration(in.Duration, in.CustomDuration, f.presets)
	if err != nil {
		minutes = task.DefaultDuration
	}
	f.duration = slices.Index(f.presets, minutes)
	if f.duration < 0 {
		f.duration = len(f.presets)
		f.custom.SetValue(strconv.Itoa(minutes))
	}

	a.form = f
	a.setFormFocus(fieldName)
	a.view = viewTaskForm
}

// levelIndex returns the position of s in task.Levels, medium when unknown.
func levelIndex(s string) int {
	if l, ok := task.ParseLevel(s); ok {
		return slices.Index(task.Levels, l)
	}
	return slices.Index(task.Levels, task.Medium)
}

func (f *taskForm) fieldCount() int {
	if f.withReason {
		return int(fieldReason) + 1
	}
	return int(fieldReason)
}

func (f *taskForm) customSelected() bool {
	return f.duration == len(f.presets)
}

// textField returns the text input behind the focused row, if any.
func (f *taskForm) textField() *textinput.Model {
	switch f.focus {
	case fieldName:
		return &f.name
	case fieldCategory:
		return &f.category
	case fieldReason:
		return &f.reason
	case fieldDuration:
		if f.customSelected() {
			return &f.custom
		}
	}
	return nil
}

func (a *App) setFormFocus(field formField) {
	f := &a.form
	f.focus = field
	for _, ti := range []*textinput.Model{&f.name, &f.category, &f.reason, &f.custom} {
		ti.Blur()
	}
	if ti := f.textField(); ti != nil {
		ti.Focus()
	}
}

// input builds the task.Input the form currently describes.
func (f *taskForm) input() task.Input {
	in := task.Input{
		Name:        f.name.Value(),
		Kind:        string(kindChoices[f.kind]),
		Priority:    string(task.Levels[f.priority]),
		Energy:      string(task.Levels[f.energy]),
		Category:    f.category.Value(),
		StallReason: f.reason.Value(),
	}
	if f.customSelected() {
		in.Duration = task.CustomDuration
		in.CustomDuration = f.custom.Value()
	} else {
		in.Duration = strconv.Itoa(f.presets[f.duration])
	}
	return in
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.form
	n := formField(f.fieldCount())

	switch msg.Type {
	case tea.KeyEsc:
		a.view = viewList
		return a, nil
	case tea.KeyEnter:
		a.saveForm()
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.setFormFocus((f.focus + 1) % n)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.setFormFocus((f.focus + n - 1) % n)
		return a, nil
	case tea.KeyLeft, tea.KeyRight:
		if a.cycleChoice(msg.Type == tea.KeyRight) {
			return a, nil
		}
	}

	ti := f.textField()
	if ti == nil {
		return a, nil
	}
	if ti == &f.custom && len(msg.Runes) > 0 && !isDigit(string(msg.Runes)) {
		return a, nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return a, cmd
}

// cycleChoice steps the focused choice field. It reports false when the
// focused row is a text field.
func (a *App) cycleChoice(forward bool) bool {
	f := &a.form
	step := func(i, n int) int {
		if forward {
			return (i + 1) % n
		}
		return (i + n - 1) % n
	}
	switch f.focus {
	case fieldKind:
		f.kind = step(f.kind, len(kindChoices))
	case fieldDuration:
		f.duration = step(f.duration, len(f.presets)+1)
		a.setFormFocus(fieldDuration)
	case fieldPriority:
		f.priority = step(f.priority, len(task.Levels))
	case fieldEnergy:
		f.energy = step(f.energy, len(task.Levels))
	default:
		return false
	}
	return true
}

func (a *App) saveForm() {
	f := &a.form
	in := f.input()

	var (
		t   task.Task
		err error
	)
	if f.editID == 0 {
		t, err = a.tracker.Add(in)
	} else {
		t, err = a.tracker.Edit(f.editID, in)
	}

	switch {
	case clierr.HasCode(err, clierr.TaskNotFound):
		a.view = viewList
	case err != nil:
		f.err = err
		return
	case f.editID == 0:
		a.notice = fmt.Sprintf("Added #%d: %s", t.ID, t.Name)
	default:
		a.notice = fmt.Sprintf("Saved #%d: %s", t.ID, t.Name)
	}
	a.err = nil
	a.view = viewList
	a.refresh()
}

func (a *App) viewTaskForm() string {
	f := a.form
	var b strings.Builder

	title := "Add task"
	if f.editID != 0 {
		title = fmt.Sprintf("Edit task #%d", f.editID)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	kinds := make([]string, len(kindChoices))
	for i, k := range kindChoices {
		kinds[i] = k.String()
	}
	levels := make([]string, len(task.Levels))
	for i, l := range task.Levels {
		levels[i] = string(l)
	}
	durations := make([]string, 0, len(f.presets)+1)
	for _, m := range f.presets {
		durations = append(durations, fmt.Sprintf("%dm", m))
	}
	durations = append(durations, "custom")

	duration := renderChoices(durations, f.duration)
	if f.customSelected() {
		duration += " " + f.custom.View()
	}

	rows := []struct {
		field formField
		label string
		value string
	}{
		{fieldName, "Name", f.name.View()},
		{fieldKind, "Type", renderChoices(kinds, f.kind)},
		{fieldDuration, "Duration", duration},
		{fieldPriority, "Priority", renderChoices(levels, f.priority)},
		{fieldEnergy, "Energy", renderChoices(levels, f.energy)},
		{fieldCategory, "Category", f.category.View()},
		{fieldReason, "Reason", f.reason.View()},
	}
	for _, r := range rows[:f.fieldCount()] {
		cursor := "  "
		if r.field == f.focus {
			cursor = activeRowStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-9s %s\n", cursor, r.label, r.value)
	}

	if f.err != nil {
		b.WriteString("\n" + errorStyle.Render(f.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓:field  ←/→:change  enter:save  esc:cancel"))

	return dialogStyle.Render(b.String())
}

func renderChoices(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = activeChoiceStyle.Render(" " + l + " ")
		} else {
			parts[i] = choiceStyle.Render(" " + l + " ")
		}
	}
	return strings.Join(parts, "")
}
