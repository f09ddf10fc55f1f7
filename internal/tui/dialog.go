package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiaofuou6/chaos-card-machine/internal/draw"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

// drawDialog collects the criteria for a draw. The filter choices survive
// between draws for the lifetime of the process.
type drawDialog struct {
	options        []int // time presets; index len(options) selects custom
	index          int
	custom         textinput.Model
	allowCompleted bool
	priority       int // index into levelChoices
	energy         int
	category       int // index into categoryChoices()
	err            error
	initialized    bool
}

// levelChoices is the cycle order of the priority and energy filters.
var levelChoices = []string{draw.All, string(task.High), string(task.Medium), string(task.Low)}

func (a *App) openDrawDialog() {
	d := &a.dialog
	if !d.initialized {
		d.initialized = true
		d.options = a.cfg.Draw.TimeOptions
		d.allowCompleted = a.cfg.Draw.AllowCompleted
		d.custom = textinput.New()
		d.custom.Placeholder = "minutes"
		d.custom.CharLimit = 4
		d.custom.Width = 8
	}
	if d.category >= len(a.categoryChoices()) {
		d.category = 0
	}
	d.err = nil
	a.syncCustomFocus()
	a.view = viewDrawDialog
}

func (a *App) categoryChoices() []string {
	choices := append([]string{draw.All}, a.tracker.Categories()...)
	return append(choices, task.Uncategorized)
}

func (a *App) customSelected() bool {
	return a.dialog.index == len(a.dialog.options)
}

func (a *App) syncCustomFocus() {
	if a.customSelected() {
		a.dialog.custom.Focus()
	} else {
		a.dialog.custom.Blur()
	}
}

// criteria builds the draw criteria from the dialog state.
func (a *App) criteria() draw.Criteria {
	d := a.dialog
	minutes := 0
	if a.customSelected() {
		minutes, _ = strconv.Atoi(strings.TrimSpace(d.custom.Value()))
	} else {
		minutes = d.options[d.index]
	}
	return draw.Criteria{
		AvailableTime:  minutes,
		AllowCompleted: d.allowCompleted,
		Filter: draw.Filter{
			Priority: levelChoices[d.priority],
			Energy:   levelChoices[d.energy],
			Category: a.categoryChoices()[d.category],
		},
	}
}

func (a *App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.dialog
	s := msg.String()

	// Digits and backspace go to the custom minutes field when it is selected.
	if a.customSelected() && (isDigit(s) || s == "backspace") {
		var cmd tea.Cmd
		d.custom, cmd = d.custom.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewList
	case key.Matches(msg, keys.Left):
		if d.index > 0 {
			d.index--
			a.syncCustomFocus()
		}
	case key.Matches(msg, keys.Right):
		if d.index < len(d.options) {
			d.index++
			a.syncCustomFocus()
		}
	case s == "a":
		d.allowCompleted = !d.allowCompleted
	case s == "p":
		d.priority = (d.priority + 1) % len(levelChoices)
	case s == "e":
		d.energy = (d.energy + 1) % len(levelChoices)
	case s == "c":
		d.category = (d.category + 1) % len(a.categoryChoices())
	case key.Matches(msg, keys.Confirm):
		return a.startDraw()
	}
	return a, nil
}

func (a *App) startDraw() (tea.Model, tea.Cmd) {
	if _, err := a.session.Draw(a.criteria()); err != nil {
		a.dialog.err = err
		return a, nil
	}
	a.dialog.err = nil
	a.view = viewCard
	return a, a.startShuffle()
}

func (a *App) viewDrawDialog() string {
	d := a.dialog
	var b strings.Builder

	b.WriteString(titleStyle.Render("Draw a task") + "\n\n")

	b.WriteString("Free time  ")
	for i, m := range d.options {
		label := fmt.Sprintf(" %dm ", m)
		if i == d.index {
			b.WriteString(activeChoiceStyle.Render(label))
		} else {
			b.WriteString(choiceStyle.Render(label))
		}
	}
	custom := " custom "
	if a.customSelected() {
		b.WriteString(activeChoiceStyle.Render(custom) + " " + d.custom.View())
	} else {
		b.WriteString(choiceStyle.Render(custom))
	}
	b.WriteString("\n\n")

	check := "[ ]"
	if d.allowCompleted {
		check = "[x]"
	}
	fmt.Fprintf(&b, "%s allow recurring tasks already done today  %s\n\n", check, dimStyle.Render("a"))
	fmt.Fprintf(&b, "Priority  %-8s %s\n", levelChoices[d.priority], dimStyle.Render("p"))
	fmt.Fprintf(&b, "Energy    %-8s %s\n", levelChoices[d.energy], dimStyle.Render("e"))
	fmt.Fprintf(&b, "Category  %-8s %s\n", a.categoryChoices()[d.category], dimStyle.Render("c"))

	if d.err != nil {
		b.WriteString("\n" + errorStyle.Render(d.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("←/→:time  enter:draw  esc:cancel"))

	return dialogStyle.Render(b.String())
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
