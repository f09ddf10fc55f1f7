package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xiaofuou6/chaos-card-machine/internal/draw"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

const cardChrome = 4 // border plus padding on each side

// startShuffle lays out the card fan and schedules the reveal. A zero
// shuffle duration reveals immediately.
func (a *App) startShuffle() tea.Cmd {
	a.countdown.Cancel()
	a.countdownGen++
	a.timeUp = false

	current, _ := a.session.Current()
	a.fan = draw.Fan(a.session.Candidates(), current)
	a.fanIdx = 0

	d := a.cfg.ShuffleDuration()
	if d <= 0 {
		a.shuffling = false
		return nil
	}
	a.shuffling = true
	a.shuffleGen++
	return tea.Batch(a.spinner.Tick, shuffleCmd(d, a.shuffleGen))
}

func (a *App) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Back) {
		a.session.Abandon()
		a.closeCard("")
		return a, nil
	}
	if a.shuffling {
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Redraw):
		if _, err := a.session.Redraw(); err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		return a, a.startShuffle()
	case key.Matches(msg, keys.Timer):
		current, ok := a.session.Current()
		if !ok {
			return a, nil
		}
		a.countdown.Start(current.Duration)
		a.countdownGen++
		a.timeUp = false
		return a, countdownCmd(a.countdownGen)
	case key.Matches(msg, keys.Complete):
		done, err := a.session.Complete()
		if err != nil {
			a.err = err
			return a, nil
		}
		a.closeCard(fmt.Sprintf("Completed #%d %s", done.ID, done.Name))
	}
	return a, nil
}

func (a *App) handleCountdownTick(msg countdownMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.countdownGen || !a.countdown.Running() {
		return a, nil
	}
	if a.countdown.Tick() {
		a.timeUp = true
		return a, nil
	}
	return a, countdownCmd(a.countdownGen)
}

// closeCard returns to the list, stopping the countdown.
func (a *App) closeCard(notice string) {
	a.countdown.Cancel()
	a.countdownGen++
	a.shuffling = false
	a.timeUp = false
	a.err = nil
	a.notice = notice
	a.view = viewList
	a.refresh()
}

func (a *App) viewCard() string {
	if a.shuffling {
		return a.viewShuffle()
	}

	current, ok := a.session.Current()
	if !ok {
		return dialogStyle.Render(dimStyle.Render("No task drawn."))
	}

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(current.Name) + "\n\n")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n\n",
		tagStyle.Render(fmt.Sprintf("%d min", current.Duration)),
		levelStyle(current.Energy).Render("energy "+string(current.Energy)),
		levelStyle(current.Priority).Render("priority "+string(current.Priority)),
		categoryStyle.Render(current.Category))

	b.WriteString(timerStyle.Render(a.countdown.String()) + "\n")
	b.WriteString(a.progress.ViewAs(a.countdown.Progress()) + "\n")
	if a.timeUp {
		b.WriteString(noticeStyle.Render("Time's up! Did you finish?") + "\n")
	}

	if a.err != nil {
		b.WriteString("\n" + errorStyle.Render(a.err.Error()) + "\n")
	}

	help := fmt.Sprintf("r:redraw (%d left)  t:timer  c:complete  esc:close", a.session.Remaining())
	b.WriteString("\n" + dimStyle.Render(help))

	return activeCardStyle.Render(b.String())
}

func (a *App) viewShuffle() string {
	cards := make([]string, 0, len(a.fan))
	for i := range a.fan {
		if i == a.fanIdx {
			cards = append(cards, activeFanStyle.Render("🂠"))
		} else {
			cards = append(cards, fanStyle.Render("🂠"))
		}
	}
	fan := lipgloss.JoinHorizontal(lipgloss.Center, cards...)

	name := ""
	if a.fanIdx < len(a.fan) {
		name = dimStyle.Render(truncate(a.fan[a.fanIdx].Name, max(a.width-cardChrome*2, 8))) //nolint:mnd // minimum
	}
	content := a.spinner.View() + " Shuffling...\n\n" + fan + "\n\n" + name
	return cardStyle.Render(content)
}

// levelStyle returns the color for a priority or energy level.
func levelStyle(l task.Level) lipgloss.Style {
	if st, ok := levelStyles[l]; ok {
		return st
	}
	return dimStyle
}
