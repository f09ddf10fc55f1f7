package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

var (
	tabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(1, 2)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	activeRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	timerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	categoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	stallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	choiceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeChoiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))

	fanStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	activeFanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Padding(0, 1)

	levelStyles = map[task.Level]lipgloss.Style{
		task.High:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		task.Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.Low:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
