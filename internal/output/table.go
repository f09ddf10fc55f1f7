package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/xiaofuou6/chaos-card-machine/internal/activity"
	"github.com/xiaofuou6/chaos-card-machine/internal/board"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Tab colors aligned with the TUI tab bar.
	tabStyles = map[string]lipgloss.Style{
		string(tracker.Pending):   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		string(tracker.Completed): lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		string(tracker.Stalled):   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}

	// Level colors shared by priority and energy, matching the TUI palette.
	levelStyles = map[string]lipgloss.Style{
		string(task.High):   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		string(task.Medium): lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		string(task.Low):    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	stallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// DisableColor strips all styling from table output and switches lipgloss
// and the markdown renderer to plain ASCII.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	tabStyles = map[string]lipgloss.Style{}
	levelStyles = map[string]lipgloss.Style{}
	categoryStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	stallStyle = lipgloss.NewStyle()
	markdownStyle = plainMarkdownStyle
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, kindW, nameW, catW := 4, 9, 6, 10
	for _, t := range tasks {
		idW = max(idW, len(strconv.FormatInt(t.ID, 10))+pad)
		nameW = max(nameW, min(lipgloss.Width(t.Name)+pad, 50))   //nolint:mnd // max name column width
		catW = max(catW, min(lipgloss.Width(t.Category)+pad, 24)) //nolint:mnd // max category column width
	}

	header := fmt.Sprintf("%-*s %-4s %-*s %-*s %5s  %-8s %-8s %-*s",
		idW, "ID", "DONE", kindW, "TYPE", nameW, "NAME", "MIN", "PRIORITY", "ENERGY", catW, "CATEGORY")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		row := fmt.Sprintf("%-*d %s %-*s %s %5d  %s %s %s",
			idW, t.ID,
			padRight(doneMark(t), 4), //nolint:mnd // done column width
			kindW, t.Kind.String(),
			padRight(truncate(t.Name, 48), nameW), //nolint:mnd // max name width
			t.Duration,
			padRight(styledValue(string(t.Priority), levelStyles), 8), //nolint:mnd // level column width
			padRight(styledValue(string(t.Energy), levelStyles), 8),   //nolint:mnd // level column width
			categoryStyle.Render(truncate(t.Category, 22)))            //nolint:mnd // max category width
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Name)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Type", t.Kind.String())
	printField(w, "Duration", FormatMinutes(t.Duration))
	printField(w, "Priority", styledValue(string(t.Priority), levelStyles))
	printField(w, "Energy", styledValue(string(t.Energy), levelStyles))
	printField(w, "Category", categoryStyle.Render(t.Category))
	printField(w, "Status", styledValue(string(tabOf(t)), tabStyles))
	if t.Stalled {
		printField(w, "Reason", stringOrDash(t.StallReason))
	}
	printField(w, "Created", t.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// OverviewTable renders a tracker summary as a formatted dashboard.
func OverviewTable(w io.Writer, name string, s tracker.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(name))
	fmt.Fprintf(w, "Total: %d tasks, %s pending\n", s.TotalTasks, FormatMinutes(s.PendingMinutes))
	if s.LastReset != "" {
		fmt.Fprintln(w, dimStyle.Render("Daily reset: "+s.LastReset))
	}
	fmt.Fprintln(w)

	const colW = 16
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %6s", "TAB", "COUNT")))
	for _, tc := range s.Tabs {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(string(tc.Tab), tabStyles), colW), tc.Count)
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(w)
		header := fmt.Sprintf("%-16s %8s %10s %8s %6s", "CATEGORY", "PENDING", "COMPLETED", "STALLED", "TOTAL")
		fmt.Fprintln(w, headerStyle.Render(header))
		for _, cc := range s.Categories {
			fmt.Fprintf(w, "%s %8d %10d %8d %6d\n",
				padRight(categoryStyle.Render(truncate(cc.Category, colW-1)), colW),
				cc.Pending, cc.Completed, cc.Stalled, cc.Total)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %6s", "PRIORITY", "COUNT")))
	for _, pc := range s.Priorities {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(string(pc.Priority), levelStyles), colW), pc.Count)
	}
}

// GroupedTable renders a grouped list, one indented task table per group.
func GroupedTable(w io.Writer, gs board.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d tasks, %s)", g.Key, g.Total, FormatMinutes(g.Minutes))
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
		for _, t := range g.Tasks {
			fmt.Fprintf(w, "  %s\n", formatTaskLine(t))
		}
	}
}

// CategoryList renders the category registry, one per line.
func CategoryList(w io.Writer, categories []string) {
	if len(categories) == 0 {
		fmt.Fprintln(os.Stderr, "No categories registered.")
		return
	}
	for _, c := range categories {
		fmt.Fprintln(w, categoryStyle.Render(c))
	}
}

// ActivityTable renders activity log entries, oldest first.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-16s %-8s %-15s %s", "TIME", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := dimStyle.Render("--")
		if e.TaskID != 0 {
			id = "#" + strconv.FormatInt(e.TaskID, 10)
		}
		row := fmt.Sprintf("%s %-8s %s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Action,
			padRight(id, 15), //nolint:mnd // task column width
			e.Detail)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// FormatMinutes renders minutes as "45m" or "1h 30m".
func FormatMinutes(m int) string {
	if m < 60 { //nolint:mnd // minutes per hour
		return strconv.Itoa(m) + "m"
	}
	h, rest := m/60, m%60 //nolint:mnd // minutes per hour
	if rest == 0 {
		return strconv.Itoa(h) + "h"
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(rest) + "m"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

func doneMark(t task.Task) string {
	switch {
	case t.Stalled:
		return stallStyle.Render("‖")
	case t.Done():
		return doneStyle.Render("✓")
	}
	return dimStyle.Render("·")
}

func tabOf(t task.Task) tracker.Tab {
	for _, tab := range tracker.Tabs {
		if tab.Contains(t) {
			return tab
		}
	}
	return tracker.Pending
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
