package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
	line := "  created:" + t.CreatedAt.Local().Format("2006-01-02")
	if t.Stalled && t.StallReason != "" {
		line += " reason:" + strconv.Quote(t.StallReason)
	}
	fmt.Fprintln(w, line)
}

// OverviewCompact renders a tracker summary in compact format.
func OverviewCompact(w io.Writer, name string, s tracker.Overview) {
	fmt.Fprintf(w, "%s (%d tasks, %s pending)\n", name, s.TotalTasks, FormatMinutes(s.PendingMinutes))

	for _, tc := range s.Tabs {
		fmt.Fprintln(w, "  "+string(tc.Tab)+": "+strconv.Itoa(tc.Count))
	}

	if len(s.Categories) > 0 {
		parts := make([]string, 0, len(s.Categories))
		for _, cc := range s.Categories {
			parts = append(parts, cc.Category+"="+strconv.Itoa(cc.Total))
		}
		fmt.Fprintln(w, "Category: "+strings.Join(parts, " "))
	}

	parts := make([]string, 0, len(s.Priorities))
	for _, pc := range s.Priorities {
		parts = append(parts, string(pc.Priority)+"="+strconv.Itoa(pc.Count))
	}
	fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	line := "#" + strconv.FormatInt(t.ID, 10) +
		" [" + string(tabOf(t)) + "/" + string(t.Priority) + "/" + string(t.Energy) + "] " +
		t.Name + " " + FormatMinutes(t.Duration)

	if t.Kind == task.Recurring {
		line += " daily"
	}
	if t.Category != task.Uncategorized {
		line += " (" + t.Category + ")"
	}
	return line
}
