package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

func names(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		out = append(out, tk.Name)
	}
	return out
}

func TestViewPartitionsTasks(t *testing.T) {
	tasks := []task.Task{
		{Name: "open", Kind: task.OneOff},
		{Name: "done", Kind: task.OneOff, Completed: true},
		{Name: "daily-open", Kind: task.Recurring, Completed: true},
		{Name: "daily-done", Kind: task.Recurring, CompletedToday: true},
		{Name: "stuck", Kind: task.OneOff, Stalled: true},
		{Name: "stuck-done", Kind: task.OneOff, Completed: true, Stalled: true},
	}

	assert.Equal(t, []string{"open", "daily-open"}, names(View(tasks, Pending)))
	assert.Equal(t, []string{"done", "daily-done"}, names(View(tasks, Completed)))
	assert.Equal(t, []string{"stuck", "stuck-done"}, names(View(tasks, Stalled)))
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("Done")
	require.NoError(t, err)
	assert.Equal(t, Completed, tab)
	assert.Equal(t, "Completed", tab.Title())

	_, err = ParseTab("archive")
	assert.True(t, clierr.HasCode(err, clierr.InvalidTab))
}

func TestSummary(t *testing.T) {
	tr := open(t, kv.NewMemory(), day)
	for _, c := range []string{"Work", "", "Home", "Work"} {
		in := input("x")
		in.Category = c
		_, err := tr.Add(in)
		require.NoError(t, err)
	}
	first := tr.Tasks()[0]
	_, err := tr.Toggle(first.ID)
	require.NoError(t, err)

	o := tr.Summary()
	assert.Equal(t, 4, o.TotalTasks)
	assert.Equal(t, 90, o.PendingMinutes)
	assert.Equal(t, []TabCount{{Pending, 3}, {Completed, 1}, {Stalled, 0}}, o.Tabs)

	require.Len(t, o.Categories, 3)
	assert.Equal(t, "Work", o.Categories[0].Category)
	assert.Equal(t, 1, o.Categories[0].Completed)
	assert.Equal(t, 2, o.Categories[0].Total)
	assert.Equal(t, "Home", o.Categories[1].Category)
	assert.Equal(t, task.Uncategorized, o.Categories[2].Category)

	assert.Equal(t, task.High, o.Priorities[0].Priority)
	assert.Equal(t, 4, o.Priorities[0].Count)
	assert.NotEmpty(t, o.LastReset)
}
