package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: 1, Name: "Write report", Kind: task.OneOff, Duration: 60, Priority: task.High, Energy: task.High, Category: "Work"},
		{ID: 2, Name: "stretch", Kind: task.Recurring, Duration: 10, Priority: task.Low, Energy: task.Low, Category: "Health"},
		{ID: 3, Name: "Call mum", Kind: task.OneOff, Duration: 15, Priority: task.Medium, Energy: task.Low, Category: task.Uncategorized},
		{ID: 4, Name: "Inbox zero", Kind: task.OneOff, Duration: 30, Priority: task.High, Energy: task.Medium, Category: "Work",
			Stalled: true, StallReason: "waiting on IT"},
	}
}

func ids(tasks []task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []int64
	}{
		{"empty matches all", FilterOptions{}, []int64{1, 2, 3, 4}},
		{"kind", FilterOptions{Kinds: []task.Kind{task.Recurring}}, []int64{2}},
		{"priorities", FilterOptions{Priorities: []task.Level{task.High, task.Medium}}, []int64{1, 3, 4}},
		{"energy", FilterOptions{Energies: []task.Level{task.Low}}, []int64{2, 3}},
		{"category ignores case", FilterOptions{Categories: []string{"work"}}, []int64{1, 4}},
		{"max minutes", FilterOptions{MaxMinutes: 15}, []int64{2, 3}},
		{"search name", FilterOptions{Search: "REPORT"}, []int64{1}},
		{"search stall reason", FilterOptions{Search: "waiting"}, []int64{4}},
		{"combined", FilterOptions{Categories: []string{"Work"}, MaxMinutes: 30}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sample(), tt.opts)))
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		field   string
		reverse bool
		want    []int64
	}{
		{FieldID, false, []int64{1, 2, 3, 4}},
		{FieldID, true, []int64{4, 3, 2, 1}},
		{FieldName, false, []int64{3, 4, 2, 1}},
		{FieldDuration, false, []int64{2, 3, 4, 1}},
		{FieldPriority, false, []int64{1, 4, 3, 2}},
		{FieldEnergy, false, []int64{1, 4, 2, 3}},
		{FieldCategory, false, []int64{2, 3, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			tasks := sample()
			Sort(tasks, tt.field, tt.reverse)
			assert.Equal(t, tt.want, ids(tasks))
		})
	}
}

func TestListDoesNotModifyInput(t *testing.T) {
	tasks := sample()
	got := List(tasks, ListOptions{SortBy: FieldDuration, Limit: 2})
	assert.Equal(t, []int64{2, 3}, ids(got))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(tasks))
}

func TestListOptionsValidate(t *testing.T) {
	assert.NoError(t, ListOptions{}.Validate())
	assert.NoError(t, ListOptions{SortBy: FieldPriority}.Validate())
	assert.True(t, clierr.HasCode(ListOptions{SortBy: "due"}.Validate(), clierr.InvalidInput))
}

func TestGroupByCategory(t *testing.T) {
	g := GroupBy(sample(), FieldCategory)
	require.Len(t, g.Groups, 3)
	assert.Equal(t, "Health", g.Groups[0].Key)
	assert.Equal(t, "Work", g.Groups[1].Key)
	assert.Equal(t, 2, g.Groups[1].Total)
	assert.Equal(t, 90, g.Groups[1].Minutes)
	assert.Equal(t, task.Uncategorized, g.Groups[2].Key)
}

func TestGroupByPriorityHighFirst(t *testing.T) {
	g := GroupBy(sample(), FieldPriority)
	keys := make([]string, len(g.Groups))
	for i, grp := range g.Groups {
		keys[i] = grp.Key
	}
	assert.Equal(t, []string{"high", "medium", "low"}, keys)
	assert.Equal(t, []int64{1, 4}, ids(g.Groups[0].Tasks))
}
