package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xiaofuou6/chaos-card-machine/internal/board"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

func sample() task.Task {
	return task.Task{
		ID: 1760000000000, Name: "Water plants", Kind: task.Recurring, Duration: 90,
		Priority: task.Medium, Energy: task.Low, Category: "Home",
		CreatedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvOutput, "")
	assert.Equal(t, FormatTable, Detect(false, false, false))
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))

	t.Setenv(EnvOutput, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h", FormatMinutes(60))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestCompactLine(t *testing.T) {
	tk := sample()
	assert.Equal(t, "#1760000000000 [pending/medium/low] Water plants 1h 30m daily (Home)", formatTaskLine(tk))

	tk.Stalled = true
	tk.Category = task.Uncategorized
	tk.Kind = task.OneOff
	assert.Equal(t, "#1760000000000 [stalled/medium/low] Water plants 1h 30m", formatTaskLine(tk))
}

func TestCardMarkdown(t *testing.T) {
	tk := sample()
	tk.Category = "A|B"
	md := CardMarkdown(tk, 3)
	assert.Contains(t, md, "# Water plants")
	assert.Contains(t, md, `A\|B`)
	assert.Contains(t, md, "Redraws left: **3**")

	assert.NotContains(t, CardMarkdown(tk, -1), "Redraws left")
}

func TestTablesWithoutColor(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	TaskTable(&buf, []task.Task{sample()})
	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "Water plants")
	assert.Contains(t, buf.String(), "recurring")

	buf.Reset()
	OverviewTable(&buf, "mine", tracker.Summarize([]task.Task{sample()}, []string{"Home"}))
	assert.Contains(t, buf.String(), "Total: 1 tasks, 1h 30m pending")
	assert.Contains(t, buf.String(), "Home")

	buf.Reset()
	DrawCard(&buf, sample(), 5)
	assert.Contains(t, buf.String(), "Water plants")
}

func TestGroupedTable(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	GroupedTable(&buf, board.GroupBy([]task.Task{sample()}, board.FieldCategory))
	assert.Contains(t, buf.String(), "Home (1 tasks, 1h 30m)")
	assert.Contains(t, buf.String(), "Water plants")
}
