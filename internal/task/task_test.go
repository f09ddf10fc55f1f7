package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
)

var presets = []int{5, 10, 15, 30, 45, 60, 90, 120}

func validInput() Input {
	return Input{
		Name:     "  Read a chapter ",
		Kind:     "once",
		Duration: "30",
		Priority: "high",
		Energy:   "low",
		Category: "",
	}
}

func TestValidate(t *testing.T) {
	f, err := validInput().Validate(presets)
	require.NoError(t, err)

	assert.Equal(t, "Read a chapter", f.Name)
	assert.Equal(t, OneOff, f.Kind)
	assert.Equal(t, 30, f.Duration)
	assert.Equal(t, High, f.Priority)
	assert.Equal(t, Low, f.Energy)
	assert.Equal(t, Uncategorized, f.Category)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		code   string
	}{
		{"blank name", func(in *Input) { in.Name = "   " }, clierr.InvalidName},
		{"unknown kind", func(in *Input) { in.Kind = "weekly" }, clierr.InvalidKind},
		{"unknown priority", func(in *Input) { in.Priority = "urgent" }, clierr.InvalidPriority},
		{"unknown energy", func(in *Input) { in.Energy = "max" }, clierr.InvalidEnergy},
		{"non-preset duration", func(in *Input) { in.Duration = "7" }, clierr.InvalidDuration},
		{"garbage duration", func(in *Input) { in.Duration = "soon" }, clierr.InvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := in.Validate(presets)
			require.Error(t, err)
			assert.True(t, clierr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestResolveDuration(t *testing.T) {
	tests := []struct {
		choice, custom string
		want           int
	}{
		{"45", "", 45},
		{"custom", "25", 25},
		{"CUSTOM", " 7 ", 7},
		{"custom", "", DefaultDuration},
		{"custom", "-5", DefaultDuration},
		{"custom", "abc", DefaultDuration},
		{"custom", "0", DefaultDuration},
	}
	for _, tt := range tests {
		got, err := ResolveDuration(tt.choice, tt.custom, presets)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "choice=%q custom=%q", tt.choice, tt.custom)
	}
}

func TestParseKindAliases(t *testing.T) {
	for _, s := range []string{"once", "OneOff", "one-off"} {
		k, ok := ParseKind(s)
		assert.True(t, ok)
		assert.Equal(t, OneOff, k)
	}
	for _, s := range []string{"regular", "Recurring", "daily"} {
		k, ok := ParseKind(s)
		assert.True(t, ok)
		assert.Equal(t, Recurring, k)
	}
}

func TestToggleDoneIsItsOwnInverse(t *testing.T) {
	for _, kind := range []Kind{OneOff, Recurring} {
		tk := Task{Kind: kind}
		tk.ToggleDone()
		assert.True(t, tk.Done())
		tk.ToggleDone()
		assert.False(t, tk.Done())
	}
}

func TestDoneFlagFollowsKind(t *testing.T) {
	once := Task{Kind: OneOff}
	once.SetDone(true)
	assert.True(t, once.Completed)
	assert.False(t, once.CompletedToday)

	daily := Task{Kind: Recurring}
	daily.SetDone(true)
	assert.True(t, daily.CompletedToday)
	assert.False(t, daily.Completed)
}

func TestToggleStallClearsReasonOnlyWhenResuming(t *testing.T) {
	tk := Task{Stalled: true, StallReason: "blocked"}
	tk.ToggleStall()
	assert.False(t, tk.Stalled)
	assert.Equal(t, "", tk.StallReason)

	tk.StallReason = "waiting on parts"
	tk.ToggleStall()
	assert.True(t, tk.Stalled)
	assert.Equal(t, "waiting on parts", tk.StallReason)
}

func TestEncodeDecode(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	in := []Task{{
		ID: 1, Name: "Stretch", Kind: Recurring, Duration: 10,
		Priority: Medium, Energy: Low, Category: "Health",
		CompletedToday: true, CreatedAt: created,
	}}

	raw, err := Encode(in)
	require.NoError(t, err)
	assert.Contains(t, raw, `"type":"regular"`)
	assert.Contains(t, raw, `"completedToday":true`)
	assert.NotContains(t, raw, "stallReason")

	out, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Name, out[0].Name)
	assert.True(t, out[0].CreatedAt.Equal(created))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestDecodeNormalizesLegacyRecords(t *testing.T) {
	out, err := Decode(`[{"id":5,"name":"x","duration":15,"category":""}]`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, OneOff, out[0].Kind)
	assert.Equal(t, Uncategorized, out[0].Category)

	_, err = Decode(`{not json`)
	assert.Error(t, err)
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("3, #4,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)

	_, err = ParseIDs("x")
	assert.True(t, clierr.HasCode(err, clierr.InvalidTaskID))

	_, err = ParseIDs(" , ")
	assert.Error(t, err)
}

func TestInputFromRoundTrips(t *testing.T) {
	tk := Task{Name: "Walk", Kind: Recurring, Duration: 37, Priority: Low, Energy: Medium, Category: "Health"}
	f, err := InputFrom(tk).Validate(presets)
	require.NoError(t, err)
	assert.Equal(t, 37, f.Duration)
	assert.Equal(t, Recurring, f.Kind)
	assert.Equal(t, "Health", f.Category)
}
