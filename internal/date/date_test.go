package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	// 23:30 UTC on the 17th is already the 18th at UTC+8.
	ts := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2026-10-18", Of(ts).String())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("Sun Oct 18 2026")
	assert.Error(t, err)

	d, err := Parse("2026-10-18")
	require.NoError(t, err)
	assert.True(t, d.Equal(New(2026, time.October, 18)))
}

func TestAddDays(t *testing.T) {
	d := New(2026, time.March, 1)
	assert.Equal(t, "2026-02-28", d.AddDays(-1).String())
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(New(2026, time.October, 18))
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-10-18"`, string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}
