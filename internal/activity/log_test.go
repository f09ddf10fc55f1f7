package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndTail(t *testing.T) {
	l := New(t.TempDir())
	fixed := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Record("add", 1, "Read")
	l.Record("toggle", 1, "")
	l.RecordSession("abc", "draw", 1, "30m")

	entries, err := l.Tail(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "add", entries[0].Action)
	assert.Equal(t, "abc", entries[2].Session)
	assert.True(t, entries[0].Timestamp.Equal(fixed))

	last, err := l.Tail(1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "draw", last[0].Action)
}

func TestTailMissingLog(t *testing.T) {
	entries, err := New(t.TempDir()).Tail(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNilLogDiscards(t *testing.T) {
	var l *Log
	assert.NotPanics(t, func() { l.Record("add", 1, "x") })
}
