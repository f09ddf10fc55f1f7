package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/date"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
)

func TestDailyResetClearsRecurringCompletion(t *testing.T) {
	store := kv.NewMemory()
	yesterday := day.AddDate(0, 0, -1)

	tr := open(t, store, yesterday)
	daily, err := tr.Add(recurring("stretch"))
	require.NoError(t, err)
	once, err := tr.Add(input("file taxes"))
	require.NoError(t, err)
	_, err = tr.Toggle(daily.ID)
	require.NoError(t, err)
	_, err = tr.Toggle(once.ID)
	require.NoError(t, err)

	today := open(t, store, day)
	got, err := today.Get(daily.ID)
	require.NoError(t, err)
	assert.False(t, got.CompletedToday)

	kept, err := today.Get(once.ID)
	require.NoError(t, err)
	assert.True(t, kept.Completed, "one-off completion survives the reset")

	raw, ok, err := store.Load(kv.KeyLastReset)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"`+date.Of(day).String()+`"`, raw)
	assert.True(t, today.LastReset().Equal(date.Of(day)))
}

func TestSameDayReopenIsNoOp(t *testing.T) {
	store := kv.NewMemory()
	tr := open(t, store, day)
	daily, err := tr.Add(recurring("stretch"))
	require.NoError(t, err)
	_, err = tr.Toggle(daily.ID)
	require.NoError(t, err)

	saves := store.Saves()
	again := open(t, store, day.Add(3*time.Hour))
	assert.Equal(t, saves, store.Saves())

	got, err := again.Get(daily.ID)
	require.NoError(t, err)
	assert.True(t, got.CompletedToday)
}

func TestUnparseableMarkerForcesReset(t *testing.T) {
	store := kv.NewMemory()
	tr := open(t, store, day)
	daily, err := tr.Add(recurring("stretch"))
	require.NoError(t, err)
	_, err = tr.Toggle(daily.ID)
	require.NoError(t, err)

	require.NoError(t, store.Save(kv.KeyLastReset, "Sun Oct 18 2026"))
	again := open(t, store, day)
	got, err := again.Get(daily.ID)
	require.NoError(t, err)
	assert.False(t, got.CompletedToday)
}

func TestReloadAcrossMidnight(t *testing.T) {
	store := kv.NewMemory()
	now := day
	tr, err := Open(store, Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	daily, err := tr.Add(recurring("stretch"))
	require.NoError(t, err)
	_, err = tr.Toggle(daily.ID)
	require.NoError(t, err)

	now = day.AddDate(0, 0, 1)
	require.NoError(t, tr.Reload())
	got, err := tr.Get(daily.ID)
	require.NoError(t, err)
	assert.False(t, got.CompletedToday)
}
