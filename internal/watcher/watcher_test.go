package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New([]string{dir}, func() { calls.Add(1) },
		WithDebounce(50*time.Millisecond), WithIgnore(IgnoreScratch))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte{byte('0' + i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIgnoreScratch(t *testing.T) {
	assert.True(t, IgnoreScratch(".lock"))
	assert.True(t, IgnoreScratch(".tasks-123"))
	assert.True(t, IgnoreScratch("activity.jsonl"))
	assert.False(t, IgnoreScratch("tasks.json"))
	assert.False(t, IgnoreScratch("chaoscard.db"))
}

func TestNewFailsOnMissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope")}, func() {})
	assert.Error(t, err)
}
