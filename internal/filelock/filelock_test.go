package filelock

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l.Unlock())

	// Re-acquiring after release must not block.
	l, err = Acquire(path)
	require.NoError(t, err)
	assert.NoError(t, l.Unlock())
}

func TestWithPropagatesCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	boom := errors.New("boom")

	err := With(path, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	ran := false
	require.NoError(t, With(path, func() error { ran = true; return nil }))
	assert.True(t, ran)
}
