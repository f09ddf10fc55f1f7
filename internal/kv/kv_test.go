package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	d, err := Open(BackendDir, filepath.Join(dir, "data"))
	require.NoError(t, err)
	s, err := Open(BackendSQLite, filepath.Join(dir, "db", "chaoscard.db"))
	require.NoError(t, err)
	m, err := Open(BackendMemory, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = d.Close()
		_ = s.Close()
	})
	return map[string]Backend{BackendDir: d, BackendSQLite: s, BackendMemory: m}
}

func TestBackendsLoadSave(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Load(KeyTasks)
			require.NoError(t, err)
			assert.False(t, ok, "unsaved key must report ok=false")

			require.NoError(t, b.Save(KeyTasks, `[{"id":1}]`))
			require.NoError(t, b.Save(KeyTasks, `[]`))
			require.NoError(t, b.Save(KeyLastReset, `"2026-10-18"`))

			v, ok, err := b.Load(KeyTasks)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)

			v, _, err = b.Load(KeyLastReset)
			require.NoError(t, err)
			assert.Equal(t, `"2026-10-18"`, v)
		})
	}
}

func TestDirWritesOneFilePerKey(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)

	require.NoError(t, d.Save(KeyCategories, `["Health"]`))

	data, err := os.ReadFile(filepath.Join(root, "categories.json"))
	require.NoError(t, err)
	assert.Equal(t, `["Health"]`, string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".categories-", "temp file left behind")
	}
}

func TestDirRejectsPathKeys(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, d.Save("../escape", "x"))
	_, _, err = d.Load("a/b")
	assert.Error(t, err)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaoscard.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(KeyTasks, `[1]`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Load(KeyTasks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, v)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}
