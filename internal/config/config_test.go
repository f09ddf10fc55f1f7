package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	cfg, err := Init(dir, "mine", "")
	require.NoError(t, err)
	assert.Equal(t, kv.BackendDir, cfg.Storage.Backend)
	assert.Equal(t, cfg.Dir(), cfg.StoragePath())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "mine", loaded.Name)
	assert.Equal(t, DefaultRedraws, loaded.Draw.Redraws)
	assert.Equal(t, DefaultDurations, loaded.Durations)

	_, err = Init(dir, "again", "")
	assert.True(t, clierr.HasCode(err, clierr.StoreAlreadyExists))
}

func TestInitSQLiteStoragePath(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Init(dir, "db", kv.BackendSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Dir(), DefaultDBFile), cfg.StoragePath())

	_, err = Init(t.TempDir(), "x", "postgres")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := `version: 1
name: old
storage:
  backend: dir
defaults:
  kind: once
  duration: "30"
  priority: medium
  energy: low
durations: [15, 30, 60]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, DefaultRedraws, cfg.Draw.Redraws)
	assert.Equal(t, DefaultTimeOptions, cfg.Draw.TimeOptions)
	assert.Equal(t, []int{15, 30, 60}, cfg.Durations)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 2")
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 9\nname: x\n"), 0o600))
	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"zero duration", func(c *Config) { c.Durations = []int{0, 15} }},
		{"duplicate duration", func(c *Config) { c.Durations = []int{15, 15} }},
		{"default duration not a preset", func(c *Config) { c.Defaults.Duration = "7" }},
		{"bad default kind", func(c *Config) { c.Defaults.Kind = "weekly" }},
		{"bad default energy", func(c *Config) { c.Defaults.Energy = "max" }},
		{"negative redraws", func(c *Config) { c.Draw.Redraws = -1 }},
		{"no time options", func(c *Config) { c.Draw.TimeOptions = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("x")
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := NewDefault("x")
	cfg.Draw.Redraws = 0
	cfg.Defaults.Duration = "custom"
	assert.NoError(t, cfg.Validate())
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDir)
	_, err := Init(dataDir, "x", "")
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, dataDir, found)

	found, err = FindDir(dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, found)
}

func TestDefaultInput(t *testing.T) {
	cfg := NewDefault("x")
	cfg.Defaults.Category = "Inbox"
	in := cfg.DefaultInput()
	in.Name = "task"

	f, err := in.Validate(cfg.Durations)
	require.NoError(t, err)
	assert.Equal(t, 15, f.Duration)
	assert.Equal(t, "Inbox", f.Category)
}

func TestWatchPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefault("w")
	cfg.SetDir(dir)
	assert.Equal(t, []string{dir}, cfg.WatchPaths())

	cfg.Storage.Backend = kv.BackendSQLite
	assert.Equal(t, []string{dir}, cfg.WatchPaths(), "default database lives in the data dir")

	elsewhere := t.TempDir()
	cfg.Storage.Path = filepath.Join(elsewhere, "tasks.db")
	assert.Equal(t, []string{dir, elsewhere}, cfg.WatchPaths())
}
