package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/xiaofuou6/chaos-card-machine/internal/filelock"
)

const (
	fileMode     = 0o600
	dirMode      = 0o750
	lockFileName = ".lock"
	fileExt      = ".json"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Dir stores each key as <key>.json inside a directory. Writes go through a
// temp file and rename under an advisory lock, so a reader in another process
// never sees a half-written value.
type Dir struct {
	path string
}

// NewDir returns a Dir rooted at path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory the store writes into.
func (d *Dir) Path() string { return d.path }

// FileFor returns the file that holds key.
func (d *Dir) FileFor(key string) string {
	return filepath.Join(d.path, key+fileExt)
}

// Load implements Store.
func (d *Dir) Load(key string) (string, bool, error) {
	if !validKey.MatchString(key) {
		return "", false, fmt.Errorf("invalid key %q", key)
	}
	data, err := os.ReadFile(d.FileFor(key)) //nolint:gosec // key validated above
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Save implements Store.
func (d *Dir) Save(key, value string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return filelock.With(filepath.Join(d.path, lockFileName), func() error {
		tmp, err := os.CreateTemp(d.path, "."+key+"-*")
		if err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
		tmpName := tmp.Name()
		if _, err := tmp.WriteString(value); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return fmt.Errorf("writing %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("writing %s: %w", key, err)
		}
		if err := os.Chmod(tmpName, fileMode); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("writing %s: %w", key, err)
		}
		if err := os.Rename(tmpName, d.FileFor(key)); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("writing %s: %w", key, err)
		}
		return nil
	})
}

// Close implements io.Closer.
func (d *Dir) Close() error { return nil }
