// Package kv is the flat key-value storage the tracker persists into.
// The tracker only ever calls Load and Save; backends decide where the
// bytes live.
package kv

import (
	"fmt"
	"io"
)

// Keys written by the tracker.
const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
	KeyLastReset  = "lastReset"
)

// Backend names accepted by Open.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every backend name in display order.
var Backends = []string{BackendDir, BackendSQLite, BackendMemory}

// Store loads and saves string values by key. Load reports ok=false for a
// key that was never saved.
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// Backend is a Store that owns resources.
type Backend interface {
	Store
	io.Closer
}

// Open opens the named backend at path. For the directory backend path is
// the data directory; for SQLite it is the database file.
func Open(backend, path string) (Backend, error) {
	switch backend {
	case BackendDir, "":
		return NewDir(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
