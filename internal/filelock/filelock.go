// Package filelock provides advisory file locking so that several chaoscard
// processes (say a TUI and a CLI command) never interleave writes to the
// same data directory.
package filelock

import "os"

const lockFileMode = 0o600

// Lock is a held advisory lock. Release it with Unlock.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on the file at path, creating it
// if it does not exist. Other callers block until the lock is released.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file lives in the data dir
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

// With runs fn while holding the lock at path.
func With(path string, fn func() error) error {
	l, err := Acquire(path)
	if err != nil {
		return err
	}
	fnErr := fn()
	if err := l.Unlock(); err != nil && fnErr == nil {
		return err
	}
	return fnErr
}

// Unlock releases the lock and closes the lock file.
func (l *Lock) Unlock() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
