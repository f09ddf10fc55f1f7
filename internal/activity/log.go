// Package activity keeps an append-only JSONL log of tracker mutations and
// draw sessions in the data directory.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // oldest entries are dropped past this size
)

// Entry is a single activity log line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int64     `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Session   string    `json:"session,omitempty"`
}

// Log appends entries to <dir>/activity.jsonl. A nil *Log discards everything.
type Log struct {
	dir string
	now func() time.Time
}

// New returns a Log writing into dir.
func New(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return filepath.Join(l.dir, logFileName)
}

// Record appends a mutation entry. Errors are discarded: logging never fails
// the operation that triggered it.
func (l *Log) Record(action string, taskID int64, detail string) {
	l.RecordSession("", action, taskID, detail)
}

// RecordSession appends an entry tagged with a draw session ID.
func (l *Log) RecordSession(session, action string, taskID int64, detail string) {
	if l == nil {
		return
	}
	_ = l.Append(Entry{
		Timestamp: l.now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
		Session:   session,
	})
}

// Append writes one entry and trims the file if it grew past maxLogEntries.
func (l *Log) Append(entry Entry) error {
	path := l.Path()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // path inside data dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	_ = truncateIfNeeded(path)
	return nil
}

// Tail returns up to limit of the most recent entries, oldest first.
// Lines that fail to parse are skipped. A missing log yields no entries.
func (l *Log) Tail(limit int) ([]Entry, error) {
	lines, err := readLines(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path inside data dir
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// truncateIfNeeded rewrites the log keeping only the newest maxLogEntries lines.
func truncateIfNeeded(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= maxLogEntries {
		return nil
	}
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}
