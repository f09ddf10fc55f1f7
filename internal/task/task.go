// Package task defines the tracked task, its enums, and input validation.
package task

import (
	"strings"
	"time"
)

// Kind distinguishes one-off tasks from recurring (daily) ones.
type Kind string

// Kinds. The string values are the persisted "type" values.
const (
	OneOff    Kind = "once"
	Recurring Kind = "regular"
)

// Level is a low/medium/high scale shared by priority and energy.
type Level string

// Levels, lowest first.
const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Levels lists every level in ascending order.
var Levels = []Level{Low, Medium, High}

// Uncategorized is the category assigned when none is given.
const Uncategorized = "Uncategorized"

// Task is one entry in the tracker.
type Task struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Kind           Kind      `json:"type"`
	Duration       int       `json:"duration"`
	Priority       Level     `json:"priority"`
	Energy         Level     `json:"energy"`
	Category       string    `json:"category"`
	Completed      bool      `json:"completed"`
	CompletedToday bool      `json:"completedToday"`
	Stalled        bool      `json:"stalled"`
	StallReason    string    `json:"stallReason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ParseKind accepts the canonical values plus a few friendly aliases.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once", "oneoff", "one-off":
		return OneOff, true
	case "regular", "recurring", "daily":
		return Recurring, true
	}
	return "", false
}

// ParseLevel parses low/medium/high (case-insensitive).
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Levels {
		if v == l {
			return l, true
		}
	}
	return "", false
}

// String returns a human label for the kind.
func (k Kind) String() string {
	if k == Recurring {
		return "recurring"
	}
	return "one-off"
}

// NormalizeCategory trims c and substitutes Uncategorized for blanks.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return Uncategorized
	}
	return c
}
