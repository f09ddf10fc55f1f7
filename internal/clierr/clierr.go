// Package clierr defines structured error types shared by the tracker core
// and its front-ends. Errors carry a machine-readable code, a human-readable
// message, and optional details for scripted consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants. Stable across minor versions.
const (
	TaskNotFound       = "TASK_NOT_FOUND"
	StoreNotFound      = "STORE_NOT_FOUND"
	StoreAlreadyExists = "STORE_ALREADY_EXISTS"
	InvalidInput       = "INVALID_INPUT"
	InvalidName        = "INVALID_NAME"
	InvalidDuration    = "INVALID_DURATION"
	InvalidKind        = "INVALID_KIND"
	InvalidPriority    = "INVALID_PRIORITY"
	InvalidEnergy      = "INVALID_ENERGY"
	InvalidTab         = "INVALID_TAB"
	InvalidTaskID      = "INVALID_TASK_ID"
	NoChanges          = "NO_CHANGES"
	NoEligibleTasks    = "NO_ELIGIBLE_TASKS"
	RedrawExhausted    = "REDRAW_EXHAUSTED"
	NoActiveDraw       = "NO_ACTIVE_DRAW"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	InternalError      = "INTERNAL_ERROR"
)

// Error represents a structured error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// IsValidation reports whether the error belongs to the validation family:
// the operation was rejected before any state changed.
func (e *Error) IsValidation() bool {
	switch e.Code {
	case InvalidInput, InvalidName, InvalidDuration, InvalidKind,
		InvalidPriority, InvalidEnergy, InvalidTab, InvalidTaskID:
		return true
	}
	return false
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
