package clierr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, New(InternalError, "boom").ExitCode())
	assert.Equal(t, 1, New(TaskNotFound, "missing").ExitCode())
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("editing: %w", Newf(TaskNotFound, "task #%d not found", 7))

	assert.True(t, HasCode(err, TaskNotFound))
	assert.False(t, HasCode(err, InvalidName))
	assert.False(t, HasCode(fmt.Errorf("plain"), TaskNotFound))
	assert.Equal(t, "editing: task #7 not found", err.Error())
}

func TestIsValidation(t *testing.T) {
	assert.True(t, New(InvalidDuration, "").IsValidation())
	assert.True(t, New(InvalidTaskID, "").IsValidation())
	assert.False(t, New(RedrawExhausted, "").IsValidation())
	assert.False(t, New(InternalError, "").IsValidation())
}

func TestWithDetails(t *testing.T) {
	err := New(StoreNotFound, "no store").WithDetails(map[string]any{"dir": "/tmp/x"})
	assert.Equal(t, "/tmp/x", err.Details["dir"])
	assert.Equal(t, "exit 1", (&SilentError{Code: 1}).Error())
}
