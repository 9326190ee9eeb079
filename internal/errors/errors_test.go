package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailErrorRendering(t *testing.T) {
	err := NewValidationError("primary segment body is required", "tasks/tasks.go", "primary", "supply a body")

	msg := err.Error()
	assert.Contains(t, msg, "Error: validation failed")
	assert.Contains(t, msg, "Location: tasks/tasks.go")
	assert.Contains(t, msg, "Field: primary")
	assert.Contains(t, msg, "primary segment body is required")
	assert.Contains(t, msg, "Hint: supply a body")
}

func TestSentinelWiring(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("m", "", "", ""), ErrValidation)
	assert.ErrorIs(t, NewNotFoundError("m", "", ""), ErrNotFound)
	assert.ErrorIs(t, NewDuplicateError("m", "", ""), ErrDuplicate)
	assert.ErrorIs(t, Wrap(ErrTimeout, "deadline"), ErrTimeout)
	assert.ErrorIs(t, Wrap(ErrExecution, "exit 2"), ErrExecution)

	assert.True(t, IsNotFound(NewNotFoundError("m", "", "")))
	assert.False(t, IsNotFound(NewDuplicateError("m", "", "")))
	assert.True(t, IsDuplicate(NewDuplicateError("m", "", "")))
}

func TestExitError(t *testing.T) {
	inner := NewNotFoundError("task missing", "", "")
	err := NewExitError(inner, 5)

	assert.Equal(t, inner.Error(), err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, err.Printed)
}
