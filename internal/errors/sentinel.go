package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an identifier, segment, or task-spec validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a module, task, or segment was not found.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a task identifier collision on create or rename.
	ErrDuplicate = errors.New("already exists")

	// ErrExecution indicates a flow script exited with a non-zero code.
	ErrExecution = errors.New("execution failed")

	// ErrTimeout indicates a flow script exceeded the execution deadline.
	ErrTimeout = errors.New("execution timed out")
)
