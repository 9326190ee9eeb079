// Package cmd provides CLI command implementations.
package cmd

import (
	goerrors "errors"

	"github.com/flowforge/cli/internal/errors"
)

// Exit codes of the flowforge CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates identifier or spec validation failed.
	ExitValidationError = 2

	// ExitExecutionError indicates a flow subprocess exited nonzero.
	ExitExecutionError = 3

	// ExitTimeout indicates a flow subprocess was killed on timeout.
	ExitTimeout = 4

	// ExitNotFound indicates a module, task, or segment was not found.
	ExitNotFound = 5

	// ExitDuplicate indicates an identifier collision.
	ExitDuplicate = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitExecutionError:
		return "Execution Error"
	case ExitTimeout:
		return "Timeout"
	case ExitNotFound:
		return "Not Found"
	case ExitDuplicate:
		return "Duplicate Identifier"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *errors.ExitError
	if goerrors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case goerrors.Is(err, errors.ErrValidation):
		return ExitValidationError
	case goerrors.Is(err, errors.ErrTimeout):
		return ExitTimeout
	case goerrors.Is(err, errors.ErrExecution):
		return ExitExecutionError
	case goerrors.Is(err, errors.ErrNotFound):
		return ExitNotFound
	case goerrors.Is(err, errors.ErrDuplicate):
		return ExitDuplicate
	default:
		return ExitGeneralError
	}
}
