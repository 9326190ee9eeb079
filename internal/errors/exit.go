package errors

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed marks that the command layer already rendered the error,
	// so main must not print it a second time.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}
