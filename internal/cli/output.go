package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the launcher. Any other code is chosen by the harness.
const (
	ExitSuccess          = 0  // Entry point returned 0
	ExitUsage            = 1  // Bad command line, unreadable or failing require file, registration failure
	ExitRuntimeException = -1 // Entry point raised
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from the launcher.
type ExitError struct {
	Code    int    // Exit code (ExitUsage or ExitRuntimeException)
	Message string // Error message (optional when Err is set)
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitUsage (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// UsageError reports a malformed command line. Token is the offending
// argument when one can be named.
type UsageError struct {
	Token string
	Err   error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
