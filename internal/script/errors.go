package script

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// ErrClosed is returned by operations on a Runtime after Close.
var ErrClosed = errors.New("script runtime is closed")

// Exception is an error raised inside the runtime.
type Exception struct {
	// Message is the engine's one-line diagnostic.
	Message string
	// Stack is the engine's stack trace, when one is available.
	Stack string
	// Err is the underlying engine error (optional).
	Err error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// Diagnostic returns the text shown to the user: the stack trace when the
// engine produced one, otherwise the message.
func (e *Exception) Diagnostic() string {
	if e.Stack != "" {
		return e.Stack
	}
	return e.Message
}

// IsException returns true if err is or wraps an *Exception.
func IsException(err error) bool {
	var ex *Exception
	return errors.As(err, &ex)
}

// nameError mirrors what scripts see for an unresolvable constant.
func nameError(path string) *Exception {
	return &Exception{Message: fmt.Sprintf("NameError: uninitialized constant %s", path)}
}

// toException converts an engine error into an *Exception.
func toException(err error) error {
	if err == nil {
		return nil
	}
	var jsErr *goja.Exception
	if errors.As(err, &jsErr) {
		return &Exception{Message: jsErr.Error(), Stack: jsErr.String(), Err: err}
	}
	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		return &Exception{Message: "SyntaxError: " + syntaxErr.Error(), Err: err}
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return &Exception{Message: interrupted.Error(), Stack: interrupted.String(), Err: err}
	}
	return &Exception{Message: err.Error(), Err: err}
}
