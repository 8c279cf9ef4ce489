package config

import (
	"errors"
	"fmt"
)

// ErrMissingDirectory is returned when no positional test directory was given.
var ErrMissingDirectory = errors.New("missing directory: need a directory to run tests against")

// TooManyValuesError reports a repeatable flag given more than Max values.
type TooManyValuesError struct {
	Flag Flag
	Max  int
}

func (e *TooManyValuesError) Error() string {
	return fmt.Sprintf("too many values for --%s: only %d are supported", e.Flag, e.Max)
}

// SchemaError reports an options document that violates options.cue.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// IsUsageError reports whether err came from invalid command-line input.
// Uses errors.As to handle wrapped errors.
func IsUsageError(err error) bool {
	if errors.Is(err, ErrMissingDirectory) {
		return true
	}
	var tooMany *TooManyValuesError
	if errors.As(err, &tooMany) {
		return true
	}
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}
