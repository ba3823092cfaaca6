// Package errors carries process exit codes alongside errors so that the CLI can
// tell "could not run" apart from "ran and some checks failed".
package errors

import (
	"github.com/pkg/errors"
)

type ExitCodeError struct {
	code ExitCode
	error
}

// NewError attaches exitCode to err. A nil err stays nil.
func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

// NewErrorf is NewError with a formatted message.
func NewErrorf(exitCode ExitCode, format string, args ...interface{}) *ExitCodeError {
	return &ExitCodeError{exitCode, errors.Errorf(format, args...)}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// Cause lets errors.Cause unwrap through the exit code.
func (e *ExitCodeError) Cause() error {
	return e.error
}

// ExitCodeOf returns the exit code carried anywhere in err's cause chain,
// the fallback when there is none, or SuccessExitCode for a nil err.
func ExitCodeOf(err error, fallback ExitCode) ExitCode {
	if err == nil {
		return SuccessExitCode
	}
	for err != nil {
		if ece, ok := err.(*ExitCodeError); ok {
			return ece.code
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = c.Cause()
	}
	return fallback
}
