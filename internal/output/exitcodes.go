// Package output provides structured output and error handling for the wf CLI.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad args, missing or malformed input, bad pattern)
// 2 = System error (network, HTTP status, I/O error)
// 3 = Auth error (session rejected by WorkFlowy)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitAuthError   = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Hint    string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// WithHint attaches a follow-up suggestion shown under the error.
func (e *ExitError) WithHint(hint string) *ExitError {
	e.Hint = hint
	return e
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, unreadable input files, invalid patterns.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: transport failures, unexpected HTTP status, filesystem errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthError creates an error for a rejected session (exit code 3).
func NewAuthError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitAuthError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
