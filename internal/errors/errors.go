package errors

import (
	"errors"
	"fmt"
)

// Exit codes for hoidev
const (
	ExitSuccess       = 0
	ExitPrecondition  = 11
	ExitArgument      = 12
	ExitConfiguration = 13
	ExitInput         = 14
	ExitRun           = 15
)

// HoiError is the base error type for hoidev
type HoiError struct {
	Code    int
	Message string
	Cause   error
}

func (e *HoiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HoiError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *HoiError) ExitCode() int {
	return e.Code
}

// New creates a new HoiError
func New(code int, message string) *HoiError {
	return &HoiError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HoiError
func Wrap(code int, message string, cause error) *HoiError {
	return &HoiError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// PreconditionError returns an error for a failed user or logic precondition
func PreconditionError(format string, args ...interface{}) *HoiError {
	return New(ExitPrecondition, fmt.Sprintf(format, args...))
}

// ArgumentError returns an error for a malformed or missing CLI invocation
func ArgumentError(format string, args ...interface{}) *HoiError {
	return New(ExitArgument, fmt.Sprintf(format, args...))
}

// ConfigError returns an error for a missing data-source root or similar
// environment problem
func ConfigError(format string, args ...interface{}) *HoiError {
	return New(ExitConfiguration, fmt.Sprintf(format, args...))
}

// InputError returns an error for a required source file or directory that
// does not exist
func InputError(format string, args ...interface{}) *HoiError {
	return New(ExitInput, fmt.Sprintf(format, args...))
}

// RunError returns an error for a failed external tool invocation
func RunError(op string, cause error) *HoiError {
	return Wrap(ExitRun, fmt.Sprintf("%s failed", op), cause)
}

// RunErrorf returns a RunError with a formatted message and no cause
func RunErrorf(format string, args ...interface{}) *HoiError {
	return New(ExitRun, fmt.Sprintf(format, args...))
}

// GetExitCode extracts the exit code from an error chain.
// nil maps to ExitSuccess; errors without a HoiError in their chain map to
// ExitPrecondition.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var he *HoiError
	if errors.As(err, &he) {
		return he.Code
	}

	return ExitPrecondition
}
