// Package errors provides error types and utilities for devenv.
// It extends the standard errors package with sentinel errors for the
// failure classes the installer distinguishes and with wrapping helpers.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates a command exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrNotFound indicates an unknown tool or package manager was requested
	ErrNotFound = errors.New("not found")

	// ErrUnsupported indicates the environment has no strategy for the request
	ErrUnsupported = errors.New("environment unsupported")

	// ErrCommandFailed indicates a shell command returned non-zero
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a configuration or catalog file could not be used
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CommandError describes a shell command that failed. It matches
// ErrCommandFailed, and ErrTimeout as well when the command timed out.
type CommandError struct {
	Command  string
	Reason   string
	Stderr   string
	TimedOut bool
}

// NewCommandError builds a CommandError. stderr is trimmed.
func NewCommandError(command, reason, stderr string, timedOut bool) *CommandError {
	return &CommandError{
		Command:  command,
		Reason:   reason,
		Stderr:   strings.TrimSpace(stderr),
		TimedOut: timedOut,
	}
}

func (e *CommandError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Command, ErrCommandFailed)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// Is lets errors.Is match the failure classes without wrapping twice.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed || (e.TimedOut && target == ErrTimeout)
}

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	if err := loadCatalog(path); err != nil {
//	    return errors.Wrap(err, "load catalog")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsUnsupported reports whether the error is an unsupported environment error
func IsUnsupported(err error) bool {
	return Is(err, ErrUnsupported)
}

// IsCommandFailed reports whether the error is a command failure
func IsCommandFailed(err error) bool {
	return Is(err, ErrCommandFailed)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsInvalidConfig reports whether the error is a configuration error
func IsInvalidConfig(err error) bool {
	return Is(err, ErrInvalidConfig)
}

// Kind names the failure class of err for logs and machine-readable output.
// Timeouts win over command failures; nil has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTimeout(err):
		return "timeout"
	case IsInvalidInput(err):
		return "invalid_input"
	case IsInvalidConfig(err):
		return "invalid_config"
	case IsNotFound(err):
		return "not_found"
	case IsUnsupported(err):
		return "unsupported"
	case IsCommandFailed(err):
		return "command_failed"
	default:
		return "internal"
	}
}
