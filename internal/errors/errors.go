// Package errors provides centralized error handling for buildwatch.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidNotification indicates an invalid notification configuration value
	// (unknown group policy, user without address, duplicate names).
	ErrConfigInvalidNotification = errors.New("invalid notification configuration")

	// ErrConfigInvalidSMTP indicates an invalid SMTP configuration value.
	ErrConfigInvalidSMTP = errors.New("invalid SMTP configuration")

	// ErrConfigInvalidHistory indicates an invalid history store configuration value.
	ErrConfigInvalidHistory = errors.New("invalid history configuration")

	// ErrConfigInvalidTransport indicates an unknown transport was configured.
	ErrConfigInvalidTransport = errors.New("invalid transport configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrPathTraversal indicates an attempt to use path traversal in a name.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrHistoryNotFound indicates no history record exists for a project.
	ErrHistoryNotFound = errors.New("history not found")

	// ErrHistoryCorrupted indicates a stored history record could not be decoded.
	ErrHistoryCorrupted = errors.New("history record corrupted")

	// ErrManifestInvalid indicates an attempt manifest could not be parsed or is incomplete.
	ErrManifestInvalid = errors.New("invalid attempt manifest")

	// ErrTransportFailed indicates the transport collaborator failed to deliver a message.
	// No retry is performed.
	ErrTransportFailed = errors.New("notification transport failed")

	// ErrRenderFailed indicates the message builder failed to render a body.
	// The publisher recovers from it by sending the error text as the body.
	ErrRenderFailed = errors.New("message rendering failed")

	// ErrNilSnapshot indicates a nil attempt snapshot was handed to the publisher.
	ErrNilSnapshot = errors.New("attempt snapshot is nil")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the --yes flag.
	ErrNonInteractiveMode = errors.New("use --yes in non-interactive mode")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
