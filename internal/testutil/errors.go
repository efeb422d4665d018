// Package testutil provides testing utilities for buildwatch.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockConnectionRefused simulates an SMTP or redis server that is down.
	ErrMockConnectionRefused = errors.New("connection refused")

	// ErrMockMailboxFull simulates a server rejecting one recipient's message.
	ErrMockMailboxFull = errors.New("mailbox full")

	// ErrMockRender simulates a message builder failure.
	ErrMockRender = errors.New("oops")

	// ErrMockFault simulates an unexpected error captured while an attempt ran.
	ErrMockFault = errors.New("boom")
)
