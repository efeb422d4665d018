// Package integration implements the result aggregator: the mutable state of a
// single integration attempt and the derived queries used by notification and
// reporting.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, internal/clock, std lib
//   - MUST NOT import: internal/notify, internal/history, internal/cli
package integration

import "github.com/mrz1836/buildwatch/internal/constants"

// The status of an attempt only ever moves forward:
//
//	Unknown → Success, Failure, Exception
//	Success → Failure, Exception
//	Failure → Exception
//	Exception → (terminal)
//
// Step results can only move Unknown or Success; a captured fault moves any
// status to Exception.

// stepLockedStatuses are statuses that further step results cannot change.
//
//nolint:gochecknoglobals // Read-only lookup table
var stepLockedStatuses = map[constants.IntegrationStatus]bool{
	constants.StatusFailure:   true,
	constants.StatusException: true,
}

// IsTerminalStatus reports whether no transition leaves status within one attempt.
func IsTerminalStatus(status constants.IntegrationStatus) bool {
	return status == constants.StatusException
}

// IsBrokenStatus reports whether status represents a failed or excepted attempt.
func IsBrokenStatus(status constants.IntegrationStatus) bool {
	return stepLockedStatuses[status]
}

// statusAfterStep returns the status that results from recording a step
// outcome on top of current.
func statusAfterStep(current constants.IntegrationStatus, stepSucceeded bool) constants.IntegrationStatus {
	if stepLockedStatuses[current] {
		return current
	}
	if stepSucceeded {
		return constants.StatusSuccess
	}
	return constants.StatusFailure
}
