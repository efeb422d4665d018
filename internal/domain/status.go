package domain

import "github.com/mrz1836/buildwatch/internal/constants"

// Re-export the status enums from constants so consumers can import domain
// types and status types together.
type (
	// IntegrationStatus represents the outcome of an integration attempt.
	IntegrationStatus = constants.IntegrationStatus

	// BuildCondition describes why an integration attempt was started.
	BuildCondition = constants.BuildCondition

	// NotificationPolicy controls when a recipient group is notified.
	NotificationPolicy = constants.NotificationPolicy
)

// Re-export IntegrationStatus constants for convenience.
const (
	StatusUnknown   = constants.StatusUnknown
	StatusSuccess   = constants.StatusSuccess
	StatusFailure   = constants.StatusFailure
	StatusException = constants.StatusException
)

// Re-export BuildCondition constants for convenience.
const (
	BuildConditionNone     = constants.BuildConditionNone
	BuildConditionForce    = constants.BuildConditionForce
	BuildConditionInterval = constants.BuildConditionInterval
)

// Re-export NotificationPolicy constants for convenience.
const (
	PolicyAlways = constants.PolicyAlways
	PolicyChange = constants.PolicyChange
	PolicyFailed = constants.PolicyFailed
)
