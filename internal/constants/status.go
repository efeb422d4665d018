package constants

// IntegrationStatus represents the outcome of a single integration attempt.
// Status values use snake_case for JSON serialization compatibility.
type IntegrationStatus string

// Integration status constants define the states an attempt can be in.
// These follow the state machine of the result aggregator:
//
//	Unknown → Success, Failure, Exception
//	Success → Failure, Exception
//	Failure → Exception
//	Exception is terminal for the attempt
const (
	// StatusUnknown is the initial status before any step result is recorded.
	StatusUnknown IntegrationStatus = "unknown"

	// StatusSuccess indicates every recorded step succeeded.
	StatusSuccess IntegrationStatus = "success"

	// StatusFailure indicates at least one recorded step failed.
	StatusFailure IntegrationStatus = "failure"

	// StatusException indicates a fault was captured while running the attempt.
	StatusException IntegrationStatus = "exception"
)

// String returns the string representation of the IntegrationStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s IntegrationStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known integration statuses.
func (s IntegrationStatus) Valid() bool {
	switch s {
	case StatusUnknown, StatusSuccess, StatusFailure, StatusException:
		return true
	default:
		return false
	}
}

// BuildCondition describes why an integration attempt was started.
type BuildCondition string

// Build condition constants.
const (
	// BuildConditionNone means no build was requested; the attempt only runs on modifications.
	BuildConditionNone BuildCondition = "no_build"

	// BuildConditionForce means the build was forced regardless of modifications.
	BuildConditionForce BuildCondition = "force_build"

	// BuildConditionInterval means the build was started by an interval trigger.
	BuildConditionInterval BuildCondition = "interval_build"
)

// String returns the string representation of the BuildCondition.
func (c BuildCondition) String() string {
	return string(c)
}

// Valid reports whether c is one of the known build conditions.
func (c BuildCondition) Valid() bool {
	switch c {
	case BuildConditionNone, BuildConditionForce, BuildConditionInterval:
		return true
	default:
		return false
	}
}

// NotificationPolicy controls when members of a recipient group are notified.
type NotificationPolicy string

// Notification policy constants.
const (
	// PolicyAlways notifies group members after every attempt.
	PolicyAlways NotificationPolicy = "always"

	// PolicyChange notifies group members when the attempt recorded modifications.
	PolicyChange NotificationPolicy = "change"

	// PolicyFailed notifies group members when the attempt failed or raised a fault.
	PolicyFailed NotificationPolicy = "failed"
)

// String returns the string representation of the NotificationPolicy.
func (p NotificationPolicy) String() string {
	return string(p)
}

// Valid reports whether p is one of the known notification policies.
func (p NotificationPolicy) Valid() bool {
	switch p {
	case PolicyAlways, PolicyChange, PolicyFailed:
		return true
	default:
		return false
	}
}
