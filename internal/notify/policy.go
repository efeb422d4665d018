package notify

import (
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/integration"
)

// ShouldNotify reports whether a group with policy wants to hear about snap.
//
//   - always: every attempt
//   - change: attempts that carry modifications
//   - failed: attempts that failed or raised a fault
//
// An unknown policy never notifies.
func ShouldNotify(policy constants.NotificationPolicy, snap integration.Snapshot) bool {
	if snap == nil {
		return false
	}

	switch policy {
	case constants.PolicyAlways:
		return true
	case constants.PolicyChange:
		return snap.HasModifications()
	case constants.PolicyFailed:
		return integration.IsBrokenStatus(snap.Status())
	default:
		return false
	}
}
