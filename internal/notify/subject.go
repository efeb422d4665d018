package notify

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/integration"
)

// outcomeWord names the attempt's outcome in lower case.
func outcomeWord(snap integration.Snapshot) string {
	switch {
	case snap.Fixed():
		return "fixed"
	case snap.Succeeded():
		return "successful"
	case snap.Status() == constants.StatusException:
		return "exception"
	case snap.Failed():
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome returns the title-cased outcome of snap: Fixed, Successful, Failed,
// Exception or Unknown.
func Outcome(snap integration.Snapshot) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(outcomeWord(snap))
}

// Subject returns the message subject for snap, for example
// "alpha Build Failed: build-42".
func Subject(snap integration.Snapshot) string {
	return fmt.Sprintf("%s Build %s: %s", snap.ProjectName(), Outcome(snap), snap.Label())
}
