package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrTransportFailed,
		info: ErrorInfo{
			Message: "The notification could not be delivered.",
			Action:  "Check the smtp section of your config and the mail server logs, then rerun 'buildwatch notify'.",
		},
	},
	{
		err: ErrConfigInvalidNotification,
		info: ErrorInfo{
			Message: "The notification configuration is invalid.",
			Action:  "Run 'buildwatch config show' and fix the users and groups sections.",
		},
	},
	{
		err: ErrConfigInvalidSMTP,
		info: ErrorInfo{
			Message: "The SMTP configuration is invalid.",
			Action:  "Set smtp.host and a port between 1 and 65535.",
		},
	},
	{
		err: ErrConfigInvalidHistory,
		info: ErrorInfo{
			Message: "The history store configuration is invalid.",
			Action:  "Set history.backend to 'file' or 'redis'.",
		},
	},
	{
		err: ErrManifestInvalid,
		info: ErrorInfo{
			Message: "The attempt manifest could not be read.",
			Action:  "Check that the manifest is valid YAML and names a project.",
		},
	},
	{
		err: ErrHistoryCorrupted,
		info: ErrorInfo{
			Message: "A stored history record is corrupted.",
			Action:  "Remove the project's history record; the next attempt is treated as the first one.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another buildwatch process is writing the same project history.",
			Action:  "Wait for it to finish and retry.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "Confirmation is required but no terminal is attached.",
			Action:  "Pass --yes to send without confirmation.",
		},
	},
}

// UserMessage returns a user-friendly message for err.
// Unknown errors fall back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing obvious to do.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}

func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}
