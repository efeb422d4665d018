// Package constants provides centralized constant values used throughout buildwatch.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// InitialLabel is the label carried by an attempt before a labeller assigned one.
// An attempt with this label is the first attempt of a project.
const InitialLabel = "UNKNOWN"

// Directory names and paths used by buildwatch for organizing data.
const (
	// BuildwatchHome is the hidden directory name where buildwatch stores all its data.
	// This directory is created in the user's home directory.
	BuildwatchHome = ".buildwatch"

	// HistoryDir is the directory name where per-project history records are stored.
	HistoryDir = "history"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// HistoryFileName is the name of the JSON file that stores a project's last record.
	HistoryFileName = "last.json"

	// HistoryLockFileName guards concurrent writers of a project's history.
	HistoryLockFileName = "last.lock"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 5

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated log files.
	LogCompress = true
)

// Notification defaults.
const (
	// DefaultSMTPPort is the submission port used when none is configured.
	DefaultSMTPPort = 587

	// DefaultSMTPTimeout bounds a single SMTP dial-and-send.
	DefaultSMTPTimeout = 30 * time.Second

	// DefaultNotifyConcurrency bounds how many attempts are published in parallel.
	DefaultNotifyConcurrency = 4

	// DefaultRedisKeyPrefix namespaces history keys in redis.
	DefaultRedisKeyPrefix = "buildwatch:history:"
)

// HistorySchemaVersion is the current version of the history record JSON schema.
const HistorySchemaVersion = 1

// Transport names accepted by the transport configuration key.
const (
	// TransportSMTP delivers notifications over SMTP.
	TransportSMTP = "smtp"

	// TransportLog writes notifications to the log instead of delivering them.
	TransportLog = "log"
)

// History backend names.
const (
	HistoryBackendFile  = "file"
	HistoryBackendRedis = "redis"
)

// SMTP TLS policies.
const (
	TLSPolicyMandatory     = "mandatory"
	TLSPolicyOpportunistic = "opportunistic"
	TLSPolicyNone          = "none"
)

// DefaultLockTimeout bounds how long a history writer waits for the project lock.
const DefaultLockTimeout = 5 * time.Second
