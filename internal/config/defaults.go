package config

import (
	"github.com/mrz1836/buildwatch/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Notification: NotificationConfig{
			IncludeDetails: false,
			Concurrency:    constants.DefaultNotifyConcurrency,
		},
		SMTP: SMTPConfig{
			Port:      constants.DefaultSMTPPort,
			TLSPolicy: constants.TLSPolicyMandatory,
			Timeout:   constants.DefaultSMTPTimeout,
		},
		History: HistoryConfig{
			// Dir: empty means ~/.buildwatch/history.
			Backend:   constants.HistoryBackendFile,
			KeyPrefix: constants.DefaultRedisKeyPrefix,
		},
		Transport: constants.TransportSMTP,
	}
}
