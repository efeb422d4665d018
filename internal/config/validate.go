package config

import (
	"strings"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/errors"
)

const maxPort = 65535

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - notification.concurrency must be at least 1
//   - every group needs a name and a known policy; names are unique
//   - every user needs an address
//   - smtp.port must be a valid TCP port
//   - smtp.tls_policy must be mandatory, opportunistic or none
//   - history.backend must be file or redis; redis needs history.redis_addr
//   - transport must be smtp or log
//
// A user whose group is not configured is accepted: it is skipped when recipients
// are resolved. smtp.host is checked when the SMTP transport is built, so commands
// that never send work without it.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTransport(cfg.Transport); err != nil {
		return err
	}

	if err := validateNotificationConfig(&cfg.Notification); err != nil {
		return err
	}

	if err := validateSMTPConfig(&cfg.SMTP); err != nil {
		return err
	}

	return validateHistoryConfig(&cfg.History)
}

func validateTransport(transport string) error {
	switch transport {
	case constants.TransportSMTP, constants.TransportLog:
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidTransport,
			"transport must be %q or %q, got %q", constants.TransportSMTP, constants.TransportLog, transport)
	}
}

// validateNotificationConfig checks the recipient registry.
func validateNotificationConfig(cfg *NotificationConfig) error {
	if cfg.Concurrency < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidNotification,
			"notification.concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	seen := make(map[string]bool, len(cfg.Groups))
	for i, g := range cfg.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidNotification,
				"notification.groups[%d].name must not be empty", i)
		}
		if seen[g.Name] {
			return errors.Wrapf(errors.ErrConfigInvalidNotification,
				"notification.groups[%d]: duplicate group %q", i, g.Name)
		}
		seen[g.Name] = true
		if !g.Policy.Valid() {
			return errors.Wrapf(errors.ErrConfigInvalidNotification,
				"notification.groups[%d].policy must be always, change or failed, got %q", i, g.Policy)
		}
	}

	for i, u := range cfg.Users {
		if strings.TrimSpace(u.Address) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidNotification,
				"notification.users[%d] (%s) has no address", i, u.Name)
		}
	}

	return nil
}

// validateSMTPConfig checks SMTP settings.
func validateSMTPConfig(cfg *SMTPConfig) error {
	if cfg.Port < 1 || cfg.Port > maxPort {
		return errors.Wrapf(errors.ErrConfigInvalidSMTP,
			"smtp.port must be between 1 and %d, got %d", maxPort, cfg.Port)
	}

	switch cfg.TLSPolicy {
	case constants.TLSPolicyMandatory, constants.TLSPolicyOpportunistic, constants.TLSPolicyNone:
	default:
		return errors.Wrapf(errors.ErrConfigInvalidSMTP,
			"smtp.tls_policy must be mandatory, opportunistic or none, got %q", cfg.TLSPolicy)
	}

	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSMTP,
			"smtp.timeout must be positive, got %s", cfg.Timeout)
	}

	return nil
}

// validateHistoryConfig checks history store settings.
func validateHistoryConfig(cfg *HistoryConfig) error {
	switch cfg.Backend {
	case constants.HistoryBackendFile:
		return nil
	case constants.HistoryBackendRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return errors.Wrap(errors.ErrConfigInvalidHistory,
				"history.redis_addr must not be empty for the redis backend")
		}
		if cfg.RedisDB < 0 {
			return errors.Wrapf(errors.ErrConfigInvalidHistory,
				"history.redis_db cannot be negative, got %d", cfg.RedisDB)
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidHistory,
			"history.backend must be file or redis, got %q", cfg.Backend)
	}
}
