// Package config provides configuration management for buildwatch with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (BUILDWATCH_* prefix)
//  2. Project config (.buildwatch/config.yaml)
//  3. Global config (~/.buildwatch/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/buildwatch/internal/constants"
)

// Config is the root configuration structure for buildwatch.
type Config struct {
	// Notification contains the recipient registry and message settings.
	Notification NotificationConfig `yaml:"notification" mapstructure:"notification"`

	// SMTP contains settings for the SMTP transport.
	SMTP SMTPConfig `yaml:"smtp" mapstructure:"smtp"`

	// History contains settings for the history store.
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Transport selects how notifications are delivered: "smtp" or "log".
	// Default: "smtp"
	Transport string `yaml:"transport" mapstructure:"transport"`
}

// NotificationConfig contains settings for build notifications.
type NotificationConfig struct {
	// FromAddress is the sender address. It doubles as the fallback recipient
	// when a failed or excepted attempt resolves to nobody.
	FromAddress string `yaml:"from_address" mapstructure:"from_address"`

	// ReplyTo is an optional Reply-To address.
	ReplyTo string `yaml:"reply_to,omitempty" mapstructure:"reply_to"`

	// IncludeDetails adds per-step details and test summaries to messages.
	// Default: false
	IncludeDetails bool `yaml:"include_details" mapstructure:"include_details"`

	// Concurrency bounds how many attempts are published in parallel.
	// Default: 4, must be at least 1
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// Users are the configured recipients, in notification order.
	Users []UserConfig `yaml:"users" mapstructure:"users"`

	// Groups are the recipient groups and their notification policies.
	Groups []GroupConfig `yaml:"groups" mapstructure:"groups"`
}

// UserConfig is one configured recipient.
type UserConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Group   string `yaml:"group" mapstructure:"group"`
	Address string `yaml:"address" mapstructure:"address"`
}

// GroupConfig is one recipient group.
type GroupConfig struct {
	Name string `yaml:"name" mapstructure:"name"`

	// Policy is one of "always", "change" or "failed".
	Policy constants.NotificationPolicy `yaml:"policy" mapstructure:"policy"`
}

// SMTPConfig contains settings for the SMTP transport.
type SMTPConfig struct {
	// Host is the SMTP server host name. Required when transport is "smtp".
	Host string `yaml:"host" mapstructure:"host"`

	// Port is the SMTP server port.
	// Default: 587
	Port int `yaml:"port" mapstructure:"port"`

	// Username and Password enable PLAIN authentication when Username is set.
	// Prefer BUILDWATCH_SMTP_PASSWORD over storing the password in a file.
	Username string `yaml:"username,omitempty" mapstructure:"username"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`

	// TLSPolicy is "mandatory", "opportunistic" or "none".
	// Default: "mandatory"
	TLSPolicy string `yaml:"tls_policy" mapstructure:"tls_policy"`

	// Timeout bounds a single dial-and-send.
	// Default: 30 seconds
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HistoryConfig contains settings for the history store.
type HistoryConfig struct {
	// Backend is "file" or "redis".
	// Default: "file"
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Dir is the file backend directory. Empty means ~/.buildwatch/history.
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`

	// RedisAddr is the host:port of the redis server. Required for the redis backend.
	RedisAddr string `yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`

	// RedisDB selects the redis logical database.
	RedisDB int `yaml:"redis_db" mapstructure:"redis_db"`

	// KeyPrefix namespaces history keys in redis.
	// Default: "buildwatch:history:"
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// Redacted returns a copy of cfg with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.SMTP.Password != "" {
		out.SMTP.Password = redactedValue
	}
	out.Notification.Users = append([]UserConfig(nil), c.Notification.Users...)
	out.Notification.Groups = append([]GroupConfig(nil), c.Notification.Groups...)
	return &out
}

const redactedValue = "********"
