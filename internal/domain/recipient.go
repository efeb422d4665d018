package domain

import "github.com/mrz1836/buildwatch/internal/constants"

// RecipientUser is a configured notification recipient.
// Users are attached to exactly one group through Group.
type RecipientUser struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Group   string `json:"group" yaml:"group" mapstructure:"group"`
	Address string `json:"address" yaml:"address" mapstructure:"address"`
}

// RecipientGroup is a named notification policy bucket.
type RecipientGroup struct {
	Name   string                       `json:"name" yaml:"name" mapstructure:"name"`
	Policy constants.NotificationPolicy `json:"policy" yaml:"policy" mapstructure:"policy"`
}
