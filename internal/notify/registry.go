// Package notify implements the notification engine: it decides which
// recipients hear about a completed attempt, renders the message, and hands
// it to a transport at most once.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/config, internal/integration, internal/ctxutil, std lib
//   - MUST NOT import: internal/history, internal/cli, internal/tui
package notify

import (
	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/domain"
)

// Registry holds the static recipient configuration: users in the order they
// were configured and groups keyed by name. It is immutable after construction
// and safe for concurrent reads.
type Registry struct {
	users  []domain.RecipientUser
	groups map[string]domain.RecipientGroup
}

// NewRegistry builds a registry. A later group with the same name replaces an
// earlier one.
func NewRegistry(users []domain.RecipientUser, groups []domain.RecipientGroup) *Registry {
	r := &Registry{
		users:  append([]domain.RecipientUser(nil), users...),
		groups: make(map[string]domain.RecipientGroup, len(groups)),
	}
	for _, g := range groups {
		r.groups[g.Name] = g
	}
	return r
}

// NewRegistryFromConfig builds a registry from the notification configuration.
func NewRegistryFromConfig(cfg *config.NotificationConfig) *Registry {
	if cfg == nil {
		return NewRegistry(nil, nil)
	}

	users := make([]domain.RecipientUser, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		users = append(users, domain.RecipientUser{Name: u.Name, Group: u.Group, Address: u.Address})
	}
	groups := make([]domain.RecipientGroup, 0, len(cfg.Groups))
	for _, g := range cfg.Groups {
		groups = append(groups, domain.RecipientGroup{Name: g.Name, Policy: g.Policy})
	}
	return NewRegistry(users, groups)
}

// Users returns the users in configuration order.
func (r *Registry) Users() []domain.RecipientUser {
	if r == nil {
		return nil
	}
	return append([]domain.RecipientUser(nil), r.users...)
}

// Group looks up a group by name.
func (r *Registry) Group(name string) (domain.RecipientGroup, bool) {
	if r == nil {
		return domain.RecipientGroup{}, false
	}
	g, ok := r.groups[name]
	return g, ok
}
