// Package history persists the outcome of each project's last attempt so the
// next attempt can be compared against it.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/config, internal/flock, internal/ctxutil, std lib
//   - MUST NOT import: internal/integration, internal/notify, internal/cli
package history

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/redis/go-redis/v9"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
)

// Store defines the interface for history persistence.
type Store interface {
	// Last returns the record of the project's most recent attempt.
	// Returns ErrHistoryNotFound when the project has no history.
	Last(ctx context.Context, project string) (*domain.IntegrationRecord, error)

	// Save replaces the project's record.
	Save(ctx context.Context, record *domain.IntegrationRecord) error
}

// validProjectName restricts project names to characters that are safe in
// file names and redis keys.
//
//nolint:gochecknoglobals // compiled once
var validProjectName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateProject checks that project can be used as a history key.
func ValidateProject(project string) error {
	if project == "" {
		return fmt.Errorf("project name %w", bwerrors.ErrEmptyValue)
	}
	if !validProjectName.MatchString(project) || project == "." || project == ".." {
		return fmt.Errorf("project name %q: %w", project, bwerrors.ErrPathTraversal)
	}
	return nil
}

// Previous returns the previous status and last successful label for
// project, defaulting to unknown and an empty label when there is no history.
func Previous(ctx context.Context, store Store, project string) (domain.IntegrationSummary, error) {
	none := domain.IntegrationSummary{Status: constants.StatusUnknown}

	record, err := store.Last(ctx, project)
	if err != nil {
		if errors.Is(err, bwerrors.ErrHistoryNotFound) {
			return none, nil
		}
		return none, err
	}
	if !record.Status.Valid() {
		return none, fmt.Errorf("project %q has status %q: %w", project, record.Status, bwerrors.ErrHistoryCorrupted)
	}
	return domain.IntegrationSummary{Status: record.Status, Label: record.LastSuccessfulLabel}, nil
}

// New builds the store selected by cfg.
func New(cfg *config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case constants.HistoryBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return NewRedisStore(client, cfg.KeyPrefix), nil
	case constants.HistoryBackendFile, "":
		dir, err := config.HistoryDir(cfg)
		if err != nil {
			return nil, err
		}
		return NewFileStore(dir), nil
	default:
		return nil, bwerrors.Wrapf(bwerrors.ErrConfigInvalidHistory, "unknown history backend %q", cfg.Backend)
	}
}
