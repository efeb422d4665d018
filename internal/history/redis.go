package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
)

// RedisStore implements Store with one JSON value per project.
// Writes are single SET commands so no extra locking is needed.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a RedisStore. An empty prefix falls back to
// DefaultRedisKeyPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Key returns the redis key holding project's record.
func (s *RedisStore) Key(project string) string {
	return s.prefix + project
}

// Last fetches and decodes the project's record.
func (s *RedisStore) Last(ctx context.Context, project string) (*domain.IntegrationRecord, error) {
	if err := ValidateProject(project); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	data, err := s.client.Get(ctx, s.Key(project)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to read history for '%s': %w", project, bwerrors.ErrHistoryNotFound)
		}
		return nil, fmt.Errorf("failed to read history for '%s': %w", project, err)
	}

	var record domain.IntegrationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse history for '%s': %w: %w", project, bwerrors.ErrHistoryCorrupted, err)
	}
	return &record, nil
}

// Save stores the record without expiry.
func (s *RedisStore) Save(ctx context.Context, record *domain.IntegrationRecord) error {
	if record == nil {
		return fmt.Errorf("failed to save history: record %w", bwerrors.ErrEmptyValue)
	}
	if err := ValidateProject(record.Project); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	record.SchemaVersion = constants.HistorySchemaVersion

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to save history for '%s': %w", record.Project, err)
	}

	if err := s.client.Set(ctx, s.Key(record.Project), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save history for '%s': %w", record.Project, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
