package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
	"github.com/mrz1836/buildwatch/internal/flock"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// FileStore implements Store using one directory per project under dir.
type FileStore struct {
	dir string // Usually ~/.buildwatch/history
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Last reads the project's record under its lock.
func (s *FileStore) Last(ctx context.Context, project string) (*domain.IntegrationRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := ValidateProject(project); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if _, err := os.Stat(s.projectDir(project)); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read history for '%s': %w", project, bwerrors.ErrHistoryNotFound)
	}

	lock, err := flock.Acquire(ctx, s.lockPath(project), constants.DefaultLockTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to read history for '%s': %w", project, err)
	}
	defer func() { _ = lock.Release() }()

	data, err := os.ReadFile(s.recordPath(project)) //#nosec G304 -- project name is validated
	if err != nil {
		if os.IsNotExist(err) {
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

// Save writes the record atomically under the project's lock.
func (s *FileStore) Save(ctx context.Context, record *domain.IntegrationRecord) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if record == nil {
		return fmt.Errorf("failed to save history: record %w", bwerrors.ErrEmptyValue)
	}
	if err := ValidateProject(record.Project); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	if err := os.MkdirAll(s.projectDir(record.Project), dirPerm); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	lock, err := flock.Acquire(ctx, s.lockPath(record.Project), constants.DefaultLockTimeout)
	if err != nil {
		return fmt.Errorf("failed to save history for '%s': %w", record.Project, err)
	}
	defer func() { _ = lock.Release() }()

	record.SchemaVersion = constants.HistorySchemaVersion

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to save history for '%s': %w", record.Project, err)
	}

	if err := atomicWrite(s.recordPath(record.Project), data); err != nil {
		return fmt.Errorf("failed to save history for '%s': %w", record.Project, err)
	}
	return nil
}

func (s *FileStore) projectDir(project string) string {
	return filepath.Join(s.dir, project)
}

func (s *FileStore) recordPath(project string) string {
	return filepath.Join(s.projectDir(project), constants.HistoryFileName)
}

func (s *FileStore) lockPath(project string) string {
	return filepath.Join(s.projectDir(project), constants.HistoryLockFileName)
}

// atomicWrite writes data to a temp file then renames it over path.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
