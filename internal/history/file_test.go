package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
)

func sampleRecord(project string, status constants.IntegrationStatus) *domain.IntegrationRecord {
	start := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	return &domain.IntegrationRecord{
		Project:             project,
		Status:              status,
		Label:               "build-42",
		LastSuccessfulLabel: "build-41",
		StartTime:           start,
		EndTime:             start.Add(4 * time.Minute),
	}
}

func TestFileStore_SaveAndLast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	record := sampleRecord("alpha", constants.StatusFailure)
	require.NoError(t, store.Save(ctx, record))
	assert.Equal(t, constants.HistorySchemaVersion, record.SchemaVersion)
	assert.FileExists(t, filepath.Join(store.Dir(), "alpha", constants.HistoryFileName))
	assert.NoFileExists(t, filepath.Join(store.Dir(), "alpha", constants.HistoryFileName+".tmp"))

	got, err := store.Last(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Project)
	assert.Equal(t, constants.StatusFailure, got.Status)
	assert.Equal(t, "build-41", got.LastSuccessfulLabel)
	assert.True(t, record.StartTime.Equal(got.StartTime))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save(ctx, sampleRecord("alpha", constants.StatusFailure)))
	second := sampleRecord("alpha", constants.StatusSuccess)
	second.Label = "build-43"
	second.LastSuccessfulLabel = "build-43"
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Last(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusSuccess, got.Status)
	assert.Equal(t, "build-43", got.Label)
}

func TestFileStore_LastNotFound(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	_, err := store.Last(context.Background(), "alpha")
	require.ErrorIs(t, err, bwerrors.ErrHistoryNotFound)
}

func TestFileStore_LastCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "alpha"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha", constants.HistoryFileName), []byte("{not json"), 0o600))

	_, err := NewFileStore(dir).Last(context.Background(), "alpha")
	require.ErrorIs(t, err, bwerrors.ErrHistoryCorrupted)
}

func TestFileStore_InvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.ErrorIs(t, store.Save(ctx, nil), bwerrors.ErrEmptyValue)
	require.ErrorIs(t, store.Save(ctx, sampleRecord("", constants.StatusSuccess)), bwerrors.ErrEmptyValue)
	require.ErrorIs(t, store.Save(ctx, sampleRecord("../escape", constants.StatusSuccess)), bwerrors.ErrPathTraversal)

	_, err := store.Last(ctx, "a/b")
	require.ErrorIs(t, err, bwerrors.ErrPathTraversal)
}

func TestFileStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(t.TempDir())

	require.ErrorIs(t, store.Save(ctx, sampleRecord("alpha", constants.StatusSuccess)), context.Canceled)
	_, err := store.Last(ctx, "alpha")
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidateProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		project string
		wantErr error
	}{
		{"simple", "alpha", nil},
		{"dotted and dashed", "web-app.v2_main", nil},
		{"empty", "", bwerrors.ErrEmptyValue},
		{"parent", "..", bwerrors.ErrPathTraversal},
		{"separator", "a/b", bwerrors.ErrPathTraversal},
		{"backslash", `a\b`, bwerrors.ErrPathTraversal},
		{"leading dot", ".hidden", bwerrors.ErrPathTraversal},
		{"space", "my project", bwerrors.ErrPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateProject(tt.project)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPrevious(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no history defaults to unknown", func(t *testing.T) {
		t.Parallel()
		prev, err := Previous(ctx, NewFileStore(t.TempDir()), "alpha")
		require.NoError(t, err)
		assert.Equal(t, domain.IntegrationSummary{Status: constants.StatusUnknown}, prev)
	})

	t.Run("uses status and last successful label", func(t *testing.T) {
		t.Parallel()
		store := NewFileStore(t.TempDir())
		require.NoError(t, store.Save(ctx, sampleRecord("alpha", constants.StatusFailure)))

		prev, err := Previous(ctx, store, "alpha")
		require.NoError(t, err)
		assert.Equal(t, domain.IntegrationSummary{Status: constants.StatusFailure, Label: "build-41"}, prev)
	})

	t.Run("unknown stored status is corruption", func(t *testing.T) {
		t.Parallel()
		store := NewFileStore(t.TempDir())
		require.NoError(t, store.Save(ctx, sampleRecord("alpha", constants.IntegrationStatus("melted"))))

		_, err := Previous(ctx, store, "alpha")
		require.ErrorIs(t, err, bwerrors.ErrHistoryCorrupted)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		t.Parallel()
		_, err := Previous(ctx, NewFileStore(t.TempDir()), "../x")
		require.ErrorIs(t, err, bwerrors.ErrPathTraversal)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := New(&config.HistoryConfig{Backend: constants.HistoryBackendFile, Dir: dir})
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Dir())

	store, err = New(&config.HistoryConfig{Backend: constants.HistoryBackendRedis, RedisAddr: "127.0.0.1:6379"})
	require.NoError(t, err)
	rs, ok := store.(*RedisStore)
	require.True(t, ok)
	assert.Equal(t, constants.DefaultRedisKeyPrefix+"alpha", rs.Key("alpha"))
	require.NoError(t, rs.Close())

	_, err = New(&config.HistoryConfig{Backend: "s3"})
	require.ErrorIs(t, err, bwerrors.ErrConfigInvalidHistory)
}
