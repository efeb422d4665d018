package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleRecordJSON shows the expected JSON serialization format for IntegrationRecord.
const exampleRecordJSON = `{
    "project": "alpha",
    "status": "failure",
    "label": "build-42",
    "last_successful_label": "build-41",
    "start_time": "2026-10-17T10:00:00Z",
    "end_time": "2026-10-17T10:04:00Z",
    "schema_version": 1
}`

func TestIntegrationRecord_JSON(t *testing.T) {
	var record IntegrationRecord
	require.NoError(t, json.Unmarshal([]byte(exampleRecordJSON), &record))

	assert.Equal(t, "alpha", record.Project)
	assert.Equal(t, StatusFailure, record.Status)
	assert.Equal(t, "build-41", record.LastSuccessfulLabel)
	assert.Equal(t, 4*time.Minute, record.EndTime.Sub(record.StartTime))

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, exampleRecordJSON, string(data))
}

func TestIntegrationSummary_Equal(t *testing.T) {
	a := IntegrationSummary{Status: StatusFailure, Label: "7"}

	assert.True(t, a.Equal(IntegrationSummary{Status: StatusFailure, Label: "7"}))
	assert.False(t, a.Equal(IntegrationSummary{Status: StatusSuccess, Label: "7"}))
	assert.False(t, a.Equal(IntegrationSummary{Status: StatusFailure, Label: "8"}))
}

func TestNewDataStepResult(t *testing.T) {
	result := NewDataStepResult("output")
	assert.True(t, result.Success)
	assert.Equal(t, "output", result.Data)
	assert.Empty(t, result.StepName)
}

type diskFullError struct{}

func (diskFullError) Error() string     { return "disk full" }
func (diskFullError) FaultKind() string { return "DiskFullError" }

type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

func TestNewFault(t *testing.T) {
	t.Run("nil error yields nil fault", func(t *testing.T) {
		assert.Nil(t, NewFault(nil))
	})

	t.Run("classifier supplies the kind", func(t *testing.T) {
		fault := NewFault(fmt.Errorf("writing artifacts: %w", diskFullError{}))
		require.NotNil(t, fault)
		assert.Equal(t, "DiskFullError", fault.Kind)
		assert.Equal(t, "writing artifacts: disk full", fault.Message)
	})

	t.Run("type name is the fallback kind", func(t *testing.T) {
		fault := NewFault(&plainError{msg: "boom"})
		assert.Equal(t, "plainError", fault.Kind)
		assert.Equal(t, "boom", fault.Error())
	})

	t.Run("existing fault keeps its kind", func(t *testing.T) {
		inner := &Fault{Kind: "TimeoutError", Message: "step timed out"}
		fault := NewFault(fmt.Errorf("compile: %w", inner))
		assert.Equal(t, "TimeoutError", fault.Kind)
		assert.Equal(t, "compile: step timed out", fault.Message)
	})

	t.Run("sentinel errors are classified by type", func(t *testing.T) {
		fault := NewFault(errors.New("oops"))
		assert.Equal(t, "errorString", fault.Kind)
	})
}

func TestModification_JSONFieldNames(t *testing.T) {
	mod := Modification{
		UserName:     "orogers",
		Comment:      "fix build",
		ChangeNumber: 12,
		ModifiedTime: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		Metadata:     map[string]string{"branch": "main"},
	}

	data, err := json.Marshal(mod)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "user_name")
	assert.Contains(t, raw, "change_number")
	assert.Contains(t, raw, "modified_time")
	assert.NotContains(t, raw, "file_name")
}
