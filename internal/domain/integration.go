// Package domain provides shared domain types for the buildwatch notification core.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON and YAML field names use snake_case.
package domain

import (
	"time"

	"github.com/mrz1836/buildwatch/internal/constants"
)

// StepResult captures the outcome of one unit of work within an attempt.
//
// Example JSON representation:
//
//	{
//	    "step_name": "unit-tests",
//	    "success": true,
//	    "data": "<test-results total=\"10\" failures=\"0\" not-run=\"0\"/>"
//	}
type StepResult struct {
	// StepName identifies which step produced this result.
	StepName string `json:"step_name,omitempty" yaml:"name,omitempty"`

	// Success indicates whether the step completed without errors.
	Success bool `json:"success" yaml:"success"`

	// Data is the free-form output of the step. It is concatenated into the
	// attempt's combined output and may embed structured test summaries.
	Data string `json:"data,omitempty" yaml:"data,omitempty"`
}

// NewDataStepResult returns a successful step result carrying only data.
func NewDataStepResult(data string) StepResult {
	return StepResult{Success: true, Data: data}
}

// Modification is one change detected by the source-control collaborator.
type Modification struct {
	// Type is the kind of change (added, modified, deleted).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// FileName and FolderName locate the changed file.
	FileName   string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	FolderName string `json:"folder_name,omitempty" yaml:"folder_name,omitempty"`

	// ModifiedTime is when the change was committed.
	ModifiedTime time.Time `json:"modified_time" yaml:"modified_time"`

	// UserName is the author of the change.
	UserName string `json:"user_name,omitempty" yaml:"user_name,omitempty"`

	// ChangeNumber is the change identifier reported by source control.
	ChangeNumber int `json:"change_number,omitempty" yaml:"change_number,omitempty"`

	// Comment is the commit message.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	EmailAddress string `json:"email_address,omitempty" yaml:"email_address,omitempty"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`

	// Metadata holds any additional key-value data from source control.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IntegrationRequest describes who asked for an attempt and why.
type IntegrationRequest struct {
	// Source names the trigger or user that requested the attempt.
	Source string `json:"source" yaml:"source"`

	// BuildCondition is the trigger condition carried by the request.
	BuildCondition constants.BuildCondition `json:"build_condition" yaml:"build_condition"`
}

// IntegrationSummary is the (status, label) pair of a previous attempt.
// It is used purely for comparison.
type IntegrationSummary struct {
	Status constants.IntegrationStatus `json:"status"`
	Label  string                      `json:"label"`
}

// Equal reports whether both status and label match.
func (s IntegrationSummary) Equal(other IntegrationSummary) bool {
	return s.Status == other.Status && s.Label == other.Label
}

// IntegrationRecord is the persisted history of a project's last attempt.
//
// Example JSON representation:
//
//	{
//	    "project": "alpha",
//	    "status": "failure",
//	    "label": "build-42",
//	    "last_successful_label": "build-41",
//	    "start_time": "2026-10-17T10:00:00Z",
//	    "end_time": "2026-10-17T10:04:00Z",
//	    "schema_version": 1
//	}
type IntegrationRecord struct {
	Project             string                      `json:"project"`
	Status              constants.IntegrationStatus `json:"status"`
	Label               string                      `json:"label"`
	LastSuccessfulLabel string                      `json:"last_successful_label,omitempty"`
	StartTime           time.Time                   `json:"start_time"`
	EndTime             time.Time                   `json:"end_time"`
	SchemaVersion       int                         `json:"schema_version"`
}
