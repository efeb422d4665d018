package integration

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
)

// Manifest is the YAML description of one attempt written by the build-step
// collaborator.
//
// Example:
//
//	project: alpha
//	label: build-42
//	request:
//	  source: nightly
//	  build_condition: force_build
//	start_time: 2026-10-17T10:00:00Z
//	end_time: 2026-10-17T10:04:00Z
//	steps:
//	  - name: compile
//	    success: true
//	fault:
//	  kind: DiskFullError
//	  message: disk full
type Manifest struct {
	Project           string                     `yaml:"project"`
	ProjectURL        string                     `yaml:"project_url,omitempty"`
	WorkingDirectory  string                     `yaml:"working_directory,omitempty"`
	ArtifactDirectory string                     `yaml:"artifact_directory,omitempty"`
	Label             string                     `yaml:"label,omitempty"`
	Request           *domain.IntegrationRequest `yaml:"request,omitempty"`
	StartTime         time.Time                  `yaml:"start_time,omitempty"`
	EndTime           time.Time                  `yaml:"end_time,omitempty"`
	Steps             []domain.StepResult        `yaml:"steps,omitempty"`
	Fault             *domain.Fault              `yaml:"fault,omitempty"`
	Modifications     []domain.Modification      `yaml:"modifications,omitempty"`
}

// LoadManifest decodes a manifest from r. Unknown fields are rejected.
func LoadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", bwerrors.ErrManifestInvalid)
		}
		return nil, fmt.Errorf("%w: %w", bwerrors.ErrManifestInvalid, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the fields Build relies on.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Project) == "" {
		return fmt.Errorf("%w: project is required", bwerrors.ErrManifestInvalid)
	}
	if m.Request != nil && m.Request.BuildCondition != "" && !m.Request.BuildCondition.Valid() {
		return fmt.Errorf("%w: unknown build condition %q", bwerrors.ErrManifestInvalid, m.Request.BuildCondition)
	}
	if m.Fault != nil && strings.TrimSpace(m.Fault.Message) == "" {
		return fmt.Errorf("%w: fault message is required", bwerrors.ErrManifestInvalid)
	}
	return nil
}

// Build replays the manifest into a Result seeded with the previous attempt.
// Steps and the fault go through the public mutators, so the result obeys
// the same status rules as a live attempt.
func (m *Manifest) Build(prev domain.IntegrationSummary, opts ...Option) *Result {
	base := []Option{
		WithProjectURL(m.ProjectURL),
		WithArtifactDirectory(m.ArtifactDirectory),
		WithPrevious(prev.Status, prev.Label),
		WithModifications(m.Modifications...),
	}
	if m.Label != "" {
		base = append(base, WithLabel(m.Label))
	}
	opts = append(base, opts...)

	var r *Result
	if m.Request != nil {
		req := *m.Request
		if req.BuildCondition == "" {
			req.BuildCondition = constants.BuildConditionNone
		}
		r = NewResultFromRequest(m.Project, m.WorkingDirectory, req, opts...)
	} else {
		r = NewResult(m.Project, m.WorkingDirectory, opts...)
	}

	r.startTime = m.StartTime
	r.endTime = m.EndTime
	for _, step := range m.Steps {
		r.AppendStepResult(step)
	}
	if m.Fault != nil {
		f := *m.Fault
		r.CaptureFault(&f)
	}
	return r
}
