package integration

import (
	"time"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
)

// Snapshot is the read-only view of a completed attempt consumed by the
// notification engine and the CLI. *Result implements it.
type Snapshot interface {
	ProjectName() string
	ProjectURL() string
	Status() constants.IntegrationStatus
	Label() string
	StartTime() time.Time
	EndTime() time.Time
	Duration() time.Duration

	Succeeded() bool
	Failed() bool
	Fixed() bool
	HasModifications() bool
	Modifications() []domain.Modification
	StepResults() []domain.StepResult
	CombinedStepOutput() string
	Fault() *domain.Fault

	PreviousStatus() constants.IntegrationStatus
	LastSuccessfulLabel() string
	Record() domain.IntegrationRecord
	BuildCondition() constants.BuildCondition
	Request() (domain.IntegrationRequest, bool)
	ShouldRunBuild() bool
	IsInitial() bool
	NumericLabel() int
	LastModificationDate() time.Time
}

var _ Snapshot = (*Result)(nil)
