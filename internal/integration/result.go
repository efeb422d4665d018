package integration

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/mrz1836/buildwatch/internal/clock"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
)

// staleModificationAge is how far back LastModificationDate reaches when an
// attempt has no modifications.
const staleModificationAge = 24 * time.Hour

// Result holds the state of one integration attempt.
//
// A Result is driven by a single writer (the step collaborator) through
// AppendStepResult, CaptureFault, MarkStart and MarkEnd. It has no internal
// locking; once handed to the notification engine it must not be mutated.
// Every query answers on the zero value; a zero Result reads the wall clock.
type Result struct {
	clock clock.Clock

	// immutable per attempt
	projectName       string
	projectURL        string
	workingDirectory  string
	artifactDirectory string
	buildCondition    constants.BuildCondition
	request           *domain.IntegrationRequest

	// mutable
	status        constants.IntegrationStatus
	label         string
	startTime     time.Time
	endTime       time.Time
	steps         []domain.StepResult
	fault         *domain.Fault
	modifications []domain.Modification

	// previous attempt
	previousStatus      constants.IntegrationStatus
	lastSuccessfulLabel string
}

// Option configures a Result at construction.
type Option func(*Result)

// WithClock sets the clock used by MarkStart, MarkEnd and LastModificationDate.
func WithClock(c clock.Clock) Option {
	return func(r *Result) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithProjectURL sets the project's web URL.
func WithProjectURL(url string) Option {
	return func(r *Result) { r.projectURL = url }
}

// WithArtifactDirectory sets the directory build artifacts are written to.
func WithArtifactDirectory(dir string) Option {
	return func(r *Result) { r.artifactDirectory = dir }
}

// WithLabel sets the attempt's label.
func WithLabel(label string) Option {
	return func(r *Result) { r.label = label }
}

// WithPrevious seeds the outcome of the previous attempt, as supplied by the
// history store. An empty lastSuccessfulLabel means no attempt has succeeded yet.
func WithPrevious(status constants.IntegrationStatus, lastSuccessfulLabel string) Option {
	return func(r *Result) {
		if status != "" {
			r.previousStatus = status
		}
		r.lastSuccessfulLabel = lastSuccessfulLabel
	}
}

// WithModifications sets the modifications detected for this attempt.
func WithModifications(mods ...domain.Modification) Option {
	return func(r *Result) { r.SetModifications(mods) }
}

// NewResult creates the state for a new attempt of project.
// The build condition defaults to no_build and the previous status to unknown.
func NewResult(projectName, workingDirectory string, opts ...Option) *Result {
	r := &Result{
		clock:            clock.RealClock{},
		projectName:      projectName,
		workingDirectory: workingDirectory,
		buildCondition:   constants.BuildConditionNone,
		status:           constants.StatusUnknown,
		label:            constants.InitialLabel,
		previousStatus:   constants.StatusUnknown,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewResultFromRequest creates the state for an attempt started by req.
// The attempt's build condition is taken from the request.
func NewResultFromRequest(projectName, workingDirectory string, req domain.IntegrationRequest, opts ...Option) *Result {
	r := NewResult(projectName, workingDirectory, opts...)
	reqCopy := req
	r.request = &reqCopy
	r.buildCondition = req.BuildCondition
	return r
}

// NewInitialResult creates the placeholder result used before a project has
// ever been integrated: it spans the last day and forces a build.
func NewInitialResult(projectName, workingDirectory string, c clock.Clock) *Result {
	r := NewResult(projectName, workingDirectory, WithClock(c))
	now := r.now()
	r.startTime = now.Add(-staleModificationAge)
	r.endTime = now
	r.buildCondition = constants.BuildConditionForce
	return r
}

// AppendStepResult records a step outcome. The status becomes success or
// failure according to the step, unless it is already failure or exception.
func (r *Result) AppendStepResult(result domain.StepResult) {
	r.steps = append(r.steps, result)
	r.status = statusAfterStep(r.status, result.Success)
}

// AppendData records a successful step that only produced output.
func (r *Result) AppendData(data string) {
	r.AppendStepResult(domain.NewDataStepResult(data))
}

// CaptureFault records err as the attempt's fault and forces the exception
// status. Later step results cannot leave the exception status. A nil error
// is ignored.
func (r *Result) CaptureFault(err error) {
	fault := domain.NewFault(err)
	if fault == nil {
		return
	}
	r.fault = fault
	r.status = constants.StatusException
}

func (r *Result) now() time.Time {
	if r.clock == nil {
		return clock.RealClock{}.Now()
	}
	return r.clock.Now()
}

// MarkStart records the attempt's start time.
func (r *Result) MarkStart() {
	r.startTime = r.now()
}

// MarkEnd records the attempt's end time.
func (r *Result) MarkEnd() {
	r.endTime = r.now()
}

// SetLabel sets the attempt's label, typically once a labeller ran.
func (r *Result) SetLabel(label string) {
	r.label = label
}

// SetModifications replaces the attempt's modifications with a copy of mods.
func (r *Result) SetModifications(mods []domain.Modification) {
	r.modifications = append([]domain.Modification(nil), mods...)
}

// ProjectName returns the project the attempt belongs to.
func (r *Result) ProjectName() string { return r.projectName }

// ProjectURL returns the project's web URL, if configured.
func (r *Result) ProjectURL() string { return r.projectURL }

// WorkingDirectory returns the directory the build runs in.
func (r *Result) WorkingDirectory() string { return r.workingDirectory }

// ArtifactDirectory returns the directory build artifacts are written to.
func (r *Result) ArtifactDirectory() string { return r.artifactDirectory }

// BuildCondition returns why the attempt was started.
func (r *Result) BuildCondition() constants.BuildCondition {
	if r.buildCondition == "" {
		return constants.BuildConditionNone
	}
	return r.buildCondition
}

// Request returns the request that started the attempt, if any.
func (r *Result) Request() (domain.IntegrationRequest, bool) {
	if r.request == nil {
		return domain.IntegrationRequest{}, false
	}
	return *r.request, true
}

// Status returns the attempt's current status.
func (r *Result) Status() constants.IntegrationStatus { return orUnknown(r.status) }

// Label returns the attempt's label.
func (r *Result) Label() string { return r.label }

// StartTime returns when the attempt started.
func (r *Result) StartTime() time.Time { return r.startTime }

// EndTime returns when the attempt ended.
func (r *Result) EndTime() time.Time { return r.endTime }

// Duration returns EndTime minus StartTime. It is negative when MarkEnd was
// called before MarkStart.
func (r *Result) Duration() time.Duration {
	return r.endTime.Sub(r.startTime)
}

// StepResults returns a copy of the recorded step results in append order.
func (r *Result) StepResults() []domain.StepResult {
	return append([]domain.StepResult(nil), r.steps...)
}

// Fault returns the captured fault, or nil.
func (r *Result) Fault() *domain.Fault {
	if r.fault == nil {
		return nil
	}
	f := *r.fault
	return &f
}

// Modifications returns a copy of the attempt's modifications.
func (r *Result) Modifications() []domain.Modification {
	return append([]domain.Modification(nil), r.modifications...)
}

// PreviousStatus returns the status of the previous attempt.
func (r *Result) PreviousStatus() constants.IntegrationStatus { return orUnknown(r.previousStatus) }

// PreviousLabel returns the last successful label as supplied by history,
// without falling back to the current label.
func (r *Result) PreviousLabel() string { return r.lastSuccessfulLabel }

// LastSuccessfulLabel returns the label of the most recent successful attempt.
// While this attempt is successful that is its own label; when history has no
// successful label it also falls back to the current label.
func (r *Result) LastSuccessfulLabel() string {
	if r.Succeeded() || r.lastSuccessfulLabel == "" {
		return r.label
	}
	return r.lastSuccessfulLabel
}

// LastIntegration returns the (status, label) summary of the previous attempt.
func (r *Result) LastIntegration() domain.IntegrationSummary {
	return domain.IntegrationSummary{Status: r.PreviousStatus(), Label: r.lastSuccessfulLabel}
}

// Succeeded reports whether the attempt succeeded.
func (r *Result) Succeeded() bool { return r.status == constants.StatusSuccess }

// Failed reports whether the attempt failed. An excepted attempt is not failed.
func (r *Result) Failed() bool { return r.status == constants.StatusFailure }

// Fixed reports whether the attempt succeeded after a failed one.
func (r *Result) Fixed() bool {
	return r.Succeeded() && r.previousStatus == constants.StatusFailure
}

// HasModifications reports whether any modification was recorded.
func (r *Result) HasModifications() bool { return len(r.modifications) > 0 }

// ShouldRunBuild reports whether a build must run: it was forced, or
// something changed.
func (r *Result) ShouldRunBuild() bool {
	return r.buildCondition == constants.BuildConditionForce || r.HasModifications()
}

// IsInitial reports whether this is a project's first attempt.
func (r *Result) IsInitial() bool { return r.label == constants.InitialLabel }

// NumericLabel returns the trailing number of the label, or 0.
func (r *Result) NumericLabel() int { return numericLabel(r.label) }

// LastModificationDate returns the newest modification time. With no
// modifications it returns one day before now so callers treat the project
// as stale.
func (r *Result) LastModificationDate() time.Time {
	if len(r.modifications) == 0 {
		return r.now().Add(-staleModificationAge)
	}
	var latest time.Time
	for _, m := range r.modifications {
		if m.ModifiedTime.After(latest) {
			latest = m.ModifiedTime
		}
	}
	return latest
}

// LastChangeNumber returns the highest change number among the modifications, or 0.
func (r *Result) LastChangeNumber() int {
	last := 0
	for _, m := range r.modifications {
		if m.ChangeNumber > last {
			last = m.ChangeNumber
		}
	}
	return last
}

// CombinedStepOutput concatenates the data of every step result in append order.
func (r *Result) CombinedStepOutput() string {
	var b strings.Builder
	for _, s := range r.steps {
		b.WriteString(s.Data)
	}
	return b.String()
}

// IntegrationArtifactDirectory returns the artifact directory for this label.
func (r *Result) IntegrationArtifactDirectory() string {
	return filepath.Join(r.artifactDirectory, r.label)
}

// BaseFromArtifactsDirectory resolves p against the artifact directory.
// A blank p returns the artifact directory itself.
func (r *Result) BaseFromArtifactsDirectory(p string) string {
	if strings.TrimSpace(p) == "" {
		return r.artifactDirectory
	}
	return filepath.Join(r.artifactDirectory, p)
}

// BaseFromWorkingDirectory resolves p against the working directory.
// A blank p returns the working directory itself.
func (r *Result) BaseFromWorkingDirectory(p string) string {
	if strings.TrimSpace(p) == "" {
		return r.workingDirectory
	}
	return filepath.Join(r.workingDirectory, p)
}

// Equal reports whether two attempts are the same: project, status, label and
// start time all match.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.projectName == other.projectName &&
		r.status == other.status &&
		r.label == other.label &&
		r.startTime.Equal(other.startTime)
}

// HashKey returns a hash consistent with Equal: equal attempts share a key.
func (r *Result) HashKey() uint64 {
	return xxhash.Sum64String(r.projectName + "|" + r.label + "|" + strconv.FormatInt(r.startTime.UnixNano(), 10))
}

// Record returns the history row describing this attempt.
func (r *Result) Record() domain.IntegrationRecord {
	return domain.IntegrationRecord{
		Project:             r.projectName,
		Status:              r.Status(),
		Label:               r.label,
		LastSuccessfulLabel: r.LastSuccessfulLabel(),
		StartTime:           r.startTime,
		EndTime:             r.endTime,
		SchemaVersion:       constants.HistorySchemaVersion,
	}
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	return fmt.Sprintf("Project: %s, Status: %s, Label: %s, StartTime: %s",
		r.projectName, r.Status(), r.label, r.startTime.Format(time.RFC3339))
}

func orUnknown(status constants.IntegrationStatus) constants.IntegrationStatus {
	if status == "" {
		return constants.StatusUnknown
	}
	return status
}
