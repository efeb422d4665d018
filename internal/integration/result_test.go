package integration

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildwatch/internal/clock"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/domain"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type diskFullError struct{}

func (diskFullError) Error() string { return "disk full" }

func TestNewResult_Defaults(t *testing.T) {
	r := NewResult("alpha", "/work/alpha")

	assert.Equal(t, "alpha", r.ProjectName())
	assert.Equal(t, "/work/alpha", r.WorkingDirectory())
	assert.Equal(t, constants.StatusUnknown, r.Status())
	assert.Equal(t, constants.StatusUnknown, r.PreviousStatus())
	assert.Equal(t, constants.BuildConditionNone, r.BuildCondition())
	assert.Equal(t, constants.InitialLabel, r.Label())
	assert.True(t, r.IsInitial())
	assert.Nil(t, r.Fault())
	assert.Empty(t, r.StepResults())
	assert.Empty(t, r.CombinedStepOutput())
	assert.False(t, r.Succeeded())
	assert.False(t, r.Failed())
	assert.False(t, r.Fixed())
	assert.False(t, r.ShouldRunBuild())
	assert.Equal(t, 0, r.NumericLabel())

	_, ok := r.Request()
	assert.False(t, ok)
}

func TestNewResultFromRequest(t *testing.T) {
	req := domain.IntegrationRequest{Source: "nightly", BuildCondition: constants.BuildConditionForce}
	r := NewResultFromRequest("alpha", "/work", req)

	assert.Equal(t, constants.BuildConditionForce, r.BuildCondition())
	assert.True(t, r.ShouldRunBuild())

	got, ok := r.Request()
	require.True(t, ok)
	assert.Equal(t, req, got)
}

func TestNewInitialResult(t *testing.T) {
	r := NewInitialResult("alpha", "/work", clock.Fixed(testNow))

	assert.Equal(t, testNow.Add(-24*time.Hour), r.StartTime())
	assert.Equal(t, testNow, r.EndTime())
	assert.Equal(t, constants.BuildConditionForce, r.BuildCondition())
	assert.True(t, r.IsInitial())
	assert.True(t, r.ShouldRunBuild())
	assert.Equal(t, 24*time.Hour, r.Duration())
}

func TestAppendStepResult_StatusPrecedence(t *testing.T) {
	t.Run("all success", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.AppendStepResult(domain.StepResult{StepName: "compile", Success: true})
		r.AppendStepResult(domain.StepResult{StepName: "test", Success: true})
		assert.Equal(t, constants.StatusSuccess, r.Status())
		assert.True(t, r.Succeeded())
	})

	t.Run("failure is not overwritten by success", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.AppendStepResult(domain.StepResult{Success: true})
		r.AppendStepResult(domain.StepResult{Success: false})
		r.AppendStepResult(domain.StepResult{Success: true})
		assert.Equal(t, constants.StatusFailure, r.Status())
		assert.True(t, r.Failed())
	})

	t.Run("steps are kept in order", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.AppendStepResult(domain.StepResult{StepName: "a", Success: true, Data: "one "})
		r.AppendData("two")
		steps := r.StepResults()
		require.Len(t, steps, 2)
		assert.Equal(t, "a", steps[0].StepName)
		assert.Equal(t, "one two", r.CombinedStepOutput())
	})
}

func TestCaptureFault(t *testing.T) {
	t.Run("fault forces exception and is sticky", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.AppendStepResult(domain.StepResult{Success: true})
		r.CaptureFault(diskFullError{})
		r.AppendStepResult(domain.StepResult{Success: true})
		r.AppendStepResult(domain.StepResult{Success: false})

		assert.Equal(t, constants.StatusException, r.Status())
		assert.False(t, r.Succeeded())
		assert.False(t, r.Failed())

		fault := r.Fault()
		require.NotNil(t, fault)
		assert.Equal(t, "disk full", fault.Message)
		assert.Equal(t, "diskFullError", fault.Kind)
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.AppendStepResult(domain.StepResult{Success: true})
		r.CaptureFault(nil)
		assert.Equal(t, constants.StatusSuccess, r.Status())
		assert.Nil(t, r.Fault())
	})

	t.Run("wrapped fault keeps kind", func(t *testing.T) {
		r := NewResult("alpha", "/work")
		r.CaptureFault(errors.Join(&domain.Fault{Kind: "Timeout", Message: "took too long"}))
		require.NotNil(t, r.Fault())
		assert.Equal(t, "Timeout", r.Fault().Kind)
	})
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name     string
		previous constants.IntegrationStatus
		success  bool
		want     bool
	}{
		{"failure then success", constants.StatusFailure, true, true},
		{"success then success", constants.StatusSuccess, true, false},
		{"exception then success", constants.StatusException, true, false},
		{"unknown then success", constants.StatusUnknown, true, false},
		{"failure then failure", constants.StatusFailure, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult("alpha", "/work", WithPrevious(tt.previous, "build-1"))
			r.AppendStepResult(domain.StepResult{Success: tt.success})
			assert.Equal(t, tt.want, r.Fixed())
		})
	}
}

func TestLastSuccessfulLabel(t *testing.T) {
	t.Run("success returns current label", func(t *testing.T) {
		r := NewResult("alpha", "/work", WithLabel("build-5"), WithPrevious(constants.StatusSuccess, "build-4"))
		r.AppendStepResult(domain.StepResult{Success: true})
		assert.Equal(t, "build-5", r.LastSuccessfulLabel())
		assert.Equal(t, "build-4", r.PreviousLabel())
	})

	t.Run("failure returns previous label", func(t *testing.T) {
		r := NewResult("alpha", "/work", WithLabel("build-5"), WithPrevious(constants.StatusSuccess, "build-4"))
		r.AppendStepResult(domain.StepResult{Success: false})
		assert.Equal(t, "build-4", r.LastSuccessfulLabel())
	})

	t.Run("failure without history falls back to current label", func(t *testing.T) {
		r := NewResult("alpha", "/work", WithLabel("build-5"))
		r.AppendStepResult(domain.StepResult{Success: false})
		assert.Equal(t, "build-5", r.LastSuccessfulLabel())
	})
}

func TestLastIntegration(t *testing.T) {
	r := NewResult("alpha", "/work", WithPrevious(constants.StatusFailure, "build-3"))
	want := domain.IntegrationSummary{Status: constants.StatusFailure, Label: "build-3"}
	assert.True(t, want.Equal(r.LastIntegration()))
}

func TestModificationQueries(t *testing.T) {
	older := testNow.Add(-3 * time.Hour)
	newer := testNow.Add(-1 * time.Hour)

	t.Run("no modifications", func(t *testing.T) {
		r := NewResult("alpha", "/work", WithClock(clock.Fixed(testNow)))
		assert.False(t, r.HasModifications())
		assert.Equal(t, testNow.Add(-24*time.Hour), r.LastModificationDate())
		assert.Equal(t, 0, r.LastChangeNumber())
	})

	t.Run("latest timestamp and change number", func(t *testing.T) {
		r := NewResult("alpha", "/work", WithClock(clock.Fixed(testNow)), WithModifications(
			domain.Modification{UserName: "ana", ModifiedTime: newer, ChangeNumber: 12},
			domain.Modification{UserName: "bo", ModifiedTime: older, ChangeNumber: 40},
		))
		assert.True(t, r.HasModifications())
		assert.True(t, r.ShouldRunBuild())
		assert.Equal(t, newer, r.LastModificationDate())
		assert.Equal(t, 40, r.LastChangeNumber())
	})

	t.Run("modifications are copied", func(t *testing.T) {
		mods := []domain.Modification{{UserName: "ana"}}
		r := NewResult("alpha", "/work")
		r.SetModifications(mods)
		mods[0].UserName = "changed"
		assert.Equal(t, "ana", r.Modifications()[0].UserName)
	})
}

func TestMarkStartEnd(t *testing.T) {
	r := NewResult("alpha", "/work", WithClock(clock.Fixed(testNow)))
	r.MarkStart()
	r.clock = clock.Fixed(testNow.Add(90 * time.Second))
	r.MarkEnd()

	assert.Equal(t, testNow, r.StartTime())
	assert.Equal(t, 90*time.Second, r.Duration())

	// End before start yields a negative duration rather than an error.
	r.clock = clock.Fixed(testNow.Add(-time.Minute))
	r.MarkEnd()
	assert.Equal(t, -time.Minute, r.Duration())
}

func TestEqualAndHashKey(t *testing.T) {
	build := func(label string, success bool) *Result {
		r := NewResult("alpha", "/work", WithLabel(label), WithClock(clock.Fixed(testNow)))
		r.MarkStart()
		r.AppendStepResult(domain.StepResult{Success: success})
		return r
	}

	a := build("build-1", true)
	b := build("build-1", true)
	b.AppendData("extra output does not matter")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.HashKey(), b.HashKey())

	assert.False(t, a.Equal(build("build-2", true)))
	assert.False(t, a.Equal(build("build-1", false)))
	assert.False(t, a.Equal(nil))

	var nilResult *Result
	assert.True(t, nilResult.Equal(nil))
}

func TestDirectories(t *testing.T) {
	r := NewResult("alpha", filepath.FromSlash("/work"),
		WithArtifactDirectory(filepath.FromSlash("/artifacts")), WithLabel("build-9"))

	assert.Equal(t, filepath.Join("/artifacts", "build-9"), r.IntegrationArtifactDirectory())
	assert.Equal(t, filepath.Join("/artifacts", "logs"), r.BaseFromArtifactsDirectory("logs"))
	assert.Equal(t, filepath.FromSlash("/artifacts"), r.BaseFromArtifactsDirectory("  "))
	assert.Equal(t, filepath.Join("/work", "src"), r.BaseFromWorkingDirectory("src"))
	assert.Equal(t, filepath.FromSlash("/work"), r.BaseFromWorkingDirectory(""))
}

func TestProperties(t *testing.T) {
	req := domain.IntegrationRequest{Source: "nightly", BuildCondition: constants.BuildConditionInterval}
	r := NewResultFromRequest("alpha", "/work", req,
		WithProjectURL("https://ci.example.com/alpha"),
		WithArtifactDirectory("/artifacts"),
		WithLabel("build-42"),
		WithPrevious(constants.StatusFailure, "build-40"),
		WithClock(clock.Fixed(testNow)),
	)
	r.MarkStart()

	props := r.Properties()
	require.Len(t, props, 12)
	assert.Equal(t, PropProject, props[0].Name)

	m := props.Map()
	assert.Equal(t, "alpha", m[PropProject])
	assert.Equal(t, "https://ci.example.com/alpha", m[PropProjectURL])
	assert.Equal(t, "unknown", m[PropIntegrationStatus])
	assert.Equal(t, "build-42", m[PropLabel])
	assert.Equal(t, "interval_build", m[PropBuildCondition])
	assert.Equal(t, "42", m[PropNumericLabel])
	assert.Equal(t, "2026-10-17", m[PropBuildDate])
	assert.Equal(t, "12:00:00", m[PropBuildTime])
	assert.Equal(t, "failure", m[PropLastIntegrationStatus])
	assert.Equal(t, "nightly", m[PropRequestSource])

	v, ok := props.Get(PropLabel)
	assert.True(t, ok)
	assert.Equal(t, "build-42", v)
	_, ok = props.Get("missing")
	assert.False(t, ok)
}

func TestRecordAndString(t *testing.T) {
	r := NewResult("alpha", "/work", WithLabel("build-7"),
		WithPrevious(constants.StatusSuccess, "build-6"), WithClock(clock.Fixed(testNow)))
	r.MarkStart()
	r.AppendStepResult(domain.StepResult{Success: false})
	r.MarkEnd()

	rec := r.Record()
	assert.Equal(t, "alpha", rec.Project)
	assert.Equal(t, constants.StatusFailure, rec.Status)
	assert.Equal(t, "build-7", rec.Label)
	assert.Equal(t, "build-6", rec.LastSuccessfulLabel)
	assert.Equal(t, constants.HistorySchemaVersion, rec.SchemaVersion)

	assert.Contains(t, r.String(), "Project: alpha")
	assert.Contains(t, r.String(), "Status: failure")
	assert.Contains(t, r.String(), "Label: build-7")
}

func TestZeroResult_QueriesAnswer(t *testing.T) {
	t.Parallel()

	var r Result

	assert.NotPanics(t, func() {
		assert.Empty(t, r.ProjectName())
		assert.Empty(t, r.ProjectURL())
		assert.Equal(t, constants.StatusUnknown, r.Status())
		assert.Equal(t, constants.StatusUnknown, r.PreviousStatus())
		assert.Equal(t, constants.BuildConditionNone, r.BuildCondition())
		assert.Empty(t, r.Label())
		assert.False(t, r.IsInitial())
		assert.Equal(t, 0, r.NumericLabel())
		assert.False(t, r.Succeeded())
		assert.False(t, r.Failed())
		assert.False(t, r.Fixed())
		assert.False(t, r.HasModifications())
		assert.False(t, r.ShouldRunBuild())
		assert.Empty(t, r.Modifications())
		assert.Empty(t, r.StepResults())
		assert.Empty(t, r.CombinedStepOutput())
		assert.Nil(t, r.Fault())
		assert.Empty(t, r.LastSuccessfulLabel())
		assert.Equal(t, 0, r.LastChangeNumber())
		assert.Equal(t, time.Duration(0), r.Duration())
		assert.True(t, r.StartTime().IsZero())
		assert.True(t, r.EndTime().IsZero())

		_, ok := r.Request()
		assert.False(t, ok)

		assert.WithinDuration(t, time.Now().Add(-staleModificationAge), r.LastModificationDate(), time.Minute)
		assert.Equal(t, domain.IntegrationSummary{Status: constants.StatusUnknown}, r.LastIntegration())
		assert.Equal(t, constants.StatusUnknown, r.Record().Status)
		assert.Contains(t, r.String(), "Status: unknown")
		assert.Equal(t, "unknown", r.Properties().Map()[PropIntegrationStatus])
		assert.Equal(t, "no_build", r.Properties().Map()[PropBuildCondition])
		assert.True(t, r.Equal(&Result{}))
		assert.Equal(t, (&Result{}).HashKey(), r.HashKey())
		assert.Empty(t, r.IntegrationArtifactDirectory())
		assert.Empty(t, r.BaseFromWorkingDirectory(""))
	})
}

func TestZeroResult_Mutators(t *testing.T) {
	t.Parallel()

	var r Result

	assert.NotPanics(t, func() {
		r.MarkStart()
		r.AppendStepResult(domain.StepResult{StepName: "compile", Success: true})
		r.MarkEnd()
	})
	assert.False(t, r.StartTime().IsZero())
	assert.GreaterOrEqual(t, r.Duration(), time.Duration(0))
	assert.Equal(t, constants.StatusSuccess, r.Status())

	r.CaptureFault(errors.New("boom"))
	assert.Equal(t, constants.StatusException, r.Status())
}
