package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildwatch/internal/notify"
)

func TestRunPreview_Plain(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runPreview(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), &PreviewFlags{}, OutputText))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Subject: alpha Build Failed: build-42\n"), out)
	assert.Contains(t, out, "From: buildwatch@example.com\n")
	assert.Contains(t, out, "To: ana@example.com, ops@example.com\n")
	assert.Contains(t, out, "Content-Type: text/plain\n\nBuild results for project alpha\n")
	assert.NotContains(t, out, "<html>")
}

func TestRunPreview_IncludeDetailsRendersHTML(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Notification.IncludeDetails = true
	a := newTestApp(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, runPreview(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), &PreviewFlags{}, OutputText))

	out := buf.String()
	assert.Contains(t, out, "Content-Type: text/html\n")
	assert.Contains(t, out, "<h1>Build results for project alpha</h1>")
	assert.Contains(t, out, "<h2>Build details</h2>")
}

func TestRunPreview_JSON(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runPreview(context.Background(), &buf, a, writeManifest(t, "b.yaml", successBeta), &PreviewFlags{}, OutputJSON))

	var got previewResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "beta Build Successful: build-7", got.Subject)
	assert.Equal(t, "buildwatch@example.com", got.From)
	assert.Empty(t, got.Recipients)
	assert.True(t, strings.HasPrefix(got.Body, "Build results for project beta\n"), got.Body)
	assert.Contains(t, got.Body, "BUILD COMPLETE")
	assert.Equal(t, notify.ContentTypePlain, got.ContentType)
}

func TestRunPreview_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runPreview(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), &PreviewFlags{Pretty: true}, OutputText))

	out := buf.String()
	assert.Contains(t, out, "# alpha Build Failed: build-42")
	assert.Contains(t, out, "| Status | failure |")
	assert.Contains(t, out, "- test: failure")
}

func TestPreviewMarkdown(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))
	at, err := a.loadAttempt(context.Background(), writeManifest(t, "a.yaml", failedAlpha+"fault:\n  kind: DiskFullError\n  message: disk full\n"))
	require.NoError(t, err)

	md := previewMarkdown(at.Result, "subject", nil)

	assert.Contains(t, md, "# subject")
	assert.Contains(t, md, "| Status | exception |")
	assert.Contains(t, md, "| Previous status | unknown |")
	assert.Contains(t, md, "| Recipients | - |")
	assert.Contains(t, md, "- compile: success")
	assert.Contains(t, md, "- ana parser.go (fix flaky test)")
	assert.Contains(t, md, "## Exception\n\ndisk full (DiskFullError)")
}

func TestOrDash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "x", orDash("x"))
}
