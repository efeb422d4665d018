package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecipients_JSON(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runRecipients(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), OutputJSON))

	var got recipientsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, recipientsResult{
		Project:    "alpha",
		Label:      "build-42",
		Status:     "failure",
		Recipients: []string{"ana@example.com", "ops@example.com"},
	}, got)
}

func TestRunRecipients_Text(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runRecipients(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), OutputText))

	out := buf.String()
	assert.Contains(t, out, "alpha build-42")
	assert.Contains(t, out, "ADDRESS")
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "ops@example.com")
}

func TestRunRecipients_Nobody(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, runRecipients(context.Background(), &buf, a, writeManifest(t, "b.yaml", successBeta), OutputJSON))

	var got recipientsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "success", got.Status)
	assert.Empty(t, got.Recipients)
	assert.NotNil(t, got.Recipients)

	buf.Reset()
	require.NoError(t, runRecipients(context.Background(), &buf, a, writeManifest(t, "b.yaml", successBeta), OutputText))
	assert.Contains(t, buf.String(), "no recipients")
}

func TestRunRecipients_FallsBackToSender(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Notification.Users = nil
	a := newTestApp(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, runRecipients(context.Background(), &buf, a, writeManifest(t, "a.yaml", failedAlpha), OutputJSON))

	var got recipientsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"buildwatch@example.com"}, got.Recipients)
}
