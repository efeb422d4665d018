package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShow_YAMLRedactsPassword(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SMTP.Host = "mail.example.com"
	cfg.SMTP.Username = "buildwatch"
	cfg.SMTP.Password = "hunter2-hunter2"

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(context.Background(), &buf, cfg, OutputText))

	out := buf.String()
	assert.Contains(t, out, "host: mail.example.com")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "address: ana@example.com")
	assert.Equal(t, "hunter2-hunter2", cfg.SMTP.Password)
}

func TestRunConfigShow_JSONUsesConfigKeys(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SMTP.Password = "hunter2-hunter2"

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(context.Background(), &buf, cfg, OutputJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "log", doc["transport"])

	smtp, ok := doc["smtp"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "********", smtp["password"])
	assert.Equal(t, "30s", smtp["timeout"])

	notification, ok := doc["notification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "buildwatch@example.com", notification["from_address"])
}

func TestRunConfigShow_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runConfigShow(ctx, &bytes.Buffer{}, testConfig(t), OutputText)
	require.ErrorIs(t, err, context.Canceled)
}
