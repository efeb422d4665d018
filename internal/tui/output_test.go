package tui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildwatch/internal/constants"
)

func TestNewOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	_, isJSON := NewOutput(&buf, FormatJSON).(*JSONOutput)
	assert.True(t, isJSON)
	_, isTTY := NewOutput(&buf, FormatText).(*TTYOutput)
	assert.True(t, isTTY)
	_, isTTY = NewOutput(&buf, "").(*TTYOutput)
	assert.True(t, isTTY)
}

func TestTTYOutput_Messages(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("sent 2 notifications")
	out.Warning("no recipients for beta")
	out.Error(errors.New("transport failed"))
	out.Info("history saved")

	got := buf.String()
	assert.Contains(t, got, "✓ sent 2 notifications")
	assert.Contains(t, got, "⚠ no recipients for beta")
	assert.Contains(t, got, "✗ transport failed")
	assert.Contains(t, got, "history saved")
}

func TestTTYOutput_Table(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Table([]string{"NAME", "ADDRESS"}, [][]string{
		{"ana", "ana@example.com"},
		{"bo"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME  ADDRESS", lines[0])
	assert.Equal(t, "ana   ana@example.com", lines[1])
	assert.Equal(t, "bo", lines[2])

	buf.Reset()
	out.Table(nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}

func TestJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("ok")
	out.Error(fmt.Errorf("notify alpha: %w", errors.New("dial tcp: refused")))
	out.Table([]string{"name", "address"}, [][]string{{"ana", "ana@example.com"}, {"bo"}})

	dec := json.NewDecoder(&buf)

	var msg map[string]string
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, map[string]string{"type": "success", "message": "ok"}, msg)

	var errMsg map[string]string
	require.NoError(t, dec.Decode(&errMsg))
	assert.Equal(t, "error", errMsg["type"])
	assert.Equal(t, "dial tcp: refused", errMsg["details"])

	var rows []map[string]string
	require.NoError(t, dec.Decode(&rows))
	assert.Equal(t, []map[string]string{
		{"name": "ana", "address": "ana@example.com"},
		{"name": "bo", "address": ""},
	}, rows)
}

func TestOutput_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONOutput(&buf).JSON(map[string]int{"sent": 2}))
	assert.JSONEq(t, `{"sent": 2}`, buf.String())

	require.Error(t, NewJSONOutput(&buf).JSON(make(chan int)))
}

func TestStatusPresentation(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	tests := []struct {
		status constants.IntegrationStatus
		icon   string
		color  any
	}{
		{constants.StatusSuccess, "✓", ColorSuccess},
		{constants.StatusFailure, "✗", ColorError},
		{constants.StatusException, "⚠", ColorWarning},
		{constants.StatusUnknown, "?", ColorMuted},
		{constants.IntegrationStatus("odd"), "?", ColorMuted},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.icon, StatusIcon(tc.status), tc.status)
		assert.Equal(t, tc.color, StatusColor(tc.status), tc.status)
	}

	assert.Equal(t, "✗ failure", FormatStatus(constants.StatusFailure))
}

func TestHasColorSupport(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, HasColorSupport())
}

func TestRenderMarkdown_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "# alpha", RenderMarkdown("# alpha"))
}

func TestConfirm_NonInteractive(t *testing.T) {
	orig := terminalCheck
	terminalCheck = func() bool { return false }
	t.Cleanup(func() { terminalCheck = orig })

	ok, err := Confirm("Send?", "", true)
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, IsInteractive())
}
