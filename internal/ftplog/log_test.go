package ftplog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelToStringKnownLevels(t *testing.T) {
	assert.Equal(t, "NOTICE", levelToString(LevelNotice))
	assert.Equal(t, "CRITICAL", levelToString(LevelCritical))
	assert.Equal(t, "ALERT", levelToString(LevelAlert))
	assert.Equal(t, "EMERGENCY", levelToString(LevelEmergency))
	assert.Equal(t, "INFO", levelToString(slog.LevelInfo))
}

func TestLevelToStringUnknownFallsBackToSlogString(t *testing.T) {
	weird := slog.Level(999)
	assert.Equal(t, weird.String(), levelToString(weird))
}

func TestLogfWithoutArgsDoesNotCallSprintf(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: replaceLevel}))
	// A literal '%' would be mangled by fmt.Sprintf with no args, so an
	// unchanged message shows Sprintf was skipped.
	Logf(context.Background(), logger, LevelNotice, "100% plain message")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "100% plain message", rec["msg"])
	assert.Equal(t, "notice", rec["level"])
}

func TestLogfFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: replaceLevel}))
	Logf(context.Background(), logger, LevelAlert, "failed after %d retries", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "failed after 3 retries", rec["msg"])
}

func TestNewJSONVsTextHandler(t *testing.T) {
	assert.NotNil(t, New(true, slog.LevelInfo))
	assert.NotNil(t, New(false, slog.LevelInfo))
}
