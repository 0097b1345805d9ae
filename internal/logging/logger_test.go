package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: " error ", want: LevelError},
		{input: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, errors.New("disk full"), "warn message")
	logger.Error(ctx, nil, "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "error message")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	child := logger.WithComponent("initializer").With("project", "my-app")
	child.Info(context.Background(), "step finished", "step", "remove database", "status", "absent")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "step finished", record["msg"])
	assert.Equal(t, "initializer", record["component"])
	assert.Equal(t, "my-app", record["project"])
	assert.Equal(t, "remove database", record["step"])
	assert.Equal(t, "absent", record["status"])
}

func TestWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})
	_ = parent.With("child_only", true)

	parent.Info(context.Background(), "parent line")
	assert.NotContains(t, buf.String(), "child_only")
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.WithRunID().Info(context.Background(), "hello")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	runID, ok := record["run_id"].(string)
	require.True(t, ok)
	assert.Len(t, runID, 36)
}

func TestPerfLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Output: &buf})
	ctx := context.Background()

	StartOperation(logger, "rewrite readme").End(ctx, "status", "done")
	StartOperation(logger, "remove venv").EndWithError(ctx, errors.New("busy"))

	out := buf.String()
	assert.Contains(t, out, "operation=\"rewrite readme\"")
	assert.Contains(t, out, "duration_ms=")
	assert.Contains(t, out, "Operation failed")
	assert.Contains(t, out, "busy")
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error(context.Background(), errors.New("x"), "discarded")
	})
}

func TestSanitizeForLog(t *testing.T) {
	assert.Equal(t, `line one\nline two`, SanitizeForLog("line one\nline two"))

	long := strings.Repeat("a", 300)
	sanitized := SanitizeForLog(long)
	assert.True(t, strings.HasSuffix(sanitized, "...[TRUNCATED]"))
	assert.Len(t, sanitized, 200+len("...[TRUNCATED]"))
}
