package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		ok       bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"fatal", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			level, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.expected, level)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	l := logger.New(buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestNewWarnsOnInvalidLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	_ = logger.New(buf, "chatty")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "chatty", entries[0]["configured_level"])
}

func TestFromContextOrDefault(t *testing.T) {
	fallback, fallbackBuf := logger.GetTestLogger(t)
	scoped, scopedBuf := logger.GetTestLogger(t)

	t.Run("no logger in context", func(t *testing.T) {
		logger.FromContextOrDefault(context.Background(), fallback).Info("fallback")
		assert.Contains(t, fallbackBuf.String(), "fallback")
	})

	t.Run("logger in context", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), scoped)
		logger.FromContextOrDefault(ctx, fallback).Info("scoped")
		assert.Contains(t, scopedBuf.String(), "scoped")
		assert.NotContains(t, fallbackBuf.String(), "scoped")
	})

	t.Run("request id attached", func(t *testing.T) {
		ctx := logger.WithRequestID(logger.WithLogger(context.Background(), scoped), "req-42")
		logger.FromContextOrDefault(ctx, fallback).Info("with id")

		entries, err := scopedBuf.GetLogEntries()
		require.NoError(t, err)
		last := entries[len(entries)-1]
		assert.Equal(t, "req-42", last["request_id"])
		assert.Equal(t, "req-42", logger.RequestID(ctx))
	})
}
