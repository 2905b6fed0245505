package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLoggerKeyValuePairs(t *testing.T) {
	logger, logs := newObserved(t)

	logger.Info("team created", "team_id", int64(7), "name", "Arsenal")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "team created", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, int64(7), fields["team_id"])
	assert.Equal(t, "Arsenal", fields["name"])
}

func TestLoggerDanglingKey(t *testing.T) {
	logger, logs := newObserved(t)

	logger.Warn("partial", "orphan")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Contains(t, fields, "orphan")
}

func TestLoggerWith(t *testing.T) {
	logger, logs := newObserved(t)

	logger.With("component", "httpapi").Info("request handled")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "httpapi", entries[0].ContextMap()["component"])
}

func TestNilLoggerDoesNotPanic(t *testing.T) {
	var logger *Logger

	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.With("k", "v").Error("still ignored")
		_ = logger.Sync()
	})
}

func TestDefaultLoggerSwap(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	logger, logs := newObserved(t)
	SetDefault(logger)

	Default().Info("hello")
	require.Len(t, logs.All(), 1)
}
