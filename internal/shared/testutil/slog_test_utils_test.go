package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		require.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("keeps attrs bound with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		scoped := logger.With(slog.String("profile", "hooks"))
		scoped.Info("phase done", slog.String("phase", "activate"))
		logger.Info("unscoped")

		AssertLogAttr(t, handler, "profile", "hooks")
		AssertLogAttr(t, handler, "phase", "activate")
		assert.Equal(t, []any{"hooks"}, handler.AttrValues("profile"))
		assert.Equal(t, 2, handler.Count())
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("msg1")
		logger.Info("msg2")
		require.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})
}

func TestFixtures(t *testing.T) {
	assert.Len(t, SampleHooks(), 3)

	trades := SampleTrades()
	require.Len(t, trades, 5)
	assert.False(t, trades[3].TradingStatus)
}
