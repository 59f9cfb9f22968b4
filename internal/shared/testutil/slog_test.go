package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("Invocation started", slog.String("operation", "fill"))
	logger.With(slog.String("component", "dispatcher")).Warn("Slow write", slog.Int("rows", 3))
	logger.Error("Invocation failed")

	assert.Equal(t, 3, handler.Count())
	assert.Equal(t, []string{"Invocation started", "Slow write", "Invocation failed"}, handler.Messages())
	assert.True(t, handler.ContainsMessage("Slow"))
	assert.False(t, handler.ContainsMessage("missing"))
	assert.True(t, handler.ContainsAttr("operation", "fill"))
	assert.True(t, handler.ContainsAttr("component", "dispatcher"))
	assert.True(t, handler.ContainsAttr("rows", int64(3)))
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)

	AssertLogContains(t, handler, slog.LevelInfo, "started")
	AssertLogAttr(t, handler, "operation", "fill")

	handler.Clear()
	assert.Zero(t, handler.Count())
	AssertNoErrors(t, handler)
}

func TestWithAttrsSharesStore(t *testing.T) {
	handler := NewBufferedSlogHandler(nil)
	child := handler.WithAttrs([]slog.Attr{slog.String("trace_id", "abc")})

	slog.New(child).Info("child")
	slog.New(handler).Info("parent")

	records := handler.GetRecords()
	assert.Len(t, records, 2)
	assert.Equal(t, "abc", records[0].Attrs["trace_id"])
	assert.NotContains(t, records[1].Attrs, "trace_id")
}
