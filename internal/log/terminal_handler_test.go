package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "filter finished", 0)
	r.AddAttrs(slog.Int("lines_written", 3))

	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "10:30:45.123 INF filter finished lines_written=3\n", buf.String())
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

			r := slog.NewRecord(time.Now(), tt.level, "msg", 0)
			require.NoError(t, h.Handle(context.Background(), r))
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestTerminalHandler_NoColourForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelError, "fail", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.NotContains(t, buf.String(), "\033[")
}

func TestTerminalHandler_ColourCodes(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)
	h.colour = true

	r := slog.NewRecord(time.Now(), slog.LevelError, "fail", 0)
	r.AddAttrs(slog.String("spec", "5:3"))
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, ansiRed, "expected red colour for ERROR level")
	assert.Contains(t, output, ansiBold, "expected bold for message")
	assert.Contains(t, output, ansiDim+"spec="+ansiReset)
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestTerminalHandler_DefaultLevel(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestTerminalHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "filter")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "done", 0)
	r.AddAttrs(slog.Int("lines_read", 10))
	require.NoError(t, h2.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "component=filter")
	assert.Contains(t, output, "lines_read=10")

	buf.Reset()
	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0)))
	assert.NotContains(t, buf.String(), "component=", "parent handler must not see child attrs")
}

func TestTerminalHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h2 := h.WithGroup("spec")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "parsed", 0)
	r.AddAttrs(slog.Int("start", 3))
	require.NoError(t, h2.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "spec.start=3")
}

func TestTerminalHandler_EmptyGroup(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestTerminalHandler_GroupAttr(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.Group("range",
		slog.Int("start", 3),
		slog.Int("end", 5),
	))
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "range.start=3")
	assert.Contains(t, output, "range.end=5")
}

func TestTerminalHandler_QuotesStrings(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.String("error", "broken pipe"), slog.String("empty", ""))
	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, `error="broken pipe"`)
	assert.Contains(t, output, `empty=""`)
}

func TestTerminalHandler_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}
