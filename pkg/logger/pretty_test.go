package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewPrettyHandler(buf, level, false))
}

func TestPrettyHandler_FormatsLine(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)

	l.Info("zone created", slog.String("id", "abc"), slog.Float64("radius_km", 2.5), slog.Any("error", errors.New("db down")))

	line := buf.String()
	assert.Contains(t, line, "INF")
	assert.Contains(t, line, "zone created")
	assert.Contains(t, line, "id=abc")
	assert.Contains(t, line, "radius_km=2.5")
	assert.Contains(t, line, "db down")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")), "line must end with newline: %q", line)
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug).
		With(slog.String("request_id", "r1")).
		WithGroup("ping").
		With(slog.String("entity", "e1"))

	l.Debug("accepted", slog.Int("events", 2), slog.Group("zone", slog.String("kind", "Flood")))

	line := buf.String()
	for _, want := range []string{"request_id=r1", "ping.entity=e1", "ping.events=2", "ping.zone.kind=Flood"} {
		assert.Contains(t, line, want)
	}
}

func TestPrettyHandler_NoColorWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, slog.LevelDebug).Error("boom")

	assert.Contains(t, buf.String(), "boom")
	assert.NotContains(t, buf.String(), "\033[")
}
