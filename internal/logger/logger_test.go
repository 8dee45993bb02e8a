package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := New(Options{Output: &buf, Level: "warn"})
	l.Info("hidden")
	l.Warn("shown", "client", "Border")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "client=Border")

	buf.Reset()
	l.SetLevel("debug")
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_JSONWith(t *testing.T) {
	var buf bytes.Buffer

	l := New(Options{Output: &buf, Level: "info", Format: "json"}).With("client", "Geotec")
	l.Info("normalized", "incidents", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "normalized", rec["msg"])
	assert.Equal(t, "Geotec", rec["client"])
	assert.EqualValues(t, 3, rec["incidents"])
}

func TestNewLogger(t *testing.T) {
	l := NewLogger("error")
	require.NotNil(t, l)
	assert.Equal(t, slog.LevelError, l.level.Level())

	Discard().Error("dropped")
}
