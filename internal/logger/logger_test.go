package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})
	defer closer.Close()

	log.Info("book added", "book_id", "book-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "book added", rec["msg"])
	assert.Equal(t, "book-1", rec["book_id"])
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			log, _ := New(Config{Environment: tt.environment, Writer: &buf})
			log.Info("hello")

			assert.Equal(t, tt.wantJSON, strings.HasPrefix(buf.String(), "{"), buf.String())
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: slog.LevelWarn, Format: "json", Writer: &buf})

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	out := buf.String()
	assert.NotContains(t, out, `"msg":"debug"`)
	assert.NotContains(t, out, `"msg":"info"`)
	assert.Contains(t, out, `"msg":"warn"`)
	assert.Contains(t, out, `"msg":"error"`)
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "litnotes.log")

	log, closer := New(Config{Level: slog.LevelInfo, Format: "pretty", Writer: &buf, File: path})
	log.With("component", "library").Info("library loaded", "books", 8)
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "library loaded")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\033[", "file output has no colors")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "library loaded", rec["msg"])
	assert.Equal(t, "library", rec["component"])
	assert.EqualValues(t, 8, rec["books"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	// Nil options default to info.
	def := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.False(t, def.Enabled(ctx, slog.LevelDebug))
	assert.True(t, def.Enabled(ctx, slog.LevelInfo))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil))

	log.Warn("note rejected", "book_id", "missing", "reason", "unknown book")

	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "note rejected")
	assert.Contains(t, out, "book_id=missing")
	assert.Contains(t, out, `reason="unknown book"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).
		With("component", "sse").
		WithGroup("client").
		With("id", "c1")

	log.Info("connected", slog.Group("conn", slog.Int("buffer", 100)))

	out := buf.String()
	assert.Contains(t, out, "component=sse")
	assert.Contains(t, out, "client.id=c1")
	assert.Contains(t, out, "client.conn.buffer=100")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}))

	log.Info("sourced")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
		{slog.LevelError + 4, "ERROR+4"},
	}
	for _, tt := range tests {
		got, _ := formatLevel(tt.level)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, `"two words"`, formatValue(slog.StringValue("two words")))
	assert.Equal(t, "2026-01-02T03:04:05Z", formatValue(slog.TimeValue(ts)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
}
