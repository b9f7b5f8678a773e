package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Warn("shown", "profile", "explorer")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "profile=explorer")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "debug", Format: "json", Output: &buf})
	log.Debug("radar settled", "frames", 42)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "radar settled", rec["msg"])
	assert.Equal(t, float64(42), rec["frames"])
}

type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) WriteLineBytes(b []byte) {
	r.lines = append(r.lines, string(b))
}

func TestLineWriter(t *testing.T) {
	rec := &lineRecorder{}
	w := NewLineWriter(rec)

	n, err := w.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"one"}, rec.lines)

	_, _ = w.Write([]byte("o\nthree"))
	assert.Equal(t, []string{"one", "two"}, rec.lines)

	w.Flush()
	assert.Equal(t, []string{"one", "two", "three"}, rec.lines)

	w.Flush()
	assert.Len(t, rec.lines, 3)
}

func TestLoggerThroughLineWriter(t *testing.T) {
	rec := &lineRecorder{}
	log := NewLogger(LogConfig{Output: NewLineWriter(rec)})
	log.Info("a")
	log.Info("b")
	require.Len(t, rec.lines, 2)
	assert.Contains(t, rec.lines[1], "msg=b")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
