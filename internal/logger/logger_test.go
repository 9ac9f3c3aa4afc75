package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	l, err := New(Config{Path: path, Level: "warn", MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("child render failed", "index", 2)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "child render failed")
	assert.Contains(t, out, "index=2")
}

func TestSetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	l, err := New(Config{Path: path})
	require.NoError(t, err)
	defer l.Close()

	l.Debug("before")
	l.SetLevel(slog.LevelDebug)
	l.Debug("after")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if strings.Contains(string(data), "before") {
		t.Errorf("expected debug record before SetLevel to be dropped")
	}
	if !strings.Contains(string(data), "after") {
		t.Errorf("expected debug record after SetLevel, got %q", data)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nowhere")
	assert.NoError(t, l.Close())
}
