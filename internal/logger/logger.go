// Package logger builds the process logger: a slog text handler over a
// rotating log file. The terminal owns stdout and stderr while a session
// is live, so nothing is ever written there.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log file and its rotation.
type Config struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger is a slog.Logger with an adjustable level and the file behind it.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *lumberjack.Logger
}

// New creates a logger. An empty path discards every record.
func New(cfg Config) (*Logger, error) {
	lv, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lv)

	l := &Logger{level: level}
	var w io.Writer = io.Discard
	if cfg.Path != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w = l.file
	}
	l.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l, _ := New(Config{})
	return l
}

// ParseLevel decodes debug, info, warn or error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lv, nil
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(lv slog.Level) {
	l.level.Set(lv)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
