package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// LogConfig holds settings for the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`

	// Format is text or json
	Format string `toml:"format"`

	// File receives log output; empty means stderr
	File string `toml:"file"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate checks the level and format names.
func (l *LogConfig) Validate() error {
	if _, err := l.level(); err != nil {
		return err
	}
	if l.Format != "text" && l.Format != "json" {
		return errors.Wrapf(errors.ErrInvalidConfig, "log format %q (want text or json)", l.Format)
	}
	return nil
}

func (l *LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errors.Wrapf(errors.ErrInvalidConfig, "log level %q", l.Level)
	}
	return level, nil
}

// NewLogger builds a slog logger from the settings. The returned closer
// releases the log file, if any, and is never nil.
func NewLogger(l LogConfig) (*slog.Logger, io.Closer, error) {
	if err := l.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := l.level()

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		w, closer = f, f
	}

	return slog.New(newHandler(w, l.Format, level)), closer, nil
}

// NewLoggerTo builds a logger writing to w, ignoring File.
func NewLoggerTo(w io.Writer, l LogConfig) (*slog.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	level, _ := l.level()
	return slog.New(newHandler(w, l.Format, level)), nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
