// Package observability provides structured logging for the support bot.
package observability

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LogFileName is the shared application log inside the log directory.
const LogFileName = "chat_session.log"

// Config holds logger configuration.
type Config struct {
	Level   string // debug, info, warn, error
	LogDir  string // when set, logs also go to LogDir/chat_session.log
	Console io.Writer
	Pretty  bool // console-writer formatting for interactive runs
}

// NewLogger creates a structured logger. When a log directory is configured
// the log file is opened in append mode; session transcripts live next to it
// but are written by the recorder, not this logger.
func NewLogger(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: "2006-01-02 15:04:05"}
	}

	writer := console
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory %s: %w", cfg.LogDir, err)
		}
		path := filepath.Join(cfg.LogDir, LogFileName)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		writer = zerolog.MultiLevelWriter(console, file)
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", "support-bot").
		Logger()

	return logger, nil
}
