package slogutil

import (
	"io"
	"log/slog"
	"os"

	"figmcp/internal/config"
	"figmcp/internal/paths"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewMCPLogger builds the MCP server's operational logger from config.
// Lines go to logging.file (default ~/.figmcp/logs/mcp.log) and, when
// logging.stderr is set, also to stderr. stdout is never used because it
// carries the protocol stream.
func NewMCPLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(cfg.Level)

	path := cfg.File
	if path == "" {
		p, err := paths.GetMCPLogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	fileLogger, closer, err := NewFileLoggerWithRotation(path, level, cfg.MaxSize, cfg.MaxBackups)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.Stderr {
		return fileLogger, closer, nil
	}

	tee := NewTeeHandler(
		fileLogger.Handler(),
		NewLineHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
	return slog.New(tee), closer, nil
}

// NewCLILogger returns a stderr logger for one-shot commands.
func NewCLILogger(verbosity int, quiet bool) (*slog.Logger, io.Closer) {
	return NewLogger(os.Stderr, LevelFromVerbosity(verbosity, quiet)), nopCloser{}
}
