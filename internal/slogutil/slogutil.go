// Package slogutil holds figmcp's log plumbing: the line handler, a tee for
// file plus stderr, the rotating log file and the logger factories.
package slogutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// levelSilent is above every level a call site uses.
const levelSilent = slog.LevelError + 100

var levelsByName = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// cliLevels maps the -v count to a level; counts past the end mean debug.
var cliLevels = []slog.Level{slog.LevelWarn, slog.LevelInfo, slog.LevelDebug}

// NewLogger returns a logger writing the line format to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLineHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileLogger appends to path without rotation.
func NewFileLogger(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

// NewDiscardLogger is the default for components built without a logger.
func NewDiscardLogger() *slog.Logger {
	return NewLogger(io.Discard, levelSilent)
}

// LevelFromString parses a config level name; unknown names mean info.
func LevelFromString(s string) slog.Level {
	if level, ok := levelsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return slog.LevelInfo
}

// LevelFromVerbosity maps CLI flags to a level: warn by default, -v info,
// -vv debug. quiet wins over any count.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	switch {
	case quiet:
		return levelSilent
	case verbosity <= 0:
		return cliLevels[0]
	case verbosity >= len(cliLevels):
		return slog.LevelDebug
	}
	return cliLevels[verbosity]
}
