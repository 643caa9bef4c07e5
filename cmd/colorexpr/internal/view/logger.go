// Package view renders CLI output and diagnostics.
package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
)

// LogLevel is the CLI verbosity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelSilent
)

// ParseLogLevel parses a COLOREXPR_LOG value. Unknown values are silent.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn":
		return LogLevelWarn
	default:
		return LogLevelSilent
	}
}

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.Level(100)
	}
}

func rewriteLogLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		var text string
		switch level {
		case slog.LevelDebug:
			text = "DEBUG"
		case slog.LevelInfo:
			text = color.GreenString("INFO")
		case slog.LevelWarn:
			text = color.YellowString("WARN")
		case slog.LevelError:
			text = color.RedString("ERROR")
		default:
			text = level.String()
		}
		a.Value = slog.StringValue(text)
	}
	return a
}

// NewLogger creates a human-readable slog logger writing to w.
func NewLogger(w io.Writer, level LogLevel) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       level.toSlogLevel(),
		TimeFormat:  time.DateTime,
		ReplaceAttr: rewriteLogLevel,
		NoColor:     color.NoColor,
	}))
}

// Highlight colors a heading.
func Highlight(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// Errorf formats a diagnostic line.
func Errorf(format string, a ...any) string {
	return color.RGB(229, 50, 50).Sprint("Error!") + " " + fmt.Sprintf(format, a...)
}
