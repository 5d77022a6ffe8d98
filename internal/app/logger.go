package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"

	defaultLogLevel = "warn"
)

// parseLogLevel accepts the slog level names in any case, with an optional
// offset such as "info+2".
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
	}
	return level, nil
}

func parseLogFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case logFormatText, logFormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid log format %q: must be text or json", s)
	}
}

// newLogger builds the run's logger on w. It does not touch slog.Default, so
// tests can run apps side by side.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(levelStr)
	if err != nil {
		return nil, err
	}
	format, err := parseLogFormat(formatStr)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == logFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
