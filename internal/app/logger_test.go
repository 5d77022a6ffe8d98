package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := newLogger("warn", "text", buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := newLogger("DEBUG", "JSON", buf)
	require.NoError(t, err)

	logger.Debug("structured", "rows", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "structured", entry["msg"])
	require.EqualValues(t, 7, entry["rows"])
}

func TestNewLogger_RejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := newLogger("chatty", "text", &bytes.Buffer{})
	require.ErrorContains(t, err, `invalid log level "chatty"`)

	_, err = newLogger("warn", "xml", &bytes.Buffer{})
	require.ErrorContains(t, err, `invalid log format "xml"`)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "Info", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "info+2", want: slog.LevelInfo + 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseLogLevel(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
