package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// Format selects the encoding of the primary log output.
type Format string

const (
	// FormatText is the colourised, human-readable handler.
	FormatText Format = "text"
	// FormatJSON is one JSON object per record.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for anything but text or json.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseFormat validates a --log-format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// LevelTrace is below Debug and enables the most detailed output (-vvv).
const LevelTrace = slog.LevelDebug - 4

// DebugEnv raises verbosity when no -v flag is given: "1" or "true" for
// debug, "2" for trace.
const DebugEnv = "CORTEX_DEBUG"

// LevelFromVerbosity maps a -v count to a log level. Without -v only
// warnings and errors are logged.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Verbosity returns the -v count, or the count implied by DebugEnv when no
// flag was given.
func Verbosity(flagCount int) int {
	if flagCount > 0 {
		return flagCount
	}
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true":
		return 2
	case "2":
		return 3
	}
	return 0
}

// Config describes a logger built by New.
type Config struct {
	// Level is the minimum level written to every output.
	Level slog.Level
	// Format selects the encoding of Output.
	Format Format
	// Output receives the primary log stream. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, additionally receives every record as JSON, as
	// with --log-file.
	File io.Writer
}

// New builds a logger from cfg. Secret-looking attribute values are masked
// in every output.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var primary slog.Handler
	if cfg.Format == FormatJSON {
		primary = newJSONHandler(out, cfg.Level)
	} else {
		primary = NewHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	}
	if cfg.File == nil {
		return slog.New(primary)
	}
	return slog.New(newTee(primary, newJSONHandler(cfg.File, cfg.Level)))
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(levelLabel(l))
				}
				return a
			}
			return redactAttr(a)
		},
	})
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a debug-level logger writing through t.Log, so output
// shows only for failing tests or with -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: slog.LevelDebug, Output: &testWriter{t: t}})
}
