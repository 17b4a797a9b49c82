package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name string
		flag int
		env  string
		want int
	}{
		{name: "unset", want: 0},
		{name: "flag only", flag: 1, want: 1},
		{name: "debug env", env: "1", want: 2},
		{name: "debug env true", env: "TRUE", want: 2},
		{name: "trace env", env: "2", want: 3},
		{name: "unrecognised env", env: "yes", want: 0},
		{name: "flag wins over env", flag: 1, env: "2", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.env)
			if got := Verbosity(tt.flag); got != tt.want {
				t.Errorf("Verbosity(%d) with %s=%q = %d, want %d", tt.flag, DebugEnv, tt.env, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrUnknownFormat), "ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParseFormat(%q)", tt.in)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelFromVerbosity(0), Output: &buf})

	logger.Info("backing up", "path", "/home/me/.claude.json")
	logger.Warn("vault not found", "candidate", "/home/me/Notes")

	out := buf.String()
	assert.NotContains(t, out, "backing up")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "candidate=/home/me/Notes")
}

func TestNew_JSONMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Debug("configured MCP server",
		"server", "obsidian",
		"api_key", "hunter22",
		"args", []string{"--vault", "/notes", "sk-ant-0123456789"},
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "obsidian", rec["server"])
	assert.Equal(t, "****er22", rec["api_key"])
	assert.Equal(t, []any{"--vault", "/notes", "****6789"}, rec["args"])
}

func TestNew_TeesToFileAsJSON(t *testing.T) {
	var term, file bytes.Buffer
	logger := New(Config{Level: LevelTrace, Output: &term, File: &file})

	logger.Log(t.Context(), LevelTrace, "read settings", "file", "CLAUDE.md")
	logger.With("server", "obsidian").Info("wrote config", "token", "ghp_abcdef123456")

	assert.Contains(t, term.String(), "TRACE read settings file=CLAUDE.md")
	assert.Contains(t, term.String(), "server=obsidian token=****3456")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "TRACE", first["level"])
	assert.Equal(t, "obsidian", second["server"])
	assert.Equal(t, "****3456", second["token"])
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	logger.Error("dropped")
}
