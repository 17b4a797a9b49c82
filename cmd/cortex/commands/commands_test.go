package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/config"
	"github.com/aoatridge/cortex/internal/doctor"
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/install"
	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/mcpconfig"
)

type testEnv struct {
	home       string
	project    string
	configPath string
	vaultRoot  string
}

// setupEnv isolates a command test from the real home directory and resets
// the package-level flag variables.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{home: t.TempDir(), project: t.TempDir()}
	env.configPath = filepath.Join(env.home, ".claude.json")
	env.vaultRoot = filepath.Join(env.home, "obsidian")

	t.Setenv("HOME", env.home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv(config.ConfigDirEnv, t.TempDir())
	t.Setenv("CORTEX_CLAUDE_CONFIG", env.configPath)
	t.Setenv("CORTEX_VAULT_SEARCH_ROOTS", env.vaultRoot)
	t.Chdir(t.TempDir())

	reset := func() {
		config.Init()
		cfg, configLoadErr, configFile = nil, nil, ""
		projectDir, quiet, verbosity = "", false, 0
		initForce, initSkipMCP, initVault = false, false, ""
		uninstallKeepMCP, uninstallYes = false, false
		upgradeCheck = false
		mcpSetupVault, mcpSetupNoInput = "", false
		doctorJSON, doctorQuiet, doctorVerbose = false, false, false
		backupListJSON, backupPruneKeep, backupRestoreYes = false, -1, false
		templatesJSON = false
	}
	reset()
	t.Cleanup(reset)

	projectDir = env.project
	return env
}

func (e *testEnv) makeVault(t *testing.T) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(e.vaultRoot, ".obsidian"), 0o755))
	return e.vaultRoot
}

func makeNamedVault(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".obsidian"), 0o755))
	return dir
}

func configuredVault(t *testing.T, configPath string) string {
	t.Helper()
	doc, err := mcpconfig.Read(configPath)
	require.NoError(t, err)
	entry, ok := doc.Entry(mcpconfig.DefaultServerName)
	require.True(t, ok)
	return entry.VaultPath()
}

func TestInitUpgradeUninstall(t *testing.T) {
	env := setupEnv(t)
	initSkipMCP = true

	var out bytes.Buffer
	require.NoError(t, runInit(initCmd, []string{env.project}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "cortex installed successfully!")

	data, err := os.ReadFile(filepath.Join(env.project, "CLAUDE.md"))
	require.NoError(t, err)
	v, _ := markers.ExtractVersion(string(data))
	assert.Equal(t, cmd.Version, v)
	assert.FileExists(t, filepath.Join(env.project, ".claude", "commands", "cortex-research.md"))

	err = runInit(initCmd, []string{env.project}, strings.NewReader(""), &out)
	var already *install.AlreadyInstalledError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	out.Reset()
	require.NoError(t, runUpgrade(upgradeCmd, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Already up to date")

	uninstallYes = true
	out.Reset()
	require.NoError(t, runUninstall(uninstallCmd, strings.NewReader(""), &out))
	assert.NoFileExists(t, filepath.Join(env.project, "CLAUDE.md"))
	assert.NoDirExists(t, filepath.Join(env.project, ".claude", "commands"))
}

func TestInit_ConfiguresDetectedVault(t *testing.T) {
	env := setupEnv(t)
	vaultDir := env.makeVault(t)

	var out bytes.Buffer
	require.NoError(t, runInit(initCmd, nil, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "MCP configured with vault: "+vaultDir)

	doc, err := mcpconfig.Read(env.configPath)
	require.NoError(t, err)
	entry, ok := doc.Entry(mcpconfig.DefaultServerName)
	require.True(t, ok)
	assert.Equal(t, vaultDir, entry.VaultPath())
}

func TestInit_MissingTarget(t *testing.T) {
	env := setupEnv(t)

	err := runInit(initCmd, []string{filepath.Join(env.project, "missing")}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, install.ErrTargetMissing)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestUninstall_DeclinedConfirmation(t *testing.T) {
	env := setupEnv(t)
	doc := markers.Create("body", cmd.Version)
	require.NoError(t, os.WriteFile(filepath.Join(env.project, "CLAUDE.md"), []byte(doc), 0o644))

	var out bytes.Buffer
	require.NoError(t, runUninstall(uninstallCmd, strings.NewReader("n\n"), &out))
	assert.Contains(t, out.String(), "Uninstall cancelled.")

	data, err := os.ReadFile(filepath.Join(env.project, "CLAUDE.md"))
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestUninstall_NotInstalled(t *testing.T) {
	setupEnv(t)
	uninstallYes = true

	err := runUninstall(uninstallCmd, strings.NewReader(""), &bytes.Buffer{})
	var notInstalled *install.NotInstalledError
	require.ErrorAs(t, err, &notInstalled)

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "Run: cortex init", exitErr.Suggestion)
}

func TestUpgrade_Check(t *testing.T) {
	env := setupEnv(t)
	doc := markers.Create("old", "0.0.1")
	require.NoError(t, os.WriteFile(filepath.Join(env.project, "CLAUDE.md"), []byte(doc), 0o644))
	upgradeCheck = true

	var out bytes.Buffer
	require.NoError(t, runUpgrade(upgradeCmd, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Upgrade available: v0.0.1")

	data, err := os.ReadFile(filepath.Join(env.project, "CLAUDE.md"))
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestMCPSetup(t *testing.T) {
	t.Run("invalid explicit vault", func(t *testing.T) {
		setupEnv(t)
		mcpSetupVault = t.TempDir()

		err := runMCPSetup(mcpSetupCmd, strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorIs(t, err, install.ErrInvalidVault)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})

	t.Run("malformed config is preserved", func(t *testing.T) {
		env := setupEnv(t)
		env.makeVault(t)
		require.NoError(t, os.WriteFile(env.configPath, []byte("{not json"), 0o600))

		err := runMCPSetup(mcpSetupCmd, strings.NewReader(""), &bytes.Buffer{})
		var exitErr *errors.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, mcpconfig.ParseHint, exitErr.Suggestion)

		data, err := os.ReadFile(env.configPath)
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data))
	})

	t.Run("quiet output still prompts for a vault", func(t *testing.T) {
		env := setupEnv(t)
		makeNamedVault(t, env.vaultRoot, "alpha")
		second := makeNamedVault(t, env.vaultRoot, "beta")
		quiet = true

		require.NoError(t, runMCPSetup(mcpSetupCmd, strings.NewReader("2\n"), &bytes.Buffer{}))
		assert.Equal(t, second, configuredVault(t, env.configPath))
	})

	t.Run("no-input takes the first candidate", func(t *testing.T) {
		env := setupEnv(t)
		first := makeNamedVault(t, env.vaultRoot, "alpha")
		makeNamedVault(t, env.vaultRoot, "beta")
		mcpSetupNoInput = true

		require.NoError(t, runMCPSetup(mcpSetupCmd, strings.NewReader(""), &bytes.Buffer{}))
		assert.Equal(t, first, configuredVault(t, env.configPath))
	})

	t.Run("typed vault path", func(t *testing.T) {
		env := setupEnv(t)
		typed := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(typed, ".obsidian"), 0o755))

		var out bytes.Buffer
		require.NoError(t, runMCPSetup(mcpSetupCmd, strings.NewReader(typed+"\n"), &out))

		doc, err := mcpconfig.Read(env.configPath)
		require.NoError(t, err)
		entry, _ := doc.Entry(mcpconfig.DefaultServerName)
		assert.Equal(t, typed, entry.VaultPath())
	})
}

func TestDoctor(t *testing.T) {
	t.Run("healthy install", func(t *testing.T) {
		env := setupEnv(t)
		env.makeVault(t)
		require.NoError(t, runInit(initCmd, nil, strings.NewReader(""), &bytes.Buffer{}))

		doctorJSON = true
		var out bytes.Buffer
		require.NoError(t, runDoctor(&out))

		var report struct {
			Results []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"results"`
			Summary doctor.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Len(t, report.Results, 5)
		assert.Equal(t, 5, report.Summary.Passed)
	})

	t.Run("empty project", func(t *testing.T) {
		setupEnv(t)

		var out bytes.Buffer
		err := runDoctor(&out)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
		assert.Contains(t, out.String(), "instructions: CLAUDE.md not found")
		assert.Contains(t, out.String(), "hint: Run: cortex init")
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		setupEnv(t)
		doctorQuiet = true

		var out bytes.Buffer
		err := runDoctor(&out)
		assert.Empty(t, out.String())

		var stderr bytes.Buffer
		PrintError(&stderr, err)
		assert.Empty(t, stderr.String())
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})

	t.Run("flags are exclusive", func(t *testing.T) {
		setupEnv(t)
		doctorJSON, doctorVerbose = true, true
		assert.Error(t, validateDoctorFlags(doctorCmd, nil))
	})
}

func TestBackupCommands(t *testing.T) {
	env := setupEnv(t)
	env.makeVault(t)
	original := `{"theme":"dark"}` + "\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(original), 0o600))

	require.NoError(t, runMCPSetup(mcpSetupCmd, strings.NewReader(""), &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, runBackupList(&out))
	assert.Contains(t, out.String(), ".claude.json.backup-")

	backupRestoreYes = true
	out.Reset()
	require.NoError(t, runBackupRestore("1", strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Restored")

	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	backupPruneKeep = 1
	out.Reset()
	require.NoError(t, runBackupPrune(&out))
	assert.Contains(t, out.String(), "Removed 1 backup(s)")

	err = runBackupRestore("7", strings.NewReader(""), &out)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestLooksLikePath(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"1", false},
		{"12", false},
		{"/tmp/x", true},
		{"./x", true},
		{"~/.claude.json.backup-2025-01-01T00-00-00-000Z", true},
		{".claude.json.backup-2025-01-01T00-00-00-000Z", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, looksLikePath(tt.arg), tt.arg)
	}
}

func TestTemplatesCommand(t *testing.T) {
	setupEnv(t)

	var out bytes.Buffer
	require.NoError(t, runTemplates(&out))
	assert.Contains(t, out.String(), "cortex-research")
	assert.Contains(t, out.String(), "cortex-agent")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.Contains(t, out.String(), "cortex version "+cmd.Version)
}

func TestPrintError(t *testing.T) {
	var out bytes.Buffer
	PrintError(&out, errors.NewUserError(errors.New("boom"), "Run: cortex doctor"))
	assert.Contains(t, out.String(), "boom")
	assert.Contains(t, out.String(), "Run: cortex doctor")
}

func TestConfigCommands(t *testing.T) {
	t.Run("list shows defaults", func(t *testing.T) {
		env := setupEnv(t)

		var out bytes.Buffer
		require.NoError(t, runConfigList(&out))
		assert.Contains(t, out.String(), "# defaults (no config file)")
		assert.Contains(t, out.String(), "claude_config: "+env.configPath)
	})

	t.Run("get list value", func(t *testing.T) {
		env := setupEnv(t)

		var out bytes.Buffer
		require.NoError(t, runConfigGet("vault.search_roots", &out))
		assert.Equal(t, env.vaultRoot+"\n", out.String())

		err := runConfigGet("no.such.key", &out)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})

	t.Run("path without file", func(t *testing.T) {
		setupEnv(t)

		var out bytes.Buffer
		require.NoError(t, runConfigPath(&out))
		assert.Equal(t, config.DefaultPath()+"\n", out.String())
	})

	t.Run("edit creates and validates file", func(t *testing.T) {
		setupEnv(t)
		dir := t.TempDir()
		script := filepath.Join(dir, "fake-editor.sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'backup:\\n  keep: 3\\n' > \"$1\"\n"), 0o755))
		t.Setenv("EDITOR", script)

		var out bytes.Buffer
		require.NoError(t, runConfigEdit(t.Context(), strings.NewReader(""), &out, &out))
		assert.Contains(t, out.String(), "is valid")
		assert.FileExists(t, config.DefaultPath())
	})

	t.Run("edit reports invalid result", func(t *testing.T) {
		setupEnv(t)
		dir := t.TempDir()
		script := filepath.Join(dir, "fake-editor.sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'backup:\\n  keep: -1\\n' > \"$1\"\n"), 0o755))
		t.Setenv("EDITOR", script)

		err := runConfigEdit(t.Context(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})
}
