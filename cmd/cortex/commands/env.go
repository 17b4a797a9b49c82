package commands

import (
	"context"
	"io"
	"os"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/cli/prompt"
	"github.com/aoatridge/cortex/internal/config"
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/install"
	"github.com/aoatridge/cortex/internal/logging"
	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/paths"
	"github.com/aoatridge/cortex/internal/templates"
)

// currentConfig returns the loaded config, loading defaults when the
// command runs without cobra's initializers (as in tests).
func currentConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	config.Init()
	loaded, err := config.Load(configFile)
	if err != nil {
		return nil, errors.NewUserError(err, "Fix it with: cortex config edit")
	}
	cfg = loaded
	return cfg, nil
}

// resolveProject returns the project from an explicit argument, the
// --project flag, or the working directory, in that order.
func resolveProject(arg string) (paths.Project, error) {
	dir := arg
	if dir == "" {
		dir = projectDir
	}
	return paths.ResolveProject(dir)
}

func templateSource(c *config.Config) (*templates.Source, error) {
	if c.TemplatesDir == "" {
		return templates.Embedded(), nil
	}
	src, err := templates.FromDir(c.TemplatesDir)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return src, nil
}

func configStore(c *config.Config) *mcpconfig.Store {
	return mcpconfig.NewStore(c.ClaudeConfig, c.Backup.Keep)
}

// promptFor returns the interactive prompter on the real stdin and a line
// prompter over r and w otherwise.
func promptFor(r io.Reader, w io.Writer) prompt.Prompter {
	if f, ok := r.(*os.File); ok && f == os.Stdin {
		return prompt.Default()
	}
	return prompt.NewTerminalWithIO(r, w)
}

// newInstaller wires an Installer from the loaded config.
func newInstaller(ctx context.Context, project paths.Project, r io.Reader, w io.Writer) (*install.Installer, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, err
	}
	src, err := templateSource(c)
	if err != nil {
		return nil, err
	}
	return install.New(install.Params{
		Project:   project,
		Templates: src,
		Store:     configStore(c),
		Version:   cmd.Version,
		MCP: install.MCPServer{
			Name:    c.MCP.ServerName,
			Command: c.MCP.Command,
			Args:    c.MCP.Args,
		},
		VaultRoots: c.Vault.SearchRoots,
		Prompter:   promptFor(r, w),
		Logger:     logging.FromContext(ctx),
	}), nil
}

// operationError maps install errors to exit errors with suggestions.
func operationError(err error) error {
	var already *install.AlreadyInstalledError
	var notInstalled *install.NotInstalledError
	var parseErr *mcpconfig.ConfigParseError
	switch {
	case errors.As(err, &already):
		return errors.NewUserError(err, "Use --force to reinstall or run: cortex upgrade")
	case errors.As(err, &notInstalled):
		return errors.NewUserError(err, "Run: cortex init")
	case errors.As(err, &parseErr):
		return errors.NewUserError(err, mcpconfig.ParseHint)
	case errors.Is(err, install.ErrTargetMissing), errors.Is(err, install.ErrInvalidVault):
		return errors.NewUserError(err, "")
	case errors.Is(err, markers.ErrCorruptSection):
		return errors.NewUserError(err, "Remove the duplicate or dangling CORTEX markers from CLAUDE.md")
	default:
		return errors.NewSystemError(err, "")
	}
}
