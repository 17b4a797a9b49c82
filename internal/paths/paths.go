package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names cortex's own config directory.
const AppName = "cortex"

// Project layout, relative to the project root.
const (
	InstructionsFile = "CLAUDE.md"
	ClaudeDir        = ".claude"
	CommandsDir      = "commands"
	AgentsDir        = "agents"
)

// ClaudeConfigFile is the Claude user config document, relative to home.
const ClaudeConfigFile = ".claude.json"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrNotDirectory indicates a project path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding cortex's optional config file.
// Returns: <ConfigHome>/cortex/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ClaudeConfigPath returns the Claude user config document under home.
func ClaudeConfigPath(home string) string {
	return filepath.Join(home, ClaudeConfigFile)
}

// ExpandHome replaces a leading "~" or "~/" with home.
func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"), strings.HasPrefix(path, `~\`):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}

// Project is a directory cortex installs into.
type Project struct {
	Root string
}

// ResolveProject returns the project rooted at dir, or at the working
// directory when dir is empty. The path is made absolute but is not required
// to exist.
func ResolveProject(dir string) (Project, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Project{}, errors.Wrap(err, "resolving working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(ExpandHome(dir, Home()))
	if err != nil {
		return Project{}, errors.Wrapf(err, "resolving %s", dir)
	}
	return Project{Root: abs}, nil
}

// Exists reports whether the project root is an existing directory. A root
// that exists as a file yields ErrNotDirectory.
func (p Project) Exists() (bool, error) {
	info, err := os.Stat(p.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %s", p.Root)
	}
	if !info.IsDir() {
		return false, errors.Wrap(ErrNotDirectory, p.Root)
	}
	return true, nil
}

// InstructionsPath returns <root>/CLAUDE.md.
func (p Project) InstructionsPath() string {
	return filepath.Join(p.Root, InstructionsFile)
}

// CommandsDir returns <root>/.claude/commands.
func (p Project) CommandsDir() string {
	return filepath.Join(p.Root, ClaudeDir, CommandsDir)
}

// AgentsDir returns <root>/.claude/agents.
func (p Project) AgentsDir() string {
	return filepath.Join(p.Root, ClaudeDir, AgentsDir)
}
