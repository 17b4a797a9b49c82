package install

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/aoatridge/cortex/internal/cli/prompt"
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/logging"
	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/paths"
	"github.com/aoatridge/cortex/internal/templates"
	"github.com/aoatridge/cortex/pkg/fileutil"
)

// instructionsPerm is the mode of a newly created CLAUDE.md.
const instructionsPerm = 0o644

// Step names shared by the operations.
const (
	StepInstructions = "instructions"
	StepCommands     = "commands"
	StepAgents       = "agents"
	StepMCP          = "mcp"
	StepVersion      = "version"
)

// MCPServer describes the entry registered in the config document.
type MCPServer struct {
	Name    string
	Command string
	// Args precede the vault path.
	Args []string
}

// DefaultMCPServer returns the obsidian server settings.
func DefaultMCPServer() MCPServer {
	return MCPServer{
		Name:    mcpconfig.DefaultServerName,
		Command: mcpconfig.DefaultCommand,
		Args:    append([]string(nil), mcpconfig.DefaultArgs...),
	}
}

// Params holds everything an Installer needs. Zero values get defaults in New.
type Params struct {
	Project    paths.Project
	Templates  *templates.Source
	Store      *mcpconfig.Store
	Version    string
	MCP        MCPServer
	VaultRoots []string
	Prompter   prompt.Prompter
	Logger     *slog.Logger
}

// Installer runs cortex operations against one project.
type Installer struct {
	project    paths.Project
	templates  *templates.Source
	store      *mcpconfig.Store
	version    string
	mcp        MCPServer
	vaultRoots []string
	prompter   prompt.Prompter
	logger     *slog.Logger
}

// New creates an Installer. Missing templates default to the embedded
// payload, a missing prompter declines every question and a missing logger
// discards output.
func New(p Params) *Installer {
	i := &Installer{
		project:    p.Project,
		templates:  p.Templates,
		store:      p.Store,
		version:    p.Version,
		mcp:        p.MCP,
		vaultRoots: p.VaultRoots,
		prompter:   p.Prompter,
		logger:     p.Logger,
	}
	if i.templates == nil {
		i.templates = templates.Embedded()
	}
	if i.store == nil {
		i.store = mcpconfig.NewStore(paths.ClaudeConfigPath(paths.Home()), 0)
	}
	if i.mcp.Name == "" {
		i.mcp = DefaultMCPServer()
	}
	if i.prompter == nil {
		i.prompter = prompt.Scripted{}
	}
	if i.logger == nil {
		i.logger = logging.NewDiscard()
	}
	return i
}

// Version returns the version this installer stamps.
func (i *Installer) Version() string {
	return i.version
}

// readInstructions returns CLAUDE.md and whether it exists.
func (i *Installer) readInstructions() (string, bool, error) {
	data, err := fileutil.ReadFileWithLimit(i.project.InstructionsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// installedSection reads CLAUDE.md and requires a valid managed section.
func (i *Installer) installedSection() (string, markers.SectionInfo, error) {
	doc, exists, err := i.readInstructions()
	if err != nil {
		return "", markers.SectionInfo{}, err
	}
	if !exists || !markers.HasSection(doc) {
		return "", markers.SectionInfo{}, &NotInstalledError{Path: i.project.Root}
	}
	if err := markers.Validate(doc); err != nil {
		return "", markers.SectionInfo{}, errors.Wrapf(err, "%s", i.project.InstructionsPath())
	}
	info, _ := markers.Info(doc)
	return doc, info, nil
}

func (i *Installer) writeInstructions(doc string) error {
	return fileutil.AtomicReplaceFile(i.project.InstructionsPath(), []byte(doc), instructionsPerm)
}

func (i *Installer) kindDir(kind templates.Kind) string {
	if kind == templates.Agents {
		return i.project.AgentsDir()
	}
	return i.project.CommandsDir()
}

func stepName(kind templates.Kind) string {
	if kind == templates.Agents {
		return StepAgents
	}
	return StepCommands
}

// copyTemplates copies every template collection, one step per collection.
func (i *Installer) copyTemplates(r *Report, verb string) {
	for _, kind := range templates.Kinds {
		copied, err := i.templates.Copy(kind, i.kindDir(kind))
		if err != nil {
			i.logger.Debug("copying templates failed", "kind", kind, "error", err)
			r.fail(stepName(kind), "Failed to "+verb+" "+string(kind), err)
			continue
		}
		r.ok(stepName(kind), verbPast(verb)+" "+string(kind)+": "+joinNames(copied))
	}
}

func verbPast(verb string) string {
	switch verb {
	case "install":
		return "Installed"
	case "update":
		return "Updated"
	default:
		return verb
	}
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// removeInstructionsFile deletes CLAUDE.md. When CLAUDE.md is a symlink the
// emptied target goes too, so no dangling link is left behind.
func (i *Installer) removeInstructionsFile() error {
	path := i.project.InstructionsPath()
	target, err := fileutil.ResolveLink(path)
	if err != nil {
		return err
	}
	for _, p := range []string{target, path} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", p)
		}
	}
	return nil
}
