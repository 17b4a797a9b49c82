package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/paths"
	"github.com/aoatridge/cortex/internal/templates"
	"github.com/aoatridge/cortex/internal/vault"
	"github.com/aoatridge/cortex/internal/version"
	"github.com/aoatridge/cortex/pkg/fileutil"
)

// Target names what the checks inspect.
type Target struct {
	Project    paths.Project
	Templates  *templates.Source
	ConfigPath string
	ServerName string
	Version    string
}

// NewDefaultRunner returns a runner with the standard checks in report order.
func NewDefaultRunner(t Target) *Runner {
	r := NewRunner(t)
	r.AddCheck(&InstructionsCheck{Project: t.Project, Version: t.Version})
	for _, kind := range templates.Kinds {
		r.AddCheck(&TemplatesCheck{Kind: kind, Project: t.Project, Source: t.Templates})
	}
	r.AddCheck(&MCPConfigCheck{Path: t.ConfigPath, ServerName: t.ServerName})
	r.AddCheck(&VaultCheck{Path: t.ConfigPath, ServerName: t.ServerName})
	return r
}

// InstructionsCheck verifies the managed section in CLAUDE.md.
type InstructionsCheck struct {
	Project paths.Project
	Version string
}

var _ Check = (*InstructionsCheck)(nil)

// Name returns the unique identifier for this check.
func (c *InstructionsCheck) Name() string { return "instructions" }

// Category returns the grouping for this check.
func (c *InstructionsCheck) Category() string { return "project" }

// Run executes the check.
func (c *InstructionsCheck) Run() *CheckResult {
	path := c.Project.InstructionsPath()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": path},
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		result.Status = SeverityError
		if errors.Is(err, fs.ErrNotExist) {
			result.Message = "CLAUDE.md not found"
		} else {
			result.Message = fmt.Sprintf("cannot read CLAUDE.md: %v", err)
		}
		result.FixHint = "Run: cortex init"
		return result
	}
	doc := string(data)

	if err := markers.Validate(doc); err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Remove the duplicate or dangling CORTEX markers from CLAUDE.md"
		return result
	}

	info, ok := markers.Info(doc)
	if !ok {
		result.Status = SeverityError
		result.Message = "CLAUDE.md has no cortex section"
		result.FixHint = "Run: cortex init"
		return result
	}
	result.Details["version"] = info.Version
	result.Details["installed"] = info.InstalledAt

	rel, err := version.Compare(info.Version, c.Version)
	switch {
	case err != nil:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot compare installed version %q with %s", info.Version, c.Version)
		result.FixHint = "Run: cortex upgrade"
	case rel == version.Older:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("installed version %s is older than %s", info.Version, c.Version)
		result.FixHint = "Run: cortex upgrade"
	case rel == version.Newer:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("installed version %s is newer than this binary (%s)", info.Version, c.Version)
		result.FixHint = "Update cortex, or run cortex upgrade to reinstall this version"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("cortex section v%s installed %s", info.Version, info.InstalledAt)
	}
	return result
}

// TemplatesCheck compares one installed template collection with the source.
type TemplatesCheck struct {
	Kind    templates.Kind
	Project paths.Project
	Source  *templates.Source
}

var _ Check = (*TemplatesCheck)(nil)

// Name returns the unique identifier for this check.
func (c *TemplatesCheck) Name() string { return string(c.Kind) }

// Category returns the grouping for this check.
func (c *TemplatesCheck) Category() string { return "project" }

func (c *TemplatesCheck) dir() string {
	if c.Kind == templates.Agents {
		return c.Project.AgentsDir()
	}
	return c.Project.CommandsDir()
}

// Run executes the check.
func (c *TemplatesCheck) Run() *CheckResult {
	dir := c.dir()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": dir},
	}

	installed, err := templates.Installed(dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}
	result.Details["installed"] = len(installed)

	if len(installed) == 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("no cortex %s installed", c.Kind)
		result.FixHint = "Run: cortex upgrade"
		return result
	}

	available, err := c.Source.Available(c.Kind)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	missing, extra := templates.Missing(available, installed)
	switch {
	case len(missing) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("missing %s: %s", c.Kind, strings.Join(missing, ", "))
		result.Details["missing"] = missing
		result.FixHint = "Run: cortex upgrade"
	case len(extra) > 0:
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%d %s installed, plus unknown %s", len(installed), c.Kind, strings.Join(extra, ", "))
		result.Details["extra"] = extra
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d %s installed", len(installed), c.Kind)
	}
	return result
}

// maxSecureFilePerm is the loosest mode accepted for the config document.
const maxSecureFilePerm os.FileMode = 0o644

// MCPConfigCheck verifies the MCP server entry in the Claude config document.
type MCPConfigCheck struct {
	Path       string
	ServerName string
}

var _ Check = (*MCPConfigCheck)(nil)

// Name returns the unique identifier for this check.
func (c *MCPConfigCheck) Name() string { return "mcp-config" }

// Category returns the grouping for this check.
func (c *MCPConfigCheck) Category() string { return "mcp" }

// Run executes the check.
func (c *MCPConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path, "server": c.ServerName},
	}

	doc, err := mcpconfig.Read(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = mcpconfig.ParseHint
		return result
	}

	entry, ok := doc.Entry(c.ServerName)
	if !ok {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("MCP server %q is not configured", c.ServerName)
		result.FixHint = "Run: cortex mcp-setup"
		return result
	}
	result.Details["vault"] = entry.VaultPath()

	if info, err := os.Stat(c.Path); err == nil && info.Mode().Perm()&^maxSecureFilePerm != 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("MCP server %q configured, but %s has loose permissions (%04o)", c.ServerName, c.Path, info.Mode().Perm())
		result.FixHint = "chmod 600 " + c.Path
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("MCP server %q configured with vault %s", c.ServerName, entry.VaultPath())
	return result
}

// VaultCheck verifies that the configured vault path is an Obsidian vault.
type VaultCheck struct {
	Path       string
	ServerName string
}

var _ Check = (*VaultCheck)(nil)

// Name returns the unique identifier for this check.
func (c *VaultCheck) Name() string { return "vault" }

// Category returns the grouping for this check.
func (c *VaultCheck) Category() string { return "mcp" }

// Run executes the check. Without a readable entry there is nothing to
// verify and the result is informational; mcp-config reports the cause.
func (c *VaultCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	doc, err := mcpconfig.Read(c.Path)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: config document unreadable"
		return result
	}
	entry, ok := doc.Entry(c.ServerName)
	if !ok || entry.VaultPath() == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no vault configured"
		return result
	}

	vaultPath := entry.VaultPath()
	result.Details = map[string]any{"path": vaultPath}
	if !vault.IsValid(vaultPath) {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s is not an Obsidian vault (no %s directory)", vaultPath, vault.MarkerDir)
		result.FixHint = fmt.Sprintf("Point mcpServers.%s at a vault directory in %s", c.ServerName, c.Path)
		return result
	}

	result.Status = SeverityPass
	result.Message = "vault " + vaultPath + " is valid"
	return result
}
