package install

import (
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/templates"
)

// UninstallOptions controls Uninstall.
type UninstallOptions struct {
	// KeepMCP leaves the MCP entry in the config document.
	KeepMCP bool
	// Yes answers every confirmation.
	Yes bool
}

// Uninstall removes the managed section, the cortex template files and,
// unless opts.KeepMCP, the MCP entry. Declining the first confirmation
// returns ErrCancelled with nothing changed.
func (i *Installer) Uninstall(opts UninstallOptions) (*Report, error) {
	r := &Report{Operation: "uninstall", Version: i.version}

	doc, info, err := i.installedSection()
	if err != nil {
		return r, err
	}
	r.InstalledVersion = info.Version

	if !opts.Yes {
		ok, err := i.prompter.Confirm("Are you sure you want to uninstall cortex?")
		if err != nil {
			return r, errors.Wrap(err, "reading confirmation")
		}
		if !ok {
			r.Cancelled = true
			return r, ErrCancelled
		}
	}

	i.removeInstructions(r, doc)

	for _, kind := range templates.Kinds {
		removed, err := templates.Remove(i.kindDir(kind))
		switch {
		case err != nil:
			r.fail(stepName(kind), "Failed to remove "+string(kind), err)
		case len(removed) == 0:
			r.ok(stepName(kind), "No cortex "+string(kind)+" found")
		default:
			r.ok(stepName(kind), "Removed "+string(kind)+": "+joinNames(removed))
		}
	}

	if !opts.KeepMCP {
		i.removeMCP(r, opts.Yes)
	}
	return r, nil
}

func (i *Installer) removeInstructions(r *Report, doc string) {
	next, err := markers.Remove(doc)
	if err != nil {
		r.fail(StepInstructions, "Failed to update CLAUDE.md", err)
		return
	}
	if markers.IsEmpty(next) {
		if err := i.removeInstructionsFile(); err != nil {
			r.fail(StepInstructions, "Failed to remove CLAUDE.md", err)
			return
		}
		r.ok(StepInstructions, "Removed CLAUDE.md (was cortex-only)")
		return
	}
	if err := i.writeInstructions(next); err != nil {
		r.fail(StepInstructions, "Failed to update CLAUDE.md", err)
		return
	}
	r.ok(StepInstructions, "Removed cortex section from CLAUDE.md")
}

func (i *Installer) removeMCP(r *Report, yes bool) {
	has, err := i.store.Has(i.mcp.Name)
	if err != nil {
		var parseErr *mcpconfig.ConfigParseError
		if errors.As(err, &parseErr) {
			r.warn(StepMCP, "Skipping MCP cleanup: "+parseErr.Path+" contains invalid JSON", err)
			return
		}
		r.fail(StepMCP, "Failed to read MCP configuration", err)
		return
	}
	if !has {
		return
	}

	if !yes {
		ok, err := i.prompter.Confirm("Remove the " + i.mcp.Name + " MCP server from " + i.store.Path + "?")
		if err != nil {
			r.fail(StepMCP, "Failed to read confirmation", err)
			return
		}
		if !ok {
			r.skip(StepMCP, "Kept MCP configuration")
			return
		}
	}

	removed, backupPath, err := i.store.Remove(i.mcp.Name)
	if err != nil {
		r.fail(StepMCP, "Failed to remove MCP configuration", err)
		return
	}
	if !removed {
		r.ok(StepMCP, "No MCP configuration to remove")
		return
	}
	i.logger.Info("mcp entry removed", "server", i.mcp.Name, "backup", backupPath)
	r.add(Step{Name: StepMCP, Status: StatusOK, Message: "Removed " + i.mcp.Name + " MCP configuration", Detail: backupDetail(backupPath)})
}

func backupDetail(path string) string {
	if path == "" {
		return ""
	}
	return "Backup: " + path
}
