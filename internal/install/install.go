package install

import (
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/markers"
)

// InstallOptions controls Install.
type InstallOptions struct {
	// Force replaces an existing managed section.
	Force bool
	// SkipMCP leaves the config document alone.
	SkipMCP bool
	// Vault is an explicit vault path for the MCP entry.
	Vault string
}

// Install adds the managed section to CLAUDE.md, copies the templates and,
// unless opts.SkipMCP, registers the MCP server without prompting.
//
// A missing project directory, a corrupt section, or an existing section
// without opts.Force abort before any write. Template and MCP failures are
// reported as failed steps.
func (i *Installer) Install(opts InstallOptions) (*Report, error) {
	r := &Report{Operation: "install", Version: i.version}

	exists, err := i.project.Exists()
	if err != nil {
		return r, err
	}
	if !exists {
		return r, errors.Wrapf(ErrTargetMissing, "%s", i.project.Root)
	}

	doc, present, err := i.readInstructions()
	if err != nil {
		return r, err
	}
	if present {
		if err := markers.Validate(doc); err != nil {
			return r, errors.Wrapf(err, "%s", i.project.InstructionsPath())
		}
	}

	body, err := i.templates.Instructions()
	if err != nil {
		return r, err
	}

	var next, msg string
	switch {
	case !present:
		next = markers.Create(body, i.version)
		msg = "Created CLAUDE.md"
	case markers.HasSection(doc):
		installed, _ := markers.ExtractVersion(doc)
		r.InstalledVersion = installed
		if !opts.Force {
			return r, &AlreadyInstalledError{Version: installed}
		}
		if next, err = markers.Replace(doc, body, i.version); err != nil {
			return r, err
		}
		msg = "Updated CLAUDE.md (replaced existing cortex section v" + installed + ")"
	default:
		next = markers.Append(doc, body, i.version)
		msg = "Updated CLAUDE.md (appended cortex section)"
	}

	if err := i.writeInstructions(next); err != nil {
		return r, errors.Wrap(err, "writing CLAUDE.md")
	}
	i.logger.Info("instructions written", "path", i.project.InstructionsPath(), "version", i.version)
	r.ok(StepInstructions, msg)

	i.copyTemplates(r, "install")

	if opts.SkipMCP {
		r.skip(StepMCP, "MCP configuration skipped")
		return r, nil
	}

	mcp, err := i.Configure(ConfigureOptions{Vault: opts.Vault, Quiet: true})
	if err != nil {
		r.fail(StepMCP, "Failed to configure MCP", err)
		return r, nil
	}
	r.Steps = append(r.Steps, mcp.Steps...)
	return r, nil
}
