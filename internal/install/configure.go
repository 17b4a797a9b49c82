package install

import (
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/vault"
)

// ConfigureOptions controls Configure.
type ConfigureOptions struct {
	// Vault is an explicit vault path. It must be a valid vault.
	Vault string
	// Quiet never prompts: several candidates resolve to the first, none
	// skips the step.
	Quiet bool
}

// Configure registers the MCP server entry. An existing entry is reported
// and left untouched. The vault is resolved from, in order: opts.Vault, a
// single detected candidate, a choice among several candidates, or a typed
// path. An empty answer skips the step.
//
// A malformed config document yields *mcpconfig.ConfigParseError and an
// invalid explicit or typed vault yields ErrInvalidVault.
func (i *Installer) Configure(opts ConfigureOptions) (*Report, error) {
	r := &Report{Operation: "configure", Version: i.version}

	existing, ok, err := i.store.Get(i.mcp.Name)
	if err != nil {
		return r, err
	}
	if ok {
		r.add(Step{
			Name:    StepMCP,
			Status:  StatusOK,
			Message: "MCP already configured (vault: " + existingVault(existing) + ")",
			Detail:  "Config: " + i.store.Path,
		})
		return r, nil
	}

	vaultPath, err := i.resolveVault(opts)
	if err != nil {
		return r, err
	}
	if vaultPath == "" {
		r.skip(StepMCP, "Skipped MCP configuration; run cortex mcp-setup --vault /path/to/vault later")
		return r, nil
	}

	entry := mcpconfig.NewEntry(i.mcp.Command, i.mcp.Args, vaultPath)
	backupPath, err := i.store.Configure(i.mcp.Name, entry)
	if err != nil {
		return r, err
	}
	i.logger.Info("mcp entry configured", "server", i.mcp.Name, "vault", vaultPath, "backup", backupPath)

	r.add(Step{
		Name:    StepMCP,
		Status:  StatusOK,
		Message: "MCP configured with vault: " + vaultPath,
		Detail:  backupDetail(backupPath),
	})
	return r, nil
}

func existingVault(e mcpconfig.Entry) string {
	if v := e.VaultPath(); v != "" {
		return v
	}
	return "unknown"
}

// resolveVault returns the vault to register, or "" when the user skipped.
func (i *Installer) resolveVault(opts ConfigureOptions) (string, error) {
	if opts.Vault != "" {
		return validVault(opts.Vault)
	}

	candidates := vault.DetectCandidates(i.vaultRoots)
	i.logger.Debug("vault candidates", "roots", i.vaultRoots, "found", candidates)

	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) > 1 && opts.Quiet:
		return candidates[0], nil
	case len(candidates) > 1:
		choice, err := i.prompter.Choose("Select an Obsidian vault", candidates)
		if err != nil {
			return "", errors.Wrap(err, "choosing vault")
		}
		if choice.Skipped() {
			return "", nil
		}
		if choice.Index >= 0 {
			return candidates[choice.Index], nil
		}
		return validVault(choice.Value)
	case opts.Quiet:
		return "", nil
	}

	answer, err := i.prompter.Ask("No Obsidian vaults detected. Enter vault path (or leave empty to skip)")
	if err != nil {
		return "", errors.Wrap(err, "reading vault path")
	}
	if answer == "" {
		return "", nil
	}
	return validVault(answer)
}

func validVault(p string) (string, error) {
	abs, err := vault.ExpandPath(p)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", p)
	}
	if !vault.IsValid(abs) {
		return "", errors.Wrapf(ErrInvalidVault, "%s", abs)
	}
	return abs, nil
}
