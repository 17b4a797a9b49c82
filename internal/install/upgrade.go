package install

import (
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/markers"
	"github.com/aoatridge/cortex/internal/version"
)

// UpgradeOptions controls Upgrade.
type UpgradeOptions struct {
	// Check reports whether an upgrade is available without writing.
	Check bool
}

// Upgrade replaces the managed section with the current templates and
// re-copies the template files. Only an identical version is a no-op; a
// section stamped by a newer binary is downgraded with a warning step.
func (i *Installer) Upgrade(opts UpgradeOptions) (*Report, error) {
	r := &Report{Operation: "upgrade", Version: i.version}

	doc, info, err := i.installedSection()
	if err != nil {
		return r, err
	}
	r.InstalledVersion = info.Version

	rel, cmpErr := version.Compare(info.Version, i.version)
	if cmpErr == nil && rel == version.Same {
		r.UpToDate = true
		return r, nil
	}
	if opts.Check {
		r.UpgradeAvailable = true
		return r, nil
	}

	switch {
	case cmpErr != nil:
		r.warn(StepVersion, "Installed version "+info.Version+" is not a semantic version; replacing it", cmpErr)
	case rel == version.Newer:
		r.warn(StepVersion, "Installed version "+info.Version+" is newer than "+i.version+"; downgrading", nil)
	}

	body, err := i.templates.Instructions()
	if err != nil {
		return r, err
	}
	next, err := markers.Replace(doc, body, i.version)
	if err != nil {
		return r, err
	}
	if err := i.writeInstructions(next); err != nil {
		return r, errors.Wrap(err, "writing CLAUDE.md")
	}
	i.logger.Info("instructions upgraded", "from", info.Version, "to", i.version)
	r.ok(StepInstructions, "Updated CLAUDE.md")

	i.copyTemplates(r, "update")
	return r, nil
}
