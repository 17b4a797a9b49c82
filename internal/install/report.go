package install

import "github.com/fatih/color"

// Status is the outcome of one step.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol returns the status glyph, coloured when colour output is enabled.
func (s Status) Symbol() string {
	switch s {
	case StatusOK:
		return color.GreenString("✓")
	case StatusWarning:
		return color.YellowString("⚠")
	case StatusFailed:
		return color.RedString("✗")
	default:
		return color.HiBlackString("-")
	}
}

// Step is the reported outcome of one independent unit of work.
type Step struct {
	Name    string
	Status  Status
	Message string
	// Detail is an optional secondary line, such as a backup path.
	Detail string
	Err    error
}

// Report collects the steps of one operation.
type Report struct {
	Operation string
	Steps     []Step

	// InstalledVersion is the version found in CLAUDE.md before the operation.
	InstalledVersion string
	// Version is the version the operation installs.
	Version string
	// UpToDate is set by Upgrade when nothing needed to change.
	UpToDate bool
	// UpgradeAvailable is set by Upgrade in check mode.
	UpgradeAvailable bool
	// Cancelled is set when the user declined the confirmation.
	Cancelled bool
}

func (r *Report) add(s Step) {
	r.Steps = append(r.Steps, s)
}

func (r *Report) ok(name, msg string) {
	r.add(Step{Name: name, Status: StatusOK, Message: msg})
}

func (r *Report) warn(name, msg string, err error) {
	r.add(Step{Name: name, Status: StatusWarning, Message: msg, Err: err})
}

func (r *Report) fail(name, msg string, err error) {
	r.add(Step{Name: name, Status: StatusFailed, Message: msg, Err: err})
}

func (r *Report) skip(name, msg string) {
	r.add(Step{Name: name, Status: StatusSkipped, Message: msg})
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Step returns the first step named name.
func (r *Report) Step(name string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}
