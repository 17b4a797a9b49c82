// Package doctor provides read-only diagnostic checks for a cortex install.
package doctor

import "github.com/cockroachdb/errors"

// Severity orders check outcomes from healthy to broken.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < SeverityPass || s > SeverityError {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText writes the severity by name, so JSON reports read "warning"
// rather than 2.
func (s Severity) MarshalText() ([]byte, error) {
	if s.String() == "unknown" {
		return nil, errors.Newf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`
	// Details holds check-specific context such as paths, versions and
	// the vault in use. Shown with doctor --verbose.
	Details map[string]any `json:"details,omitempty"`
	// FixHint is the command or edit that resolves a problem.
	FixHint string `json:"fix_hint,omitempty"`
}

// Problem reports whether the result is a warning or an error.
func (r *CheckResult) Problem() bool {
	return r.Status >= SeverityWarning
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	default:
		s.Errors++
	}
}

// Worst returns the most severe status counted.
func (s Summary) Worst() Severity {
	switch {
	case s.Errors > 0:
		return SeverityError
	case s.Warnings > 0:
		return SeverityWarning
	case s.Info > 0:
		return SeverityInfo
	default:
		return SeverityPass
	}
}
