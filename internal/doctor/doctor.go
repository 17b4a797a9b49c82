package doctor

import (
	"fmt"
	"time"
)

// now is the report clock, replaceable in tests.
var now = func() time.Time { return time.Now().UTC() }

// Check inspects one part of an install without modifying it.
type Check interface {
	Name() string
	Category() string
	Run() *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	target Target
	checks []Check
}

// NewRunner returns a runner with no checks for the given target.
func NewRunner(t Target) *Runner {
	return &Runner{target: t}
}

// AddCheck appends c to the run order.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in run order.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes every check. A check that returns nil is reported as an
// error; a result without a name or category takes them from its check.
func (r *Runner) Run() *Report {
	report := &Report{
		Version:    r.target.Version,
		Project:    r.target.Project.Root,
		ConfigPath: r.target.ConfigPath,
		Timestamp:  now(),
		Results:    make([]*CheckResult, 0, len(r.checks)),
	}

	for _, c := range r.checks {
		result := c.Run()
		if result == nil {
			result = &CheckResult{
				Status:  SeverityError,
				Message: fmt.Sprintf("check %s returned no result", c.Name()),
			}
		}
		if result.Name == "" {
			result.Name = c.Name()
		}
		if result.Category == "" {
			result.Category = c.Category()
		}
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

// Report is the output of cortex doctor, printed as text or with --json.
type Report struct {
	Version    string         `json:"version,omitempty"`
	Project    string         `json:"project,omitempty"`
	ConfigPath string         `json:"config_path,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Results    []*CheckResult `json:"results"`
	Summary    Summary        `json:"summary"`
}

// Status is the worst severity in the report.
func (r *Report) Status() Severity {
	return r.Summary.Worst()
}
