// Package cmd contains build-time variables injected via ldflags.
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build. It is stamped into the
	// managed section of every CLAUDE.md cortex writes, so it must stay a
	// valid semantic version.
	Version = "0.1.0"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
