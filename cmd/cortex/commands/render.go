package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/install"
)

// printHeader writes a bold title line followed by key/value lines.
func printHeader(w io.Writer, title string, kv ...string) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "\n%s\n\n", color.New(color.Bold).Sprint(title))
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(w, "  %s: %s\n", kv[i], color.CyanString(kv[i+1]))
	}
	if len(kv) > 0 {
		fmt.Fprintln(w)
	}
}

// printSteps writes one line per step. Failures are always written, other
// steps only without --quiet.
func printSteps(w io.Writer, report *install.Report) {
	for _, s := range report.Steps {
		if quiet && s.Status != install.StatusFailed {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", s.Status.Symbol(), s.Message)
		if s.Err != nil && s.Status != install.StatusOK {
			fmt.Fprintf(w, "    %s\n", color.RedString(s.Err.Error()))
		}
		if s.Detail != "" {
			fmt.Fprintf(w, "    %s\n", color.HiBlackString(s.Detail))
		}
	}
}

// printDone writes a closing success line.
func printDone(w io.Writer, msg string) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "\n%s\n\n", color.New(color.FgGreen, color.Bold).Sprint(msg))
}

// reportError turns failed steps into an exit error.
func reportError(report *install.Report) error {
	if !report.Failed() {
		return nil
	}
	return errors.NewUserError(errors.Newf("%s finished with failed steps", report.Operation), "Run: cortex doctor")
}
