package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/doctor"
	"github.com/aoatridge/cortex/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the cortex installation",
	Long: `Run read-only checks on the project and the MCP configuration:

  instructions  CLAUDE.md has one cortex section at the current version
  commands      cortex slash commands are installed
  agents        cortex agents are installed
  mcp-config    ~/.claude.json parses and registers the MCP server
  vault         the registered vault is an Obsidian vault

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Errors or warnings present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE: func(c *cobra.Command, _ []string) error {
		return runDoctor(c.OutOrStdout())
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(w io.Writer) error {
	c, err := currentConfig()
	if err != nil {
		return err
	}
	project, err := resolveProject("")
	if err != nil {
		return err
	}
	src, err := templateSource(c)
	if err != nil {
		return err
	}

	runner := doctor.NewDefaultRunner(doctor.Target{
		Project:    project,
		Templates:  src,
		ConfigPath: c.ClaudeConfig,
		ServerName: c.MCP.ServerName,
		Version:    cmd.Version,
	})
	report := runner.Run()

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	var cause error
	switch report.Status() {
	case doctor.SeverityError:
		cause = errDoctorErrors
	case doctor.SeverityWarning:
		cause = errDoctorWarnings
	default:
		return nil
	}
	if doctorQuiet {
		// Exit code only.
		cause = nil
	}
	return errors.NewExitError(cause, errors.ExitUser)
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}
	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Problem()
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
		if showAll {
			for _, k := range sortedKeys(result.Details) {
				fmt.Fprintf(w, "  %s: %v\n", color.HiBlackString(k), result.Details[k])
			}
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings reports warnings without errors.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors reports at least one failed check.
var errDoctorErrors = errors.New("doctor found errors")
