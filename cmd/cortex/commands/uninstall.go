package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/install"
)

var (
	uninstallKeepMCP bool
	uninstallYes     bool
)

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallKeepMCP, "keep-mcp", false,
		"keep the MCP server entry in ~/.claude.json")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false,
		"do not ask for confirmation")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove cortex from a project",
	Long: `Remove the cortex section from CLAUDE.md (deleting the file when nothing
else is left), delete the cortex-* slash commands and agents, and remove the
MCP server entry from ~/.claude.json after a backup.

Only files named cortex-*.md are removed; your own commands and agents stay.`,
	Example: `  # Uninstall without prompts, keeping the MCP server
  cortex uninstall --yes --keep-mcp`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runUninstall(c, c.InOrStdin(), c.OutOrStdout())
	},
}

func runUninstall(c *cobra.Command, r io.Reader, w io.Writer) error {
	project, err := resolveProject("")
	if err != nil {
		return err
	}
	inst, err := newInstaller(c.Context(), project, r, w)
	if err != nil {
		return err
	}

	printHeader(w, "cortex uninstall", "Target", project.Root)

	report, err := inst.Uninstall(install.UninstallOptions{
		KeepMCP: uninstallKeepMCP,
		Yes:     uninstallYes,
	})
	if errors.Is(err, install.ErrCancelled) {
		fmt.Fprintf(w, "\n  %s\n\n", color.HiBlackString("Uninstall cancelled."))
		return nil
	}
	if err != nil {
		return operationError(err)
	}

	printSteps(w, report)
	if report.Failed() {
		return reportError(report)
	}
	printDone(w, "cortex uninstalled successfully!")
	return nil
}
