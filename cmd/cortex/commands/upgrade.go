package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/install"
)

var upgradeCheck bool

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeCheck, "check", false,
		"only report whether an upgrade is available")
	rootCmd.AddCommand(upgradeCmd)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Update the cortex section and templates",
	Long: `Replace the cortex section in CLAUDE.md with the version shipped in this
binary and re-copy the slash commands and agents. Nothing is written when the
installed version already matches.`,
	Example: `  # See whether an upgrade is available
  cortex upgrade --check

  # Upgrade the project in another directory
  cortex upgrade --project ~/code/app`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runUpgrade(c, c.InOrStdin(), c.OutOrStdout())
	},
}

func runUpgrade(c *cobra.Command, r io.Reader, w io.Writer) error {
	project, err := resolveProject("")
	if err != nil {
		return err
	}
	inst, err := newInstaller(c.Context(), project, r, w)
	if err != nil {
		return err
	}

	report, err := inst.Upgrade(install.UpgradeOptions{Check: upgradeCheck})
	if err != nil {
		return operationError(err)
	}

	printHeader(w, "cortex upgrade", "Installed", "v"+report.InstalledVersion, "Available", "v"+cmd.Version)

	switch {
	case report.UpToDate:
		if !quiet {
			fmt.Fprintf(w, "  %s\n\n", color.GreenString("✓ Already up to date!"))
		}
		return nil
	case report.UpgradeAvailable:
		if !quiet {
			fmt.Fprintf(w, "  %s\n", color.YellowString("↑ Upgrade available: v%s → v%s", report.InstalledVersion, cmd.Version))
			fmt.Fprintf(w, "  %s\n\n", color.HiBlackString("Run: cortex upgrade"))
		}
		return nil
	}

	printSteps(w, report)
	if report.Failed() {
		return reportError(report)
	}
	printDone(w, "Upgraded to cortex v"+cmd.Version+"!")
	return nil
}
