package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/internal/install"
)

var (
	mcpSetupVault   string
	mcpSetupNoInput bool
)

func init() {
	mcpSetupCmd.Flags().StringVar(&mcpSetupVault, "vault", "",
		"Obsidian vault path")
	mcpSetupCmd.Flags().BoolVar(&mcpSetupNoInput, "no-input", false,
		"never prompt: use the first detected vault, or skip when none is found")
	rootCmd.AddCommand(mcpSetupCmd)
}

var mcpSetupCmd = &cobra.Command{
	Use:   "mcp-setup",
	Short: "Register the Obsidian MCP server",
	Long: `Register the Obsidian MCP server in ~/.claude.json.

The vault is taken from --vault, or detected under the configured search
roots. With several candidates you pick one; with none you are asked for a
path (leave it empty to skip). With --no-input the first candidate is used
and nothing is asked. An existing entry is left unchanged.

~/.claude.json is backed up before it is written. A file that is not valid
JSON is never overwritten.`,
	Example: `  # Detect the vault
  cortex mcp-setup

  # Use a specific vault
  cortex mcp-setup --vault ~/Documents/Obsidian/work`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runMCPSetup(c, c.InOrStdin(), c.OutOrStdout())
	},
}

func runMCPSetup(c *cobra.Command, r io.Reader, w io.Writer) error {
	project, err := resolveProject("")
	if err != nil {
		return err
	}
	inst, err := newInstaller(c.Context(), project, r, w)
	if err != nil {
		return err
	}

	printHeader(w, "MCP Obsidian setup")

	report, err := inst.Configure(install.ConfigureOptions{Vault: mcpSetupVault, Quiet: mcpSetupNoInput})
	if err != nil {
		return operationError(err)
	}
	printSteps(w, report)
	return nil
}
