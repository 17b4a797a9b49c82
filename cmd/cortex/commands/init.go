package commands

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/install"
	"github.com/aoatridge/cortex/internal/paths"
)

var (
	initForce   bool
	initSkipMCP bool
	initVault   string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"reinstall over an existing cortex section")
	initCmd.Flags().BoolVar(&initSkipMCP, "skip-mcp", false,
		"do not configure the MCP server")
	initCmd.Flags().StringVar(&initVault, "vault", "",
		"Obsidian vault path for the MCP server")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Install cortex into a project",
	Long: `Install cortex into a project directory (default: current directory).

Adds the cortex section to CLAUDE.md (creating the file if needed), copies the
cortex slash commands to .claude/commands and the agents to .claude/agents,
then registers the Obsidian MCP server in ~/.claude.json unless --skip-mcp is
given. A single detected vault is used automatically; with several, the first
is used. Pass --vault to choose explicitly.`,
	Example: `  # Install into the current directory
  cortex init

  # Install into another project with an explicit vault
  cortex init ~/code/app --vault ~/notes

  # Reinstall over an existing section
  cortex init --force

  See Also: cortex upgrade, cortex mcp-setup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runInit(c, args, c.InOrStdin(), c.OutOrStdout())
	},
}

func runInit(c *cobra.Command, args []string, r io.Reader, w io.Writer) error {
	var target string
	if len(args) > 0 {
		target = args[0]
	}
	project, err := resolveProject(target)
	if err != nil {
		return err
	}

	inst, err := newInstaller(c.Context(), project, r, w)
	if err != nil {
		return err
	}

	printHeader(w, "cortex installation", "Target", project.Root, "Version", cmd.Version)

	report, err := inst.Install(install.InstallOptions{
		Force:   initForce,
		SkipMCP: initSkipMCP,
		Vault:   initVault,
	})
	printSteps(w, report)
	if err != nil {
		return operationError(err)
	}

	if report.Failed() {
		return reportError(report)
	}

	printDone(w, "cortex installed successfully!")
	printNextSteps(w, project)
	return nil
}

func printNextSteps(w io.Writer, project paths.Project) {
	if quiet {
		return
	}
	rel := func(p string) string {
		if r, err := filepath.Rel(project.Root, p); err == nil {
			return r
		}
		return p
	}
	io.WriteString(w, "  Files:\n")
	io.WriteString(w, "  • "+rel(project.InstructionsPath())+"\n")
	io.WriteString(w, "  • "+rel(project.CommandsDir())+"/cortex-*.md\n")
	io.WriteString(w, "  • "+rel(project.AgentsDir())+"/cortex-*.md\n\n")
	io.WriteString(w, "  Next steps:\n")
	io.WriteString(w, "  1. Start Claude in this project\n")
	io.WriteString(w, "  2. Use /cortex-research to add knowledge\n")
	io.WriteString(w, "  3. Ask questions; Claude will query your vault first\n\n")
}
