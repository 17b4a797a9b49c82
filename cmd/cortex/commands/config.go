package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aoatridge/cortex/internal/config"
	"github.com/aoatridge/cortex/internal/editor"
	"github.com/aoatridge/cortex/internal/errors"
)

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configPathCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the cortex configuration",
	Long: `Show or edit the cortex configuration stored in config.yaml under the XDG
config directory (~/.config/cortex by default, or $CORTEX_CONFIG_DIR).

Every key can also be set with a CORTEX_ environment variable, for example
CORTEX_MCP_COMMAND or CORTEX_BACKUP_KEEP.

Without a subcommand, prints the effective configuration.`,
	Example: `  # Print the effective configuration
  cortex config

  # Print one value
  cortex config get mcp.server_name

  # Edit the file, creating it with defaults first
  cortex config edit

  See Also: cortex doctor`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigList(c.OutOrStdout())
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigList(c.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Long: `Print one configuration value. Nested keys use dot notation. List values
are printed one per line.`,
	Example: `  cortex config get vault.search_roots`,
	Args:    cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runConfigGet(args[0], c.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigPath(c.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the configuration file in $EDITOR (falling back to $VISUAL, nano, then
vi). A missing file is created with the default values first. The file is
validated after the editor exits.`,
	Example: `  EDITOR="code --wait" cortex config edit`,
	Args:    cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigEdit(c.Context(), c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr())
	},
}

// configPath returns the file in use, the --config flag, or the path a new
// file would be created at.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	if used := config.FileUsed(); used != "" {
		return used
	}
	return config.DefaultPath()
}

func runConfigList(w io.Writer) error {
	c, err := currentConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if used := config.FileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# defaults (no config file)")
	}
	_, err = w.Write(data)
	return err
}

func runConfigGet(key string, w io.Writer) error {
	if _, err := currentConfig(); err != nil {
		return err
	}
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: cortex config list")
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigPath(w io.Writer) error {
	// A file that fails to load still has a path worth printing.
	_, _ = currentConfig()
	fmt.Fprintln(w, configPath())
	return nil
}

func runConfigEdit(ctx context.Context, r io.Reader, w, errW io.Writer) error {
	path := configPath()
	if err := config.WriteDefault(path); err != nil {
		return errors.NewSystemError(err, "")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := editor.Open(ctx, path, editor.Streams{In: r, Out: w, Err: errW}); err != nil {
		return errors.NewUserError(err, "Set $EDITOR to your editor command")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewUserError(err, "Run: cortex config edit")
	}
	cfg = nil
	fmt.Fprintf(w, "Configuration in %s is valid\n", path)
	return nil
}
