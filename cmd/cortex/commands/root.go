// Package commands implements the CLI commands for cortex.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/cmd"
	"github.com/aoatridge/cortex/internal/config"
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// projectDir holds the value of the --project flag.
var projectDir string

// cfg is the loaded configuration; configLoadErr holds any load failure.
var (
	cfg           *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/cortex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "",
		"project directory (default: current directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("cortex version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "cortex",
	Short: "Install the cortex knowledge workflow into a project",
	Long: `cortex installs a managed instructions section into a project's CLAUDE.md,
copies the cortex slash commands and agents into .claude/, and registers
the Obsidian MCP server in ~/.claude.json.

Content you write in CLAUDE.md outside the CORTEX markers is never touched,
and ~/.claude.json is backed up before every change.`,
	Example: `  # Install into the current project
  cortex init

  # Check the installation
  cortex doctor

  # Update to the templates shipped with this binary
  cortex upgrade

  See Also: cortex init, cortex doctor, cortex upgrade`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	level := logging.LevelFromVerbosity(logging.Verbosity(verbosity))
	if quiet {
		level = slog.LevelError
	}

	logCfg := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logCfg.File = f
	}

	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load errors, except for commands that must
// work with a broken config.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd == configEditCmd || cmd == configPathCmd {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewUserError(configLoadErr, "Fix it with: cortex config edit")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err and its suggestion, if any, to w. An ExitError
// without a cause carries only an exit code and prints nothing.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	hasExit := errors.As(err, &exitErr)
	if hasExit && exitErr.Err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)
	if hasExit && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
