package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/internal/backup"
	"github.com/aoatridge/cortex/internal/errors"
	"github.com/aoatridge/cortex/internal/paths"
)

var (
	backupListJSON   bool
	backupPruneKeep  int
	backupRestoreYes bool
)

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupPruneCmd.Flags().IntVar(&backupPruneKeep, "keep", -1,
		"number of backups to keep (default: backup.keep from config)")
	backupRestoreCmd.Flags().BoolVarP(&backupRestoreYes, "yes", "y", false,
		"do not ask for confirmation")

	backupCmd.AddCommand(backupListCmd, backupPruneCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of ~/.claude.json",
	Long: `cortex copies ~/.claude.json to a timestamped sibling file before every
change, for example ~/.claude.json.backup-2025-01-31T12-34-56-789Z.

Use these commands to list, prune and restore those backups.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Example: `  cortex backup list
  cortex backup list --json`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runBackupList(c.OutOrStdout())
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest backups",
	Example: `  # Keep the three newest backups
  cortex backup prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runBackupPrune(c.OutOrStdout())
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup>",
	Short: "Restore ~/.claude.json from a backup",
	Long: `Restore ~/.claude.json from a backup, given either its path or its
number in 'cortex backup list'. The current file is backed up first, so a
restore can itself be undone.`,
	Example: `  # Restore the newest backup
  cortex backup restore 1

  # Restore a specific file
  cortex backup restore ~/.claude.json.backup-2025-01-31T12-34-56-789Z`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runBackupRestore(args[0], c.InOrStdin(), c.OutOrStdout())
	},
}

// backupInfoOutput represents a single backup in JSON output.
type backupInfoOutput struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

func backupManager() (*backup.Manager, string, int, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, "", 0, err
	}
	return backup.NewManager(backup.WithRetentionCount(c.Backup.Keep)), c.ClaudeConfig, c.Backup.Keep, nil
}

func runBackupList(w io.Writer) error {
	mgr, target, _, err := backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List(target)
	if err != nil {
		return errors.Wrapf(err, "listing backups of %s", target)
	}

	if backupListJSON {
		out := make([]backupInfoOutput, len(backups))
		for i, b := range backups {
			out[i] = backupInfoOutput{Path: b.Path, CreatedAt: b.CreatedAt, Size: b.Size}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("Backups of"), color.CyanString(target))
	if len(backups) == 0 {
		fmt.Fprintf(w, "  %s\n", color.HiBlackString("(no backups available)"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tCREATED\tSIZE\tFILE")
	for i, b := range backups {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\n",
			i+1,
			b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			b.Size,
			filepath.Base(b.Path))
	}
	return tw.Flush()
}

func runBackupPrune(w io.Writer) error {
	mgr, target, keep, err := backupManager()
	if err != nil {
		return err
	}
	if backupPruneKeep >= 0 {
		keep = backupPruneKeep
	}
	if keep == 0 && backupPruneKeep < 0 {
		// backup.keep of 0 means keep everything.
		fmt.Fprintln(w, "backup.keep is 0; nothing to prune (pass --keep to override)")
		return nil
	}

	removed, err := mgr.Prune(target, keep)
	if err != nil {
		return errors.Wrapf(err, "pruning backups of %s", target)
	}
	for _, p := range removed {
		fmt.Fprintf(w, "  %s %s\n", color.GreenString("✓"), "Removed "+filepath.Base(p))
	}
	fmt.Fprintf(w, "Removed %d backup(s), kept up to %d\n", len(removed), keep)
	return nil
}

// looksLikePath reports whether arg names a file rather than a list number.
func looksLikePath(arg string) bool {
	if strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") || strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, "~") {
		return true
	}
	return strings.ContainsRune(arg, filepath.Separator) || strings.Contains(arg, backup.Suffix)
}

func runBackupRestore(arg string, r io.Reader, w io.Writer) error {
	mgr, target, _, err := backupManager()
	if err != nil {
		return err
	}

	source, err := resolveBackup(mgr, target, arg)
	if err != nil {
		return err
	}

	if !backupRestoreYes {
		ok, err := promptFor(r, w).Confirm(fmt.Sprintf("Replace %s with %s?", target, filepath.Base(source)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Restore cancelled.")
			return nil
		}
	}

	pre, err := mgr.Restore(target, source)
	if err != nil {
		if errors.Is(err, backup.ErrNotABackup) || errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run: cortex backup list")
		}
		return errors.NewSystemError(err, "")
	}

	if pre == "" {
		fmt.Fprintf(w, "  %s %s already matches %s\n", color.GreenString("✓"), target, filepath.Base(source))
		return nil
	}
	fmt.Fprintf(w, "  %s Restored %s from %s\n", color.GreenString("✓"), target, filepath.Base(source))
	fmt.Fprintf(w, "    %s\n", color.HiBlackString("Previous version saved as "+pre))
	return nil
}

// resolveBackup turns a list number or a path into a backup path.
func resolveBackup(mgr *backup.Manager, target, arg string) (string, error) {
	if looksLikePath(arg) {
		// A bare file name refers to the directory of the target.
		if !strings.ContainsRune(arg, filepath.Separator) && !strings.HasPrefix(arg, "~") {
			return filepath.Join(filepath.Dir(target), arg), nil
		}
		p, err := filepath.Abs(paths.ExpandHome(arg, paths.Home()))
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s", arg)
		}
		return p, nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return "", errors.NewUserError(errors.Newf("invalid backup %q", arg), "Pass a backup path or a number from: cortex backup list")
	}
	backups, err := mgr.List(target)
	if err != nil {
		return "", errors.Wrapf(err, "listing backups of %s", target)
	}
	if n > len(backups) {
		return "", errors.NewUserError(errors.Wrapf(backup.ErrNoBackupsFound, "backup #%d", n), "Run: cortex backup list")
	}
	return backups[n-1].Path, nil
}
