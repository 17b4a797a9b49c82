// Package backup keeps timestamped copies of a file next to the original.
//
// A backup of ~/.claude.json taken at 2025-01-31 12:34:56.789 UTC is written to
//
//	~/.claude.json.backup-2025-01-31T12-34-56-789Z
//
// Two backups created within the same millisecond get a numeric suffix
// ("-1", "-2", ...) so an earlier copy is never overwritten. Backups keep the
// permission bits of the original, which matters for config files holding
// credentials.
//
// # Creating Backups
//
// [Manager.Create] copies the file and returns the backup path, or "" when
// the file does not exist yet:
//
//	mgr := backup.NewManager()
//	path, err := mgr.Create(configPath)
//
// # Listing and Pruning
//
// [Manager.List] returns backups newest first. [Manager.Prune] removes all
// but the newest N:
//
//	removed, err := mgr.Prune(configPath, 5)
//
// # Restoring
//
// [Manager.Restore] backs up the current file before overwriting it with the
// chosen backup, so a restore can itself be undone.
package backup
