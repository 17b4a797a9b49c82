package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aoatridge/cortex/pkg/fileutil"
)

// maxCollisionRetries bounds the sequence suffix search for one timestamp.
const maxCollisionRetries = 100

// Manager creates, lists, prunes and restores sibling backups.
type Manager struct {
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetentionCount sets the number of backups kept by Prune when called
// with a negative count.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock overrides the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create copies path to a timestamped sibling and returns the backup path.
// It returns "" without error when path does not exist.
func Create(path string) (string, error) {
	return NewManager().Create(path)
}

// Create copies path to a timestamped sibling and returns the backup path.
// The copy keeps the original's permission bits. It returns "" without
// error when path does not exist.
func (m *Manager) Create(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return "", errors.Newf("%s is a directory", path)
	}

	ts := m.now()
	for seq := 0; seq < maxCollisionRetries; seq++ {
		dst := PathFor(path, ts, seq)
		err := copyFile(path, dst)
		if err == nil {
			return dst, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors.Wrapf(err, "backing up %s", path)
		}
	}
	return "", errors.Newf("backing up %s: too many backups at %s", path, Stamp(ts))
}

// List returns the backups of path, newest first.
func (m *Manager) List(path string) ([]Info, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		t, seq, stamped, ok := parseName(base, entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		if !stamped {
			t = fi.ModTime()
		}
		backups = append(backups, Info{
			Path:      filepath.Join(dir, entry.Name()),
			Original:  path,
			CreatedAt: t,
			Seq:       seq,
			Size:      fi.Size(),
			Mode:      fi.Mode().Perm(),
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return b.Seq - a.Seq
	})

	return backups, nil
}

// Prune deletes all but the newest keep backups of path and returns the
// removed paths. A negative keep uses the manager's retention count.
func (m *Manager) Prune(path string, keep int) ([]string, error) {
	if keep < 0 {
		keep = m.retentionCount
	}

	backups, err := m.List(path)
	if err != nil {
		return nil, err
	}

	var removed []string
	for i := keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil && !os.IsNotExist(err) {
			return removed, errors.Wrapf(err, "removing backup %s", backups[i].Path)
		}
		removed = append(removed, backups[i].Path)
	}
	return removed, nil
}

// Restore replaces path with the contents of backupPath. The current file is
// backed up first and that backup's path is returned. When the current file
// already matches the backup nothing is written and "" is returned.
func (m *Manager) Restore(path, backupPath string) (string, error) {
	if !IsBackupOf(path, backupPath) {
		return "", errors.Wrapf(ErrNotABackup, "%s", backupPath)
	}

	src, err := os.Stat(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrNoBackupsFound, "%s", backupPath)
		}
		return "", errors.Wrapf(err, "stat %s", backupPath)
	}

	want, err := hashFile(backupPath)
	if err != nil {
		return "", err
	}
	if got, err := hashFile(path); err == nil && got == want {
		return "", nil
	}

	pre, err := m.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "backing up current file before restore")
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return pre, errors.Wrapf(err, "reading %s", backupPath)
	}
	if err := fileutil.AtomicWriteFile(path, data, src.Mode().Perm()); err != nil {
		return pre, errors.Wrapf(err, "restoring %s", path)
	}
	return pre, nil
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to a new file dst. dst must not exist; an existing
// dst yields an error matching fs.ErrExist. The destination gets the source
// file's permission bits.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}
