// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aoatridge/cortex/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// An interrupted write leaves the original file intact. When path is a
// symlink the link is kept and its target is replaced.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	path, err := ResolveLink(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".cortex-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		// Only present if the rename did not happen.
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// ResolveLink returns the file a symlink at path points to, or path itself
// when it is not a symlink or does not exist. A dangling link resolves to
// its missing target so a write recreates the target instead of the link.
func ResolveLink(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "resolving symlink %s", path)
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading symlink %s", path)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}

// AtomicReplaceFile writes data atomically, keeping the permission bits of
// the file it replaces. newPerm applies when path does not exist yet.
func AtomicReplaceFile(path string, data []byte, newPerm os.FileMode) error {
	perm := newPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", path)
	}
	return AtomicWriteFile(path, data, perm)
}

// MarshalJSON encodes v with 2-space indentation and a trailing newline.
// HTML characters are written verbatim rather than escaped, so strings such
// as "<vault>" round-trip unchanged.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	// Encode already terminates the value with a newline.
	return buf.Bytes(), nil
}

// AtomicWriteJSON writes v as indented JSON to path atomically.
// The file is created with 0600 permissions, or keeps the permissions of
// the file it replaces.
func AtomicWriteJSON(path string, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	return AtomicReplaceFile(path, data, 0o600)
}
