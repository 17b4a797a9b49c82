// Package vault locates Obsidian vaults on the local disk.
//
// A directory is a vault when it contains a .obsidian directory. Discovery
// probes a fixed list of search roots: a root that is itself a vault is
// reported as is, otherwise its immediate subdirectories are checked.
package vault

import (
	"os"
	"path/filepath"

	"github.com/aoatridge/cortex/internal/paths"
)

// MarkerDir is the directory Obsidian creates at the top of every vault.
const MarkerDir = ".obsidian"

// defaultRootNames are the search roots relative to the home directory.
var defaultRootNames = []string{
	"obsidian",
	"Obsidian",
	filepath.Join("Documents", "Obsidian"),
	filepath.Join("Documents", "obsidian"),
	"notes",
	"Notes",
}

// DefaultRoots returns the standard search roots under home.
func DefaultRoots(home string) []string {
	roots := make([]string, len(defaultRootNames))
	for i, name := range defaultRootNames {
		roots[i] = filepath.Join(home, name)
	}
	return roots
}

// IsValid reports whether path is an Obsidian vault.
func IsValid(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(path, MarkerDir))
	return err == nil && info.IsDir()
}

// DetectCandidates returns the vaults found under roots, in root order.
// Missing or unreadable roots are skipped. On case-insensitive file systems
// two roots may name the same directory; each vault is reported once.
func DetectCandidates(roots []string) []string {
	var found []string
	var infos []os.FileInfo
	add := func(p string) {
		info, err := os.Stat(p)
		if err != nil {
			return
		}
		for _, other := range infos {
			if os.SameFile(info, other) {
				return
			}
		}
		infos = append(infos, info)
		found = append(found, p)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		if IsValid(root) {
			add(root)
			continue
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			sub := filepath.Join(root, entry.Name())
			if IsValid(sub) {
				add(sub)
			}
		}
	}
	return found
}

// ExpandPath turns a user-typed vault path into an absolute path, expanding
// a leading "~".
func ExpandPath(p string) (string, error) {
	home, err := paths.ResolveHome()
	if err == nil {
		p = paths.ExpandHome(p, home)
	}
	return filepath.Abs(p)
}
