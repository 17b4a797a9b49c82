package install

import (
	"fmt"

	"github.com/aoatridge/cortex/internal/errors"
)

var (
	// ErrTargetMissing indicates the project directory does not exist.
	ErrTargetMissing = errors.New("target directory does not exist")

	// ErrInvalidVault indicates a path without an .obsidian directory.
	ErrInvalidVault = errors.New("not a valid Obsidian vault")

	// ErrCancelled indicates the user declined a confirmation.
	ErrCancelled = errors.ErrCancelled
)

// AlreadyInstalledError reports an existing managed section when install
// runs without force.
type AlreadyInstalledError struct {
	Version string
}

func (e *AlreadyInstalledError) Error() string {
	return fmt.Sprintf("cortex is already installed (v%s)", e.Version)
}

// NotInstalledError reports a project without a managed section.
type NotInstalledError struct {
	Path string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("cortex is not installed in %s", e.Path)
}
