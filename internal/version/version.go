// Package version compares the template version stamped into a project
// with the version of the running binary.
package version

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Relation describes an installed version relative to the current one.
type Relation int

const (
	// Same means no upgrade is needed.
	Same Relation = iota
	// Older means an upgrade is available.
	Older
	// Newer means the project was stamped by a newer binary.
	Newer
)

func (r Relation) String() string {
	switch r {
	case Same:
		return "same"
	case Older:
		return "older"
	case Newer:
		return "newer"
	default:
		return "unknown"
	}
}

// ErrInvalid indicates a version string that is not semantic.
var ErrInvalid = errors.New("invalid semantic version")

// Compare relates installed to current. Equal strings are Same even when
// they do not parse; otherwise both must be semantic versions.
func Compare(installed, current string) (Relation, error) {
	if installed == current {
		return Same, nil
	}
	iv, err := semver.NewVersion(installed)
	if err != nil {
		return Same, errors.Wrapf(ErrInvalid, "%q", installed)
	}
	cv, err := semver.NewVersion(current)
	if err != nil {
		return Same, errors.Wrapf(ErrInvalid, "%q", current)
	}
	switch iv.Compare(cv) {
	case -1:
		return Older, nil
	case 1:
		return Newer, nil
	default:
		// "v1.0.0" and "1.0.0" differ as strings but not as versions.
		return Same, nil
	}
}
