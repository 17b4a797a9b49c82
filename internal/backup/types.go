package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultRetentionCount is the number of backups kept per file when pruning
// without an explicit count.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the file.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrNotABackup indicates a restore source is not a backup of the target file.
	ErrNotABackup = errors.New("not a backup of the target file")
)

// Info describes one backup file sitting next to the file it copies.
type Info struct {
	// Path is the absolute path of the backup file.
	Path string

	// Original is the path of the file that was backed up.
	Original string

	// CreatedAt is decoded from the file name, falling back to the
	// modification time when the name carries no readable timestamp.
	CreatedAt time.Time

	// Seq disambiguates backups created within the same millisecond.
	Seq int

	// Size is the backup's size in bytes.
	Size int64

	// Mode is the backup's permission bits, copied from the original.
	Mode fs.FileMode
}
