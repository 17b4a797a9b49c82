package backup

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Suffix separates the original file name from the backup timestamp.
const Suffix = ".backup-"

// stampLen is the length of a rendered stamp such as 2025-01-31T12-34-56-789Z.
const stampLen = len("2006-01-02T15-04-05-000Z")

// Stamp renders t as an ISO-8601 UTC timestamp with ':' and '.' replaced by
// '-' so it is safe in file names on every platform.
func Stamp(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

// parseStamp reverses Stamp.
func parseStamp(s string) (time.Time, bool) {
	if len(s) != stampLen {
		return time.Time{}, false
	}
	iso := s[:13] + ":" + s[14:16] + ":" + s[17:19] + "." + s[20:23] + "Z"
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PathFor returns the sibling backup path of original for time t. A non-zero
// seq is appended to avoid overwriting an earlier backup with the same stamp.
func PathFor(original string, t time.Time, seq int) string {
	p := original + Suffix + Stamp(t)
	if seq > 0 {
		p += "-" + strconv.Itoa(seq)
	}
	return p
}

// parseName splits a backup file name into its stamp time and sequence.
// ok is false when name is not a backup of base.
func parseName(base, name string) (t time.Time, seq int, stamped, ok bool) {
	prefix := base + Suffix
	if !strings.HasPrefix(name, prefix) {
		return time.Time{}, 0, false, false
	}
	rest := name[len(prefix):]
	if len(rest) < stampLen {
		return time.Time{}, 0, false, true
	}

	t, stamped = parseStamp(rest[:stampLen])
	if tail := rest[stampLen:]; stamped && strings.HasPrefix(tail, "-") {
		if n, err := strconv.Atoi(tail[1:]); err == nil {
			seq = n
		}
	}
	return t, seq, stamped, true
}

// IsBackupOf reports whether backupPath names a sibling backup of original.
func IsBackupOf(original, backupPath string) bool {
	if filepath.Dir(filepath.Clean(backupPath)) != filepath.Dir(filepath.Clean(original)) {
		return false
	}
	_, _, _, ok := parseName(filepath.Base(original), filepath.Base(backupPath))
	return ok
}
