package markers

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
)

const (
	// StartPrefix opens a managed section. The full start delimiter carries
	// the version and install date attributes before the closing "-->".
	StartPrefix = "<!-- CORTEX:START"

	// EndMarker closes a managed section.
	EndMarker = "<!-- CORTEX:END -->"

	// Separator is placed between pre-existing content and an appended section.
	Separator = "\n\n---\n\n"

	dateLayout = "2006-01-02"
)

// ErrCorruptSection indicates the document holds more than one managed
// section, or delimiters that are unpaired or out of order.
var ErrCorruptSection = errors.New("corrupt cortex section")

var (
	versionPattern     = regexp.MustCompile(`<!-- CORTEX:START version="([^"]+)"`)
	installDatePattern = regexp.MustCompile(`installed="([^"]+)"`)
	bodyPattern        = regexp.MustCompile(`<!-- CORTEX:START[^>]*>([\s\S]*?)<!-- CORTEX:END -->`)
)

// now is the clock used to stamp install dates. Tests replace it.
var now = func() time.Time { return time.Now().UTC() }

// SectionInfo describes the attributes stamped on a managed section.
type SectionInfo struct {
	Version     string
	InstalledAt string
}

// StartDelimiter returns the start delimiter for version stamped with today's date.
func StartDelimiter(version string) string {
	return StartPrefix + ` version="` + version + `" installed="` + now().Format(dateLayout) + `" -->`
}

// HasSection reports whether doc contains both the start prefix and the end marker.
func HasSection(doc string) bool {
	return strings.Contains(doc, StartPrefix) && strings.Contains(doc, EndMarker)
}

// ExtractVersion returns the version recorded on the start delimiter.
func ExtractVersion(doc string) (string, bool) {
	m := versionPattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractInstallDate returns the first installed="..." attribute in doc.
func ExtractInstallDate(doc string) (string, bool) {
	m := installDatePattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Info returns the version and install date of the section in doc.
// The boolean is false when doc has no section.
func Info(doc string) (SectionInfo, bool) {
	if !HasSection(doc) {
		return SectionInfo{}, false
	}
	var info SectionInfo
	info.Version, _ = ExtractVersion(doc)
	info.InstalledAt, _ = ExtractInstallDate(doc)
	return info, true
}

// ExtractBody returns the trimmed text between the delimiters.
func ExtractBody(doc string) (string, bool) {
	m := bodyPattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Create builds a document holding only a managed section.
func Create(body, version string) string {
	return StartDelimiter(version) + "\n" + strings.TrimSpace(body) + "\n" + EndMarker + "\n"
}

// Append adds a managed section after the existing content of doc. A
// separator is inserted only when doc has non-whitespace content.
func Append(doc, body, version string) string {
	existing := trimRight(doc)
	sep := ""
	if strings.TrimSpace(doc) != "" {
		sep = Separator
	}
	return existing + sep + Create(body, version)
}

// Remove strips the managed section from doc, along with the separator when
// it immediately precedes the start delimiter. Text on either side of the
// section stays on separate lines. The result ends with exactly one line
// break, using the document's own line ending. A document without a section
// is only normalized.
func Remove(doc string) (string, error) {
	if err := Validate(doc); err != nil {
		return "", err
	}

	eol := lineEnding(doc)
	start := strings.Index(doc, StartPrefix)
	if start < 0 {
		return normalize(doc, eol), nil
	}

	tagEnd := strings.IndexByte(doc[start:], '>')
	if tagEnd < 0 {
		return "", errors.Wrap(ErrCorruptSection, "unterminated start delimiter")
	}
	end := strings.Index(doc[start+tagEnd:], EndMarker)
	if end < 0 {
		return "", errors.Wrap(ErrCorruptSection, "missing end delimiter")
	}
	end += start + tagEnd + len(EndMarker)
	switch {
	case strings.HasPrefix(doc[end:], "\r\n"):
		end += 2
	case strings.HasPrefix(doc[end:], "\n"):
		end++
	}

	before := doc[:start]
	for _, sep := range []string{Separator, crlfSeparator} {
		if strings.HasSuffix(before, sep) {
			before = strings.TrimSuffix(before, sep)
			break
		}
	}

	return normalize(join(before, doc[end:], eol), eol), nil
}

// Replace removes any existing section and appends a fresh one stamped with
// version and today's date.
func Replace(doc, body, version string) (string, error) {
	stripped, err := Remove(doc)
	if err != nil {
		return "", err
	}
	return Append(stripped, body, version), nil
}

// IsEmpty reports whether doc holds nothing but whitespace. Callers delete
// the host file instead of writing an empty one.
func IsEmpty(doc string) bool {
	return strings.TrimSpace(doc) == ""
}

// Validate checks that doc contains either no delimiters or exactly one
// start delimiter followed by exactly one end marker.
func Validate(doc string) error {
	starts := strings.Count(doc, StartPrefix)
	ends := strings.Count(doc, EndMarker)

	switch {
	case starts == 0 && ends == 0:
		return nil
	case starts > 1:
		return errors.Wrapf(ErrCorruptSection, "found %d start delimiters", starts)
	case ends > 1:
		return errors.Wrapf(ErrCorruptSection, "found %d end delimiters", ends)
	case starts == 0:
		return errors.Wrap(ErrCorruptSection, "end delimiter without start")
	case ends == 0:
		return errors.Wrap(ErrCorruptSection, "start delimiter without end")
	}

	if strings.Index(doc, EndMarker) < strings.Index(doc, StartPrefix) {
		return errors.Wrap(ErrCorruptSection, "end delimiter precedes start")
	}
	return nil
}

// crlfSeparator is Separator after an editor converted the file to CRLF.
var crlfSeparator = strings.ReplaceAll(Separator, "\n", "\r\n")

// lineEnding returns "\r\n" for documents that use CRLF line breaks.
func lineEnding(doc string) string {
	if strings.Contains(doc, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// join concatenates the text around a removed section without merging the
// last line before it into the first line after it.
func join(before, after, eol string) string {
	if before == "" || strings.TrimSpace(after) == "" ||
		strings.HasSuffix(before, "\n") || strings.HasPrefix(after, "\n") || strings.HasPrefix(after, "\r\n") {
		return before + after
	}
	return before + eol + after
}

func normalize(doc, eol string) string {
	return trimRight(doc) + eol
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
