package templates

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aoatridge/cortex/pkg/fileutil"
	"github.com/aoatridge/cortex/pkg/frontmatter"
)

//go:embed payload
var payloadFS embed.FS

// Prefix marks files owned by cortex.
const Prefix = "cortex-"

// InstructionsFile is the name of the instructions template and of the host
// document in a project.
const InstructionsFile = "CLAUDE.md"

// Kind selects a template collection.
type Kind string

// Template collections.
const (
	Commands Kind = "commands"
	Agents   Kind = "agents"
)

// Kinds lists the collections in installation order.
var Kinds = []Kind{Commands, Agents}

// ErrInvalidSource indicates a template directory lacks the expected layout.
var ErrInvalidSource = errors.New("invalid template source")

// Template describes one file in a collection.
type Template struct {
	Kind        Kind
	File        string
	Description string
}

// Name returns the file name without the .md extension.
func (t Template) Name() string {
	return strings.TrimSuffix(t.File, ".md")
}

// meta is the frontmatter carried by command and agent templates.
type meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Source is a read-only template payload.
type Source struct {
	fsys fs.FS
	desc string
}

// Embedded returns the payload compiled into the binary.
func Embedded() *Source {
	sub, err := fs.Sub(payloadFS, "payload")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return &Source{fsys: sub, desc: "embedded"}
}

// FromDir returns a source reading from dir, which must contain CLAUDE.md.
func FromDir(dir string) (*Source, error) {
	info, err := os.Stat(filepath.Join(dir, InstructionsFile))
	if err != nil || info.IsDir() {
		return nil, errors.Wrapf(ErrInvalidSource, "%s has no %s", dir, InstructionsFile)
	}
	return &Source{fsys: os.DirFS(dir), desc: dir}, nil
}

// NewSource wraps an arbitrary file system laid out like the payload.
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys, desc: "custom"}
}

// String describes where the templates come from.
func (s *Source) String() string {
	return s.desc
}

// Instructions returns the body of the managed instructions section.
func (s *Source) Instructions() (string, error) {
	data, err := fs.ReadFile(s.fsys, InstructionsFile)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s template", InstructionsFile)
	}
	return string(data), nil
}

// Available returns the templates in a collection, sorted by file name.
// A missing collection directory yields no templates.
func (s *Source) Available(kind Kind) ([]Template, error) {
	entries, err := fs.ReadDir(s.fsys, string(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s templates", kind)
	}

	var out []Template
	for _, entry := range entries {
		if entry.IsDir() || !IsManaged(entry.Name()) {
			continue
		}
		t := Template{Kind: kind, File: entry.Name()}

		m, err := s.header(path.Join(string(kind), entry.Name()))
		if err != nil {
			return nil, err
		}
		t.Description = m.Description
		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b Template) int { return strings.Compare(a.File, b.File) })
	return out, nil
}

func (s *Source) header(name string) (meta, error) {
	var m meta
	f, err := s.fsys.Open(name)
	if err != nil {
		return m, errors.Wrapf(err, "opening template %s", name)
	}
	defer f.Close()

	if err := frontmatter.ParseHeader(f, &m); err != nil {
		return m, errors.Wrapf(err, "parsing template %s", name)
	}
	return m, nil
}

// Copy writes every template of a collection into dir, creating it when
// needed and overwriting earlier copies. It returns the copied file names.
func (s *Source) Copy(kind Kind, dir string) ([]string, error) {
	available, err := s.Available(kind)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}

	copied := make([]string, 0, len(available))
	for _, t := range available {
		data, err := fs.ReadFile(s.fsys, path.Join(string(kind), t.File))
		if err != nil {
			return copied, errors.Wrapf(err, "reading template %s", t.File)
		}
		if err := fileutil.AtomicWriteFile(filepath.Join(dir, t.File), data, 0o644); err != nil {
			return copied, errors.Wrapf(err, "writing %s", t.File)
		}
		copied = append(copied, t.File)
	}
	return copied, nil
}

// IsManaged reports whether a file name belongs to cortex.
func IsManaged(name string) bool {
	return strings.HasPrefix(name, Prefix) && strings.HasSuffix(name, ".md")
}

// Installed returns the cortex files present in dir, sorted by name.
// A missing directory yields no files.
func Installed(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && IsManaged(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Remove deletes the cortex files in dir and returns their names. The
// directory itself is removed when nothing else is left in it.
func Remove(dir string) ([]string, error) {
	names, err := Installed(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range names {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, errors.Wrapf(err, "removing %s", name)
		}
		removed = append(removed, name)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return removed, nil
		}
		return removed, errors.Wrapf(err, "reading %s", dir)
	}
	if len(entries) == 0 {
		if err := os.Remove(dir); err != nil {
			return removed, errors.Wrapf(err, "removing empty %s", dir)
		}
	}
	return removed, nil
}

// Missing returns the available templates whose files are absent from
// installed, and the installed cortex files that no template provides.
func Missing(available []Template, installed []string) (missing, extra []string) {
	have := make(map[string]bool, len(installed))
	for _, name := range installed {
		have[name] = true
	}
	want := make(map[string]bool, len(available))
	for _, t := range available {
		want[t.File] = true
		if !have[t.File] {
			missing = append(missing, t.File)
		}
	}
	for _, name := range installed {
		if !want[name] {
			extra = append(extra, name)
		}
	}
	return missing, extra
}
