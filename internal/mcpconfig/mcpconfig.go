package mcpconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/aoatridge/cortex/internal/backup"
	"github.com/aoatridge/cortex/pkg/fileutil"
)

// ServersKey is the top-level key holding MCP server entries.
const ServersKey = "mcpServers"

// Defaults for the cortex server entry.
const (
	DefaultServerName = "obsidian"
	DefaultCommand    = "npx"
)

// DefaultArgs are the arguments placed before the vault path.
var DefaultArgs = []string{"-y", "github:aoatridge/mcp-obsidian"}

// ParseHint is shown to users alongside a ConfigParseError.
const ParseHint = "Please fix the file manually or remove it to start fresh."

// ErrUnexpectedShape indicates mcpServers exists but is not a JSON object.
var ErrUnexpectedShape = errors.New("mcpServers is not a JSON object")

// ConfigParseError reports a config document that could not be parsed.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// Document is a decoded config document.
type Document map[string]any

// Entry is a single MCP server registration.
type Entry struct {
	Command string
	Args    []string
}

// NewEntry builds an entry running command with args followed by vault.
func NewEntry(command string, args []string, vault string) Entry {
	full := make([]string, 0, len(args)+1)
	full = append(full, args...)
	full = append(full, vault)
	return Entry{Command: command, Args: full}
}

// VaultPath returns the last argument, which by convention is the vault path.
func (e Entry) VaultPath() string {
	if len(e.Args) == 0 {
		return ""
	}
	return e.Args[len(e.Args)-1]
}

func (e Entry) toJSON() map[string]any {
	args := make([]any, len(e.Args))
	for i, a := range e.Args {
		args[i] = a
	}
	return map[string]any{
		"command": e.Command,
		"args":    args,
	}
}

// Read loads the document at path. A missing file yields an empty document.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(path, data)
}

// Parse decodes data as a config document. path is used for error reporting.
func Parse(path string, data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ConfigParseError{Path: path, Err: errors.New("unexpected data after top-level value")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ConfigParseError{Path: path, Err: errors.New("top-level value is not an object")}
	}
	return Document(obj), nil
}

// Backup copies the file at path to a timestamped sibling and returns the
// backup path, or "" when the file does not exist.
func Backup(path string) (string, error) {
	return backup.Create(path)
}

// Write backs up the current file and replaces it with doc, returning the
// backup path. Existing file permissions are kept; new files get 0600.
func Write(path string, doc Document) (string, error) {
	return write(path, doc, backup.NewManager())
}

func write(path string, doc Document, mgr *backup.Manager) (string, error) {
	backupPath, err := mgr.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "backing up config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteJSON(path, doc); err != nil {
		return backupPath, errors.Wrapf(err, "writing %s", path)
	}
	return backupPath, nil
}

func (d Document) servers() (map[string]any, bool) {
	s, ok := d[ServersKey].(map[string]any)
	return s, ok
}

// HasEntry reports whether mcpServers contains name.
func (d Document) HasEntry(name string) bool {
	s, ok := d.servers()
	if !ok {
		return false
	}
	_, ok = s[name]
	return ok
}

// Entry returns the entry registered under name. The boolean is false when
// the entry is absent or is not an object.
func (d Document) Entry(name string) (Entry, bool) {
	s, ok := d.servers()
	if !ok {
		return Entry{}, false
	}
	raw, ok := s[name].(map[string]any)
	if !ok {
		return Entry{}, false
	}

	var e Entry
	e.Command, _ = raw["command"].(string)
	if args, ok := raw["args"].([]any); ok {
		for _, a := range args {
			if str, ok := a.(string); ok {
				e.Args = append(e.Args, str)
			}
		}
	}
	return e, true
}

// SetEntry adds or replaces the entry registered under name, creating
// mcpServers when needed.
func (d Document) SetEntry(name string, e Entry) error {
	raw, present := d[ServersKey]
	if !present || raw == nil {
		d[ServersKey] = map[string]any{name: e.toJSON()}
		return nil
	}
	s, ok := raw.(map[string]any)
	if !ok {
		return ErrUnexpectedShape
	}
	s[name] = e.toJSON()
	return nil
}

// RemoveEntry deletes the entry registered under name and reports whether it
// existed. mcpServers is dropped once it is empty.
func (d Document) RemoveEntry(name string) bool {
	s, ok := d.servers()
	if !ok {
		return false
	}
	if _, ok := s[name]; !ok {
		return false
	}
	delete(s, name)
	if len(s) == 0 {
		delete(d, ServersKey)
	}
	return true
}
