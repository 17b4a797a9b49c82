package mcpconfig

import (
	"github.com/aoatridge/cortex/internal/backup"
)

// Store performs read-modify-write cycles on one config document.
type Store struct {
	// Path is the config document location, usually ~/.claude.json.
	Path string

	// Keep bounds the number of backups left after each write. Zero keeps all.
	Keep int

	backups *backup.Manager
}

// NewStore returns a Store for the document at path.
func NewStore(path string, keep int, opts ...backup.Option) *Store {
	return &Store{
		Path:    path,
		Keep:    keep,
		backups: backup.NewManager(opts...),
	}
}

// Has reports whether an entry named name is registered.
func (s *Store) Has(name string) (bool, error) {
	doc, err := Read(s.Path)
	if err != nil {
		return false, err
	}
	return doc.HasEntry(name), nil
}

// Get returns the entry named name.
func (s *Store) Get(name string) (Entry, bool, error) {
	doc, err := Read(s.Path)
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := doc.Entry(name)
	return e, ok, nil
}

// Configure registers e under name and returns the backup path.
func (s *Store) Configure(name string, e Entry) (string, error) {
	doc, err := Read(s.Path)
	if err != nil {
		return "", err
	}
	if err := doc.SetEntry(name, e); err != nil {
		return "", err
	}
	return s.save(doc)
}

// Remove deletes the entry named name. When there is nothing to remove the
// document is left untouched and removed is false.
func (s *Store) Remove(name string) (removed bool, backupPath string, err error) {
	doc, err := Read(s.Path)
	if err != nil {
		return false, "", err
	}
	if !doc.RemoveEntry(name) {
		return false, "", nil
	}
	backupPath, err = s.save(doc)
	return true, backupPath, err
}

func (s *Store) save(doc Document) (string, error) {
	mgr := s.backups
	if mgr == nil {
		mgr = backup.NewManager()
	}
	backupPath, err := write(s.Path, doc, mgr)
	if err != nil {
		return backupPath, err
	}
	if s.Keep > 0 {
		// Pruning failures leave extra backups behind but never lose data.
		_, _ = mgr.Prune(s.Path, s.Keep)
	}
	return backupPath, nil
}
