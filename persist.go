package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Persister is the durable storage contract. The engine only ever loads the
// whole snapshot once at startup and writes the whole snapshot after each
// mutation; which store backs it is of no concern here.
type Persister interface {
	// Load returns the stored snapshot, or (nil, nil) when none exists yet.
	Load() (*Snapshot, error)
	// Save durably writes the full snapshot.
	Save(*Snapshot) error
}

// FileStore persists the snapshot as a single JSON document file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load reads and decodes the snapshot file. A missing file is not an error:
// it means no snapshot exists yet.
func (f *FileStore) Load() (*Snapshot, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file %q: %w", f.Path, err)
	}
	defer file.Close()

	s, err := DecodeSnapshot(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode snapshot file %q: %w", f.Path, err)
	}
	return s, nil
}

// Save writes the full snapshot to the file, creating the directory if
// needed. The persisted unit is always the whole document, so a missed
// write is superseded entirely by the next one.
func (f *FileStore) Save(s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", f.Path, err)
	}
	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("could not open snapshot file %q for writing: %w", f.Path, err)
	}
	defer file.Close()

	return EncodeSnapshot(file, s)
}
