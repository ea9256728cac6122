package partsync

import (
	"github.com/agentstation/partsync/pkg/applier"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/schlib"
)

// Compile-time interface check to ensure proper implementation.
var _ applier.Store = (*FileStore)(nil)

// FileStore loads and saves a library file pair on disk.
type FileStore struct {
	Path  string
	saves int
}

// NewFileStore returns a store for the .lib file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the library and its documentation.
func (s *FileStore) Load() (*schlib.Library, error) {
	return schlib.Load(s.Path)
}

// Save writes the library atomically.
func (s *FileStore) Save(lib *schlib.Library) error {
	if lib.Path() != s.Path {
		return errors.NewValidationError("path", lib.Path(), "library does not belong to this store")
	}
	if err := lib.Save(); err != nil {
		return errors.WrapResource("save", "library", s.Path, err)
	}
	s.saves++
	return nil
}

// Saves returns how many times the store has written the library.
func (s *FileStore) Saves() int {
	return s.saves
}
