package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Store reads and writes the registry file
type Store struct {
	path     string
	lockPath string
}

// NewStore creates a Store for the registry at path
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the registry file path
func (s *Store) Path() string {
	return s.path
}

// Load reads and migrates the registry.
// A missing file yields an empty registry. An unparseable file yields an
// empty registry together with an error wrapping ErrRegistryCorrupt, so the
// caller decides whether to continue. An unknown version is returned as an
// error with no registry.
func (s *Store) Load() (*Registry, error) {
	data, err := lockedfile.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, &RegistryError{Op: "load", Path: s.path, Err: err}
	}

	doc, err := Decode(data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			return nil, &RegistryError{Op: "load", Path: s.path, Err: err}
		}
		return New(), &RegistryError{Op: "load", Path: s.path, Err: fmt.Errorf("%w: %w", ErrRegistryCorrupt, err)}
	}

	reg, err := Migrate(doc)
	if err != nil {
		return nil, &RegistryError{Op: "migrate", Path: s.path, Err: err}
	}
	return reg, nil
}

// Save writes reg as indented JSON, creating parent directories as needed
func (s *Store) Save(reg *Registry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &RegistryError{Op: "save", Path: s.path, Err: err}
	}

	data, err := Marshal(reg)
	if err != nil {
		return &RegistryError{Op: "save", Path: s.path, Err: err}
	}

	if err := lockedfile.Write(s.path, bytes.NewReader(data), 0644); err != nil {
		return &RegistryError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Lock takes the exclusive registry lock, blocking until it is available.
// The returned function releases it.
func (s *Store) Lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0755); err != nil {
		return nil, &RegistryError{Op: "lock", Path: s.lockPath, Err: err}
	}

	unlock, err := lockedfile.MutexAt(s.lockPath).Lock()
	if err != nil {
		return nil, &RegistryError{Op: "lock", Path: s.lockPath, Err: err}
	}
	return unlock, nil
}

// Marshal renders reg in the on-disk format
func Marshal(reg *Registry) ([]byte, error) {
	data, err := json.MarshalIndent(normalize(reg), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
