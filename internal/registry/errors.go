package registry

import (
	"errors"
	"fmt"
)

// RegistryError represents a registry-related error
type RegistryError struct {
	Op   string // operation
	Path string // registry file
	Err  error  // underlying error
}

func (e *RegistryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrRegistryCorrupt    = errors.New("registry is corrupt")
	ErrUnsupportedVersion = errors.New("unsupported registry version")
)
