package source

import (
	"errors"
	"fmt"
)

// SourceError represents a source-related error
type SourceError struct {
	Op     string // operation
	Source string // url, repository path or skill name
	Err    error  // underlying error
}

func (e *SourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrToolMissing      = errors.New("git executable not available")
	ErrInvalidURL       = errors.New("invalid git url")
	ErrCloneFailed      = errors.New("clone failed")
	ErrPullFailed       = errors.New("pull failed")
	ErrNoSkillDirectory = errors.New("no skill directory found")
	ErrNoSkillsFound    = errors.New("no skills found")
	ErrInvalidSkillName = errors.New("invalid skill name")
)
