package installer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PluginError represents a failed workflow step for a plugin
type PluginError struct {
	Op     string // install, uninstall, update
	Plugin string // plugin name
	Err    error  // underlying error
}

func (e *PluginError) Error() string {
	if e.Plugin != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Plugin, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrAlreadyInstalled      = errors.New("plugin already installed")
	ErrInvalidSkillSelection = errors.New("invalid skill selection")
	ErrPluginNotFound        = errors.New("plugin not found")
	ErrSkillConflict         = errors.New("skill owned by another plugin")
	ErrNoSkillsSelected      = errors.New("no skills selected")
	ErrUpdateIncomplete      = errors.New("update incomplete")
)

// SelectionError lists requested skills that the repository does not provide
type SelectionError struct {
	Invalid []string // requested but not discovered
	Valid   []string // everything that was discovered
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%v: %s not found (available: %s)",
		ErrInvalidSkillSelection, strings.Join(e.Invalid, ", "), strings.Join(e.Valid, ", "))
}

func (e *SelectionError) Unwrap() error {
	return ErrInvalidSkillSelection
}

// ConflictError maps skills to the plugin that already owns them
type ConflictError struct {
	Owners map[string]string // skill -> owning plugin
}

// Skills returns the conflicting skill names, sorted
func (e *ConflictError) Skills() []string {
	skills := make([]string, 0, len(e.Owners))
	for skill := range e.Owners {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Owners))
	for _, skill := range e.Skills() {
		parts = append(parts, fmt.Sprintf("%s (owned by %s)", skill, e.Owners[skill]))
	}
	return fmt.Sprintf("%v: %s; use --force to take them over", ErrSkillConflict, strings.Join(parts, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrSkillConflict
}
