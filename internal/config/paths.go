package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Paths holds all resolved paths for skillctl operations
type Paths struct {
	DataDir      string // ~/.skillctl (skillctl data directory)
	ConfigPath   string // ~/.skillctl/config.toml
	RegistryPath string // ~/.skillctl/registry.json
	CacheDir     string // ~/.skillctl/repos (clone cache)
	SkillsDir    string // ~/.claude/skills (target skills directory)
}

// ResolvePaths resolves all paths based on environment and defaults
func ResolvePaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Data directory (can be overridden)
	dataDir := os.Getenv("SKILLCTL_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".skillctl")
	}

	return &Paths{
		DataDir:      dataDir,
		ConfigPath:   filepath.Join(dataDir, "config.toml"),
		RegistryPath: filepath.Join(dataDir, "registry.json"),
		CacheDir:     filepath.Join(dataDir, "repos"),
		SkillsDir:    filepath.Join(home, ".claude", "skills"),
	}, nil
}

// Apply overrides paths with non-empty values from the loaded config
func (p *Paths) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.SkillsDir != "" {
		p.SkillsDir = ExpandHome(cfg.SkillsDir)
	}
	if cfg.CacheDir != "" {
		p.CacheDir = ExpandHome(cfg.CacheDir)
	}
	if cfg.RegistryPath != "" {
		p.RegistryPath = ExpandHome(cfg.RegistryPath)
	}
}

// RepoDir returns the clone directory for a cached repository
func (p *Paths) RepoDir(repoPath string) string {
	return filepath.Join(p.CacheDir, repoPath)
}

// SkillDir returns the installed location of a skill
func (p *Paths) SkillDir(name string) string {
	return filepath.Join(p.SkillsDir, name)
}

// LockPath returns the advisory lock guarding the registry
func (p *Paths) LockPath() string {
	return p.RegistryPath + ".lock"
}

// DataDirExists checks if the data directory exists
func (p *Paths) DataDirExists() bool {
	info, err := os.Stat(p.DataDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
