// Package installer implements the install, uninstall, update and list
// workflows on top of git sources and the plugin registry.
package installer

import (
	"context"
	"errors"
	"os"

	"github.com/samhoang/skillctl/internal/config"
	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

// Manager runs skill workflows against one skills directory and clone cache
type Manager struct {
	paths    *config.Paths
	provider source.Provider
	store    *registry.Store
	scanner  *source.Scanner
	copyOpts source.CopyOptions
	now      func() registry.Timestamp
}

// Option configures a Manager
type Option func(*Manager)

// WithScanner sets the skill discovery rules
func WithScanner(s *source.Scanner) Option {
	return func(m *Manager) {
		m.scanner = s
	}
}

// WithCopyOptions sets how skills are copied into the skills directory
func WithCopyOptions(opts source.CopyOptions) Option {
	return func(m *Manager) {
		m.copyOpts = opts
	}
}

// WithClock replaces the timestamp source
func WithClock(now func() registry.Timestamp) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager for paths that fetches through provider
func NewManager(paths *config.Paths, provider source.Provider, opts ...Option) *Manager {
	m := &Manager{
		paths:    paths,
		provider: provider,
		store:    registry.NewStore(paths.RegistryPath),
		scanner:  source.NewScanner(config.DefaultPrefixes, source.DefaultManifestFile),
		now:      registry.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromConfig wires a Manager from the loaded configuration
func NewManagerFromConfig(cfg *config.Config, paths *config.Paths) *Manager {
	provider := source.NewGitProvider(cfg.Git.Binary,
		source.WithTimeouts(source.Timeouts{
			Check: cfg.Timeouts.CheckTimeout(),
			Clone: cfg.Timeouts.CloneTimeout(),
			Pull:  cfg.Timeouts.PullTimeout(),
			Query: cfg.Timeouts.QueryTimeout(),
		}),
		source.WithCloneRetries(cfg.Git.CloneRetries, source.DefaultRetryDelay),
	)

	return NewManager(paths, provider,
		WithScanner(source.NewScanner(cfg.Discovery.Prefixes, cfg.ManifestFile)),
		WithCopyOptions(source.CopyOptions{Exclude: cfg.Copy.Exclude}),
	)
}

// Paths returns the resolved paths the manager operates on
func (m *Manager) Paths() *config.Paths {
	return m.paths
}

// loadRegistry loads the registry, downgrading a corrupt file to a warning
// and an empty registry
func (m *Manager) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	reg, err := m.store.Load()
	if err != nil {
		if errors.Is(err, registry.ErrRegistryCorrupt) && reg != nil {
			logger.G(ctx).WithError(err).Warn("registry unreadable, continuing with an empty registry")
			return reg, nil
		}
		return nil, err
	}
	return reg, nil
}

// lock takes the registry lock for a mutating workflow
func (m *Manager) lock(ctx context.Context) (func(), error) {
	unlock, err := m.store.Lock()
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("lock", m.paths.LockPath()).Debug("acquired registry lock")
	return unlock, nil
}

// repoDir returns the clone directory of p, or "" when p has no usable repo path
func (m *Manager) repoDir(p *registry.Plugin) string {
	repoPath := p.RepoPath
	if repoPath == "" && p.Owner != "" && p.Repo != "" {
		repoPath = source.RepoDirName(p.Owner, p.Repo)
	}
	if source.ValidateSkillName(repoPath) != nil {
		return ""
	}
	return m.paths.RepoDir(repoPath)
}

// removeClone deletes a clone directory, logging instead of failing
func removeClone(ctx context.Context, dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		logger.G(ctx).WithError(err).WithField("path", dir).Warn("failed to remove clone")
	}
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
