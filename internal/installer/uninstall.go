package installer

import (
	"context"

	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

// UninstallResult describes a completed uninstall
type UninstallResult struct {
	Plugin  registry.Plugin
	Removed int  // skill directories actually deleted
	Clone   bool // clone directory deleted
}

// Uninstall removes a plugin's skills, its clone and its registry entry.
// An unknown name fails with ErrPluginNotFound and touches nothing.
func (m *Manager) Uninstall(ctx context.Context, name string) (*UninstallResult, error) {
	fail := func(err error) (*UninstallResult, error) {
		return nil, &PluginError{Op: "uninstall", Plugin: name, Err: err}
	}
	ctx = logger.WithLogger(ctx, logger.G(ctx).WithField("plugin", name))

	unlock, err := m.lock(ctx)
	if err != nil {
		return fail(err)
	}
	defer unlock()

	reg, err := m.loadRegistry(ctx)
	if err != nil {
		return fail(err)
	}

	found, ok := reg.Find(name)
	if !ok {
		return fail(ErrPluginNotFound)
	}
	plugin := *found

	result := &UninstallResult{Plugin: plugin}
	result.Removed = source.RemoveSkills(ctx, plugin.Skills, m.paths.SkillsDir)

	repoDir := m.repoDir(&plugin)
	if dirExists(repoDir) && !m.cloneShared(reg, &plugin) {
		removeClone(ctx, repoDir)
		result.Clone = !dirExists(repoDir)
	}

	reg.Remove(name)
	if err := m.store.Save(reg); err != nil {
		return fail(err)
	}

	logger.G(ctx).WithField("removed", result.Removed).Info("uninstalled plugin")
	return result, nil
}

// cloneShared reports whether another plugin uses the same clone directory
func (m *Manager) cloneShared(reg *registry.Registry, p *registry.Plugin) bool {
	dir := m.repoDir(p)
	for i := range reg.Plugins {
		other := &reg.Plugins[i]
		if other.Name != p.Name && m.repoDir(other) == dir {
			return true
		}
	}
	return false
}
