package installer

import (
	"context"

	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

// List returns every recorded plugin in registry order. It never fails:
// an unreadable registry is logged and reported as empty.
func (m *Manager) List(ctx context.Context) []registry.Plugin {
	reg, err := m.loadRegistry(ctx)
	if err != nil {
		logger.G(ctx).WithError(err).Warn("failed to load registry")
		return nil
	}
	return reg.Plugins
}

// InstalledSkills describes a plugin's skills as they exist in the skills directory
func (m *Manager) InstalledSkills(p registry.Plugin) []source.Skill {
	return m.scanner.Describe(m.paths.SkillsDir, ".", p.Skills)
}
