package installer

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

// UpdateOptions configures Update
type UpdateOptions struct {
	PluginName string // empty updates every installed plugin
	Strict     bool   // fail when any plugin is skipped
}

// PluginUpdate describes one refreshed plugin
type PluginUpdate struct {
	Name       string
	OldCommit  string
	NewCommit  string
	Changed    bool     // commit moved
	Recloned   bool     // the clone was missing and fetched again
	Skills     []string // skills copied
	Removed    []string // skills no longer provided upstream
	Conflicted []string // skills left alone because another plugin owns them
}

// SkipNotice records why a plugin was not updated
type SkipNotice struct {
	Plugin string
	Err    error
}

// UpdateResult lists updated and skipped plugins
type UpdateResult struct {
	Updated []PluginUpdate
	Skipped []SkipNotice
}

// Update pulls each plugin's clone and re-copies its skills. A failing plugin
// is skipped and the batch continues; the registry is saved once at the end.
// An error is returned when the single named plugin was skipped, or when
// Strict is set and anything was skipped.
func (m *Manager) Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	fail := func(err error) (*UpdateResult, error) {
		return nil, &PluginError{Op: "update", Plugin: opts.PluginName, Err: err}
	}

	unlock, err := m.lock(ctx)
	if err != nil {
		return fail(err)
	}
	defer unlock()

	reg, err := m.loadRegistry(ctx)
	if err != nil {
		return fail(err)
	}

	var names []string
	if opts.PluginName != "" {
		if _, ok := reg.Find(opts.PluginName); !ok {
			return fail(ErrPluginNotFound)
		}
		names = []string{opts.PluginName}
	} else {
		names = reg.Installed()
	}

	result := &UpdateResult{}
	var skipped *multierror.Error
	for _, name := range names {
		p, _ := reg.Find(name)
		pctx := logger.WithLogger(ctx, logger.G(ctx).WithField("plugin", name))

		upd, err := m.updatePlugin(pctx, reg, p)
		if err != nil {
			if ctx.Err() != nil {
				return result, &PluginError{Op: "update", Plugin: name, Err: ctx.Err()}
			}
			logger.G(pctx).WithError(err).Warn("skipping plugin")
			result.Skipped = append(result.Skipped, SkipNotice{Plugin: name, Err: err})
			skipped = multierror.Append(skipped, &PluginError{Op: "update", Plugin: name, Err: err})
			continue
		}
		result.Updated = append(result.Updated, *upd)
	}

	if len(result.Updated) > 0 {
		if err := m.store.Save(reg); err != nil {
			return result, &PluginError{Op: "update", Err: err}
		}
	}

	if len(result.Skipped) > 0 && (opts.PluginName != "" || opts.Strict) {
		return result, fmt.Errorf("%w: %w", ErrUpdateIncomplete, skipped.ErrorOrNil())
	}
	return result, nil
}

// updatePlugin refreshes p in place. Any returned error means p was skipped
// and left unchanged.
func (m *Manager) updatePlugin(ctx context.Context, reg *registry.Registry, p *registry.Plugin) (*PluginUpdate, error) {
	log := logger.G(ctx)

	repoDir := m.repoDir(p)
	if repoDir == "" {
		owner, repo, err := source.ParseGitURL(p.GitURL)
		if err != nil {
			return nil, fmt.Errorf("no usable repo path: %w", err)
		}
		repoDir = m.paths.RepoDir(source.RepoDirName(owner, repo))
	}

	upd := &PluginUpdate{Name: p.Name, OldCommit: p.CommitHash}

	if !dirExists(repoDir) {
		if p.GitURL == "" {
			return nil, errors.New("clone missing and no git url recorded")
		}
		log.WithField("url", p.GitURL).Info("clone missing, cloning again")
		if err := m.provider.Clone(ctx, p.GitURL, repoDir); err != nil {
			return nil, err
		}
		upd.Recloned = true
	}

	if err := m.provider.Pull(ctx, repoDir); err != nil {
		return nil, err
	}

	prefix, ok := m.scanner.DetectPrefix(repoDir)
	if !ok {
		return nil, source.ErrNoSkillDirectory
	}
	discovered, err := m.scanner.Discover(repoDir, prefix)
	if err != nil {
		return nil, err
	}
	if len(discovered) == 0 {
		return nil, source.ErrNoSkillsFound
	}

	var wanted []string
	for _, skill := range discovered {
		if holder, ok := reg.Owner(skill); ok && holder != p.Name {
			log.WithField("skill", skill).WithField("owner", holder).Warn("skill owned by another plugin, not updating it")
			upd.Conflicted = append(upd.Conflicted, skill)
			continue
		}
		wanted = append(wanted, skill)
	}

	copied, err := source.CopySkills(ctx, repoDir, prefix, wanted, m.paths.SkillsDir, m.copyOpts)
	if err != nil {
		return nil, err
	}

	// a skill held by another plugin stays on disk for its owner
	upd.Removed = missingFrom(missingFrom(p.Skills, copied), upd.Conflicted)
	if len(upd.Removed) > 0 {
		source.RemoveSkills(ctx, upd.Removed, m.paths.SkillsDir)
	}

	upd.NewCommit = m.provider.CommitHash(ctx, repoDir)
	upd.Changed = upd.OldCommit != upd.NewCommit
	upd.Skills = copied

	if p.RepoPath == "" {
		if owner, repo, err := source.ParseGitURL(p.GitURL); err == nil {
			p.RepoPath = source.RepoDirName(owner, repo)
		}
	}
	p.CommitHash = upd.NewCommit
	p.UpdatedAt = m.now()
	p.SkillPrefix = prefix
	p.Skills = append([]string{}, copied...)

	return upd, nil
}
