package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

// SelectFunc picks skills from the discovered set, e.g. with an interactive picker
type SelectFunc func(ctx context.Context, skills []source.Skill) ([]string, error)

// InstallOptions configures Install
type InstallOptions struct {
	GitURL     string
	PluginName string     // defaults to the repository name
	Skills     []string   // subset to install; empty installs everything
	Force      bool       // take over skills owned by other plugins
	Select     SelectFunc // consulted when Skills is empty
}

// InstallResult describes a completed install
type InstallResult struct {
	Plugin      registry.Plugin
	Replaced    bool              // an entry without a clone was replaced
	Transferred map[string]string // skill -> previous owner, with Force
}

// Install clones a repository, copies the chosen skills into the skills
// directory and records the plugin
func (m *Manager) Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	if !m.provider.Available(ctx) {
		return nil, &PluginError{Op: "install", Plugin: opts.PluginName, Err: source.ErrToolMissing}
	}

	owner, repo, err := source.ParseGitURL(opts.GitURL)
	if err != nil {
		return nil, &PluginError{Op: "install", Plugin: opts.PluginName, Err: err}
	}

	name := strings.TrimSpace(opts.PluginName)
	if name == "" {
		name = repo
	}
	fail := func(err error) (*InstallResult, error) {
		return nil, &PluginError{Op: "install", Plugin: name, Err: err}
	}

	log := logger.G(ctx).WithField("plugin", name)
	ctx = logger.WithLogger(ctx, log)

	unlock, err := m.lock(ctx)
	if err != nil {
		return fail(err)
	}
	defer unlock()

	reg, err := m.loadRegistry(ctx)
	if err != nil {
		return fail(err)
	}

	var previous *registry.Plugin
	if existing, ok := reg.Find(name); ok {
		if dirExists(m.repoDir(existing)) {
			return fail(ErrAlreadyInstalled)
		}
		p := *existing
		previous = &p
		log.Info("registry entry has no clone, reinstalling")
	}

	repoPath := source.RepoDirName(owner, repo)
	repoDir := m.paths.RepoDir(repoPath)
	shared := m.cloneShared(reg, &registry.Plugin{Name: name, RepoPath: repoPath})

	switch {
	case shared && dirExists(repoDir):
		log.WithField("path", repoDir).Info("reusing clone shared with another plugin")
	default:
		if dirExists(repoDir) {
			log.WithField("path", repoDir).Warn("removing stale clone")
			removeClone(ctx, repoDir)
		}
		log.WithField("url", opts.GitURL).Info("cloning repository")
		if err := m.provider.Clone(ctx, opts.GitURL, repoDir); err != nil {
			return fail(err)
		}
	}

	// a clone another plugin points at outlives a failed install
	abort := func(err error) (*InstallResult, error) {
		if !shared {
			removeClone(ctx, repoDir)
		}
		return fail(err)
	}

	prefix, ok := m.scanner.DetectPrefix(repoDir)
	if !ok {
		return abort(source.ErrNoSkillDirectory)
	}

	discovered, err := m.scanner.Discover(repoDir, prefix)
	if err != nil {
		return abort(err)
	}
	if len(discovered) == 0 {
		return abort(fmt.Errorf("%w under %s", source.ErrNoSkillsFound, prefix))
	}

	chosen, err := m.chooseSkills(ctx, opts, repoDir, prefix, discovered)
	if err != nil {
		return abort(err)
	}

	conflicts := make(map[string]string)
	for _, skill := range chosen {
		if holder, ok := reg.Owner(skill); ok && holder != name {
			conflicts[skill] = holder
		}
	}
	if len(conflicts) > 0 && !opts.Force {
		return abort(&ConflictError{Owners: conflicts})
	}

	copied, err := source.CopySkills(ctx, repoDir, prefix, chosen, m.paths.SkillsDir, m.copyOpts)
	if err != nil {
		return abort(err)
	}

	for _, skill := range copied {
		from, ok := conflicts[skill]
		if !ok {
			continue
		}
		if p, found := reg.Find(from); found {
			p.DropSkill(skill)
		}
		log.WithField("skill", skill).WithField("from", from).Warn("took over skill")
	}

	if previous != nil {
		if stale := missingFrom(previous.Skills, copied); len(stale) > 0 {
			source.RemoveSkills(ctx, stale, m.paths.SkillsDir)
		}
	}

	now := m.now()
	plugin := registry.Plugin{
		Name:        name,
		GitURL:      opts.GitURL,
		Owner:       owner,
		Repo:        repo,
		RepoPath:    repoPath,
		SkillPrefix: prefix,
		CommitHash:  m.provider.CommitHash(ctx, repoDir),
		InstalledAt: now,
		UpdatedAt:   now,
		Skills:      append([]string{}, copied...),
		Status:      registry.StatusInstalled,
	}
	reg.AddOrReplace(plugin)

	if err := m.store.Save(reg); err != nil {
		return fail(err)
	}

	result := &InstallResult{Plugin: plugin, Replaced: previous != nil}
	if opts.Force && len(conflicts) > 0 {
		result.Transferred = conflicts
	}
	return result, nil
}

// chooseSkills applies an explicit selection, the Select callback, or
// defaults to every discovered skill
func (m *Manager) chooseSkills(ctx context.Context, opts InstallOptions, repoDir, prefix string, discovered []string) ([]string, error) {
	requested := normalizeNames(opts.Skills)

	if len(requested) == 0 && opts.Select != nil {
		picked, err := opts.Select(ctx, m.scanner.Describe(repoDir, prefix, discovered))
		if err != nil {
			return nil, err
		}
		requested = normalizeNames(picked)
		if len(requested) == 0 {
			return nil, ErrNoSkillsSelected
		}
	}

	if len(requested) == 0 {
		return discovered, nil
	}

	var invalid []string
	for _, skill := range requested {
		if !contains(discovered, skill) {
			invalid = append(invalid, skill)
		}
	}
	if len(invalid) > 0 {
		return nil, &SelectionError{Invalid: invalid, Valid: discovered}
	}
	return requested, nil
}

// normalizeNames trims names and drops blanks and duplicates, keeping order
func normalizeNames(names []string) []string {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// missingFrom returns the entries of old that are not in current
func missingFrom(old, current []string) []string {
	var out []string
	for _, s := range old {
		if !contains(current, s) {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
