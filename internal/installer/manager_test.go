package installer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samhoang/skillctl/internal/config"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

const (
	toolsURL = "https://github.com/acme/tools.git"
	otherURL = "https://github.com/acme/other.git"
)

var fixedTime = registry.Timestamp{Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

// fakeProvider "clones" by copying a fixture directory
type fakeProvider struct {
	available bool
	repos     map[string]string // url -> fixture dir
	commit    string
	cloneErr  error
	pullErrs  map[string]error // clone dir base name -> error
	onPull    func(repoDir string)

	clones []string
	pulls  []string
}

func (f *fakeProvider) Available(ctx context.Context) bool {
	return f.available
}

func (f *fakeProvider) Clone(ctx context.Context, url, destPath string) error {
	f.clones = append(f.clones, url)
	if f.cloneErr != nil {
		return f.cloneErr
	}
	src, ok := f.repos[url]
	if !ok {
		return &source.SourceError{Op: "git clone", Source: url, Err: source.ErrCloneFailed}
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	return os.CopyFS(destPath, os.DirFS(src))
}

func (f *fakeProvider) Pull(ctx context.Context, repoPath string) error {
	f.pulls = append(f.pulls, repoPath)
	if err := f.pullErrs[filepath.Base(repoPath)]; err != nil {
		return &source.SourceError{Op: "git pull", Source: repoPath, Err: err}
	}
	if f.onPull != nil {
		f.onPull(repoPath)
	}
	return nil
}

func (f *fakeProvider) CommitHash(ctx context.Context, repoPath string) string {
	return f.commit
}

func (f *fakeProvider) RemoteURL(ctx context.Context, repoPath string) string {
	return ""
}

type testEnv struct {
	manager  *Manager
	provider *fakeProvider
	paths    *config.Paths
	fixtures string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	paths := &config.Paths{
		DataDir:      filepath.Join(root, "data"),
		ConfigPath:   filepath.Join(root, "data", "config.toml"),
		RegistryPath: filepath.Join(root, "data", "registry.json"),
		CacheDir:     filepath.Join(root, "data", "repos"),
		SkillsDir:    filepath.Join(root, "skills"),
	}

	fixtures := filepath.Join(root, "fixtures")
	tools := filepath.Join(fixtures, "tools")
	writeSkill(t, tools, ".claude/skills", "formatter", "Formats code")
	writeSkill(t, tools, ".claude/skills", "linter", "Lints code")
	createTestFile(t, tools, "README.md", "# tools")

	provider := &fakeProvider{
		available: true,
		repos:     map[string]string{toolsURL: tools},
		commit:    "1111111111111111111111111111111111111111",
	}

	return &testEnv{
		manager:  NewManager(paths, provider, WithClock(func() registry.Timestamp { return fixedTime })),
		provider: provider,
		paths:    paths,
		fixtures: fixtures,
	}
}

// addRepo registers a fixture repository served at url
func (e *testEnv) addRepo(t *testing.T, url, name, prefix string, skills ...string) string {
	t.Helper()
	dir := filepath.Join(e.fixtures, name)
	for _, skill := range skills {
		writeSkill(t, dir, prefix, skill, "")
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	e.provider.repos[url] = dir
	return dir
}

func (e *testEnv) loadRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.NewStore(e.paths.RegistryPath).Load()
	require.NoError(t, err)
	return reg
}

func (e *testEnv) installedSkillDirs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.paths.SkillsDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func writeSkill(t *testing.T, repo, prefix, name, description string) {
	t.Helper()
	content := "# " + name + "\n"
	if description != "" {
		content = "---\nname: " + name + "\ndescription: " + description + "\n---\n" + content
	}
	createTestFile(t, repo, filepath.Join(prefix, name, "SKILL.md"), content)
}

func createTestFile(t *testing.T, base, path, content string) {
	t.Helper()
	fullPath := filepath.Join(base, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}
