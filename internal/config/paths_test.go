package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	testDir := t.TempDir()
	t.Setenv("SKILLCTL_DIR", testDir)

	paths, err := ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, testDir, paths.DataDir)
	assert.Equal(t, filepath.Join(testDir, "config.toml"), paths.ConfigPath)
	assert.Equal(t, filepath.Join(testDir, "registry.json"), paths.RegistryPath)
	assert.Equal(t, filepath.Join(testDir, "repos"), paths.CacheDir)
	assert.Equal(t, "skills", filepath.Base(paths.SkillsDir))
}

func TestPathsApply(t *testing.T) {
	paths := &Paths{
		DataDir:      "/data",
		RegistryPath: "/data/registry.json",
		CacheDir:     "/data/repos",
		SkillsDir:    "/home/user/.claude/skills",
	}

	paths.Apply(&Config{SkillsDir: "/srv/skills"})

	assert.Equal(t, "/srv/skills", paths.SkillsDir)
	assert.Equal(t, "/data/repos", paths.CacheDir, "empty config value must not override")
	assert.Equal(t, "/data/registry.json", paths.RegistryPath)

	paths.Apply(nil)
	assert.Equal(t, "/srv/skills", paths.SkillsDir)
}

func TestPathsHelpers(t *testing.T) {
	paths := &Paths{
		RegistryPath: "/data/registry.json",
		CacheDir:     "/data/repos",
		SkillsDir:    "/skills",
	}

	assert.Equal(t, "/data/repos/acme-tools", paths.RepoDir("acme-tools"))
	assert.Equal(t, "/skills/formatter", paths.SkillDir("formatter"))
	assert.Equal(t, "/data/registry.json.lock", paths.LockPath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/skills", filepath.Join(home, "skills")},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~user/path", "~user/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "SKILL.md", cfg.ManifestFile)
	assert.Equal(t, DefaultPrefixes, cfg.Discovery.Prefixes)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `skills_dir = "/srv/skills"

[discovery]
prefixes = ["plugins", "skills"]

[git]
clone_retries = 2

[timeouts]
clone = "90s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/skills", cfg.SkillsDir)
	assert.Equal(t, []string{"plugins", "skills"}, cfg.Discovery.Prefixes)
	assert.Equal(t, 2, cfg.Git.CloneRetries)
	assert.Equal(t, "90s", cfg.Timeouts.Clone)
	assert.Equal(t, "2m", cfg.Timeouts.Pull, "unset keys keep defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SKILLCTL_SKILLS_DIR", "/env/skills")
	t.Setenv("SKILLCTL_LOG_LEVEL", "debug")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "/env/skills", cfg.SkillsDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("skills_dir = [unterminated"), 0644))

	_, err := Load(NewViper(), path)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.SkillsDir = "/custom/skills"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "/custom/skills", loaded.SkillsDir)
	assert.Equal(t, cfg.Copy.Exclude, loaded.Copy.Exclude)
}

func TestTimeouts(t *testing.T) {
	tm := TimeoutsConfig{Check: "1s", Clone: "bogus", Pull: "", Query: "-5s"}

	assert.Equal(t, "1s", tm.CheckTimeout().String())
	assert.Equal(t, "5m0s", tm.CloneTimeout().String())
	assert.Equal(t, "2m0s", tm.PullTimeout().String())
	assert.Equal(t, "10s", tm.QueryTimeout().String())
}
