package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefixes = []string{".claude/skills", ".agents/skills", "skills", "."}

func createTestFile(t *testing.T, base, path, content string) {
	t.Helper()
	fullPath := filepath.Join(base, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

func TestDetectPrefixPriority(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, "skills/legacy/SKILL.md", "# legacy")
	createTestFile(t, repo, ".claude/skills/formatter/SKILL.md", "# formatter")

	s := NewScanner(testPrefixes, "")
	prefix, ok := s.DetectPrefix(repo)
	require.True(t, ok)
	assert.Equal(t, ".claude/skills", prefix)
}

func TestDetectPrefixIgnoresHiddenOnlyDirs(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, ".claude/skills/.cache/data", "x")
	createTestFile(t, repo, "skills/linter/SKILL.md", "# linter")

	s := NewScanner(testPrefixes, "")
	prefix, ok := s.DetectPrefix(repo)
	require.True(t, ok)
	assert.Equal(t, "skills", prefix)
}

func TestDetectPrefixNone(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, "README.md", "hello")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	s := NewScanner(testPrefixes, "")
	_, ok := s.DetectPrefix(repo)
	assert.False(t, ok)
}

func TestDetectPrefixSkipsUnsafeCandidates(t *testing.T) {
	parent := t.TempDir()
	repo := filepath.Join(parent, "repo")
	require.NoError(t, os.MkdirAll(repo, 0755))
	createTestFile(t, parent, "outside/SKILL.md", "x")

	s := NewScanner([]string{"..", "/etc"}, "")
	_, ok := s.DetectPrefix(repo)
	assert.False(t, ok)
}

func TestDiscover(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, ".claude/skills/linter/SKILL.md", "# linter")
	createTestFile(t, repo, ".claude/skills/formatter/SKILL.md", "# formatter")
	createTestFile(t, repo, ".claude/skills/notes/README.md", "no manifest")
	createTestFile(t, repo, ".claude/skills/.hidden/SKILL.md", "# hidden")
	createTestFile(t, repo, ".claude/skills/loose.md", "file, not dir")

	s := NewScanner(testPrefixes, "")
	skills, err := s.Discover(repo, ".claude/skills")
	require.NoError(t, err)
	assert.Equal(t, []string{"formatter", "linter"}, skills)
}

func TestDiscoverCustomManifest(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, "skills/a/skill.yaml", "name: a")
	createTestFile(t, repo, "skills/b/SKILL.md", "# b")

	s := NewScanner(testPrefixes, "skill.yaml")
	assert.Equal(t, "skill.yaml", s.ManifestFile())

	skills, err := s.Discover(repo, "skills")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, skills)
}

func TestDiscoverMissingPrefix(t *testing.T) {
	s := NewScanner(testPrefixes, "")
	_, err := s.Discover(t.TempDir(), "skills")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	repo := t.TempDir()
	createTestFile(t, repo, "skills/formatter/SKILL.md", "---\nname: formatter\ndescription: Formats code\n---\n# Formatter\n")
	createTestFile(t, repo, "skills/linter/SKILL.md", "# Linter\n")

	s := NewScanner(testPrefixes, "")
	skills := s.Describe(repo, "skills", []string{"formatter", "linter"})
	require.Len(t, skills, 2)

	assert.Equal(t, "formatter", skills[0].Name)
	assert.Equal(t, filepath.Join(repo, "skills", "formatter"), skills[0].Dir)
	require.NotNil(t, skills[0].Manifest)
	assert.Equal(t, "Formats code", skills[0].Manifest.Description)

	require.NotNil(t, skills[1].Manifest)
	assert.Empty(t, skills[1].Manifest.Description)
}
