package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    Manifest
	}{
		{
			name:    "full frontmatter",
			content: "---\nname: formatter\ndescription: Formats source files\nversion: 1.2.0\n---\n# Formatter\n",
			want:    Manifest{Name: "formatter", Description: "Formats source files", Version: "1.2.0"},
		},
		{
			name:    "numeric version",
			content: "---\nname: linter\nversion: 2\n---\nbody\n",
			want:    Manifest{Name: "linter", Version: "2"},
		},
		{
			name:    "no frontmatter",
			content: "# Just a heading\n",
			want:    Manifest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createTestFile(t, dir, tt.name+"/SKILL.md", tt.content)
			got, err := ReadManifest(filepath.Join(dir, tt.name, "SKILL.md"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestReadManifestMissing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "SKILL.md"))
	assert.Error(t, err)
}

func TestReadManifestInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	createTestFile(t, dir, "SKILL.md", "---\nname: [unclosed\n---\nbody\n")

	_, err := ReadManifest(filepath.Join(dir, "SKILL.md"))
	assert.Error(t, err)
}
