package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDoc = `{
  "version": "1.0.0",
  "plugins": [
    {
      "name": "tools",
      "git_url": "https://github.com/acme/tools.git",
      "owner": "acme",
      "repo": "tools",
      "local_path": "/home/user/.claude/skills/skill-hub/repos/acme-tools",
      "source_type": "git",
      "skills": ["formatter", "linter"],
      "installed_at": "2024-05-01T10:00:00.123456",
      "updated_at": "2024-05-02T11:00:00.000001"
    },
    {
      "name": "custom",
      "git_url": "git@example.com:team/docs.git",
      "skills": ["writer"],
      "installed_at": "2024-05-03T09:00:00Z",
      "updated_at": "2024-05-03T09:00:00Z",
      "status": "installed"
    }
  ]
}`

func TestDecodeVersions(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr error
	}{
		{name: "legacy", data: `{"version": "1.0.0", "plugins": []}`, want: LegacyVersion},
		{name: "no version", data: `{"plugins": []}`, want: LegacyVersion},
		{name: "current", data: `{"version": "2.0.0", "plugins": []}`, want: CurrentVersion},
		{name: "older minor", data: `{"version": "1.1.0", "plugins": []}`, want: LegacyVersion},
		{name: "unparseable", data: `{"version": "beta", "plugins": []}`, want: LegacyVersion},
		{name: "future", data: `{"version": "3.0.0", "plugins": []}`, wantErr: ErrUnsupportedVersion},
		{name: "future minor", data: `{"version": "2.1.0", "plugins": []}`, wantErr: ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.SchemaVersion())
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"version": `))
	assert.Error(t, err)
}

func TestMigrateLegacy(t *testing.T) {
	doc, err := Decode([]byte(legacyDoc))
	require.NoError(t, err)

	reg, err := Migrate(doc)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, reg.Version)
	require.Len(t, reg.Plugins, 2)

	tools := reg.Plugins[0]
	assert.Equal(t, "tools", tools.Name)
	assert.Equal(t, "acme-tools", tools.RepoPath)
	assert.Equal(t, "", tools.SkillPrefix)
	assert.Equal(t, "", tools.CommitHash)
	assert.Equal(t, StatusInstalled, tools.Status, "missing status defaults to installed")
	assert.Equal(t, []string{"formatter", "linter"}, tools.Skills)
	assert.Equal(t, 2024, tools.InstalledAt.Year())

	custom := reg.Plugins[1]
	assert.Equal(t, "team-docs", custom.RepoPath, "repo path falls back to the git url")
}

func TestMigrateIdempotent(t *testing.T) {
	doc, err := Decode([]byte(legacyDoc))
	require.NoError(t, err)

	once, err := Migrate(doc)
	require.NoError(t, err)
	onceJSON, err := Marshal(once)
	require.NoError(t, err)

	twice, err := Migrate(once)
	require.NoError(t, err)
	twiceJSON, err := Marshal(twice)
	require.NoError(t, err)

	assert.Equal(t, string(onceJSON), string(twiceJSON))
}

func TestMigrateNil(t *testing.T) {
	reg, err := Migrate(nil)
	require.NoError(t, err)
	assert.Empty(t, reg.Plugins)
}

func TestMigrateFillsNilSlices(t *testing.T) {
	reg, err := Migrate(&Registry{Plugins: []Plugin{{Name: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, reg.Version)
	assert.NotNil(t, reg.Plugins[0].Skills)
}
