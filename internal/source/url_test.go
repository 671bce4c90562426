package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitURL(t *testing.T) {
	tests := []struct {
		url       string
		wantOwner string
		wantRepo  string
	}{
		{"https://github.com/acme/tools.git", "acme", "tools"},
		{"https://github.com/acme/tools", "acme", "tools"},
		{"https://github.com/acme/tools/", "acme", "tools"},
		{"https://gitlab.com/group/sub/tools.git", "sub", "tools"},
		{"git@github.com:acme/tools.git", "acme", "tools"},
		{"ssh://git@example.com:2222/acme/tools.git", "acme", "tools"},
		{"acme/tools", "acme", "tools"},
		{"  https://github.com/acme/tools.git  ", "acme", "tools"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			owner, repo, err := ParseGitURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestParseGitURLInvalid(t *testing.T) {
	tests := []string{
		"",
		"tools",
		"tools.git",
		"https://github.com",
		"https://github.com/",
		"/",
		"https://github.com/acme/..",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			_, _, err := ParseGitURL(url)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestRepoDirName(t *testing.T) {
	assert.Equal(t, "acme-tools", RepoDirName("acme", "tools"))
	assert.Equal(t, RepoDirName("acme", "tools"), RepoDirName("acme", "tools"))
}
