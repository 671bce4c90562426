package source

import (
	"fmt"
	"strings"
)

// ParseGitURL extracts (owner, repo) from a git url: the last two path
// segments after stripping a trailing slash and a ".git" suffix.
// Both https and scp-style (git@host:owner/repo) urls are accepted.
func ParseGitURL(rawURL string) (owner, repo string, err error) {
	s := strings.TrimSpace(rawURL)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ':'
	})
	if len(segments) < 2 {
		return "", "", &SourceError{Op: "parse url", Source: rawURL,
			Err: fmt.Errorf("%w: expected .../<owner>/<repo>", ErrInvalidURL)}
	}

	owner = segments[len(segments)-2]
	repo = segments[len(segments)-1]
	if isDotName(owner) || isDotName(repo) {
		return "", "", &SourceError{Op: "parse url", Source: rawURL, Err: ErrInvalidURL}
	}
	return owner, repo, nil
}

// RepoDirName returns the clone cache directory name for a repository
func RepoDirName(owner, repo string) string {
	return owner + "-" + repo
}

func isDotName(s string) bool {
	return s == "." || s == ".."
}
