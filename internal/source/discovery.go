package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner locates skills inside a cloned repository
type Scanner struct {
	prefixes []string
	manifest string
}

// NewScanner creates a Scanner that tries prefixes in order and recognizes
// skills by manifestFile
func NewScanner(prefixes []string, manifestFile string) *Scanner {
	if manifestFile == "" {
		manifestFile = DefaultManifestFile
	}
	return &Scanner{
		prefixes: prefixes,
		manifest: manifestFile,
	}
}

// ManifestFile returns the marker file name
func (s *Scanner) ManifestFile() string {
	return s.manifest
}

// DetectPrefix returns the first candidate prefix that is a directory with at
// least one non-hidden subdirectory
func (s *Scanner) DetectPrefix(repoDir string) (string, bool) {
	for _, prefix := range s.prefixes {
		if !isSafePrefix(prefix) {
			continue
		}
		if len(listSubdirs(filepath.Join(repoDir, prefix))) > 0 {
			return prefix, true
		}
	}
	return "", false
}

// Discover lists the non-hidden subdirectories of repoDir/prefix that contain
// the manifest file, sorted by name
func (s *Scanner) Discover(repoDir, prefix string) ([]string, error) {
	base := filepath.Join(repoDir, prefix)
	if _, err := os.Stat(base); err != nil {
		return nil, err
	}

	var skills []string
	for _, name := range listSubdirs(base) {
		if _, err := os.Stat(filepath.Join(base, name, s.manifest)); err == nil {
			skills = append(skills, name)
		}
	}
	sort.Strings(skills)
	return skills, nil
}

// Describe returns the named skills with their parsed manifests
func (s *Scanner) Describe(repoDir, prefix string, names []string) []Skill {
	skills := make([]Skill, 0, len(names))
	for _, name := range names {
		dir := filepath.Join(repoDir, prefix, name)
		m, err := ReadManifest(filepath.Join(dir, s.manifest))
		if err != nil {
			m = nil
		}
		skills = append(skills, Skill{Name: name, Dir: dir, Manifest: m})
	}
	return skills
}

// listSubdirs returns the non-hidden directories (following symlinks) in dir
func listSubdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	return dirs
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isSafePrefix rejects absolute prefixes and prefixes escaping the repository
func isSafePrefix(prefix string) bool {
	if filepath.IsAbs(prefix) {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(prefix))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
