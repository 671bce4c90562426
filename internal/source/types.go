// Package source fetches skill repositories with git, locates the skills
// inside them and copies skill directories into the target skills directory.
package source

// DefaultManifestFile marks a directory as a skill
const DefaultManifestFile = "SKILL.md"

// Skill is a skill directory discovered inside a repository
type Skill struct {
	Name     string    // directory name, used as the installed name
	Dir      string    // absolute path inside the clone
	Manifest *Manifest // parsed frontmatter, nil when unreadable
}

// Manifest is the frontmatter of a skill's manifest file
type Manifest struct {
	Name        string
	Description string
	Version     string
}

// CopyOptions controls CopySkills
type CopyOptions struct {
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to each skill root
	Exclude []string
}
