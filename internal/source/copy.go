package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/samhoang/skillctl/internal/logger"
)

// ValidateSkillName rejects names that would resolve outside the target directory
func ValidateSkillName(name string) error {
	if name == "" || isDotName(name) || strings.ContainsAny(name, `/\`) {
		return &SourceError{Op: "validate skill", Source: name, Err: ErrInvalidSkillName}
	}
	return nil
}

// CopySkills copies each named skill from repoDir/prefix into targetDir,
// replacing any existing destination. A missing source is logged and skipped.
// It returns the names that were copied, in input order.
func CopySkills(ctx context.Context, repoDir, prefix string, names []string, targetDir string, opts CopyOptions) ([]string, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, &SourceError{Op: "copy skills", Source: targetDir, Err: err}
	}

	var copied []string
	for _, name := range names {
		if err := ValidateSkillName(name); err != nil {
			logger.G(ctx).WithError(err).Warn("skipping skill")
			continue
		}

		src := filepath.Join(repoDir, prefix, name)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			logger.G(ctx).WithField("skill", name).WithField("path", src).Warn("skill source missing, skipping")
			continue
		}

		// a symlinked skill root is copied as the tree it points to
		root, err := filepath.EvalSymlinks(src)
		if err != nil {
			return copied, &SourceError{Op: "copy skill", Source: name, Err: err}
		}

		dst := filepath.Join(targetDir, name)
		if err := os.RemoveAll(dst); err != nil {
			return copied, &SourceError{Op: "copy skill", Source: name, Err: err}
		}
		if err := copyTree(root, dst, opts.Exclude); err != nil {
			return copied, &SourceError{Op: "copy skill", Source: name, Err: err}
		}

		logger.G(ctx).WithField("skill", name).Debug("copied skill")
		copied = append(copied, name)
	}
	return copied, nil
}

// RemoveSkills deletes each named skill directory under targetDir.
// Missing directories are skipped. It returns how many were removed.
func RemoveSkills(ctx context.Context, names []string, targetDir string) int {
	removed := 0
	for _, name := range names {
		if err := ValidateSkillName(name); err != nil {
			logger.G(ctx).WithError(err).Warn("skipping skill")
			continue
		}

		path := filepath.Join(targetDir, name)
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			logger.G(ctx).WithError(err).WithField("skill", name).Warn("failed to remove skill")
			continue
		}
		removed++
	}
	return removed
}

// copyTree recursively copies src to dst, skipping paths that match exclude
func copyTree(src, dst string, exclude []string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if rel != "." && excluded(filepath.ToSlash(rel), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		default:
			return copyFileItem(path, target)
		}
	})
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func copyFileItem(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("unsupported file type: %s", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
